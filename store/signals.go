package store

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/keymaster"
)

// Signals for store events.
var (
	SignalPut    = capitan.NewSignal("keymaster.store.put", "Authorization set stored")
	SignalGet    = capitan.NewSignal("keymaster.store.get", "Authorization set loaded")
	SignalDelete = capitan.NewSignal("keymaster.store.delete", "Authorization set deleted")
)

// KeyAlias carries the alias of the affected key.
var KeyAlias = capitan.NewStringKey("alias")

func emitPut(ctx context.Context, alias string, count int, duration time.Duration, err error) {
	emit(ctx, SignalPut, err,
		KeyAlias.Field(alias),
		keymaster.KeyCount.Field(count),
		keymaster.KeyDuration.Field(duration),
	)
}

func emitGet(ctx context.Context, alias string, count int, duration time.Duration, err error) {
	emit(ctx, SignalGet, err,
		KeyAlias.Field(alias),
		keymaster.KeyCount.Field(count),
		keymaster.KeyDuration.Field(duration),
	)
}

func emitDelete(ctx context.Context, alias string, err error) {
	emit(ctx, SignalDelete, err, KeyAlias.Field(alias))
}

func emit(ctx context.Context, signal capitan.Signal, err error, fields ...capitan.Field) {
	if err != nil {
		fields = append(fields, keymaster.KeyError.Field(err))
		capitan.Error(ctx, signal, fields...)
		return
	}
	capitan.Emit(ctx, signal, fields...)
}
