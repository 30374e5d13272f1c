package keymaster

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for serializer events.
var (
	SignalSerializerCreated = capitan.NewSignal("keymaster.serializer.created", "Serializer instantiated")
	SignalMarshalStart      = capitan.NewSignal("keymaster.marshal.start", "Marshal operation beginning")
	SignalMarshalComplete   = capitan.NewSignal("keymaster.marshal.complete", "Marshal operation finished")
	SignalUnmarshalStart    = capitan.NewSignal("keymaster.unmarshal.start", "Unmarshal operation beginning")
	SignalUnmarshalComplete = capitan.NewSignal("keymaster.unmarshal.complete", "Unmarshal operation finished")
)

// Keys for typed event data.
var (
	KeyContentType = capitan.NewStringKey("content_type")
	KeyCount       = capitan.NewIntKey("count")
	KeySize        = capitan.NewIntKey("size")
	KeyDuration    = capitan.NewDurationKey("duration")
	KeyError       = capitan.NewErrorKey("error")
	KeySealedCount = capitan.NewIntKey("sealed_count")
)

func emitSerializerCreated(ctx context.Context, contentType string) {
	capitan.Emit(ctx, SignalSerializerCreated,
		KeyContentType.Field(contentType),
	)
}

func emitMarshalStart(ctx context.Context, contentType string, count int) {
	capitan.Emit(ctx, SignalMarshalStart,
		KeyContentType.Field(contentType),
		KeyCount.Field(count),
	)
}

// emitMarshalComplete emits an event when marshal finishes.
func emitMarshalComplete(ctx context.Context, contentType string, count, size int, duration time.Duration, sealed int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyCount.Field(count),
		KeySize.Field(size),
		KeyDuration.Field(duration),
		KeySealedCount.Field(sealed),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMarshalComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMarshalComplete, fields...)
	}
}

func emitUnmarshalStart(ctx context.Context, contentType string, size int) {
	capitan.Emit(ctx, SignalUnmarshalStart,
		KeyContentType.Field(contentType),
		KeySize.Field(size),
	)
}

// emitUnmarshalComplete emits an event when unmarshal finishes.
func emitUnmarshalComplete(ctx context.Context, contentType string, count int, duration time.Duration, sealed int, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyCount.Field(count),
		KeyDuration.Field(duration),
		KeySealedCount.Field(sealed),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalUnmarshalComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalUnmarshalComplete, fields...)
	}
}
