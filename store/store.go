// Package store persists key characteristics in a bbolt database, one
// AuthorizationSet per key alias.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/zoobzio/keymaster"
	"github.com/zoobzio/keymaster/cbor"
	"go.etcd.io/bbolt"
)

// ErrNotFound indicates no set is stored under the alias.
var ErrNotFound = errors.New("alias not found")

// ErrEmptyAlias indicates an empty alias was given.
var ErrEmptyAlias = errors.New("empty alias")

const defaultBucket = "characteristics"

// Options configures Open. The zero value is usable.
type Options struct {
	// Serializer encodes stored sets. Defaults to a CBOR serializer with no
	// sealed tags.
	Serializer *keymaster.Serializer

	// Bucket names the bbolt bucket holding the sets.
	Bucket string

	// Timeout bounds how long Open waits for the database file lock.
	// Defaults to one second.
	Timeout time.Duration
}

// Store maps key aliases to authorization sets.
type Store struct {
	db     *bbolt.DB
	bucket []byte
	ser    *keymaster.Serializer
}

// Open opens or creates the database at path.
func Open(path string, opts *Options) (*Store, error) {
	var o Options
	if opts != nil {
		o = *opts
	}
	if o.Serializer == nil {
		o.Serializer = keymaster.NewSerializer(cbor.New())
	}
	if o.Bucket == "" {
		o.Bucket = defaultBucket
	}
	if o.Timeout == 0 {
		o.Timeout = time.Second
	}

	if err := o.Serializer.Validate(); err != nil {
		return nil, fmt.Errorf("serializer: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: o.Timeout})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	bucket := []byte(o.Bucket)
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &Store{db: db, bucket: bucket, ser: o.Serializer}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores set under alias, replacing any previous set.
func (s *Store) Put(ctx context.Context, alias string, set keymaster.AuthorizationSet) (err error) {
	start := time.Now()
	defer func() { emitPut(ctx, alias, set.Len(), time.Since(start), err) }()

	if alias == "" {
		return ErrEmptyAlias
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.ser.Marshal(ctx, set)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).Put([]byte(alias), data)
	})
}

// Get returns the set stored under alias.
func (s *Store) Get(ctx context.Context, alias string) (set keymaster.AuthorizationSet, err error) {
	start := time.Now()
	defer func() { emitGet(ctx, alias, set.Len(), time.Since(start), err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err = s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(s.bucket).Get([]byte(alias))
		if v == nil {
			return fmt.Errorf("%w: %q", ErrNotFound, alias)
		}
		// v is only valid inside the transaction.
		data = append([]byte{}, v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.ser.Unmarshal(ctx, data)
}

// Delete removes the set stored under alias.
func (s *Store) Delete(ctx context.Context, alias string) (err error) {
	defer func() { emitDelete(ctx, alias, err) }()

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(s.bucket)
		if b.Get([]byte(alias)) == nil {
			return fmt.Errorf("%w: %q", ErrNotFound, alias)
		}
		return b.Delete([]byte(alias))
	})
}

// List returns every stored alias in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var aliases []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(s.bucket).ForEach(func(k, _ []byte) error {
			aliases = append(aliases, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(aliases)
	return aliases, nil
}
