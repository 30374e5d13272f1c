package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zoobzio/keymaster"
	"github.com/zoobzio/keymaster/json"
	"github.com/zoobzio/keymaster/store"
	kmtest "github.com/zoobzio/keymaster/testing"
)

func openStore(t *testing.T, opts *store.Options) (*store.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys.db")
	s, err := store.Open(path, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t, nil)

	require.NoError(t, s.Put(ctx, "aes-key", kmtest.SampleSet()))

	got, err := s.Get(ctx, "aes-key")
	require.NoError(t, err)
	kmtest.AssertSetsEqual(t, kmtest.SampleSet(), got)
}

func TestPut_Replaces(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t, nil)

	require.NoError(t, s.Put(ctx, "k", kmtest.SampleSet()))
	replacement := keymaster.NewAuthorizationSet(
		keymaster.Authorization(keymaster.TagAlgorithm, keymaster.AlgorithmHMAC),
	)
	require.NoError(t, s.Put(ctx, "k", replacement))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	kmtest.AssertSetsEqual(t, replacement, got)
}

func TestGet_NotFound(t *testing.T) {
	s, _ := openStore(t, nil)

	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t, nil)

	require.NoError(t, s.Put(ctx, "k", kmtest.SampleSet()))
	require.NoError(t, s.Delete(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "k"), store.ErrNotFound)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s, _ := openStore(t, nil)

	aliases, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, aliases)

	for _, alias := range []string{"rsa", "aes", "ec"} {
		require.NoError(t, s.Put(ctx, alias, kmtest.SampleSet()))
	}

	aliases, err = s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"aes", "ec", "rsa"}, aliases)
}

func TestPut_EmptyAlias(t *testing.T) {
	s, _ := openStore(t, nil)
	assert.ErrorIs(t, s.Put(context.Background(), "", kmtest.SampleSet()), store.ErrEmptyAlias)
}

func TestCanceledContext(t *testing.T) {
	s, _ := openStore(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Put(ctx, "k", kmtest.SampleSet()), context.Canceled)
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Delete(ctx, "k"), context.Canceled)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keys.db")

	s, err := store.Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "k", kmtest.SampleSet()))
	require.NoError(t, s.Close())

	s, err = store.Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	kmtest.AssertSetsEqual(t, kmtest.SampleSet(), got)
}

func TestSealedSerializer(t *testing.T) {
	ctx := context.Background()
	ser := keymaster.NewSerializer(json.New()).
		SetEncryptor(keymaster.EncryptAES, kmtest.TestEncryptor(t)).
		SealDefaults(keymaster.EncryptAES)

	s, _ := openStore(t, &store.Options{Serializer: ser, Bucket: "sealed"})
	require.NoError(t, s.Put(ctx, "k", kmtest.SampleSet()))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	kmtest.AssertBlob(t, got, keymaster.TagApplicationID, []byte("com.example.app"))
}

func TestOpen_InvalidSerializer(t *testing.T) {
	ser := keymaster.NewSerializer(json.New()).SealDefaults(keymaster.EncryptAES)

	_, err := store.Open(filepath.Join(t.TempDir(), "keys.db"), &store.Options{Serializer: ser})
	assert.ErrorIs(t, err, keymaster.ErrMissingEncryptor)
}
