package pebble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litentry/akropolis-polkadot/pkg/db"
)

func newTestStore(t *testing.T) db.KVStore {
	t.Helper()
	store, err := NewKVStore()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

func TestPutGetDelete(t *testing.T) {
	store := newTestStore(t)

	key := []byte("slot/1")
	value := []byte("payload")

	require.NoError(t, store.Put(key, value))

	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)

	_, err = store.Get([]byte("missing"))
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Delete(key))
	_, err = store.Get(key)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting an absent key is not an error
	assert.NoError(t, store.Delete([]byte("missing")))
}

func TestClosedStore(t *testing.T) {
	store, err := NewKVStore()
	require.NoError(t, err)
	require.NoError(t, store.Close())

	_, err = store.Get([]byte("key"))
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, store.Put([]byte("key"), []byte("value")), ErrClosed)
	assert.ErrorIs(t, store.Delete([]byte("key")), ErrClosed)

	// Double close should not error
	assert.NoError(t, store.Close())
}

func TestBatchAtomicity(t *testing.T) {
	store := newTestStore(t)

	batch := store.NewBatch()
	defer batch.Close() //nolint:errcheck

	require.NoError(t, batch.Put([]byte("a"), []byte("1")))
	require.NoError(t, batch.Put([]byte("b"), []byte("2")))
	require.NoError(t, batch.Delete([]byte("a")))

	// Nothing visible before commit
	_, err := store.Get([]byte("b"))
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, batch.Commit())

	_, err = store.Get([]byte("a"))
	assert.ErrorIs(t, err, ErrNotFound)
	got, err := store.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), got)

	// Batch is spent after commit
	assert.ErrorIs(t, batch.Put([]byte("c"), []byte("3")), ErrBatchDone)
	assert.ErrorIs(t, batch.Commit(), ErrBatchDone)
	assert.NoError(t, batch.Close())
}

func TestIteratorRange(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Put([]byte{0x01, 0x00}, []byte("in-a")))
	require.NoError(t, store.Put([]byte{0x01, 0x01}, []byte("in-b")))
	require.NoError(t, store.Put([]byte{0x02, 0x00}, []byte("out")))

	iter, err := store.NewIterator([]byte{0x01}, []byte{0x02})
	require.NoError(t, err)
	defer iter.Close() //nolint:errcheck

	var values []string
	for iter.Next() {
		v, err := iter.Value()
		require.NoError(t, err)
		values = append(values, string(v))
	}
	assert.Equal(t, []string{"in-a", "in-b"}, values)
	assert.False(t, iter.Valid())
}
