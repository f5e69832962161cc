package store

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var _ KVStore = (*memoryStore)(nil)
var _ KVStore = (*levelDbStore)(nil)
var _ KVStore = (*sqliteStore)(nil)

func forEachStore(t *testing.T, run func(t *testing.T, open func(t *testing.T) KVStore, reopen bool)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) {
		store := NewMemoryStore()
		run(t, func(t *testing.T) KVStore { return store }, false)
	})
	t.Run("leveldb", func(t *testing.T) {
		dir := t.TempDir()
		run(t, func(t *testing.T) KVStore {
			store, err := OpenLevelDbStore(dir)
			require.NoError(t, err)
			return store
		}, true)
	})
	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "store.db")
		run(t, func(t *testing.T) KVStore {
			store, err := OpenSqliteStore(path)
			require.NoError(t, err)
			return store
		}, true)
	})
}

func TestStore_CanSetAndGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, open func(t *testing.T) KVStore, reopen bool) {
		store := open(t)
		require.NoError(t, store.Set([]byte("key1"), []byte("value1")))
		require.NoError(t, store.Set([]byte("key2"), []byte("value2")))

		value, err := store.Get([]byte("key1"))
		require.NoError(t, err)
		require.Equal(t, []byte("value1"), value)

		value, err = store.Get([]byte("key2"))
		require.NoError(t, err)
		require.Equal(t, []byte("value2"), value)

		require.NoError(t, store.Close())
	})
}

func TestStore_ReturnsNotFoundForMissingKey(t *testing.T) {
	forEachStore(t, func(t *testing.T, open func(t *testing.T) KVStore, reopen bool) {
		store := open(t)
		_, err := store.Get([]byte("nonexistent"))
		require.ErrorIs(t, err, ErrNotFound)
		require.NoError(t, store.Close())
	})
}

func TestStore_OverwritesExistingValue(t *testing.T) {
	forEachStore(t, func(t *testing.T, open func(t *testing.T) KVStore, reopen bool) {
		store := open(t)
		require.NoError(t, store.Set([]byte("key"), []byte("old")))
		require.NoError(t, store.Set([]byte("key"), []byte("new")))
		value, err := store.Get([]byte("key"))
		require.NoError(t, err)
		require.Equal(t, []byte("new"), value)
		require.NoError(t, store.Close())
	})
}

func TestStore_BatchIsVisibleAfterApply(t *testing.T) {
	forEachStore(t, func(t *testing.T, open func(t *testing.T) KVStore, reopen bool) {
		store := open(t)
		require.NoError(t, store.Apply([]Entry{
			{Key: []byte("a"), Value: []byte("1")},
			{Key: []byte("b"), Value: []byte("2")},
		}))
		for key, want := range map[string]string{"a": "1", "b": "2"} {
			value, err := store.Get([]byte(key))
			require.NoError(t, err)
			require.Equal(t, []byte(want), value)
		}
		require.NoError(t, store.Close())
	})
}

func TestStore_ForEachVisitsPrefixInOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, open func(t *testing.T) KVStore, reopen bool) {
		store := open(t)
		require.NoError(t, store.Apply([]Entry{
			{Key: []byte("a/2"), Value: []byte("v2")},
			{Key: []byte("b/1"), Value: []byte("other")},
			{Key: []byte("a/1"), Value: []byte("v1")},
			{Key: []byte("a/3"), Value: []byte("v3")},
		}))

		var keys []string
		require.NoError(t, store.ForEach([]byte("a/"), func(key, value []byte) error {
			keys = append(keys, string(key))
			return nil
		}))
		require.Equal(t, []string{"a/1", "a/2", "a/3"}, keys)

		require.NoError(t, store.Close())
	})
}

func TestStore_ForEachForwardsVisitorError(t *testing.T) {
	forEachStore(t, func(t *testing.T, open func(t *testing.T) KVStore, reopen bool) {
		store := open(t)
		require.NoError(t, store.Set([]byte("key"), []byte("value")))
		someError := fmt.Errorf("visitor failed")
		err := store.ForEach(nil, func(key, value []byte) error {
			return someError
		})
		require.ErrorIs(t, err, someError)
		require.NoError(t, store.Close())
	})
}

func TestStore_ContentIsPersistedAcrossReopen(t *testing.T) {
	forEachStore(t, func(t *testing.T, open func(t *testing.T) KVStore, reopen bool) {
		if !reopen {
			t.Skip("store is not persistent")
		}
		store := open(t)
		require.NoError(t, store.Set([]byte("key"), []byte("value")))
		require.NoError(t, store.Flush())
		require.NoError(t, store.Close())

		store = open(t)
		value, err := store.Get([]byte("key"))
		require.NoError(t, err)
		require.Equal(t, []byte("value"), value)
		require.NoError(t, store.Close())
	})
}

func TestPrefixEnd_ComputesSmallestUpperBound(t *testing.T) {
	tests := []struct {
		prefix []byte
		want   []byte
	}{
		{prefix: []byte{0x01}, want: []byte{0x02}},
		{prefix: []byte{0x01, 0xff}, want: []byte{0x02}},
		{prefix: []byte{0xff, 0xff}, want: nil},
		{prefix: nil, want: nil},
	}
	for _, test := range tests {
		require.Equal(t, test.want, prefixEnd(test.prefix))
	}
}
