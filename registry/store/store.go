package store

import (
	"sort"
	"sync"

	"github.com/hostlayer/evmreg/common"
	"golang.org/x/exp/maps"
)

// ErrNotFound is returned by Get for keys without a value.
const ErrNotFound = common.ConstError("not found")

// Entry is a single key/value pair of a write batch.
type Entry struct {
	Key   []byte
	Value []byte
}

// KVStore is the key-value store interface used to persist the registry
// state. Implementations must apply batches atomically: after a crash either
// all entries of a batch are visible or none of them.
type KVStore interface {
	// Get retrieves the value for the given key, or ErrNotFound.
	Get(key []byte) ([]byte, error)
	// Set stores a single key/value pair.
	Set(key []byte, value []byte) error
	// Apply stores all entries of the batch atomically.
	Apply(batch []Entry) error
	// ForEach visits all entries with the given key prefix. The visiting
	// order is the byte-wise order of the keys.
	ForEach(prefix []byte, visit func(key, value []byte) error) error
	// Flush syncs pending writes to the underlying medium.
	Flush() error
	// Close flushes and releases the store.
	Close() error
}

// memoryStore is an in-memory KVStore used for tests and volatile setups.
type memoryStore struct {
	lock sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() KVStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) Get(key []byte) ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	value, found := s.data[string(key)]
	if !found {
		return nil, ErrNotFound
	}
	res := make([]byte, len(value))
	copy(res, value)
	return res, nil
}

func (s *memoryStore) Set(key []byte, value []byte) error {
	return s.Apply([]Entry{{Key: key, Value: value}})
}

func (s *memoryStore) Apply(batch []Entry) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	for _, entry := range batch {
		value := make([]byte, len(entry.Value))
		copy(value, entry.Value)
		s.data[string(entry.Key)] = value
	}
	return nil
}

func (s *memoryStore) ForEach(prefix []byte, visit func(key, value []byte) error) error {
	s.lock.Lock()
	keys := maps.Keys(s.data)
	s.lock.Unlock()
	sort.Strings(keys)
	for _, key := range keys {
		if len(key) < len(prefix) || key[:len(prefix)] != string(prefix) {
			continue
		}
		s.lock.Lock()
		value, found := s.data[key]
		s.lock.Unlock()
		if !found {
			continue
		}
		if err := visit([]byte(key), value); err != nil {
			return err
		}
	}
	return nil
}

func (s *memoryStore) Flush() error {
	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
