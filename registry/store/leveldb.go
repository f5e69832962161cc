package store

import (
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// levelDbStore is a KVStore backed by a LevelDB instance.
type levelDbStore struct {
	db *leveldb.DB
}

// OpenLevelDbStore opens (or creates) a LevelDB backed store in the given
// directory.
func OpenLevelDbStore(path string) (KVStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}
	return &levelDbStore{db: db}, nil
}

func (s *levelDbStore) Get(key []byte) ([]byte, error) {
	data, err := s.db.Get(key, &opt.ReadOptions{})
	if err == leveldb.ErrNotFound {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *levelDbStore) Set(key []byte, value []byte) error {
	return s.db.Put(key, value, &opt.WriteOptions{})
}

func (s *levelDbStore) Apply(entries []Entry) error {
	batch := &leveldb.Batch{}
	for _, entry := range entries {
		batch.Put(entry.Key, entry.Value)
	}
	// Sync makes the batch an atomic unit also with respect to crashes.
	return s.db.Write(batch, &opt.WriteOptions{Sync: true})
}

func (s *levelDbStore) ForEach(prefix []byte, visit func(key, value []byte) error) error {
	iter := s.db.NewIterator(util.BytesPrefix(prefix), &opt.ReadOptions{})
	defer iter.Release()
	for iter.Next() {
		if err := visit(iter.Key(), iter.Value()); err != nil {
			return err
		}
	}
	return iter.Error()
}

func (s *levelDbStore) Flush() error {
	// LevelDB writes are synced per batch; there is no separate flush.
	return nil
}

func (s *levelDbStore) Close() error {
	return s.db.Close()
}
