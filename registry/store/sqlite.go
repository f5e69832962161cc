package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// sqliteStore is a KVStore backed by a single-table SQLite database.
type sqliteStore struct {
	db *sql.DB
}

// OpenSqliteStore opens (or creates) a SQLite backed store at the given
// file path.
func OpenSqliteStore(path string) (KVStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec("CREATE TABLE IF NOT EXISTS kv (k BLOB PRIMARY KEY, v BLOB) WITHOUT ROWID")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow("SELECT v FROM kv WHERE k = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	return value, err
}

func (s *sqliteStore) Set(key []byte, value []byte) error {
	_, err := s.db.Exec("INSERT INTO kv(k, v) VALUES(?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v", key, value)
	return err
}

func (s *sqliteStore) Apply(entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if _, err := tx.Exec(
			"INSERT INTO kv(k, v) VALUES(?, ?) ON CONFLICT(k) DO UPDATE SET v = excluded.v",
			entry.Key, entry.Value,
		); err != nil {
			return fmt.Errorf("failed to stage batch entry: %w", errJoinRollback(tx, err))
		}
	}
	return tx.Commit()
}

func (s *sqliteStore) ForEach(prefix []byte, visit func(key, value []byte) error) error {
	if prefix == nil {
		prefix = []byte{} // a nil blob would bind as NULL
	}
	rows, err := s.db.Query(
		"SELECT k, v FROM kv WHERE k >= ? AND (? IS NULL OR k < ?) ORDER BY k",
		prefix, prefixEnd(prefix), prefixEnd(prefix),
	)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var key, value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		if err := visit(key, value); err != nil {
			return err
		}
	}
	return rows.Err()
}

func (s *sqliteStore) Flush() error {
	// Writes are committed per statement or transaction.
	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func errJoinRollback(tx *sql.Tx, err error) error {
	if rbErr := tx.Rollback(); rbErr != nil {
		return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
	}
	return err
}

// prefixEnd computes the smallest key greater than all keys with the given
// prefix, or nil if no such key exists.
func prefixEnd(prefix []byte) []byte {
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xff {
			end := make([]byte, i+1)
			copy(end, prefix)
			end[i]++
			return end
		}
	}
	return nil
}
