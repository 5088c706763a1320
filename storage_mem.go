package shelfdb

import (
	"fmt"
	"sync"
)

// memStorage is a transient in-memory storage implementation intended for
// tests and ephemeral databases. Sessions work on a snapshot of the whole
// map (simplicity over efficiency) and write it back on commit.
type memStorage struct {
	mu      sync.Mutex
	records map[string][]byte
	closed  bool
}

func newMemStorage() *memStorage {
	return &memStorage{records: make(map[string][]byte)}
}

func (s *memStorage) Begin(writable bool) (storageTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, fmt.Errorf("storage closed")
	}
	snap := make(map[string][]byte, len(s.records))
	for k, v := range s.records {
		snap[k] = v
	}
	return &memTx{base: s, writable: writable, records: snap}, nil
}

type memTx struct {
	base     *memStorage
	writable bool
	records  map[string][]byte
	done     bool
}

func (tx *memTx) Get(key string) []byte {
	return tx.records[key]
}

func (tx *memTx) Put(key string, value []byte) error {
	if !tx.writable {
		return fmt.Errorf("put in a read-only session")
	}
	tx.records[key] = value
	return nil
}

func (tx *memTx) Delete(key string) error {
	if !tx.writable {
		return fmt.Errorf("delete in a read-only session")
	}
	delete(tx.records, key)
	return nil
}

func (tx *memTx) ForEach(fn func(key string, value []byte) error) error {
	for k, v := range tx.records {
		if err := fn(k, v); err != nil {
			return err
		}
	}
	return nil
}

func (tx *memTx) Clear() error {
	if !tx.writable {
		return fmt.Errorf("clear in a read-only session")
	}
	tx.records = make(map[string][]byte)
	return nil
}

func (tx *memTx) Commit() error {
	if tx.done {
		return nil
	}
	tx.done = true
	if !tx.writable {
		return nil
	}
	tx.base.mu.Lock()
	defer tx.base.mu.Unlock()
	if tx.base.closed {
		return fmt.Errorf("storage closed")
	}
	tx.base.records = tx.records
	return nil
}

func (tx *memTx) Rollback() error {
	tx.done = true
	return nil
}
