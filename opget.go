package shelfdb

import "sort"

// Get returns the record stored at key, or found == false if the key is
// absent.
func (db *DB) Get(key string) (rec Record, found bool, err error) {
	err = db.view(func(tx storageTx) error {
		raw := tx.Get(key)
		if raw == nil {
			return nil
		}
		rec, err = decodeRecord(key, raw)
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return rec, found, nil
}

// Has reports whether a record exists at key.
func (db *DB) Has(key string) (bool, error) {
	var found bool
	err := db.view(func(tx storageTx) error {
		found = tx.Get(key) != nil
		return nil
	})
	return found, err
}

// Keys returns all keys, sorted. The backing map itself is unordered;
// sorting here keeps the slice deterministic for callers.
func (db *DB) Keys() ([]string, error) {
	var keys []string
	err := db.view(func(tx storageTx) error {
		return tx.ForEach(func(k string, _ []byte) error {
			keys = append(keys, k)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}

// Len returns the number of stored records.
func (db *DB) Len() (int, error) {
	var n int
	err := db.view(func(tx storageTx) error {
		return tx.ForEach(func(string, []byte) error {
			n++
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}
