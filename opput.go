package shelfdb

// Insert writes rec at key, replacing any prior record in full. Overwriting
// an existing key is the documented behavior, not a failure.
func (db *DB) Insert(key string, rec Record) error {
	return db.update(func(tx storageTx) error {
		if err := db.put(tx, key, rec); err != nil {
			return err
		}
		db.log("shelfdb: insert %q", key)
		return nil
	})
}

// New inserts rec under the next unique numeric key and returns that key.
// The key is derived by scanning all existing keys: the maximum
// all-decimal-digit key plus one, or "1" for a store without numeric keys.
// Allocation and insert happen in the same session, so sequential callers
// never observe a duplicate.
func (db *DB) New(rec Record) (string, error) {
	var key string
	err := db.update(func(tx storageTx) error {
		var keys []string
		err := tx.ForEach(func(k string, _ []byte) error {
			keys = append(keys, k)
			return nil
		})
		if err != nil {
			return storeErrf(db.path, err, "cannot scan keys")
		}
		key = nextKey(keys)
		if err := db.put(tx, key, rec); err != nil {
			return err
		}
		db.log("shelfdb: new %q", key)
		return nil
	})
	if err != nil {
		return "", err
	}
	return key, nil
}

// Update merges partial into the record at key: every attribute in partial
// overwrites or adds the same-named attribute, all other attributes are
// untouched. The merge is shallow; nested mappings are replaced wholesale.
// If key is absent, Update silently succeeds without creating it — callers
// needing to distinguish must check existence first.
func (db *DB) Update(key string, partial Record) error {
	return db.update(func(tx storageTx) error {
		raw := tx.Get(key)
		if raw == nil {
			return nil
		}
		rec, err := decodeRecord(key, raw)
		if err != nil {
			return err
		}
		if err := db.put(tx, key, rec.merged(partial)); err != nil {
			return err
		}
		db.log("shelfdb: update %q", key)
		return nil
	})
}

func (db *DB) put(tx storageTx, key string, rec Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return recordErrf(key, err, "failed to encode record")
	}
	if err := tx.Put(key, data); err != nil {
		return storeErrf(db.path, err, "cannot store record %q", key)
	}
	return nil
}
