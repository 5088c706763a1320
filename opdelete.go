package shelfdb

// Delete removes the record at key. Deleting an absent key silently
// succeeds and leaves the store unchanged.
func (db *DB) Delete(key string) error {
	return db.update(func(tx storageTx) error {
		if err := tx.Delete(key); err != nil {
			return storeErrf(db.path, err, "cannot delete record %q", key)
		}
		db.log("shelfdb: delete %q", key)
		return nil
	})
}

// Clear removes all records, leaving an empty database.
func (db *DB) Clear() error {
	return db.update(func(tx storageTx) error {
		if err := tx.Clear(); err != nil {
			return storeErrf(db.path, err, "cannot clear")
		}
		db.log("shelfdb: clear")
		return nil
	})
}
