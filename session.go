package shelfdb

// Each public engine call runs inside exactly one session: acquire the
// backing store, do the work, flush and release on success, release without
// flushing on any error path. The deferred Rollback is a no-op after Commit,
// which is what guarantees release even when fn fails mid-operation.

func (db *DB) update(fn func(tx storageTx) error) error {
	tx, err := db.store.Begin(true)
	if err != nil {
		return storeErrf(db.path, err, "cannot open backing store")
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return storeErrf(db.path, err, "cannot flush backing store")
	}
	return nil
}

func (db *DB) view(fn func(tx storageTx) error) error {
	tx, err := db.store.Begin(false)
	if err != nil {
		return storeErrf(db.path, err, "cannot open backing store")
	}
	defer tx.Rollback()

	return fn(tx)
}
