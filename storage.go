package shelfdb

// storage is the durable string→record map backing a DB (Bolt, in-memory).
// Each Begin opens the store and starts one session; committing or rolling
// the session back releases the store again. The engine holds no state
// between sessions.
type storage interface {
	// Begin acquires the backing store and starts a session.
	Begin(writable bool) (storageTx, error)
}

// storageTx is one scoped open→work→close cycle against the backing store.
// Byte slices returned by Get and ForEach are only valid until the session
// ends.
type storageTx interface {
	// Get retrieves an encoded record by key. Returns nil if not found.
	Get(key string) []byte

	// Put stores an encoded record, replacing any prior value.
	Put(key string, value []byte) error

	// Delete removes a key. Deleting an absent key is a no-op.
	Delete(key string) error

	// ForEach iterates over all pairs in unspecified order. Returning an
	// error from fn stops the iteration and propagates the error.
	ForEach(fn func(key string, value []byte) error) error

	// Clear removes all pairs.
	Clear() error

	// Commit flushes changes durably and releases the store.
	Commit() error

	// Rollback discards changes and releases the store. It is safe to call
	// after Commit.
	Rollback() error
}
