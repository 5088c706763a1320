package shelfdb

// DB is a handle on one file-backed document database. The handle itself
// holds no open resources: every operation acquires the backing store, does
// its work in a single session, and releases the store before returning.
type DB struct {
	path  string
	store storage
	logf  func(format string, args ...any)
}

type Options struct {
	// Logf receives one line per mutation. Nil means silent.
	Logf func(format string, args ...any)
	// NoSync disables fsync on commit. Intended for tests.
	NoSync bool
}

// Open prepares a database backed by the file at path, creating the file if
// it does not exist yet. The file is probed once so that an unreadable or
// locked backing store surfaces here rather than on the first operation.
func Open(path string, opt Options) (*DB, error) {
	db := &DB{
		path:  path,
		store: newBoltStorage(path, opt.NoSync),
		logf:  opt.Logf,
	}
	err := db.update(func(tx storageTx) error { return nil })
	if err != nil {
		return nil, err
	}
	return db, nil
}

// OpenMemory returns a database backed by transient in-process memory.
// Useful for tests and ephemeral data; contents are lost when the handle is
// garbage collected.
func OpenMemory(opt Options) *DB {
	return &DB{
		path:  ":memory:",
		store: newMemStorage(),
		logf:  opt.Logf,
	}
}

// Path returns the backing file path.
func (db *DB) Path() string {
	return db.path
}

func (db *DB) log(format string, args ...any) {
	if db.logf != nil {
		db.logf(format, args...)
	}
}
