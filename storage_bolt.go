package shelfdb

import (
	"time"

	"go.etcd.io/bbolt"
)

var recordsBucket = []byte("records")

// boltStorage keeps records in a single bucket of one Bolt file. The file is
// opened per session and closed when the session ends, so the OS-level file
// lock is only held for the duration of one engine call.
type boltStorage struct {
	path   string
	nosync bool
}

func newBoltStorage(path string, nosync bool) storage {
	return &boltStorage{path: path, nosync: nosync}
}

func (s *boltStorage) Begin(writable bool) (storageTx, error) {
	bopt := *bbolt.DefaultOptions
	bopt.Timeout = 10 * time.Second
	if s.nosync {
		bopt.NoSync = true
		bopt.NoFreelistSync = true
	}

	bdb, err := bbolt.Open(s.path, 0666, &bopt)
	if err != nil {
		return nil, err
	}

	btx, err := bdb.Begin(writable)
	if err != nil {
		bdb.Close()
		return nil, err
	}

	tx := &boltTx{bdb: bdb, btx: btx}
	if writable {
		tx.bucket, err = btx.CreateBucketIfNotExists(recordsBucket)
		if err != nil {
			tx.Rollback()
			return nil, err
		}
	} else {
		// Nil bucket on a fresh file reads as an empty database.
		tx.bucket = btx.Bucket(recordsBucket)
	}
	return tx, nil
}

type boltTx struct {
	bdb    *bbolt.DB
	btx    *bbolt.Tx
	bucket *bbolt.Bucket
	done   bool
}

func (tx *boltTx) Get(key string) []byte {
	if tx.bucket == nil {
		return nil
	}
	return tx.bucket.Get([]byte(key))
}

func (tx *boltTx) Put(key string, value []byte) error {
	return tx.bucket.Put([]byte(key), value)
}

func (tx *boltTx) Delete(key string) error {
	return tx.bucket.Delete([]byte(key))
}

func (tx *boltTx) ForEach(fn func(key string, value []byte) error) error {
	if tx.bucket == nil {
		return nil
	}
	return tx.bucket.ForEach(func(k, v []byte) error {
		return fn(string(k), v)
	})
}

func (tx *boltTx) Clear() error {
	if err := tx.btx.DeleteBucket(recordsBucket); err != nil {
		return err
	}
	b, err := tx.btx.CreateBucket(recordsBucket)
	if err != nil {
		return err
	}
	tx.bucket = b
	return nil
}

func (tx *boltTx) Commit() error {
	if tx.done {
		return nil
	}
	tx.done = true
	err := tx.btx.Commit()
	if cerr := tx.bdb.Close(); err == nil {
		err = cerr
	}
	return err
}

func (tx *boltTx) Rollback() error {
	if tx.done {
		return nil
	}
	tx.done = true
	err := tx.btx.Rollback()
	if err == bbolt.ErrTxClosed {
		err = nil
	}
	if cerr := tx.bdb.Close(); err == nil {
		err = cerr
	}
	return err
}
