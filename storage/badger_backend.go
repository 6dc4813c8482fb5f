package storage

import (
	"github.com/dgraph-io/badger/v2"
)

// TestBadgerDB opens an in-memory badger instance for tests.
func TestBadgerDB() *badger.DB {
	option := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(option)
	if err != nil {
		panic(err)
	}
	return db
}

type BadgerBackend struct {
	db *badger.DB
}

func NewBadgerBackend(db *badger.DB) *BadgerBackend {
	return &BadgerBackend{db: db}
}

func (backend *BadgerBackend) Close() error {
	return backend.db.Close()
}

func (backend *BadgerBackend) txnGet(key []byte) ([]byte, error) {
	var snapshotBytes []byte
	err := backend.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		snapshotBytes, err = item.ValueCopy(nil)
		return err
	})
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	return snapshotBytes, err
}

func (backend *BadgerBackend) txnPut(key, buf []byte) error {
	return backend.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, buf)
	})
}

func (backend *BadgerBackend) txnDelete(key []byte) error {
	return backend.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (backend *BadgerBackend) Get(queryID int64, groupKey string) ([]byte, error) {
	return backend.txnGet(GetKey(queryID, groupKey))
}

func (backend *BadgerBackend) Put(queryID int64, groupKey string, buf []byte) error {
	return backend.txnPut(GetKey(queryID, groupKey), buf)
}

func (backend *BadgerBackend) Delete(queryID int64, groupKey string) error {
	return backend.txnDelete(GetKey(queryID, groupKey))
}

func (backend *BadgerBackend) IterateQuery(queryID int64, fn func(string, []byte) error) error {
	prefix := GetKey(queryID, "")
	return backend.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			buf, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(GetGroupKeyFromKey(item.Key()), buf); err != nil {
				return err
			}
		}
		return nil
	})
}
