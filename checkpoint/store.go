package checkpoint

import (
	"github.com/dgraph-io/ristretto"

	"streamagg/agg"
	"streamagg/storage"
)

// BackingStore layers a read cache over a checkpoint backend so
// restart-time restores and repeated reads of hot partitions skip the
// decode.
type BackingStore struct {
	backend      storage.Backend
	cacheEnabled bool
	cache        *ristretto.Cache
}

func NewBackingStore(backend storage.Backend, cacheEnabled bool) *BackingStore {
	cache, _ := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 26,
		BufferItems: 64,
	})
	return &BackingStore{
		backend:      backend,
		cacheEnabled: cacheEnabled,
		cache:        cache,
	}
}

func (store *BackingStore) Get(queryID int64, groupKey string) (*agg.Snapshot, error) {
	key := storage.GetKey(queryID, groupKey)
	if store.cacheEnabled {
		if snap, found := store.cache.Get(key); found {
			return snap.(*agg.Snapshot), nil
		}
	}
	buf, err := store.backend.Get(queryID, groupKey)
	if err != nil || buf == nil {
		return nil, err
	}
	return BytesToSnapshot(buf)
}

func (store *BackingStore) Put(queryID int64, groupKey string, snap *agg.Snapshot) error {
	buf, err := SnapshotToBytes(snap)
	if err != nil {
		return err
	}
	if err := store.backend.Put(queryID, groupKey, buf); err != nil {
		return err
	}
	// cache only what actually reached the backend
	if store.cacheEnabled {
		store.cache.Set(storage.GetKey(queryID, groupKey), snap, 1)
	}
	return nil
}

func (store *BackingStore) Delete(queryID int64, groupKey string) error {
	if store.cacheEnabled {
		store.cache.Del(storage.GetKey(queryID, groupKey))
	}
	return store.backend.Delete(queryID, groupKey)
}

// IterateQuery visits every persisted snapshot of one query, decoding
// from the backend bytes. The cache is bypassed so iteration sees
// exactly what would survive a restart.
func (store *BackingStore) IterateQuery(queryID int64, fn func(groupKey string, snap *agg.Snapshot) error) error {
	return store.backend.IterateQuery(queryID, func(groupKey string, buf []byte) error {
		snap, err := BytesToSnapshot(buf)
		if err != nil {
			return err
		}
		return fn(groupKey, snap)
	})
}

func (store *BackingStore) Close() error {
	return store.backend.Close()
}
