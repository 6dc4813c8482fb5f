package storage

import (
	"encoding/binary"
	"sync"
)

// GetKey builds the composite checkpoint key:
// <8 bytes little-endian query ID> <raw group-by key bytes>.
func GetKey(queryID int64, groupKey string) []byte {
	buf := make([]byte, 8+len(groupKey))
	binary.LittleEndian.PutUint64(buf[:8], uint64(queryID))
	copy(buf[8:], groupKey)
	return buf
}

func GetQueryIDFromKey(buf []byte) int64 {
	return int64(binary.LittleEndian.Uint64(buf[:8]))
}

func GetGroupKeyFromKey(buf []byte) string {
	return string(buf[8:])
}

// Backend stores serialized aggregate-state snapshots keyed by
// (query ID, group-by key). Get returns nil for an absent key.
type Backend interface {
	Get(queryID int64, groupKey string) ([]byte, error)
	Put(queryID int64, groupKey string, buf []byte) error
	Delete(queryID int64, groupKey string) error

	// IterateQuery visits every stored snapshot of one query.
	IterateQuery(queryID int64, fn func(groupKey string, buf []byte) error) error

	Close() error
}

type InMemoryBackend struct {
	mutex     sync.Mutex
	snapshots map[string][]byte
}

func NewInMemoryBackend() *InMemoryBackend {
	return &InMemoryBackend{
		snapshots: make(map[string][]byte),
	}
}

func (backend *InMemoryBackend) Get(queryID int64, groupKey string) ([]byte, error) {
	backend.mutex.Lock()
	defer backend.mutex.Unlock()
	return backend.snapshots[string(GetKey(queryID, groupKey))], nil
}

func (backend *InMemoryBackend) Put(queryID int64, groupKey string, buf []byte) error {
	backend.mutex.Lock()
	defer backend.mutex.Unlock()
	backend.snapshots[string(GetKey(queryID, groupKey))] = buf
	return nil
}

func (backend *InMemoryBackend) Delete(queryID int64, groupKey string) error {
	backend.mutex.Lock()
	defer backend.mutex.Unlock()
	delete(backend.snapshots, string(GetKey(queryID, groupKey)))
	return nil
}

func (backend *InMemoryBackend) IterateQuery(queryID int64, fn func(string, []byte) error) error {
	backend.mutex.Lock()
	defer backend.mutex.Unlock()
	for k, buf := range backend.snapshots {
		keyBytes := []byte(k)
		if GetQueryIDFromKey(keyBytes) != queryID {
			continue
		}
		if err := fn(GetGroupKeyFromKey(keyBytes), buf); err != nil {
			return err
		}
	}
	return nil
}

func (backend *InMemoryBackend) Close() error {
	backend.mutex.Lock()
	defer backend.mutex.Unlock()
	backend.snapshots = nil
	return nil
}
