package checkpoint

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"streamagg/agg"
	"streamagg/partition"
	"streamagg/storage"
	"streamagg/value"
)

func sumArena(t *testing.T) (agg.Executor, *partition.Store) {
	t.Helper()
	exec, err := agg.Lookup("sum")
	assert.Nil(t, err)
	factory, err := exec.Init(&agg.InitParams{
		Arguments: []agg.Argument{{Name: "price", Type: value.TypeLong, Dynamic: true}},
	})
	assert.Nil(t, err)
	return exec, partition.NewStore(factory)
}

func TestBackingStore_PutGetDelete(t *testing.T) {
	for _, cacheEnabled := range []bool{false, true} {
		store := NewBackingStore(storage.NewInMemoryBackend(), cacheEnabled)

		snap, err := store.Get(1, "l:1")
		assert.Nil(t, err)
		assert.Nil(t, snap)

		put := agg.NewSnapshot()
		put.Put("count", int64(2))
		put.Put("sum", int64(30))
		assert.Nil(t, store.Put(1, "l:1", put))

		snap, err = store.Get(1, "l:1")
		assert.Nil(t, err)
		assert.NotNil(t, snap)
		count, err := snap.Int64("count")
		assert.Nil(t, err)
		assert.Equal(t, count, int64(2))

		assert.Nil(t, store.Delete(1, "l:1"))
		buf, err := store.backend.Get(1, "l:1")
		assert.Nil(t, err)
		assert.Nil(t, buf)

		assert.Nil(t, store.Close())
	}
}

type brokenPutBackend struct {
	storage.Backend
}

func (b brokenPutBackend) Put(int64, string, []byte) error {
	return errors.New("backend write failed")
}

func TestBackingStore_FailedPutIsNotCached(t *testing.T) {
	store := NewBackingStore(brokenPutBackend{storage.NewInMemoryBackend()}, true)
	defer store.Close()

	snap := agg.NewSnapshot()
	snap.Put("count", int64(1))
	assert.NotNil(t, store.Put(1, "l:1", snap))

	// a rejected write must not be readable afterwards
	got, err := store.Get(1, "l:1")
	assert.Nil(t, err)
	assert.Nil(t, got)
}

func TestCheckpointer_CheckpointRestore(t *testing.T) {
	exec, arena := sumArena(t)

	add := func(group string, v int64) {
		state := arena.GetOrCreate(partition.KeyOf(value.String(group)))
		_, err := exec.ProcessAdd(value.Long(v), state)
		assert.Nil(t, err)
	}
	add("a", 10)
	add("a", 20)
	add("b", 5)

	store := NewBackingStore(storage.NewBadgerBackend(storage.TestBadgerDB()), false)
	defer store.Close()
	cp := NewCheckpointer(store)

	assert.Nil(t, cp.Checkpoint(context.Background(), Query{ID: 7, Arena: arena}))

	_, recovered := sumArena(t)
	assert.Nil(t, cp.Restore(7, recovered))
	assert.Equal(t, recovered.Len(), 2)

	// the recovered states continue exactly where the originals stopped
	state, ok := recovered.Get(partition.KeyOf(value.String("a")))
	assert.True(t, ok)
	out, err := exec.ProcessRemove(value.Long(10), state)
	assert.Nil(t, err)
	assert.Equal(t, out, value.Long(20))

	original, _ := arena.Get(partition.KeyOf(value.String("b")))
	restored, _ := recovered.Get(partition.KeyOf(value.String("b")))
	if diff := cmp.Diff(original.Snapshot(), restored.Snapshot()); diff != "" {
		t.Errorf("restored state differs from checkpointed state:\n%s", diff)
	}
}

func TestCheckpointer_QueriesAreIsolated(t *testing.T) {
	exec, arenaA := sumArena(t)
	_, arenaB := sumArena(t)

	stateA := arenaA.GetOrCreate(partition.KeyOf(value.String("k")))
	_, err := exec.ProcessAdd(value.Long(1), stateA)
	assert.Nil(t, err)
	stateB := arenaB.GetOrCreate(partition.KeyOf(value.String("k")))
	_, err = exec.ProcessAdd(value.Long(2), stateB)
	assert.Nil(t, err)

	store := NewBackingStore(storage.NewInMemoryBackend(), false)
	defer store.Close()
	cp := NewCheckpointer(store)
	assert.Nil(t, cp.Checkpoint(context.Background(),
		Query{ID: 1, Arena: arenaA}, Query{ID: 2, Arena: arenaB}))

	_, recovered := sumArena(t)
	assert.Nil(t, cp.Restore(2, recovered))
	assert.Equal(t, recovered.Len(), 1)

	state, _ := recovered.Get(partition.KeyOf(value.String("k")))
	out, err := exec.ProcessAdd(value.Long(0), state)
	assert.Nil(t, err)
	assert.Equal(t, out, value.Long(2))
}

func TestCheckpointer_RestoreCorruptSnapshot(t *testing.T) {
	store := NewBackingStore(storage.NewInMemoryBackend(), false)
	defer store.Close()

	// a snapshot without the fields the sum state requires
	bogus := agg.NewSnapshot()
	bogus.Put("unrelated", int64(1))
	assert.Nil(t, store.Put(3, "s:k", bogus))

	_, recovered := sumArena(t)
	err := NewCheckpointer(store).Restore(3, recovered)
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, agg.ErrCorruptSnapshot))
}

func TestCheckpointer_CanceledContext(t *testing.T) {
	exec, arena := sumArena(t)
	state := arena.GetOrCreate(partition.KeyOf(value.String("k")))
	_, err := exec.ProcessAdd(value.Long(1), state)
	assert.Nil(t, err)

	store := NewBackingStore(storage.NewInMemoryBackend(), false)
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = NewCheckpointer(store).Checkpoint(ctx, Query{ID: 1, Arena: arena})
	assert.Equal(t, err, context.Canceled)
}
