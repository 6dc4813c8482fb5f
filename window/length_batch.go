package window

import (
	"fmt"

	"streamagg/agg"
	"streamagg/partition"
	"streamagg/value"
)

// LengthBatch is a tumbling window of fixed event count per partition.
// Events buffer until the batch fills; the full batch then replaces
// the previous one in a single retract-batch/add-batch exchange, which
// is what the executors' batch overloads exist for.
type LengthBatch struct {
	length int
	exec   agg.Executor
	arena  *partition.Store
	cur    map[partition.Key][]value.Value
	prev   map[partition.Key][]value.Value
}

func NewLengthBatch(length int, exec agg.Executor, arena *partition.Store) (*LengthBatch, error) {
	if length <= 0 {
		return nil, fmt.Errorf("batch length must be positive, got %d: %w", length, agg.ErrConfiguration)
	}
	return &LengthBatch{
		length: length,
		exec:   exec,
		arena:  arena,
		cur:    make(map[partition.Key][]value.Value),
		prev:   make(map[partition.Key][]value.Value),
	}, nil
}

// Append buffers one event. When key's batch fills, the previous batch
// is retracted, the new batch is added, and the batch aggregate is
// returned with emitted=true. Until then emitted is false and the
// returned value is null.
func (w *LengthBatch) Append(key partition.Key, v value.Value) (out value.Value, emitted bool, err error) {
	buf := append(w.cur[key], v)
	if len(buf) < w.length {
		w.cur[key] = buf
		return value.Null(), false, nil
	}

	state := w.arena.GetOrCreate(key)
	if prev := w.prev[key]; len(prev) > 0 {
		if _, err := w.exec.ProcessRemoveBatch(prev, state); err != nil {
			return value.Null(), false, err
		}
	}
	out, err = w.exec.ProcessAddBatch(buf, state)
	if err != nil {
		return value.Null(), false, err
	}

	w.prev[key] = buf
	w.cur[key] = nil
	return out, true, nil
}

// Pending reports how many events are buffered for key's next batch.
func (w *LengthBatch) Pending(key partition.Key) int {
	return len(w.cur[key])
}
