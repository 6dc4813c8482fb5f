// Package window drives the aggregator add/remove protocol. Windowing
// policy lives here; the aggregator algebra trusts the window to pair
// every retraction with an earlier matching add.
package window

import (
	"fmt"

	"streamagg/agg"
	"streamagg/partition"
	"streamagg/value"
)

// Length is a sliding window of fixed event count, kept independently
// per group-by partition. Once a partition's window is full, each new
// event retracts the oldest one.
type Length struct {
	length int
	exec   agg.Executor
	arena  *partition.Store
	bufs   map[partition.Key][]value.Value
}

func NewLength(length int, exec agg.Executor, arena *partition.Store) (*Length, error) {
	if length <= 0 {
		return nil, fmt.Errorf("window length must be positive, got %d: %w", length, agg.ErrConfiguration)
	}
	return &Length{
		length: length,
		exec:   exec,
		arena:  arena,
		bufs:   make(map[partition.Key][]value.Value),
	}, nil
}

// Append slides key's window forward by one event and returns the
// aggregate over the window's new contents.
func (w *Length) Append(key partition.Key, v value.Value) (value.Value, error) {
	state := w.arena.GetOrCreate(key)
	buf := w.bufs[key]

	if len(buf) == w.length {
		expired := buf[0]
		buf = buf[1:]
		if _, err := w.exec.ProcessRemove(expired, state); err != nil {
			return value.Null(), err
		}
	}

	w.bufs[key] = append(buf, v)
	return w.exec.ProcessAdd(v, state)
}

// Size reports how many events key's window currently holds.
func (w *Length) Size(key partition.Key) int {
	return len(w.bufs[key])
}
