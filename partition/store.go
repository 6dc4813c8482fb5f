// Package partition owns the per-group-by-key arena of aggregate
// states. The engine serializes access per key; the arena does no
// locking of the states themselves.
package partition

import (
	"strings"

	"github.com/rs/zerolog"

	"streamagg/agg"
	"streamagg/logger"
	"streamagg/value"
)

// Key is an interned group-by tuple. Two tuples intern to the same key
// iff they hold the same typed scalars in the same order.
type Key string

const keySeparator = "\x1f"

// KeyOf interns a group-by tuple.
func KeyOf(vals ...value.Value) Key {
	if len(vals) == 0 {
		return Key("")
	}
	if len(vals) == 1 {
		return Key(vals[0].Key())
	}
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = v.Key()
	}
	return Key(strings.Join(parts, keySeparator))
}

// Store maps interned group-by keys to the aggregate state of one
// aggregator configuration. A state is created by the factory the
// first time its key is seen and removed explicitly once it reports
// CanDestroy, instead of lingering until garbage collection.
type Store struct {
	factory agg.StateFactory
	states  map[Key]agg.State
	log     zerolog.Logger
}

func NewStore(factory agg.StateFactory) *Store {
	return &Store{
		factory: factory,
		states:  make(map[Key]agg.State),
		log:     logger.Get("partition"),
	}
}

// GetOrCreate returns the state for key, creating it on first sight.
func (s *Store) GetOrCreate(key Key) agg.State {
	if state, ok := s.states[key]; ok {
		return state
	}
	state := s.factory()
	s.states[key] = state
	return state
}

func (s *Store) Get(key Key) (agg.State, bool) {
	state, ok := s.states[key]
	return state, ok
}

// Evict drops the state for key regardless of its contents.
func (s *Store) Evict(key Key) {
	delete(s.states, key)
}

// EvictDestroyable removes every state whose accumulators are back at
// their neutral value and returns how many were dropped. A later add
// for the same key recreates an equivalent state from scratch.
func (s *Store) EvictDestroyable() int {
	evicted := 0
	for key, state := range s.states {
		if state.CanDestroy() {
			delete(s.states, key)
			evicted++
		}
	}
	if evicted > 0 {
		s.log.Debug().Int("evicted", evicted).Int("remaining", len(s.states)).
			Msg("evicted destroyable partition states")
	}
	return evicted
}

// Range calls fn for each (key, state) pair until fn returns false.
// Iteration order is unspecified.
func (s *Store) Range(fn func(Key, agg.State) bool) {
	for key, state := range s.states {
		if !fn(key, state) {
			return
		}
	}
}

func (s *Store) Len() int {
	return len(s.states)
}
