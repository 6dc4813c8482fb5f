package agg

import (
	"streamagg/value"
)

func init() {
	Register(Extension{
		Name:        "count",
		Description: "Returns the count of all the events.",
		Parameters: []Parameter{
			{Name: "arg", Description: "Optional value; counted regardless of its content.",
				Types: []value.Type{value.TypeObject}, Dynamic: true},
		},
		Return: ReturnAttribute{
			Description: "Number of events in the window.",
			Types:       []value.Type{value.TypeLong},
		},
		Example: "select count() as numTrades",
	}, func() Executor { return NewCountExecutor() })
}

// CountExecutor counts live events. It takes zero or one argument and
// ignores the argument's value, like a SQL count(*).
type CountExecutor struct{}

func NewCountExecutor() *CountExecutor {
	return &CountExecutor{}
}

type countState struct {
	count int64
}

func (s *countState) CanDestroy() bool {
	return s.count == 0
}

func (s *countState) Snapshot() *Snapshot {
	snap := NewSnapshot()
	snap.Put("count", s.count)
	return snap
}

func (s *countState) Restore(snap *Snapshot) error {
	count, err := snap.Int64("count")
	if err != nil {
		return err
	}
	s.count = count
	return nil
}

func (e *CountExecutor) Init(params *InitParams) (StateFactory, error) {
	if len(params.Arguments) > 1 {
		return nil, configErrorf("count",
			"count aggregator requires at most 1 parameter, got %d", len(params.Arguments))
	}
	return func() State { return &countState{} }, nil
}

func (e *CountExecutor) ReturnType() value.Type {
	return value.TypeLong
}

func (e *CountExecutor) ProcessAdd(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*countState)
	if !ok {
		return value.Null(), stateTypeError("count", state)
	}
	s.count++
	return value.Long(s.count), nil
}

func (e *CountExecutor) ProcessAddBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*countState)
	if !ok {
		return value.Null(), stateTypeError("count", state)
	}
	s.count += int64(len(vs))
	return value.Long(s.count), nil
}

func (e *CountExecutor) ProcessRemove(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*countState)
	if !ok {
		return value.Null(), stateTypeError("count", state)
	}
	s.count--
	return value.Long(s.count), nil
}

func (e *CountExecutor) ProcessRemoveBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*countState)
	if !ok {
		return value.Null(), stateTypeError("count", state)
	}
	s.count -= int64(len(vs))
	return value.Long(s.count), nil
}

func (e *CountExecutor) Reset(state State) value.Value {
	if s, ok := state.(*countState); ok {
		s.count = 0
	}
	return value.Long(0)
}
