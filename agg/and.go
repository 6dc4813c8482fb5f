package agg

import (
	"streamagg/value"
)

func init() {
	Register(Extension{
		Name:        "and",
		Description: "Returns the result of AND operation for all the events.",
		Parameters: []Parameter{
			{Name: "arg", Description: "The value to be AND-ed.", Types: []value.Type{value.TypeBool}, Dynamic: true},
		},
		Return: ReturnAttribute{
			Description: "True only if all of its operands are true, else false.",
			Types:       []value.Type{value.TypeBool},
		},
		Example: "select and(isFraud) as isFraudTransaction",
	}, func() Executor { return NewAndExecutor() })
}

// AndExecutor computes a running logical AND by counting true and
// false events, so a retraction only decrements the matching counter.
type AndExecutor struct{}

func NewAndExecutor() *AndExecutor {
	return &AndExecutor{}
}

type logicalState struct {
	trueCount  int64
	falseCount int64
}

func (s *logicalState) CanDestroy() bool {
	return s.trueCount == 0 && s.falseCount == 0
}

func (s *logicalState) Snapshot() *Snapshot {
	snap := NewSnapshot()
	snap.Put("trueEventsCount", s.trueCount)
	snap.Put("falseEventsCount", s.falseCount)
	return snap
}

func (s *logicalState) Restore(snap *Snapshot) error {
	trueCount, err := snap.Int64("trueEventsCount")
	if err != nil {
		return err
	}
	falseCount, err := snap.Int64("falseEventsCount")
	if err != nil {
		return err
	}
	s.trueCount = trueCount
	s.falseCount = falseCount
	return nil
}

func (e *AndExecutor) Init(params *InitParams) (StateFactory, error) {
	if err := validateLogicalArgs("and", params.Arguments); err != nil {
		return nil, err
	}
	return func() State { return &logicalState{} }, nil
}

func (e *AndExecutor) ReturnType() value.Type {
	return value.TypeBool
}

func (e *AndExecutor) ProcessAdd(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*logicalState)
	if !ok {
		return value.Null(), stateTypeError("and", state)
	}
	if err := s.add("and", v); err != nil {
		return value.Null(), err
	}
	return value.Bool(s.trueCount > 0 && s.falseCount == 0), nil
}

func (e *AndExecutor) ProcessAddBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*logicalState)
	if !ok {
		return value.Null(), stateTypeError("and", state)
	}
	for _, v := range vs {
		if err := s.add("and", v); err != nil {
			return value.Null(), err
		}
	}
	return value.Bool(s.trueCount > 0 && s.falseCount == 0), nil
}

func (e *AndExecutor) ProcessRemove(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*logicalState)
	if !ok {
		return value.Null(), stateTypeError("and", state)
	}
	if err := s.remove("and", v); err != nil {
		return value.Null(), err
	}
	return value.Bool(s.trueCount > 0 && s.falseCount == 0), nil
}

func (e *AndExecutor) ProcessRemoveBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*logicalState)
	if !ok {
		return value.Null(), stateTypeError("and", state)
	}
	for _, v := range vs {
		if err := s.remove("and", v); err != nil {
			return value.Null(), err
		}
	}
	return value.Bool(s.trueCount > 0 && s.falseCount == 0), nil
}

func (e *AndExecutor) Reset(state State) value.Value {
	if s, ok := state.(*logicalState); ok {
		s.trueCount = 0
		s.falseCount = 0
	}
	return value.Bool(false)
}

// Shared by and/or.

func validateLogicalArgs(aggregator string, args []Argument) error {
	if len(args) != 1 {
		return arityError(aggregator, 1, len(args))
	}
	if args[0].Type != value.TypeBool {
		return configErrorf(aggregator,
			"%s aggregator expects a bool parameter, got %s", aggregator, args[0].Type)
	}
	return nil
}

func (s *logicalState) add(aggregator string, v value.Value) error {
	b, ok := v.Bool()
	if !ok {
		return unsupportedErrorf(aggregator, "cannot aggregate %s value %s", v.Type(), v)
	}
	if b {
		s.trueCount++
	} else {
		s.falseCount++
	}
	return nil
}

func (s *logicalState) remove(aggregator string, v value.Value) error {
	b, ok := v.Bool()
	if !ok {
		return unsupportedErrorf(aggregator, "cannot aggregate %s value %s", v.Type(), v)
	}
	if b {
		s.trueCount--
	} else {
		s.falseCount--
	}
	return nil
}
