package agg

import (
	"streamagg/value"
)

func init() {
	Register(Extension{
		Name:        "or",
		Description: "Returns the result of OR operation for all the events.",
		Parameters: []Parameter{
			{Name: "arg", Description: "The value to be OR-ed.", Types: []value.Type{value.TypeBool}, Dynamic: true},
		},
		Return: ReturnAttribute{
			Description: "True if at least one of its operands is true, else false.",
			Types:       []value.Type{value.TypeBool},
		},
		Example: "select or(isFraud) as isSuspiciousTransaction",
	}, func() Executor { return NewOrExecutor() })
}

// OrExecutor shares the true/false counter state with AND; only the
// output predicate differs.
type OrExecutor struct{}

func NewOrExecutor() *OrExecutor {
	return &OrExecutor{}
}

func (e *OrExecutor) Init(params *InitParams) (StateFactory, error) {
	if err := validateLogicalArgs("or", params.Arguments); err != nil {
		return nil, err
	}
	return func() State { return &logicalState{} }, nil
}

func (e *OrExecutor) ReturnType() value.Type {
	return value.TypeBool
}

func (e *OrExecutor) ProcessAdd(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*logicalState)
	if !ok {
		return value.Null(), stateTypeError("or", state)
	}
	if err := s.add("or", v); err != nil {
		return value.Null(), err
	}
	return value.Bool(s.trueCount > 0), nil
}

func (e *OrExecutor) ProcessAddBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*logicalState)
	if !ok {
		return value.Null(), stateTypeError("or", state)
	}
	for _, v := range vs {
		if err := s.add("or", v); err != nil {
			return value.Null(), err
		}
	}
	return value.Bool(s.trueCount > 0), nil
}

func (e *OrExecutor) ProcessRemove(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*logicalState)
	if !ok {
		return value.Null(), stateTypeError("or", state)
	}
	if err := s.remove("or", v); err != nil {
		return value.Null(), err
	}
	return value.Bool(s.trueCount > 0), nil
}

func (e *OrExecutor) ProcessRemoveBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*logicalState)
	if !ok {
		return value.Null(), stateTypeError("or", state)
	}
	for _, v := range vs {
		if err := s.remove("or", v); err != nil {
			return value.Null(), err
		}
	}
	return value.Bool(s.trueCount > 0), nil
}

func (e *OrExecutor) Reset(state State) value.Value {
	if s, ok := state.(*logicalState); ok {
		s.trueCount = 0
		s.falseCount = 0
	}
	return value.Bool(false)
}
