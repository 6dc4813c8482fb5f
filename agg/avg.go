package agg

import (
	"github.com/shopspring/decimal"

	"streamagg/value"
)

func init() {
	Register(Extension{
		Name:        "avg",
		Description: "Returns the average for all the events.",
		Parameters: []Parameter{
			{Name: "arg", Description: "The value to be averaged.",
				Types:   []value.Type{value.TypeInt, value.TypeLong, value.TypeDouble, value.TypeFloat},
				Dynamic: true},
		},
		Return: ReturnAttribute{
			Description: "Average of the window, 0 when the window is empty.",
			Types:       []value.Type{value.TypeDouble},
		},
		Example: "select avg(price) as avgPrice",
	}, func() Executor { return NewAvgExecutor() })
}

// AvgExecutor keeps an exact decimal sum and an event count; the
// division happens only at output time, so add/remove pairs cancel
// exactly regardless of input type. The config key "avg.precision"
// rounds the output to that many decimal places; unset leaves the
// full float64 quotient.
type AvgExecutor struct{}

func NewAvgExecutor() *AvgExecutor {
	return &AvgExecutor{}
}

type avgState struct {
	sum       decimal.Decimal
	count     int64
	precision int32
}

func (s *avgState) CanDestroy() bool {
	return s.count == 0 && s.sum.IsZero()
}

func (s *avgState) Snapshot() *Snapshot {
	snap := NewSnapshot()
	snap.Put("sum", s.sum.String())
	snap.Put("count", s.count)
	return snap
}

func (s *avgState) Restore(snap *Snapshot) error {
	raw, err := snap.String("sum")
	if err != nil {
		return err
	}
	sum, err := decimal.NewFromString(raw)
	if err != nil {
		return snapshotErrorf("field %q: bad decimal %q", "sum", raw)
	}
	count, err := snap.Int64("count")
	if err != nil {
		return err
	}
	s.sum = sum
	s.count = count
	return nil
}

func (s *avgState) output() value.Value {
	if s.count == 0 {
		return value.Double(0)
	}
	if s.precision >= 0 {
		return value.Double(s.sum.DivRound(decimal.NewFromInt(s.count), s.precision).InexactFloat64())
	}
	return value.Double(s.sum.InexactFloat64() / float64(s.count))
}

func (s *avgState) apply(v value.Value, sign int64) error {
	f, ok := v.Float64()
	if !ok {
		return unsupportedErrorf("avg", "cannot aggregate %s value %s", v.Type(), v)
	}
	d := decimal.NewFromFloat(f)
	if sign < 0 {
		s.sum = s.sum.Sub(d)
	} else {
		s.sum = s.sum.Add(d)
	}
	s.count += sign
	return nil
}

func (e *AvgExecutor) Init(params *InitParams) (StateFactory, error) {
	if _, err := requireNumeric("avg", params.Arguments); err != nil {
		return nil, err
	}
	precision := int32(params.reader().Int("avg.precision", -1))
	return func() State { return &avgState{precision: precision} }, nil
}

func (e *AvgExecutor) ReturnType() value.Type {
	return value.TypeDouble
}

func (e *AvgExecutor) ProcessAdd(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*avgState)
	if !ok {
		return value.Null(), stateTypeError("avg", state)
	}
	if err := s.apply(v, 1); err != nil {
		return value.Null(), err
	}
	return s.output(), nil
}

func (e *AvgExecutor) ProcessAddBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*avgState)
	if !ok {
		return value.Null(), stateTypeError("avg", state)
	}
	for _, v := range vs {
		if err := s.apply(v, 1); err != nil {
			return value.Null(), err
		}
	}
	return s.output(), nil
}

func (e *AvgExecutor) ProcessRemove(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*avgState)
	if !ok {
		return value.Null(), stateTypeError("avg", state)
	}
	if err := s.apply(v, -1); err != nil {
		return value.Null(), err
	}
	return s.output(), nil
}

func (e *AvgExecutor) ProcessRemoveBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*avgState)
	if !ok {
		return value.Null(), stateTypeError("avg", state)
	}
	for _, v := range vs {
		if err := s.apply(v, -1); err != nil {
			return value.Null(), err
		}
	}
	return s.output(), nil
}

func (e *AvgExecutor) Reset(state State) value.Value {
	if s, ok := state.(*avgState); ok {
		s.sum = decimal.Decimal{}
		s.count = 0
	}
	return value.Double(0)
}
