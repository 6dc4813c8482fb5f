package agg

import (
	"github.com/shopspring/decimal"

	"streamagg/value"
)

func init() {
	Register(Extension{
		Name:        "sum",
		Description: "Returns the sum for all the events.",
		Parameters: []Parameter{
			{Name: "arg", Description: "The value to be summed.",
				Types:   []value.Type{value.TypeInt, value.TypeLong, value.TypeDouble, value.TypeFloat},
				Dynamic: true},
		},
		Return: ReturnAttribute{
			Description: "Sum of the window; long for integral inputs, double otherwise.",
			Types:       []value.Type{value.TypeLong, value.TypeDouble},
		},
		Example: "select sum(volume) as totalVolume",
	}, func() Executor { return NewSumExecutor() })
}

// SumExecutor keeps a running sum and a live-event count. Integral
// inputs accumulate on int64. Floating inputs accumulate on a decimal
// so that a retraction subtracts exactly what the matching add
// contributed; a float64 accumulator drifts under add/remove pairs.
type SumExecutor struct {
	argType    value.Type
	returnType value.Type
}

func NewSumExecutor() *SumExecutor {
	return &SumExecutor{argType: value.TypeObject, returnType: value.TypeLong}
}

type sumState struct {
	integral bool
	count    int64
	sumInt   int64
	sumDec   decimal.Decimal
}

func (s *sumState) CanDestroy() bool {
	return s.count == 0 && s.sumInt == 0 && s.sumDec.IsZero()
}

func (s *sumState) Snapshot() *Snapshot {
	snap := NewSnapshot()
	snap.Put("count", s.count)
	if s.integral {
		snap.Put("sum", s.sumInt)
	} else {
		snap.Put("sum", s.sumDec.String())
	}
	return snap
}

func (s *sumState) Restore(snap *Snapshot) error {
	count, err := snap.Int64("count")
	if err != nil {
		return err
	}
	if s.integral {
		sum, err := snap.Int64("sum")
		if err != nil {
			return err
		}
		s.count = count
		s.sumInt = sum
		return nil
	}
	raw, err := snap.String("sum")
	if err != nil {
		return err
	}
	sum, err := decimal.NewFromString(raw)
	if err != nil {
		return snapshotErrorf("field %q: bad decimal %q", "sum", raw)
	}
	s.count = count
	s.sumDec = sum
	return nil
}

func (s *sumState) reset() {
	s.count = 0
	s.sumInt = 0
	s.sumDec = decimal.Decimal{}
}

func (s *sumState) output() value.Value {
	if s.integral {
		return value.Long(s.sumInt)
	}
	return value.Double(s.sumDec.InexactFloat64())
}

func (e *SumExecutor) Init(params *InitParams) (StateFactory, error) {
	argType, err := requireNumeric("sum", params.Arguments)
	if err != nil {
		return nil, err
	}
	e.argType = argType
	integral := argType == value.TypeInt || argType == value.TypeLong
	if integral {
		e.returnType = value.TypeLong
	} else {
		e.returnType = value.TypeDouble
	}
	return func() State { return &sumState{integral: integral} }, nil
}

func (e *SumExecutor) ReturnType() value.Type {
	return e.returnType
}

func (e *SumExecutor) ProcessAdd(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*sumState)
	if !ok {
		return value.Null(), stateTypeError("sum", state)
	}
	if err := s.apply("sum", v, 1); err != nil {
		return value.Null(), err
	}
	return s.output(), nil
}

func (e *SumExecutor) ProcessAddBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*sumState)
	if !ok {
		return value.Null(), stateTypeError("sum", state)
	}
	for _, v := range vs {
		if err := s.apply("sum", v, 1); err != nil {
			return value.Null(), err
		}
	}
	return s.output(), nil
}

func (e *SumExecutor) ProcessRemove(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*sumState)
	if !ok {
		return value.Null(), stateTypeError("sum", state)
	}
	if err := s.apply("sum", v, -1); err != nil {
		return value.Null(), err
	}
	return s.output(), nil
}

func (e *SumExecutor) ProcessRemoveBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*sumState)
	if !ok {
		return value.Null(), stateTypeError("sum", state)
	}
	for _, v := range vs {
		if err := s.apply("sum", v, -1); err != nil {
			return value.Null(), err
		}
	}
	return s.output(), nil
}

func (e *SumExecutor) Reset(state State) value.Value {
	s, ok := state.(*sumState)
	if !ok {
		return value.Null()
	}
	s.reset()
	return s.output()
}

// apply adds (sign=1) or retracts (sign=-1) one value.
func (s *sumState) apply(aggregator string, v value.Value, sign int64) error {
	if s.integral {
		n, ok := v.Int64()
		if !ok {
			return unsupportedErrorf(aggregator, "cannot aggregate %s value %s", v.Type(), v)
		}
		s.sumInt += sign * n
		s.count += sign
		return nil
	}
	f, ok := v.Float64()
	if !ok {
		return unsupportedErrorf(aggregator, "cannot aggregate %s value %s", v.Type(), v)
	}
	d := decimal.NewFromFloat(f)
	if sign < 0 {
		s.sumDec = s.sumDec.Sub(d)
	} else {
		s.sumDec = s.sumDec.Add(d)
	}
	s.count += sign
	return nil
}
