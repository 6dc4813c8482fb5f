package agg

import (
	"streamagg/tree"
	"streamagg/value"
)

func init() {
	numericTypes := []value.Type{value.TypeInt, value.TypeLong, value.TypeDouble, value.TypeFloat}
	Register(Extension{
		Name:        "min",
		Description: "Returns the minimum value for all the events.",
		Parameters: []Parameter{
			{Name: "arg", Description: "The value to find the minimum of.", Types: numericTypes, Dynamic: true},
		},
		Return: ReturnAttribute{
			Description: "Minimum of the window, null when the window is empty.",
			Types:       numericTypes,
		},
		Example: "select min(temp) as minTemp",
	}, func() Executor { return NewMinExecutor() })
	Register(Extension{
		Name:        "max",
		Description: "Returns the maximum value for all the events.",
		Parameters: []Parameter{
			{Name: "arg", Description: "The value to find the maximum of.", Types: numericTypes, Dynamic: true},
		},
		Return: ReturnAttribute{
			Description: "Maximum of the window, null when the window is empty.",
			Types:       numericTypes,
		},
		Example: "select max(temp) as maxTemp",
	}, func() Executor { return NewMaxExecutor() })
}

// ExtremumExecutor backs both min and max. The state is an ordered
// multiset of live values on a red-black tree: add inserts one
// occurrence, remove deletes exactly one occurrence, and the extremum
// is the smallest or largest remaining key.
type ExtremumExecutor struct {
	name       string
	max        bool
	returnType value.Type
}

func NewMinExecutor() *ExtremumExecutor {
	return &ExtremumExecutor{name: "min", returnType: value.TypeObject}
}

func NewMaxExecutor() *ExtremumExecutor {
	return &ExtremumExecutor{name: "max", max: true, returnType: value.TypeObject}
}

// scalarKey orders tree nodes by the numeric value they hold.
type scalarKey struct {
	v value.Value
}

func (k scalarKey) ComparedTo(other tree.RbKey) tree.KeyComparison {
	switch value.Compare(k.v, other.(scalarKey).v) {
	case -1:
		return tree.KeyIsLess
	case 1:
		return tree.KeyIsGreater
	default:
		return tree.KeysAreEqual
	}
}

type extremumState struct {
	name   string
	max    bool
	typ    value.Type
	values *tree.RbTree
	size   int64
}

func newExtremumState(name string, max bool, typ value.Type) *extremumState {
	return &extremumState{name: name, max: max, typ: typ, values: tree.NewRbTree()}
}

func (s *extremumState) integral() bool {
	return s.typ == value.TypeInt || s.typ == value.TypeLong
}

// revive rebuilds a tree key of the state's configured kind from its
// serialized form.
func (s *extremumState) revive(i int64, f float64) value.Value {
	switch s.typ {
	case value.TypeInt:
		return value.Int(int32(i))
	case value.TypeLong:
		return value.Long(i)
	case value.TypeFloat:
		return value.Float(float32(f))
	default:
		return value.Double(f)
	}
}

func (s *extremumState) CanDestroy() bool {
	return s.size == 0 && s.values.IsEmpty()
}

func (s *extremumState) Snapshot() *Snapshot {
	counts := make([]int64, 0, s.values.Count())
	snap := NewSnapshot()
	if s.integral() {
		keys := make([]int64, 0, s.values.Count())
		s.values.Map(func(key tree.RbKey, val interface{}) bool {
			n, _ := key.(scalarKey).v.Int64()
			keys = append(keys, n)
			counts = append(counts, val.(int64))
			return false
		})
		snap.Put("values", keys)
	} else {
		keys := make([]float64, 0, s.values.Count())
		s.values.Map(func(key tree.RbKey, val interface{}) bool {
			f, _ := key.(scalarKey).v.Float64()
			keys = append(keys, f)
			counts = append(counts, val.(int64))
			return false
		})
		snap.Put("values", keys)
	}
	snap.Put("counts", counts)
	return snap
}

func (s *extremumState) Restore(snap *Snapshot) error {
	counts, err := snap.Int64Slice("counts")
	if err != nil {
		return err
	}

	values := tree.NewRbTree()
	size := int64(0)
	if s.integral() {
		keys, err := snap.Int64Slice("values")
		if err != nil {
			return err
		}
		if len(keys) != len(counts) {
			return snapshotErrorf("values/counts length mismatch: %d vs %d", len(keys), len(counts))
		}
		for i, k := range keys {
			values.Insert(scalarKey{v: s.revive(k, 0)}, counts[i])
			size += counts[i]
		}
	} else {
		keys, err := snap.Float64Slice("values")
		if err != nil {
			return err
		}
		if len(keys) != len(counts) {
			return snapshotErrorf("values/counts length mismatch: %d vs %d", len(keys), len(counts))
		}
		for i, k := range keys {
			values.Insert(scalarKey{v: s.revive(0, k)}, counts[i])
			size += counts[i]
		}
	}
	s.values = values
	s.size = size
	return nil
}

func (s *extremumState) add(v value.Value) error {
	if !v.Type().IsNumeric() {
		return unsupportedErrorf(s.name, "cannot aggregate %s value %s", v.Type(), v)
	}
	key := scalarKey{v: v}
	if cur, ok := s.values.Get(key); ok {
		s.values.Insert(key, cur.(int64)+1)
	} else {
		s.values.Insert(key, int64(1))
	}
	s.size++
	return nil
}

func (s *extremumState) remove(v value.Value) error {
	if !v.Type().IsNumeric() {
		return unsupportedErrorf(s.name, "cannot aggregate %s value %s", v.Type(), v)
	}
	key := scalarKey{v: v}
	cur, ok := s.values.Get(key)
	if !ok {
		// remove without a matching add breaks the window contract
		return unsupportedErrorf(s.name, "retraction of value %s not present in window", v)
	}
	if n := cur.(int64); n > 1 {
		s.values.Insert(key, n-1)
	} else {
		s.values.Delete(key)
	}
	s.size--
	return nil
}

func (s *extremumState) output() value.Value {
	var key tree.RbKey
	if s.max {
		key, _ = s.values.Max()
	} else {
		key, _ = s.values.Min()
	}
	if key == nil {
		return value.Null()
	}
	return key.(scalarKey).v
}

func (e *ExtremumExecutor) Init(params *InitParams) (StateFactory, error) {
	argType, err := requireNumeric(e.name, params.Arguments)
	if err != nil {
		return nil, err
	}
	e.returnType = argType
	name, max := e.name, e.max
	return func() State { return newExtremumState(name, max, argType) }, nil
}

func (e *ExtremumExecutor) ReturnType() value.Type {
	return e.returnType
}

func (e *ExtremumExecutor) ProcessAdd(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*extremumState)
	if !ok {
		return value.Null(), stateTypeError(e.name, state)
	}
	if err := s.add(v); err != nil {
		return value.Null(), err
	}
	return s.output(), nil
}

func (e *ExtremumExecutor) ProcessAddBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*extremumState)
	if !ok {
		return value.Null(), stateTypeError(e.name, state)
	}
	for _, v := range vs {
		if err := s.add(v); err != nil {
			return value.Null(), err
		}
	}
	return s.output(), nil
}

func (e *ExtremumExecutor) ProcessRemove(v value.Value, state State) (value.Value, error) {
	s, ok := state.(*extremumState)
	if !ok {
		return value.Null(), stateTypeError(e.name, state)
	}
	if err := s.remove(v); err != nil {
		return value.Null(), err
	}
	return s.output(), nil
}

func (e *ExtremumExecutor) ProcessRemoveBatch(vs []value.Value, state State) (value.Value, error) {
	s, ok := state.(*extremumState)
	if !ok {
		return value.Null(), stateTypeError(e.name, state)
	}
	for _, v := range vs {
		if err := s.remove(v); err != nil {
			return value.Null(), err
		}
	}
	return s.output(), nil
}

func (e *ExtremumExecutor) Reset(state State) value.Value {
	if s, ok := state.(*extremumState); ok {
		s.values = tree.NewRbTree()
		s.size = 0
	}
	return value.Null()
}
