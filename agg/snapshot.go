package agg

// Snapshot is an ordered field-name → value mapping. Order is part of
// the format so serialized snapshots are byte-deterministic for a
// given state.
type Snapshot struct {
	Fields []SnapshotField
}

type SnapshotField struct {
	Name  string
	Value interface{}
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

func (s *Snapshot) Put(name string, v interface{}) {
	s.Fields = append(s.Fields, SnapshotField{Name: name, Value: v})
}

func (s *Snapshot) lookup(name string) (interface{}, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// The typed getters below accept both the values a state put into a
// fresh snapshot and the generic forms a msgpack decode produces
// (int64/uint64 for integers, []interface{} for slices,
// map[string]interface{} for maps).

func (s *Snapshot) Int64(name string) (int64, error) {
	raw, ok := s.lookup(name)
	if !ok {
		return 0, snapshotErrorf("missing field %q", name)
	}
	n, ok := coerceInt64(raw)
	if !ok {
		return 0, snapshotErrorf("field %q: expected integer, got %T", name, raw)
	}
	return n, nil
}

func (s *Snapshot) Float64(name string) (float64, error) {
	raw, ok := s.lookup(name)
	if !ok {
		return 0, snapshotErrorf("missing field %q", name)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	default:
		if n, ok := coerceInt64(raw); ok {
			return float64(n), nil
		}
		return 0, snapshotErrorf("field %q: expected float, got %T", name, raw)
	}
}

func (s *Snapshot) String(name string) (string, error) {
	raw, ok := s.lookup(name)
	if !ok {
		return "", snapshotErrorf("missing field %q", name)
	}
	str, ok := raw.(string)
	if !ok {
		return "", snapshotErrorf("field %q: expected string, got %T", name, raw)
	}
	return str, nil
}

func (s *Snapshot) Int64Slice(name string) ([]int64, error) {
	raw, ok := s.lookup(name)
	if !ok {
		return nil, snapshotErrorf("missing field %q", name)
	}
	switch v := raw.(type) {
	case []int64:
		return v, nil
	case []interface{}:
		out := make([]int64, len(v))
		for i, e := range v {
			n, ok := coerceInt64(e)
			if !ok {
				return nil, snapshotErrorf("field %q[%d]: expected integer, got %T", name, i, e)
			}
			out[i] = n
		}
		return out, nil
	default:
		return nil, snapshotErrorf("field %q: expected integer slice, got %T", name, raw)
	}
}

func (s *Snapshot) Float64Slice(name string) ([]float64, error) {
	raw, ok := s.lookup(name)
	if !ok {
		return nil, snapshotErrorf("missing field %q", name)
	}
	switch v := raw.(type) {
	case []float64:
		return v, nil
	case []interface{}:
		out := make([]float64, len(v))
		for i, e := range v {
			switch f := e.(type) {
			case float64:
				out[i] = f
			case float32:
				out[i] = float64(f)
			default:
				n, ok := coerceInt64(e)
				if !ok {
					return nil, snapshotErrorf("field %q[%d]: expected float, got %T", name, i, e)
				}
				out[i] = float64(n)
			}
		}
		return out, nil
	default:
		return nil, snapshotErrorf("field %q: expected float slice, got %T", name, raw)
	}
}

func (s *Snapshot) CountMap(name string) (map[string]int64, error) {
	raw, ok := s.lookup(name)
	if !ok {
		return nil, snapshotErrorf("missing field %q", name)
	}
	switch v := raw.(type) {
	case map[string]int64:
		out := make(map[string]int64, len(v))
		for k, n := range v {
			out[k] = n
		}
		return out, nil
	case map[string]interface{}:
		out := make(map[string]int64, len(v))
		for k, e := range v {
			n, ok := coerceInt64(e)
			if !ok {
				return nil, snapshotErrorf("field %q[%q]: expected integer, got %T", name, k, e)
			}
			out[k] = n
		}
		return out, nil
	default:
		return nil, snapshotErrorf("field %q: expected count map, got %T", name, raw)
	}
}

func coerceInt64(raw interface{}) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint:
		return int64(v), true
	default:
		return 0, false
	}
}
