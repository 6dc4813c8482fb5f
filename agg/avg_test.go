package agg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"streamagg/config"
	"streamagg/value"
)

func TestAvg_AddRemove(t *testing.T) {
	exec := NewAvgExecutor()
	st := mustInit(t, exec, numArgs(value.TypeDouble))

	mustAdd(t, exec, st, value.Double(4))
	assert.Equal(t, mustAdd(t, exec, st, value.Double(6)), value.Double(5.0))
	assert.Equal(t, mustAdd(t, exec, st, value.Double(2)), value.Double(4.0))
	assert.Equal(t, mustRemove(t, exec, st, value.Double(4)), value.Double(4.0))
}

func TestAvg_EmptyWindowIsZero(t *testing.T) {
	exec := NewAvgExecutor()
	st := mustInit(t, exec, numArgs(value.TypeDouble))

	assert.Equal(t, exec.Reset(st), value.Double(0))

	mustAdd(t, exec, st, value.Double(7))
	assert.Equal(t, mustRemove(t, exec, st, value.Double(7)), value.Double(0))
	assert.True(t, st.CanDestroy())
}

func TestAvg_IntegerInputs(t *testing.T) {
	exec := NewAvgExecutor()
	st := mustInit(t, exec, numArgs(value.TypeInt))

	mustAdd(t, exec, st, value.Int(1))
	assert.Equal(t, mustAdd(t, exec, st, value.Int(2)), value.Double(1.5))
	assert.Equal(t, exec.ReturnType(), value.TypeDouble)
}

func TestAvg_BatchEquivalence(t *testing.T) {
	exec := NewAvgExecutor()
	single := mustInit(t, exec, numArgs(value.TypeDouble))
	batched := mustInit(t, exec, numArgs(value.TypeDouble))

	vs := []value.Value{value.Double(1), value.Double(2), value.Double(6)}
	var last value.Value
	for _, v := range vs {
		last = mustAdd(t, exec, single, v)
	}

	out, err := exec.ProcessAddBatch(vs, batched)
	assert.Nil(t, err)
	assert.Equal(t, out, last)
}

func TestAvg_SnapshotRestore(t *testing.T) {
	exec := NewAvgExecutor()
	st := mustInit(t, exec, numArgs(value.TypeDouble))
	mustAdd(t, exec, st, value.Double(4))
	mustAdd(t, exec, st, value.Double(6))

	fresh := mustInit(t, exec, numArgs(value.TypeDouble))
	assert.Nil(t, fresh.Restore(st.Snapshot()))
	assert.Equal(t, mustAdd(t, exec, fresh, value.Double(2)), value.Double(4.0))
}

func TestAvg_ConfiguredPrecision(t *testing.T) {
	exec := NewAvgExecutor()
	factory, err := exec.Init(&InitParams{
		Arguments: numArgs(value.TypeLong),
		Config:    config.FromMap(map[string]interface{}{"avg.precision": 2}),
	})
	assert.Nil(t, err)
	st := factory()

	mustAdd(t, exec, st, value.Long(4))
	mustAdd(t, exec, st, value.Long(3))
	assert.Equal(t, mustAdd(t, exec, st, value.Long(3)), value.Double(3.33))

	// without the key the quotient is returned unrounded
	unrounded := mustInit(t, exec, numArgs(value.TypeLong))
	mustAdd(t, exec, unrounded, value.Long(4))
	mustAdd(t, exec, unrounded, value.Long(3))
	assert.Equal(t, mustAdd(t, exec, unrounded, value.Long(3)), value.Double(10.0/3.0))
}

func TestAvg_NonNumericParameter(t *testing.T) {
	exec := NewAvgExecutor()
	_, err := exec.Init(&InitParams{
		Arguments: []Argument{{Name: "arg", Type: value.TypeBool}},
	})
	assert.True(t, errors.Is(err, ErrConfiguration))
}
