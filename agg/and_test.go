package agg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"streamagg/value"
)

func TestAnd_AddRemove(t *testing.T) {
	exec := NewAndExecutor()
	st := mustInit(t, exec, boolArgs())

	assert.Equal(t, mustAdd(t, exec, st, value.Bool(true)), value.Bool(true))
	assert.Equal(t, mustAdd(t, exec, st, value.Bool(true)), value.Bool(true))
	assert.Equal(t, mustAdd(t, exec, st, value.Bool(false)), value.Bool(false))

	// retracting the lone false flips the window back to true
	assert.Equal(t, mustRemove(t, exec, st, value.Bool(false)), value.Bool(true))
}

func TestAnd_BatchEquivalence(t *testing.T) {
	exec := NewAndExecutor()
	single := mustInit(t, exec, boolArgs())
	batched := mustInit(t, exec, boolArgs())

	vs := []value.Value{value.Bool(true), value.Bool(false), value.Bool(true)}
	var last value.Value
	for _, v := range vs {
		last = mustAdd(t, exec, single, v)
	}

	out, err := exec.ProcessAddBatch(vs, batched)
	assert.Nil(t, err)
	assert.Equal(t, out, last)
}

func TestAnd_EmptyWindowIsFalse(t *testing.T) {
	exec := NewAndExecutor()
	st := mustInit(t, exec, boolArgs())

	assert.Equal(t, exec.Reset(st), value.Bool(false))

	mustAdd(t, exec, st, value.Bool(true))
	assert.Equal(t, exec.Reset(st), value.Bool(false))
	assert.True(t, st.CanDestroy())
}

func TestAnd_Destroyability(t *testing.T) {
	exec := NewAndExecutor()
	st := mustInit(t, exec, boolArgs())
	assert.True(t, st.CanDestroy())

	mustAdd(t, exec, st, value.Bool(true))
	mustAdd(t, exec, st, value.Bool(false))
	assert.False(t, st.CanDestroy())

	mustRemove(t, exec, st, value.Bool(false))
	mustRemove(t, exec, st, value.Bool(true))
	assert.True(t, st.CanDestroy())
}

func TestAnd_WrongArity(t *testing.T) {
	exec := NewAndExecutor()
	_, err := exec.Init(&InitParams{Arguments: append(boolArgs(), boolArgs()...)})
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.Contains(t, err.Error(), "requires exactly 1 parameter(s), got 2")
}

func TestAnd_WrongParameterType(t *testing.T) {
	exec := NewAndExecutor()
	_, err := exec.Init(&InitParams{Arguments: numArgs(value.TypeDouble)})
	assert.True(t, errors.Is(err, ErrConfiguration))
}

func TestAnd_NonBoolValue(t *testing.T) {
	exec := NewAndExecutor()
	st := mustInit(t, exec, boolArgs())

	_, err := exec.ProcessAdd(value.Long(1), st)
	assert.True(t, errors.Is(err, ErrUnsupportedOperation))
}

func TestAnd_SnapshotRestore(t *testing.T) {
	exec := NewAndExecutor()
	st := mustInit(t, exec, boolArgs())
	mustAdd(t, exec, st, value.Bool(true))
	mustAdd(t, exec, st, value.Bool(true))
	mustAdd(t, exec, st, value.Bool(false))

	fresh := mustInit(t, exec, boolArgs())
	assert.Nil(t, fresh.Restore(st.Snapshot()))

	assert.Equal(t, mustRemove(t, exec, fresh, value.Bool(false)), value.Bool(true))
}

func TestAnd_RestoreMissingField(t *testing.T) {
	exec := NewAndExecutor()
	st := mustInit(t, exec, boolArgs())

	snap := NewSnapshot()
	snap.Put("trueEventsCount", int64(1))
	err := st.Restore(snap)
	assert.True(t, errors.Is(err, ErrCorruptSnapshot))
	assert.Contains(t, err.Error(), "falseEventsCount")
}

func TestOr_AddRemove(t *testing.T) {
	exec := NewOrExecutor()
	st := mustInit(t, exec, boolArgs())

	assert.Equal(t, mustAdd(t, exec, st, value.Bool(false)), value.Bool(false))
	assert.Equal(t, mustAdd(t, exec, st, value.Bool(true)), value.Bool(true))
	assert.Equal(t, mustRemove(t, exec, st, value.Bool(true)), value.Bool(false))
	assert.Equal(t, exec.Reset(st), value.Bool(false))
	assert.True(t, st.CanDestroy())
}

func TestOr_ReturnType(t *testing.T) {
	assert.Equal(t, NewOrExecutor().ReturnType(), value.TypeBool)
	assert.Equal(t, NewAndExecutor().ReturnType(), value.TypeBool)
}
