package agg

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"streamagg/value"
)

func strArgs() []Argument {
	return []Argument{{Name: "arg", Type: value.TypeString, Dynamic: true}}
}

func TestDistinctCount_AddRemove(t *testing.T) {
	exec := NewDistinctCountExecutor()
	st := mustInit(t, exec, strArgs())

	assert.Equal(t, mustAdd(t, exec, st, value.String("a")), value.Long(1))
	assert.Equal(t, mustAdd(t, exec, st, value.String("b")), value.Long(2))
	assert.Equal(t, mustAdd(t, exec, st, value.String("a")), value.Long(2))

	// "a" still has one live occurrence after the first retraction
	assert.Equal(t, mustRemove(t, exec, st, value.String("a")), value.Long(2))
	assert.Equal(t, mustRemove(t, exec, st, value.String("a")), value.Long(1))
}

func TestDistinctCount_TypedIdentity(t *testing.T) {
	exec := NewDistinctCountExecutor()
	st := mustInit(t, exec, numArgs(value.TypeLong))

	// long 1 and string "1" are different members
	mustAdd(t, exec, st, value.Long(1))
	assert.Equal(t, mustAdd(t, exec, st, value.String("1")), value.Long(2))
}

func TestDistinctCount_Destroyability(t *testing.T) {
	exec := NewDistinctCountExecutor()
	st := mustInit(t, exec, strArgs())
	assert.True(t, st.CanDestroy())

	mustAdd(t, exec, st, value.String("a"))
	assert.False(t, st.CanDestroy())

	mustRemove(t, exec, st, value.String("a"))
	assert.True(t, st.CanDestroy())
}

func TestDistinctCount_SnapshotRestore(t *testing.T) {
	exec := NewDistinctCountExecutor()
	st := mustInit(t, exec, strArgs())
	mustAdd(t, exec, st, value.String("a"))
	mustAdd(t, exec, st, value.String("a"))
	mustAdd(t, exec, st, value.String("b"))

	fresh := mustInit(t, exec, strArgs())
	assert.Nil(t, fresh.Restore(st.Snapshot()))

	assert.Equal(t, mustRemove(t, exec, fresh, value.String("a")), value.Long(2))
	assert.Equal(t, mustRemove(t, exec, fresh, value.String("a")), value.Long(1))
}

func TestDistinctCount_Reset(t *testing.T) {
	exec := NewDistinctCountExecutor()
	st := mustInit(t, exec, strArgs())
	mustAdd(t, exec, st, value.String("a"))

	assert.Equal(t, exec.Reset(st), value.Long(0))
	assert.True(t, st.CanDestroy())
}
