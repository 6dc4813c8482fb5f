package agg

import (
	"testing"

	"streamagg/value"
)

func boolArgs() []Argument {
	return []Argument{{Name: "arg", Type: value.TypeBool, Dynamic: true}}
}

func numArgs(t value.Type) []Argument {
	return []Argument{{Name: "arg", Type: t, Dynamic: true}}
}

func mustInit(t *testing.T, exec Executor, args []Argument) State {
	t.Helper()
	factory, err := exec.Init(&InitParams{
		Arguments: args,
		Mode:      ProcessingModeSlide,
		Query:     &QueryContext{Name: "test-query"},
	})
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	return factory()
}

func mustAdd(t *testing.T, exec Executor, st State, v value.Value) value.Value {
	t.Helper()
	out, err := exec.ProcessAdd(v, st)
	if err != nil {
		t.Fatalf("processAdd(%s) failed: %v", v, err)
	}
	return out
}

func mustRemove(t *testing.T, exec Executor, st State, v value.Value) value.Value {
	t.Helper()
	out, err := exec.ProcessRemove(v, st)
	if err != nil {
		t.Fatalf("processRemove(%s) failed: %v", v, err)
	}
	return out
}
