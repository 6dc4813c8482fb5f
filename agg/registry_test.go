package agg

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"streamagg/value"
)

func TestRegistry_LookupKnown(t *testing.T) {
	for _, name := range []string{"and", "or", "sum", "count", "avg", "min", "max", "distinctCount"} {
		exec, err := Lookup(name)
		assert.Nil(t, err, name)
		assert.NotNil(t, exec, name)
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	_, err := Lookup("median")
	assert.NotNil(t, err)

	// an extension miss is its own kind, but still a configuration error
	assert.True(t, errors.Is(err, ErrExtension))
	assert.True(t, errors.Is(err, ErrConfiguration))
	assert.False(t, errors.Is(err, ErrUnsupportedOperation))
}

func TestRegistry_LookupReturnsFreshExecutors(t *testing.T) {
	a, err := Lookup("sum")
	assert.Nil(t, err)
	b, err := Lookup("sum")
	assert.Nil(t, err)

	// executors bind their argument type at Init and must not be shared
	mustInit(t, a, numArgs(value.TypeDouble))
	mustInit(t, b, numArgs(value.TypeLong))
	assert.Equal(t, a.ReturnType(), value.TypeDouble)
	assert.Equal(t, b.ReturnType(), value.TypeLong)
}

func TestRegistry_Metadata(t *testing.T) {
	meta, ok := Metadata("and")
	assert.True(t, ok)
	assert.Equal(t, meta.Name, "and")
	assert.Equal(t, len(meta.Parameters), 1)
	assert.Equal(t, meta.Parameters[0].Types, []value.Type{value.TypeBool})
	assert.True(t, meta.Parameters[0].Dynamic)
	assert.Equal(t, meta.Return.Types, []value.Type{value.TypeBool})
}

func TestRegistry_ExtensionsSorted(t *testing.T) {
	exts := Extensions()
	assert.True(t, len(exts) >= 8)
	for i := 1; i < len(exts); i++ {
		assert.True(t, exts[i-1].Name < exts[i].Name)
	}
}
