package agg

import (
	"sort"
	"sync"

	"streamagg/value"
)

// Extension is the discovery metadata an aggregator publishes: name,
// namespace, parameter schema and documentation. Metadata only; it
// carries no runtime behavior.
type Extension struct {
	Name        string
	Namespace   string
	Description string
	Parameters  []Parameter
	Return      ReturnAttribute
	Example     string
}

type Parameter struct {
	Name        string
	Description string
	Types       []value.Type
	Dynamic     bool
}

type ReturnAttribute struct {
	Description string
	Types       []value.Type
}

type registration struct {
	meta Extension
	ctor func() Executor
}

var (
	registryMu sync.RWMutex
	registry   = map[string]registration{}
)

// Register adds an aggregator to the static extension table. Called
// from init functions at startup; duplicate names are a programming
// error and panic.
func Register(meta Extension, ctor func() Executor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[meta.Name]; dup {
		panic("agg: duplicate aggregator registration: " + meta.Name)
	}
	registry[meta.Name] = registration{meta: meta, ctor: ctor}
}

// Lookup returns a fresh executor for the named aggregator. A miss is
// an extension-resolution error, distinct from a plain configuration
// error so callers can retry after reloading extensions instead of
// rejecting the query outright.
func Lookup(name string) (Executor, error) {
	registryMu.RLock()
	reg, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, extensionErrorf("no aggregator registered under %q", name)
	}
	return reg.ctor(), nil
}

// Metadata returns the published extension metadata for name.
func Metadata(name string) (Extension, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	reg, ok := registry[name]
	return reg.meta, ok
}

// Extensions lists all registered aggregators sorted by name.
func Extensions() []Extension {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]Extension, 0, len(registry))
	for _, reg := range registry {
		out = append(out, reg.meta)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
