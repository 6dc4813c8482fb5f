package agg

import (
	"streamagg/config"
	"streamagg/value"
)

// ProcessingMode is how the surrounding query consumes aggregates.
type ProcessingMode uint8

const (
	// ProcessingModeSlide recomputes the aggregate on every event.
	ProcessingModeSlide ProcessingMode = iota
	// ProcessingModeBatch recomputes once per expiring batch.
	ProcessingModeBatch
)

func (m ProcessingMode) String() string {
	if m == ProcessingModeBatch {
		return "batch"
	}
	return "slide"
}

// QueryContext carries query-level metadata an aggregator may need at
// initialization.
type QueryContext struct {
	Name string
	Mode ProcessingMode
}

// Argument describes one already-bound parameter expression of an
// aggregator call: its declared type and whether its value varies per
// event. Values themselves arrive pre-extracted at ProcessAdd time.
type Argument struct {
	Name    string
	Type    value.Type
	Dynamic bool
}

// InitParams bundles everything Init receives. Reader may be nil; a
// nil reader behaves like an empty one.
type InitParams struct {
	Arguments                  []Argument
	Mode                       ProcessingMode
	OutputExpectsExpiredEvents bool
	Config                     config.Reader
	Query                      *QueryContext
}

func (p *InitParams) reader() config.Reader {
	if p.Config == nil {
		return config.Empty()
	}
	return p.Config
}

// requireNumeric validates a single numeric parameter at bind time so
// type failures surface before any event is processed.
func requireNumeric(aggregator string, args []Argument) (value.Type, error) {
	if len(args) != 1 {
		return value.TypeObject, arityError(aggregator, 1, len(args))
	}
	if !args[0].Type.IsNumeric() {
		return value.TypeObject, configErrorf(aggregator,
			"%s aggregator expects a numeric parameter, got %s", aggregator, args[0].Type)
	}
	return args[0].Type, nil
}
