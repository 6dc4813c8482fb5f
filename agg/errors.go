package agg

import (
	"errors"
	"fmt"
)

// Sentinel targets for errors.Is. Every error produced by this package
// matches exactly one kind; extension-resolution errors additionally
// match ErrConfiguration so callers that only care about "bad plan"
// need a single check.
var (
	ErrConfiguration        = errors.New("aggregator configuration error")
	ErrUnsupportedOperation = errors.New("operation not supported by aggregator")
	ErrExtension            = errors.New("aggregator extension resolution error")
	ErrCorruptSnapshot      = errors.New("corrupt aggregator snapshot")
)

type errKind uint8

const (
	kindConfiguration errKind = iota
	kindUnsupportedOperation
	kindExtension
	kindCorruptSnapshot
)

// Error carries the aggregator name alongside the failure kind so
// init-time messages always identify which aggregator rejected its
// configuration.
type Error struct {
	kind       errKind
	aggregator string
	msg        string
}

func (e *Error) Error() string {
	if e.aggregator == "" {
		return e.msg
	}
	return e.aggregator + ": " + e.msg
}

func (e *Error) Aggregator() string {
	return e.aggregator
}

func (e *Error) Is(target error) bool {
	switch e.kind {
	case kindConfiguration:
		return target == ErrConfiguration
	case kindUnsupportedOperation:
		return target == ErrUnsupportedOperation
	case kindExtension:
		return target == ErrExtension || target == ErrConfiguration
	case kindCorruptSnapshot:
		return target == ErrCorruptSnapshot
	default:
		return false
	}
}

func configErrorf(aggregator, format string, args ...interface{}) error {
	return &Error{kind: kindConfiguration, aggregator: aggregator, msg: fmt.Sprintf(format, args...)}
}

func unsupportedErrorf(aggregator, format string, args ...interface{}) error {
	return &Error{kind: kindUnsupportedOperation, aggregator: aggregator, msg: fmt.Sprintf(format, args...)}
}

func extensionErrorf(format string, args ...interface{}) error {
	return &Error{kind: kindExtension, msg: fmt.Sprintf(format, args...)}
}

func snapshotErrorf(format string, args ...interface{}) error {
	return &Error{kind: kindCorruptSnapshot, msg: fmt.Sprintf(format, args...)}
}

// arityError reports init-time parameter count mismatches with the
// expected vs provided counts, e.g.
// "and aggregator requires exactly 1 parameter(s), got 2".
func arityError(aggregator string, want, got int) error {
	return configErrorf(aggregator,
		"%s aggregator requires exactly %d parameter(s), got %d", aggregator, want, got)
}

func stateTypeError(aggregator string, state State) error {
	return unsupportedErrorf(aggregator, "unexpected state type %T", state)
}
