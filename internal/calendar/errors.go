package calendar

import "fmt"

// Kind classifies an operation failure so callers and tests can branch on
// the failure class instead of matching message text.
type Kind int

const (
	KindParse Kind = iota + 1
	KindLookup
	KindArgument
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindParse:
		return "parse"
	case KindLookup:
		return "lookup"
	case KindArgument:
		return "argument"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// OpError is the only error type the calendar operations return. Display
// strings are produced from it at the boundary by RenderError.
type OpError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

func opErr(op string, kind Kind, format string, args ...any) *OpError {
	return &OpError{Op: op, Kind: kind, Err: fmt.Errorf(format, args...)}
}
