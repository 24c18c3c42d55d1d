package cachebust

import (
	"errors"
	"fmt"
)

// Sentinel errors for package cachebust.
// Every error returned by the engine matches one of these with errors.Is.
var (
	ErrInvalidAlgorithm     = errors.New("invalid algorithm")
	ErrInvalidBustMethod    = errors.New("invalid bust method")
	ErrDirectoryNotFound    = errors.New("directory not found")
	ErrAssetNotFound        = errors.New("asset not found")
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrInvalidConfig is returned by engines whose Config did not come
	// from Builder.Build.
	ErrInvalidConfig = errors.New("config was not built with Builder.Build")
)

// Error carries the value that caused a failure: an algorithm name, bust
// method, directory or asset path.
type Error struct {
	Kind  error
	Value string
	Err   error
}

func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case ErrInvalidAlgorithm:
		msg = fmt.Sprintf("algorithm %q is invalid", e.Value)
	case ErrInvalidBustMethod:
		msg = fmt.Sprintf("bust method %q is invalid", e.Value)
	case ErrDirectoryNotFound:
		msg = fmt.Sprintf("directory %q is invalid", e.Value)
	case ErrAssetNotFound:
		msg = fmt.Sprintf("asset %q does not exist", e.Value)
	case ErrUnsupportedOperation:
		msg = fmt.Sprintf("pattern generation is not supported for %q", e.Value)
	default:
		msg = fmt.Sprintf("%v: %s", e.Kind, e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, value string, cause error) *Error {
	return &Error{Kind: kind, Value: value, Err: cause}
}

// errorKind is the metrics label for err.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrAssetNotFound):
		return "asset_not_found"
	case errors.Is(err, ErrDirectoryNotFound):
		return "directory_not_found"
	case errors.Is(err, ErrUnsupportedOperation):
		return "unsupported_operation"
	case errors.Is(err, ErrInvalidConfig):
		return "invalid_config"
	default:
		return "io"
	}
}
