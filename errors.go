package nexuscore

import "errors"

// Kind categorizes a nexuscore error so callers can branch on failure class
// without string matching.
type Kind int

const (
	KindIO Kind = iota
	KindIndex
	KindSearch
	KindPlatformAPI
	KindPermissionDenied
	KindInvalidPath
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindIndex:
		return "index"
	case KindSearch:
		return "search"
	case KindPlatformAPI:
		return "platform_api"
	case KindPermissionDenied:
		return "permission_denied"
	case KindInvalidPath:
		return "invalid_path"
	default:
		return "unknown"
	}
}

// Error is the error type returned across package boundaries in nexuscore.
// It carries a Kind plus a contextual message and an optional wrapped cause,
// so callers can use errors.Is/errors.As while still getting a readable
// message at the top level.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func WrapError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, &nexuscore.Error{Kind: nexuscore.KindPermissionDenied}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors for conditions that have no useful contextual message.
var (
	ErrUnsupportedPlatform = errors.New("nexuscore: operation not supported on this platform")
	ErrClosed              = errors.New("nexuscore: already closed")
	ErrJournalUnavailable  = errors.New("nexuscore: USN journal unavailable on this volume")
)
