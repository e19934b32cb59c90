package errprocess

import (
	"errors"
	"fmt"

	"video_access_service/pkg/logger"

	"go.uber.org/zap"
)

// Error kinds. Match with errors.Is.
var (
	ErrConfiguration   = errors.New("configuration error")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrKeyFormat       = errors.New("key format error")
	ErrIntegrity       = errors.New("integrity error")
	ErrAccessDenied    = errors.New("access denied")
)

// Error is a classified error. Msg is safe to show to callers, Err is not.
type Error struct {
	Kind error
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

// Is matches the error kind
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Set set err info
func Set(errMsg string) error {
	logger.Log.Error(errMsg)
	return errors.New(errMsg)
}

// New logs and returns a classified error
func New(kind error, msg string) error {
	logger.Log.Error(msg, zap.String("kind", kindName(kind)))
	return &Error{Kind: kind, Msg: msg}
}

// Wrap logs and returns a classified error carrying cause
func Wrap(kind error, msg string, cause error) error {
	logger.Log.Error(msg, zap.String("kind", kindName(kind)), zap.Error(cause))
	return &Error{Kind: kind, Msg: msg, Err: cause}
}

// Invalid shorthand for an InvalidArgument error, not logged
func Invalid(format string, args ...any) error {
	return &Error{Kind: ErrInvalidArgument, Msg: fmt.Sprintf(format, args...)}
}

// NotFound shorthand for a NotFound error, not logged
func NotFound(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// PublicMessage returns the caller-safe message of err, or fallback when err carries none
func PublicMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return fallback
}

func kindName(kind error) string {
	if kind == nil {
		return "unknown"
	}
	return kind.Error()
}

// Conflict shorthand for a Conflict error, not logged
func Conflict(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Msg: fmt.Sprintf(format, args...)}
}
