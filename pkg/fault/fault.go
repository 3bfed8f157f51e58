package fault

import (
	"io/fs"

	"gitlab.com/tozd/go/errors"
)

// 🏷️ Kind classifies why a batch step failed
type Kind int

const (
	KindUnknown       Kind = iota
	KindConfiguration      // missing/invalid folder or required input cell
	KindNotFound           // missing file, sheet or folder
	KindFormat             // unexpected identifier pattern, invalid cell address
	KindIO                 // copy/open/save failures
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindNotFound:
		return "not_found"
	case KindFormat:
		return "format"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// ❌ Error is an error tagged with a Kind
type Error struct {
	Kind Kind
	err  error
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// 🏭 Errorf creates a new error of the given kind
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, err: errors.Errorf(format, args...)}
}

// 🔗 Wrap tags err with kind, keeping its message
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, err: err}
}

// Configuration, NotFound, Format and IO are shorthands for Errorf

func Configuration(format string, args ...any) error {
	return Errorf(KindConfiguration, format, args...)
}

func NotFound(format string, args ...any) error {
	return Errorf(KindNotFound, format, args...)
}

func Format(format string, args ...any) error {
	return Errorf(KindFormat, format, args...)
}

func IO(format string, args ...any) error {
	return Errorf(KindIO, format, args...)
}

// 🔍 KindOf returns the outermost Kind found in the chain of err.
// Untagged filesystem errors are classified as NotFound or IO.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var ferr *Error
	if errors.As(err, &ferr) {
		return ferr.Kind
	}
	if errors.Is(err, fs.ErrNotExist) {
		return KindNotFound
	}
	var perr *fs.PathError
	if errors.As(err, &perr) {
		return KindIO
	}
	return KindUnknown
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
