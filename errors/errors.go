package errors

import (
	goerrors "errors"
	"fmt"
	"path/filepath"
	"runtime"
)

// Sentinel kinds for failures of the reply-generation backend. Callers match
// them with Is to pick a recovery path.
var (
	// ErrConfigurationMissing means no usable backend credentials resolved.
	ErrConfigurationMissing = goerrors.New("configuration missing")
	// ErrGenerationFailure means a single generation call failed.
	ErrGenerationFailure = goerrors.New("generation failure")
	// ErrMalformedReply means the backend returned an unusable shape. It is
	// handled the same way as a generation failure.
	ErrMalformedReply = goerrors.New("malformed reply")
)

// New creates a new error with file and line number information.
func New(format string, a ...interface{}) error {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "???"
		line = 0
	} else {
		file = filepath.Base(file)
	}
	return fmt.Errorf("[%s:%d] %s", file, line, fmt.Sprintf(format, a...))
}

// Wrapf adds context (including file and line number) to an existing error.
// If the provided error is nil, Wrapf returns nil.
func Wrapf(err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "???"
		line = 0
	} else {
		file = filepath.Base(file)
	}
	return fmt.Errorf("[%s:%d] %s: %w", file, line, fmt.Sprintf(format, a...), err)
}

// Tagf creates an error of the given sentinel kind with a formatted message
// and caller information. The result matches the kind under Is.
func Tagf(kind error, format string, a ...interface{}) error {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		file = "???"
		line = 0
	} else {
		file = filepath.Base(file)
	}
	return fmt.Errorf("[%s:%d] %s: %w", file, line, fmt.Sprintf(format, a...), kind)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return goerrors.Is(err, target)
}
