package finfo

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// Common errors
var (
	ErrNotExist        = fs.ErrNotExist
	ErrPermission      = fs.ErrPermission
	ErrNotDir          = errors.New("not a directory")
	ErrIsDir           = errors.New("is a directory")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrIO              = errors.New("input/output error")
	ErrNotSupported    = errors.New("operation not supported")
)

// PathError records an error and the operation and file path that caused it
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *PathError) Unwrap() error {
	return e.Err
}

// OplistError reports a malformed operation list. It is a setup-time error:
// no report is produced for an invocation whose oplist fails to parse.
type OplistError struct {
	Token  string
	Reason string
}

// Error implements the error interface
func (e *OplistError) Error() string {
	return fmt.Sprintf("invalid oplist: %s: %s", e.Token, e.Reason)
}

// Unwrap returns ErrInvalidArgument
func (e *OplistError) Unwrap() error {
	return ErrInvalidArgument
}

// Code returns the errno-like code recorded for a failed operation. An OS
// error number found in the chain wins; otherwise the code is derived from
// the sentinel the error wraps, falling back to EIO.
func Code(err error) int {
	if err == nil {
		return 0
	}

	var errno syscall.Errno
	if errors.As(err, &errno) && errno != 0 {
		return int(errno)
	}

	switch {
	case errors.Is(err, ErrNotExist):
		return int(syscall.ENOENT)
	case errors.Is(err, ErrPermission):
		return int(syscall.EACCES)
	case errors.Is(err, ErrNotDir):
		return int(syscall.ENOTDIR)
	case errors.Is(err, ErrIsDir):
		return int(syscall.EISDIR)
	case errors.Is(err, ErrInvalidArgument):
		return int(syscall.EINVAL)
	case errors.Is(err, ErrNotSupported):
		return int(syscall.ENOTSUP)
	}
	return int(syscall.EIO)
}

// IsNotExist reports whether an error indicates that a file or directory
// does not exist
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist)
}

// IsPermission reports whether an error indicates that permission is denied
func IsPermission(err error) bool {
	return errors.Is(err, ErrPermission)
}

// IsInvalidArgument reports whether an error indicates a malformed request,
// such as an unknown operation name
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
