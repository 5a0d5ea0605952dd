// Package local implements finfo.Inspector over the host filesystem.
//
// Metadata and directory entries come straight from the operating system:
// stat and lstat report the raw platform record, and directory enumeration
// reports entries in read order with the kernel's inode and type hint.
package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/gobeaver/finfo"
	"go.uber.org/zap"
)

const (
	// initialLinkBuffer is the first buffer size tried by Readlink.
	initialLinkBuffer = 64
	// DefaultMaxLinkSize bounds the buffer Readlink grows to.
	DefaultMaxLinkSize = 1 << 20
)

// Adapter provides a host filesystem implementation of finfo.Inspector
type Adapter struct {
	readlink func(path string, buf []byte) (int, error)
	maxLink  int
	logger   *zap.Logger
}

// Option configures an Adapter
type Option func(*Adapter)

// WithLogger sets the logger used for watch errors
func WithLogger(logger *zap.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMaxLinkSize bounds the length of symbolic link targets Readlink
// accepts. Non-positive sizes are ignored.
func WithMaxLinkSize(size int) Option {
	return func(a *Adapter) {
		if size > 0 {
			a.maxLink = size
		}
	}
}

// New creates a new host filesystem adapter
func New(options ...Option) *Adapter {
	a := &Adapter{
		readlink: sysReadlink,
		maxLink:  DefaultMaxLinkSize,
		logger:   zap.NewNop(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// Stat implements finfo.Inspector
func (a *Adapter) Stat(ctx context.Context, path string) (*finfo.StatInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// Continue
	}

	st, err := stat(path)
	if err != nil {
		return nil, pathError("stat", path, err)
	}
	return st, nil
}

// Lstat implements finfo.Inspector
func (a *Adapter) Lstat(ctx context.Context, path string) (*finfo.StatInfo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// Continue
	}

	st, err := lstat(path)
	if err != nil {
		return nil, pathError("lstat", path, err)
	}
	return st, nil
}

// Readlink implements finfo.Inspector. The buffer starts small and doubles
// until the target fits with room to spare, so a target is never truncated.
func (a *Adapter) Readlink(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		// Continue
	}

	for size := initialLinkBuffer; ; size *= 2 {
		buf := make([]byte, size)
		n, err := a.readlink(path, buf)
		if err != nil {
			return "", pathError("readlink", path, err)
		}
		// A full buffer may hold a truncated target.
		if n < size {
			return string(buf[:n]), nil
		}
		if size >= a.maxLink {
			return "", &finfo.PathError{
				Op:   "readlink",
				Path: path,
				Err:  fmt.Errorf("%w: link target exceeds %d bytes", finfo.ErrInvalidArgument, a.maxLink),
			}
		}
	}
}

// Open implements finfo.Inspector. Directories cannot be opened for reading.
func (a *Adapter) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// Continue
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pathError("open", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, pathError("fstat", path, err)
	}
	if info.IsDir() {
		f.Close()
		return nil, &finfo.PathError{Op: "read", Path: path, Err: finfo.ErrIsDir}
	}

	return f, nil
}

// OpenDir implements finfo.Inspector
func (a *Adapter) OpenDir(ctx context.Context, path string) (finfo.DirReader, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		// Continue
	}

	dr, err := openDir(path)
	if err != nil {
		return nil, pathError("opendir", path, err)
	}
	return dr, nil
}

// pathError wraps err for path, replacing an os-level path error so the
// path is not reported twice.
func pathError(op, path string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		err = pe.Err
	}
	return &finfo.PathError{Op: op, Path: path, Err: err}
}

var (
	_ finfo.Inspector = (*Adapter)(nil)
	_ finfo.CanWatch  = (*Adapter)(nil)
)
