package finfo

import (
	"context"
	"io"
)

// Timespec is a point in time with nanosecond resolution, as reported by the
// operating system.
type Timespec struct {
	Sec  int64
	Nsec int64
}

// StatInfo is the full metadata record of a filesystem object.
type StatInfo struct {
	Dev     uint64
	Ino     uint64
	Mode    uint32
	Nlink   uint64
	UID     uint32
	GID     uint32
	Rdev    uint64
	Size    int64
	Blksize int64
	Blocks  int64
	Atime   Timespec
	Mtime   Timespec
	Ctime   Timespec
}

// IsDir reports whether the record describes a directory.
func (s *StatInfo) IsDir() bool {
	return s.Mode&modeTypeMask == modeDir
}

// POSIX file type bits of StatInfo.Mode.
const (
	modeTypeMask = 0o170000
	modeDir      = 0o040000
)

// EntryType is the raw type hint reported by directory enumeration.
type EntryType uint8

const (
	TypeUnknown EntryType = iota
	TypeFIFO
	TypeChar
	TypeDir
	TypeBlock
	TypeRegular
	TypeSymlink
	TypeSocket
)

var entryTypeNames = [...]string{
	TypeUnknown: "DT_UNKNOWN",
	TypeFIFO:    "DT_FIFO",
	TypeChar:    "DT_CHR",
	TypeDir:     "DT_DIR",
	TypeBlock:   "DT_BLK",
	TypeRegular: "DT_REG",
	TypeSymlink: "DT_LNK",
	TypeSocket:  "DT_SOCK",
}

// String returns the conventional DT_* name of the type.
func (t EntryType) String() string {
	if int(t) < len(entryTypeNames) {
		return entryTypeNames[t]
	}
	return entryTypeNames[TypeUnknown]
}

// DirEntry is one directory entry as produced by enumeration.
type DirEntry struct {
	Name string
	Ino  uint64 // 0 when the platform does not report it
	Type EntryType
}

// ============================================================================
// Filesystem Contract
// ============================================================================

// Inspector provides the read-only queries operations are built on.
// Errors should be *PathError values wrapping the OS error.
type Inspector interface {
	// Stat returns metadata for path, following symbolic links.
	Stat(ctx context.Context, path string) (*StatInfo, error)

	// Lstat returns metadata for path without following a final symbolic link.
	Lstat(ctx context.Context, path string) (*StatInfo, error)

	// Readlink returns the complete target of the symbolic link at path.
	Readlink(ctx context.Context, path string) (string, error)

	// Open returns a stream for reading file content.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// OpenDir opens a directory for enumeration.
	OpenDir(ctx context.Context, path string) (DirReader, error)
}

// DirReader enumerates one directory in read order. It is not restartable.
type DirReader interface {
	// Next returns the next entry, or io.EOF once the directory is exhausted.
	// The "." and ".." entries may be returned.
	Next() (DirEntry, error)

	// Close releases the directory handle.
	Close() error
}

// ============================================================================
// Optional Capability Interfaces
// ============================================================================

// CanWatch indicates the inspector can report changes to filesystem objects.
//
// Example:
//
//	if watcher, ok := fs.(CanWatch); ok {
//	    token, err := watcher.Watch(ctx, []string{"/etc"}, "*.conf")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    if err := WaitForChange(ctx, token); err == nil {
//	        // re-inspect
//	    }
//	}
type CanWatch interface {
	// Watch creates a change token that signals when any of paths, or an
	// entry of a directory among paths whose name matches filter, changes.
	// A filter containing "**" also observes nested directories.
	Watch(ctx context.Context, paths []string, filter string) (ChangeToken, error)
}
