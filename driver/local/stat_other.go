//go:build !linux && !freebsd && !darwin

package local

import (
	"io/fs"
	"os"

	"github.com/gobeaver/finfo"
)

// POSIX file type bits, synthesized from fs.FileMode where the platform has
// no stat record.
const (
	modeFIFO = 0o010000
	modeChar = 0o020000
	modeDir  = 0o040000
	modeBlk  = 0o060000
	modeReg  = 0o100000
	modeLink = 0o120000
	modeSock = 0o140000
)

// sysReadlink adapts os.Readlink to the buffer contract: a target that does
// not fit reports a full buffer.
func sysReadlink(path string, buf []byte) (int, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return 0, err
	}
	return copy(buf, target), nil
}

func stat(path string) (*finfo.StatInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return fromFileInfo(info), nil
}

func lstat(path string) (*finfo.StatInfo, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return nil, err
	}
	return fromFileInfo(info), nil
}

func fromFileInfo(info fs.FileInfo) *finfo.StatInfo {
	mtime := info.ModTime()
	ts := finfo.Timespec{Sec: mtime.Unix(), Nsec: int64(mtime.Nanosecond())}
	return &finfo.StatInfo{
		Mode:  posixMode(info.Mode()),
		Nlink: 1,
		Size:  info.Size(),
		Atime: ts,
		Mtime: ts,
		Ctime: ts,
	}
}

func posixMode(m fs.FileMode) uint32 {
	perm := uint32(m.Perm())
	switch {
	case m&fs.ModeDir != 0:
		return perm | modeDir
	case m&fs.ModeSymlink != 0:
		return perm | modeLink
	case m&fs.ModeNamedPipe != 0:
		return perm | modeFIFO
	case m&fs.ModeSocket != 0:
		return perm | modeSock
	case m&fs.ModeCharDevice != 0:
		return perm | modeChar
	case m&fs.ModeDevice != 0:
		return perm | modeBlk
	}
	return perm | modeReg
}
