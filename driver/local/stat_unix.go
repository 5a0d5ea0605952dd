//go:build linux || freebsd

package local

import (
	"github.com/gobeaver/finfo"
	"golang.org/x/sys/unix"
)

var sysReadlink = unix.Readlink

func stat(path string) (*finfo.StatInfo, error) {
	var st unix.Stat_t
	if err := ignoringEINTR(func() error { return unix.Stat(path, &st) }); err != nil {
		return nil, err
	}
	return fromStat(&st), nil
}

func lstat(path string) (*finfo.StatInfo, error) {
	var st unix.Stat_t
	if err := ignoringEINTR(func() error { return unix.Lstat(path, &st) }); err != nil {
		return nil, err
	}
	return fromStat(&st), nil
}

func fromStat(st *unix.Stat_t) *finfo.StatInfo {
	return &finfo.StatInfo{
		Dev:     uint64(st.Dev),
		Ino:     uint64(st.Ino),
		Mode:    uint32(st.Mode),
		Nlink:   uint64(st.Nlink),
		UID:     st.Uid,
		GID:     st.Gid,
		Rdev:    uint64(st.Rdev),
		Size:    st.Size,
		Blksize: int64(st.Blksize),
		Blocks:  st.Blocks,
		Atime:   timespec(st.Atim),
		Mtime:   timespec(st.Mtim),
		Ctime:   timespec(st.Ctim),
	}
}

func timespec(ts unix.Timespec) finfo.Timespec {
	sec, nsec := ts.Unix()
	return finfo.Timespec{Sec: sec, Nsec: nsec}
}

func ignoringEINTR(fn func() error) error {
	for {
		err := fn()
		if err != unix.EINTR {
			return err
		}
	}
}
