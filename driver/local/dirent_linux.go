//go:build linux

package local

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/gobeaver/finfo"
	"golang.org/x/sys/unix"
)

// Layout of struct linux_dirent64.
const (
	direntInoOff    = 0
	direntReclenOff = 16
	direntTypeOff   = 18
	direntNameOff   = 19
)

const direntBufferSize = 8192

// dirReader enumerates a directory with getdents64, which reports the inode
// and type hint of every entry without further system calls.
type dirReader struct {
	fd   int
	path string
	buf  []byte
	data []byte // records not yet returned
}

func openDir(path string) (*dirReader, error) {
	var fd int
	err := ignoringEINTR(func() error {
		var err error
		fd, err = unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dirReader{fd: fd, path: path, buf: make([]byte, direntBufferSize)}, nil
}

func (d *dirReader) Next() (finfo.DirEntry, error) {
	for {
		if len(d.data) == 0 {
			var n int
			err := ignoringEINTR(func() error {
				var err error
				n, err = unix.ReadDirent(d.fd, d.buf)
				return err
			})
			if err != nil {
				return finfo.DirEntry{}, &finfo.PathError{Op: "readdir", Path: d.path, Err: err}
			}
			if n <= 0 {
				return finfo.DirEntry{}, io.EOF
			}
			d.data = d.buf[:n]
		}

		ent, reclen, ok := parseDirent(d.data)
		if !ok {
			d.data = nil
			return finfo.DirEntry{}, &finfo.PathError{
				Op:   "readdir",
				Path: d.path,
				Err:  fmt.Errorf("%w: malformed directory record", finfo.ErrIO),
			}
		}
		d.data = d.data[reclen:]

		// Deleted entries keep their slot with a zero inode.
		if ent.Ino == 0 {
			continue
		}
		return ent, nil
	}
}

func (d *dirReader) Close() error {
	return unix.Close(d.fd)
}

// parseDirent decodes the record at the start of b.
func parseDirent(b []byte) (finfo.DirEntry, int, bool) {
	if len(b) < direntNameOff {
		return finfo.DirEntry{}, 0, false
	}
	reclen := int(binary.NativeEndian.Uint16(b[direntReclenOff:]))
	if reclen <= direntNameOff || reclen > len(b) {
		return finfo.DirEntry{}, 0, false
	}

	name := b[direntNameOff:reclen]
	if i := bytes.IndexByte(name, 0); i >= 0 {
		name = name[:i]
	}

	return finfo.DirEntry{
		Name: string(name),
		Ino:  binary.NativeEndian.Uint64(b[direntInoOff:]),
		Type: entryType(b[direntTypeOff]),
	}, reclen, true
}

func entryType(t uint8) finfo.EntryType {
	switch t {
	case unix.DT_FIFO:
		return finfo.TypeFIFO
	case unix.DT_CHR:
		return finfo.TypeChar
	case unix.DT_DIR:
		return finfo.TypeDir
	case unix.DT_BLK:
		return finfo.TypeBlock
	case unix.DT_REG:
		return finfo.TypeRegular
	case unix.DT_LNK:
		return finfo.TypeSymlink
	case unix.DT_SOCK:
		return finfo.TypeSocket
	}
	return finfo.TypeUnknown
}
