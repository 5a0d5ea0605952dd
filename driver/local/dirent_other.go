//go:build !linux

package local

import (
	"io"
	"io/fs"
	"os"

	"github.com/gobeaver/finfo"
)

const direntBatch = 128

// dirReader enumerates a directory through os.File.ReadDir. Inode numbers
// are not available on this path and are reported as 0.
type dirReader struct {
	f       *os.File
	path    string
	pending []fs.DirEntry
}

func openDir(path string) (*dirReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if !info.IsDir() {
		f.Close()
		return nil, finfo.ErrNotDir
	}
	return &dirReader{f: f, path: path}, nil
}

func (d *dirReader) Next() (finfo.DirEntry, error) {
	if len(d.pending) == 0 {
		entries, err := d.f.ReadDir(direntBatch)
		if len(entries) == 0 {
			if err == nil || err == io.EOF {
				return finfo.DirEntry{}, io.EOF
			}
			return finfo.DirEntry{}, &finfo.PathError{Op: "readdir", Path: d.path, Err: err}
		}
		d.pending = entries
	}

	e := d.pending[0]
	d.pending = d.pending[1:]
	return finfo.DirEntry{Name: e.Name(), Type: entryType(e.Type())}, nil
}

func (d *dirReader) Close() error {
	return d.f.Close()
}

func entryType(m fs.FileMode) finfo.EntryType {
	switch {
	case m&fs.ModeDir != 0:
		return finfo.TypeDir
	case m&fs.ModeSymlink != 0:
		return finfo.TypeSymlink
	case m&fs.ModeNamedPipe != 0:
		return finfo.TypeFIFO
	case m&fs.ModeSocket != 0:
		return finfo.TypeSocket
	case m&fs.ModeCharDevice != 0:
		return finfo.TypeChar
	case m&fs.ModeDevice != 0:
		return finfo.TypeBlock
	case m.IsRegular():
		return finfo.TypeRegular
	}
	return finfo.TypeUnknown
}
