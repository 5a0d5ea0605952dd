//go:build linux

package local

import (
	"encoding/binary"
	"testing"

	"github.com/gobeaver/finfo"
	"golang.org/x/sys/unix"
)

// dirent encodes one linux_dirent64 record padded to 8 bytes.
func dirent(ino uint64, typ uint8, name string) []byte {
	reclen := (direntNameOff + len(name) + 1 + 7) &^ 7
	b := make([]byte, reclen)
	binary.NativeEndian.PutUint64(b[direntInoOff:], ino)
	binary.NativeEndian.PutUint16(b[direntReclenOff:], uint16(reclen))
	b[direntTypeOff] = typ
	copy(b[direntNameOff:], name)
	return b
}

func TestParseDirent(t *testing.T) {
	var buf []byte
	buf = append(buf, dirent(11, unix.DT_REG, "file.txt")...)
	buf = append(buf, dirent(12, unix.DT_DIR, "d")...)
	buf = append(buf, dirent(13, unix.DT_UNKNOWN, "a-much-longer-name-with-padding")...)

	want := []finfo.DirEntry{
		{Name: "file.txt", Ino: 11, Type: finfo.TypeRegular},
		{Name: "d", Ino: 12, Type: finfo.TypeDir},
		{Name: "a-much-longer-name-with-padding", Ino: 13, Type: finfo.TypeUnknown},
	}

	for i, w := range want {
		got, reclen, ok := parseDirent(buf)
		if !ok {
			t.Fatalf("record %d: parseDirent failed", i)
		}
		if got != w {
			t.Errorf("record %d = %+v, want %+v", i, got, w)
		}
		buf = buf[reclen:]
	}
	if len(buf) != 0 {
		t.Errorf("%d bytes left over", len(buf))
	}
}

func TestParseDirentMalformed(t *testing.T) {
	good := dirent(1, unix.DT_REG, "x")

	tests := []struct {
		name string
		buf  []byte
	}{
		{"short header", good[:10]},
		{"reclen beyond buffer", good[:len(good)-1]},
		{"zero reclen", func() []byte {
			b := append([]byte(nil), good...)
			binary.NativeEndian.PutUint16(b[direntReclenOff:], 0)
			return b
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, ok := parseDirent(tt.buf); ok {
				t.Errorf("parseDirent accepted a malformed record")
			}
		})
	}
}

func TestEntryType(t *testing.T) {
	tests := map[uint8]finfo.EntryType{
		unix.DT_FIFO:    finfo.TypeFIFO,
		unix.DT_CHR:     finfo.TypeChar,
		unix.DT_DIR:     finfo.TypeDir,
		unix.DT_BLK:     finfo.TypeBlock,
		unix.DT_REG:     finfo.TypeRegular,
		unix.DT_LNK:     finfo.TypeSymlink,
		unix.DT_SOCK:    finfo.TypeSocket,
		unix.DT_UNKNOWN: finfo.TypeUnknown,
		255:             finfo.TypeUnknown,
	}
	for raw, want := range tests {
		if got := entryType(raw); got != want {
			t.Errorf("entryType(%d) = %s, want %s", raw, got, want)
		}
	}
}
