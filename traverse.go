package finfo

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/gobeaver/finfo/jsonw"
)

type entryClass uint8

const (
	classUnknown entryClass = iota
	classDir
	classNonDir
)

func classOf(t EntryType) entryClass {
	switch t {
	case TypeUnknown:
		return classUnknown
	case TypeDir:
		return classDir
	}
	return classNonDir
}

// list implements the ls operation: an array with one record per entry of
// dir, in read order. An enumeration failure fails the whole listing; the
// caller discards the partial array.
func (d *Describer) list(ctx context.Context, w *jsonw.Writer, dir string, t *Table) (err error) {
	dr, err := d.fs.OpenDir(ctx, dir)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dr.Close(); cerr != nil && err == nil {
			err = &PathError{Op: "closedir", Path: dir, Err: cerr}
		}
	}()

	w.BeginArray()
	for {
		ent, err := dr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if ent.Name == "." || ent.Name == ".." {
			continue
		}
		d.describeEntry(ctx, w, dir, ent, t)
	}
	w.EndArray()

	return nil
}

func (d *Describer) describeEntry(ctx context.Context, w *jsonw.Writer, dir string, ent DirEntry, t *Table) {
	path := joinPath(dir, ent.Name)
	class := classOf(ent.Type)

	w.BeginObject()
	w.Field("d_name")
	w.String(ent.Name)
	w.Field("d_ino")
	w.Uint64(ent.Ino)
	w.Field("d_type")
	w.String(ent.Type.String())

	for _, op := range t.EnabledOps() {
		if op == OpLs {
			if class == classUnknown {
				class = d.classify(ctx, path)
			}
			// Listing never descends into non-directories; the slot is
			// omitted rather than reported as an error.
			if class == classNonDir {
				continue
			}
		}
		w.Field(op.String())
		d.attempt(ctx, w, op, path, t.Children())
	}

	w.EndObject()
}

// classify resolves an entry without a type hint. An entry that cannot be
// queried stays unknown, so ls is attempted and records the failure.
func (d *Describer) classify(ctx context.Context, path string) entryClass {
	st, err := d.fs.Stat(ctx, path)
	if err != nil {
		return classUnknown
	}
	if st.IsDir() {
		return classDir
	}
	return classNonDir
}

func joinPath(dir, name string) string {
	if strings.HasSuffix(dir, string(os.PathSeparator)) {
		return dir + name
	}
	return dir + string(os.PathSeparator) + name
}
