package finfo

import (
	"context"
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gobeaver/finfo/jsonw"
	"go.uber.org/zap"
)

// Describer runs activation tables against paths and writes the report.
// It holds no per-report state and may be reused.
type Describer struct {
	fs   Inspector
	opts Options
}

// New creates a Describer that queries fs.
func New(fs Inspector, options ...Option) *Describer {
	opts := defaultOptions()
	for _, option := range options {
		option(&opts)
	}
	return &Describer{fs: fs, opts: opts}
}

// Describe writes one report array to w: a record per path holding a
// "filename" field and one slot per operation enabled in t. A nil table
// means DefaultTable. Operation failures are recorded in their slots; the
// returned error only reports a writer failure.
func (d *Describer) Describe(ctx context.Context, w *jsonw.Writer, paths []string, t *Table) error {
	if t == nil {
		t = DefaultTable()
	}

	w.BeginArray()
	for _, path := range paths {
		w.BeginObject()
		w.Field("filename")
		w.String(path)
		for _, op := range t.EnabledOps() {
			w.Field(op.String())
			d.attempt(ctx, w, op, path, t.Children())
		}
		w.EndObject()
	}
	w.EndArray()

	return w.Err()
}

// attempt writes the slot for one operation invocation: {"result": value} on
// success, {"error": {...}} on failure. Whatever a failed operation wrote is
// discarded.
func (d *Describer) attempt(ctx context.Context, w *jsonw.Writer, op OpKind, path string, children *Table) {
	w.BeginObject()
	cp := w.Save()

	w.Field("result")
	err := d.run(ctx, w, op, path, children)
	if err == nil && !w.Matches(cp) {
		err = fmt.Errorf("%w: %s left its result unbalanced", ErrIO, op)
	}
	if err != nil {
		w.Rewind(cp)
		d.opts.Logger.Debug("operation failed",
			zap.String("op", op.String()),
			zap.String("path", path),
			zap.Int("errno", Code(err)),
			zap.Error(err),
		)
		w.Field("error")
		writeError(w, err)
	}

	w.Release(cp)
	w.EndObject()
}

// run dispatches one operation. It writes exactly one value on success.
func (d *Describer) run(ctx context.Context, w *jsonw.Writer, op OpKind, path string, children *Table) error {
	switch op {
	case OpStat:
		st, err := d.fs.Stat(ctx, path)
		if err != nil {
			return err
		}
		writeStat(w, st)
	case OpLstat:
		st, err := d.fs.Lstat(ctx, path)
		if err != nil {
			return err
		}
		writeStat(w, st)
	case OpReadlink:
		target, err := d.fs.Readlink(ctx, path)
		if err != nil {
			return err
		}
		w.String(target)
	case OpLs:
		return d.list(ctx, w, path, children)
	case OpDigest:
		sum, err := d.digest(ctx, path)
		if err != nil {
			return err
		}
		w.String(sum)
	case OpMime:
		mime, err := d.mime(ctx, path)
		if err != nil {
			return err
		}
		w.String(mime)
	default:
		return fmt.Errorf("%w: %s", ErrNotSupported, op)
	}
	return nil
}

func (d *Describer) digest(ctx context.Context, path string) (string, error) {
	// Reject unknown algorithms before touching the file.
	if _, err := NewHasher(d.opts.Checksum); err != nil {
		return "", err
	}

	rc, err := d.fs.Open(ctx, path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	sum, err := CalculateChecksumBuffer(rc, d.opts.Checksum, make([]byte, d.opts.ReadBufferSize))
	if err != nil {
		return "", &PathError{Op: "read", Path: path, Err: err}
	}
	return sum, nil
}

func (d *Describer) mime(ctx context.Context, path string) (string, error) {
	rc, err := d.fs.Open(ctx, path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	m, err := mimetype.DetectReader(rc)
	if err != nil {
		return "", &PathError{Op: "read", Path: path, Err: err}
	}
	return m.String(), nil
}

func writeError(w *jsonw.Writer, err error) {
	w.BeginObject()
	w.Field("errno")
	w.Int64(int64(Code(err)))
	w.Field("errmsg")
	w.String(err.Error())
	w.EndObject()
}

func writeStat(w *jsonw.Writer, st *StatInfo) {
	w.BeginObject()
	w.Field("st_dev")
	w.Uint64(st.Dev)
	w.Field("st_ino")
	w.Uint64(st.Ino)
	w.Field("st_mode")
	w.Uint64(uint64(st.Mode))
	w.Field("st_nlink")
	w.Uint64(st.Nlink)
	w.Field("st_uid")
	w.Uint64(uint64(st.UID))
	w.Field("st_gid")
	w.Uint64(uint64(st.GID))
	w.Field("st_rdev")
	w.Uint64(st.Rdev)
	w.Field("st_size")
	w.Int64(st.Size)
	w.Field("st_blksize")
	w.Int64(st.Blksize)
	w.Field("st_blocks")
	w.Int64(st.Blocks)
	w.Field("st_atime")
	w.Int64(st.Atime.Sec)
	w.Field("st_atim.tv_nsec")
	w.Int64(st.Atime.Nsec)
	w.Field("st_mtime")
	w.Int64(st.Mtime.Sec)
	w.Field("st_mtim.tv_nsec")
	w.Int64(st.Mtime.Nsec)
	w.Field("st_ctime")
	w.Int64(st.Ctime.Sec)
	w.Field("st_ctim.tv_nsec")
	w.Int64(st.Ctime.Nsec)
	w.EndObject()
}
