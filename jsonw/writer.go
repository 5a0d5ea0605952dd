// Package jsonw implements a streaming JSON writer with checkpoints.
//
// A [Writer] emits objects, arrays, fields and scalars in document order. Output
// is streamed to the underlying io.Writer except while a [Checkpoint] is
// outstanding: then it is held in memory so that [Writer.Rewind] can discard
// everything written since the checkpoint, including partially open structures.
//
//	w := jsonw.New(os.Stdout)
//	w.BeginObject()
//	w.Field("status")
//	cp := w.Save()
//	if err := produce(w); err != nil {
//	    w.Rewind(cp)
//	    w.String("failed")
//	}
//	w.Release(cp)
//	w.EndObject()
//	if err := w.Flush(); err != nil {
//	    return err
//	}
//
// Structural misuse (a value where a field name is required, closing the wrong
// container, rewinding a released checkpoint) is recorded as a sticky error and
// reported by [Writer.Err] and [Writer.Flush], in the manner of bufio.Writer.
package jsonw

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/bytedance/sonic"
)

// ErrStructure is wrapped by every structural misuse error.
var ErrStructure = errors.New("jsonw: invalid structure")

var encoder = sonic.Config{ValidateString: true}.Froze()

type frameKind uint8

const (
	frameObject frameKind = iota + 1
	frameArray
)

type frame struct {
	kind  frameKind
	count int
}

// Checkpoint is a saved structural position of a Writer.
type Checkpoint struct {
	id      int
	offset  int
	stack   []frame
	pending bool
	clean   bool
}

type mark struct {
	id    int
	depth int
}

// Writer emits JSON in document order.
type Writer struct {
	out     io.Writer
	buf     bytes.Buffer
	stack   []frame
	pending bool // a field name was written and awaits its value
	saves   []mark
	nextID  int
	err     error
	indent  string
	scratch []byte
}

// New returns a Writer that streams to out.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// NewIndent returns a Writer that indents nested structures with indent.
func NewIndent(out io.Writer, indent string) *Writer {
	return &Writer{out: out, indent: indent}
}

// Err returns the first error encountered by the writer.
func (w *Writer) Err() error {
	return w.err
}

func (w *Writer) fail(format string, args ...any) {
	if w.err == nil {
		w.err = fmt.Errorf("%w: %s", ErrStructure, fmt.Sprintf(format, args...))
	}
}

func (w *Writer) newline() {
	if w.indent == "" {
		return
	}
	w.buf.WriteByte('\n')
	for range w.stack {
		w.buf.WriteString(w.indent)
	}
}

// beforeValue positions the output for a new value, writing separators.
func (w *Writer) beforeValue() bool {
	if w.err != nil {
		return false
	}
	if len(w.stack) == 0 {
		return true
	}
	top := &w.stack[len(w.stack)-1]
	switch top.kind {
	case frameObject:
		if !w.pending {
			w.fail("value written in object without a field name")
			return false
		}
		w.pending = false
	case frameArray:
		if top.count > 0 {
			w.buf.WriteByte(',')
		}
		top.count++
		w.newline()
	}
	return true
}

func (w *Writer) begin(kind frameKind, open byte) {
	if !w.beforeValue() {
		return
	}
	w.buf.WriteByte(open)
	w.stack = append(w.stack, frame{kind: kind})
}

func (w *Writer) end(kind frameKind, closer byte) {
	if w.err != nil {
		return
	}
	if len(w.stack) == 0 || w.stack[len(w.stack)-1].kind != kind {
		w.fail("unbalanced %q", closer)
		return
	}
	if w.pending {
		w.fail("field without value before %q", closer)
		return
	}
	if n := len(w.saves); n > 0 && len(w.stack) <= w.saves[n-1].depth {
		w.fail("container closed below the current checkpoint")
		return
	}
	count := w.stack[len(w.stack)-1].count
	w.stack = w.stack[:len(w.stack)-1]
	if count > 0 {
		w.newline()
	}
	w.buf.WriteByte(closer)
	w.endValue()
}

// BeginObject opens an object.
func (w *Writer) BeginObject() { w.begin(frameObject, '{') }

// EndObject closes the innermost object.
func (w *Writer) EndObject() { w.end(frameObject, '}') }

// BeginArray opens an array.
func (w *Writer) BeginArray() { w.begin(frameArray, '[') }

// EndArray closes the innermost array.
func (w *Writer) EndArray() { w.end(frameArray, ']') }

// Field writes a field name in the innermost object. The next value written
// becomes the field's value.
func (w *Writer) Field(name string) {
	if w.err != nil {
		return
	}
	if len(w.stack) == 0 || w.stack[len(w.stack)-1].kind != frameObject {
		w.fail("field %q outside of an object", name)
		return
	}
	if w.pending {
		w.fail("field %q follows a field without value", name)
		return
	}
	top := &w.stack[len(w.stack)-1]
	if top.count > 0 {
		w.buf.WriteByte(',')
	}
	top.count++
	w.newline()
	w.quote(name)
	w.buf.WriteByte(':')
	if w.indent != "" {
		w.buf.WriteByte(' ')
	}
	w.pending = true
}

// String writes a string value.
func (w *Writer) String(s string) {
	if !w.beforeValue() {
		return
	}
	w.quote(s)
	w.endValue()
}

// Int64 writes a signed integer value.
func (w *Writer) Int64(v int64) {
	if !w.beforeValue() {
		return
	}
	w.scratch = strconv.AppendInt(w.scratch[:0], v, 10)
	w.buf.Write(w.scratch)
	w.endValue()
}

// Uint64 writes an unsigned integer value.
func (w *Writer) Uint64(v uint64) {
	if !w.beforeValue() {
		return
	}
	w.scratch = strconv.AppendUint(w.scratch[:0], v, 10)
	w.buf.Write(w.scratch)
	w.endValue()
}

// Bool writes a boolean value.
func (w *Writer) Bool(v bool) {
	if !w.beforeValue() {
		return
	}
	w.buf.WriteString(strconv.FormatBool(v))
	w.endValue()
}

// endValue terminates top-level values with a newline and streams output
// that no checkpoint holds.
func (w *Writer) endValue() {
	if len(w.stack) == 0 {
		w.buf.WriteByte('\n')
	}
	w.maybeFlush()
}

func (w *Writer) quote(s string) {
	b, err := encoder.Marshal(s)
	if err != nil {
		if w.err == nil {
			w.err = fmt.Errorf("jsonw: encode string: %w", err)
		}
		return
	}
	w.buf.Write(b)
}

// ============================================================================
// Checkpoints
// ============================================================================

// Save records the current structural position. Every Save must be paired
// with a Release; checkpoints nest and must be released in reverse order.
func (w *Writer) Save() Checkpoint {
	w.nextID++
	cp := Checkpoint{
		id:      w.nextID,
		offset:  w.buf.Len(),
		stack:   append([]frame(nil), w.stack...),
		pending: w.pending,
		clean:   w.err == nil,
	}
	w.saves = append(w.saves, mark{id: cp.id, depth: len(cp.stack)})
	return cp
}

// Rewind discards everything written since cp was saved and restores the
// structural position recorded in cp. cp stays outstanding.
func (w *Writer) Rewind(cp Checkpoint) {
	if n := len(w.saves); n == 0 || w.saves[n-1].id != cp.id {
		w.fail("rewind to a checkpoint that is not the innermost one")
		return
	}
	w.buf.Truncate(cp.offset)
	w.stack = append(w.stack[:0], cp.stack...)
	w.pending = cp.pending
	// Structural errors raised after the checkpoint are discarded with the
	// output that caused them.
	if cp.clean && errors.Is(w.err, ErrStructure) {
		w.err = nil
	}
}

// Matches reports whether the writer is at exactly the structural position
// recorded in cp, ignoring the values written since.
func (w *Writer) Matches(cp Checkpoint) bool {
	if len(w.stack) != len(cp.stack) || w.pending != cp.pending {
		return false
	}
	for i := range w.stack {
		if w.stack[i].kind != cp.stack[i].kind {
			return false
		}
	}
	return true
}

// Release drops cp. Once no checkpoint is outstanding, buffered output is
// eligible for streaming.
func (w *Writer) Release(cp Checkpoint) {
	n := len(w.saves)
	if n == 0 || w.saves[n-1].id != cp.id {
		w.fail("release of a checkpoint that is not the innermost one")
		return
	}
	w.saves = w.saves[:n-1]
	w.maybeFlush()
}

// maybeFlush streams buffered output when no checkpoint needs it.
func (w *Writer) maybeFlush() {
	if len(w.saves) > 0 || w.buf.Len() == 0 || w.err != nil {
		return
	}
	if _, err := w.out.Write(w.buf.Bytes()); err != nil {
		w.err = fmt.Errorf("jsonw: write: %w", err)
	}
	w.buf.Reset()
}

// Flush writes any buffered output and returns the first error encountered.
// It fails if a checkpoint is still outstanding.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if len(w.saves) > 0 {
		return fmt.Errorf("%w: flush with %d outstanding checkpoints", ErrStructure, len(w.saves))
	}
	w.maybeFlush()
	return w.err
}
