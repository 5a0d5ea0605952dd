package jsonw

import (
	"bytes"
	"errors"
	"testing"
)

func TestWriterDocument(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	w.BeginArray()
	w.BeginObject()
	w.Field("name")
	w.String("a \"quoted\"\nvalue")
	w.Field("size")
	w.Int64(-42)
	w.Field("ino")
	w.Uint64(18446744073709551615)
	w.Field("ok")
	w.Bool(true)
	w.EndObject()
	w.BeginArray()
	w.EndArray()
	w.EndArray()

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	want := `[{"name":"a \"quoted\"\nvalue","size":-42,"ino":18446744073709551615,"ok":true},[]]` + "\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriterIndent(t *testing.T) {
	var out bytes.Buffer
	w := NewIndent(&out, "  ")

	w.BeginObject()
	w.Field("a")
	w.BeginArray()
	w.Int64(1)
	w.Int64(2)
	w.EndArray()
	w.EndObject()

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	want := "{\n  \"a\": [\n    1,\n    2\n  ]\n}\n"
	if got := out.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriterRewindDiscardsPartialStructure(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	w.BeginObject()
	cp := w.Save()
	w.Field("result")
	w.BeginArray()
	w.BeginObject()
	w.Field("half")
	w.Rewind(cp)
	if !w.Matches(cp) {
		t.Fatal("Matches() = false after Rewind")
	}
	w.Field("error")
	w.String("boom")
	w.Release(cp)
	w.EndObject()

	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got, want := out.String(), "{\"error\":\"boom\"}\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriterNestedCheckpoints(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	w.BeginArray()
	outer := w.Save()
	w.BeginObject()
	w.Field("kept")
	inner := w.Save()
	w.BeginArray()
	w.Int64(7)
	w.Rewind(inner)
	w.String("replaced")
	w.Release(inner)
	w.EndObject()
	if !w.Matches(outer) {
		t.Error("Matches(outer) = false after balanced writes")
	}
	w.Release(outer)

	if out.Len() == 0 {
		t.Error("output not streamed after the last checkpoint was released")
	}

	w.EndArray()
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got, want := out.String(), "[{\"kept\":\"replaced\"}]\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriterHoldsOutputWhileCheckpointOutstanding(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	w.BeginArray()
	cp := w.Save()
	w.String("pending")
	if out.Len() != 0 {
		t.Errorf("output streamed while a checkpoint is outstanding: %q", out.String())
	}
	if err := w.Flush(); !errors.Is(err, ErrStructure) {
		t.Errorf("Flush() error = %v, want ErrStructure", err)
	}
	w.Release(cp)
	w.EndArray()
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got, want := out.String(), "[\"pending\"]\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriterStructureErrors(t *testing.T) {
	tests := []struct {
		name  string
		write func(w *Writer)
	}{
		{
			name: "value in object without field",
			write: func(w *Writer) {
				w.BeginObject()
				w.String("x")
			},
		},
		{
			name: "field outside object",
			write: func(w *Writer) {
				w.BeginArray()
				w.Field("x")
			},
		},
		{
			name: "unbalanced close",
			write: func(w *Writer) {
				w.BeginArray()
				w.EndObject()
			},
		},
		{
			name: "field without value",
			write: func(w *Writer) {
				w.BeginObject()
				w.Field("x")
				w.EndObject()
			},
		},
		{
			name: "close below checkpoint",
			write: func(w *Writer) {
				w.BeginArray()
				cp := w.Save()
				w.EndArray()
				w.Release(cp)
			},
		},
		{
			name: "release out of order",
			write: func(w *Writer) {
				outer := w.Save()
				_ = w.Save()
				w.Release(outer)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(&bytes.Buffer{})
			tt.write(w)
			if err := w.Err(); !errors.Is(err, ErrStructure) {
				t.Errorf("Err() = %v, want ErrStructure", err)
			}
		})
	}
}

func TestWriterRewindClearsLaterStructureError(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)

	w.BeginObject()
	cp := w.Save()
	w.Field("result")
	w.Field("oops")
	if w.Err() == nil {
		t.Fatal("Err() = nil after misuse")
	}
	w.Rewind(cp)
	if err := w.Err(); err != nil {
		t.Fatalf("Err() after Rewind = %v", err)
	}
	w.Release(cp)
	w.EndObject()
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	if got := out.String(); got != "{}\n" {
		t.Errorf("output = %q, want %q", got, "{}\n")
	}
}

func TestWriterInvalidUTF8(t *testing.T) {
	var out bytes.Buffer
	w := New(&out)
	w.String("bad\xffname")
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}
	// Invalid bytes are replaced, so the output stays valid JSON.
	if want := `"bad\ufffdname"` + "\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}
