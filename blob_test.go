package slang

import (
	"testing"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
)

func TestBlob_ClonePreservesContent(t *testing.T) {
	tests := []struct {
		name string
		make func([]byte) *Blob
	}{
		{"static", StaticBlob},
		{"owned", NewBlob},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte("Test data")
			b := tt.make(data)
			c := b.Clone()
			if c == nil {
				t.Fatal("Clone() = nil")
			}
			b.Release()

			if got := string(c.Bytes()); got != "Test data" {
				t.Errorf("clone content = %q", got)
			}
			if c.Len() != len(data) {
				t.Errorf("Len() = %d, want %d", c.Len(), len(data))
			}
			c.Release()
		})
	}
}

func TestBlob_OwnedFreedOnLastRelease(t *testing.T) {
	before := native.HostObjects()

	b := NewBlobString("shader source")
	c := b.Clone()
	if got := native.HostObjects(); got != before+1 {
		t.Fatalf("HostObjects() = %d, want %d", got, before+1)
	}
	if refs, ok := native.HostRefs(b.Raw()); !ok || refs != 2 {
		t.Fatalf("refs = %d, %v; want 2", refs, ok)
	}

	b.Release()
	b.Release()
	if refs, _ := native.HostRefs(c.Raw()); refs != 1 {
		t.Fatalf("refs after double Release = %d, want 1", refs)
	}

	c.Release()
	if got := native.HostObjects(); got != before {
		t.Errorf("HostObjects() = %d after release, want %d", got, before)
	}
}

func TestBlob_OwnedCopiesInput(t *testing.T) {
	data := []byte("abc")
	b := NewBlob(data)
	defer b.Release()
	data[0] = 'x'
	if got := string(b.Bytes()); got != "abc" {
		t.Errorf("Bytes() = %q, want abc", got)
	}
}

func TestBlob_Text(t *testing.T) {
	b := NewBlob([]byte{'o', 'k', 0xff})
	defer b.Release()

	_, err := b.Text()
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindInvalidUTF8 {
		t.Fatalf("Text() error = %v, want invalid utf8", err)
	}

	s := StaticBlobString("ünïcode")
	text, err := s.Text()
	if err != nil || text != "ünïcode" {
		t.Errorf("Text() = %q, %v", text, err)
	}
}

func TestBlob_Empty(t *testing.T) {
	for _, b := range []*Blob{NewBlob(nil), StaticBlob(nil), StaticBlobString("")} {
		if b.Len() != 0 || b.Bytes() != nil {
			t.Errorf("empty blob: Len=%d Bytes=%v", b.Len(), b.Bytes())
		}
		if text, err := b.Text(); err != nil || text != "" {
			t.Errorf("empty Text() = %q, %v", text, err)
		}
		b.Release()
	}
}

func TestBlob_EmptyAndReleased(t *testing.T) {
	var empty Blob
	if !empty.IsNil() || empty.Len() != 0 || empty.Bytes() != nil || empty.Clone() != nil {
		t.Error("empty wrapper should behave as empty")
	}
	empty.Release()

	b := NewBlobString("x")
	b.Release()
	if b.Bytes() != nil || b.Clone() != nil {
		t.Error("released blob must not expose memory")
	}
	_, err := b.self(errors.PhaseRuntime)
	var e *errors.Error
	if !errors.As(err, &e) || e.Kind != errors.KindReleased {
		t.Errorf("self() error = %v, want released", err)
	}
}

func TestTakeDiagnostics(t *testing.T) {
	before := native.HostObjects()

	d := takeDiagnostics(NewBlobString("error 1: bad").Raw())
	if d == nil || string(d.Bytes()) != "error 1: bad" {
		t.Fatalf("takeDiagnostics() = %v", d)
	}
	if got := native.HostObjects(); got != before {
		t.Errorf("diagnostics blob not released: %d live, want %d", got, before)
	}

	if takeDiagnostics(nil) != nil {
		t.Error("nil blob should yield nil diagnostics")
	}

	err := checkDiagnostics(errors.PhaseLink, errors.EFail, NewBlobString("link failed").Raw())
	var de *errors.DiagnosticError
	if !errors.As(err, &de) {
		t.Fatalf("checkDiagnostics() = %v, want DiagnosticError", err)
	}
	if text, _ := de.Text(); text != "link failed" {
		t.Errorf("Text() = %q", text)
	}

	if err := checkDiagnostics(errors.PhaseLink, errors.OK, NewBlobString("warning").Raw()); err != nil {
		t.Errorf("success with warnings returned %v", err)
	}
	if got := native.HostObjects(); got != before {
		t.Errorf("host objects leaked: %d, want %d", got, before)
	}
}
