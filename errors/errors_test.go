package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		contains []string
	}{
		{
			name: "full error",
			err: &Error{
				Phase:     PhaseHost,
				Kind:      KindPanic,
				Interface: "ISlangFileSystem",
				Method:    "loadFile",
				Path:      []string{"shaders", "common.slang"},
				Detail:    "recovered: boom",
				Code:      EInternalFail,
			},
			contains: []string{"[host]", "panic", "ISlangFileSystem.loadFile", "shaders/common.slang", "boom", "E_INTERNAL_FAIL"},
		},
		{
			name: "minimal error",
			err: &Error{
				Phase: PhaseModule,
				Kind:  KindNotFound,
			},
			contains: []string{"[module]", "not_found"},
		},
		{
			name: "error with cause",
			err: &Error{
				Phase:  PhaseLoad,
				Kind:   KindNotInitialized,
				Detail: "dlopen",
				Cause:  errors.New("no such file"),
			},
			contains: []string{"[load]", "not_initialized", "dlopen", "caused by", "no such file"},
		},
		{
			name: "method only",
			err: &Error{
				Phase:  PhaseReflect,
				Kind:   KindSymbol,
				Method: "spReflection_GetParameterCount",
			},
			contains: []string{"in spReflection_GetParameterCount"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !strings.Contains(msg, s) {
					t.Errorf("error message %q does not contain %q", msg, s)
				}
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := &Error{
		Phase: PhaseConfig,
		Kind:  KindInvalidData,
		Cause: cause,
	}

	if !errors.Is(err.Unwrap(), cause) {
		t.Error("Unwrap did not return cause")
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is did not follow cause")
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{
		Phase: PhaseModule,
		Kind:  KindNotFound,
		Code:  ENotFound,
	}

	if !err.Is(&Error{Phase: PhaseModule, Kind: KindNotFound}) {
		t.Error("Is should match same phase and kind")
	}
	if err.Is(&Error{Phase: PhaseLink, Kind: KindNotFound}) {
		t.Error("Is should not match different phase")
	}
	if err.Is(&Error{Phase: PhaseModule, Kind: KindStatus}) {
		t.Error("Is should not match different kind")
	}
	if !errors.Is(err, ENotFound) {
		t.Error("errors.Is should match the code")
	}
	if errors.Is(err, EFail) {
		t.Error("errors.Is should not match a different code")
	}
	if (&Error{}).Is(OK) {
		t.Error("an error without code must not match OK")
	}
}

func TestError_Status(t *testing.T) {
	if got := (&Error{Code: ENotFound}).Status(); got != ENotFound {
		t.Errorf("Status() = %v, want E_NOT_FOUND", got)
	}
	if got := (&Error{}).Status(); got != EFail {
		t.Errorf("Status() without code = %v, want E_FAIL", got)
	}
	if got := (&Error{Code: False}).Status(); got != EFail {
		t.Errorf("Status() with success code = %v, want E_FAIL", got)
	}
}

func TestBuilder(t *testing.T) {
	cause := errors.New("root")
	err := New(PhaseHost, KindPanic).
		Path("a.slang").
		Interface("ISlangFileSystem").
		Method("loadFile").
		Code(EInternalFail).
		Value(42).
		Cause(cause).
		Detail("expected %s, got %s", "blob", "nil").
		Build()

	if err.Phase != PhaseHost {
		t.Errorf("Phase = %v, want %v", err.Phase, PhaseHost)
	}
	if err.Kind != KindPanic {
		t.Errorf("Kind = %v, want %v", err.Kind, KindPanic)
	}
	if len(err.Path) != 1 || err.Path[0] != "a.slang" {
		t.Errorf("Path = %v, want [a.slang]", err.Path)
	}
	if err.Interface != "ISlangFileSystem" || err.Method != "loadFile" {
		t.Errorf("Interface/Method = %q/%q", err.Interface, err.Method)
	}
	if err.Code != EInternalFail {
		t.Errorf("Code = %v, want E_INTERNAL_FAIL", err.Code)
	}
	if err.Value != 42 {
		t.Errorf("Value = %v, want 42", err.Value)
	}
	if !errors.Is(err.Cause, cause) {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if err.Detail != "expected blob, got nil" {
		t.Errorf("Detail = %v", err.Detail)
	}
}

func TestConvenienceConstructors(t *testing.T) {
	t.Run("InvalidUTF8", func(t *testing.T) {
		err := InvalidUTF8(PhaseModule, nil, []byte{0xff, 0xfe})
		if err.Kind != KindInvalidUTF8 {
			t.Errorf("Kind = %v, want %v", err.Kind, KindInvalidUTF8)
		}
		if !strings.Contains(err.Detail, "fffe") {
			t.Errorf("Detail = %q, want hex preview", err.Detail)
		}
	})

	t.Run("InvalidUTF8 preview truncated", func(t *testing.T) {
		data := make([]byte, 100)
		for i := range data {
			data[i] = 0xff
		}
		err := InvalidUTF8(PhaseModule, nil, data)
		if strings.Count(err.Detail, "ff") != 32 {
			t.Errorf("Detail = %q, want 32 byte preview", err.Detail)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		err := Unsupported(PhaseSession, "global session without core module")
		if err.Kind != KindUnsupported || err.Code != ENotImplemented {
			t.Errorf("Kind=%v Code=%v", err.Kind, err.Code)
		}
	})

	t.Run("OutOfBounds", func(t *testing.T) {
		err := OutOfBounds(PhaseModule, []string{"entry-points"}, 10, 5)
		if err.Kind != KindOutOfBounds {
			t.Errorf("Kind = %v, want %v", err.Kind, KindOutOfBounds)
		}
		if err.Value != 10 {
			t.Errorf("Value = %v, want 10", err.Value)
		}
	})

	t.Run("NilPointer", func(t *testing.T) {
		err := NilPointer(PhaseModule, "IModule", "getName")
		if err.Kind != KindNilPointer || err.Code != EPointer {
			t.Errorf("Kind=%v Code=%v", err.Kind, err.Code)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		err := NotFound(PhaseModule, "entry point", "main")
		if !errors.Is(err, ENotFound) {
			t.Error("NotFound should match E_NOT_FOUND")
		}
		if !strings.Contains(err.Error(), `"main"`) {
			t.Errorf("Error() = %q", err.Error())
		}
	})

	t.Run("Panic", func(t *testing.T) {
		err := Panic("ISlangFileSystem", "loadFile", "boom")
		if err.Phase != PhaseHost || err.Kind != KindPanic {
			t.Errorf("Phase=%v Kind=%v", err.Phase, err.Kind)
		}
		if err.Value != "boom" {
			t.Errorf("Value = %v", err.Value)
		}
	})

	t.Run("Symbol", func(t *testing.T) {
		cause := errors.New("undefined symbol")
		err := Symbol("spComputeStringHash", cause)
		if !errors.Is(err, cause) || !errors.Is(err, ENotAvailable) {
			t.Errorf("Symbol error does not match cause and code: %v", err)
		}
	})
}
