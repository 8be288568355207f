package reflection

import (
	"testing"

	"github.com/wippyai/slang-bridge/internal/native"
)

func TestHashString(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 6363201},
		{"main", 4287880057},
		{"hello world", 430867652},
		{"\xc3\xa9", 4290965670},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := HashString(tt.in); got != tt.want {
				t.Errorf("HashString(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestComputeStringHashMatchesNative(t *testing.T) {
	if _, err := native.Default(); err != nil {
		t.Skipf("slang library not available: %v", err)
	}

	for _, s := range []string{"", "a", "main", "hello world", "\xc3\xa9", "g_Texture[3].sample"} {
		got, err := ComputeStringHash(s)
		if err != nil {
			t.Fatalf("ComputeStringHash(%q): %v", s, err)
		}
		if want := HashString(s); got != want {
			t.Errorf("native hash of %q = %d, Go hash = %d", s, got, want)
		}
	}
}
