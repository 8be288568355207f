package slang

import "testing"

func TestCanonicalVersion(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"2025.6.1", "v2025.6.1"},
		{"v2025.6.1", "v2025.6.1"},
		{" 2025.10 ", "v2025.10.0"},
		{"2025.6.1-12-gabcdef", "v2025.6.1-12-gabcdef"},
		{"unknown", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			if got := canonicalVersion(tt.tag); got != tt.want {
				t.Errorf("canonicalVersion(%q) = %q, want %q", tt.tag, got, tt.want)
			}
		})
	}
}

func TestCompileTargetNames(t *testing.T) {
	for target, name := range targetNames {
		if target == TargetUnknown {
			continue
		}
		got, ok := ParseCompileTarget(name)
		if !ok || got != target {
			t.Errorf("ParseCompileTarget(%q) = %v, %v", name, got, ok)
		}
		if target.String() != name {
			t.Errorf("%d.String() = %q, want %q", target, target.String(), name)
		}
	}
	if _, ok := ParseCompileTarget("unknown"); ok {
		t.Error("unknown should not parse")
	}
	if got, _ := ParseCompileTarget("SPIRV"); got != TargetSPIRV {
		t.Errorf("ParseCompileTarget is case sensitive: %v", got)
	}
	if TargetSPIRV != 6 || TargetDXIL != 10 || TargetMetal != 24 || TargetWGSL != 28 {
		t.Error("compile target values drifted")
	}
}
