package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	slang "github.com/wippyai/slang-bridge"
	"github.com/wippyai/slang-bridge/config"
	"github.com/wippyai/slang-bridge/errors"
)

func TestBuildConfigFromFlags(t *testing.T) {
	opts := options{
		target:   "spirv",
		profile:  "spirv_1_5",
		includes: listFlag{"shaders"},
		defines:  listFlag{"FOG=1", "DEBUG"},
		entries:  listFlag{"main"},
		stage:    "compute",
		outDir:   "out",
		reflect:  true,
	}
	cfg, err := buildConfig(opts, []string{"a.slang", "b"})
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}

	want := &config.Config{
		Targets:     []config.Target{{Format: "spirv", Profile: "spirv_1_5"}},
		SearchPaths: []string{"shaders"},
		Macros:      map[string]string{"FOG": "1", "DEBUG": ""},
		Modules: []config.Module{
			{Name: "a.slang", EntryPoints: []config.EntryPoint{{Name: "main", Stage: "compute"}}},
			{Name: "b", EntryPoints: []config.EntryPoint{{Name: "main", Stage: "compute"}}},
		},
		Output: config.Output{Dir: "out", Reflect: true},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildConfigLayersOverFile(t *testing.T) {
	opts := options{
		configs:  listFlag{"../../config/testdata/basic.cue"},
		profile:  "spirv_1_6",
		includes: listFlag{"extra"},
	}
	cfg, err := buildConfig(opts, nil)
	if err != nil {
		t.Fatalf("buildConfig() error = %v", err)
	}
	for _, tgt := range cfg.Targets {
		if tgt.Profile != "spirv_1_6" {
			t.Errorf("target %s profile = %q, want override", tgt.Format, tgt.Profile)
		}
	}
	if got := cfg.SearchPaths[len(cfg.SearchPaths)-1]; got != "extra" {
		t.Errorf("last search path = %q", got)
	}
	if len(cfg.Modules) != 1 || cfg.Modules[0].Name != "test" {
		t.Errorf("modules from file should be kept, got %+v", cfg.Modules)
	}
}

func TestBuildConfigErrors(t *testing.T) {
	if _, err := buildConfig(options{defines: listFlag{"=1"}}, nil); err == nil {
		t.Error("expected error for empty macro name")
	}
	if _, err := buildConfig(options{configs: listFlag{"missing.cue"}}, nil); err == nil {
		t.Error("expected error for missing config")
	}
}

func TestExtension(t *testing.T) {
	tests := map[slang.CompileTarget]string{
		slang.TargetSPIRV:       ".spv",
		slang.TargetHLSL:        ".hlsl",
		slang.TargetWGSL:        ".wgsl",
		slang.TargetCUDASource:  ".cu",
		slang.TargetPTX:         ".ptx",
		slang.TargetMetalLibAsm: ".metallib-asm",
	}
	for target, want := range tests {
		if got := extension(target); got != want {
			t.Errorf("extension(%s) = %q, want %q", target, got, want)
		}
	}
}

func TestListFlag(t *testing.T) {
	var l listFlag
	_ = l.Set("a")
	_ = l.Set("b")
	if l.String() != "a,b" {
		t.Errorf("String() = %q", l.String())
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.InvalidInput(errors.PhaseConfig, "bad target"))
	if !strings.HasPrefix(buf.String(), "Error: [config] invalid_input") {
		t.Errorf("plain error = %q", buf.String())
	}

	buf.Reset()
	diag := &errors.DiagnosticError{
		Phase:       errors.PhaseModule,
		Code:        errors.EFail,
		Diagnostics: errors.Bytes("test.slang(3): error 30015: undefined identifier"),
	}
	printError(&buf, diag)
	want := "Error: [module] E_FAIL\ntest.slang(3): error 30015: undefined identifier\n"
	if buf.String() != want {
		t.Errorf("diagnostic error = %q, want %q", buf.String(), want)
	}
}

func TestRenderCode(t *testing.T) {
	if got := renderCode([]byte("void main() {}")); got != "void main() {}" {
		t.Errorf("text = %q", got)
	}
	got := renderCode([]byte{0x03, 0x02, 0x23, 0x07, 0xff})
	if !strings.HasPrefix(got, "5 bytes") || !strings.Contains(got, "03 02 23 07 ff") {
		t.Errorf("binary = %q", got)
	}
}
