package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	slang "github.com/wippyai/slang-bridge"
	"github.com/wippyai/slang-bridge/config"
)

func requireSlang(t *testing.T) {
	t.Helper()
	g, err := slang.NewGlobalSession()
	if err != nil {
		t.Skipf("slang library unavailable: %v", err)
	}
	g.Release()
}

func TestCompileAll(t *testing.T) {
	requireSlang(t)

	out := t.TempDir()
	cfg := &config.Config{
		SearchPaths: []string{filepath.Join("..", "..", "testdata", "shaders")},
		Targets:     []config.Target{{Format: "spirv", Profile: "spirv_1_5"}, {Format: "hlsl"}},
		Modules: []config.Module{
			{Name: "test"},
			{Name: "multi", EntryPoints: []config.EntryPoint{{Name: "first"}}},
		},
		Output: config.Output{Dir: out, Reflect: true},
	}
	c := &compiler{cfg: cfg, logger: zaptest.NewLogger(t)}

	results, err := c.compileAll(context.Background(), 2)
	if err != nil {
		t.Fatalf("compileAll() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	for _, name := range []string{"test.main.spv", "test.main.hlsl", "multi.first.spv", "test.spirv.json"} {
		info, err := os.Stat(filepath.Join(out, name))
		if err != nil {
			t.Errorf("missing output %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("output %s is empty", name)
		}
	}
	if _, err := os.Stat(filepath.Join(out, "multi.second.spv")); err == nil {
		t.Error("unrequested entry point was compiled")
	}

	data, err := os.ReadFile(filepath.Join(out, "test.spirv.json"))
	if err != nil {
		t.Fatal(err)
	}
	var prog reflectedProgram
	if err := json.Unmarshal(data, &prog); err != nil {
		t.Fatalf("reflection json: %v", err)
	}
	if len(prog.EntryPoints) != 1 || prog.EntryPoints[0].Name != "main" || prog.EntryPoints[0].Stage != "compute" {
		t.Errorf("entry points = %+v", prog.EntryPoints)
	}
}

func TestCompileAllReportsDiagnostics(t *testing.T) {
	requireSlang(t)

	cfg := &config.Config{
		SearchPaths: []string{filepath.Join("..", "..", "testdata", "shaders")},
		Targets:     []config.Target{{Format: "spirv"}},
		Modules:     []config.Module{{Name: "broken"}},
		Output:      config.Output{Dir: t.TempDir()},
	}
	c := &compiler{cfg: cfg, logger: zaptest.NewLogger(t)}

	_, err := c.compileAll(context.Background(), 1)
	if err == nil {
		t.Fatal("expected compile error")
	}
}

func TestCompileAllUnknownEntryPoint(t *testing.T) {
	requireSlang(t)

	cfg := &config.Config{
		SearchPaths: []string{filepath.Join("..", "..", "testdata", "shaders")},
		Targets:     []config.Target{{Format: "spirv"}},
		Modules:     []config.Module{{Name: "multi", EntryPoints: []config.EntryPoint{{Name: "third"}}}},
		Output:      config.Output{Dir: t.TempDir()},
	}
	c := &compiler{cfg: cfg, logger: zaptest.NewLogger(t)}

	if _, err := c.compileAll(context.Background(), 1); err == nil {
		t.Fatal("expected error for unknown entry point")
	}
}
