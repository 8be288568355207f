package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	slang "github.com/wippyai/slang-bridge"
	"github.com/wippyai/slang-bridge/config"
)

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type options struct {
	configs     listFlag
	includes    listFlag
	defines     listFlag
	entries     listFlag
	target      string
	profile     string
	stage       string
	outDir      string
	library     string
	jobs        int
	reflect     bool
	verbose     bool
	interactive bool
}

func main() {
	var opts options
	flag.Var(&opts.configs, "config", "CUE configuration file (repeatable, files are unified)")
	flag.Var(&opts.includes, "I", "Add a module search path (repeatable)")
	flag.Var(&opts.defines, "D", "Define a macro NAME[=VALUE] (repeatable)")
	flag.Var(&opts.entries, "entry", "Entry point to compile (repeatable, default: all)")
	flag.StringVar(&opts.target, "target", "", "Code generation target (spirv, hlsl, glsl, metal, wgsl, ...)")
	flag.StringVar(&opts.profile, "profile", "", "Target profile, e.g. spirv_1_5 or sm_6_0")
	flag.StringVar(&opts.stage, "stage", "", "Stage for entry points without a stage attribute")
	flag.StringVar(&opts.outDir, "o", "", "Output directory (default: current directory)")
	flag.StringVar(&opts.library, "lib", "", "Path to the slang shared library")
	flag.IntVar(&opts.jobs, "j", runtime.NumCPU(), "Modules compiled in parallel")
	flag.BoolVar(&opts.reflect, "reflect", false, "Write a reflection summary next to the output")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive mode with TUI")
	flag.Parse()

	if len(opts.configs) == 0 && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: slangc [-target spirv] [-profile spirv_1_5] [-I dir] [-D NAME=VALUE] [-entry main] module...")
		fmt.Fprintln(os.Stderr, "       slangc -config build.cue [module...]")
		fmt.Fprintln(os.Stderr, "       slangc -target hlsl -i module  (interactive mode)")
		os.Exit(1)
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	slang.SetLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, flag.Args(), logger); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

func run(ctx context.Context, opts options, modules []string, logger *zap.Logger) error {
	if opts.library != "" {
		if err := slang.LoadLibrary(opts.library); err != nil {
			return err
		}
	}

	cfg, err := buildConfig(opts, modules)
	if err != nil {
		return err
	}
	if len(cfg.Targets) == 0 {
		return fmt.Errorf("no target: pass -target or list targets in the configuration")
	}
	if len(cfg.Modules) == 0 {
		return fmt.Errorf("no modules to compile")
	}

	if opts.interactive {
		return runInteractive(cfg)
	}

	c := &compiler{cfg: cfg, logger: logger}
	results, err := c.compileAll(ctx, opts.jobs)
	for _, r := range results {
		for _, out := range r.outputs {
			fmt.Printf("%s -> %s (%d bytes)\n", r.module, out.path, out.size)
		}
	}
	return err
}

// buildConfig loads the configuration files, then layers command line
// flags on top.
func buildConfig(opts options, modules []string) (*config.Config, error) {
	cfg := &config.Config{}
	if len(opts.configs) > 0 {
		loaded, err := config.Load(opts.configs...)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.target != "" {
		cfg.Targets = []config.Target{{Format: opts.target, Profile: opts.profile}}
	} else if opts.profile != "" {
		for i := range cfg.Targets {
			cfg.Targets[i].Profile = opts.profile
		}
	}

	cfg.SearchPaths = append(cfg.SearchPaths, opts.includes...)

	for _, d := range opts.defines {
		name, value, _ := strings.Cut(d, "=")
		if name == "" {
			return nil, fmt.Errorf("invalid -D %q", d)
		}
		if cfg.Macros == nil {
			cfg.Macros = make(map[string]string)
		}
		cfg.Macros[name] = value
	}

	if opts.outDir != "" {
		cfg.Output.Dir = opts.outDir
	}
	if opts.reflect {
		cfg.Output.Reflect = true
	}

	if len(modules) > 0 {
		entries := make([]config.EntryPoint, 0, len(opts.entries))
		for _, e := range opts.entries {
			entries = append(entries, config.EntryPoint{Name: e, Stage: opts.stage})
		}
		cfg.Modules = cfg.Modules[:0]
		for _, name := range modules {
			cfg.Modules = append(cfg.Modules, config.Module{Name: name, EntryPoints: entries})
		}
	}
	return cfg, nil
}
