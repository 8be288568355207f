package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	slang "github.com/wippyai/slang-bridge"
	"github.com/wippyai/slang-bridge/config"
	"github.com/wippyai/slang-bridge/errors"
)

var targetExtensions = map[slang.CompileTarget]string{
	slang.TargetGLSL:       ".glsl",
	slang.TargetHLSL:       ".hlsl",
	slang.TargetSPIRV:      ".spv",
	slang.TargetSPIRVAsm:   ".spvasm",
	slang.TargetDXBC:       ".dxbc",
	slang.TargetDXBCAsm:    ".dxbc.asm",
	slang.TargetDXIL:       ".dxil",
	slang.TargetDXILAsm:    ".dxil.asm",
	slang.TargetCSource:    ".c",
	slang.TargetCPPSource:  ".cpp",
	slang.TargetCUDASource: ".cu",
	slang.TargetPTX:        ".ptx",
	slang.TargetMetal:      ".metal",
	slang.TargetMetalLib:   ".metallib",
	slang.TargetWGSL:       ".wgsl",
	slang.TargetWGSLSPIRV:  ".spv",
}

func extension(t slang.CompileTarget) string {
	if ext, ok := targetExtensions[t]; ok {
		return ext
	}
	return "." + t.String()
}

// output is one file written by a compile job.
type output struct {
	path string
	size int
}

// result is what a compile job produced for one module.
type result struct {
	module  string
	outputs []output
}

type compiler struct {
	cfg    *config.Config
	logger *zap.Logger
}

// compileAll compiles every configured module. Compiler sessions are not
// safe for concurrent use, so each worker owns a global session of its own.
func (c *compiler) compileAll(ctx context.Context, jobs int) ([]result, error) {
	jobs = max(1, min(jobs, len(c.cfg.Modules)))

	pool := make(chan *slang.GlobalSession, jobs)
	defer func() {
		close(pool)
		for g := range pool {
			g.Release()
		}
	}()
	for range jobs {
		g, err := slang.NewGlobalSession()
		if err != nil {
			return nil, err
		}
		pool <- g
	}

	results := make([]result, len(c.cfg.Modules))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(jobs)
	for i, m := range c.cfg.Modules {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g := <-pool
			defer func() { pool <- g }()

			r, err := c.compileModule(g, m)
			if err != nil {
				return fmt.Errorf("%s: %w", m.Name, err)
			}
			results[i] = r
			return nil
		})
	}
	err := eg.Wait()
	return results, err
}

// compileModule loads, links and generates code for one module on every
// configured target.
func (c *compiler) compileModule(g *slang.GlobalSession, m config.Module) (result, error) {
	res := result{module: m.Name}
	log := c.logger.With(zap.String("module", m.Name))

	desc, err := c.cfg.SessionDesc(g)
	if err != nil {
		return res, err
	}
	session, err := g.CreateSession(desc)
	if err != nil {
		return res, err
	}
	defer session.Release()

	module, err := session.LoadModule(m.Name)
	if err != nil {
		return res, err
	}
	defer module.Release()

	entries, err := selectEntryPoints(module, m.EntryPoints)
	if err != nil {
		return res, err
	}
	defer func() {
		for _, ep := range entries {
			ep.Release()
		}
	}()

	components := make([]slang.ComponentTyper, 0, len(entries)+1)
	components = append(components, module)
	for _, ep := range entries {
		components = append(components, ep)
	}
	composite, err := session.CreateCompositeComponentType(components...)
	if err != nil {
		return res, err
	}
	defer composite.Release()

	linked, err := composite.Link()
	if err != nil {
		return res, err
	}
	defer linked.Release()

	base := m.Output
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(m.Name), filepath.Ext(m.Name))
	}

	for ti, t := range desc.Targets {
		ext := extension(t.Format)
		if len(entries) == 0 {
			code, err := linked.TargetCode(ti)
			if err != nil {
				return res, err
			}
			out, err := c.write(base+ext, code)
			if err != nil {
				return res, err
			}
			res.outputs = append(res.outputs, out)
		}
		for ei, ep := range entries {
			code, err := linked.EntryPointCode(ei, ti)
			if err != nil {
				return res, err
			}
			name := fmt.Sprintf("%s.%s%s", base, entryName(ep), ext)
			out, err := c.write(name, code)
			if err != nil {
				return res, err
			}
			res.outputs = append(res.outputs, out)
		}

		if c.cfg.Output.Reflect {
			layout, err := linked.Layout(ti)
			if err != nil {
				return res, err
			}
			data, err := reflectionJSON(layout)
			if err != nil {
				return res, err
			}
			out, err := c.writeBytes(fmt.Sprintf("%s.%s.json", base, t.Format), data)
			if err != nil {
				return res, err
			}
			res.outputs = append(res.outputs, out)
		}
		log.Debug("target compiled", zap.Stringer("target", t.Format), zap.Int("entry_points", len(entries)))
	}
	return res, nil
}

// selectEntryPoints returns the requested entry points, or every entry point
// the module defines when none are requested.
func selectEntryPoints(module *slang.Module, wanted []config.EntryPoint) ([]*slang.EntryPoint, error) {
	var out []*slang.EntryPoint
	if len(wanted) == 0 {
		for ep, err := range module.EntryPoints() {
			if err != nil {
				releaseAll(out)
				return nil, err
			}
			out = append(out, ep)
		}
		return out, nil
	}

	for _, w := range wanted {
		stage, err := w.ResolveStage()
		if err != nil {
			releaseAll(out)
			return nil, err
		}
		var ep *slang.EntryPoint
		if stage == slang.StageNone {
			ep = module.FindEntryPointByName(w.Name)
			if ep == nil {
				err = errors.NotFound(errors.PhaseModule, "entry point", w.Name)
			}
		} else {
			ep, err = module.FindAndCheckEntryPoint(w.Name, stage)
		}
		if err != nil {
			releaseAll(out)
			return nil, err
		}
		out = append(out, ep)
	}
	return out, nil
}

func releaseAll(eps []*slang.EntryPoint) {
	for _, ep := range eps {
		ep.Release()
	}
}

func entryName(ep *slang.EntryPoint) string {
	if f := ep.FunctionReflection(); f != nil {
		if name := f.Name(); name != "" {
			return name
		}
	}
	return "entry"
}

func (c *compiler) write(name string, code *slang.Blob) (output, error) {
	defer code.Release()
	return c.writeBytes(name, code.Bytes())
}

func (c *compiler) writeBytes(name string, data []byte) (output, error) {
	path := filepath.Join(c.cfg.Output.Dir, name)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return output{}, err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return output{}, err
	}
	return output{path: path, size: len(data)}, nil
}
