// Package config loads compile configurations written in CUE and turns
// them into session descriptors.
package config

import (
	_ "embed"
	"os"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/wippyai/slang-bridge/errors"
)

//go:embed schema.cue
var schemaSrc string

// Config is a compile configuration.
type Config struct {
	Macros       map[string]string `json:"macros,omitempty"`
	Output       Output            `json:"output,omitempty"`
	MinVersion   string            `json:"minVersion,omitempty"`
	MatrixLayout string            `json:"matrixLayout,omitempty"`
	SearchPaths  []string          `json:"searchPaths,omitempty"`
	Targets      []Target          `json:"targets,omitempty"`
	Modules      []Module          `json:"modules,omitempty"`
	Options      Options           `json:"options,omitempty"`
}

// Target is one code generation target.
type Target struct {
	Options           *Options `json:"options,omitempty"`
	Format            string   `json:"format"`
	Profile           string   `json:"profile,omitempty"`
	FloatingPoint     string   `json:"floatingPoint,omitempty"`
	LineDirectives    string   `json:"lineDirectives,omitempty"`
	ForceScalarLayout bool     `json:"forceScalarLayout,omitempty"`
}

// Options are compiler options shared by sessions or targets.
type Options struct {
	Optimization            string   `json:"optimization,omitempty"`
	DebugInfo               string   `json:"debugInfo,omitempty"`
	WarningsAsErrors        string   `json:"warningsAsErrors,omitempty"`
	DisableWarnings         []string `json:"disableWarnings,omitempty"`
	EnableWarnings          []string `json:"enableWarnings,omitempty"`
	Capabilities            []string `json:"capabilities,omitempty"`
	MatrixLayoutRow         bool     `json:"matrixLayoutRow,omitempty"`
	MatrixLayoutColumn      bool     `json:"matrixLayoutColumn,omitempty"`
	SkipSPIRVValidation     bool     `json:"skipSPIRVValidation,omitempty"`
	EmitSpirvDirectly       bool     `json:"emitSpirvDirectly,omitempty"`
	VulkanUseEntryPointName bool     `json:"vulkanUseEntryPointName,omitempty"`
	GLSLForceScalarLayout   bool     `json:"glslForceScalarLayout,omitempty"`
	Obfuscate               bool     `json:"obfuscate,omitempty"`
	ValidateUniformity      bool     `json:"validateUniformity,omitempty"`
}

// Module names a module to compile and the entry points to compile in it.
// With no entry points the whole module is compiled.
type Module struct {
	Name        string       `json:"name"`
	Output      string       `json:"output,omitempty"`
	EntryPoints []EntryPoint `json:"entryPoints,omitempty"`
}

// EntryPoint selects a function. Stage is needed only for functions
// without a stage attribute.
type EntryPoint struct {
	Name  string `json:"name"`
	Stage string `json:"stage,omitempty"`
}

// Output controls where results go.
type Output struct {
	Dir     string `json:"dir,omitempty"`
	Reflect bool   `json:"reflect,omitempty"`
}

// Load reads and merges the CUE files at paths. Files are unified, so
// they may refine each other but not conflict.
func Load(paths ...string) (*Config, error) {
	sources := make([]source, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, errors.Config("read "+p, err)
		}
		sources = append(sources, source{name: p, data: content})
	}
	return load(sources)
}

// Parse reads a single CUE document. name is used in error messages.
func Parse(name string, data []byte) (*Config, error) {
	return load([]source{{name: name, data: data}})
}

type source struct {
	name string
	data []byte
}

func load(sources []source) (*Config, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString("close({"+schemaSrc+"})", cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, errors.Config("compile schema", err)
	}

	value := schema
	for _, s := range sources {
		v := ctx.CompileBytes(s.data, cue.Filename(s.name))
		if err := v.Err(); err != nil {
			return nil, errors.Config("compile "+s.name, err)
		}
		value = value.Unify(v)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, errors.Config("validate", err)
	}

	var cfg Config
	if err := value.Decode(&cfg); err != nil {
		return nil, errors.Config("decode", err)
	}
	return &cfg, nil
}

// MacroNames returns the macro names in sorted order.
func (c *Config) MacroNames() []string {
	names := make([]string, 0, len(c.Macros))
	for name := range c.Macros {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
