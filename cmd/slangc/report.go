package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/reflection"
)

var (
	errorLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B"))
	diagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD580"))
)

// printError writes err to w. Compiler diagnostics are printed on their own
// lines, styled when w is a terminal.
func printError(w io.Writer, err error) {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}

	label := "Error:"
	if styled {
		label = errorLabel.Render(label)
	}

	var de *errors.DiagnosticError
	if !errors.As(err, &de) || !de.HasDiagnostics() {
		fmt.Fprintf(w, "%s %v\n", label, err)
		return
	}

	fmt.Fprintf(w, "%s [%s] %s\n", label, de.Phase, de.Code.String())
	text, terr := de.Text()
	if terr != nil {
		fmt.Fprintf(w, "%v\n", terr)
		return
	}
	if styled {
		text = diagStyle.Render(text)
	}
	fmt.Fprintln(w, text)
}

type reflectedParam struct {
	Name     string `json:"name"`
	Type     string `json:"type,omitempty"`
	Category string `json:"category"`
	Index    uint64 `json:"index"`
	Space    uint64 `json:"space"`
}

type reflectedEntryPoint struct {
	Name       string           `json:"name"`
	Stage      string           `json:"stage"`
	Parameters []reflectedParam `json:"parameters,omitempty"`
}

type reflectedProgram struct {
	Parameters    []reflectedParam      `json:"parameters"`
	EntryPoints   []reflectedEntryPoint `json:"entryPoints"`
	HashedStrings []string              `json:"hashedStrings,omitempty"`
	GlobalCBuffer uint64                `json:"globalConstantBufferSize"`
}

func reflectParam(v *reflection.VariableLayout) reflectedParam {
	p := reflectedParam{Name: v.Name()}
	tl := v.TypeLayout()
	if t := tl.Type(); t != nil {
		p.Type = t.Name()
	}
	c := primaryCategory(tl)
	p.Category = c.String()
	p.Index = v.Offset(c)
	p.Space = v.Space(c)
	return p
}

// primaryCategory picks the binding category a parameter is mostly known by.
func primaryCategory(tl *reflection.TypeLayout) reflection.ParameterCategory {
	for _, c := range []reflection.ParameterCategory{
		reflection.CategoryDescriptorTableSlot,
		reflection.CategoryConstantBuffer,
		reflection.CategoryShaderResource,
		reflection.CategoryUnorderedAccess,
		reflection.CategorySamplerState,
		reflection.CategoryUniform,
		reflection.CategoryVaryingInput,
	} {
		if tl.Size(c) > 0 {
			return c
		}
	}
	return reflection.CategoryNone
}

// reflectionJSON summarizes a program layout.
func reflectionJSON(layout *reflection.ProgramLayout) ([]byte, error) {
	prog := reflectedProgram{
		Parameters:    []reflectedParam{},
		EntryPoints:   []reflectedEntryPoint{},
		GlobalCBuffer: layout.GlobalConstantBufferSize(),
	}
	for v := range layout.Parameters() {
		if v != nil {
			prog.Parameters = append(prog.Parameters, reflectParam(v))
		}
	}
	for ep := range layout.EntryPoints() {
		if ep == nil {
			continue
		}
		rep := reflectedEntryPoint{Name: ep.Name(), Stage: ep.Stage().String()}
		for v := range ep.Parameters() {
			if v != nil {
				rep.Parameters = append(rep.Parameters, reflectParam(v))
			}
		}
		prog.EntryPoints = append(prog.EntryPoints, rep)
	}
	for s := range layout.HashedStrings() {
		prog.HashedStrings = append(prog.HashedStrings, s)
	}
	return json.MarshalIndent(prog, "", "  ")
}
