package slang

import (
	"testing"
	"unsafe"

	"github.com/google/go-cmp/cmp"

	"github.com/wippyai/slang-bridge/internal/native"
)

func TestSessionDesc_Marshal(t *testing.T) {
	opts := NewCompilerOptions().Optimization(OptimizationHigh).MatrixLayoutRow(true)
	target := NewTargetDesc(TargetDXIL).
		WithProfile(ProfileID(99)).
		WithOptions(NewCompilerOptions().EmitSpirvDirectly(true))

	desc := NewSessionDesc().
		WithTargets(target, nil, NewTargetDesc(TargetSPIRV)).
		WithSearchPaths("shaders", "lib").
		WithMacro("N", "4").
		WithOptions(opts).
		WithDefaultMatrixLayoutMode(MatrixLayoutColumnMajor).
		WithGLSLSyntax(true)

	nd := desc.native()
	fs := unsafe.Pointer(&nd)
	nd.FileSystem = fs

	var arena native.Arena
	defer arena.Free()
	got := native.ReadSession(arena.Session(&nd))

	want := native.SessionView{
		SearchPaths: []string{"shaders", "lib"},
		Macros:      []native.Macro{{Name: "N", Value: "4"}},
		Targets: []native.TargetView{
			{
				StructSize: native.Sizeof(native.StructTargetDesc),
				Format:     int32(TargetDXIL),
				Profile:    99,
				Options: []native.OptionEntry{
					{Name: int32(OptionEmitSpirvDirectly), Kind: native.OptionKindInt, Int0: 1},
				},
			},
			{
				StructSize: native.Sizeof(native.StructTargetDesc),
				Format:     int32(TargetSPIRV),
			},
		},
		Options: []native.OptionEntry{
			{Name: int32(OptionOptimization), Kind: native.OptionKindInt, Int0: int32(OptimizationHigh)},
			{Name: int32(OptionMatrixLayoutRow), Kind: native.OptionKindInt, Int0: 1},
		},
		StructSize:   native.Sizeof(native.StructSessionDesc),
		MatrixLayout: int32(MatrixLayoutColumnMajor),
		FileSystem:   fs,
		AllowGLSL:    true,
	}

	ptrEqual := cmp.Comparer(func(a, b unsafe.Pointer) bool { return a == b })
	if diff := cmp.Diff(want, got, ptrEqual); diff != "" {
		t.Errorf("session mismatch (-want +got):\n%s", diff)
	}
}

func TestTargetDesc_Defaults(t *testing.T) {
	td := NewTargetDesc(TargetSPIRV).native()
	want := native.TargetDesc{Format: int32(TargetSPIRV)}
	if diff := cmp.Diff(want, td); diff != "" {
		t.Errorf("default target mismatch (-want +got):\n%s", diff)
	}
}
