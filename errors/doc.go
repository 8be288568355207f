// Package errors provides the error model of the Slang bridge.
//
// Every native call reports a signed 32-bit Result; negative values are
// failures. Failures surface in one of two tiers:
//
//	*StatusError      - a bare Result, for structural or argument problems
//	*DiagnosticError  - a Result plus compiler-emitted text
//
// Both carry the Phase in which the call was made and match their Result with
// errors.Is:
//
//	mod, err := session.LoadModule("shader")
//	if errors.Is(err, errors.ENotFound) {
//		...
//	}
//	var diag *errors.DiagnosticError
//	if errors.As(err, &diag) {
//		text, _ := diag.Text()
//		fmt.Println(text)
//	}
//
// Failures that originate on the Go side of the bridge (library not loaded,
// invalid input, panics in host callbacks) use the structured Error type,
// built with the Builder or the convenience constructors:
//
//	err := errors.New(errors.PhaseHost, errors.KindPanic).
//		Interface("ISlangFileSystem").
//		Method("loadFile").
//		Detail("recovered: %v", r).
//		Build()
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
