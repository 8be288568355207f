// Package slang lets Go programs drive the Slang shader compiler through its
// native COM-style object model.
//
// The compiler library is loaded at run time with dlopen. Every object the
// library returns is wrapped in a typed facade that owns one reference, and
// Go values (byte buffers, virtual file systems) can be handed to the
// library as native objects whose vtables call back into Go.
//
// # Architecture Overview
//
//	slang/               Typed facades: GlobalSession, Session, Module, ...
//	├── reflection/      ProgramLayout and read-only reflection accessors
//	├── errors/          Status codes, diagnostic and structured errors
//	├── resource/        Reference-counted handle table for host objects
//	├── vfs/             Ready-made FileSystem implementations
//	├── config/          CUE compile configuration
//	├── internal/native/ cgo: loading, vtable dispatch, host object vtables
//	└── cmd/slangc/      Command line compiler and reflection browser
//
// # Quick Start
//
//	global, err := slang.NewGlobalSession()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer global.Release()
//
//	desc := slang.NewSessionDesc().
//	    WithTargets(slang.NewTargetDesc(slang.TargetSPIRV).
//	        WithProfile(global.FindProfile("spirv_1_5"))).
//	    WithSearchPaths("shaders")
//	session, err := global.CreateSession(desc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Release()
//
//	module, err := session.LoadModule("shader.slang")
//	if err != nil {
//	    log.Fatal(err) // *errors.DiagnosticError with compiler output
//	}
//	defer module.Release()
//
//	entry := module.FindEntryPointByName("main")
//	program, err := session.CreateCompositeComponentType(module, entry)
//	...
//	linked, err := program.Link()
//	...
//	code, err := linked.EntryPointCode(0, 0)
//
// # Ownership
//
// Each wrapper holds exactly one reference and gives it back on Release.
// Release is idempotent. Clone adds a reference and returns an independent
// wrapper. Results the library returns without a reference, such as loaded
// modules, are retained when wrapped so every wrapper is released the same
// way.
//
// Module, EntryPoint and TypeConformance embed ComponentType and can be
// passed anywhere a ComponentType is accepted. The reverse direction is
// checked with AsModule, AsEntryPoint and AsTypeConformance.
//
// # Thread Safety
//
// A GlobalSession may create sessions used on different goroutines. A
// Session and the components it produces must not be used concurrently.
// The bridge adds no locking around native objects. FileSystem callbacks
// may run on any thread and must be safe for concurrent use.
//
// # Library Discovery
//
// The library named by SLANG_LIBRARY is tried first, then the platform
// default names. LoadLibrary selects a specific file.
package slang
