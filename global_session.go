package slang

import (
	"strings"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/mod/semver"

	"github.com/wippyai/slang-bridge/errors"
	"github.com/wippyai/slang-bridge/internal/native"
)

// IGlobalSession slots.
const (
	slotGlobalCreateSession             native.Method = 3
	slotGlobalFindProfile               native.Method = 4
	slotGlobalSetDownstreamCompilerPath native.Method = 5
	slotGlobalGetBuildTagString         native.Method = 8
	slotGlobalCheckCompileTargetSupport native.Method = 17
	slotGlobalFindCapability            native.Method = 22
)

// GlobalSession is the root compiler object. It is expensive to create and
// may be shared by sessions used on different goroutines.
type GlobalSession struct {
	object
}

// GlobalSessionFromRaw wraps p, taking ownership of one reference.
func GlobalSessionFromRaw(p unsafe.Pointer) *GlobalSession {
	if p == nil {
		return nil
	}
	g := &GlobalSession{}
	g.init(p, "IGlobalSession")
	return g
}

// NewGlobalSession creates a global session with the core module loaded.
func NewGlobalSession() (*GlobalSession, error) {
	return newGlobalSession("slang_createGlobalSession")
}

// NewGlobalSessionWithoutCoreModule creates a global session without
// loading the core module. Libraries predating the core module rename are
// also accepted.
func NewGlobalSessionWithoutCoreModule() (*GlobalSession, error) {
	return newGlobalSession("slang_createGlobalSessionWithoutCoreModule", "slang_createGlobalSessionWithoutStdLib")
}

func newGlobalSession(names ...string) (*GlobalSession, error) {
	fn, err := sym(names...)
	if err != nil {
		return nil, err
	}
	var out unsafe.Pointer
	r := native.FCallStatusIP(fn, 0, unsafe.Pointer(&out))
	if err := errors.Check(errors.PhaseSession, r); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, errors.NilPointer(errors.PhaseSession, "IGlobalSession", names[0])
	}
	g := GlobalSessionFromRaw(out)
	Logger().Debug("global session created", zap.String("build", g.BuildTagString()))
	return g, nil
}

// Clone returns a second wrapper for the same global session.
func (g *GlobalSession) Clone() *GlobalSession {
	p, err := g.base().retain(errors.PhaseSession)
	if err != nil {
		return nil
	}
	return GlobalSessionFromRaw(p)
}

// CreateSession creates a session from desc. Failure is status-only.
func (g *GlobalSession) CreateSession(desc *SessionDesc) (*Session, error) {
	self, err := g.base().self(errors.PhaseSession)
	if err != nil {
		return nil, err
	}
	if desc == nil {
		desc = NewSessionDesc()
	}

	nd := desc.native()
	var fs unsafe.Pointer
	if desc.FileSystem != nil {
		fs = newNativeFileSystem(desc.FileSystem)
		nd.FileSystem = fs
	}

	var arena native.Arena
	defer arena.Free()

	var out unsafe.Pointer
	r := native.CallStatusPP(self, slotGlobalCreateSession, arena.Session(&nd), unsafe.Pointer(&out))
	if err := errors.Check(errors.PhaseSession, r); err != nil {
		if fs != nil {
			native.Release(fs)
		}
		return nil, err
	}
	if out == nil {
		if fs != nil {
			native.Release(fs)
		}
		return nil, errors.NilPointer(errors.PhaseSession, "IGlobalSession", "createSession")
	}

	s := SessionFromRaw(out)
	s.fs = fs
	Logger().Debug("session created",
		zap.Int("targets", len(nd.Targets)),
		zap.Int("search_paths", len(nd.SearchPaths)),
		zap.Bool("file_system", fs != nil))
	return s, nil
}

// FindProfile returns the profile with the given name, or ProfileUnknown.
func (g *GlobalSession) FindProfile(name string) ProfileID {
	self, err := g.base().self(errors.PhaseSession)
	if err != nil {
		return ProfileUnknown
	}
	var arena native.Arena
	defer arena.Free()
	return ProfileID(native.CallInt32P(self, slotGlobalFindProfile, arena.CString(name)))
}

// FindCapability returns the capability with the given name, or
// CapabilityUnknown.
func (g *GlobalSession) FindCapability(name string) CapabilityID {
	self, err := g.base().self(errors.PhaseSession)
	if err != nil {
		return CapabilityUnknown
	}
	var arena native.Arena
	defer arena.Free()
	return CapabilityID(native.CallInt32P(self, slotGlobalFindCapability, arena.CString(name)))
}

// CheckCompileTargetSupport reports whether the library can generate code
// for target.
func (g *GlobalSession) CheckCompileTargetSupport(target CompileTarget) error {
	self, err := g.base().self(errors.PhaseSession)
	if err != nil {
		return err
	}
	return errors.Check(errors.PhaseSession, native.CallStatusI32(self, slotGlobalCheckCompileTargetSupport, int32(target)))
}

// SetDownstreamCompilerPath sets where a downstream compiler is located.
func (g *GlobalSession) SetDownstreamCompilerPath(passThrough PassThrough, path string) {
	self, err := g.base().self(errors.PhaseSession)
	if err != nil {
		return
	}
	var arena native.Arena
	defer arena.Free()
	native.CallVoidI32P(self, slotGlobalSetDownstreamCompilerPath, int32(passThrough), arena.CString(path))
}

// BuildTagString returns the library's build tag, such as "2025.6.1".
func (g *GlobalSession) BuildTagString() string {
	self, err := g.base().self(errors.PhaseSession)
	if err != nil {
		return ""
	}
	return native.GoString(native.CallPtr(self, slotGlobalGetBuildTagString))
}

// Version returns the build tag as a semantic version ("v2025.6.1"), or ""
// when the tag is not a version.
func (g *GlobalSession) Version() string {
	return canonicalVersion(g.BuildTagString())
}

// RequireVersion fails unless the library is at least version min.
func (g *GlobalSession) RequireVersion(min string) error {
	want := canonicalVersion(min)
	if want == "" {
		return errors.InvalidInput(errors.PhaseSession, "invalid version "+min)
	}
	have := g.Version()
	if have == "" {
		return errors.New(errors.PhaseSession, errors.KindUnsupported).
			Detail("library build tag %q is not a version", g.BuildTagString()).
			Code(errors.ENotAvailable).
			Build()
	}
	if semver.Compare(have, want) < 0 {
		return errors.New(errors.PhaseSession, errors.KindUnsupported).
			Detail("library version %s is older than %s", have, want).
			Code(errors.ENotAvailable).
			Build()
	}
	return nil
}

// canonicalVersion maps a build tag to a canonical semantic version.
// Tags look like "2025.6.1", "v2025.6.1" or "2025.6.1-12-gabcdef".
func canonicalVersion(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	if !strings.HasPrefix(tag, "v") {
		tag = "v" + tag
	}
	if !semver.IsValid(tag) {
		return ""
	}
	return semver.Canonical(tag)
}
