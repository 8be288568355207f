package vfs

import (
	stderrors "errors"
	"io/fs"
	"os"
	"syscall"

	"github.com/wippyai/slang-bridge/errors"
)

// notExist reports a missing file at path.
func notExist(path string) error {
	return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
}

// IsNotExist reports whether err means a file is missing.
func IsNotExist(err error) bool {
	return stderrors.Is(err, fs.ErrNotExist)
}

// mapOSError attaches the status code the compiler should see to an error
// from the os package.
func mapOSError(path string, err error) error {
	if err == nil {
		return nil
	}
	if os.IsNotExist(err) {
		return notExist(path)
	}
	code := errors.ECannotOpen
	var pathErr *os.PathError
	if stderrors.As(err, &pathErr) {
		var errno syscall.Errno
		if stderrors.As(pathErr.Err, &errno) {
			code = mapErrno(errno)
		}
	}
	return errors.New(errors.PhaseHost, errors.KindStatus).
		Interface("ISlangFileSystem").
		Method("loadFile").
		Path(path).
		Code(code).
		Cause(err).
		Build()
}

func mapErrno(errno syscall.Errno) errors.Result {
	switch errno {
	case syscall.ENOENT, syscall.ENOTDIR:
		return errors.ENotFound
	case syscall.EACCES, syscall.EPERM, syscall.EISDIR, syscall.ELOOP:
		return errors.ECannotOpen
	case syscall.ENAMETOOLONG, syscall.EINVAL:
		return errors.EInvalidArg
	case syscall.ENOMEM:
		return errors.EOutOfMemory
	default:
		return errors.EFail
	}
}
