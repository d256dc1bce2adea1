package reader

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	s "github.com/laiambryant/scoped-reader/structs"
)

var (
	// ErrEmptyPath is the diagnostic carried by the IOFailure produced for an empty path
	ErrEmptyPath = errors.New("empty file path")
	// ErrIsDirectory is the diagnostic carried by the IOFailure produced when the path names a directory
	ErrIsDirectory = errors.New("path is a directory")
)

// FileError represents a classified failure of a single read attempt
type FileError struct {
	Kind     s.ErrorKind
	FilePath string
	Err      error
}

func (e *FileError) Error() string {
	switch e.Kind {
	case s.NotFound:
		return fmt.Sprintf("file not found: %s", e.FilePath)
	case s.AccessDenied:
		return fmt.Sprintf("access denied to file %s: %v", e.FilePath, e.Err)
	default:
		return fmt.Sprintf("error reading file %s: %v", e.FilePath, e.Err)
	}
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Message returns the underlying diagnostic message
func (e *FileError) Message() string {
	if e.Err == nil {
		return ""
	}
	return e.Err.Error()
}

// KindOf reports the kind of the first FileError in err's chain.
// Errors that are not FileErrors are reported as IOFailure with ok set to false.
func KindOf(err error) (kind s.ErrorKind, ok bool) {
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind, true
	}
	return s.IOFailure, false
}

// classify maps a stat or open failure onto the error taxonomy, specific kinds first.
// A path that runs through a regular file (ENOTDIR) resolves to nothing and is NotFound.
func classify(filePath string, err error) *FileError {
	switch {
	case errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR):
		return &FileError{Kind: s.NotFound, FilePath: filePath, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &FileError{Kind: s.AccessDenied, FilePath: filePath, Err: err}
	default:
		return &FileError{Kind: s.IOFailure, FilePath: filePath, Err: err}
	}
}
