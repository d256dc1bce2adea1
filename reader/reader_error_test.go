package reader

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"testing"

	s "github.com/laiambryant/scoped-reader/structs"
)

func TestFileErrorNotFound(t *testing.T) {
	filePath := "/path/to/missing/file.txt"
	err := &FileError{Kind: s.NotFound, FilePath: filePath, Err: fs.ErrNotExist}
	expected := fmt.Sprintf("file not found: %s", filePath)
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

func TestFileErrorAccessDenied(t *testing.T) {
	filePath := "/path/to/file.txt"
	innerErr := errors.New("permission denied")
	err := &FileError{Kind: s.AccessDenied, FilePath: filePath, Err: innerErr}
	expectedMsg := fmt.Sprintf("access denied to file %s: %v", filePath, innerErr)
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}
	if unwrapped := err.Unwrap(); unwrapped != innerErr {
		t.Errorf("Expected Unwrap to return inner error, got %v", unwrapped)
	}
	if err.Message() != "permission denied" {
		t.Errorf("Expected diagnostic message, got '%s'", err.Message())
	}
}

func TestFileErrorIOFailure(t *testing.T) {
	filePath := "/path/to/file.txt"
	innerErr := errors.New("unexpected EOF")
	err := &FileError{Kind: s.IOFailure, FilePath: filePath, Err: innerErr}
	expectedMsg := fmt.Sprintf("error reading file %s: %v", filePath, innerErr)
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message '%s', got '%s'", expectedMsg, err.Error())
	}
	if unwrapped := err.Unwrap(); unwrapped != innerErr {
		t.Errorf("Expected Unwrap to return inner error, got %v", unwrapped)
	}
}

func TestFileErrorMessageWithoutCause(t *testing.T) {
	err := &FileError{Kind: s.NotFound, FilePath: "x"}
	if err.Message() != "" {
		t.Errorf("Expected empty message, got '%s'", err.Message())
	}
}

func TestErrorInterfaceImplementation(t *testing.T) {
	var _ error = (*FileError)(nil)
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want s.ErrorKind
	}{
		{"not exist", &fs.PathError{Op: "open", Path: "a", Err: fs.ErrNotExist}, s.NotFound},
		{"not a directory", &fs.PathError{Op: "stat", Path: "a", Err: syscall.ENOTDIR}, s.NotFound},
		{"permission", &fs.PathError{Op: "open", Path: "a", Err: fs.ErrPermission}, s.AccessDenied},
		{"other", errors.New("too many open files"), s.IOFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify("a", tc.err)
			if got.Kind != tc.want {
				t.Errorf("Expected %v, got %v", tc.want, got.Kind)
			}
			if got.FilePath != "a" {
				t.Errorf("Expected path 'a', got '%s'", got.FilePath)
			}
			if !errors.Is(got, tc.err) {
				t.Errorf("Expected cause preserved in chain")
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", &FileError{Kind: s.AccessDenied, FilePath: "a"})
	if kind, ok := KindOf(wrapped); !ok || kind != s.AccessDenied {
		t.Errorf("Expected AccessDenied, got %v (ok=%v)", kind, ok)
	}
	if kind, ok := KindOf(errors.New("plain")); ok || kind != s.IOFailure {
		t.Errorf("Expected IOFailure fallback, got %v (ok=%v)", kind, ok)
	}
}
