// Package reader performs failure-safe, whole-file reads of UTF-8 text.
//
// Every read acquires its own handle, releases it exactly once on every exit
// path and reports failures as a *FileError classified as NotFound,
// AccessDenied or IOFailure. The package never logs.
package reader

import (
	"bufio"
	"errors"
	"io"
	"iter"
	"strings"

	"github.com/go-git/go-billy/v5"

	s "github.com/laiambryant/scoped-reader/structs"
)

const DEFAULT_BUFFER_SIZE = 4096

// ReadOutcome is the result of one full read attempt. Err is nil for a
// completed read, in which case Content holds the decoded text.
type ReadOutcome struct {
	FilePath string
	Content  string
	Err      *FileError
}

// Completed reports whether the whole file was read
func (o ReadOutcome) Completed() bool {
	return o.Err == nil
}

// Chars returns the content as a sequence of characters
func (o ReadOutcome) Chars() []rune {
	return []rune(o.Content)
}

// AsError returns the failure as an error value, or nil for a completed read
func (o ReadOutcome) AsError() error {
	if o.Err == nil {
		return nil
	}
	return o.Err
}

// ScopedFileReader opens, reads and releases files on a billy.Filesystem.
// It holds no per-read state and is safe for concurrent use.
type ScopedFileReader struct {
	fs         billy.Filesystem
	bufferSize int
}

// NewScopedFileReader creates a reader over fs. A nil fs selects the native
// filesystem and a non-positive bufferSize selects DEFAULT_BUFFER_SIZE.
func NewScopedFileReader(fs billy.Filesystem, bufferSize int) *ScopedFileReader {
	if fs == nil {
		fs = NewNativeFS()
	}
	if bufferSize <= 0 {
		bufferSize = DEFAULT_BUFFER_SIZE
	}
	return &ScopedFileReader{fs: fs, bufferSize: bufferSize}
}

// ReadAll reads the file at filePath to completion
func (r *ScopedFileReader) ReadAll(filePath string) ReadOutcome {
	var content strings.Builder
	fileErr := r.scan(filePath, func(ch rune) bool {
		content.WriteRune(ch)
		return true
	})
	if fileErr != nil {
		return ReadOutcome{FilePath: filePath, Err: fileErr}
	}
	return ReadOutcome{FilePath: filePath, Content: content.String()}
}

// ReadText is ReadAll for callers that want the failure as a returned error
func (r *ScopedFileReader) ReadText(filePath string) (string, error) {
	outcome := r.ReadAll(filePath)
	if !outcome.Completed() {
		return "", outcome.Err
	}
	return outcome.Content, nil
}

// Chars returns a lazy sequence over the characters of the file at filePath.
// The file is opened when iteration starts and released when it ends, fails
// or is stopped by the consumer. A failure is yielded once as (0, *FileError).
// A release failure after the consumer stops cannot be yielded; use Each when
// it must be observed.
func (r *ScopedFileReader) Chars(filePath string) iter.Seq2[rune, error] {
	return func(yield func(rune, error) bool) {
		stopped := false
		fileErr := r.scan(filePath, func(ch rune) bool {
			if !yield(ch, nil) {
				stopped = true
				return false
			}
			return true
		})
		if fileErr != nil && !stopped {
			yield(0, fileErr)
		}
	}
}

// Each calls fn for every character of the file at filePath until the end of
// data or until fn returns false. The returned error is a *FileError or nil and
// includes a release failure even when fn stopped early.
func (r *ScopedFileReader) Each(filePath string, fn func(rune) bool) error {
	if fileErr := r.scan(filePath, fn); fileErr != nil {
		return fileErr
	}
	return nil
}

// scan feeds each character of the file to fn, one read per step, until the
// end of data or until fn returns false.
func (r *ScopedFileReader) scan(filePath string, fn func(rune) bool) *FileError {
	return r.withHandle(filePath, func(br *bufio.Reader) error {
		for {
			ch, _, err := br.ReadRune()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			if !fn(ch) {
				return nil
			}
		}
	})
}

// withHandle acquires the handle for filePath, runs body on it and releases
// the handle exactly once, whether body returns normally, fails or panics.
func (r *ScopedFileReader) withHandle(filePath string, body func(*bufio.Reader) error) (fileErr *FileError) {
	file, fileErr := r.acquire(filePath)
	if fileErr != nil {
		return fileErr
	}
	defer func() {
		closeErr := file.Close()
		if closeErr == nil {
			return
		}
		if fileErr == nil {
			fileErr = &FileError{Kind: s.IOFailure, FilePath: filePath, Err: closeErr}
			return
		}
		fileErr = &FileError{Kind: fileErr.Kind, FilePath: filePath, Err: errors.Join(fileErr.Err, closeErr)}
	}()

	if err := body(bufio.NewReaderSize(file, r.bufferSize)); err != nil {
		return &FileError{Kind: s.IOFailure, FilePath: filePath, Err: err}
	}
	return nil
}

// acquire opens filePath. Directories are rejected before any handle exists.
func (r *ScopedFileReader) acquire(filePath string) (billy.File, *FileError) {
	if filePath == "" {
		return nil, &FileError{Kind: s.IOFailure, FilePath: filePath, Err: ErrEmptyPath}
	}

	info, err := r.fs.Stat(filePath)
	if err != nil {
		return nil, classify(filePath, err)
	}
	if info.IsDir() {
		return nil, &FileError{Kind: s.IOFailure, FilePath: filePath, Err: ErrIsDirectory}
	}

	file, err := r.fs.Open(filePath)
	if err != nil {
		return nil, classify(filePath, err)
	}
	return file, nil
}

var defaultReader = NewScopedFileReader(nil, DEFAULT_BUFFER_SIZE)

// ReadAll reads filePath from the native filesystem
func ReadAll(filePath string) ReadOutcome {
	return defaultReader.ReadAll(filePath)
}

// ReadText reads filePath from the native filesystem, returning failures as errors
func ReadText(filePath string) (string, error) {
	return defaultReader.ReadText(filePath)
}

// Chars lazily iterates the characters of filePath on the native filesystem
func Chars(filePath string) iter.Seq2[rune, error] {
	return defaultReader.Chars(filePath)
}
