package testutil

import (
	"os"
	"sync"

	"github.com/go-git/go-billy/v5"
)

// FaultFS wraps a billy.Filesystem and injects failures into stat, open,
// read and close while counting how often each path is opened and closed.
type FaultFS struct {
	billy.Filesystem
	mu sync.Mutex

	StatErr error
	OpenErr error
	// ReadErr is returned once FailAfter bytes have been delivered
	ReadErr   error
	FailAfter int
	// ReadPanic, when non-nil, is raised by the first Read call
	ReadPanic any
	CloseErr  error

	stats  int
	opens  map[string]int
	closes map[string]int
}

func NewFaultFS(base billy.Filesystem) *FaultFS {
	return &FaultFS{
		Filesystem: base,
		opens:      make(map[string]int),
		closes:     make(map[string]int),
	}
}

func (f *FaultFS) Stat(filename string) (os.FileInfo, error) {
	f.mu.Lock()
	f.stats++
	statErr := f.StatErr
	f.mu.Unlock()

	if statErr != nil {
		return nil, &os.PathError{Op: "stat", Path: filename, Err: statErr}
	}
	return f.Filesystem.Stat(filename)
}

func (f *FaultFS) Open(filename string) (billy.File, error) {
	f.mu.Lock()
	openErr := f.OpenErr
	f.mu.Unlock()

	if openErr != nil {
		return nil, &os.PathError{Op: "open", Path: filename, Err: openErr}
	}
	file, err := f.Filesystem.Open(filename)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.opens[filename]++
	f.mu.Unlock()
	return &faultFile{File: file, fs: f, name: filename}, nil
}

// Opens returns how many handles were acquired for filename
func (f *FaultFS) Opens(filename string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens[filename]
}

// Closes returns how many times a handle for filename was released
func (f *FaultFS) Closes(filename string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes[filename]
}

// StatCalls returns the number of Stat calls seen so far
func (f *FaultFS) StatCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stats
}

func (f *FaultFS) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.StatErr = nil
	f.OpenErr = nil
	f.ReadErr = nil
	f.FailAfter = 0
	f.ReadPanic = nil
	f.CloseErr = nil
	f.stats = 0
	f.opens = make(map[string]int)
	f.closes = make(map[string]int)
}

type faultFile struct {
	billy.File
	fs   *FaultFS
	name string
	read int
}

func (ff *faultFile) Read(p []byte) (int, error) {
	ff.fs.mu.Lock()
	readErr, failAfter, readPanic := ff.fs.ReadErr, ff.fs.FailAfter, ff.fs.ReadPanic
	ff.fs.mu.Unlock()

	if readPanic != nil {
		panic(readPanic)
	}
	if readErr != nil {
		remaining := failAfter - ff.read
		if remaining <= 0 {
			return 0, readErr
		}
		if len(p) > remaining {
			p = p[:remaining]
		}
	}
	n, err := ff.File.Read(p)
	ff.read += n
	return n, err
}

func (ff *faultFile) Close() error {
	ff.fs.mu.Lock()
	ff.fs.closes[ff.name]++
	closeErr := ff.fs.CloseErr
	ff.fs.mu.Unlock()

	err := ff.File.Close()
	if closeErr != nil {
		return closeErr
	}
	return err
}
