package reader

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
)

// nativeFS is a billy.Filesystem that resolves paths exactly like the os
// package does, relative paths against the working directory included.
type nativeFS struct {
	osfs.ChrootOS
}

// Chroot returns a new filesystem rooted at the provided path.
func (n *nativeFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (n *nativeFS) Root() string {
	return "/"
}

// NewNativeFS returns the filesystem used by readers created without one
func NewNativeFS() billy.Filesystem {
	return &nativeFS{}
}

// NewMemoryFS returns an empty in-memory filesystem
func NewMemoryFS() billy.Filesystem {
	return memfs.New()
}
