// Package blob provides a uniform, read-only view over a named byte
// sequence (a tracked file or a git blob) along with the derived predicates
// used to decide whether it should be detected and counted at all:
// emptiness, binary-ness, symlink-ness, vendoring, documentation, and
// generated-code status.
package blob

import (
	"io"
	"os"

	"github.com/codefang-tech/lingua/pkg/textutil"
)

// Blob is a uniform view over a single file's identity and content,
// independent of whether it is backed by the filesystem or a git object
// store.
type Blob interface {
	// Name is the blob's path, relative to whatever root it was discovered
	// under. Used for extension, filename, and pattern matching.
	Name() string
	// Data returns the blob's full content. Implementations may read lazily
	// but must return the same bytes on every call.
	Data() ([]byte, error)
	// Size returns the blob's size in bytes without necessarily reading its
	// content.
	Size() int64
	// IsSymlink reports whether the blob is a symbolic link rather than a
	// regular file.
	IsSymlink() bool
}

// FileBlob is a Blob backed directly by a path on the local filesystem.
type FileBlob struct {
	name     string
	fullPath string
	size     int64
	symlink  bool
	data     []byte
	loaded   bool
}

// NewFileBlob stats fullPath (without following a symlink) and returns a
// Blob describing it. name is the path reported by Name, typically fullPath
// made relative to a scan root.
func NewFileBlob(name, fullPath string) (*FileBlob, error) {
	info, err := os.Lstat(fullPath)
	if err != nil {
		return nil, err
	}

	symlink := info.Mode()&os.ModeSymlink != 0

	size := info.Size()
	if symlink {
		size = 0
	}

	return &FileBlob{
		name:     name,
		fullPath: fullPath,
		size:     size,
		symlink:  symlink,
	}, nil
}

// Name implements Blob.
func (b *FileBlob) Name() string { return b.name }

// Size implements Blob.
func (b *FileBlob) Size() int64 { return b.size }

// IsSymlink implements Blob.
func (b *FileBlob) IsSymlink() bool { return b.symlink }

// Data implements Blob, reading and caching the file's content on first
// call. For a symlink the content is the link target path itself, never
// the pointed-to file's bytes; callers that must not treat link targets as
// content should consult IsSymlink first.
func (b *FileBlob) Data() ([]byte, error) {
	if b.loaded {
		return b.data, nil
	}

	if b.symlink {
		target, err := os.Readlink(b.fullPath)
		if err != nil {
			return nil, err
		}

		b.data = []byte(target)
		b.loaded = true

		return b.data, nil
	}

	data, err := os.ReadFile(b.fullPath)
	if err != nil {
		return nil, err
	}

	b.data = data
	b.loaded = true

	return b.data, nil
}

// MemoryBlob is an in-memory Blob, primarily useful for tests and for
// adapting content obtained from a non-filesystem source (e.g. a git tree
// entry) into the Blob interface.
type MemoryBlob struct {
	NameValue    string
	DataValue    []byte
	SymlinkValue bool
}

// Name implements Blob.
func (b *MemoryBlob) Name() string { return b.NameValue }

// Data implements Blob.
func (b *MemoryBlob) Data() ([]byte, error) { return b.DataValue, nil }

// Size implements Blob.
func (b *MemoryBlob) Size() int64 { return int64(len(b.DataValue)) }

// IsSymlink implements Blob.
func (b *MemoryBlob) IsSymlink() bool { return b.SymlinkValue }

// Reader returns a io.ReadCloser over the blob's content, reusing
// textutil's zero-copy byte-slice reader.
func Reader(b Blob) (io.ReadCloser, error) {
	data, err := b.Data()
	if err != nil {
		return nil, err
	}

	return textutil.BytesReader(data), nil
}
