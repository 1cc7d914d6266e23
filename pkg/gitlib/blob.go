package gitlib

import (
	"fmt"
	"io"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/codefang-tech/lingua/pkg/textutil"
)

// Blob is a loaded git blob whose bytes still live in libgit2-owned
// memory. Contents copies them out; the handle must be freed promptly.
type Blob struct {
	blob *git2go.Blob
}

// Hash returns the blob id.
func (b *Blob) Hash() Hash {
	return HashFromOid(b.blob.Id())
}

// Size returns the blob's byte count.
func (b *Blob) Size() int64 {
	return b.blob.Size()
}

// Contents returns the blob bytes.
func (b *Blob) Contents() []byte {
	return b.blob.Contents()
}

// Reader returns the blob bytes as an io.ReadCloser.
func (b *Blob) Reader() io.ReadCloser {
	return textutil.BytesReader(b.blob.Contents())
}

// Free releases the underlying libgit2 blob. Safe to call twice.
func (b *Blob) Free() {
	if b.blob != nil {
		b.blob.Free()
		b.blob = nil
	}
}

// CachedBlob is a blob whose bytes have been copied out of libgit2 into
// Go-owned memory, so it can outlive its repository handle and be shared
// across aggregator workers and the LRU blob cache.
type CachedBlob struct {
	hash Hash
	// Data is the full blob content.
	Data []byte
}

// NewCachedBlobFromRepo reads the blob addressed by hash and detaches its
// bytes from libgit2 memory.
func NewCachedBlobFromRepo(repo *Repository, hash Hash) (*CachedBlob, error) {
	blob, err := repo.LookupBlob(hash)
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", hash, err)
	}
	defer blob.Free()

	return &CachedBlob{hash: hash, Data: blob.Contents()}, nil
}

// NewCachedBlobForTest builds an in-memory CachedBlob with a zero hash.
func NewCachedBlobForTest(data []byte) *CachedBlob {
	return &CachedBlob{Data: data}
}

// NewCachedBlobWithHashForTest builds an in-memory CachedBlob with an
// explicit hash, for cache tests that key on object ids.
func NewCachedBlobWithHashForTest(hash Hash, data []byte) *CachedBlob {
	return &CachedBlob{hash: hash, Data: data}
}

// Hash returns the blob id, or the zero hash for in-memory test blobs.
func (b *CachedBlob) Hash() Hash {
	return b.hash
}

// Size returns the blob's byte count.
func (b *CachedBlob) Size() int64 {
	return int64(len(b.Data))
}

// IsBinary reports whether the blob looks binary, using the shared
// null-byte sniff over its leading window.
func (b *CachedBlob) IsBinary() bool {
	return textutil.IsBinary(b.Data)
}
