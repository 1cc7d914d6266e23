// Package gitlib wraps the subset of libgit2 that lingua's snapshot
// aggregator needs: opening a repository, resolving a commit to its tree,
// enumerating tree entries with their file modes, reading blobs, and
// diffing two trees into a flat change list. Every wrapper owns its
// underlying C object and must be released with Free.
package gitlib

import (
	"encoding/hex"

	git2go "github.com/libgit2/git2go/v34"
)

// HashSize is the length of a raw SHA-1 object id in bytes.
const HashSize = 20

// Hash is a git object id. The zero value addresses no object and marks
// the absent side of an add or delete change.
type Hash [HashSize]byte

// NewHash parses a 40-character hex commit or blob id. Malformed input
// yields the zero hash, which no lookup will resolve.
func NewHash(s string) Hash {
	var h Hash

	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != HashSize {
		return h
	}

	copy(h[:], raw)

	return h
}

// ZeroHash returns the all-zero object id.
func ZeroHash() Hash {
	return Hash{}
}

// HashFromOid converts a libgit2 oid into a Hash.
func HashFromOid(oid *git2go.Oid) Hash {
	var h Hash

	if oid != nil {
		copy(h[:], oid[:])
	}

	return h
}

// String returns the 40-character hex form of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// IsZero reports whether the hash addresses no object.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// ToOid converts the hash back into a libgit2 oid.
func (h Hash) ToOid() *git2go.Oid {
	oid := new(git2go.Oid)
	copy(oid[:], h[:])

	return oid
}
