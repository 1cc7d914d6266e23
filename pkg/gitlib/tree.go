package gitlib

import (
	"context"
	"fmt"
	"io"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/codefang-tech/lingua/pkg/safeconv"
)

// Tree is a loaded git tree.
type Tree struct {
	tree *git2go.Tree
	repo *Repository
}

// Hash returns the tree id.
func (t *Tree) Hash() Hash {
	return HashFromOid(t.tree.Id())
}

// EntryCount returns the number of direct entries in the tree.
func (t *Tree) EntryCount() int {
	return safeconv.MustUint64ToInt(t.tree.EntryCount())
}

// EntryByPath resolves a slash-separated path relative to the tree root.
func (t *Tree) EntryByPath(path string) (*TreeEntry, error) {
	entry, err := t.tree.EntryByPath(path)
	if err != nil {
		return nil, fmt.Errorf("tree entry %s: %w", path, err)
	}

	return &TreeEntry{entry: entry}, nil
}

// Files lists every blob entry reachable from the tree, recursing into
// subtrees depth-first so paths come out in git's canonical order.
func (t *Tree) Files() ([]*File, error) {
	return t.FilesContext(context.Background())
}

// FilesContext is Files with cooperative cancellation: the walk stops at
// the next entry once ctx is done.
func (t *Tree) FilesContext(ctx context.Context) ([]*File, error) {
	var files []*File

	err := walkTree(ctx, t.repo, t, "", func(path string, entry *TreeEntry) {
		files = append(files, &File{
			Name: path,
			Hash: entry.Hash(),
			Mode: entry.Filemode(),
		})
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// Free releases the underlying libgit2 tree. Safe to call twice.
func (t *Tree) Free() {
	if t.tree != nil {
		t.tree.Free()
		t.tree = nil
	}
}

func walkTree(ctx context.Context, repo *Repository, tree *Tree, prefix string, visit func(path string, entry *TreeEntry)) error {
	count := tree.tree.EntryCount()

	for i := uint64(0); i < count; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw := tree.tree.EntryByIndex(i)
		if raw == nil {
			continue
		}

		entry := &TreeEntry{entry: raw}

		path := entry.Name()
		if prefix != "" {
			path = prefix + "/" + path
		}

		switch raw.Type {
		case git2go.ObjectBlob:
			visit(path, entry)
		case git2go.ObjectTree:
			subtree, err := repo.LookupTree(entry.Hash())
			if err != nil {
				continue
			}

			walkErr := walkTree(ctx, repo, subtree, path, visit)
			subtree.Free()

			if walkErr != nil {
				return walkErr
			}
		default:
			// Commit entries are submodules; nothing to read.
		}
	}

	return nil
}

// TreeEntry is a single entry of a tree: a blob, a subtree, or a
// submodule commit.
type TreeEntry struct {
	entry *git2go.TreeEntry
}

// Name returns the entry's basename within its parent tree.
func (e *TreeEntry) Name() string {
	return e.entry.Name
}

// Hash returns the id of the object the entry points at.
func (e *TreeEntry) Hash() Hash {
	return HashFromOid(e.entry.Id)
}

// IsBlob reports whether the entry points at a blob.
func (e *TreeEntry) IsBlob() bool {
	return e.entry.Type == git2go.ObjectBlob
}

// Filemode returns the entry's POSIX mode bits. The file-type bits
// distinguish regular files from symlinks (0o120000) and submodule
// gitlinks (0o160000).
func (e *TreeEntry) Filemode() uint16 {
	return safeconv.MustInt32ToUint16(int32(e.entry.Filemode))
}

// File is one blob entry of a recursive tree listing: its full
// slash-separated path, object id, and mode bits.
type File struct {
	Name string
	Hash Hash
	Mode uint16
}

// FileIter steps through a tree listing, yielding io.EOF when exhausted.
type FileIter struct {
	files []*File
	idx   int
}

// NewFileIter wraps an already-materialized listing.
func NewFileIter(files []*File) *FileIter {
	return &FileIter{files: files}
}

// Next returns the next file, or io.EOF after the last one.
func (it *FileIter) Next() (*File, error) {
	if it.idx >= len(it.files) {
		return nil, io.EOF
	}

	f := it.files[it.idx]
	it.idx++

	return f, nil
}
