package gitlib

import (
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"

	"github.com/codefang-tech/lingua/pkg/safeconv"
)

// ErrParentNotFound is returned when a commit has no parent at the
// requested index.
var ErrParentNotFound = errors.New("parent commit not found")

// Commit is a loaded git commit.
type Commit struct {
	commit *git2go.Commit
	repo   *Repository
}

// Hash returns the commit id.
func (c *Commit) Hash() Hash {
	return HashFromOid(c.commit.Id())
}

// Tree loads the root tree of the commit.
func (c *Commit) Tree() (*Tree, error) {
	tree, err := c.commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("load commit tree: %w", err)
	}

	return &Tree{tree: tree, repo: c.repo}, nil
}

// NumParents returns how many parents the commit has.
func (c *Commit) NumParents() int {
	return safeconv.MustUintToInt(c.commit.ParentCount())
}

// Parent loads the nth parent, typically parent 0 when an aggregator
// refresh diffs a snapshot against its predecessor.
func (c *Commit) Parent(n int) (*Commit, error) {
	parent := c.commit.Parent(safeconv.MustIntToUint(n))
	if parent == nil {
		return nil, ErrParentNotFound
	}

	return &Commit{commit: parent, repo: c.repo}, nil
}

// Free releases the underlying libgit2 commit. Safe to call twice.
func (c *Commit) Free() {
	if c.commit != nil {
		c.commit.Free()
		c.commit = nil
	}
}
