package gitlib

import (
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// ChangeAction classifies one file-level delta between two trees.
type ChangeAction int

const (
	// Insert is a path present only in the new tree.
	Insert ChangeAction = iota
	// Delete is a path present only in the old tree.
	Delete
	// Modify is a path whose content changed, including renames and
	// copies where the old and new names differ.
	Modify
)

// ChangeEntry is one side of a change. The zero value (empty name, zero
// hash) marks the missing side of an insert or delete.
type ChangeEntry struct {
	Name string
	Hash Hash
	Size int64
	Mode uint16
}

// Change is a single file-level delta.
type Change struct {
	Action ChangeAction
	From   ChangeEntry
	To     ChangeEntry
}

// Changes is the flat delta between two trees.
type Changes []*Change

// TreeDiff computes the file-level delta from oldTree to newTree, with
// rename detection enabled so a moved file surfaces as one Modify with
// differing From and To names rather than a Delete/Insert pair. Equal
// tree ids short-circuit to an empty delta without touching libgit2.
func TreeDiff(repo *Repository, oldTree, newTree *Tree) (Changes, error) {
	if oldTree != nil && newTree != nil && oldTree.Hash() == newTree.Hash() {
		return Changes{}, nil
	}

	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return nil, fmt.Errorf("diff options: %w", err)
	}

	var oldT, newT *git2go.Tree
	if oldTree != nil {
		oldT = oldTree.tree
	}

	if newTree != nil {
		newT = newTree.tree
	}

	diff, err := repo.repo.DiffTreeToTree(oldT, newT, &opts)
	if err != nil {
		return nil, fmt.Errorf("diff trees: %w", err)
	}

	defer func() { _ = diff.Free() }()

	findOpts, err := git2go.DefaultDiffFindOptions()
	if err == nil {
		findOpts.Flags = git2go.DiffFindRenames
		_ = diff.FindSimilar(&findOpts)
	}

	numDeltas, err := diff.NumDeltas()
	if err != nil {
		return nil, fmt.Errorf("count deltas: %w", err)
	}

	changes := make(Changes, 0, numDeltas)

	for i := range numDeltas {
		delta, deltaErr := diff.Delta(i)
		if deltaErr != nil {
			continue
		}

		if change := deltaToChange(delta); change != nil {
			changes = append(changes, change)
		}
	}

	return changes, nil
}

func deltaToChange(delta git2go.DiffDelta) *Change {
	from := ChangeEntry{
		Name: delta.OldFile.Path,
		Hash: HashFromOid(delta.OldFile.Oid),
		Size: delta.OldFile.Size,
		Mode: delta.OldFile.Mode,
	}
	to := ChangeEntry{
		Name: delta.NewFile.Path,
		Hash: HashFromOid(delta.NewFile.Oid),
		Size: delta.NewFile.Size,
		Mode: delta.NewFile.Mode,
	}

	switch delta.Status {
	case git2go.DeltaAdded:
		return &Change{Action: Insert, To: to}
	case git2go.DeltaDeleted:
		return &Change{Action: Delete, From: from}
	case git2go.DeltaModified, git2go.DeltaRenamed, git2go.DeltaCopied:
		return &Change{Action: Modify, From: from, To: to}
	default:
		// Unmodified, ignored, and conflict deltas carry no reclassifiable
		// content.
		return nil
	}
}
