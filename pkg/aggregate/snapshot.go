package aggregate

import (
	"context"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/codefang-tech/lingua/pkg/attrs"
	"github.com/codefang-tech/lingua/pkg/cache"
	"github.com/codefang-tech/lingua/pkg/detect"
	"github.com/codefang-tech/lingua/pkg/detect/strategies"
	"github.com/codefang-tech/lingua/pkg/gitlib"
	"github.com/codefang-tech/lingua/pkg/language"
)

// gitattributesPath is the well-known filename whose presence (or change)
// invalidates any incremental cache, since it can redirect detection for
// every path in the tree.
const gitattributesPath = ".gitattributes"

// SnapshotAggregator aggregates per-language byte statistics over a single
// git tree, using an LRU blob cache to avoid re-reading unchanged blobs
// across successive snapshots of the same repository.
type SnapshotAggregator struct {
	Registry *language.Registry
	Pipeline *detect.Pipeline
	Blobs    *cache.LRUBlobCache

	MaxEntries int
}

// NewSnapshotAggregator builds a SnapshotAggregator over reg's standard
// detection pipeline with the default blob cache size.
func NewSnapshotAggregator(reg *language.Registry) *SnapshotAggregator {
	return &SnapshotAggregator{
		Registry: reg,
		Pipeline: strategies.NewPipeline(reg),
		Blobs:    cache.NewLRUBlobCache(cache.DefaultLRUCacheSize),
	}
}

// Aggregate computes full language statistics for every file in tree.
// Trees whose file count exceeds the entry ceiling are refused: the result
// is an empty cache flagged as truncated, never a partial breakdown.
func (a *SnapshotAggregator) Aggregate(ctx context.Context, repo *gitlib.Repository, tree *gitlib.Tree) (*Cache, error) {
	result := NewCache(a.MaxEntries)

	files, err := tree.FilesContext(ctx)
	if err != nil {
		return nil, err
	}

	if len(files) > result.maxEntries {
		result.truncated = true
		return result, nil
	}

	overrides, err := a.loadGitattributes(repo, tree)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cb, err := a.loadBlob(repo, f.Hash)
		if err != nil {
			continue
		}

		result.add(a.classifyFile(f.Name, f.Mode, cb, overrides))
	}

	return result, nil
}

// Refresh patches prior into the state at newTree, given the file-level
// delta between the commit prior was built from and the new commit. If the
// delta touches .gitattributes, Refresh discards prior and performs a full
// Aggregate instead, since attribute changes can alter detection for any
// path in the tree, not just the changed ones.
func (a *SnapshotAggregator) Refresh(ctx context.Context, repo *gitlib.Repository, newTree *gitlib.Tree, prior *Cache, changes gitlib.Changes) (*Cache, error) {
	if a.gitattributesChanged(repo, changes) {
		return a.Aggregate(ctx, repo, newTree)
	}

	result := NewCache(a.MaxEntries)
	result.restore(prior.snapshot())

	overrides, err := a.loadGitattributes(repo, newTree)
	if err != nil {
		return nil, err
	}

	for _, change := range changes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		switch change.Action {
		case gitlib.Delete:
			result.remove(change.From.Name)
		case gitlib.Insert, gitlib.Modify:
			if change.From.Name != "" && change.From.Name != change.To.Name {
				result.remove(change.From.Name)
			}

			cb, err := a.loadBlob(repo, change.To.Hash)
			if err != nil {
				continue
			}

			result.add(a.classifyFile(change.To.Name, change.To.Mode, cb, overrides))
		}
	}

	return result, nil
}

// gitattributesChanged reports whether .gitattributes meaningfully changed
// between the two snapshots. An add, delete, or rename touching the file is
// always a change. A same-path modify is a change only if the two blobs
// differ in any byte, so only a touch that leaves the content identical
// (such as a mode-only change) avoids a full rebuild.
func (a *SnapshotAggregator) gitattributesChanged(repo *gitlib.Repository, changes gitlib.Changes) bool {
	for _, c := range changes {
		if c.From.Name != gitattributesPath && c.To.Name != gitattributesPath {
			continue
		}

		if c.From.Name != c.To.Name || c.From.Hash.IsZero() || c.To.Hash.IsZero() {
			return true
		}

		if a.gitattributesContentDiffers(repo, c.From.Hash, c.To.Hash) {
			return true
		}
	}

	return false
}

// gitattributesContentDiffers compares two .gitattributes blobs byte for
// byte via a diff, rather than assuming any path-level touch rewrote the
// content. A failed blob load is treated as a change, erring toward the
// safe full rebuild.
func (a *SnapshotAggregator) gitattributesContentDiffers(repo *gitlib.Repository, oldHash, newHash gitlib.Hash) bool {
	oldBlob, err := a.loadBlob(repo, oldHash)
	if err != nil {
		return true
	}

	newBlob, err := a.loadBlob(repo, newHash)
	if err != nil {
		return true
	}

	dmp := diffmatchpatch.New()

	diffs := dmp.DiffMain(string(oldBlob.Data), string(newBlob.Data), false)
	for _, d := range diffs {
		if d.Type != diffmatchpatch.DiffEqual {
			return true
		}
	}

	return false
}

func (a *SnapshotAggregator) loadBlob(repo *gitlib.Repository, hash gitlib.Hash) (*gitlib.CachedBlob, error) {
	if cb := a.Blobs.Get(hash); cb != nil {
		return cb, nil
	}

	cb, err := gitlib.NewCachedBlobFromRepo(repo, hash)
	if err != nil {
		return nil, err
	}

	a.Blobs.Put(hash, cb)

	return cb, nil
}

func (a *SnapshotAggregator) loadGitattributes(repo *gitlib.Repository, tree *gitlib.Tree) (*attrs.File, error) {
	entry, err := tree.EntryByPath(gitattributesPath)
	if err != nil || entry == nil || !entry.IsBlob() {
		return nil, nil //nolint:nilnil // absence of .gitattributes is not an error
	}

	cb, err := a.loadBlob(repo, entry.Hash())
	if err != nil {
		return nil, err
	}

	return attrs.Parse(cb.Data), nil
}

func (a *SnapshotAggregator) classifyFile(name string, mode uint16, cb *gitlib.CachedBlob, overrides *attrs.File) FileEntry {
	gb := newGitBlob(name, mode, cb)
	return classify(a.Registry, a.Pipeline, gb, overrides, name)
}
