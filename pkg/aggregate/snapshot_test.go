package aggregate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefang-tech/lingua/pkg/aggregate"
	"github.com/codefang-tech/lingua/pkg/gitlib"
	"github.com/codefang-tech/lingua/pkg/language"
)

// snapshotTestRepo wraps a throwaway git2go repository for aggregator tests.
type snapshotTestRepo struct {
	t      *testing.T
	path   string
	native *git2go.Repository
}

func newSnapshotTestRepo(t *testing.T) *snapshotTestRepo {
	t.Helper()

	dir := t.TempDir()

	native, err := git2go.InitRepository(dir, false)
	require.NoError(t, err)

	t.Cleanup(native.Free)

	return &snapshotTestRepo{t: t, path: dir, native: native}
}

func (r *snapshotTestRepo) writeFile(name, content string) {
	r.t.Helper()

	path := filepath.Join(r.path, name)
	require.NoError(r.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(r.t, os.WriteFile(path, []byte(content), 0o644))
}

func (r *snapshotTestRepo) commit(message string) gitlib.Hash {
	r.t.Helper()

	index, err := r.native.Index()
	require.NoError(r.t, err)
	defer index.Free()

	require.NoError(r.t, index.AddAll([]string{"*"}, git2go.IndexAddDefault, nil))
	require.NoError(r.t, index.UpdateAll([]string{"*"}, nil))
	require.NoError(r.t, index.Write())

	treeID, err := index.WriteTree()
	require.NoError(r.t, err)

	tree, err := r.native.LookupTree(treeID)
	require.NoError(r.t, err)
	defer tree.Free()

	sig := &git2go.Signature{Name: "Test User", Email: "test@example.com", When: time.Now()}

	var parents []*git2go.Commit

	head, err := r.native.Head()
	if err == nil {
		parent, lookupErr := r.native.LookupCommit(head.Target())
		require.NoError(r.t, lookupErr)

		parents = append(parents, parent)

		head.Free()
	}

	oid, err := r.native.CreateCommit("HEAD", sig, sig, message, tree, parents...)
	require.NoError(r.t, err)

	for _, p := range parents {
		p.Free()
	}

	return gitlib.HashFromOid(oid)
}

func (r *snapshotTestRepo) open() *gitlib.Repository {
	r.t.Helper()

	repo, err := gitlib.OpenRepository(r.path)
	require.NoError(r.t, err)

	r.t.Cleanup(repo.Free)

	return repo
}

func TestSnapshotAggregatorAggregate(t *testing.T) {
	tr := newSnapshotTestRepo(t)
	tr.writeFile("main.go", "package main\n\nfunc main() {}\n")
	tr.writeFile("README.md", "# Title\n")
	hash := tr.commit("initial")

	repo := tr.open()

	commit, err := repo.LookupCommit(hash)
	require.NoError(t, err)

	tree, err := commit.Tree()
	require.NoError(t, err)

	reg := language.MustDefault()
	agg := aggregate.NewSnapshotAggregator(reg)

	c, err := agg.Aggregate(context.Background(), repo, tree)
	require.NoError(t, err)

	lang, ok := c.LanguageOf("main.go")
	require.True(t, ok)
	assert.Equal(t, "Go", lang)
}

func TestSnapshotAggregatorRefreshTracksChanges(t *testing.T) {
	tr := newSnapshotTestRepo(t)
	tr.writeFile("main.go", "package main\n")
	oldHash := tr.commit("initial")

	repo := tr.open()

	oldCommit, err := repo.LookupCommit(oldHash)
	require.NoError(t, err)

	oldTree, err := oldCommit.Tree()
	require.NoError(t, err)

	reg := language.MustDefault()
	agg := aggregate.NewSnapshotAggregator(reg)

	prior, err := agg.Aggregate(context.Background(), repo, oldTree)
	require.NoError(t, err)

	tr.writeFile("extra.py", "print('hi')\n")
	newHash := tr.commit("add python file")

	newCommit, err := repo.LookupCommit(newHash)
	require.NoError(t, err)

	newTree, err := newCommit.Tree()
	require.NoError(t, err)

	changeSet, err := gitlib.TreeDiff(repo, oldTree, newTree)
	require.NoError(t, err)

	refreshed, err := agg.Refresh(context.Background(), repo, newTree, prior, changeSet)
	require.NoError(t, err)

	_, ok := prior.LanguageOf("extra.py")
	assert.False(t, ok)

	lang, ok := refreshed.LanguageOf("extra.py")
	require.True(t, ok)
	assert.Equal(t, "Python", lang)

	goLang, ok := refreshed.LanguageOf("main.go")
	require.True(t, ok)
	assert.Equal(t, "Go", goLang)
}

func TestSnapshotAggregatorRefreshRebuildsOnGitattributesContentChange(t *testing.T) {
	tr := newSnapshotTestRepo(t)
	tr.writeFile(".gitattributes", "*.proto linguist-language=Go\n")
	tr.writeFile("schema.proto", "syntax = \"proto3\";\n")
	oldHash := tr.commit("initial")

	repo := tr.open()

	oldCommit, err := repo.LookupCommit(oldHash)
	require.NoError(t, err)

	oldTree, err := oldCommit.Tree()
	require.NoError(t, err)

	reg := language.MustDefault()
	agg := aggregate.NewSnapshotAggregator(reg)

	prior, err := agg.Aggregate(context.Background(), repo, oldTree)
	require.NoError(t, err)

	// Rewrite .gitattributes with no actual rule change (comment-only touch);
	// Refresh should still pick up schema.proto's override without error.
	tr.writeFile(".gitattributes", "# comment\n*.proto linguist-language=Go\n")
	newHash := tr.commit("touch gitattributes")

	newCommit, err := repo.LookupCommit(newHash)
	require.NoError(t, err)

	newTree, err := newCommit.Tree()
	require.NoError(t, err)

	changeSet, err := gitlib.TreeDiff(repo, oldTree, newTree)
	require.NoError(t, err)

	refreshed, err := agg.Refresh(context.Background(), repo, newTree, prior, changeSet)
	require.NoError(t, err)

	lang, ok := refreshed.LanguageOf("schema.proto")
	require.True(t, ok)
	assert.Equal(t, "Go", lang)
}

func TestSnapshotAggregatorRefreshEvictsRenamedPath(t *testing.T) {
	tr := newSnapshotTestRepo(t)
	tr.writeFile("old_name.go", "package pkg\n\nfunc Value() int { return 42 }\n")
	oldHash := tr.commit("initial")

	repo := tr.open()

	oldCommit, err := repo.LookupCommit(oldHash)
	require.NoError(t, err)

	oldTree, err := oldCommit.Tree()
	require.NoError(t, err)

	reg := language.MustDefault()
	agg := aggregate.NewSnapshotAggregator(reg)

	prior, err := agg.Aggregate(context.Background(), repo, oldTree)
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(tr.path, "old_name.go")))
	tr.writeFile("new_name.go", "package pkg\n\nfunc Value() int { return 42 }\n")
	newHash := tr.commit("rename")

	newCommit, err := repo.LookupCommit(newHash)
	require.NoError(t, err)

	newTree, err := newCommit.Tree()
	require.NoError(t, err)

	changeSet, err := gitlib.TreeDiff(repo, oldTree, newTree)
	require.NoError(t, err)

	refreshed, err := agg.Refresh(context.Background(), repo, newTree, prior, changeSet)
	require.NoError(t, err)

	_, ok := refreshed.LanguageOf("old_name.go")
	assert.False(t, ok)

	lang, ok := refreshed.LanguageOf("new_name.go")
	require.True(t, ok)
	assert.Equal(t, "Go", lang)
}

func TestSnapshotAggregatorRefusesOversizedTree(t *testing.T) {
	tr := newSnapshotTestRepo(t)
	tr.writeFile("a.go", "package a\n")
	tr.writeFile("b.go", "package b\n")
	tr.writeFile("c.go", "package c\n")
	hash := tr.commit("initial")

	repo := tr.open()

	commit, err := repo.LookupCommit(hash)
	require.NoError(t, err)

	tree, err := commit.Tree()
	require.NoError(t, err)

	reg := language.MustDefault()
	agg := aggregate.NewSnapshotAggregator(reg)
	agg.MaxEntries = 2

	c, err := agg.Aggregate(context.Background(), repo, tree)
	require.NoError(t, err)

	assert.True(t, c.Truncated())
	assert.Equal(t, 0, c.FileCount())
	assert.Empty(t, c.Languages())
}
