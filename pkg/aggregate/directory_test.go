package aggregate_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefang-tech/lingua/pkg/aggregate"
	"github.com/codefang-tech/lingua/pkg/language"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestDirectoryAggregatorAggregate(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "main.go", "package main\n\nfunc main() {}\n")
	writeFile(t, dir, "lib/helper.go", "package lib\n\nfunc Helper() {}\n")
	writeFile(t, dir, "README.md", "# Title\n\nSome docs.\n")

	reg := language.MustDefault()
	agg := aggregate.NewDirectoryAggregator(reg)

	c, err := agg.Aggregate(context.Background(), dir)
	require.NoError(t, err)

	stats := c.Languages()
	require.NotEmpty(t, stats)

	lang, ok := c.Language()
	require.True(t, ok)
	assert.Equal(t, "Go", lang)

	goLang, ok := c.LanguageOf("main.go")
	require.True(t, ok)
	assert.Equal(t, "Go", goLang)
}

func TestDirectoryAggregatorExcludesVendored(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "app.go", "package app\n")
	writeFile(t, dir, "vendor/pkg/dep.go", "package pkg\n")

	reg := language.MustDefault()
	agg := aggregate.NewDirectoryAggregator(reg)

	c, err := agg.Aggregate(context.Background(), dir)
	require.NoError(t, err)

	_, ok := c.LanguageOf("vendor/pkg/dep.go")
	require.True(t, ok)

	for _, f := range c.BreakdownByFile() {
		if f.Path == "vendor/pkg/dep.go" {
			assert.False(t, f.Counted)
		}
	}
}

func TestDirectoryAggregatorGitattributesOverride(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, ".gitattributes", "*.proto linguist-language=Go\n")
	writeFile(t, dir, "schema.proto", "syntax = \"proto3\";\n")

	reg := language.MustDefault()
	agg := aggregate.NewDirectoryAggregator(reg)

	c, err := agg.Aggregate(context.Background(), dir)
	require.NoError(t, err)

	lang, ok := c.LanguageOf("schema.proto")
	require.True(t, ok)
	assert.Equal(t, "Go", lang)
}

func TestDirectoryAggregatorMaxEntries(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "b.go", "package b\n")

	reg := language.MustDefault()
	agg := aggregate.NewDirectoryAggregator(reg)
	agg.MaxEntries = 1

	c, err := agg.Aggregate(context.Background(), dir)
	require.NoError(t, err)
	assert.True(t, c.Truncated())
}
