// Package patterns compiles the regex tables used to classify paths as
// vendored, documentation, or generated, and to recognize manpage filenames.
// The patterns are shipped as embedded YAML so they can be updated without
// touching Go source.
package patterns

import (
	"embed"
	"fmt"
	"regexp"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/vendor.yml
var vendorFS embed.FS

//go:embed data/documentation.yml
var documentationFS embed.FS

type patternFile struct {
	Patterns []string `yaml:"patterns"`
}

// Set is a compiled, ordered collection of regular expressions matched with
// "any pattern matches" semantics.
type Set struct {
	compiled []*regexp.Regexp
}

// Compile builds a Set from raw regex source strings, in RE2 syntax (Go's
// regexp package; lookaround from the upstream patterns' original engine is
// rewritten to RE2-safe equivalents where needed).
func Compile(patterns []string) (*Set, error) {
	s := &Set{compiled: make([]*regexp.Regexp, 0, len(patterns))}

	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("patterns: compile %q: %w", p, err)
		}

		s.compiled = append(s.compiled, re)
	}

	return s, nil
}

// Match reports whether any pattern in the set matches s.
func (set *Set) Match(s string) bool {
	if set == nil {
		return false
	}

	for _, re := range set.compiled {
		if re.MatchString(s) {
			return true
		}
	}

	return false
}

func loadSet(fsys embed.FS, path string) (*Set, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("patterns: read %s: %w", path, err)
	}

	var pf patternFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("patterns: parse %s: %w", path, err)
	}

	return Compile(pf.Patterns)
}

var (
	vendoredOnce sync.Once
	vendoredSet  *Set
	vendoredErr  error

	docOnce sync.Once
	docSet  *Set
	docErr  error
)

func vendored() (*Set, error) {
	vendoredOnce.Do(func() {
		vendoredSet, vendoredErr = loadSet(vendorFS, "data/vendor.yml")
	})

	return vendoredSet, vendoredErr
}

func documentation() (*Set, error) {
	docOnce.Do(func() {
		docSet, docErr = loadSet(documentationFS, "data/documentation.yml")
	})

	return docSet, docErr
}

// IsVendored reports whether path matches one of the vendored-path
// conventions (node_modules, vendor directories, minified bundles, bundled
// third-party libraries, autoconf-generated build scaffolding, and similar).
// It panics if the embedded pattern table fails to compile, which indicates
// a build defect rather than a runtime condition.
func IsVendored(path string) bool {
	set, err := vendored()
	if err != nil {
		panic(err)
	}

	return set.Match(path)
}

// IsDocumentation reports whether path matches one of the documentation-path
// conventions (README, CHANGELOG, docs/ directories, and similar).
func IsDocumentation(path string) bool {
	set, err := documentation()
	if err != nil {
		panic(err)
	}

	return set.Match(path)
}
