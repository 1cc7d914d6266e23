package language

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"
)

// ErrMalformedCatalogue is returned by NewRegistry when the supplied entries
// violate a uniqueness invariant (duplicate name, alias, or id).
var ErrMalformedCatalogue = errors.New("language: malformed catalogue")

// Registry is an immutable, indexed view over a catalogue of languages. It is
// safe for concurrent use by multiple goroutines: all indices are built once
// at construction time and never mutated afterward.
type Registry struct {
	languages []*Language

	byName      map[string]*Language // lowercase name -> language
	byAlias     map[string]*Language // lowercase alias -> language
	byLookup    map[string]*Language // union of name+alias, name wins collisions
	byID        map[int]*Language
	byExtension map[string][]*Language // lowercase extension -> languages, insertion order
	byInterp    map[string][]*Language
	byFilename  map[string][]*Language // case-sensitive basename -> languages
}

// NewRegistry builds a Registry from a slice of catalogue entries, indexing
// each one by its name, aliases, extensions, filenames, interpreters, and id.
// It returns ErrMalformedCatalogue if any name, alias, or id collides with
// the same kind of key on another entry; an alias equal to another
// language's name is allowed, and the name wins in Lookup.
func NewRegistry(entries []*Language) (*Registry, error) {
	r := &Registry{
		languages:   make([]*Language, 0, len(entries)),
		byName:      make(map[string]*Language, len(entries)),
		byAlias:     make(map[string]*Language, len(entries)),
		byLookup:    make(map[string]*Language, len(entries)),
		byID:        make(map[int]*Language, len(entries)),
		byExtension: make(map[string][]*Language),
		byInterp:    make(map[string][]*Language),
		byFilename:  make(map[string][]*Language),
	}

	for _, l := range entries {
		lowerName := strings.ToLower(l.Name)
		if _, dup := r.byName[lowerName]; dup {
			return nil, fmt.Errorf("%w: duplicate name %q", ErrMalformedCatalogue, l.Name)
		}

		if _, dup := r.byID[l.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %d (name %q)", ErrMalformedCatalogue, l.ID, l.Name)
		}

		r.languages = append(r.languages, l)
		r.byName[lowerName] = l
		r.byLookup[lowerName] = l
		r.byID[l.ID] = l

		for _, alias := range l.Aliases {
			lowerAlias := strings.ToLower(alias)
			if _, dup := r.byAlias[lowerAlias]; dup {
				return nil, fmt.Errorf("%w: duplicate alias %q (name %q)", ErrMalformedCatalogue, alias, l.Name)
			}

			r.byAlias[lowerAlias] = l

			if _, exists := r.byLookup[lowerAlias]; !exists {
				r.byLookup[lowerAlias] = l
			}
		}

		for _, ext := range l.Extensions {
			lowerExt := strings.ToLower(ext)
			r.byExtension[lowerExt] = append(r.byExtension[lowerExt], l)
		}

		for _, fn := range l.Filenames {
			r.byFilename[fn] = append(r.byFilename[fn], l)
		}

		for _, interp := range l.Interpreters {
			r.byInterp[interp] = append(r.byInterp[interp], l)
		}
	}

	return r, nil
}

// All returns every language in the registry, in catalogue order.
func (r *Registry) All() []*Language {
	out := make([]*Language, len(r.languages))
	copy(out, r.languages)

	return out
}

// FindByName looks up a language by its canonical name, case-insensitively.
// If name contains a comma (as in a modeline naming "C++, c++-mode"), a
// lookup miss on the full string retries against the substring before the
// first comma, trimmed.
func (r *Registry) FindByName(name string) (*Language, bool) {
	return lookupWithCommaFallback(r.byName, name)
}

// FindByAlias looks up a language by one of its aliases, case-insensitively,
// with the same comma-fallback behavior as FindByName.
func (r *Registry) FindByAlias(alias string) (*Language, bool) {
	return lookupWithCommaFallback(r.byAlias, alias)
}

// Lookup resolves a name or alias to a language, case-insensitively, with
// the same comma-fallback behavior as FindByName. When a string is
// simultaneously a name and an alias of a different language, the name
// match wins.
func (r *Registry) Lookup(nameOrAlias string) (*Language, bool) {
	return lookupWithCommaFallback(r.byLookup, nameOrAlias)
}

// lookupWithCommaFallback matches s case-insensitively against index, and
// if that misses and s contains a comma, retries against the trimmed
// substring before the first comma.
func lookupWithCommaFallback(index map[string]*Language, s string) (*Language, bool) {
	if l, ok := index[strings.ToLower(s)]; ok {
		return l, true
	}

	if i := strings.IndexByte(s, ','); i >= 0 {
		prefix := strings.TrimSpace(s[:i])
		if l, ok := index[strings.ToLower(prefix)]; ok {
			return l, true
		}
	}

	return nil, false
}

// FindByID looks up a language by its numeric id.
func (r *Registry) FindByID(id int) (*Language, bool) {
	l, ok := r.byID[id]
	return l, ok
}

// FindByFilename returns every language that recognizes filename as an exact
// basename match (case-sensitive), in catalogue insertion order.
func (r *Registry) FindByFilename(filename string) []*Language {
	base := path.Base(filename)
	return cloneSlice(r.byFilename[base])
}

// FindByInterpreter returns every language associated with the given shebang
// interpreter name.
func (r *Registry) FindByInterpreter(interp string) []*Language {
	return cloneSlice(r.byInterp[interp])
}

// FindByExtension returns every language whose extension list contains ext.
// ext is matched case-insensitively and must include the leading dot.
func (r *Registry) FindByExtension(ext string) []*Language {
	return cloneSlice(r.byExtension[strings.ToLower(ext)])
}

// CandidateExtensions returns the successive dot-delimited suffixes of
// filename, from most specific (the full multi-part extension) to least
// specific (the final extension only), lowercased. For "archive.tar.gz" it
// returns [".tar.gz", ".gz"].
func CandidateExtensions(filename string) []string {
	base := path.Base(filename)

	parts := strings.Split(base, ".")
	if len(parts) < 2 {
		return nil
	}

	// parts[0] is the stem (may be empty for dotfiles); the rest are
	// extension components.
	var out []string
	for i := 1; i < len(parts); i++ {
		suffix := "." + strings.Join(parts[i:], ".")
		out = append(out, strings.ToLower(suffix))
	}

	return out
}

// FindByExtensionChain resolves a filename against progressively shorter
// extension suffixes, returning the first non-empty match (the most
// specific one).
func (r *Registry) FindByExtensionChain(filename string) []*Language {
	for _, ext := range CandidateExtensions(filename) {
		if langs := r.FindByExtension(ext); len(langs) > 0 {
			return langs
		}
	}

	return nil
}

// Group returns the language that l rolls up to for aggregate statistics. If
// l has no GroupName, or the named group isn't registered, Group returns l
// itself.
func (r *Registry) Group(l *Language) *Language {
	if l.GroupName == "" {
		return l
	}

	if g, ok := r.FindByName(l.GroupName); ok {
		return g
	}

	return l
}

// Popular returns every language flagged popular, sorted case-insensitively
// by name.
func (r *Registry) Popular() []*Language {
	return r.filterSorted(func(l *Language) bool { return l.Popular })
}

// Unpopular returns every language not flagged popular, sorted
// case-insensitively by name.
func (r *Registry) Unpopular() []*Language {
	return r.filterSorted(func(l *Language) bool { return !l.Popular })
}

func (r *Registry) filterSorted(keep func(*Language) bool) []*Language {
	var out []*Language

	for _, l := range r.languages {
		if keep(l) {
			out = append(out, l)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})

	return out
}

func cloneSlice(in []*Language) []*Language {
	if len(in) == 0 {
		return nil
	}

	out := make([]*Language, len(in))
	copy(out, in)

	return out
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
	defaultErr      error
)

// Default returns the process-wide Registry built from the embedded
// catalogue. It is built exactly once and is safe for concurrent use.
func Default() (*Registry, error) {
	defaultOnce.Do(func() {
		defaultRegistry, defaultErr = loadEmbedded()
	})

	return defaultRegistry, defaultErr
}

// MustDefault is like Default but panics on error. It is intended for use in
// package-level initialization where a malformed embedded catalogue
// indicates a build defect, not a runtime condition.
func MustDefault() *Registry {
	r, err := Default()
	if err != nil {
		panic(err)
	}

	return r
}
