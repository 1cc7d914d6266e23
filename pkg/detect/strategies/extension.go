package strategies

import (
	"github.com/codefang-tech/lingua/pkg/blob"
	"github.com/codefang-tech/lingua/pkg/detect"
	"github.com/codefang-tech/lingua/pkg/language"
	"github.com/codefang-tech/lingua/pkg/patterns"
)

// Extension resolves the language from the blob's filename extension,
// trying the most specific multi-part suffix first (e.g. ".d.ts" before
// ".ts"). If incoming candidates are already narrowed, Extension only
// considers extensions that resolve to at least one of them. A small set
// of generic extensions (".1"-".9", ".app", ...) is treated as
// uninformative and leaves candidates untouched rather than narrowing on
// it.
type Extension struct{}

// Name implements detect.Strategy.
func (Extension) Name() string { return "extension" }

// Apply implements detect.Strategy.
func (Extension) Apply(b *blob.Derived, candidates []*language.Language, reg *language.Registry) detect.Result {
	if patterns.IsGenericExtension(b.Extension()) {
		return detect.Abstain()
	}

	langs := reg.FindByExtensionChain(b.Name())
	if len(langs) == 0 {
		return detect.Abstain()
	}

	if len(candidates) > 0 {
		langs = intersect(langs, candidates)
		if len(langs) == 0 {
			return detect.Abstain()
		}
	}

	if len(langs) == 1 {
		return detect.Verdict(langs[0])
	}

	return detect.Narrow(langs)
}

func intersect(a, b []*language.Language) []*language.Language {
	set := make(map[*language.Language]bool, len(b))
	for _, l := range b {
		set[l] = true
	}

	var out []*language.Language

	for _, l := range a {
		if set[l] {
			out = append(out, l)
		}
	}

	return out
}
