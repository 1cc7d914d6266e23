package strategies

import (
	"github.com/codefang-tech/lingua/pkg/blob"
	"github.com/codefang-tech/lingua/pkg/detect"
	"github.com/codefang-tech/lingua/pkg/language"
)

// Filename resolves the language from an exact, case-sensitive basename
// match (e.g. "Makefile", "Dockerfile", "Rakefile"), independent of any
// extension the name might also carry.
type Filename struct{}

// Name implements detect.Strategy.
func (Filename) Name() string { return "filename" }

// Apply implements detect.Strategy.
func (Filename) Apply(b *blob.Derived, candidates []*language.Language, reg *language.Registry) detect.Result {
	langs := reg.FindByFilename(b.Name())

	switch len(langs) {
	case 0:
		return detect.Abstain()
	case 1:
		return detect.Verdict(langs[0])
	default:
		return detect.Narrow(langs)
	}
}
