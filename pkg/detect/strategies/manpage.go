package strategies

import (
	"github.com/codefang-tech/lingua/pkg/blob"
	"github.com/codefang-tech/lingua/pkg/detect"
	"github.com/codefang-tech/lingua/pkg/language"
	"github.com/codefang-tech/lingua/pkg/patterns"
)

// manpageOrder lists the languages a numbered-section extension (".1",
// ".3", ...) could plausibly name, most likely first.
var manpageOrder = []string{"Roff Manpage", "Roff"}

// Manpage recognizes the numbered-section extension convention used by
// troff/groff manual pages. It never acts on an already-narrowed candidate
// set — when candidates is non-empty it reports Abstain, a pure
// pass-through, so that an incidental single surviving candidate is never
// mistaken for a fresh verdict this strategy actually reached.
type Manpage struct{}

// Name implements detect.Strategy.
func (Manpage) Name() string { return "manpage" }

// Apply implements detect.Strategy.
func (Manpage) Apply(b *blob.Derived, candidates []*language.Language, reg *language.Registry) detect.Result {
	if len(candidates) > 0 {
		return detect.Abstain()
	}

	if !patterns.IsManpage(b.Name()) {
		return detect.Abstain()
	}

	var matched []*language.Language

	for _, name := range manpageOrder {
		if l, ok := reg.FindByName(name); ok {
			matched = append(matched, l)
		}
	}

	return detect.Narrow(matched)
}
