package strategies

import (
	"strings"

	"github.com/codefang-tech/lingua/pkg/blob"
	"github.com/codefang-tech/lingua/pkg/detect"
	"github.com/codefang-tech/lingua/pkg/language"
)

const xmlPrologNeedle = "<?xml version="

// XML independently discovers XML content when no earlier strategy has
// formed an opinion: it scans the first two lines for an XML declaration
// prolog and, if found, hands the pipeline a single-element candidate set
// naming the generic "XML" language. Once any earlier strategy has
// narrowed candidates, XML defers entirely and passes them through
// unchanged — it never second-guesses an existing candidate set.
type XML struct{}

// Name implements detect.Strategy.
func (XML) Name() string { return "xml" }

// Apply implements detect.Strategy.
func (XML) Apply(b *blob.Derived, candidates []*language.Language, reg *language.Registry) detect.Result {
	if len(candidates) > 0 {
		return detect.Abstain()
	}

	for _, line := range b.FirstLines(2) {
		if strings.Contains(line, xmlPrologNeedle) {
			if xmlLang, ok := reg.FindByName("XML"); ok {
				return detect.Narrow([]*language.Language{xmlLang})
			}

			return detect.Abstain()
		}
	}

	return detect.Abstain()
}

func contains(langs []*language.Language, l *language.Language) bool {
	for _, c := range langs {
		if c == l {
			return true
		}
	}

	return false
}
