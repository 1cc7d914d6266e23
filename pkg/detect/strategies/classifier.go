package strategies

import (
	"github.com/codefang-tech/lingua/pkg/blob"
	"github.com/codefang-tech/lingua/pkg/detect"
	"github.com/codefang-tech/lingua/pkg/detect/classifier"
	"github.com/codefang-tech/lingua/pkg/language"
)

// Classifier is the statistical fallback strategy: it tokenizes the blob's
// content and scores it against a trained TF-ICF centroid model, the last
// resort when no structural strategy produced a verdict.
type Classifier struct {
	// Model overrides the embedded default model, primarily for tests.
	Model *classifier.Model
}

// Name implements detect.Strategy.
func (Classifier) Name() string { return "classifier" }

// Apply implements detect.Strategy.
func (c Classifier) Apply(b *blob.Derived, candidates []*language.Language, reg *language.Registry) detect.Result {
	m := c.Model
	if m == nil {
		var err error

		m, err = classifier.Default()
		if err != nil {
			return detect.Abstain()
		}
	}

	data, err := b.Blob.Data()
	if err != nil {
		return detect.Abstain()
	}

	sample := data

	const classifierSampleBytes = 50 * 1024
	if len(sample) > classifierSampleBytes {
		sample = sample[:classifierSampleBytes]
	}

	names := candidateNames(candidates)

	name, ok := m.Classify(classifier.Tokenize(sample), names)
	if !ok {
		return detect.Abstain()
	}

	l, ok := reg.FindByName(name)
	if !ok {
		return detect.Abstain()
	}

	if len(candidates) > 0 && !contains(candidates, l) {
		return detect.Abstain()
	}

	return detect.Verdict(l)
}

func candidateNames(candidates []*language.Language) []string {
	if len(candidates) == 0 {
		return nil
	}

	names := make([]string, len(candidates))
	for i, l := range candidates {
		names[i] = l.Name
	}

	return names
}
