package detect

import (
	"github.com/codefang-tech/lingua/pkg/blob"
	"github.com/codefang-tech/lingua/pkg/language"
)

// Strategy is a single stage of the detection pipeline. It inspects the
// blob and the current candidate set and returns a Result describing how
// the candidate set should change.
//
// candidates is nil on the first invocation and on every subsequent
// invocation until some strategy narrows it. Strategies must not retain or
// mutate the candidates slice they're given.
type Strategy interface {
	// Name identifies the strategy for diagnostics and tests that assert on
	// pipeline order.
	Name() string
	Apply(b *blob.Derived, candidates []*language.Language, reg *language.Registry) Result
}

// Pipeline runs a fixed, ordered sequence of strategies against a blob
// until a verdict emerges or the strategies are exhausted.
type Pipeline struct {
	Registry   *language.Registry
	Strategies []Strategy
}

// New builds a Pipeline over the given registry and explicit strategy
// order. Callers that want the standard strategy order should use
// strategies.NewPipeline instead of constructing the list by hand.
func New(reg *language.Registry, stages []Strategy) *Pipeline {
	return &Pipeline{
		Registry:   reg,
		Strategies: stages,
	}
}

// Detect runs the pipeline against b and returns the detected language, or
// ok=false if detection is inconclusive. Binary blobs, and empty blobs
// unless allowEmpty is set, are never detected and short-circuit before any
// strategy runs.
func (p *Pipeline) Detect(b blob.Blob, allowEmpty bool) (*language.Language, bool) {
	d := blob.New(b)

	if d.LikelyBinary() || d.IsBinary() {
		return nil, false
	}

	if d.IsEmpty() && !allowEmpty {
		return nil, false
	}

	var candidates []*language.Language

	for _, s := range p.Strategies {
		res := s.Apply(d, candidates, p.Registry)

		switch res.Kind {
		case KindVerdict:
			return res.Language, true
		case KindNarrow:
			if len(res.Languages) == 1 {
				return res.Languages[0], true
			}

			candidates = res.Languages
		case KindAbstain:
			// candidates unchanged
		}
	}

	if len(candidates) == 1 {
		return candidates[0], true
	}

	return nil, false
}

// Candidates runs the pipeline against b up to and including the named
// strategy (by Strategy.Name) and returns the candidate set at that point,
// without applying the termination rule. It exists for tests and
// diagnostics that need to observe intermediate pipeline state; ordinary
// callers should use Detect.
func (p *Pipeline) Candidates(b blob.Blob, upTo string) []*language.Language {
	d := blob.New(b)

	var candidates []*language.Language

	for _, s := range p.Strategies {
		res := s.Apply(d, candidates, p.Registry)

		switch res.Kind {
		case KindVerdict:
			candidates = []*language.Language{res.Language}
		case KindNarrow:
			candidates = res.Languages
		case KindAbstain:
		}

		if s.Name() == upTo {
			break
		}
	}

	return candidates
}
