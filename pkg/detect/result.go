// Package detect implements the multi-strategy language detection pipeline:
// a fixed sequence of strategies, each narrowing or confirming a candidate
// set of languages until either a single verdict emerges or the blob is
// reported as undetermined.
package detect

import "github.com/codefang-tech/lingua/pkg/language"

// Kind tags the three possible outcomes of applying a single strategy to a
// blob.
type Kind int

const (
	// KindAbstain means the strategy has no opinion; the incoming candidate
	// set is left unchanged. A strategy that merely passes its input
	// through unmodified (rather than independently deriving a set that
	// happens to equal its input) must report Abstain, not Narrow — this is
	// what keeps a pass-through from being misread as a fresh, terminating
	// narrowing.
	KindAbstain Kind = iota
	// KindNarrow means the strategy derived a new candidate set from the
	// blob, replacing whatever candidates were passed in. A Narrow result
	// containing exactly one language terminates the pipeline immediately.
	KindNarrow
	// KindVerdict means the strategy has conclusively identified the
	// language, independent of the incoming candidate set. It terminates
	// the pipeline immediately.
	KindVerdict
)

// Result is the outcome of applying a single Strategy to a blob and its
// current candidate set.
type Result struct {
	Kind      Kind
	Languages []*language.Language // populated for KindNarrow
	Language  *language.Language   // populated for KindVerdict
}

// Abstain constructs a Result that leaves the candidate set unchanged.
func Abstain() Result {
	return Result{Kind: KindAbstain}
}

// Narrow constructs a Result that replaces the candidate set. An empty
// slice is equivalent to Abstain, since a strategy that found nothing
// should not erase existing candidates.
func Narrow(langs []*language.Language) Result {
	if len(langs) == 0 {
		return Abstain()
	}

	return Result{Kind: KindNarrow, Languages: langs}
}

// Verdict constructs a Result that conclusively identifies lang.
func Verdict(lang *language.Language) Result {
	return Result{Kind: KindVerdict, Language: lang}
}
