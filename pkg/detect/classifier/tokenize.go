// Package classifier implements the statistical fallback used when no
// structural strategy (modeline, filename, shebang, extension, heuristics)
// can identify a blob's language: a naive-Bayes-flavored TF-ICF (term
// frequency, inverse class frequency) cosine similarity classifier trained
// offline and shipped as a small embedded model.
package classifier

import (
	"strings"
	"unicode"
)

// MinTokens is the minimum number of tokens a document must produce before
// the classifier will venture a guess; below this the signal is too sparse
// to trust.
const MinTokens = 10

// stopwords are common tokens with negligible discriminative value across
// languages; they are dropped before scoring.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "that": true, "this": true,
	"with": true, "from": true, "are": true, "was": true, "were": true,
	"have": true, "has": true, "not": true, "but": true, "you": true,
}

// Tokenize splits data into lowercase alphanumeric tokens, dropping
// single-character tokens and common stopwords. It mirrors the
// tokenization used to build the shipped model, so scoring stays
// consistent between training and inference.
func Tokenize(data []byte) []string {
	text := string(data)

	var tokens []string

	var b strings.Builder

	flush := func() {
		if b.Len() == 0 {
			return
		}

		tok := strings.ToLower(b.String())
		b.Reset()

		if len(tok) <= 1 {
			return
		}

		if stopwords[tok] {
			return
		}

		tokens = append(tokens, tok)
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}

	flush()

	return tokens
}

// TermFrequencies counts raw occurrences of each token.
func TermFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, t := range tokens {
		tf[t]++
	}

	return tf
}
