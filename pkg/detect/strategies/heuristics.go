package strategies

import (
	"bytes"
	"regexp"

	"github.com/codefang-tech/lingua/pkg/blob"
	"github.com/codefang-tech/lingua/pkg/detect"
	"github.com/codefang-tech/lingua/pkg/language"
	"github.com/codefang-tech/lingua/pkg/patterns"
)

// heuristicsSampleBytes bounds how much content the disambiguation rules
// see; anything a rule needs should appear well within the first 50 KiB.
const heuristicsSampleBytes = 50 * 1024

// firstBytes returns the rule-matching sample of b's content: the leading
// window with any UTF-8 byte-order mark stripped, so anchored patterns
// still match at offset zero.
func firstBytes(b *blob.Derived) ([]byte, error) {
	data, err := b.Blob.Data()
	if err != nil {
		return nil, err
	}

	if len(data) > heuristicsSampleBytes {
		data = data[:heuristicsSampleBytes]
	}

	return bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}), nil
}

// rule is a content predicate used to disambiguate between languages that
// share an extension.
type rule interface {
	matches(data []byte) bool
}

type patternRule struct{ re *regexp.Regexp }

func (r patternRule) matches(data []byte) bool { return r.re.Match(data) }

type negativePatternRule struct{ re *regexp.Regexp }

func (r negativePatternRule) matches(data []byte) bool { return !r.re.Match(data) }

type andRule []rule

func (r andRule) matches(data []byte) bool {
	for _, sub := range r {
		if !sub.matches(data) {
			return false
		}
	}

	return true
}

type alwaysRule struct{}

func (alwaysRule) matches([]byte) bool { return true }

// disambiguationCase pairs a content rule with the language it identifies.
// Rules for a given extension are tried in order; the first match wins.
type disambiguationCase struct {
	rule rule
	lang string
}

// disambiguation maps the set of extensions it applies to onto an ordered
// list of rule/language cases.
type disambiguation struct {
	extensions []string
	cases      []disambiguationCase
}

var (
	objcInterfaceRegexp = regexp.MustCompile(`@(interface|implementation|protocol|property|synthesize|end)\b`)
	objcImportRegexp    = regexp.MustCompile(`(?m)^\s*#import\s+[<"]`)
	cppClassRegexp      = regexp.MustCompile(`(?m)^\s*(template\s*<|namespace\s+\w+|class\s+\w+|std::)`)
	cppIncludeRegexp    = regexp.MustCompile(`(?m)^\s*#\s*include <(cstdint|string|vector|map|list|array|bitset|queue|stack|forward_list|unordered_map|unordered_set|(i|o|io)stream)>`)
	jsxImportRegexp     = regexp.MustCompile(`(?m)^\s*import\s+React\b`)
	jsxReactRefRegexp   = regexp.MustCompile(`\bReact\.(Component|createElement|Fragment)\b`)
	jsxTagRegexp        = regexp.MustCompile(`(?m)^\s*(return\s*)?\(?\s*<[A-Za-z][\w.]*[\s/>]`)
)

var disambiguations = []disambiguation{
	{
		extensions: []string{".h"},
		cases: []disambiguationCase{
			{andRule{patternRule{objcInterfaceRegexp}}, "Objective-C"},
			{andRule{patternRule{objcImportRegexp}}, "Objective-C"},
			{andRule{patternRule{cppIncludeRegexp}}, "C++"},
			{andRule{patternRule{cppClassRegexp}}, "C++"},
			{alwaysRule{}, "C"},
		},
	},
	{
		extensions: []string{".js"},
		cases: []disambiguationCase{
			{patternRule{jsxImportRegexp}, "JSX"},
			{patternRule{jsxReactRefRegexp}, "JSX"},
			{patternRule{jsxTagRegexp}, "JSX"},
			{alwaysRule{}, "JavaScript"},
		},
	},
}

// Heuristics disambiguates between languages that share an extension, or
// were left ambiguous by an earlier strategy, using content-based rules.
type Heuristics struct{}

// Name implements detect.Strategy.
func (Heuristics) Name() string { return "heuristics" }

// Apply implements detect.Strategy.
func (Heuristics) Apply(b *blob.Derived, candidates []*language.Language, reg *language.Registry) detect.Result {
	if len(candidates) < 2 {
		return detect.Abstain()
	}

	if isManpagePair(candidates) {
		data, err := firstBytes(b)
		if err == nil {
			if patterns.LooksLikeManpageContent(data) {
				if l, ok := reg.FindByName("Roff Manpage"); ok {
					return detect.Verdict(l)
				}
			}

			if l, ok := reg.FindByName("Roff"); ok {
				return detect.Verdict(l)
			}
		}
	}

	ext := b.Extension()

	for _, d := range disambiguations {
		if !extensionIn(ext, d.extensions) {
			continue
		}

		data, err := firstBytes(b)
		if err != nil {
			return detect.Abstain()
		}

		for _, c := range d.cases {
			if !c.rule.matches(data) {
				continue
			}

			l, ok := reg.FindByName(c.lang)
			if !ok || !contains(candidates, l) {
				continue
			}

			return detect.Verdict(l)
		}
	}

	return detect.Abstain()
}

func isManpagePair(candidates []*language.Language) bool {
	if len(candidates) != 2 {
		return false
	}

	names := map[string]bool{candidates[0].Name: true, candidates[1].Name: true}

	return names["Roff Manpage"] && names["Roff"]
}

func extensionIn(ext string, list []string) bool {
	for _, e := range list {
		if e == ext {
			return true
		}
	}

	return false
}
