package strategies

import (
	"regexp"
	"strings"

	"github.com/codefang-tech/lingua/pkg/blob"
	"github.com/codefang-tech/lingua/pkg/detect"
	"github.com/codefang-tech/lingua/pkg/language"
)

// modelineScanLines is how many lines from the start and end of a file are
// scanned for editor modelines, matching the convention vim and emacs
// themselves use.
const modelineScanLines = 5

var (
	// emacsLongModelineRegexp matches "-*- ... mode: NAME ... -*-", the form
	// that carries other emacs local variables alongside the mode.
	emacsLongModelineRegexp = regexp.MustCompile(`(?i)-\*-\s*.*?\bmode\s*:\s*([^;]+?)\s*(?:;.*)?-\*-`)
	// emacsShortModelineRegexp matches the bare "-*- NAME -*-" form.
	emacsShortModelineRegexp = regexp.MustCompile(`(?i)-\*-\s*([\w+#-]+)\s*-\*-`)
	// vimModelineRegexp matches a vim/vi/ex modeline header; NAME comes from
	// whichever of ft=/filetype=/syntax= appears in the option list.
	vimModelineRegexp = regexp.MustCompile(`(?i)(?:^|\s)(?:vi|vim\d*|ex):.*?\b(?:ft|filetype|syntax)=([^\s:]+)`)
	// vimballMarker disqualifies a header entirely: Vimball archives embed a
	// modeline-shaped line that doesn't name the archive's own language.
	vimballMarker = regexp.MustCompile(`UseVimball`)
)

// Modeline resolves the language from an editor modeline (a vim or emacs
// directive embedded as a comment, conventionally on the first or last few
// lines of the file). NAME is looked up directly against the registry
// (name, then alias) rather than through a fixed translation table, so any
// catalogued language can be named by a modeline.
type Modeline struct{}

// Name implements detect.Strategy.
func (Modeline) Name() string { return "modeline" }

// Apply implements detect.Strategy.
func (Modeline) Apply(b *blob.Derived, candidates []*language.Language, reg *language.Registry) detect.Result {
	if b.IsSymlink() {
		return detect.Abstain()
	}

	lines := b.Lines()
	if len(lines) == 0 {
		return detect.Abstain()
	}

	scan := make([]string, 0, modelineScanLines*2)
	scan = append(scan, b.FirstLines(modelineScanLines)...)
	scan = append(scan, b.LastLines(modelineScanLines)...)

	for _, line := range scan {
		if vimballMarker.MatchString(line) {
			return detect.Abstain()
		}
	}

	for _, line := range scan {
		if name, ok := matchModeline(line); ok {
			if l, found := reg.Lookup(name); found {
				return detect.Verdict(l)
			}
		}
	}

	return detect.Abstain()
}

func matchModeline(line string) (string, bool) {
	if m := emacsLongModelineRegexp.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	if m := emacsShortModelineRegexp.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	if m := vimModelineRegexp.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1]), true
	}

	return "", false
}
