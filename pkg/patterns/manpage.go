package patterns

import (
	"path"
	"regexp"
)

// manpageExtRegexp matches the numbered section extensions conventionally
// used for troff/groff manual pages (e.g. "tool.1", "ls.1in", "passwd.5"),
// plus the "0p", "n", "man", and "mdoc" section aliases, optionally
// followed by ".in" (the uninstalled-manpage convention). The section
// digit must not be followed by another digit, ruling out version-like
// suffixes such as ".10"; RE2 has no lookahead, so that's expressed as
// "a letter/underscore must come between the digit and any further
// alphanumerics" rather than a negative lookahead.
var manpageExtRegexp = regexp.MustCompile(`\.([1-9]([a-z_][a-z0-9_]*)?|0p|n|man|mdoc)(\.in)?$`)

// IsManpage reports whether filename's extension matches the manual page
// section-number convention.
func IsManpage(filename string) bool {
	return manpageExtRegexp.MatchString(path.Base(filename))
}

// genericExtensions is the fixed set of extensions the Extension strategy
// treats as uninformative: they're shared by enough unrelated file kinds
// that matching the registry's extension index on them would be a
// coin-flip, so the strategy abstains and leaves candidate narrowing to a
// stronger signal instead.
var genericExtensions = map[string]bool{
	".1": true, ".2": true, ".3": true, ".4": true, ".5": true,
	".6": true, ".7": true, ".8": true, ".9": true,
	".app":      true,
	".cmp":      true,
	".msg":      true,
	".resource": true,
	".sol":      true,
	".stl":      true,
	".tag":      true,
	".url":      true,
}

// IsGenericExtension reports whether ext (a lowercase, dot-prefixed
// extension) is on the fixed generic-extension list that carries no
// language signal on its own.
func IsGenericExtension(ext string) bool {
	return genericExtensions[ext]
}

// manpageContentRegexp matches, at the start of any line, the troff request
// that distinguishes an authored manual page (".TH", ".Dd", ".SH", a
// comment line starting with `.\"`) from plain roff source.
var manpageContentRegexp = regexp.MustCompile(`(?m)^\.(TH|Dd|SH|\\")`)

// LooksLikeManpageContent reports whether any line of data starts with a
// troff request conventionally used to author a manual page, as opposed to
// generic roff markup.
func LooksLikeManpageContent(data []byte) bool {
	return manpageContentRegexp.Match(data)
}
