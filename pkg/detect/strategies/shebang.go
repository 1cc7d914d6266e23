package strategies

import (
	"path"
	"regexp"
	"strings"

	"github.com/codefang-tech/lingua/pkg/blob"
	"github.com/codefang-tech/lingua/pkg/detect"
	"github.com/codefang-tech/lingua/pkg/language"
)

var shebangRegexp = regexp.MustCompile(`^#!\s*(\S.*)$`)

// execHackRegexp matches the "sh re-execs itself into the real
// interpreter" polyglot idiom, e.g. `exec scala "$0" "$@"`, used by scripts
// whose shebang line can only invoke /bin/sh but whose actual language is
// something else entirely.
var execHackRegexp = regexp.MustCompile(`(?m)^\s*exec\s+(\S+)`)

// execHackScanLines bounds how far into the file the sh-exec idiom is
// searched for, matching the convention of checking just the preamble.
const execHackScanLines = 5

// Shebang resolves the language from the interpreter named on a script's
// first line (e.g. "#!/usr/bin/env python3").
type Shebang struct{}

// Name implements detect.Strategy.
func (Shebang) Name() string { return "shebang" }

// Apply implements detect.Strategy.
func (Shebang) Apply(b *blob.Derived, candidates []*language.Language, reg *language.Registry) detect.Result {
	interp, ok := interpreter(b)
	if !ok {
		return detect.Abstain()
	}

	langs := reg.FindByInterpreter(interp)

	switch len(langs) {
	case 0:
		return detect.Abstain()
	case 1:
		return detect.Verdict(langs[0])
	default:
		return detect.Narrow(langs)
	}
}

// interpreter extracts the effective interpreter name from a blob's first
// line, resolving the "env" indirection, the sh-exec polyglot idiom, and
// numeric version suffixes. ok is false when the blob has no shebang or the
// interpreter is inherently ambiguous (e.g. "osascript -l").
func interpreter(b *blob.Derived) (string, bool) {
	lines := b.FirstLines(1)
	if len(lines) == 0 {
		return "", false
	}

	m := shebangRegexp.FindStringSubmatch(lines[0])
	if m == nil {
		return "", false
	}

	fields := strings.Fields(m[1])
	if len(fields) == 0 {
		return "", false
	}

	name := path.Base(fields[0])
	args := fields[1:]

	if name == "env" {
		resolved, resolvedArgs, ok := resolveEnv(args)
		if !ok {
			return "", false
		}

		name = resolved
		args = resolvedArgs
	}

	if name == "osascript" {
		for _, a := range args {
			if a == "-l" {
				return "", false
			}
		}
	}

	if name == "sh" {
		if real, ok := execHackInterpreter(b); ok {
			return real, true
		}
	}

	return stripVersionSuffix(name), true
}

// resolveEnv walks the arguments following "env" in a shebang, skipping
// flags (e.g. "-S", "-i") and "NAME=value" environment assignments, and
// returns the first remaining token as the real interpreter name.
func resolveEnv(args []string) (string, []string, bool) {
	for i, a := range args {
		if strings.HasPrefix(a, "-") {
			continue
		}

		if strings.Contains(a, "=") && !strings.HasPrefix(a, "/") {
			continue
		}

		return path.Base(a), args[i+1:], true
	}

	return "", nil, false
}

// execHackInterpreter scans the first few lines of a "#!/bin/sh" script for
// the re-exec idiom and returns the interpreter it execs into.
func execHackInterpreter(b *blob.Derived) (string, bool) {
	lines := b.FirstLines(execHackScanLines)

	for _, line := range lines {
		if m := execHackRegexp.FindStringSubmatch(line); m != nil {
			return stripVersionSuffix(path.Base(m[1])), true
		}
	}

	return "", false
}

// stripVersionSuffix strips a dotted numeric version tail from an
// interpreter name (e.g. "perl5.8.0" -> "perl5"), while leaving a bare
// trailing digit alone (e.g. "python3" stays "python3", since that is
// itself a distinct, registered interpreter name).
func stripVersionSuffix(name string) string {
	idx := strings.IndexByte(name, '.')
	if idx == -1 {
		return name
	}

	rest := name[idx+1:]
	if rest == "" {
		return name[:idx]
	}

	for _, r := range rest {
		if (r < '0' || r > '9') && r != '.' {
			return name
		}
	}

	return name[:idx]
}
