package patterns

import (
	"bytes"
	"path"
	"regexp"
	"strings"
)

// generatedMarkers are content prefixes/substrings that conventionally mark
// a file as machine-generated. The check only scans the first portion of
// the file (the caller is expected to pass a bounded prefix).
var generatedMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^// Code generated .* DO NOT EDIT\.$`),
	regexp.MustCompile(`(?i)^# Code generated .* DO NOT EDIT\.$`),
	regexp.MustCompile(`(?i)This is a generated file`),
	regexp.MustCompile(`(?i)@generated`),
	regexp.MustCompile(`(?i)DO NOT EDIT`),
	regexp.MustCompile(`(?i)Autogenerated by`),
}

// minifiedExtensions are extensions whose files are considered generated
// when their content layout is consistent with a minifier's output.
var minifiedExtensions = map[string]bool{
	".min.js":  true,
	".min.css": true,
}

// generatedLiteralFilenames are filenames that are always machine-managed
// lockfiles or snapshots, regardless of content.
var generatedLiteralFilenames = map[string]bool{
	"package-lock.json": true,
	"yarn.lock":         true,
	"composer.lock":     true,
	"Cargo.lock":        true,
	"Gopkg.lock":        true,
	"go.sum":            true,
	"poetry.lock":       true,
}

// maxLineLengthForProse is the average line length past which a file with
// very few newlines is treated as minified rather than handwritten.
const maxLineLengthForProse = 200

// IsGenerated reports whether a blob is machine-generated, based on its
// path and a representative prefix of its content. data should be the start
// of the file (callers typically pass the same prefix used for encoding and
// binary sniffing); IsGenerated never needs the whole file.
func IsGenerated(name string, data []byte) bool {
	base := path.Base(name)

	if generatedLiteralFilenames[base] {
		return true
	}

	lower := strings.ToLower(base)
	for ext := range minifiedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}

	if isMinifiedLayout(name, data) {
		return true
	}

	return hasGeneratedMarker(data)
}

func isMinifiedLayout(name string, data []byte) bool {
	ext := strings.ToLower(path.Ext(name))
	if ext != ".js" && ext != ".css" {
		return false
	}

	if len(data) == 0 {
		return false
	}

	lines := bytes.Count(data, []byte("\n")) + 1
	avg := len(data) / lines

	return avg > maxLineLengthForProse
}

func hasGeneratedMarker(data []byte) bool {
	lines := bytes.SplitN(data, []byte("\n"), 20)

	for i, line := range lines {
		if i > 10 {
			break
		}

		trimmed := strings.TrimSpace(string(line))
		for _, marker := range generatedMarkers {
			if marker.MatchString(trimmed) {
				return true
			}
		}
	}

	return false
}
