// Package textutil holds the byte-level text helpers shared by the blob
// view and the git layer: binary sniffing, line splitting, and byte-slice
// reader adapters.
package textutil

import (
	"bytes"
	"io"
	"strings"
)

// BinarySniffLength bounds the window scanned for null bytes when deciding
// whether content is binary. Matches the window git itself uses.
const BinarySniffLength = 8000

// IsBinary reports whether data contains a null byte within the first
// BinarySniffLength bytes. Empty content is not binary.
func IsBinary(data []byte) bool {
	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// SplitLines splits data into lines, treating LF, CRLF, and lone CR as
// terminators. Terminators are not included in the result, and a final
// terminator does not produce a trailing empty line. Empty input yields
// nil.
func SplitLines(data []byte) []string {
	normalized := bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	normalized = bytes.ReplaceAll(normalized, []byte("\r"), []byte("\n"))

	if len(normalized) == 0 {
		return nil
	}

	if normalized[len(normalized)-1] == '\n' {
		normalized = normalized[:len(normalized)-1]
	}

	return strings.Split(string(normalized), "\n")
}

// BytesReader wraps a byte slice as an io.ReadCloser with a no-op Close.
func BytesReader(data []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(data))
}
