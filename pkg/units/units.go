// Package units defines the binary (1024-based) size multipliers used to
// express byte budgets, such as the blob cache ceiling and content sniff
// windows.
package units

// Binary size multipliers.
const (
	KiB int64 = 1024
	MiB       = 1024 * KiB
	GiB       = 1024 * MiB
)
