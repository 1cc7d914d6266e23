// Package language provides the catalogue of known source languages and the
// indices used to look them up by name, alias, extension, filename,
// interpreter, or numeric id.
package language

// Type classifies a Language by how it should be treated for statistics and
// tooling purposes.
type Type int

// Recognized language types, mirroring the classification used by the
// catalogue's upstream data source.
const (
	TypeProgramming Type = iota
	TypeMarkup
	TypeData
	TypeProse
	TypeOther
)

// String returns the lowercase name used in the embedded catalogue YAML.
func (t Type) String() string {
	switch t {
	case TypeProgramming:
		return "programming"
	case TypeMarkup:
		return "markup"
	case TypeData:
		return "data"
	case TypeProse:
		return "prose"
	case TypeOther:
		return "other"
	default:
		return "other"
	}
}

// ParseType maps a catalogue YAML type string to a Type, defaulting to
// TypeOther for unrecognized values.
func ParseType(s string) Type {
	switch s {
	case "programming":
		return TypeProgramming
	case "markup":
		return TypeMarkup
	case "data":
		return TypeData
	case "prose":
		return TypeProse
	default:
		return TypeOther
	}
}

// Language is a single entry in the catalogue: a recognized source language
// or data/markup format, along with the metadata needed to identify it and
// to decorate tooling output.
type Language struct {
	// Name is the canonical, display name of the language. Unique within a
	// registry, compared case-insensitively.
	Name string
	// Type classifies the language for statistics purposes.
	Type Type
	// Aliases are alternate case-insensitive names that resolve to this
	// language (e.g. "golang" for "Go").
	Aliases []string
	// Extensions are lowercase, dot-prefixed filename suffixes associated
	// with this language, ordered from most to least specific
	// (e.g. ".tar.gz" before ".gz").
	Extensions []string
	// Filenames are exact, case-sensitive basenames recognized regardless
	// of extension (e.g. "Makefile", "Dockerfile").
	Filenames []string
	// Interpreters are shebang interpreter names associated with this
	// language (e.g. "python3" for "Python").
	Interpreters []string
	// ID is a stable numeric identifier for this language.
	ID int
	// GroupName, if non-empty, names the language this one rolls up to for
	// aggregate statistics (e.g. "TSX" rolls up to "TypeScript").
	GroupName string
	// Popular marks languages flagged popular in the catalogue; it drives
	// Registry.Popular and Registry.Unpopular and plays no part in detection.
	Popular bool
	// Color is the decoration color associated with the language.
	Color string
	// TMScope is the TextMate grammar scope used by editors for syntax
	// highlighting.
	TMScope string
	// Wrap indicates whether prose of this language type should be
	// line-wrapped for display.
	Wrap bool
}

// IsPopular reports whether the language is flagged popular in the
// catalogue.
func (l *Language) IsPopular() bool {
	return l.Popular
}
