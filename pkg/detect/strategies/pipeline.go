package strategies

import (
	"github.com/codefang-tech/lingua/pkg/detect"
	"github.com/codefang-tech/lingua/pkg/language"
)

// All returns the standard strategy order used by production pipelines:
// modeline, filename, shebang, extension, XML, manpage, heuristics,
// classifier. Each strategy only ever narrows or confirms what the ones
// before it left undecided.
func All() []detect.Strategy {
	return []detect.Strategy{
		Modeline{},
		Filename{},
		Shebang{},
		Extension{},
		XML{},
		Manpage{},
		Heuristics{},
		Classifier{},
	}
}

// NewPipeline builds the standard detection pipeline over reg.
func NewPipeline(reg *language.Registry) *detect.Pipeline {
	return detect.New(reg, All())
}
