package classifier

import (
	"embed"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"sync"
)

//go:embed data/model.json
var modelFS embed.FS

// Model is a trained TF-ICF centroid classifier: one L2-normalized token
// weight vector per language, stored sparsely as token -> weight.
type Model struct {
	Centroids map[string]map[string]float64 `json:"languages"`
}

// LoadModel parses a model from its embedded JSON representation and scales
// each centroid to unit L2 length.
func LoadModel(data []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("classifier: parse model: %w", err)
	}

	for _, centroid := range m.Centroids {
		var norm float64
		for _, w := range centroid {
			norm += w * w
		}

		norm = math.Sqrt(norm)
		if norm == 0 {
			continue
		}

		for tok, w := range centroid {
			centroid[tok] = w / norm
		}
	}

	return &m, nil
}

// Classify scores tokens against every language centroid in the model and
// returns the name of the best match. It restricts scoring to
// candidateNames when non-empty. ok is false when there are fewer than
// MinTokens tokens, or when no candidate centroid shares any vocabulary
// with the document.
func (m *Model) Classify(tokens []string, candidateNames []string) (string, bool) {
	if len(tokens) < MinTokens {
		return "", false
	}

	tf := TermFrequencies(tokens)

	var docNorm float64

	logTF := make(map[string]float64, len(tf))

	for tok, f := range tf {
		w := 1 + math.Log(float64(f))
		logTF[tok] = w
		docNorm += w * w
	}

	docNorm = math.Sqrt(docNorm)
	if docNorm == 0 {
		return "", false
	}

	var allow map[string]bool
	if len(candidateNames) > 0 {
		allow = make(map[string]bool, len(candidateNames))
		for _, n := range candidateNames {
			allow[n] = true
		}
	}

	best := ""
	bestScore := 0.0
	found := false

	// Sorted iteration keeps the argmax deterministic when two centroids
	// score identically.
	names := make([]string, 0, len(m.Centroids))
	for lang := range m.Centroids {
		names = append(names, lang)
	}

	sort.Strings(names)

	for _, lang := range names {
		if allow != nil && !allow[lang] {
			continue
		}

		centroid := m.Centroids[lang]

		var dot float64

		for tok, w := range logTF {
			if cw, ok := centroid[tok]; ok {
				dot += w * cw
			}
		}

		if dot <= 0 {
			continue
		}

		score := dot / docNorm
		if !found || score > bestScore {
			bestScore = score
			best = lang
			found = true
		}
	}

	return best, found
}

var (
	defaultOnce  sync.Once
	defaultModel *Model
	defaultErr   error
)

// Default returns the process-wide Model built from the embedded training
// data.
func Default() (*Model, error) {
	defaultOnce.Do(func() {
		data, err := modelFS.ReadFile("data/model.json")
		if err != nil {
			defaultErr = fmt.Errorf("classifier: read embedded model: %w", err)
			return
		}

		defaultModel, defaultErr = LoadModel(data)
	})

	return defaultModel, defaultErr
}
