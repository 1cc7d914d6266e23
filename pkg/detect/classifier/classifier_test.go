package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefang-tech/lingua/pkg/detect/classifier"
)

func TestTokenizeDropsShortAndStopwords(t *testing.T) {
	toks := classifier.Tokenize([]byte("the a def self none elif"))
	assert.Equal(t, []string{"def", "self", "none", "elif"}, toks)
}

func TestDefaultModelLoads(t *testing.T) {
	m, err := classifier.Default()
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.NotEmpty(t, m.Centroids)
}

func TestClassifyAbstainsOnSparseInput(t *testing.T) {
	m, err := classifier.Default()
	require.NoError(t, err)

	_, ok := m.Classify(classifier.Tokenize([]byte("def self")), nil)
	assert.False(t, ok)
}

func TestClassifyPythonSample(t *testing.T) {
	m, err := classifier.Default()
	require.NoError(t, err)

	sample := []byte(`
def compute(self, value):
    if value is None:
        return None
    elif value > 0:
        return value
    else:
        raise ValueError(value)

class Widget:
    def __init__(self):
        self.value = None
`)

	name, ok := m.Classify(classifier.Tokenize(sample), nil)
	require.True(t, ok)
	assert.Equal(t, "Python", name)
}

func TestClassifyRestrictsToCandidates(t *testing.T) {
	m, err := classifier.Default()
	require.NoError(t, err)

	sample := []byte(`
func main() {
	defer fmt.Println("done")
	var ch chan int
	go worker(ch)
}
`)

	_, ok := m.Classify(classifier.Tokenize(sample), []string{"Ruby", "Perl"})
	assert.False(t, ok, "should not match languages outside the candidate set")
}
