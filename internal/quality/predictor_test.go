package quality

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	binaryVectorizer = `{"vocabulary": {"python": 0, "aws": 1, "typo": 2}, "idf": [1.0, 1.5, 2.0]}`
	binaryClassifier = `{"classes": ["weak", "strong"], "coef": [[1.0, 1.0, -3.0]], "intercept": [-0.5]}`

	multiVectorizer = `{"vocabulary": {"html": 0, "sql": 1}, "idf": [1, 1], "clean_text": true}`
	multiClassifier = `{"classes": ["frontend", "backend", "other"], "coef": [[1, 0], [0, 1], [0, 0]], "intercept": [0, 0, 0.1]}`
)

func writeArtifacts(t *testing.T, vectorizer, classifier string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	vecPath := filepath.Join(dir, "vectorizer.json")
	clfPath := filepath.Join(dir, "classifier.json")
	require.NoError(t, os.WriteFile(vecPath, []byte(vectorizer), 0o644))
	require.NoError(t, os.WriteFile(clfPath, []byte(classifier), 0o644))
	return vecPath, clfPath
}

func TestLoadMissingArtifacts(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	vecPath, _ := writeArtifacts(t, binaryVectorizer, binaryClassifier)

	p, err := Load(vecPath, filepath.Join(t.TempDir(), "missing.json"), zap.New(core))
	require.NoError(t, err)
	assert.False(t, p.Available())
	assert.Equal(t, Prediction{Label: Unavailable}, p.Predict("Python and AWS"))

	entries := observed.FilterMessage("quality model not available").All()
	require.Len(t, entries, 1)

	p, err = Load("", "", nil)
	require.NoError(t, err)
	assert.False(t, p.Available())
}

func TestNilPredictor(t *testing.T) {
	var p *Predictor
	assert.Equal(t, Prediction{Label: Unavailable, Available: false}, p.Predict("anything"))
}

func TestPredictBinary(t *testing.T) {
	vecPath, clfPath := writeArtifacts(t, binaryVectorizer, binaryClassifier)

	p, err := Load(vecPath, clfPath, nil)
	require.NoError(t, err)
	require.True(t, p.Available())

	tests := []struct {
		name   string
		text   string
		expect string
	}{
		{name: "positive score", text: "Python developer with AWS", expect: "strong"},
		{name: "negative score", text: "python typo typo", expect: "weak"},
		{name: "no known tokens", text: "", expect: "weak"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Prediction{Label: tt.expect, Available: true}, p.Predict(tt.text))
		})
	}
}

func TestPredictMultiClass(t *testing.T) {
	vecPath, clfPath := writeArtifacts(t, multiVectorizer, multiClassifier)

	p, err := Load(vecPath, clfPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "frontend", p.Predict("HTML!").Label)
	assert.Equal(t, "backend", p.Predict("SQL, SQL and HTML").Label)
	assert.Equal(t, "other", p.Predict("nothing relevant").Label)
}

func TestPredictMultiClassTieTakesFirst(t *testing.T) {
	p, err := New(map[string]int{"go": 0}, []float64{1}, false,
		[]string{"a", "b", "c"}, [][]float64{{1}, {1}, {0}}, []float64{0, 0, 0})
	require.NoError(t, err)

	assert.Equal(t, "a", p.Predict("go").Label)
}

func TestLoadMalformedArtifacts(t *testing.T) {
	tests := []struct {
		name       string
		vectorizer string
		classifier string
		contains   string
		schema     bool
	}{
		{
			name:       "not json",
			vectorizer: "{",
			classifier: binaryClassifier,
			contains:   "vectorizer",
		},
		{
			name:       "vectorizer missing idf",
			vectorizer: `{"vocabulary": {"python": 0}}`,
			classifier: binaryClassifier,
			contains:   "idf",
			schema:     true,
		},
		{
			name:       "classifier with one class",
			vectorizer: binaryVectorizer,
			classifier: `{"classes": ["only"], "coef": [[1, 1, 1]], "intercept": [0]}`,
			contains:   "classes",
			schema:     true,
		},
		{
			name:       "coefficient width mismatch",
			vectorizer: binaryVectorizer,
			classifier: `{"classes": ["weak", "strong"], "coef": [[1, 1]], "intercept": [0]}`,
			contains:   "vectorizer has 3 features",
		},
		{
			name:       "rows do not match classes",
			vectorizer: binaryVectorizer,
			classifier: `{"classes": ["a", "b", "c"], "coef": [[1, 1, 1], [1, 1, 1]], "intercept": [0, 0]}`,
			contains:   "2 coefficient rows for 3 classes",
		},
		{
			name:       "intercept mismatch",
			vectorizer: binaryVectorizer,
			classifier: `{"classes": ["weak", "strong"], "coef": [[1, 1, 1]], "intercept": [0, 1]}`,
			contains:   "intercepts",
		},
		{
			name:       "vocabulary index out of range",
			vectorizer: `{"vocabulary": {"python": 5}, "idf": [1]}`,
			classifier: `{"classes": ["weak", "strong"], "coef": [[1]], "intercept": [0]}`,
			contains:   "out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vecPath, clfPath := writeArtifacts(t, tt.vectorizer, tt.classifier)

			p, err := Load(vecPath, clfPath, nil)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Contains(t, err.Error(), tt.contains)

			var verr *ValidationError
			assert.Equal(t, tt.schema, errors.As(err, &verr))
		})
	}
}
