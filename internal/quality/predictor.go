// Package quality labels resumes with a pre-trained linear model loaded from
// JSON artifacts.
package quality

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/spigell/resume-analyzer/internal/textclean"
	"github.com/spigell/resume-analyzer/internal/tfidf"
)

// Unavailable is the label reported when no model is loaded.
const Unavailable = "Model not available"

// Prediction is the outcome of a quality prediction.
type Prediction struct {
	Label     string `json:"label" yaml:"label"`
	Available bool   `json:"available" yaml:"available"`
}

type vectorizerArtifact struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	CleanText  bool           `json:"clean_text"`
}

type classifierArtifact struct {
	Classes   []string    `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

// Predictor applies a vectorizer and linear classifier to resume text. The
// zero value and a nil *Predictor are unavailable predictors.
type Predictor struct {
	vectorizer *tfidf.Vectorizer
	cleanText  bool
	classifier *classifierArtifact
}

// Load reads both artifacts. When either file is missing the predictor is
// returned unavailable with a warning; malformed artifacts are an error.
func Load(vectorizerPath, classifierPath string, logger *zap.Logger) (*Predictor, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, path := range []string{vectorizerPath, classifierPath} {
		if missing(path) {
			logger.Warn("quality model not available",
				zap.String("vectorizer", vectorizerPath),
				zap.String("classifier", classifierPath),
				zap.String("missing", path),
			)
			return &Predictor{}, nil
		}
	}

	var vec vectorizerArtifact
	if err := readArtifact("vectorizer", vectorizerPath, vectorizerSchema, &vec); err != nil {
		return nil, err
	}
	var clf classifierArtifact
	if err := readArtifact("classifier", classifierPath, classifierSchema, &clf); err != nil {
		return nil, err
	}

	p, err := New(vec.Vocabulary, vec.IDF, vec.CleanText, clf.Classes, clf.Coef, clf.Intercept)
	if err != nil {
		return nil, err
	}

	logger.Info("quality model loaded",
		zap.Int("features", p.vectorizer.Len()),
		zap.Strings("classes", clf.Classes),
	)

	return p, nil
}

// New builds an available predictor from in-memory weights.
func New(vocabulary map[string]int, idf []float64, cleanText bool, classes []string, coef [][]float64, intercept []float64) (*Predictor, error) {
	vectorizer, err := tfidf.FromWeights(vocabulary, idf)
	if err != nil {
		return nil, fmt.Errorf("vectorizer: %w", err)
	}

	clf := &classifierArtifact{Classes: classes, Coef: coef, Intercept: intercept}
	if err := clf.check(vectorizer.Len()); err != nil {
		return nil, fmt.Errorf("classifier: %w", err)
	}

	return &Predictor{vectorizer: vectorizer, cleanText: cleanText, classifier: clf}, nil
}

// Available reports whether a model is loaded.
func (p *Predictor) Available() bool {
	return p != nil && p.vectorizer != nil && p.classifier != nil
}

// Predict labels text. Without a model the label is Unavailable.
func (p *Predictor) Predict(text string) Prediction {
	if !p.Available() {
		return Prediction{Label: Unavailable}
	}

	if p.cleanText {
		text = textclean.Clean(text)
	}
	x := p.vectorizer.Transform(text)

	return Prediction{Label: p.classifier.decide(x), Available: true}
}

func (c *classifierArtifact) check(features int) error {
	if len(c.Classes) < 2 {
		return errors.New("at least two classes are required")
	}
	if len(c.Coef) != len(c.Intercept) {
		return fmt.Errorf("%d coefficient rows but %d intercepts", len(c.Coef), len(c.Intercept))
	}

	binary := len(c.Classes) == 2 && len(c.Coef) == 1
	if !binary && len(c.Coef) != len(c.Classes) {
		return fmt.Errorf("%d coefficient rows for %d classes", len(c.Coef), len(c.Classes))
	}

	for i, row := range c.Coef {
		if len(row) != features {
			return fmt.Errorf("coefficient row %d has %d weights, vectorizer has %d features", i, len(row), features)
		}
	}

	return nil
}

// decide applies the linear decision function. A single row is a binary
// model where a positive score selects the second class; otherwise the
// highest scoring row wins and the first one wins ties.
func (c *classifierArtifact) decide(x []float64) string {
	if len(c.Coef) == 1 {
		if floats.Dot(c.Coef[0], x)+c.Intercept[0] > 0 {
			return c.Classes[1]
		}
		return c.Classes[0]
	}

	best := 0
	bestScore := floats.Dot(c.Coef[0], x) + c.Intercept[0]
	for i := 1; i < len(c.Coef); i++ {
		if score := floats.Dot(c.Coef[i], x) + c.Intercept[i]; score > bestScore {
			best, bestScore = i, score
		}
	}
	return c.Classes[best]
}

func missing(path string) bool {
	path = strings.TrimSpace(path)
	if path == "" {
		return true
	}
	info, err := os.Stat(path)
	return err != nil || info.IsDir()
}

func readArtifact(name, path string, schema []byte, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s artifact %q: %w", name, path, err)
	}
	if err := validate(name, schema, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s artifact %q: %w", name, path, err)
	}
	return nil
}
