// Package matching ranks catalog job listings against a resume by TF-IDF
// cosine similarity.
package matching

import (
	"sort"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/catalog"
	"github.com/spigell/resume-analyzer/internal/textclean"
	"github.com/spigell/resume-analyzer/internal/tfidf"
)

// DefaultTopN is used when a non-positive limit is requested.
const DefaultTopN = 3

// Result is a single ranked job listing.
type Result struct {
	Title string  `json:"title" yaml:"title"`
	Score float64 `json:"score" yaml:"score"`
}

// Matcher scores resumes against a fixed set of job listings.
type Matcher struct {
	jobs *catalog.Jobs
	// CleanText runs resume and descriptions through textclean before
	// vectorising.
	CleanText bool

	logger *zap.Logger
}

func New(jobs *catalog.Jobs, logger *zap.Logger) *Matcher {
	if jobs == nil {
		jobs = &catalog.Jobs{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{jobs: jobs, logger: logger}
}

// Match fits a vector space on the resume plus every job description and
// returns up to topN listings ordered by descending similarity. Ties keep
// catalog order.
func (m *Matcher) Match(input Input, topN int) []Result {
	if topN <= 0 {
		topN = DefaultTopN
	}

	results := make([]Result, 0)
	if m.jobs.Len() == 0 {
		return results
	}

	text, err := input.Resolve()
	if err != nil {
		m.logger.Warn("resume record is not usable, matching empty text",
			zap.String("input", input.Kind().String()),
			zap.Error(err),
		)
	}

	corpus := make([]string, 0, m.jobs.Len()+1)
	corpus = append(corpus, text)
	corpus = append(corpus, m.jobs.Descriptions()...)
	if m.CleanText {
		for i := range corpus {
			corpus[i] = textclean.Clean(corpus[i])
		}
	}

	_, vectors := tfidf.FitTransform(corpus)
	for i, job := range m.jobs.Items {
		results = append(results, Result{
			Title: job.Title,
			Score: tfidf.Cosine(vectors[0], vectors[i+1]),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topN {
		results = results[:topN]
	}

	m.logger.Debug("matched job listings",
		zap.Int("candidates", m.jobs.Len()),
		zap.Int("returned", len(results)),
	)

	return results
}
