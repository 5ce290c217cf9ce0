// Package report holds the result of a resume analysis and its encoders.
package report

import (
	"github.com/google/uuid"

	"github.com/spigell/resume-analyzer/internal/matching"
	"github.com/spigell/resume-analyzer/internal/quality"
	"github.com/spigell/resume-analyzer/internal/utils"
)

const (
	StatusOK     = "ok"
	StatusFailed = "failed"

	DefaultPreviewLength = 300
)

// namespace scopes report identifiers generated by this tool.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/spigell/resume-analyzer/report"))

// Report is the merged output of one analysis.
type Report struct {
	ID                     string             `json:"id" yaml:"id"`
	Source                 string             `json:"source" yaml:"source"`
	Status                 string             `json:"status" yaml:"status"`
	Preview                string             `json:"preview" yaml:"preview"`
	Skills                 []string           `json:"skills" yaml:"skills"`
	JobMatches             []matching.Result  `json:"job_matches" yaml:"job_matches"`
	CareerRecommendations  []string           `json:"career_recommendations" yaml:"career_recommendations"`
	FallbackRecommendation bool               `json:"fallback_recommendation" yaml:"fallback_recommendation"`
	Feedback               string             `json:"feedback" yaml:"feedback"`
	Quality                quality.Prediction `json:"quality" yaml:"quality"`
	Error                  string             `json:"error,omitempty" yaml:"error,omitempty"`
}

// New returns an empty successful report for source. Slices are non-nil so
// encoders emit empty lists instead of null.
func New(source string) *Report {
	return &Report{
		Source:                source,
		Status:                StatusOK,
		Skills:                []string{},
		JobMatches:            []matching.Result{},
		CareerRecommendations: []string{},
		Quality:               quality.Prediction{Label: quality.Unavailable},
	}
}

// NewID derives a stable identifier from the resume text.
func NewID(text string) string {
	return uuid.NewSHA1(namespace, []byte(text)).String()
}

// Preview trims text and cuts it to limit runes with a trailing ellipsis.
// A non-positive limit means DefaultPreviewLength.
func Preview(text string, limit int) string {
	if limit <= 0 {
		limit = DefaultPreviewLength
	}
	return utils.Truncate(text, limit)
}

// Fail marks the report failed with err.
func (r *Report) Fail(err error) {
	r.Status = StatusFailed
	if err != nil {
		r.Error = err.Error()
	}
}

// Failed reports whether the analysis could not read its input.
func (r *Report) Failed() bool {
	return r.Status == StatusFailed
}

// TopMatch returns the best ranked job title or an empty string.
func (r *Report) TopMatch() string {
	if len(r.JobMatches) == 0 {
		return ""
	}
	return r.JobMatches[0].Title
}
