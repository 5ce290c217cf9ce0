package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-analyzer/internal/catalog"
	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/feedback"
	"github.com/spigell/resume-analyzer/internal/quality"
	"github.com/spigell/resume-analyzer/internal/recommend"
	"github.com/spigell/resume-analyzer/internal/report"
)

const scenarioResume = "Python developer with AWS, Docker, and Machine Learning experience."

func newAnalyzer(t *testing.T) *Analyzer {
	t.Helper()
	return New(catalog.Default(), nil, Options{}, nil)
}

func matchTitles(r *report.Report) []string {
	titles := make([]string, 0, len(r.JobMatches))
	for _, m := range r.JobMatches {
		titles = append(titles, m.Title)
	}
	return titles
}

func TestAnalyzeScenario(t *testing.T) {
	r := newAnalyzer(t).AnalyzeText(context.Background(), scenarioResume)

	assert.Equal(t, report.StatusOK, r.Status)
	assert.Empty(t, r.Error)
	assert.Equal(t, []string{"aws", "docker", "machine learning", "python"}, r.Skills)
	assert.Equal(t, []string{"Data Scientist", "Backend Developer", "DevOps Engineer"}, matchTitles(r))
	assert.Equal(t, []string{"Data Scientist", "Backend Developer", "DevOps Engineer"}, r.CareerRecommendations)
	assert.NotContains(t, r.CareerRecommendations, "Frontend Developer")
	assert.False(t, r.FallbackRecommendation)
	assert.Equal(t, quality.Prediction{Label: quality.Unavailable}, r.Quality)
	assert.Equal(t, scenarioResume, r.Preview)
	assert.Equal(t, report.NewID(scenarioResume), r.ID)
	assert.Equal(t, "text", r.Source)
	assert.Equal(t,
		"Detected skills: aws, docker, machine learning, python\n"+
			"Your resume best matches the role: Data Scientist\n"+
			"Suggested career paths: Data Scientist, Backend Developer, DevOps Engineer",
		r.Feedback,
	)
}

func TestAnalyzeEmptyText(t *testing.T) {
	r := newAnalyzer(t).AnalyzeText(context.Background(), "")

	assert.Equal(t, report.StatusOK, r.Status)
	assert.Equal(t, []string{}, r.Skills)
	assert.Equal(t, []string{recommend.DefaultFallback}, r.CareerRecommendations)
	assert.True(t, r.FallbackRecommendation)
	assert.Equal(t, []string{"Backend Developer", "Data Scientist", "DevOps Engineer"}, matchTitles(r))
	for _, m := range r.JobMatches {
		assert.Zero(t, m.Score)
	}
	assert.True(t, strings.HasPrefix(r.Feedback, feedback.NoSkills+"\n"))
	assert.Len(t, strings.Split(r.Feedback, "\n"), 3)
	assert.Equal(t, "", r.Preview)
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	a := newAnalyzer(t)

	for _, format := range report.Formats {
		first, err := a.AnalyzeText(context.Background(), scenarioResume).Bytes(format)
		require.NoError(t, err)
		second, err := newAnalyzer(t).AnalyzeText(context.Background(), scenarioResume).Bytes(format)
		require.NoError(t, err)
		assert.Equal(t, first, second, "format %s", format)
	}
}

func TestAnalyzeAcquisitionFailures(t *testing.T) {
	dir := t.TempDir()
	odt := filepath.Join(dir, "resume.odt")
	require.NoError(t, os.WriteFile(odt, []byte("python"), 0o644))

	tests := []struct {
		name     string
		source   document.Source
		contains string
	}{
		{
			name:     "missing file",
			source:   document.Source{File: filepath.Join(dir, "missing.pdf")},
			contains: "input not found",
		},
		{
			name:     "unsupported format",
			source:   document.Source{File: odt},
			contains: "unsupported file format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAnalyzer(t).Analyze(context.Background(), tt.source)

			assert.True(t, r.Failed())
			assert.Equal(t, report.StatusFailed, r.Status)
			assert.Contains(t, r.Error, tt.contains)
			assert.Contains(t, r.Error, StageAcquire)
			assert.Empty(t, r.Skills)
			assert.Empty(t, r.JobMatches)
			assert.Empty(t, r.Feedback)
		})
	}
}

func TestAnalyzeTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n"+scenarioResume+"\n"), 0o644))

	r := newAnalyzer(t).Analyze(context.Background(), document.Source{File: path})

	assert.Equal(t, "cv.txt", r.Source)
	assert.Equal(t, report.NewID(scenarioResume), r.ID)
	assert.Equal(t, []string{"aws", "docker", "machine learning", "python"}, r.Skills)
}

func TestAnalyzeCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := newAnalyzer(t).AnalyzeText(ctx, scenarioResume)
	assert.True(t, r.Failed())
	assert.Contains(t, r.Error, context.Canceled.Error())
}

func TestAnalyzeWithQualityModel(t *testing.T) {
	predictor, err := quality.New(
		map[string]int{"python": 0, "aws": 1}, []float64{1, 1}, false,
		[]string{"weak", "strong"}, [][]float64{{1, 1}}, []float64{-0.5},
	)
	require.NoError(t, err)

	a := New(catalog.Default(), predictor, Options{}, nil)
	assert.Equal(t, quality.Prediction{Label: "strong", Available: true}, a.AnalyzeText(context.Background(), scenarioResume).Quality)
	assert.Equal(t, quality.Prediction{Label: "weak", Available: true}, a.AnalyzeText(context.Background(), "").Quality)

	for _, status := range a.Stages() {
		assert.True(t, status.Enabled, status.Name)
	}
}

func TestAnalyzeOptions(t *testing.T) {
	a := New(catalog.Default(), nil, Options{
		TopN:           1,
		RecommendLimit: 1,
		FallbackCareer: "Generalist",
		PreviewLength:  6,
	}, nil)

	r := a.AnalyzeText(context.Background(), scenarioResume)
	assert.Equal(t, []string{"Data Scientist"}, matchTitles(r))
	assert.Equal(t, []string{"Data Scientist"}, r.CareerRecommendations)
	assert.Equal(t, "Python...", r.Preview)

	r = a.AnalyzeText(context.Background(), "no known keywords")
	assert.Equal(t, []string{"Generalist"}, r.CareerRecommendations)
}

func TestAnalyzeLogsStages(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	a := New(catalog.Default(), nil, Options{}, zap.New(core))

	a.AnalyzeText(context.Background(), scenarioResume)

	steps := observed.FilterMessage("pipeline step").All()
	names := make([]string, 0, len(steps))
	for _, entry := range steps {
		ctx := entry.ContextMap()
		assert.Equal(t, "text", ctx["source"])
		names = append(names, ctx["stage"].(string))
	}
	assert.Equal(t, []string{StageAcquire, StageSkills, StageMatch, StageRecommend, StageFeedback}, names)

	disabled := observed.FilterMessage("stage disabled").All()
	require.Len(t, disabled, 1)
	assert.Equal(t, StageQuality, disabled[0].ContextMap()["stage"])

	statuses := a.Stages()
	require.Len(t, statuses, 6)
	assert.Equal(t, Status{Name: StageQuality, Enabled: false, Reason: "quality model not available"}, statuses[4])
}

func TestAnalyzeBatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("Frontend engineer with JavaScript, HTML and CSS"), 0o644))

	sources := []document.Source{
		{Text: scenarioResume},
		{File: filepath.Join(dir, "missing.docx")},
		{File: path},
		{Name: "empty", Text: ""},
	}

	a := newAnalyzer(t)
	for _, workers := range []int{0, 1, 3} {
		reports := a.AnalyzeBatch(context.Background(), sources, workers)
		require.Len(t, reports, len(sources))

		assert.Equal(t, "Data Scientist", reports[0].TopMatch())
		assert.True(t, reports[1].Failed())
		assert.Equal(t, "Frontend Developer", reports[2].TopMatch())
		assert.Equal(t, "empty", reports[3].Source)
		assert.True(t, reports[3].FallbackRecommendation)
	}

	assert.Empty(t, a.AnalyzeBatch(context.Background(), nil, 2))
}

func TestAnalyzeCustomCatalogFeedbackLines(t *testing.T) {
	_, err := catalog.Parse([]byte(`
skills: [python]
jobs:
  - title: "Backend\nDeveloper"
    description: python apis
careers:
  - name: "Data\nScientist"
    skills: [python]
`))
	require.Error(t, err)

	cat, err := catalog.Parse([]byte(`
skills: [python]
jobs:
  - title: Backend Developer
    description: |
      python apis
      and services
careers:
  - name: Data Scientist
    skills: [python]
`))
	require.NoError(t, err)

	r := New(cat, nil, Options{}, nil).AnalyzeText(context.Background(), "python")
	assert.Equal(t,
		"Detected skills: python\n"+
			"Your resume best matches the role: Backend Developer\n"+
			"Suggested career paths: Data Scientist",
		r.Feedback,
	)
	assert.Len(t, strings.Split(r.Feedback, "\n"), 3)
}
