package pipeline

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-analyzer/internal/catalog"
	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/matching"
	"github.com/spigell/resume-analyzer/internal/quality"
	"github.com/spigell/resume-analyzer/internal/recommend"
	"github.com/spigell/resume-analyzer/internal/report"
	"github.com/spigell/resume-analyzer/internal/skills"
)

// Options tunes the analysis. Zero values select the defaults of each
// component.
type Options struct {
	TopN           int
	CleanText      bool
	RecommendLimit int
	FallbackCareer string
	PreviewLength  int
}

// Analyzer runs the full analysis for resumes against one catalog. It is
// safe for concurrent use.
type Analyzer struct {
	deps          Deps
	stages        []Stage
	previewLength int
	logger        *zap.Logger
}

// New wires the components for cat. A nil predictor disables quality
// prediction and reports carry the unavailable label.
func New(cat *catalog.Catalog, predictor *quality.Predictor, opts Options, log *zap.Logger) *Analyzer {
	if cat == nil {
		cat = catalog.Default()
	}
	log = logger.WithFields(log)

	matcher := matching.New(&cat.Jobs, log.Named("matcher"))
	matcher.CleanText = opts.CleanText

	recommender := recommend.New(&cat.Careers)
	if opts.RecommendLimit > 0 {
		recommender.Limit = opts.RecommendLimit
	}
	if opts.FallbackCareer != "" {
		recommender.FallbackCareer = opts.FallbackCareer
	}

	stages := DefaultStages()
	if !predictor.Available() {
		DisableByName(stages, StageQuality, "quality model not available")
	}

	topN := opts.TopN
	if topN <= 0 {
		topN = matching.DefaultTopN
	}

	return &Analyzer{
		deps: Deps{
			Logger:      log,
			Skills:      skills.New(cat.Skills),
			Matcher:     matcher,
			Recommender: recommender,
			Predictor:   predictor,
			TopN:        topN,
		},
		stages:        stages,
		previewLength: opts.PreviewLength,
		logger:        log,
	}
}

// Stages describes the configured stages.
func (a *Analyzer) Stages() []Status {
	return Describe(a.stages)
}

// Analyze runs every stage for src. It never fails: when the text cannot be
// acquired the report is marked failed and carries the error.
func (a *Analyzer) Analyze(ctx context.Context, src document.Source) *report.Report {
	log := logger.ForSource(a.logger, src.Label())
	deps := a.deps
	deps.Logger = log

	st := &State{Source: src}
	r := report.New(src.Label())

	if err := Run(ctx, deps, a.stages, st); err != nil {
		r.ID = report.NewID(src.Label())
		r.Fail(err)
		log.Warn("analysis failed", zap.Error(err))
		return r
	}

	r.ID = report.NewID(st.Text)
	r.Preview = report.Preview(st.Text, a.previewLength)
	r.Skills = st.Skills
	r.JobMatches = st.Matches
	r.CareerRecommendations = st.Recommendation.Careers
	r.FallbackRecommendation = st.Recommendation.Fallback
	r.Feedback = st.Feedback
	if st.Quality.Label != "" {
		r.Quality = st.Quality
	}

	log.Info("analysis finished",
		zap.Strings("skills", r.Skills),
		zap.String("top_match", r.TopMatch()),
		zap.Bool("quality_available", r.Quality.Available),
	)

	return r
}

// AnalyzeText analyses inline resume text.
func (a *Analyzer) AnalyzeText(ctx context.Context, text string) *report.Report {
	return a.Analyze(ctx, document.Source{Text: text})
}

// AnalyzeBatch analyses sources with at most workers concurrent analyses and
// returns the reports in input order. A non-positive workers value uses the
// number of CPUs.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, sources []document.Source, workers int) []*report.Report {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	reports := make([]*report.Report, len(sources))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range sources {
		g.Go(func() error {
			reports[i] = a.Analyze(gCtx, src)
			return nil
		})
	}
	// Analyze reports failures in the report itself.
	_ = g.Wait()

	failed := 0
	for _, r := range reports {
		if r.Failed() {
			failed++
		}
	}
	a.logger.Info("batch finished",
		zap.Int("total", len(reports)),
		zap.Int("failed", failed),
		zap.Int("workers", workers),
	)

	return reports
}
