// Package pipeline runs the resume analysis stages and assembles reports.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/matching"
	"github.com/spigell/resume-analyzer/internal/quality"
	"github.com/spigell/resume-analyzer/internal/recommend"
	"github.com/spigell/resume-analyzer/internal/skills"
)

// Stage is a single named step of the analysis.
type Stage interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Apply(ctx context.Context, deps Deps, st *State) error
}

// Deps aggregates the components shared by all stages.
type Deps struct {
	Logger      *zap.Logger
	Skills      *skills.Extractor
	Matcher     *matching.Matcher
	Recommender *recommend.Recommender
	Predictor   *quality.Predictor
	TopN        int
}

// State is the data passed from one stage to the next.
type State struct {
	Source         document.Source
	Text           string
	Skills         []string
	Matches        []matching.Result
	Recommendation recommend.Recommendation
	Quality        quality.Prediction
	Feedback       string
}

// Status represents runtime information about a stage.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

// baseStage carries the enable switch shared by every stage.
type baseStage struct {
	name     string
	disabled bool
	reason   string
}

func (b *baseStage) Name() string { return b.name }

func (b *baseStage) Disable(reason string) {
	b.disabled = true
	b.reason = reason
}

func (b *baseStage) IsEnabled() bool { return !b.disabled }

func (b *baseStage) Status() Status {
	return Status{Name: b.name, Enabled: !b.disabled, Reason: b.reason}
}

// statusProvider is implemented by stages that can supply detailed status information.
type statusProvider interface {
	Status() Status
}

// DisableByName marks a stage with the provided name as disabled while keeping it in the list.
func DisableByName(stages []Stage, name, reason string) {
	for _, stage := range stages {
		if stage.Name() == name {
			stage.Disable(reason)
		}
	}
}

// Run executes the enabled stages in order and stops at the first error.
func Run(ctx context.Context, deps Deps, stages []Stage, st *State) error {
	log := logger.WithFields(deps.Logger)

	for _, stage := range stages {
		if !stage.IsEnabled() {
			log.Debug("stage disabled", logger.StageFields(stage.Name(), "")...)
			continue
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}

		if err := stage.Apply(ctx, deps, st); err != nil {
			return fmt.Errorf("%s: %w", stage.Name(), err)
		}

		log.Debug("pipeline step",
			append(logger.StageFields(stage.Name(), ""),
				zap.Int("skills", len(st.Skills)),
				zap.Int("matches", len(st.Matches)),
			)...,
		)
	}

	return nil
}

// Describe returns status entries for the provided stages.
func Describe(stages []Stage) []Status {
	statuses := make([]Status, 0, len(stages))
	for _, stage := range stages {
		if reporter, ok := stage.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    stage.Name(),
			Enabled: stage.IsEnabled(),
		})
	}
	return statuses
}
