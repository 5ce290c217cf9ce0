package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/feedback"
	"github.com/spigell/resume-analyzer/internal/matching"
)

const (
	StageAcquire   = "acquire"
	StageSkills    = "skills"
	StageMatch     = "match"
	StageRecommend = "recommend"
	StageQuality   = "quality"
	StageFeedback  = "feedback"
)

// DefaultStages returns a fresh list of every stage in execution order.
func DefaultStages() []Stage {
	return []Stage{
		NewAcquire(),
		NewSkills(),
		NewMatch(),
		NewRecommend(),
		NewQuality(),
		NewFeedback(),
	}
}

type acquireStage struct{ baseStage }

// NewAcquire creates the stage that turns the source into plain text.
func NewAcquire() Stage {
	return &acquireStage{baseStage{name: StageAcquire}}
}

func (s *acquireStage) Apply(_ context.Context, deps Deps, st *State) error {
	text, err := document.Load(st.Source)
	if err != nil {
		return err
	}
	st.Text = text

	if deps.Logger != nil {
		deps.Logger.Debug("acquired resume text",
			zap.Bool("file", st.Source.IsFile()),
			zap.Int("runes", len([]rune(text))),
		)
	}
	return nil
}

type skillsStage struct{ baseStage }

// NewSkills creates the stage that detects vocabulary skills.
func NewSkills() Stage {
	return &skillsStage{baseStage{name: StageSkills}}
}

func (s *skillsStage) Apply(_ context.Context, deps Deps, st *State) error {
	if deps.Skills == nil {
		return fmt.Errorf("skill extractor is required")
	}
	st.Skills = deps.Skills.Extract(st.Text)
	return nil
}

type matchStage struct{ baseStage }

// NewMatch creates the stage that ranks job listings.
func NewMatch() Stage {
	return &matchStage{baseStage{name: StageMatch}}
}

func (s *matchStage) Apply(_ context.Context, deps Deps, st *State) error {
	if deps.Matcher == nil {
		return fmt.Errorf("matcher is required")
	}
	st.Matches = deps.Matcher.Match(matching.TextInput(st.Text), deps.TopN)
	return nil
}

type recommendStage struct{ baseStage }

// NewRecommend creates the stage that suggests careers from detected skills.
func NewRecommend() Stage {
	return &recommendStage{baseStage{name: StageRecommend}}
}

func (s *recommendStage) Apply(_ context.Context, deps Deps, st *State) error {
	if deps.Recommender == nil {
		return fmt.Errorf("recommender is required")
	}
	st.Recommendation = deps.Recommender.Recommend(st.Skills)
	return nil
}

type qualityStage struct{ baseStage }

// NewQuality creates the stage that labels the raw resume text.
func NewQuality() Stage {
	return &qualityStage{baseStage{name: StageQuality}}
}

func (s *qualityStage) Apply(_ context.Context, deps Deps, st *State) error {
	st.Quality = deps.Predictor.Predict(st.Text)
	return nil
}

type feedbackStage struct{ baseStage }

// NewFeedback creates the stage that renders the feedback text.
func NewFeedback() Stage {
	return &feedbackStage{baseStage{name: StageFeedback}}
}

func (s *feedbackStage) Apply(_ context.Context, _ Deps, st *State) error {
	st.Feedback = feedback.Compose(st.Skills, st.Matches, st.Recommendation.Careers)
	return nil
}
