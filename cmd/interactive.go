package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/report"
)

const (
	PromptAnalyzeText = "Analyze resume text"
	PromptAnalyzeFile = "Analyze resume file"
	PromptSamples     = "Run sample scenarios"
	PromptDumpReport  = "Dump last report to file"
	PromptExit        = "Exit"
	PromptBack        = "back"
)

var errExit = errors.New("exit requested")

var menu = promptui.Select{
	Label: "Choose an action",
	Items: []string{PromptAnalyzeText, PromptAnalyzeFile, PromptSamples, PromptDumpReport, PromptExit},
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Analyze resumes from an interactive menu",
	Run: func(_ *cobra.Command, _ []string) {
		interactive()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

// session keeps the last report so it can be dumped on request.
type session struct {
	env  *environment
	last *report.Report
}

func interactive() {
	ctx := context.Background()

	env, err := setup()
	if err != nil {
		log.Fatalf("%s", err)
	}
	logger := env.logger

	s := &session{env: env}
	for {
		_, action, err := menu.Run()
		if err != nil {
			if isPromptExit(err) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := s.handleAction(ctx, action); err != nil {
			if errors.Is(err, errExit) || isPromptExit(err) {
				logger.Info("exiting", zap.String("reason", "requested by user"))
				return
			}
			logger.Error("action failed", zap.String("action", action), zap.Error(err))
		}
	}
}

func (s *session) handleAction(ctx context.Context, action string) error {
	switch action {
	case PromptAnalyzeText:
		return s.analyzeText(ctx)
	case PromptAnalyzeFile:
		return s.analyzeFile(ctx)
	case PromptSamples:
		return s.runSamples(ctx)
	case PromptDumpReport:
		if s.last == nil {
			s.env.logger.Warn("nothing to dump", zap.String("hint", "analyze a resume first"))
			return nil
		}
		filename, err := s.last.DumpToTmpFile(report.FormatJSON)
		if err != nil {
			return fmt.Errorf("dump report to file: %w", err)
		}
		s.env.logger.Info("dumping report to file", zap.String("filename", filename))
		return nil
	case PromptExit:
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func (s *session) analyzeText(ctx context.Context) error {
	prompt := promptui.Prompt{
		Label: "Resume text (or quit)",
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("please enter some text")
			}
			return nil
		},
	}

	text, err := prompt.Run()
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "quit", "exit", "q":
		return nil
	}

	return s.show(s.env.analyzer.AnalyzeText(ctx, text))
}

func (s *session) analyzeFile(ctx context.Context) error {
	prompt := promptui.Prompt{
		Label: "Path to a pdf, docx or txt resume",
		Validate: func(input string) error {
			info, err := os.Stat(strings.TrimSpace(input))
			if err != nil {
				return err
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", input)
			}
			return nil
		},
	}

	path, err := prompt.Run()
	if err != nil {
		return err
	}

	return s.show(s.env.analyzer.Analyze(ctx, document.Source{File: strings.TrimSpace(path)}))
}

func (s *session) runSamples(ctx context.Context) error {
	for {
		selector := promptui.Select{
			Label: "Choose a sample resume and press ENTER",
			Items: append(sampleTitles(), PromptBack),
		}

		_, selected, err := selector.Run()
		if err != nil {
			return err
		}
		if selected == PromptBack {
			return nil
		}

		sm := findSample(selected)
		if sm == nil {
			return fmt.Errorf("there is no such sample %s", selected)
		}

		if err := s.show(s.env.analyzer.Analyze(ctx, document.Source{Name: sm.Title, Text: sm.Text})); err != nil {
			return err
		}
	}
}

func (s *session) show(r *report.Report) error {
	s.last = r
	if err := r.Encode(os.Stdout, report.FormatText); err != nil {
		return fmt.Errorf("printing report: %w", err)
	}
	fmt.Fprintln(os.Stdout)
	return nil
}

func isPromptExit(err error) bool {
	return errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF)
}
