package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Analyze a single resume given as a pdf, docx or txt file or as inline text",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		analyze(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("text", "t", "", "resume text to analyze instead of a file")
	analyzeCmd.Flags().StringP("format", "f", string(report.FormatText), "output format: text, json or yaml")
	analyzeCmd.Flags().StringP("out", "o", "", "write the report into this file instead of stdout")
	analyzeCmd.Flags().IntP("top-n", "n", 0, "number of job matches to report")

	viper.BindPFlag("matcher.top-n", analyzeCmd.Flags().Lookup("top-n"))
}

func analyze(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	env, err := setup()
	if err != nil {
		log.Fatalf("%s", err)
	}
	logger := env.logger

	format, err := report.ParseFormat(cmd.Flag("format").Value.String())
	if err != nil {
		logger.Fatal("parsing output format", zap.Error(err))
	}

	var src document.Source
	switch {
	case len(args) == 1:
		src = document.Source{File: args[0]}
	case cmd.Flags().Changed("text"):
		src = document.Source{Text: cmd.Flag("text").Value.String()}
	default:
		logger.Fatal("nothing to analyze", zap.String("hint", "pass a resume file or use --text"))
	}

	logger.Info("starting the analysis", zap.String("version", version), zap.String("source", src.Label()))

	r := env.analyzer.Analyze(ctx, src)

	if out := cmd.Flag("out").Value.String(); out != "" {
		if err := r.WriteFile(out, format); err != nil {
			logger.Fatal("writing report", zap.String("filename", out), zap.Error(err))
		}
		logger.Info("report written", zap.String("filename", out))
	} else if err := r.Encode(os.Stdout, format); err != nil {
		logger.Fatal("printing report", zap.Error(err))
	}

	if r.Failed() {
		logger.Fatal("analysis failed", zap.String("error", r.Error))
	}
}
