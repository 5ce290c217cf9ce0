package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/document"
	"github.com/spigell/resume-analyzer/internal/report"
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Analyze several resumes concurrently",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		batch(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("workers", "w", 0, "number of concurrent analyses (default is the number of CPUs)")
	batchCmd.Flags().StringP("format", "f", string(report.FormatJSON), "output format: text, json or yaml")
	batchCmd.Flags().StringP("out", "o", "", "write the reports into this file instead of stdout")
}

func batch(cmd *cobra.Command, args []string) {
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

	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		logger.Fatal("parsing workers flag", zap.Error(err))
	}

	sources := make([]document.Source, 0, len(args))
	for _, path := range args {
		sources = append(sources, document.Source{File: path})
	}

	logger.Info("starting the batch", zap.String("version", version), zap.Int("count", len(sources)))

	reports := env.analyzer.AnalyzeBatch(ctx, sources, workers)
	for _, r := range reports {
		if r.Failed() {
			logger.Warn("resume was not analyzed", zap.String("source", r.Source), zap.String("error", r.Error))
		}
	}

	out := os.Stdout
	if path := cmd.Flag("out").Value.String(); path != "" {
		file, err := os.Create(path)
		if err != nil {
			logger.Fatal("creating output file", zap.String("filename", path), zap.Error(err))
		}
		defer file.Close()
		out = file
	}

	if err := report.EncodeAll(out, format, reports); err != nil {
		logger.Fatal("printing reports", zap.Error(err))
	}
}
