package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the active skills, jobs and careers catalog as yaml",
	Run: func(_ *cobra.Command, _ []string) {
		printCatalog()
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}

func printCatalog() {
	env, err := setup()
	if err != nil {
		log.Fatalf("%s", err)
	}

	data, err := env.catalog.Marshal()
	if err != nil {
		env.logger.Fatal("encoding catalog", zap.Error(err))
	}

	for _, status := range env.analyzer.Stages() {
		env.logger.Debug("pipeline stage",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
		)
	}

	if _, err := os.Stdout.Write(data); err != nil {
		env.logger.Fatal("printing catalog", zap.Error(err))
	}
}
