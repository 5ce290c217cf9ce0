package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/catalog"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/matching"
	"github.com/spigell/resume-analyzer/internal/pipeline"
	"github.com/spigell/resume-analyzer/internal/quality"
	"github.com/spigell/resume-analyzer/internal/recommend"
	"github.com/spigell/resume-analyzer/internal/report"
)

const (
	app       = "resume-analyzer"
	envPrefix = "RESUME_ANALYZER"
)

type Config struct {
	CatalogFile string             `mapstructure:"catalog-file"`
	Matcher     *MatcherConfig     `mapstructure:"matcher"`
	Recommender *RecommenderConfig `mapstructure:"recommender"`
	Quality     *QualityConfig     `mapstructure:"quality"`
	Report      *ReportConfig      `mapstructure:"report"`
}

type MatcherConfig struct {
	TopN      int  `mapstructure:"top-n"`
	CleanText bool `mapstructure:"clean-text"`
}

type RecommenderConfig struct {
	Limit    int    `mapstructure:"limit"`
	Fallback string `mapstructure:"fallback"`
}

type QualityConfig struct {
	VectorizerFile string `mapstructure:"vectorizer-file"`
	ClassifierFile string `mapstructure:"classifier-file"`
}

type ReportConfig struct {
	PreviewLength int `mapstructure:"preview-length"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-analyzer extracts skills from resumes and matches them against a job catalog",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-analyzer.yaml in current directory)")
	rootCmd.PersistentFlags().String("catalog-file", "", "a yaml catalog replacing the built-in skills, jobs and careers")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("catalog-file", rootCmd.PersistentFlags().Lookup("catalog-file"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	setDefaults()
}

func setDefaults() {
	viper.SetDefault("catalog-file", "")
	viper.SetDefault("matcher.top-n", matching.DefaultTopN)
	viper.SetDefault("matcher.clean-text", false)
	viper.SetDefault("recommender.limit", recommend.DefaultLimit)
	viper.SetDefault("recommender.fallback", recommend.DefaultFallback)
	viper.SetDefault("quality.vectorizer-file", "")
	viper.SetDefault("quality.classifier-file", "")
	viper.SetDefault("report.preview-length", report.DefaultPreviewLength)
}

func initConfig() {
	// A missing .env file is fine; values may come from the real environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	bindEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// The default config file is optional, an explicit one is not.
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

// bindEnv maps every key to RESUME_ANALYZER_<KEY> with dots and dashes
// replaced by underscores, e.g. RESUME_ANALYZER_MATCHER_TOP_N.
func bindEnv() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}
	if config.Matcher == nil {
		config.Matcher = &MatcherConfig{}
	}
	if config.Recommender == nil {
		config.Recommender = &RecommenderConfig{}
	}
	if config.Quality == nil {
		config.Quality = &QualityConfig{}
	}
	if config.Report == nil {
		config.Report = &ReportConfig{}
	}

	return config, nil
}

// environment is what every command needs to run an analysis.
type environment struct {
	logger   *zap.Logger
	config   *Config
	catalog  *catalog.Catalog
	analyzer *pipeline.Analyzer
}

func setup() (*environment, error) {
	lg, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	cat, err := loadCatalog(config.CatalogFile)
	if err != nil {
		return nil, err
	}

	lg.Debug("catalog loaded",
		zap.Int("skills", len(cat.Skills)),
		zap.Int("jobs", cat.Jobs.Len()),
		zap.Int("careers", cat.Careers.Len()),
	)

	predictor, err := quality.Load(config.Quality.VectorizerFile, config.Quality.ClassifierFile, lg.Named("quality"))
	if err != nil {
		return nil, fmt.Errorf("loading quality model: %w", err)
	}

	analyzer := pipeline.New(cat, predictor, pipeline.Options{
		TopN:           config.Matcher.TopN,
		CleanText:      config.Matcher.CleanText,
		RecommendLimit: config.Recommender.Limit,
		FallbackCareer: config.Recommender.Fallback,
		PreviewLength:  config.Report.PreviewLength,
	}, lg)

	return &environment{logger: lg, config: config, catalog: cat, analyzer: analyzer}, nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}
