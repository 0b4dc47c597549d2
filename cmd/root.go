package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/mkaddani/job-hunter/internal/adzuna"
	"github.com/mkaddani/job-hunter/internal/ai"
	"github.com/mkaddani/job-hunter/internal/ai/gemini"
	"github.com/mkaddani/job-hunter/internal/logger"
	"github.com/mkaddani/job-hunter/internal/profile"
	"github.com/mkaddani/job-hunter/internal/scoring"
	"github.com/mkaddani/job-hunter/internal/secrets"
	"github.com/mkaddani/job-hunter/internal/sheets"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	app = "job-hunter"

	envAdzunaAppID  = "ADZUNA_APP_ID"
	envAdzunaAppKey = "ADZUNA_APP_KEY"
	envGeminiAPIKey = "GEMINI_API_KEY"
)

type Config struct {
	Profile string         `mapstructure:"profile"`
	Search  *SearchConfig  `mapstructure:"search"`
	Sheet   *SheetConfig   `mapstructure:"sheet"`
	Adzuna  *AdzunaConfig  `mapstructure:"adzuna"`
	Scoring *ScoringConfig `mapstructure:"scoring"`
	AI      *AIConfig      `mapstructure:"ai"`
	Latex   *LatexConfig   `mapstructure:"latex"`
	Drive   *DriveConfig   `mapstructure:"drive"`
}

type SearchConfig struct {
	Query          string `mapstructure:"query"`
	Country        string `mapstructure:"country"`
	Pages          int    `mapstructure:"pages"`
	ResultsPerPage int    `mapstructure:"results-per-page"`
}

type SheetConfig struct {
	SpreadsheetID   string `mapstructure:"spreadsheet-id"`
	Name            string `mapstructure:"name"`
	CredentialsFile string `mapstructure:"credentials-file"`
}

type AdzunaConfig struct {
	AppID      string `mapstructure:"app-id"`
	AppKeyFile string `mapstructure:"app-key-file"`
}

type ScoringConfig struct {
	WeightExternal float64 `mapstructure:"weight-external"`
	MaxDelta       int     `mapstructure:"max-delta"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider"`
	Gemini   *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	Model        string `mapstructure:"model"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type LatexConfig struct {
	TemplatesDir string `mapstructure:"templates-dir"`
	OutputDir    string `mapstructure:"output-dir"`
	Compile      bool   `mapstructure:"compile"`
}

type DriveConfig struct {
	FolderID        string `mapstructure:"folder-id"`
	CredentialsFile string `mapstructure:"credentials-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "job-hunter is a cli for triaging job postings: ingest, filter, score and generate application documents",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Secrets are conventionally kept in a local .env file; a missing file
	// is fine.
	_ = godotenv.Load()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is job-hunter.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
	}

	// Commands validate the sections they need, so a missing file is only
	// fatal when it was named explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func newStore(ctx context.Context, config *Config, l *zap.Logger) (*sheets.Store, error) {
	if config.Sheet == nil || config.Sheet.SpreadsheetID == "" {
		return nil, errors.New("sheet.spreadsheet-id is required")
	}

	name := config.Sheet.Name
	if name == "" {
		name = "jobs"
	}

	return sheets.NewStore(ctx, l, config.Sheet.SpreadsheetID, name, config.Sheet.CredentialsFile)
}

func newAdzunaClient(config *Config, l *zap.Logger) (*adzuna.Client, error) {
	var appID, appKeyFile string
	if config.Adzuna != nil {
		appID = config.Adzuna.AppID
		appKeyFile = config.Adzuna.AppKeyFile
	}

	id, err := secrets.Load(secrets.Source{
		Name:  "adzuna app id",
		Env:   envAdzunaAppID,
		Value: appID,
	})
	if err != nil {
		return nil, err
	}

	key, err := secrets.Load(secrets.Source{
		Name: "adzuna app key",
		Env:  envAdzunaAppKey,
		File: appKeyFile,
	})
	if err != nil {
		return nil, err
	}

	return adzuna.New(l, id, key), nil
}

func newEngine(config *Config) *scoring.Engine {
	weight := scoring.DefaultWeightExternal
	delta := scoring.DefaultMaxDelta
	if config.Scoring != nil {
		if config.Scoring.WeightExternal > 0 {
			weight = config.Scoring.WeightExternal
		}
		if config.Scoring.MaxDelta > 0 {
			delta = config.Scoring.MaxDelta
		}
	}

	return scoring.NewEngine(scoring.DefaultVocabulary(), weight, delta)
}

func newEnricher(ctx context.Context, config *Config, l *zap.Logger) (ai.Enricher, error) {
	var (
		provider string
		cfg      *GeminiConfig
	)
	if config.AI != nil {
		provider = strings.TrimSpace(strings.ToLower(config.AI.Provider))
		cfg = config.AI.Gemini
	}
	if provider != "" && provider != "gemini" {
		return nil, fmt.Errorf("unsupported ai provider: %s", config.AI.Provider)
	}
	if cfg == nil {
		cfg = &GeminiConfig{}
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		Env:  envGeminiAPIKey,
		File: cfg.APIKeyFile,
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set %s or ai.gemini.api-key-file)", err, envGeminiAPIKey)
	}

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Model)
	if err != nil {
		return nil, err
	}

	enricherLogger := logger.WithFields(l, zap.String(logger.FieldModel, generator.Model()))

	return gemini.NewEnricher(generator, enricherLogger, cfg.MaxLogLength), nil
}

func loadProfile(config *Config) (*scoring.CandidateProfile, *profile.Documents, error) {
	dir := config.Profile
	if dir == "" {
		dir = "."
	}

	docs, err := profile.LoadDocuments(dir)
	if err != nil {
		return nil, nil, err
	}

	p, err := profile.Load(filepath.Join(dir, "profile.yml"))
	if err != nil {
		return nil, nil, err
	}

	return p, docs, nil
}
