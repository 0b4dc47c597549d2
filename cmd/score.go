package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mkaddani/job-hunter/internal/ai"
	"github.com/mkaddani/job-hunter/internal/logger"
	"github.com/mkaddani/job-hunter/internal/profile"
	"github.com/mkaddani/job-hunter/internal/scoring"
	"github.com/mkaddani/job-hunter/internal/sheets"
	"github.com/mkaddani/job-hunter/internal/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// enrichPause spaces out model calls when scoring a batch of rows.
const enrichPause = 2 * time.Second

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score rows ready for evaluation against the candidate profile",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().Bool("with-ai", false, "blend the model's fit estimate into the final score")
	scoreCmd.Flags().String("job-file", "", "score a single job from a JSON file (title, description) and print the result instead of touching the sheet")
}

func score(cmd *cobra.Command) {
	ctx := context.Background()

	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		log.Fatal("config is required")
	}

	candidate, docs, err := loadProfile(config)
	if err != nil {
		log.Fatal("loading candidate profile", zap.Error(err))
	}

	engine := newEngine(config)

	if jobFile, _ := cmd.Flags().GetString("job-file"); jobFile != "" {
		if err := scoreJobFile(ctx, cmd, config, engine, candidate, docs, jobFile, log); err != nil {
			log.Fatal("scoring job file", zap.Error(err))
		}
		return
	}

	withAI, _ := cmd.Flags().GetBool("with-ai")

	var enricher ai.Enricher
	if withAI {
		enricher, err = newEnricher(ctx, config, log)
		if err != nil {
			log.Fatal("building enricher", zap.Error(err))
		}
	}

	store, err := newStore(ctx, config, log)
	if err != nil {
		log.Fatal("opening sheet", zap.Error(err))
	}

	rows, err := store.RowsWithStatus(ctx, sheets.StatusReadyLLM)
	if err != nil {
		log.Fatal("reading rows", zap.Error(err))
	}

	log.Info("starting scoring", zap.Int("rows", len(rows)), zap.Bool("with_ai", withAI))

	for i, row := range rows {
		job := &scoring.JobPosting{
			Title:       row.Get(sheets.ColTitle),
			Description: row.Get(sheets.ColDescription),
		}
		rowLog := logger.WithJob(log, row.Get(sheets.ColJobID), job.Title)

		var external *int
		if withAI {
			if i > 0 {
				if err := utils.WaitFor(ctx, enrichPause); err != nil {
					log.Fatal("scoring interrupted", zap.Error(err))
				}
			}
			external = externalScore(ctx, enricher, docs, job, rowLog)
		}

		hybrid, err := engine.ComputeHybridScore(candidate, job, external)
		if err != nil {
			rowLog.Warn("skipping unscorable row", zap.Error(err))
			continue
		}

		if err := store.Update(ctx, row.Number, scoreUpdates(hybrid)); err != nil {
			log.Fatal("updating row", zap.Error(err), zap.Int("row", row.Number))
		}

		rowLog.Info("scored job",
			zap.Int("deterministic", hybrid.Deterministic.DeterministicScore),
			zap.Int("final", hybrid.FinalScore),
		)
	}

	log.Info("scoring finished", zap.Int("rows", len(rows)))
}

// externalScore asks the model for its fit estimate. Enrichment failures are
// reported but never block scoring; the engine falls back to the
// deterministic result.
func externalScore(ctx context.Context, enricher ai.Enricher, docs *profile.Documents, job *scoring.JobPosting, log *zap.Logger) *int {
	enrichment, err := enricher.Enrich(ctx, &ai.Input{
		ProfileYAML:   docs.ProfileYAML,
		ExperiencesMD: docs.ExperiencesMD,
		ProjectsMD:    docs.ProjectsMD,
		Job:           job,
	})
	if err != nil {
		log.Warn("enrichment failed, falling back to deterministic score", zap.Error(err))
		return nil
	}
	return enrichment.Score
}

func scoreUpdates(hybrid *scoring.HybridScore) map[string]string {
	det := hybrid.Deterministic

	updates := map[string]string{
		sheets.ColStatus:             sheets.StatusScored,
		sheets.ColDeterministicScore: strconv.Itoa(det.DeterministicScore),
		sheets.ColFinalScore:         strconv.Itoa(hybrid.FinalScore),
		sheets.ColOverlapSkills:      strings.Join(det.OverlapSkills, ", "),
		sheets.ColMissingSkills:      strings.Join(det.MissingSkills, ", "),
	}
	if hybrid.ExternalScore != nil {
		updates[sheets.ColLLMScore] = strconv.Itoa(*hybrid.ExternalScore)
	}
	return updates
}

// scoreJobFile scores one posting from disk and prints the full result, which
// is handy for tuning the profile without touching the sheet.
func scoreJobFile(ctx context.Context, cmd *cobra.Command, config *Config, engine *scoring.Engine, candidate *scoring.CandidateProfile, docs *profile.Documents, path string, log *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read job file: %w", err)
	}

	var job scoring.JobPosting
	if err := json.Unmarshal(data, &job); err != nil {
		return fmt.Errorf("parse job file: %w", err)
	}

	var external *int
	if withAI, _ := cmd.Flags().GetBool("with-ai"); withAI {
		enricher, err := newEnricher(ctx, config, log)
		if err != nil {
			return err
		}
		external = externalScore(ctx, enricher, docs, &job, log)
	}

	hybrid, err := engine.ComputeHybridScore(candidate, &job, external)
	if err != nil {
		return err
	}

	pretty, err := json.MarshalIndent(hybrid, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(pretty))
	return nil
}
