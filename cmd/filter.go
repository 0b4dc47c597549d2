package cmd

import (
	"context"
	"strconv"
	"time"

	"github.com/mkaddani/job-hunter/internal/prefilter"
	"github.com/mkaddani/job-hunter/internal/sheets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Triage NEW rows: skip senior or mismatched postings, mark the rest ready for scoring",
	Run: func(cmd *cobra.Command, _ []string) {
		filter(cmd)
	},
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().Bool("require-french", false, "skip postings that demand French when not detected as English-friendly")
	filterCmd.Flags().StringP("exclude-file", "e", "", "append companies skipped by the pre-filter to this blocklist file")
}

func filter(cmd *cobra.Command) {
	ctx := context.Background()

	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}

	store, err := newStore(ctx, config, log)
	if err != nil {
		log.Fatal("opening sheet", zap.Error(err))
	}

	rows, err := store.RowsWithStatus(ctx, sheets.StatusNew)
	if err != nil {
		log.Fatal("reading rows", zap.Error(err))
	}

	log.Info("starting triage", zap.Int("rows", len(rows)))

	requireFrench, _ := cmd.Flags().GetBool("require-french")
	excludeFile, _ := cmd.Flags().GetString("exclude-file")

	var blocked []*prefilter.Exclude

	ready, skipped := 0, 0
	for _, row := range rows {
		title := row.Get(sheets.ColTitle)
		description := row.Get(sheets.ColDescription)

		updates, kept := triageUpdates(title, description, requireFrench)
		if kept {
			ready++
		} else {
			skipped++
		}

		if !kept && excludeFile != "" && updates[sheets.ColJuniorOK] == "false" {
			blocked = append(blocked, &prefilter.Exclude{
				Company:    row.Get(sheets.ColCompany),
				URL:        row.Get(sheets.ColURL),
				ExcludedAt: time.Now(),
			})
		}

		if err := store.Update(ctx, row.Number, updates); err != nil {
			log.Fatal("updating row",
				zap.Error(err),
				zap.Int("row", row.Number),
				zap.String("job_id", row.Get(sheets.ColJobID)),
			)
		}
	}

	if excludeFile != "" && len(blocked) > 0 {
		if err := prefilter.AppendToFile(excludeFile, blocked); err != nil {
			log.Fatal("appending to exclude file", zap.Error(err), zap.String("file", excludeFile))
		}
		log.Info("companies appended to exclude file",
			zap.Int("count", len(blocked)),
			zap.String("file", excludeFile),
		)
	}

	log.Info("triage finished", zap.Int("ready", ready), zap.Int("skipped", skipped))
}

// triageUpdates computes the column updates for one NEW row and reports
// whether the posting stays in the pipeline. Junior hints in the text never
// affect the decision, only the notes.
func triageUpdates(title, description string, requireFrench bool) (map[string]string, bool) {
	decision := prefilter.Decide(title, description)
	language := prefilter.DetectLanguage(title + " " + description)
	languageOK := languageAcceptable(language, requireFrench)

	updates := map[string]string{
		sheets.ColJuniorOK:   strconv.FormatBool(decision.Keep),
		sheets.ColLanguage:   string(language),
		sheets.ColLanguageOK: strconv.FormatBool(languageOK),
	}
	if decision.YearsGuess > 0 {
		updates[sheets.ColYearsRequiredGuess] = strconv.Itoa(decision.YearsGuess)
	}

	switch {
	case !decision.Keep:
		updates[sheets.ColStatus] = sheets.StatusSkipped
		updates[sheets.ColNotes] = decision.Reason
		return updates, false
	case !languageOK:
		updates[sheets.ColStatus] = sheets.StatusSkipped
		updates[sheets.ColNotes] = "skipped: language mismatch (" + string(language) + ")"
		return updates, false
	default:
		updates[sheets.ColStatus] = sheets.StatusReadyLLM
		if prefilter.HasJuniorSignal(title + " " + description) {
			updates[sheets.ColNotes] = "junior signal in posting text"
		}
		return updates, true
	}
}

// languageAcceptable decides whether the posting's language works for the
// candidate. Unknown is accepted: detection misses are not a reason to drop
// a posting.
func languageAcceptable(language prefilter.Language, requireFrench bool) bool {
	if !requireFrench {
		return true
	}
	return language != prefilter.LanguageEN
}
