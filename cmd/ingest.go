package cmd

import (
	"context"
	"strconv"
	"time"

	"github.com/mkaddani/job-hunter/internal/adzuna"
	"github.com/mkaddani/job-hunter/internal/prefilter"
	"github.com/mkaddani/job-hunter/internal/sheets"
	"github.com/mkaddani/job-hunter/internal/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pagePause keeps the connector under the Adzuna free-tier rate limit.
const pagePause = time.Second

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Fetch postings from the job board and append new ones to the sheet",
	Run: func(cmd *cobra.Command, _ []string) {
		ingest(cmd)
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().Int("pages", 0, "number of result pages to fetch (overrides search.pages)")
	ingestCmd.Flags().String("query", "", "search query (overrides search.query)")
	ingestCmd.Flags().StringP("exclude-file", "e", "", "blocklist file with companies and urls to never ingest")
}

func ingest(cmd *cobra.Command) {
	ctx := context.Background()

	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}
	if config == nil || config.Search == nil {
		log.Fatal("search section is required in the configuration")
	}

	query := config.Search.Query
	if flag, _ := cmd.Flags().GetString("query"); flag != "" {
		query = flag
	}
	if query == "" {
		log.Fatal("search.query is required")
	}

	pages := config.Search.Pages
	if flag, _ := cmd.Flags().GetInt("pages"); flag > 0 {
		pages = flag
	}
	if pages < 1 {
		pages = 1
	}

	excludes := &prefilter.Excludes{}
	if excludeFile, _ := cmd.Flags().GetString("exclude-file"); excludeFile != "" {
		excludes, err = prefilter.GetExcludesFromFile(excludeFile)
		if err != nil {
			log.Fatal("loading exclude file", zap.Error(err), zap.String("path", excludeFile))
		}
	}

	client, err := newAdzunaClient(config, log)
	if err != nil {
		log.Fatal("building adzuna client", zap.Error(err))
	}

	store, err := newStore(ctx, config, log)
	if err != nil {
		log.Fatal("opening sheet", zap.Error(err))
	}
	if err := store.Init(ctx); err != nil {
		log.Fatal("initializing sheet", zap.Error(err))
	}

	existing, err := store.ExistingJobIDs(ctx)
	if err != nil {
		log.Fatal("reading existing job ids", zap.Error(err))
	}

	log.Info("starting ingestion",
		zap.String("query", query),
		zap.Int("pages", pages),
		zap.Int("existing", len(existing)),
	)

	var records []map[string]string
	seen := make(map[string]struct{})
	for page := 1; page <= pages; page++ {
		postings, err := client.Search(ctx, adzuna.SearchParams{
			Country:        config.Search.Country,
			Query:          query,
			Page:           page,
			ResultsPerPage: config.Search.ResultsPerPage,
		})
		if err != nil {
			log.Fatal("fetching postings", zap.Error(err), zap.Int("page", page))
		}

		for _, posting := range postings {
			if excludes.Matches(posting.Company.DisplayName, posting.URL()) {
				continue
			}
			id := adzuna.JobID(adzuna.Source, posting.URL())
			if _, ok := existing[id]; ok {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}

			records = append(records, newRecord(id, posting, config.Search.Country))
		}

		if page < pages {
			if err := utils.WaitFor(ctx, pagePause); err != nil {
				log.Fatal("ingestion interrupted", zap.Error(err))
			}
		}
	}

	if err := store.Append(ctx, records); err != nil {
		log.Fatal("appending rows", zap.Error(err))
	}

	log.Info("ingestion finished", zap.Int("new", len(records)))
}

func newRecord(id string, posting *adzuna.Posting, country string) map[string]string {
	decision := prefilter.Decide(posting.Title, posting.Description)

	record := map[string]string{
		sheets.ColJobID:        id,
		sheets.ColStatus:       sheets.StatusNew,
		sheets.ColTitle:        posting.Title,
		sheets.ColDescription:  posting.Description,
		sheets.ColCompany:      posting.Company.DisplayName,
		sheets.ColCity:         posting.City(),
		sheets.ColCountry:      country,
		sheets.ColContractType: posting.ContractType,
		sheets.ColPublishedAt:  posting.Created,
		sheets.ColURL:          posting.URL(),
		sheets.ColSource:       adzuna.Source,
		sheets.ColJuniorOK:     strconv.FormatBool(decision.Keep),
	}
	if decision.YearsGuess > 0 {
		record[sheets.ColYearsRequiredGuess] = strconv.Itoa(decision.YearsGuess)
	}
	if !decision.Keep {
		record[sheets.ColNotes] = decision.Reason
	}
	return record
}
