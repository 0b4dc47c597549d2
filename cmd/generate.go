package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mkaddani/job-hunter/internal/ai"
	"github.com/mkaddani/job-hunter/internal/drive"
	"github.com/mkaddani/job-hunter/internal/latex"
	"github.com/mkaddani/job-hunter/internal/logger"
	"github.com/mkaddani/job-hunter/internal/profile"
	"github.com/mkaddani/job-hunter/internal/scoring"
	"github.com/mkaddani/job-hunter/internal/sheets"
	"github.com/mkaddani/job-hunter/internal/utils"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptYes = "Yes"
	PromptNo  = "No"

	cvTemplateFile    = "cv.tex"
	coverTemplateFile = "cover_letter.tex"

	generatePause = 2 * time.Second
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate tailored CV and cover letter documents for scored rows",
	Run: func(cmd *cobra.Command, _ []string) {
		generate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("job-id", "", "generate documents for one specific row")
	generateCmd.Flags().Int("min-score", 60, "only generate for rows with at least this final score")
	generateCmd.Flags().Int("limit", 5, "maximum number of rows to process in one run")
	generateCmd.Flags().BoolP("auto-approve", "y", false, "do not ask for confirmation before uploading documents")
}

func generate(cmd *cobra.Command) {
	ctx := context.Background()

	log := newLogger()

	config, err := getConfig()
	if err != nil {
		log.Fatal("getting a config", zap.Error(err))
	}
	if config == nil || config.Latex == nil || config.Latex.TemplatesDir == "" {
		log.Fatal("latex.templates-dir is required in the configuration")
	}

	candidate, docs, err := loadProfile(config)
	if err != nil {
		log.Fatal("loading candidate profile", zap.Error(err))
	}

	cvTemplate, coverTemplate, err := loadTemplates(config.Latex.TemplatesDir)
	if err != nil {
		log.Fatal("loading latex templates", zap.Error(err))
	}

	enricher, err := newEnricher(ctx, config, log)
	if err != nil {
		log.Fatal("building enricher", zap.Error(err))
	}

	var uploader *drive.Uploader
	if config.Drive != nil && config.Drive.FolderID != "" {
		uploader, err = drive.NewUploader(ctx, log, config.Drive.FolderID, config.Drive.CredentialsFile)
		if err != nil {
			log.Fatal("opening drive", zap.Error(err))
		}
	}

	store, err := newStore(ctx, config, log)
	if err != nil {
		log.Fatal("opening sheet", zap.Error(err))
	}

	rows, err := store.RowsWithStatus(ctx, sheets.StatusScored)
	if err != nil {
		log.Fatal("reading rows", zap.Error(err))
	}

	rows = selectRows(cmd, rows)
	if len(rows) == 0 {
		log.Info("exiting", zap.String("reason", "no scored rows match the selection"))
		return
	}

	log.Info("starting generation", zap.Int("rows", len(rows)))

	engine := newEngine(config)
	autoApprove, _ := cmd.Flags().GetBool("auto-approve")

	for i, row := range rows {
		if i > 0 {
			if err := utils.WaitFor(ctx, generatePause); err != nil {
				log.Fatal("generation interrupted", zap.Error(err))
			}
		}

		rowLog := logger.WithJob(log, row.Get(sheets.ColJobID), row.Get(sheets.ColTitle))
		if err := generateRow(ctx, generateDeps{
			store:         store,
			engine:        engine,
			enricher:      enricher,
			uploader:      uploader,
			candidate:     candidate,
			docs:          docs,
			cvTemplate:    cvTemplate,
			coverTemplate: coverTemplate,
			outputDir:     config.Latex.OutputDir,
			compile:       config.Latex.Compile,
			autoApprove:   autoApprove,
			logger:        rowLog,
		}, row); err != nil {
			rowLog.Error("generation failed", zap.Error(err))
		}
	}

	log.Info("generation finished")
}

type generateDeps struct {
	store         *sheets.Store
	engine        *scoring.Engine
	enricher      ai.Enricher
	uploader      *drive.Uploader
	candidate     *scoring.CandidateProfile
	docs          *profile.Documents
	cvTemplate    string
	coverTemplate string
	outputDir     string
	compile       bool
	autoApprove   bool
	logger        *zap.Logger
}

func generateRow(ctx context.Context, deps generateDeps, row *sheets.Row) error {
	job := &scoring.JobPosting{
		Title:       row.Get(sheets.ColTitle),
		Description: row.Get(sheets.ColDescription),
	}

	enrichment, err := deps.enricher.Enrich(ctx, &ai.Input{
		ProfileYAML:   deps.docs.ProfileYAML,
		ExperiencesMD: deps.docs.ExperiencesMD,
		ProjectsMD:    deps.docs.ProjectsMD,
		Job:           job,
	})
	if err != nil {
		return fmt.Errorf("enrich: %w", err)
	}

	hybrid, err := deps.engine.ComputeHybridScore(deps.candidate, job, enrichment.Score)
	if err != nil {
		return fmt.Errorf("score: %w", err)
	}

	cvTex := latex.RenderCV(deps.cvTemplate, job.Title, enrichment)
	coverTex := latex.RenderCover(deps.coverTemplate, job.Title, &enrichment.CoverLetter)

	outDir := deps.outputDir
	if outDir == "" {
		outDir = "out"
	}
	outDir = filepath.Join(outDir, slug(row.Get(sheets.ColCompany), job.Title))

	cvPath, err := writeDocument(ctx, deps, cvTex, outDir, "cv")
	if err != nil {
		return err
	}
	coverPath, err := writeDocument(ctx, deps, coverTex, outDir, "cover_letter")
	if err != nil {
		return err
	}

	deps.logger.Info("documents generated",
		zap.String("cv", cvPath),
		zap.String("cover_letter", coverPath),
		zap.Int("final_score", hybrid.FinalScore),
	)

	updates := scoreUpdates(hybrid)
	updates[sheets.ColStatus] = sheets.StatusGenerated
	if enrichment.FitReasoning != "" {
		updates[sheets.ColNotes] = enrichment.FitReasoning
	}

	if deps.uploader != nil && confirmUpload(deps) {
		links := make([]string, 0, 2)
		for _, path := range []string{cvPath, coverPath} {
			link, err := deps.uploader.Upload(ctx, path)
			if err != nil {
				return fmt.Errorf("upload %s: %w", path, err)
			}
			links = append(links, link)
		}
		updates[sheets.ColNotes] = strings.TrimSpace(updates[sheets.ColNotes] + "\n" + strings.Join(links, "\n"))
	}

	return deps.store.Update(ctx, row.Number, updates)
}

// writeDocument renders the .tex file and, when compilation is enabled,
// produces the PDF. Returns the path of the artifact to upload.
func writeDocument(ctx context.Context, deps generateDeps, texSource, outDir, baseName string) (string, error) {
	if deps.compile {
		return latex.Compile(ctx, deps.logger, texSource, outDir, baseName)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	texPath := filepath.Join(outDir, baseName+".tex")
	if err := os.WriteFile(texPath, []byte(texSource), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", texPath, err)
	}
	return texPath, nil
}

func confirmUpload(deps generateDeps) bool {
	if deps.autoApprove {
		return true
	}

	prompt := promptui.Select{
		Label: "Upload generated documents to Drive?",
		Items: []string{PromptYes, PromptNo},
	}
	_, action, err := prompt.Run()
	if err != nil {
		deps.logger.Warn("prompt aborted, skipping upload", zap.Error(err))
		return false
	}
	return action == PromptYes
}

func selectRows(cmd *cobra.Command, rows []*sheets.Row) []*sheets.Row {
	jobID, _ := cmd.Flags().GetString("job-id")
	minScore, _ := cmd.Flags().GetInt("min-score")
	limit, _ := cmd.Flags().GetInt("limit")

	var selected []*sheets.Row
	for _, row := range rows {
		if jobID != "" {
			if row.Get(sheets.ColJobID) == jobID {
				return []*sheets.Row{row}
			}
			continue
		}

		score, err := strconv.Atoi(row.Get(sheets.ColFinalScore))
		if err != nil || score < minScore {
			continue
		}
		selected = append(selected, row)
		if limit > 0 && len(selected) == limit {
			break
		}
	}
	return selected
}

func loadTemplates(dir string) (cv string, cover string, err error) {
	cvData, err := os.ReadFile(filepath.Join(dir, cvTemplateFile))
	if err != nil {
		return "", "", fmt.Errorf("read cv template: %w", err)
	}
	coverData, err := os.ReadFile(filepath.Join(dir, coverTemplateFile))
	if err != nil {
		return "", "", fmt.Errorf("read cover letter template: %w", err)
	}
	return string(cvData), string(coverData), nil
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// slug builds a filesystem-friendly directory name from company and title.
func slug(parts ...string) string {
	joined := strings.ToLower(strings.Join(parts, " "))
	joined = slugUnsafe.ReplaceAllString(joined, "-")
	joined = strings.Trim(joined, "-")
	if joined == "" {
		return "job"
	}
	if len(joined) > 80 {
		joined = joined[:80]
	}
	return joined
}
