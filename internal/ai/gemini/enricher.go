// Package gemini implements application-material enrichment on top of the
// Gemini API. Each posting goes through three generation steps: an exhaustive
// master selection, a one-page compression of it, and a cover letter.
package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mkaddani/job-hunter/internal/ai"
	"github.com/mkaddani/job-hunter/internal/utils"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}

//go:embed prompts/cv_master.md
var cvMasterTemplate string

//go:embed prompts/cv_one_page.md
var cvOnePageTemplate string

//go:embed prompts/cover_letter.md
var coverLetterTemplate string

const defaultMaxLogLength = 200

type Enricher struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewEnricher(generator contentGenerator, logger *zap.Logger, maxLogLength int) *Enricher {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Enricher{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Enrich runs the three-step pipeline. The master step carries the fit
// reasoning and score; the one-page step supplies the CV content that ends up
// in the rendered documents.
func (e *Enricher) Enrich(ctx context.Context, input *ai.Input) (*ai.Enrichment, error) {
	if input == nil || input.Job == nil {
		return nil, fmt.Errorf("enrichment input and job are required")
	}

	masterRaw, err := e.generate(ctx, "cv_master", buildMasterPrompt(input))
	if err != nil {
		return nil, err
	}
	master, err := parseMaster(masterRaw)
	if err != nil {
		return nil, fmt.Errorf("cv_master step: %w", err)
	}

	masterJSON, err := json.MarshalIndent(masterPayload(master), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal master selection: %w", err)
	}

	onePageRaw, err := e.generate(ctx, "cv_one_page", buildOnePagePrompt(string(masterJSON)))
	if err != nil {
		return nil, err
	}
	onePage, err := parseMaster(onePageRaw)
	if err != nil {
		return nil, fmt.Errorf("cv_one_page step: %w", err)
	}

	letterRaw, err := e.generate(ctx, "cover_letter", buildCoverLetterPrompt(input, string(masterJSON)))
	if err != nil {
		return nil, err
	}
	letter, err := parseCoverLetter(letterRaw)
	if err != nil {
		return nil, fmt.Errorf("cover_letter step: %w", err)
	}

	return &ai.Enrichment{
		Summary:      onePage.summary,
		Experience:   onePage.experience,
		Projects:     onePage.projects,
		CoverLetter:  *letter,
		SkillsFocus:  onePage.skillsFocus,
		FitReasoning: master.fitReasoning,
		Score:        master.score,
		Raw:          masterRaw,
	}, nil
}

func (e *Enricher) generate(ctx context.Context, step, prompt string) (string, error) {
	e.logger.Debug("gemini generate content request",
		zap.String("step", step),
		zap.String("model", e.generator.Model()),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", utils.TruncateForLog(prompt, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%s step: %w", step, err)
	}

	e.logger.Debug("gemini generate content response",
		zap.String("step", step),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	return raw, nil
}

func buildMasterPrompt(input *ai.Input) string {
	prompt := strings.ReplaceAll(cvMasterTemplate, "{{JOB_TITLE}}", input.Job.Title)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", input.Job.Description)
	prompt = strings.ReplaceAll(prompt, "{{PROFILE_YML}}", input.ProfileYAML)
	prompt = strings.ReplaceAll(prompt, "{{EXPERIENCES_MD}}", input.ExperiencesMD)
	prompt = strings.ReplaceAll(prompt, "{{PROJECTS_MD}}", input.ProjectsMD)
	return prompt
}

func buildOnePagePrompt(masterJSON string) string {
	return strings.ReplaceAll(cvOnePageTemplate, "{{MASTER_JSON}}", masterJSON)
}

func buildCoverLetterPrompt(input *ai.Input, masterJSON string) string {
	prompt := strings.ReplaceAll(coverLetterTemplate, "{{JOB_TITLE}}", input.Job.Title)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", input.Job.Description)
	prompt = strings.ReplaceAll(prompt, "{{MASTER_JSON}}", masterJSON)
	return prompt
}

type masterDoc struct {
	summary      string
	experience   map[string][]string
	projects     []ai.Project
	skillsFocus  []string
	fitReasoning string
	score        *int
}

func masterPayload(doc *masterDoc) map[string]any {
	payload := map[string]any{
		"summary":      doc.summary,
		"experience":   doc.experience,
		"projects":     projectsPayload(doc.projects),
		"skills_focus": doc.skillsFocus,
	}
	if doc.fitReasoning != "" {
		payload["fit_reasoning"] = doc.fitReasoning
	}
	return payload
}

func projectsPayload(projects []ai.Project) []map[string]any {
	out := make([]map[string]any, 0, len(projects))
	for _, p := range projects {
		out = append(out, map[string]any{"name": p.Name, "bullets": p.Bullets})
	}
	return out
}

func parseMaster(raw string) (*masterDoc, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	doc := &masterDoc{
		summary:      coerceString(data["summary"]),
		experience:   coerceStringSliceMap(data["experience"]),
		skillsFocus:  coerceStringSlice(data["skills_focus"]),
		fitReasoning: coerceString(data["fit_reasoning"]),
		score:        coerceScore(data["score"]),
	}

	if rawProjects, ok := data["projects"].([]any); ok {
		for _, item := range rawProjects {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			doc.projects = append(doc.projects, ai.Project{
				Name:    coerceString(entry["name"]),
				Bullets: coerceStringSlice(entry["bullets"]),
			})
		}
	}

	return doc, nil
}

func parseCoverLetter(raw string) (*ai.CoverLetter, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	return &ai.CoverLetter{
		Intro: coerceString(data["intro"]),
		Body1: coerceString(data["body_1"]),
		Body2: coerceString(data["body_2"]),
		Body3: coerceString(data["body_3"]),
		Outro: coerceString(data["outro"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func coerceStringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s := coerceString(item); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func coerceStringSliceMap(v any) map[string][]string {
	entries, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	out := make(map[string][]string, len(entries))
	for key, value := range entries {
		out[key] = coerceStringSlice(value)
	}
	return out
}

func coerceScore(v any) *int {
	var f float64
	switch val := v.(type) {
	case float64:
		f = val
	case int:
		f = float64(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	score := int(math.Round(f))
	return &score
}
