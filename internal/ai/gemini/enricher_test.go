package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mkaddani/job-hunter/internal/ai"
	"github.com/mkaddani/job-hunter/internal/scoring"
	"go.uber.org/zap"
)

type stubGenerator struct {
	responses []string
	err       error
	prompts   []string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if s.err != nil {
		return "", s.err
	}
	idx := len(s.prompts) - 1
	if idx >= len(s.responses) {
		return "", errors.New("stub: no response configured")
	}
	return s.responses[idx], nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

const masterResponse = `{
  "summary": "Data engineer with strong Python and Airflow background.",
  "experience": {"ACME": ["Built ingestion DAGs in Airflow", "Cut warehouse costs 30%"]},
  "projects": [{"name": "Pipeline Kit", "bullets": ["Open-source ELT toolkit"]}],
  "skills_focus": ["python", "airflow", "bigquery"],
  "fit_reasoning": "Stack matches almost fully.",
  "score": 82
}`

const onePageResponse = `{
  "summary": "Data engineer, Python and Airflow.",
  "experience": {"ACME": ["Built ingestion DAGs in Airflow"]},
  "projects": [{"name": "Pipeline Kit", "bullets": ["Open-source ELT toolkit"]}],
  "skills_focus": ["python", "airflow"]
}`

const letterResponse = "```json\n" + `{
  "intro": "I am applying for the Data Engineer position.",
  "body_1": "At ACME I built ingestion DAGs.",
  "body_2": "My Pipeline Kit project covers ELT.",
  "body_3": "I work daily with Python and Airflow.",
  "outro": "Available immediately."
}` + "\n```"

func testInput() *ai.Input {
	return &ai.Input{
		ProfileYAML:   "technical_stack:\n  languages: [python]\n",
		ExperiencesMD: "## ACME\n- built pipelines\n",
		ProjectsMD:    "## Pipeline Kit\n- ELT toolkit\n",
		Job: &scoring.JobPosting{
			Title:       "Data Engineer",
			Description: "Python, Airflow, BigQuery.",
		},
	}
}

func TestEnrichRunsThreeSteps(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{responses: []string{masterResponse, onePageResponse, letterResponse}}
	enricher := NewEnricher(stub, zap.NewNop(), 0)

	enrichment, err := enricher.Enrich(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(stub.prompts) != 3 {
		t.Fatalf("expected 3 generation calls, got %d", len(stub.prompts))
	}

	if !strings.Contains(stub.prompts[0], "Python, Airflow, BigQuery.") {
		t.Fatalf("master prompt missing job description: %s", stub.prompts[0])
	}
	if !strings.Contains(stub.prompts[1], "Built ingestion DAGs in Airflow") {
		t.Fatalf("one-page prompt missing master selection: %s", stub.prompts[1])
	}
	if !strings.Contains(stub.prompts[2], "Data Engineer") {
		t.Fatalf("cover letter prompt missing job title: %s", stub.prompts[2])
	}

	if enrichment.Summary != "Data engineer, Python and Airflow." {
		t.Fatalf("expected one-page summary, got %q", enrichment.Summary)
	}
	if got := enrichment.Experience["ACME"]; len(got) != 1 || got[0] != "Built ingestion DAGs in Airflow" {
		t.Fatalf("unexpected experience bullets: %v", got)
	}
	if len(enrichment.Projects) != 1 || enrichment.Projects[0].Name != "Pipeline Kit" {
		t.Fatalf("unexpected projects: %v", enrichment.Projects)
	}
	if enrichment.CoverLetter.Intro != "I am applying for the Data Engineer position." {
		t.Fatalf("unexpected cover letter intro: %q", enrichment.CoverLetter.Intro)
	}
	if enrichment.FitReasoning != "Stack matches almost fully." {
		t.Fatalf("expected master fit reasoning, got %q", enrichment.FitReasoning)
	}
	if enrichment.Score == nil || *enrichment.Score != 82 {
		t.Fatalf("expected score 82, got %v", enrichment.Score)
	}
}

func TestEnrichScoreOptional(t *testing.T) {
	t.Parallel()

	noScore := `{"summary": "s", "experience": {}, "projects": [], "skills_focus": [], "fit_reasoning": "r"}`
	stub := &stubGenerator{responses: []string{noScore, onePageResponse, letterResponse}}
	enricher := NewEnricher(stub, zap.NewNop(), 0)

	enrichment, err := enricher.Enrich(context.Background(), testInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if enrichment.Score != nil {
		t.Fatalf("expected nil score, got %d", *enrichment.Score)
	}
}

func TestEnrichGeneratorError(t *testing.T) {
	t.Parallel()

	stub := &stubGenerator{err: errors.New("quota exceeded")}
	enricher := NewEnricher(stub, zap.NewNop(), 0)

	if _, err := enricher.Enrich(context.Background(), testInput()); err == nil {
		t.Fatalf("expected error from generator")
	}
}

func TestParseMasterHandlesCodeBlockAndStringScore(t *testing.T) {
	t.Parallel()

	raw := "```json\n{\"summary\": \"s\", \"score\": \"75\"}\n```"
	doc, err := parseMaster(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.summary != "s" {
		t.Fatalf("unexpected summary: %q", doc.summary)
	}
	if doc.score == nil || *doc.score != 75 {
		t.Fatalf("expected score 75, got %v", doc.score)
	}
}

func TestCoerceScore(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input any
		want  *int
	}{
		{"float", 61.4, intPtr(61)},
		{"string", " 88 ", intPtr(88)},
		{"garbage string", "high", nil},
		{"nil", nil, nil},
		{"bool", true, nil},
	}
	for _, tc := range cases {
		got := coerceScore(tc.input)
		switch {
		case tc.want == nil && got != nil:
			t.Errorf("%s: expected nil, got %d", tc.name, *got)
		case tc.want != nil && (got == nil || *got != *tc.want):
			t.Errorf("%s: expected %d, got %v", tc.name, *tc.want, got)
		}
	}
}

func intPtr(v int) *int { return &v }
