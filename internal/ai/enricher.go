// Package ai defines the contract between the pipeline and the model-backed
// enrichment step. Implementations live in subpackages; the scoring engine
// never sees anything from here except the final integer score.
package ai

import (
	"context"

	"github.com/mkaddani/job-hunter/internal/scoring"
)

// Input carries the candidate documents and the posting being applied to.
type Input struct {
	ProfileYAML   string
	ExperiencesMD string
	ProjectsMD    string
	Job           *scoring.JobPosting
}

// Project is one portfolio entry tailored to the posting.
type Project struct {
	Name    string
	Bullets []string
}

// CoverLetter holds the letter broken into template slots.
type CoverLetter struct {
	Intro string
	Body1 string
	Body2 string
	Body3 string
	Outro string
}

// Enrichment is the model's tailored application material for one posting.
// Experience maps a company key (as it appears in the CV template) to the
// bullet points selected for it. Score is the model's 0-100 fit estimate,
// nil when the model declined to give one.
type Enrichment struct {
	Summary      string
	Experience   map[string][]string
	Projects     []Project
	CoverLetter  CoverLetter
	SkillsFocus  []string
	FitReasoning string
	Score        *int
	Raw          string
}

type Enricher interface {
	Enrich(ctx context.Context, input *Input) (*Enrichment, error)
}
