package cmd

import (
	"testing"

	"github.com/mkaddani/job-hunter/internal/sheets"
)

func TestTriageUpdates(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name          string
		title         string
		description   string
		requireFrench bool
		kept          bool
		status        string
		yearsGuess    string
		notes         string
	}{
		{
			name:        "senior posting skipped",
			title:       "Senior Data Engineer",
			description: "Lead the platform team",
			kept:        false,
			status:      sheets.StatusSkipped,
			notes:       "excluded: senior role indicators",
		},
		{
			name:        "years requirement lands in the sheet as a number",
			title:       "Data Engineer",
			description: "We require 5+ years of experience with Spark",
			kept:        false,
			status:      sheets.StatusSkipped,
			yearsGuess:  "5",
		},
		{
			name:        "junior posting marked ready with a junior note",
			title:       "Junior Data Engineer",
			description: "Entry-level role, 2 years experience welcome",
			kept:        true,
			status:      sheets.StatusReadyLLM,
			yearsGuess:  "2",
			notes:       "junior signal in posting text",
		},
		{
			name:          "english posting skipped when french is required",
			title:         "Data Engineer",
			description:   "Fluent English required, you will build and maintain our data pipelines",
			requireFrench: true,
			kept:          false,
			status:        sheets.StatusSkipped,
			notes:         "skipped: language mismatch (EN)",
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			updates, kept := triageUpdates(c.title, c.description, c.requireFrench)
			if kept != c.kept {
				t.Fatalf("expected kept=%t, got %t (updates %v)", c.kept, kept, updates)
			}
			if updates[sheets.ColStatus] != c.status {
				t.Fatalf("expected status %q, got %q", c.status, updates[sheets.ColStatus])
			}
			if updates[sheets.ColYearsRequiredGuess] != c.yearsGuess {
				t.Fatalf("expected years guess %q, got %q", c.yearsGuess, updates[sheets.ColYearsRequiredGuess])
			}
			if c.notes != "" && updates[sheets.ColNotes] != c.notes {
				t.Fatalf("expected notes %q, got %q", c.notes, updates[sheets.ColNotes])
			}
		})
	}
}
