package prefilter

import (
	"strings"
	"testing"
)

func TestDecide(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		title       string
		description string
		keep        bool
		yearsGuess  int
		reasonHas   string
	}{
		{
			name:        "internship excluded",
			title:       "Data Engineering Internship",
			description: "six month intern position",
			keep:        false,
			reasonHas:   "internship",
		},
		{
			name:        "alternance excluded",
			title:       "Data Engineer en alternance",
			description: "contrat en alternance 12 mois",
			keep:        false,
			reasonHas:   "internship",
		},
		{
			name:        "senior role excluded before years check",
			title:       "Senior Data Engineer",
			description: "minimum 5 years experience",
			keep:        false,
			reasonHas:   "senior",
		},
		{
			name:        "explicit years above bound excluded",
			title:       "Data Engineer",
			description: "5+ years building pipelines",
			keep:        false,
			yearsGuess:  5,
			reasonHas:   "explicit years >2",
		},
		{
			name:        "explicit years within bound kept",
			title:       "Data Engineer",
			description: "2 years of experience with Airflow",
			keep:        true,
			yearsGuess:  2,
			reasonHas:   "explicit years <=2",
		},
		{
			name:        "no years assumed junior",
			title:       "Data Engineer",
			description: "build pipelines with Python and SQL",
			keep:        true,
			reasonHas:   "assumed junior",
		},
		{
			name:        "french years requirement",
			title:       "Ingenieur Data",
			description: "au moins 4 ans d'experience",
			keep:        false,
			yearsGuess:  4,
			reasonHas:   "excluded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decision := Decide(tt.title, tt.description)
			if decision.Keep != tt.keep {
				t.Fatalf("expected keep=%v, got %+v", tt.keep, decision)
			}
			if decision.YearsGuess != tt.yearsGuess {
				t.Fatalf("expected years guess %d, got %+v", tt.yearsGuess, decision)
			}
			if !strings.Contains(decision.Reason, tt.reasonHas) {
				t.Fatalf("expected reason containing %q, got %q", tt.reasonHas, decision.Reason)
			}
		})
	}
}

func TestHasJuniorSignal(t *testing.T) {
	t.Parallel()

	if !HasJuniorSignal("Junior data engineer, entry-level welcome") {
		t.Fatalf("expected junior signal")
	}
	if HasJuniorSignal("regular data engineer position") {
		t.Fatalf("did not expect junior signal")
	}
}

func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect Language
	}{
		{
			name:   "french",
			text:   "maitrise du francais exigee, niveau b2",
			expect: LanguageFR,
		},
		{
			name:   "english",
			text:   "fluent English required",
			expect: LanguageEN,
		},
		{
			name:   "both",
			text:   "francais courant et fluent english",
			expect: LanguageBoth,
		},
		{
			name:   "unknown",
			text:   "wir suchen einen Dateningenieur",
			expect: LanguageUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectLanguage(tt.text); got != tt.expect {
				t.Fatalf("expected %s, got %s", tt.expect, got)
			}
		})
	}
}
