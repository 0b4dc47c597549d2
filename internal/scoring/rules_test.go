package scoring

import "testing"

func TestArchitectureBonus(t *testing.T) {
	t.Parallel()

	profile := &CandidateProfile{
		ArchitectureExperience: []string{"Lakehouse", "medallion architecture", "event-driven", "data mesh", "CQRS"},
	}

	tests := []struct {
		name   string
		text   string
		expect int
	}{
		{
			name:   "no matches",
			text:   "plain job text",
			expect: 0,
		},
		{
			name:   "single match",
			text:   "we operate a lakehouse platform",
			expect: 5,
		},
		{
			name:   "case-insensitive match",
			text:   "we follow the Medallion   Architecture pattern",
			expect: 5,
		},
		{
			name:   "capped at 20",
			text:   "lakehouse medallion architecture event-driven data mesh cqrs",
			expect: 20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ArchitectureBonus(tt.text, profile); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}

	if got := ArchitectureBonus("lakehouse", &CandidateProfile{}); got != 0 {
		t.Fatalf("missing keyword list should be treated as empty, got %d", got)
	}
}

func TestDomainBonusCappedAtTen(t *testing.T) {
	t.Parallel()

	profile := &CandidateProfile{
		DomainExposure: []string{"insurance", "banking", "retail"},
	}

	got := DomainBonus("insurance banking retail company", profile)
	if got != 10 {
		t.Fatalf("expected cap of 10, got %d", got)
	}
}

func TestSeniorityPenalty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		text     string
		maxYears int
		expect   int
	}{
		{
			name:     "junior text",
			text:     "junior data engineer, great team",
			maxYears: 2,
			expect:   0,
		},
		{
			name:     "senior keyword short-circuits before years check",
			text:     "Senior Data Engineer, minimum 5 years experience",
			maxYears: 10,
			expect:   -20,
		},
		{
			name:     "lead keyword",
			text:     "lead the data platform team",
			maxYears: 2,
			expect:   -20,
		},
		{
			name:     "french confirmed keyword",
			text:     "data engineer confirme",
			maxYears: 2,
			expect:   -20,
		},
		{
			name:     "years above bound",
			text:     "3+ years of production experience",
			maxYears: 2,
			expect:   -20,
		},
		{
			name:     "years within bound",
			text:     "2 years of experience required",
			maxYears: 2,
			expect:   0,
		},
		{
			name:     "french years above bound",
			text:     "au moins 5 ans en ingenierie des donnees",
			maxYears: 2,
			expect:   -20,
		},
		{
			name:     "french annees form",
			text:     "4 années d'expérience",
			maxYears: 2,
			expect:   -20,
		},
		{
			name:     "no explicit years is assumed junior",
			text:     "data engineer for our growing platform",
			maxYears: 2,
			expect:   0,
		},
		{
			name:     "declared profile years raise the bound",
			text:     "minimum 4 years with airflow",
			maxYears: 5,
			expect:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := SeniorityPenalty(tt.text, tt.maxYears); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}
