package scoring

import "testing"

func TestExtractJobSkills(t *testing.T) {
	t.Parallel()

	vocab := DefaultVocabulary()

	tests := []struct {
		name   string
		text   string
		expect []string
		absent []string
	}{
		{
			name:   "data engineer stack",
			text:   "Data Engineer with Airflow, Python, AWS, Docker",
			expect: []string{"airflow", "aws", "docker", "python"},
			absent: []string{"sql", "spark"},
		},
		{
			name:   "synonyms map to canonical names",
			text:   "Experience with Google Cloud, K8s and PowerBI required",
			expect: []string{"gcp", "kubernetes", "power bi"},
		},
		{
			name:   "compound terms survive whitespace variance",
			text:   "We run Spark   Structured\nStreaming on Databricks",
			expect: []string{"databricks", "spark", "spark structured streaming"},
		},
		{
			name:   "no recognizable skills",
			text:   "Looking for a friendly office assistant",
			expect: []string{},
			absent: []string{"python"},
		},
		{
			name:   "substring match is permissive by design",
			text:   "Experience with javascript frameworks",
			expect: []string{"java"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			found := vocab.ExtractJobSkills(tt.text)
			for _, skill := range tt.expect {
				if !found.Has(skill) {
					t.Fatalf("expected %q in %v", skill, found.Sorted())
				}
			}
			for _, skill := range tt.absent {
				if found.Has(skill) {
					t.Fatalf("did not expect %q in %v", skill, found.Sorted())
				}
			}
		})
	}
}

func TestExtractJobSkillsWithMinimalVocabulary(t *testing.T) {
	t.Parallel()

	vocab := NewVocabulary(
		[]string{"go"},
		map[string]string{`\bgolang\b`: "go"},
	)

	found := vocab.ExtractJobSkills("Golang developer wanted")
	if !found.Has("go") {
		t.Fatalf("synonym rule should resolve golang to go, got %v", found.Sorted())
	}
	if found.Len() != 1 {
		t.Fatalf("duplicates must collapse, got %v", found.Sorted())
	}
}
