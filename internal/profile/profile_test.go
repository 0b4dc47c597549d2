package profile

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleProfile = `technical_stack:
  languages:
    - python
    - sql
  orchestration:
    - airflow
architecture_experience:
  - medallion architecture
domain_exposure:
  - finance
seniority:
  level: junior
  total_years_experience: 2
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "profile.yml", sampleProfile)

	p, err := Load(filepath.Join(dir, "profile.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := p.MaxYears(); got != 2 {
		t.Fatalf("expected max years 2, got %d", got)
	}
	if len(p.ArchitectureExperience) != 1 {
		t.Fatalf("unexpected architecture experience: %v", p.ArchitectureExperience)
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yml")); err == nil {
		t.Fatalf("expected error for missing profile")
	}
}

func TestLoadDocuments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "profile.yml", sampleProfile)
	writeFile(t, dir, "experiences.md", "## ACME\n- built pipelines\n")

	docs, err := LoadDocuments(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if docs.ProfileYAML == "" {
		t.Fatalf("expected profile yaml to be loaded")
	}
	if docs.ExperiencesMD == "" {
		t.Fatalf("expected experiences to be loaded")
	}
	if docs.ProjectsMD != "" {
		t.Fatalf("expected missing projects to read empty, got %q", docs.ProjectsMD)
	}
}

func TestLoadDocumentsRequiresProfile(t *testing.T) {
	t.Parallel()

	if _, err := LoadDocuments(t.TempDir()); err == nil {
		t.Fatalf("expected error when profile.yml is absent")
	}
}
