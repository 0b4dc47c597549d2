// Package profile loads the candidate's documents from disk: the structured
// profile and the free-form experience and project writeups the enrichment
// prompts consume verbatim.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mkaddani/job-hunter/internal/scoring"
)

const (
	profileFile     = "profile.yml"
	experiencesFile = "experiences.md"
	projectsFile    = "projects.md"
)

// Load parses the candidate profile from a YAML file.
func Load(path string) (*scoring.CandidateProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}

	var p scoring.CandidateProfile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("profile: parse %s: %w", path, err)
	}
	return &p, nil
}

// Documents are the raw candidate files passed to the enrichment prompts.
type Documents struct {
	ProfileYAML   string
	ExperiencesMD string
	ProjectsMD    string
}

// LoadDocuments reads profile.yml, experiences.md and projects.md from dir.
// The profile is required; the markdown documents may be absent.
func LoadDocuments(dir string) (*Documents, error) {
	profileYAML, err := os.ReadFile(filepath.Join(dir, profileFile))
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", profileFile, err)
	}

	docs := &Documents{ProfileYAML: string(profileYAML)}

	if data, err := os.ReadFile(filepath.Join(dir, experiencesFile)); err == nil {
		docs.ExperiencesMD = string(data)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("profile: read %s: %w", experiencesFile, err)
	}

	if data, err := os.ReadFile(filepath.Join(dir, projectsFile)); err == nil {
		docs.ProjectsMD = string(data)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("profile: read %s: %w", projectsFile, err)
	}

	return docs, nil
}
