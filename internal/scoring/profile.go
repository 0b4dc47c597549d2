package scoring

import (
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultMaxYears is the assumed candidate experience ceiling when the
// profile carries no parseable seniority figure.
const DefaultMaxYears = 2

// CandidateProfile describes the candidate as loaded from profile
// configuration. It is read-only to the scoring engine.
type CandidateProfile struct {
	TechnicalStack         *SkillNode `yaml:"technical_stack"`
	ArchitectureExperience []string   `yaml:"architecture_experience"`
	DomainExposure         []string   `yaml:"domain_exposure"`
	Seniority              *Seniority `yaml:"seniority"`
}

// Seniority carries the candidate's declared experience. The years figure is
// kept as a string and parsed leniently: an unparseable value falls back to
// DefaultMaxYears rather than failing.
type Seniority struct {
	TotalYearsExperience string
}

// UnmarshalYAML accepts the years figure as any scalar (quoted or not).
func (s *Seniority) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		TotalYearsExperience yaml.Node `yaml:"total_years_experience"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	s.TotalYearsExperience = raw.TotalYearsExperience.Value
	return nil
}

// SkillNode is one node of the profile's skill-category tree. A node is
// either a category (mapping to sub-nodes) or a leaf list of skill names.
// Unrecognized shapes decode to an empty node rather than an error.
type SkillNode struct {
	Children map[string]*SkillNode
	Skills   []string
}

// UnmarshalYAML decodes a mapping into Children and a sequence into Skills.
func (n *SkillNode) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.MappingNode:
		n.Children = make(map[string]*SkillNode, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			child := &SkillNode{}
			if err := child.UnmarshalYAML(value.Content[i+1]); err != nil {
				return err
			}
			n.Children[value.Content[i].Value] = child
		}
	case yaml.SequenceNode:
		for _, item := range value.Content {
			if item.Kind == yaml.ScalarNode {
				n.Skills = append(n.Skills, item.Value)
			}
		}
	}
	return nil
}

func (n *SkillNode) walk(fn func(skill string)) {
	if n == nil {
		return
	}
	for _, skill := range n.Skills {
		fn(skill)
	}
	for _, child := range n.Children {
		child.walk(fn)
	}
}

// FlattenProfileSkills collects every leaf skill of the profile's category
// tree into one normalized flat set, discarding the tier structure. A missing
// tree yields an empty set.
func FlattenProfileSkills(profile *CandidateProfile) SkillSet {
	skills := make(SkillSet)
	if profile == nil {
		return skills
	}
	profile.TechnicalStack.walk(skills.Add)
	return skills
}

// MaxYears returns the candidate's declared total years of experience, or
// DefaultMaxYears when the seniority section is absent or unparseable.
func (p *CandidateProfile) MaxYears() int {
	if p == nil || p.Seniority == nil {
		return DefaultMaxYears
	}
	years, err := strconv.Atoi(strings.TrimSpace(p.Seniority.TotalYearsExperience))
	if err != nil || years < 0 {
		return DefaultMaxYears
	}
	return years
}
