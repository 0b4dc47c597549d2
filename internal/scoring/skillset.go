package scoring

import "sort"

// SkillSet is a set of canonical skill tokens. Every token is normalized on
// insertion, so membership tests never depend on casing or spacing.
type SkillSet map[string]struct{}

// NewSkillSet builds a set from the provided skills, normalizing each one.
func NewSkillSet(skills ...string) SkillSet {
	s := make(SkillSet, len(skills))
	for _, skill := range skills {
		s.Add(skill)
	}
	return s
}

// Add normalizes the skill and inserts it. Tokens that normalize to the empty
// string are dropped.
func (s SkillSet) Add(skill string) {
	norm := NormalizeText(skill)
	if norm == "" {
		return
	}
	s[norm] = struct{}{}
}

// Has reports whether the normalized form of skill is in the set.
func (s SkillSet) Has(skill string) bool {
	_, ok := s[NormalizeText(skill)]
	return ok
}

// Len returns the number of skills in the set.
func (s SkillSet) Len() int {
	return len(s)
}

// Sorted returns the skills in stable lexicographic order.
func (s SkillSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for skill := range s {
		out = append(out, skill)
	}
	sort.Strings(out)
	return out
}
