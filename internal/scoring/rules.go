package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	maxArchitectureBonus = 20
	maxDomainBonus       = 10
	seniorityPenalty     = -20
	pointsPerMatch       = 5
)

// Senior-role indicators. Any single match disqualifies, so the check
// short-circuits before the years patterns are consulted.
var seniorKeywords = []*regexp.Regexp{
	regexp.MustCompile(`\bsenior\b`),
	regexp.MustCompile(`\blead\b`),
	regexp.MustCompile(`\bprincipal\b`),
	regexp.MustCompile(`\bstaff\b`),
	regexp.MustCompile(`\bmanager\b`),
	regexp.MustCompile(`\bhead of\b`),
	regexp.MustCompile(`\bconfirmed?\b`),
}

// Explicit years-of-experience figures, English and French surface forms.
var yearPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*\+?\s*(?:years?|yrs?)\b`),
	regexp.MustCompile(`(\d+)\s*\+?\s*(?:ans?|ann[eé]es?)\b`),
	regexp.MustCompile(`(?:minimum|at\s+least)\s+(\d+)\s*(?:years?|yrs?)\b`),
	regexp.MustCompile(`(?:minimum|au\s+moins)\s+(\d+)\s*(?:ans?|ann[eé]es?)\b`),
}

// ArchitectureBonus counts the profile's architecture keywords present in the
// job text, 5 points each, capped at 20.
func ArchitectureBonus(text string, profile *CandidateProfile) int {
	if profile == nil {
		return 0
	}
	return keywordBonus(text, profile.ArchitectureExperience, maxArchitectureBonus)
}

// DomainBonus counts the profile's business-domain keywords present in the
// job text, 5 points each, capped at 10.
func DomainBonus(text string, profile *CandidateProfile) int {
	if profile == nil {
		return 0
	}
	return keywordBonus(text, profile.DomainExposure, maxDomainBonus)
}

func keywordBonus(text string, keywords []string, limit int) int {
	norm := NormalizeText(text)
	matches := 0
	for _, keyword := range keywords {
		nk := NormalizeText(keyword)
		if nk != "" && strings.Contains(norm, nk) {
			matches++
		}
	}
	return clampInt(matches*pointsPerMatch, 0, limit)
}

// SeniorityPenalty returns -20 when the job looks senior: either a senior
// role keyword is present, or an explicit years figure exceeds maxYears. The
// penalty is flat and non-cumulative since the downstream apply-or-skip
// decision is binary. A job with no explicit years figure is assumed junior.
func SeniorityPenalty(text string, maxYears int) int {
	norm := NormalizeText(text)

	for _, keyword := range seniorKeywords {
		if keyword.MatchString(norm) {
			return seniorityPenalty
		}
	}

	for _, pattern := range yearPatterns {
		m := pattern.FindStringSubmatch(norm)
		if m == nil {
			continue
		}
		years, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if years > maxYears {
			return seniorityPenalty
		}
	}

	return 0
}
