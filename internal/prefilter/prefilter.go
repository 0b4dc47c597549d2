// Package prefilter implements the coarse keyword pre-filter applied to
// incoming job postings before scoring: internships and alternance contracts
// are always excluded, senior roles are excluded, and explicit experience
// requirements above the junior bound are excluded. Matching is plain
// substring/regex containment without word-boundary guarantees everywhere;
// partial-word false positives are an accepted tradeoff of this design.
package prefilter

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/mkaddani/job-hunter/internal/scoring"
)

// MaxJuniorYears is the most experience a posting may require and still be
// considered junior.
const MaxJuniorYears = 2

var internshipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bintern\b`),
	regexp.MustCompile(`\binternship\b`),
	regexp.MustCompile(`\bstage\b`),
	regexp.MustCompile(`\balternance\b`),
	regexp.MustCompile(`\bapprenticeship\b`),
	regexp.MustCompile(`\bapprenti\b`),
	regexp.MustCompile(`\bapprentissage\b`),
	regexp.MustCompile(`\btrainee\b`),
}

var seniorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bsenior\b`),
	regexp.MustCompile(`\blead\b`),
	regexp.MustCompile(`\bstaff\b`),
	regexp.MustCompile(`\bprincipal\b`),
	regexp.MustCompile(`\bexpert\b`),
	regexp.MustCompile(`\bconfirmed?\b`),
	regexp.MustCompile(`\bmanager\b`),
	regexp.MustCompile(`\bhead of\b`),
}

var juniorPositivePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bjunior\b`),
	regexp.MustCompile(`\bentry[- ]level\b`),
	regexp.MustCompile(`\bgraduate\b`),
	regexp.MustCompile(`\bd[ée]butant\b`),
	regexp.MustCompile(`\bpremi[eè]re exp[eé]rience\b`),
	regexp.MustCompile(`\b0\s*[-–]\s*2\b`),
	regexp.MustCompile(`\b0\s*to\s*2\b`),
}

var yearsPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*\+?\s*(?:years?|yrs?)\b`),
	regexp.MustCompile(`(\d+)\s*\+?\s*(?:ans?|ann[eé]es?)\b`),
	regexp.MustCompile(`(\d+)\s*\+?\s*(?:years?|yrs?|ans?|ann[eé]es?)\s+(?:of\s+)?exp[eé]rience\b`),
	regexp.MustCompile(`(?:minimum|at\s+least)\s+(\d+)\s*(?:years?|yrs?)\b`),
	regexp.MustCompile(`(?:minimum|au\s+moins)\s+(\d+)\s*(?:ans?|ann[eé]es?)\b`),
}

// Decision is the outcome of the pre-filter for one posting. YearsGuess is 0
// when the text carries no explicit years requirement.
type Decision struct {
	Keep       bool
	YearsGuess int
	Reason     string
}

// Decide applies the exclusion rules to the combined title and description.
// Postings with no explicit years requirement are assumed junior and kept.
func Decide(title, description string) Decision {
	full := scoring.NormalizeText(title + " " + description)

	if matchesAny(full, internshipPatterns) {
		return Decision{Keep: false, Reason: "excluded: internship/alternance/apprenticeship detected"}
	}

	if matchesAny(full, seniorPatterns) {
		return Decision{Keep: false, Reason: "excluded: senior role indicators"}
	}

	years, evidence, found := ExtractYearsRequired(full)
	if !found {
		return Decision{Keep: true, Reason: "kept: no explicit years found (assumed junior)"}
	}
	if years <= MaxJuniorYears {
		return Decision{
			Keep:       true,
			YearsGuess: years,
			Reason:     fmt.Sprintf("kept: explicit years <=%d (%s)", MaxJuniorYears, evidence),
		}
	}
	return Decision{
		Keep:       false,
		YearsGuess: years,
		Reason:     fmt.Sprintf("excluded: explicit years >%d (%s)", MaxJuniorYears, evidence),
	}
}

// HasJuniorSignal reports whether the text carries explicit junior hints.
// It never affects the keep decision, only notes.
func HasJuniorSignal(text string) bool {
	return matchesAny(scoring.NormalizeText(text), juniorPositivePatterns)
}

// ExtractYearsRequired searches the text for an explicit years-of-experience
// figure and returns it together with the matched evidence.
func ExtractYearsRequired(text string) (years int, evidence string, found bool) {
	for _, pattern := range yearsPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		return n, m[0], true
	}
	return 0, "", false
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, pattern := range patterns {
		if pattern.MatchString(text) {
			return true
		}
	}
	return false
}
