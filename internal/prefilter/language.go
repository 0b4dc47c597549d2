package prefilter

import (
	"regexp"

	"github.com/mkaddani/job-hunter/internal/scoring"
)

// Language is the coarse working-language guess for a posting.
type Language string

const (
	LanguageFR      Language = "FR"
	LanguageEN      Language = "EN"
	LanguageBoth    Language = "BOTH"
	LanguageUnknown Language = "UNKNOWN"
)

var (
	frenchHint  = regexp.MustCompile(`fran[cç]ais|francophone`)
	frenchLevel = regexp.MustCompile(`\bfran[cç]ais\b|\bfrancophone\b|\bb2\b|\bc1\b`)
	englishHint = regexp.MustCompile(`\benglish\b|\bfluent\b|\bprofessional proficiency\b`)
)

// DetectLanguage guesses the working language from lightweight keyword
// detection. Unknown is an acceptable outcome and never blocks a posting.
func DetectLanguage(text string) Language {
	norm := scoring.NormalizeText(text)

	hasFR := frenchLevel.MatchString(norm) && frenchHint.MatchString(norm)
	hasEN := englishHint.MatchString(norm)

	switch {
	case hasFR && hasEN:
		return LanguageBoth
	case hasFR:
		return LanguageFR
	case hasEN:
		return LanguageEN
	default:
		return LanguageUnknown
	}
}
