package sheets

// Column names used in the tracking sheet. The header row of the sheet is
// the source of truth for ordering; these constants only name the columns
// the pipeline reads and writes.
const (
	ColJobID              = "job_id"
	ColStatus             = "status"
	ColTitle              = "title"
	ColDescription        = "description"
	ColCompany            = "company"
	ColURL                = "url"
	ColSource             = "source"
	ColNotes              = "notes"
	ColYearsRequiredGuess = "years_required_guess"
	ColJuniorOK           = "junior_ok"
	ColLanguage           = "language"
	ColLanguageOK         = "language_ok"
	ColFinalScore         = "final_score"
	ColDeterministicScore = "deterministic_score"
	ColLLMScore           = "llm_score"
	ColOverlapSkills      = "overlap_skills"
	ColMissingSkills      = "missing_skills"
	ColCity               = "city"
	ColCountry            = "country"
	ColPublishedAt        = "published_at"
	ColContractType       = "contract_type"
)

// Row statuses. Each pipeline stage only consumes rows in one status and
// advances them to the next, so stages can be re-run safely.
const (
	StatusNew       = "NEW"
	StatusReadyLLM  = "READY_LLM"
	StatusSkipped   = "SKIPPED"
	StatusScored    = "SCORED"
	StatusGenerated = "GENERATED"
)

// DefaultHeaders is the column layout Init writes into an empty sheet.
var DefaultHeaders = []string{
	ColJobID,
	ColStatus,
	ColTitle,
	ColCompany,
	ColCity,
	ColCountry,
	ColContractType,
	ColPublishedAt,
	ColURL,
	ColSource,
	ColDescription,
	ColYearsRequiredGuess,
	ColJuniorOK,
	ColLanguage,
	ColLanguageOK,
	ColDeterministicScore,
	ColLLMScore,
	ColFinalScore,
	ColOverlapSkills,
	ColMissingSkills,
	ColNotes,
}
