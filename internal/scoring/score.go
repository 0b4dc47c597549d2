package scoring

import (
	"errors"
	"fmt"
	"math"
)

// Error kinds surfaced by the engine. They are never recovered internally;
// the caller decides whether to skip the job, report it or abort a batch.
var (
	// ErrInvalidInput marks a profile or job that is not a well-formed record.
	ErrInvalidInput = errors.New("invalid input")
	// ErrEmptyJobText marks a job with no usable title or description text.
	ErrEmptyJobText = errors.New("empty job text")
)

// Default blending parameters.
const (
	DefaultWeightExternal = 0.6
	DefaultMaxDelta       = 25
)

// JobPosting is the minimal job record the engine scores. It is treated as an
// immutable value for the duration of a scoring call.
type JobPosting struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CombinedText joins title and description for matching.
func (j *JobPosting) CombinedText() string {
	return j.Title + "\n" + j.Description
}

// DeterministicScore is the fully attributed result of a rule-based scoring
// call. It is a report: created once, never mutated.
type DeterministicScore struct {
	JobSkillsFound     []string `json:"job_skills_found"`
	ProfileSkillsUsed  []string `json:"profile_skills_used"`
	SkillOverlapPct    int      `json:"skill_overlap_pct"`
	OverlapSkills      []string `json:"overlap_skills"`
	MissingSkills      []string `json:"missing_skills"`
	ArchitectureBonus  int      `json:"architecture_bonus"`
	DomainBonus        int      `json:"domain_bonus"`
	SeniorityPenalty   int      `json:"seniority_penalty"`
	DeterministicScore int      `json:"deterministic_score"`
}

// ScoreBounds is the interval an external score was clamped into.
type ScoreBounds struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// HybridScore wraps a deterministic score with an optional bounded external
// opinion. When no external score was supplied, FinalScore equals the
// deterministic score and ExternalScore/Bounds are nil.
type HybridScore struct {
	Deterministic *DeterministicScore `json:"deterministic"`
	ExternalScore *int                `json:"llm_score,omitempty"`
	FinalScore    int                 `json:"final_score"`
	Bounds        *ScoreBounds        `json:"llm_score_bounds,omitempty"`
}

// Engine scores jobs against a candidate profile using an injected
// vocabulary. The zero blending parameters fall back to the defaults. An
// Engine is immutable and safe for concurrent use.
type Engine struct {
	vocab          *Vocabulary
	weightExternal float64
	maxDelta       int
}

// NewEngine builds a scoring engine. A nil vocabulary selects
// DefaultVocabulary; non-positive weightExternal or maxDelta select the
// package defaults.
func NewEngine(vocab *Vocabulary, weightExternal float64, maxDelta int) *Engine {
	if vocab == nil {
		vocab = DefaultVocabulary()
	}
	if weightExternal <= 0 {
		weightExternal = DefaultWeightExternal
	}
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &Engine{vocab: vocab, weightExternal: weightExternal, maxDelta: maxDelta}
}

// Vocabulary returns the engine's vocabulary.
func (e *Engine) Vocabulary() *Vocabulary {
	return e.vocab
}

// ComputeDeterministicScore runs the full rule-based pipeline: skill
// extraction, overlap, bonuses and the seniority penalty, aggregated as
// clamp(overlap + architecture + domain + seniority, 0, 100). Every
// contributing quantity is preserved in the returned record.
func (e *Engine) ComputeDeterministicScore(profile *CandidateProfile, job *JobPosting) (*DeterministicScore, error) {
	if profile == nil {
		return nil, fmt.Errorf("%w: profile is required", ErrInvalidInput)
	}
	if job == nil {
		return nil, fmt.Errorf("%w: job is required", ErrInvalidInput)
	}

	text := NormalizeText(job.CombinedText())
	if text == "" {
		return nil, fmt.Errorf("%w: job needs a title or a description", ErrEmptyJobText)
	}

	profileSkills := FlattenProfileSkills(profile)
	jobSkills := e.vocab.ExtractJobSkills(text)

	overlapPct, overlap, missing := ComputeOverlap(jobSkills, profileSkills)
	archBonus := ArchitectureBonus(text, profile)
	domBonus := DomainBonus(text, profile)
	penalty := SeniorityPenalty(text, profile.MaxYears())

	return &DeterministicScore{
		JobSkillsFound:     jobSkills.Sorted(),
		ProfileSkillsUsed:  profileSkills.Sorted(),
		SkillOverlapPct:    overlapPct,
		OverlapSkills:      overlap,
		MissingSkills:      missing,
		ArchitectureBonus:  archBonus,
		DomainBonus:        domBonus,
		SeniorityPenalty:   penalty,
		DeterministicScore: clampScore(overlapPct + archBonus + domBonus + penalty),
	}, nil
}

// BoundedExternalScore clamps an external score into a neighborhood of
// maxDelta points around the deterministic score. This is the trust boundary:
// no matter how extreme the external value, it can never move the blended
// result further than maxDelta from what the rules justify.
func BoundedExternalScore(external, deterministic, maxDelta int) (int, ScoreBounds) {
	lo := clampScore(deterministic - maxDelta)
	hi := clampScore(deterministic + maxDelta)
	return clampInt(external, lo, hi), ScoreBounds{Lo: lo, Hi: hi}
}

// BlendScores computes the weighted blend of a deterministic score and an
// already-bounded external score, clamped to 0-100.
func BlendScores(deterministic, external int, weightExternal float64) int {
	final := weightExternal*float64(external) + (1-weightExternal)*float64(deterministic)
	return clampScore(int(math.Round(final)))
}

// ComputeHybridScore computes the deterministic score, then optionally bounds
// and blends an external opinion into it. A nil external score is a normal,
// first-class case: the final score is the deterministic score and no bounds
// are recorded.
func (e *Engine) ComputeHybridScore(profile *CandidateProfile, job *JobPosting, external *int) (*HybridScore, error) {
	det, err := e.ComputeDeterministicScore(profile, job)
	if err != nil {
		return nil, err
	}

	if external == nil {
		return &HybridScore{
			Deterministic: det,
			FinalScore:    det.DeterministicScore,
		}, nil
	}

	bounded, bounds := BoundedExternalScore(*external, det.DeterministicScore, e.maxDelta)
	return &HybridScore{
		Deterministic: det,
		ExternalScore: &bounded,
		FinalScore:    BlendScores(det.DeterministicScore, bounded, e.weightExternal),
		Bounds:        &bounds,
	}, nil
}
