package scoring

import (
	"regexp"
	"strings"
)

// SynonymRule maps a detection pattern to a canonical skill name. Rules are
// evaluated independently: every matching rule contributes its canonical name
// and ordering never affects the result set.
type SynonymRule struct {
	Pattern   *regexp.Regexp
	Canonical string
}

// Vocabulary is the curated skill dictionary used for job skill extraction.
// It is immutable after construction and safe for unsynchronized concurrent
// reads. Tests may substitute a minimal vocabulary.
type Vocabulary struct {
	BaseSkills []string
	Synonyms   []SynonymRule
}

// NewVocabulary compiles the provided synonym patterns into a vocabulary.
// Patterns are standard Go regular expressions matched against normalized
// (lower-cased, whitespace-collapsed) text.
func NewVocabulary(baseSkills []string, synonyms map[string]string) *Vocabulary {
	v := &Vocabulary{BaseSkills: baseSkills}
	for pattern, canonical := range synonyms {
		v.Synonyms = append(v.Synonyms, SynonymRule{
			Pattern:   regexp.MustCompile(pattern),
			Canonical: canonical,
		})
	}
	return v
}

// DefaultVocabulary returns the curated data-engineering vocabulary. Keep the
// list small and extend it as new job texts are observed.
func DefaultVocabulary() *Vocabulary {
	return NewVocabulary(
		[]string{
			// languages / query
			"python", "sql", "pyspark", "spark", "scala", "java",
			// orchestration
			"airflow", "dagster", "prefect",
			// lakehouse / storage / formats
			"databricks", "delta lake", "iceberg", "hudi",
			// warehouses / databases
			"snowflake", "bigquery", "redshift", "synapse", "postgresql", "mysql", "oracle",
			// streaming / messaging
			"kafka", "spark structured streaming", "flink", "kinesis", "pubsub",
			// transformation / modeling
			"dbt", "data modeling", "star schema", "snowflake schema",
			// testing / quality / governance
			"great expectations", "openlineage", "data lineage", "data contracts", "schema evolution",
			// cloud
			"aws", "gcp", "azure",
			// devops / infra
			"docker", "kubernetes", "terraform", "jenkins", "gitlab ci", "github actions", "ci/cd",
			// observability
			"prometheus", "grafana",
			// bi
			"power bi", "looker", "looker studio",
		},
		map[string]string{
			`\bgcp\b`:                        "gcp",
			`\bgoogle cloud\b`:               "gcp",
			`\bgcs\b`:                        "gcp", // coarse but useful signal
			`\bbig query\b`:                  "bigquery",
			`\bbigquery\b`:                   "bigquery",
			`\bspark structured streaming\b`: "spark structured streaming",
			`\bstructured streaming\b`:       "spark structured streaming",
			`\bci/cd\b`:                      "ci/cd",
			`\bcontinuous integration\b`:     "ci/cd",
			`\bcontinuous deployment\b`:      "ci/cd",
			`\bgithub\s+actions\b`:           "github actions",
			`\bgitlab\s+ci\b`:                "gitlab ci",
			`\bk8s\b`:                        "kubernetes",
			`\beks\b`:                        "kubernetes",
			`\baks\b`:                        "kubernetes",
			`\bterraform\b`:                  "terraform",
			`\bpowerbi\b`:                    "power bi",
			`\blooker\s+studio\b`:            "looker studio",
			`\bopen lineage\b`:               "openlineage",
		},
	)
}

// ExtractJobSkills extracts a canonical skill set from free job text using
// synonym rules first, then substring checks over the base vocabulary.
// Substring matching tolerates compound technical terms and needs no
// language-aware tokenization; occasional false positives are an accepted
// tradeoff since the score is advisory.
func (v *Vocabulary) ExtractJobSkills(text string) SkillSet {
	norm := NormalizeText(text)
	found := make(SkillSet)

	for _, rule := range v.Synonyms {
		if rule.Pattern.MatchString(norm) {
			found.Add(rule.Canonical)
		}
	}

	for _, skill := range v.BaseSkills {
		nskill := NormalizeText(skill)
		if nskill != "" && strings.Contains(norm, nskill) {
			found.Add(nskill)
		}
	}

	return found
}
