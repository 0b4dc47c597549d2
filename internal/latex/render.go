// Package latex renders the CV and cover letter templates. Templates use
// %%PLACEHOLDER%% markers; experience placeholders are derived from the
// company keys in the enrichment, so templates and profile documents stay in
// sync without code changes.
package latex

import (
	"fmt"
	"strings"

	"github.com/mkaddani/job-hunter/internal/ai"
)

// Escape replaces the LaTeX special characters in free text. Everything the
// model produces passes through here before reaching a template.
func Escape(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) * 2)

	for _, r := range text {
		switch r {
		case '\\':
			result.WriteString(`\textbackslash{}`)
		case '{':
			result.WriteString(`\{`)
		case '}':
			result.WriteString(`\}`)
		case '$':
			result.WriteString(`\$`)
		case '&':
			result.WriteString(`\&`)
		case '%':
			result.WriteString(`\%`)
		case '#':
			result.WriteString(`\#`)
		case '^':
			result.WriteString(`\textasciicircum{}`)
		case '_':
			result.WriteString(`\_`)
		case '~':
			result.WriteString(`\textasciitilde{}`)
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}

// BulletsToItems turns bullet strings into \item lines, escaping each one.
func BulletsToItems(bullets []string) string {
	lines := make([]string, 0, len(bullets))
	for _, b := range bullets {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		lines = append(lines, `  \item `+Escape(b))
	}
	return strings.Join(lines, "\n")
}

// RenderCV fills the CV template. Experience bullets land in
// %%<COMPANY>_BULLETS%% placeholders, with the company key uppercased.
func RenderCV(template string, jobTitle string, enrichment *ai.Enrichment) string {
	out := strings.ReplaceAll(template, "%%JOB_TITLE%%", Escape(jobTitle))
	out = strings.ReplaceAll(out, "%%PROFILE_SUMMARY%%", Escape(enrichment.Summary))

	for company, bullets := range enrichment.Experience {
		placeholder := fmt.Sprintf("%%%%%s_BULLETS%%%%", strings.ToUpper(company))
		out = strings.ReplaceAll(out, placeholder, BulletsToItems(bullets))
	}

	out = strings.ReplaceAll(out, "%%PROJECTS_BULLETS%%", projectItems(enrichment.Projects))
	return out
}

// RenderCover fills the cover letter template.
func RenderCover(template string, jobTitle string, letter *ai.CoverLetter) string {
	replacements := map[string]string{
		"%%JOB_TITLE%%": Escape(jobTitle),
		"%%CL_INTRO%%":  Escape(letter.Intro),
		"%%CL_BODY_1%%": Escape(letter.Body1),
		"%%CL_BODY_2%%": Escape(letter.Body2),
		"%%CL_BODY_3%%": Escape(letter.Body3),
		"%%CL_OUTRO%%":  Escape(letter.Outro),
	}

	out := template
	for placeholder, value := range replacements {
		out = strings.ReplaceAll(out, placeholder, value)
	}
	return out
}

func projectItems(projects []ai.Project) string {
	blocks := make([]string, 0, len(projects))
	for _, p := range projects {
		name := strings.TrimSpace(p.Name)
		if name == "" && len(p.Bullets) == 0 {
			continue
		}

		var block strings.Builder
		block.WriteString(`\item \textbf{` + Escape(name) + `}`)
		if len(p.Bullets) > 0 {
			block.WriteString("\n  \\begin{itemize}\n")
			for _, b := range p.Bullets {
				block.WriteString(`    \item ` + Escape(strings.TrimSpace(b)) + "\n")
			}
			block.WriteString("  \\end{itemize}")
		}
		blocks = append(blocks, block.String())
	}
	return strings.Join(blocks, "\n")
}
