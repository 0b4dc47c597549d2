package scoring

import (
	"math"
	"sort"
)

// ComputeOverlap compares the job's required skills against the candidate's
// declared skills. It returns the overlap percentage (0-100), the sorted
// overlap list and the sorted missing list.
//
// An empty job skill set means the job text carried no recognizable skill
// keywords; that is a defined outcome of (0, [], []), not an error.
func ComputeOverlap(jobSkills, profileSkills SkillSet) (int, []string, []string) {
	if jobSkills.Len() == 0 {
		return 0, []string{}, []string{}
	}

	overlap := make([]string, 0, jobSkills.Len())
	missing := make([]string, 0, jobSkills.Len())
	for skill := range jobSkills {
		if profileSkills.Has(skill) {
			overlap = append(overlap, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	sort.Strings(overlap)
	sort.Strings(missing)

	pct := int(math.Round(100 * float64(len(overlap)) / float64(jobSkills.Len())))
	return clampScore(pct), overlap, missing
}
