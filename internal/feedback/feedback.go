// Package feedback renders the three-line resume feedback.
package feedback

import (
	"fmt"
	"strings"

	"github.com/spigell/resume-analyzer/internal/matching"
)

const (
	NoSkills  = "No skills detected. Consider adding technical keywords to your resume."
	NoMatches = "No strong job matches found. Try improving your resume keywords."
	NoCareers = "Unable to provide career recommendations. Add more relevant skills."
)

// Compose returns exactly three newline-separated lines: detected skills, the
// best matching role and suggested careers, each replaced by a fixed hint when
// its input is empty. Only the first match is used.
func Compose(skills []string, matches []matching.Result, careers []string) string {
	lines := make([]string, 0, 3)

	if len(skills) > 0 {
		lines = append(lines, fmt.Sprintf("Detected skills: %s", strings.Join(skills, ", ")))
	} else {
		lines = append(lines, NoSkills)
	}

	if len(matches) > 0 {
		lines = append(lines, fmt.Sprintf("Your resume best matches the role: %s", matches[0].Title))
	} else {
		lines = append(lines, NoMatches)
	}

	if len(careers) > 0 {
		lines = append(lines, fmt.Sprintf("Suggested career paths: %s", strings.Join(careers, ", ")))
	} else {
		lines = append(lines, NoCareers)
	}

	return strings.Join(lines, "\n")
}
