package feedback

import (
	"strings"
	"testing"

	"github.com/spigell/resume-analyzer/internal/matching"
)

func TestCompose(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		skills  []string
		matches []matching.Result
		careers []string
		expect  string
	}{
		{
			name:    "all present",
			skills:  []string{"aws", "python"},
			matches: []matching.Result{{Title: "Data Scientist", Score: 0.36}, {Title: "Backend Developer", Score: 0.2}},
			careers: []string{"Data Scientist", "DevOps Engineer"},
			expect: "Detected skills: aws, python\n" +
				"Your resume best matches the role: Data Scientist\n" +
				"Suggested career paths: Data Scientist, DevOps Engineer",
		},
		{
			name:    "zero score match still names the role",
			skills:  []string{"python"},
			matches: []matching.Result{{Title: "Backend Developer", Score: 0}, {Title: "Data Scientist", Score: 0}},
			careers: []string{"Backend Developer"},
			expect: "Detected skills: python\n" +
				"Your resume best matches the role: Backend Developer\n" +
				"Suggested career paths: Backend Developer",
		},
		{
			name:   "all empty",
			expect: NoSkills + "\n" + NoMatches + "\n" + NoCareers,
		},
		{
			name:    "fallback career with no skills",
			skills:  []string{},
			matches: []matching.Result{{Title: "Backend Developer"}},
			careers: []string{"General Software Engineer"},
			expect: NoSkills + "\n" +
				"Your resume best matches the role: Backend Developer\n" +
				"Suggested career paths: General Software Engineer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Compose(tt.skills, tt.matches, tt.careers)
			if got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
			if lines := strings.Split(got, "\n"); len(lines) != 3 {
				t.Fatalf("expected 3 lines, got %d", len(lines))
			}
		})
	}
}
