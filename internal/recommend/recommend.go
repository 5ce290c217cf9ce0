// Package recommend suggests career paths from detected skills.
package recommend

import (
	"sort"
	"strings"

	"github.com/spigell/resume-analyzer/internal/catalog"
)

const (
	DefaultLimit    = 3
	DefaultFallback = "General Software Engineer"
)

// Recommendation lists suggested careers. Fallback is set when no profile
// overlapped the skills and Careers holds only the fallback career.
type Recommendation struct {
	Careers  []string `json:"careers" yaml:"careers"`
	Fallback bool     `json:"fallback" yaml:"fallback"`
}

// Recommender ranks career profiles by skill overlap.
type Recommender struct {
	careers *catalog.Careers
	// Limit caps the number of careers. Non-positive means DefaultLimit.
	Limit int
	// FallbackCareer is returned when nothing overlaps. Empty means
	// DefaultFallback.
	FallbackCareer string
}

func New(careers *catalog.Careers) *Recommender {
	if careers == nil {
		careers = &catalog.Careers{}
	}
	return &Recommender{careers: careers, Limit: DefaultLimit, FallbackCareer: DefaultFallback}
}

type scored struct {
	name    string
	overlap int
}

// Recommend counts how many skills each profile shares with the input, keeps
// profiles with at least one shared skill and returns the best Limit of them.
// Equal counts keep catalog order.
func (r *Recommender) Recommend(skills []string) Recommendation {
	have := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		if s := strings.ToLower(strings.TrimSpace(skill)); s != "" {
			have[s] = struct{}{}
		}
	}

	var ranked []scored
	if len(have) > 0 {
		for _, profile := range r.careers.Items {
			if n := overlap(have, profile.Skills); n > 0 {
				ranked = append(ranked, scored{name: profile.Name, overlap: n})
			}
		}
	}

	if len(ranked) == 0 {
		return Recommendation{Careers: []string{r.fallback()}, Fallback: true}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].overlap > ranked[j].overlap
	})

	limit := r.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	careers := make([]string, 0, len(ranked))
	for _, s := range ranked {
		careers = append(careers, s.name)
	}

	return Recommendation{Careers: careers}
}

func (r *Recommender) fallback() string {
	if f := strings.TrimSpace(r.FallbackCareer); f != "" {
		return f
	}
	return DefaultFallback
}

// overlap counts distinct profile skills present in have.
func overlap(have map[string]struct{}, profile []string) int {
	n := 0
	counted := make(map[string]struct{}, len(profile))
	for _, skill := range profile {
		s := strings.ToLower(strings.TrimSpace(skill))
		if _, dup := counted[s]; dup {
			continue
		}
		counted[s] = struct{}{}
		if _, ok := have[s]; ok {
			n++
		}
	}
	return n
}
