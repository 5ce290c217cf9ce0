// Package skills detects vocabulary terms in resume text.
package skills

import (
	"regexp"
	"sort"
	"strings"
)

const wordChar = `\p{L}\p{N}\p{M}_`

type term struct {
	name    string
	pattern *regexp.Regexp
}

// Extractor matches a fixed vocabulary as whole words or phrases.
type Extractor struct {
	terms []term
}

// New compiles one pattern per vocabulary entry. Entries are lower-cased and
// blank or duplicate entries are skipped.
func New(vocabulary []string) *Extractor {
	e := &Extractor{}
	seen := make(map[string]struct{}, len(vocabulary))
	for _, raw := range vocabulary {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		e.terms = append(e.terms, term{
			name:    name,
			pattern: regexp.MustCompile(`(?:^|[^` + wordChar + `])` + regexp.QuoteMeta(name) + `(?:$|[^` + wordChar + `])`),
		})
	}
	return e
}

// Vocabulary returns the normalised terms in declaration order.
func (e *Extractor) Vocabulary() []string {
	names := make([]string, 0, len(e.terms))
	for _, t := range e.terms {
		names = append(names, t.name)
	}
	return names
}

// Extract returns the sorted set of vocabulary terms found in text. The result
// is never nil.
func (e *Extractor) Extract(text string) []string {
	found := make([]string, 0)
	if strings.TrimSpace(text) == "" {
		return found
	}

	lower := strings.ToLower(text)
	for _, t := range e.terms {
		if t.pattern.MatchString(lower) {
			found = append(found, t.name)
		}
	}
	sort.Strings(found)

	return found
}

// ExtractValue is Extract for values of unknown type. Anything other than a
// string or a non-nil *string yields an empty result.
func (e *Extractor) ExtractValue(v any) []string {
	switch text := v.(type) {
	case string:
		return e.Extract(text)
	case *string:
		if text != nil {
			return e.Extract(*text)
		}
	}
	return []string{}
}
