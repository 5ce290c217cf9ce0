package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type textStyles struct {
	title   lipgloss.Style
	section lipgloss.Style
	label   lipgloss.Style
	dim     lipgloss.Style
	failed  lipgloss.Style
}

// newTextStyles binds styles to the color profile of w, so files and pipes
// get plain text.
func newTextStyles(w io.Writer) textStyles {
	r := lipgloss.NewRenderer(w)
	return textStyles{
		title: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		section: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")),
		label: r.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(8),
		dim: r.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
		failed: r.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
	}
}

func renderText(w io.Writer, r *Report) error {
	s := newTextStyles(w)
	var b strings.Builder

	b.WriteString(s.title.Render("Resume analysis"))
	b.WriteString("\n")
	field := func(label, value string) {
		b.WriteString(s.label.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}
	field("ID", r.ID)
	field("Source", r.Source)
	if r.Failed() {
		field("Status", s.failed.Render(r.Status))
		field("Error", r.Error)
		_, err := io.WriteString(w, b.String())
		return err
	}
	field("Status", r.Status)

	section := func(name string, lines []string) {
		b.WriteString("\n")
		b.WriteString(s.section.Render(name))
		b.WriteString("\n")
		if len(lines) == 0 {
			b.WriteString("  ")
			b.WriteString(s.dim.Render("none"))
			b.WriteString("\n")
			return
		}
		for _, line := range lines {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	section("Skills", r.Skills)

	matches := make([]string, 0, len(r.JobMatches))
	for i, m := range r.JobMatches {
		matches = append(matches, fmt.Sprintf("%d. %s %s", i+1, m.Title, s.dim.Render(fmt.Sprintf("(%.4f)", m.Score))))
	}
	section("Job matches", matches)

	careers := append([]string(nil), r.CareerRecommendations...)
	if r.FallbackRecommendation && len(careers) > 0 {
		careers[0] += " " + s.dim.Render("(fallback)")
	}
	section("Career recommendations", careers)

	qualityLine := r.Quality.Label
	if !r.Quality.Available {
		qualityLine = s.dim.Render(qualityLine)
	}
	section("Quality", []string{qualityLine})

	section("Feedback", strings.Split(r.Feedback, "\n"))

	if r.Preview != "" {
		section("Preview", []string{r.Preview})
	}

	_, err := io.WriteString(w, b.String())
	return err
}
