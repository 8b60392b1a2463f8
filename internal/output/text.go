package output

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/dshills/driftgate/internal/drift"
)

// TextWriter outputs the human-readable summary and per-pair details.
// Styling is only applied when w is a color-capable terminal.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, report *drift.Report) error {
	ew := &errWriter{w: w}
	st := newStyles(lipgloss.NewRenderer(w))
	s := report.Summary

	ew.println(st.bold.Render(fmt.Sprintf("Drift check vs %q: risk %s, %d pair(s), %d issue(s)",
		report.Baseline, s.Risk.Upper(), s.Pairs, s.Issues)))
	ew.printf("Pairs by risk: HIGH=%d MEDIUM=%d LOW=%d\n",
		s.Counts.High, s.Counts.Medium, s.Counts.Low)

	for _, p := range report.PairsWithIssues() {
		risk := p.Risk()
		header := fmt.Sprintf("%s %s [%s]", riskIcon(risk), p.Name, risk.Upper())
		ew.printf("\n%s\n", st.forLevel(risk).Render(header))
		for _, iss := range p.Issues {
			ew.printf("  - %s\n", iss.Text())
		}
	}

	return ew.err
}

type styles struct {
	bold   lipgloss.Style
	high   lipgloss.Style
	medium lipgloss.Style
	low    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		bold:   r.NewStyle().Bold(true),
		high:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		medium: r.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		low:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
	}
}

func (s styles) forLevel(l drift.Level) lipgloss.Style {
	switch l {
	case drift.LevelHigh:
		return s.high
	case drift.LevelMedium:
		return s.medium
	default:
		return s.low
	}
}

func riskIcon(l drift.Level) string {
	switch drift.Normalize(string(l)) {
	case drift.LevelHigh:
		return "✖"
	case drift.LevelMedium:
		return "⚠"
	default:
		return "✔"
	}
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}
