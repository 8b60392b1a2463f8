package output

import (
	"io"
	"strings"

	"github.com/dshills/driftgate/internal/drift"
)

// MarkdownWriter outputs a step-summary friendly markdown report.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *drift.Report) error {
	ew := &errWriter{w: w}
	s := report.Summary

	ew.printf("## %s Drift check: %s\n\n", mdRiskIcon(s.Risk), s.Risk.Upper())
	ew.printf("Baseline `%s` | %d pair(s) | %d issue(s) | fail on %s\n\n",
		report.Baseline, s.Pairs, s.Issues, report.FailOn.Upper())

	ew.printf("| Risk | Pairs |\n")
	ew.printf("|------|-------|\n")
	ew.printf("| High | %d |\n", s.Counts.High)
	ew.printf("| Medium | %d |\n", s.Counts.Medium)
	ew.printf("| Low | %d |\n\n", s.Counts.Low)

	pairs := report.PairsWithIssues()
	if len(pairs) == 0 {
		ew.println("No drift issues reported. :white_check_mark:")
	}

	for _, p := range pairs {
		risk := p.Risk()
		ew.printf("<details>\n<summary>%s %s (%s, %d)</summary>\n\n",
			mdRiskIcon(risk), mdEscape(p.Name), risk.Upper(), len(p.Issues))
		for _, iss := range p.Issues {
			ew.printf("- %s\n", mdEscape(iss.Text()))
		}
		ew.println("\n</details>\n")
	}

	if report.Failed {
		ew.printf("**Failed:** risk %s meets the %s threshold.\n", s.Risk.Upper(), report.FailOn.Upper())
	}
	return ew.err
}

func mdRiskIcon(l drift.Level) string {
	switch drift.Normalize(string(l)) {
	case drift.LevelHigh:
		return ":red_circle:"
	case drift.LevelMedium:
		return ":orange_circle:"
	default:
		return ":green_circle:"
	}
}

var mdEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;", "\r\n", " ", "\n", " ")

// mdEscape keeps issue text on one line and stops it from opening HTML tags.
func mdEscape(s string) string {
	return mdEscaper.Replace(s)
}
