package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/MOYARU/prsreport/internal/app/ui"
	msges "github.com/MOYARU/prsreport/internal/messages"
	"github.com/MOYARU/prsreport/internal/report"
)

// Options carries the caller-supplied display strings for a text report.
type Options struct {
	Prefix string
	Meta   string
	Styler ui.Styler
	// PathPrinter formats a provenance path; ui.PrintPath when nil.
	PathPrinter func([]string) string
}

// Render formats one finding set as the terminal issue summary. Findings are
// ordered by descending severity; equal severities keep their input order.
// isNew may be nil, in which case the finding's own IsNew flag is used.
func Render(set report.FindingSet, isNew func(report.Finding) bool, opts Options) (string, error) {
	sorted, err := sortBySeverity(set.Findings)
	if err != nil {
		return "", err
	}
	if isNew == nil {
		isNew = func(f report.Finding) bool { return f.IsNew }
	}
	printPath := opts.PathPrinter
	if printPath == nil {
		printPath = ui.PrintPath
	}
	st := opts.Styler

	titleID := "ConfigIssuesTitle"
	if set.ResolvedFamily() == report.FamilyDependency {
		titleID = "DependencyIssuesTitle"
	}

	blocks := make([]string, 0, len(sorted)+1)
	blocks = append(blocks, st.Paint("\n"+msges.GetUIMessage(titleID), color.Bold, color.FgWhite))
	for _, f := range sorted {
		block, err := formatIssue(f, isNew(f), printPath, st)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}
	log.Debug().Int("issues", len(sorted)).Str("target", set.TargetFile).Msg("text report rendered")

	tested := set.TestedSummary
	if tested == "" {
		tested = msges.GetUIMessage("DefaultTestedSummary", set.TargetFile)
	}
	found := st.Paint(msges.GetUIMessage("FoundIssues", len(sorted)), color.FgRed, color.Bold)

	var b strings.Builder
	b.WriteString(opts.Prefix)
	b.WriteString(strings.Join(blocks, "\n"))
	b.WriteString("\n\n")
	b.WriteString(opts.Meta)
	b.WriteString("\n\n")
	b.WriteString(tested)
	b.WriteString(", ")
	b.WriteString(found)
	return b.String(), nil
}

func formatIssue(f report.Finding, isNew bool, printPath func([]string) string, st ui.Styler) (string, error) {
	sevColor, err := severityColor(f.Severity)
	if err != nil {
		return "", fmt.Errorf("finding %s: %w", f.ID, err)
	}

	badge := ""
	if isNew {
		badge = msges.GetUIMessage("NewBadge")
	}

	var b strings.Builder
	// Painted piecewise: a nested bold reset would otherwise end the
	// severity color after the title.
	b.WriteString(st.Paint("  ✗ ", sevColor))
	b.WriteString(st.Paint(f.Title, sevColor, color.Bold))
	b.WriteString(st.Paint(badge+" "+msges.GetUIMessage("SeverityLabel", f.Severity.Title()), sevColor))
	b.WriteString(" [" + f.ID + "]")
	if f.SubType != "" {
		b.WriteString(msges.GetUIMessage("InSubType", st.Bold(f.SubType)))
	}
	if len(f.Path) > 0 {
		b.WriteString("\n    ")
		b.WriteString(msges.GetUIMessage("IntroducedBy", printPath(f.Path)))
	}
	b.WriteString("\n    ")
	b.WriteString(report.ExtractOverview(f.Description))
	b.WriteString("\n")
	return b.String(), nil
}

func severityColor(s report.Severity) (color.Attribute, error) {
	switch s {
	case report.SeverityLow:
		return color.FgHiBlue, nil
	case report.SeverityMedium:
		return color.FgHiYellow, nil
	case report.SeverityHigh:
		return color.FgHiRed, nil
	default:
		return 0, fmt.Errorf("%w: %q", report.ErrInvalidSeverity, string(s))
	}
}

// sortBySeverity returns a copy of findings ordered high to low. Every
// severity is validated before sorting.
func sortBySeverity(findings []report.Finding) ([]report.Finding, error) {
	ranks := make(map[report.Severity]int, 3)
	for _, f := range findings {
		if _, ok := ranks[f.Severity]; ok {
			continue
		}
		r, err := f.Severity.Rank()
		if err != nil {
			return nil, fmt.Errorf("finding %s: %w", f.ID, err)
		}
		ranks[f.Severity] = r
	}

	out := make([]report.Finding, len(findings))
	copy(out, findings)
	sort.SliceStable(out, func(i, j int) bool {
		return ranks[out[i].Severity] > ranks[out[j].Severity]
	})
	return out, nil
}
