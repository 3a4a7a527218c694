package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/MOYARU/prsreport/internal/app/ui"
	msges "github.com/MOYARU/prsreport/internal/messages"
	"github.com/MOYARU/prsreport/internal/report"
	"github.com/MOYARU/prsreport/internal/sarif"
)

// SeverityCounts tallies findings across every rendered set.
type SeverityCounts struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
	Total  int `json:"total"`
}

func Summarize(sets []report.FindingSet) (SeverityCounts, error) {
	var c SeverityCounts
	for _, set := range sets {
		for _, f := range set.Findings {
			switch f.Severity {
			case report.SeverityHigh:
				c.High++
			case report.SeverityMedium:
				c.Medium++
			case report.SeverityLow:
				c.Low++
			default:
				return SeverityCounts{}, fmt.Errorf("finding %s: %w: %q", f.ID, report.ErrInvalidSeverity, string(f.Severity))
			}
			c.Total++
		}
	}
	return c, nil
}

// DefaultMeta describes the tested target when the caller supplies no
// metadata block.
func DefaultMeta(set report.FindingSet) string {
	lines := []string{msges.GetUIMessage("MetaType", set.ResolvedKind())}
	if set.ResolvedFamily() == report.FamilyDependency {
		lines[0] = msges.GetUIMessage("MetaType", set.ResolvedFamily())
	}
	if file := set.ArtifactFile(); file != "" {
		lines = append(lines, msges.GetUIMessage("MetaTargetFile", file))
	}
	return strings.Join(lines, "\n")
}

// PrintFindings renders every set to w, separated by a blank line. Sets get
// DefaultMeta when opts.Meta is empty.
func PrintFindings(w io.Writer, sets []report.FindingSet, isNew func(report.Finding) bool, opts Options) error {
	for i, set := range sets {
		setOpts := opts
		if setOpts.Meta == "" {
			setOpts.Meta = DefaultMeta(set)
		}
		text, err := Render(set, isNew, setOpts)
		if err != nil {
			return fmt.Errorf("%s: %w", set.TargetFile, err)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, text)
	}
	return nil
}

// PrintSeveritySummary prints the per-severity breakdown after the report.
func PrintSeveritySummary(w io.Writer, c SeverityCounts, colored bool) {
	fmt.Fprintf(w, "\n%s\n", ui.Colorize(colored, ui.ColorGray, msges.GetUIMessage("ConsoleSeverityBreakdownH")))

	line := msges.GetUIMessage("ConsoleSeverityBreakdown", c.High, c.Medium, c.Low, c.Total)
	code := ui.ColorGreen
	switch {
	case c.High > 0:
		code = ui.ColorRed
	case c.Medium > 0:
		code = ui.ColorYellow
	}
	fmt.Fprintln(w, ui.Colorize(colored, code, line))
}

// ExceedsThreshold reports whether any finding is at or above threshold.
func ExceedsThreshold(sets []report.FindingSet, threshold report.Severity) (bool, error) {
	floor, err := threshold.Rank()
	if err != nil {
		return false, err
	}
	for _, set := range sets {
		for _, f := range set.Findings {
			r, err := f.Severity.Rank()
			if err != nil {
				return false, fmt.Errorf("finding %s: %w", f.ID, err)
			}
			if r >= floor {
				return true, nil
			}
		}
	}
	return false, nil
}

// SaveSARIFReport writes the log to filename, or to a timestamped
// prs_report_<target>_<time>.sarif in the working directory when filename
// is empty. It returns the path written.
func SaveSARIFReport(filename, target string, rep *gosarif.Report, pretty bool) (string, error) {
	if filename == "" {
		filename = reportFilename(target, time.Now())
	}

	file, err := os.Create(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := sarif.WriteJSON(file, rep, pretty); err != nil {
		return "", err
	}
	return filename, nil
}

func reportFilename(target string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	sanitizedTarget := strings.ReplaceAll(target, "://", "_")
	sanitizedTarget = strings.ReplaceAll(sanitizedTarget, "/", "_")
	sanitizedTarget = strings.ReplaceAll(sanitizedTarget, ":", "_")
	if sanitizedTarget == "" {
		sanitizedTarget = "findings"
	}
	return fmt.Sprintf("prs_report_%s_%s.sarif", sanitizedTarget, timestamp)
}
