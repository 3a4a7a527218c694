package render

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/MOYARU/prsreport/internal/app/output"
	"github.com/MOYARU/prsreport/internal/app/ui"
	"github.com/MOYARU/prsreport/internal/config"
	"github.com/MOYARU/prsreport/internal/input"
	msges "github.com/MOYARU/prsreport/internal/messages"
	"github.com/MOYARU/prsreport/internal/report"
	"github.com/MOYARU/prsreport/internal/sarif"
)

// ErrThresholdExceeded is returned when findings reach the --fail-on level.
var ErrThresholdExceeded = errors.New("severity threshold exceeded")

// StdinPath selects standard input (decoded as JSON) as a findings source.
const StdinPath = input.StdinPath

type Options struct {
	Files      []string
	PolicyPath string

	Sarif     bool
	SarifFile string
	Pretty    bool

	NoColor bool
	Prefix  string
	Meta    string
	Redact  bool
	FailOn  string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (o *Options) defaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
}

// Run loads the findings, applies the report policy and writes either the
// text report or the SARIF log to Stdout.
func Run(opts Options) error {
	opts.defaults()
	if len(opts.Files) == 0 {
		return errors.New(msges.GetUIMessage("ConsoleNoInput"))
	}

	policy, err := config.LoadReportPolicy(opts.PolicyPath)
	if err != nil {
		return err
	}

	sets, err := input.LoadAll(opts.Files, opts.Stdin)
	if err != nil {
		return err
	}
	log.Debug().Msg(msges.GetUIMessage("LoadedSets", len(sets), len(opts.Files)))

	sets, err = prepare(sets, policy, opts.Redact)
	if err != nil {
		return err
	}

	if opts.Sarif || opts.SarifFile != "" {
		if err := writeSarif(sets, policy, opts); err != nil {
			return err
		}
	}
	if !opts.Sarif {
		if err := writeText(sets, policy, opts); err != nil {
			return err
		}
	}

	return checkThreshold(sets, policy, opts.FailOn)
}

// prepare applies the default kind, severity overrides and redaction.
// The loaded sets are never modified in place.
func prepare(sets []report.FindingSet, policy config.ReportPolicy, redact bool) ([]report.FindingSet, error) {
	var redactor *report.Redactor
	if redact || policy.Redact {
		r, err := report.NewRedactor(policy.RedactionPatterns)
		if err != nil {
			return nil, err
		}
		redactor = r
	}

	out := make([]report.FindingSet, 0, len(sets))
	for _, set := range sets {
		if set.Kind == "" && set.ProjectType == "" {
			set.Kind = policy.DefaultKind
		}
		set, err := report.ApplySeverityOverrides(set, policy.SeverityOverrides)
		if err != nil {
			return nil, err
		}
		if redactor != nil {
			set = redactor.Set(set)
		}
		out = append(out, set)
	}
	return out, nil
}

func writeSarif(sets []report.FindingSet, policy config.ReportPolicy, opts Options) error {
	asm := &sarif.Assembler{
		ConfigToolName:     policy.ConfigToolName,
		DependencyToolName: policy.DependencyToolName,
	}
	rep, err := asm.Assemble(sets)
	if err != nil {
		return err
	}
	pretty := opts.Pretty || policy.SarifPretty

	if opts.Sarif {
		if err := sarif.WriteJSON(opts.Stdout, rep, pretty); err != nil {
			return err
		}
		fmt.Fprintln(opts.Stdout)
	}
	if opts.SarifFile != "" {
		name, err := output.SaveSARIFReport(opts.SarifFile, "", rep, pretty)
		if err != nil {
			fmt.Fprintf(opts.Stderr, "%s%s%s\n", ui.ColorRed, msges.GetUIMessage("SarifReportFailed", err), ui.ColorReset)
			return err
		}
		fmt.Fprintf(opts.Stderr, "%s%s%s\n", ui.ColorGreen, msges.GetUIMessage("SarifReportSaved", name), ui.ColorReset)
	}
	return nil
}

func writeText(sets []report.FindingSet, policy config.ReportPolicy, opts Options) error {
	mode := policy.ColorMode
	if opts.NoColor {
		mode = "never"
	}
	var stdoutFile *os.File
	if f, ok := opts.Stdout.(*os.File); ok {
		stdoutFile = f
	}

	textOpts := output.Options{
		Prefix: opts.Prefix,
		Meta:   opts.Meta,
		Styler: ui.NewStyler(ui.ColorEnabled(mode, stdoutFile)),
	}
	if err := output.PrintFindings(opts.Stdout, sets, nil, textOpts); err != nil {
		return err
	}

	counts, err := output.Summarize(sets)
	if err != nil {
		return err
	}
	if len(sets) > 1 {
		output.PrintSeveritySummary(opts.Stdout, counts, textOpts.Styler.Enabled())
	}
	return nil
}

func checkThreshold(sets []report.FindingSet, policy config.ReportPolicy, failOn string) error {
	if failOn == "" {
		failOn = policy.FailOn
	}
	if failOn == "" {
		return nil
	}
	threshold, err := report.ParseSeverity(failOn)
	if err != nil {
		return fmt.Errorf("fail-on: %w", err)
	}
	exceeded, err := output.ExceedsThreshold(sets, threshold)
	if err != nil {
		return err
	}
	if exceeded {
		return fmt.Errorf("%w: %s", ErrThresholdExceeded, msges.GetUIMessage("ThresholdExceeded", threshold))
	}
	return nil
}
