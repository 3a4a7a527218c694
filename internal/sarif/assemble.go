package sarif

import (
	"fmt"
	"io"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"
	"github.com/rs/zerolog/log"

	msges "github.com/MOYARU/prsreport/internal/messages"
	"github.com/MOYARU/prsreport/internal/report"
)

const (
	DefaultConfigToolName     = "Snyk"
	DefaultDependencyToolName = "Snyk Container"
)

// Assembler turns finding sets into a SARIF log, one run per set.
type Assembler struct {
	ConfigToolName     string
	DependencyToolName string
}

func NewAssembler() *Assembler {
	return &Assembler{
		ConfigToolName:     DefaultConfigToolName,
		DependencyToolName: DefaultDependencyToolName,
	}
}

func (a *Assembler) Assemble(sets []report.FindingSet) (*gosarif.Report, error) {
	rep, err := gosarif.New(gosarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("create sarif log: %w", err)
	}
	for i, set := range sets {
		run, err := a.run(set)
		if err != nil {
			return nil, fmt.Errorf("run %d (%s): %w", i, set.TargetFile, err)
		}
		rep.AddRun(run)
	}
	return rep, nil
}

func (a *Assembler) run(set report.FindingSet) (*gosarif.Run, error) {
	rules, err := BuildRules(set)
	if err != nil {
		return nil, err
	}

	run := gosarif.NewRun(*gosarif.NewSimpleTool(a.toolName(set.ResolvedFamily())))
	run.Tool.Driver.Rules = rules

	kind := set.ResolvedKind()
	family := set.ResolvedFamily()
	for _, f := range set.Findings {
		result := gosarif.NewRuleResult(f.ID).
			WithMessage(gosarif.NewTextMessage(resultMessage(family, kind, f))).
			WithLocations([]*gosarif.Location{Locate(set, f).sarifLocation()})
		run.AddResult(result)
	}

	log.Debug().
		Str("target", set.TargetFile).
		Str("family", string(family)).
		Int("rules", len(rules)).
		Int("results", len(run.Results)).
		Msg("assembled sarif run")
	return run, nil
}

func (a *Assembler) toolName(family report.Family) string {
	if family == report.FamilyDependency {
		return a.DependencyToolName
	}
	return a.ConfigToolName
}

func resultMessage(family report.Family, kind string, f report.Finding) string {
	if family == report.FamilyDependency {
		return msges.GetUIMessage("SarifDependencyResult", f.PackageName, f.Severity)
	}
	return msges.GetUIMessage("SarifConfigResult", f.Severity, kind, f.SubType)
}

// WriteJSON serializes the log, indented when pretty is set.
func WriteJSON(w io.Writer, rep *gosarif.Report, pretty bool) error {
	if pretty {
		return rep.PrettyWrite(w)
	}
	return rep.Write(w)
}
