package sarif

import (
	"fmt"
	"strings"

	gosarif "github.com/owenrumney/go-sarif/v2/sarif"

	msges "github.com/MOYARU/prsreport/internal/messages"
	"github.com/MOYARU/prsreport/internal/report"
)

const (
	LevelError   = "error"
	LevelWarning = "warning"

	securityTag = "security"
)

// levelPolicy maps a validated severity to a SARIF default level.
type levelPolicy func(report.Severity) string

// configLevel reports every misconfiguration as a warning regardless of
// severity.
func configLevel(report.Severity) string {
	return LevelWarning
}

// dependencyLevel escalates only high severity vulnerabilities to errors.
func dependencyLevel(s report.Severity) string {
	if s == report.SeverityHigh {
		return LevelError
	}
	return LevelWarning
}

// BuildRules deduplicates the set's findings into a rule catalog. The
// first finding seen for an id defines the rule; catalog order follows
// first occurrence. Every finding's severity is validated, including
// repeats of an id already in the catalog. The result is never nil.
func BuildRules(set report.FindingSet) ([]*gosarif.ReportingDescriptor, error) {
	rules := make([]*gosarif.ReportingDescriptor, 0, len(set.Findings))
	seen := make(map[string]struct{}, len(set.Findings))

	family := set.ResolvedFamily()
	for _, f := range set.Findings {
		if _, err := f.Severity.Rank(); err != nil {
			return nil, fmt.Errorf("rule %s: %w", f.ID, err)
		}
		if _, ok := seen[f.ID]; ok {
			continue
		}
		var (
			rule *gosarif.ReportingDescriptor
			err  error
		)
		switch family {
		case report.FamilyDependency:
			rule, err = dependencyRule(f)
		case report.FamilyConfig:
			rule, err = configRule(f, set.ResolvedKind())
		default:
			return nil, fmt.Errorf("unknown finding family %q", family)
		}
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", f.ID, err)
		}
		seen[f.ID] = struct{}{}
		rules = append(rules, rule)
	}
	return rules, nil
}

func configRule(f report.Finding, kind string) (*gosarif.ReportingDescriptor, error) {
	subType := strings.TrimSpace(f.SubType)
	full := strings.TrimSpace(kind)
	tags := []string{securityTag}
	if subType != "" {
		full = msges.GetUIMessage("SarifConfigFull", full, subType)
		tags = append(tags, kindSlug(kind)+"/"+subType)
	}
	return newRule(f, ruleText{
		short: msges.GetUIMessage("SarifConfigShort", f.Severity.Title(), f.Title),
		full:  full,
		tags:  tags,
	}, configLevel)
}

// kindSlug lowercases a kind and joins its words with "-", so
// "Infrastructure as Code" becomes "infrastructure-as-code".
func kindSlug(kind string) string {
	return strings.Join(strings.Fields(strings.ToLower(kind)), "-")
}

func dependencyRule(f report.Finding) (*gosarif.ReportingDescriptor, error) {
	full := msges.GetUIMessage("SarifDependencyFull", f.Name, f.Version)
	if len(f.Identifiers.CVE) > 0 && f.Identifiers.CVE[0] != "" {
		full = msges.GetUIMessage("SarifDependencyFullCVE", f.Identifiers.CVE[0], f.Name, f.Version)
	}
	tags := append([]string{securityTag}, f.Identifiers.CWE...)
	return newRule(f, ruleText{
		short: msges.GetUIMessage("SarifDependencyShort", f.Severity.Title(), f.Title, f.PackageName),
		full:  full,
		tags:  tags,
	}, dependencyLevel)
}

type ruleText struct {
	short string
	full  string
	tags  []string
}

func newRule(f report.Finding, text ruleText, level levelPolicy) (*gosarif.ReportingDescriptor, error) {
	if _, err := f.Severity.Rank(); err != nil {
		return nil, err
	}
	return gosarif.NewRule(f.ID).
		WithShortDescription(gosarif.NewMultiformatMessageString(text.short)).
		WithFullDescription(gosarif.NewMultiformatMessageString(text.full)).
		WithHelp(gosarif.NewMultiformatMessageString("").WithMarkdown(f.Description)).
		WithDefaultConfiguration(gosarif.NewReportingConfiguration().WithLevel(level(f.Severity))).
		WithProperties(gosarif.Properties{"tags": text.tags}), nil
}
