package messages

import (
	"fmt"
)

var uiMessages = map[string]string{
	"ConfigIssuesTitle":         "Infrastructure as code issues:",
	"DependencyIssuesTitle":     "Dependency vulnerabilities:",
	"IntroducedBy":              "introduced by %s",
	"NewBadge":                  " (new)",
	"SeverityLabel":             "[%s Severity]",
	"InSubType":                 " in %s",
	"FoundIssues":               "found %d issues",
	"DefaultTestedSummary":      "Tested %s",
	"SarifConfigShort":          "%s - %s",
	"SarifDependencyShort":      "%s severity - %s vulnerability in %s",
	"SarifConfigFull":           "%s %s",
	"SarifDependencyFull":       "%s@%s",
	"SarifDependencyFullCVE":    "(%s) %s@%s",
	"SarifConfigResult":         "This line contains a potential %s severity misconfiguration affecting the %s %s",
	"SarifDependencyResult":     "This file introduces a vulnerable %s package with a %s severity vulnerability.",
	"ConsoleNoInput":            "No finding files given. Usage: prsreport <findings.json> [...]",
	"RenderFailed":              "Render failed: %v",
	"SarifReportSaved":          "SARIF report saved: %s",
	"SarifReportFailed":         "Failed to save SARIF report: %v",
	"ThresholdExceeded":         "Found issues at or above %s severity.",
	"ConsoleSeverityBreakdown":  "High: %d  Medium: %d  Low: %d  Total: %d",
	"ConsoleSeverityBreakdownH": "--- Severity Summary ---",
	"MetaType":                  "Type:              %s",
	"MetaTargetFile":            "Target file:       %s",
	"LoadedSets":                "Loaded %d finding sets from %d inputs",
}

// GetUIMessage formats the message registered under id. Unknown ids are
// returned as-is so a missing entry is visible in output.
func GetUIMessage(id string, args ...interface{}) string {
	format, ok := uiMessages[id]
	if !ok || format == "" {
		return id
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}
