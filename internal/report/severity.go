package report

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSeverity is returned for any label outside low, medium and high.
var ErrInvalidSeverity = errors.New("invalid severity")

// Rank orders severities for sorting: low < medium < high.
func (s Severity) Rank() (int, error) {
	switch s {
	case SeverityLow:
		return 1, nil
	case SeverityMedium:
		return 2, nil
	case SeverityHigh:
		return 3, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeverity, string(s))
	}
}

// Title returns the capitalized label ("High", "Medium", "Low").
func (s Severity) Title() string {
	v := string(s)
	if v == "" {
		return v
	}
	return strings.ToUpper(v[:1]) + v[1:]
}

func ParseSeverity(raw string) (Severity, error) {
	s := Severity(strings.ToLower(strings.TrimSpace(raw)))
	if _, err := s.Rank(); err != nil {
		return "", err
	}
	return s, nil
}

// ApplySeverityOverrides returns a copy of the set in which every finding
// whose rule id appears in overrides carries the overriding severity.
func ApplySeverityOverrides(s FindingSet, overrides map[string]string) (FindingSet, error) {
	if len(overrides) == 0 || len(s.Findings) == 0 {
		return s, nil
	}
	out := s
	out.Findings = make([]Finding, len(s.Findings))
	for i, f := range s.Findings {
		if raw, ok := overrides[f.ID]; ok {
			sev, err := ParseSeverity(raw)
			if err != nil {
				return FindingSet{}, fmt.Errorf("severity override for %s: %w", f.ID, err)
			}
			f.Severity = sev
		}
		out.Findings[i] = f
	}
	return out, nil
}
