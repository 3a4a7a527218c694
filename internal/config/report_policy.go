package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultPolicyFile is looked up in the working directory.
const DefaultPolicyFile = ".prsreport.yaml"

const (
	EnvNoColor  = "PRSREPORT_NO_COLOR"
	EnvLogLevel = "PRSREPORT_LOG_LEVEL"
)

type ReportPolicy struct {
	ColorMode          string
	SarifPretty        bool
	Redact             bool
	RedactionPatterns  []string
	SeverityOverrides  map[string]string
	ConfigToolName     string
	DependencyToolName string
	DefaultKind        string
	FailOn             string
	LogLevel           string
	LogFormat          string
}

// policyFile mirrors the YAML layout. Pointers distinguish an absent key
// from an explicit zero value.
type policyFile struct {
	Color              *string           `yaml:"color"`
	SarifPretty        *bool             `yaml:"sarif_pretty"`
	Redact             *bool             `yaml:"redact"`
	RedactionPatterns  []string          `yaml:"redaction_patterns"`
	SeverityOverrides  map[string]string `yaml:"severity_overrides"`
	ConfigToolName     *string           `yaml:"config_tool_name"`
	DependencyToolName *string           `yaml:"dependency_tool_name"`
	DefaultKind        *string           `yaml:"default_kind"`
	FailOn             *string           `yaml:"fail_on"`
	LogLevel           *string           `yaml:"log_level"`
	LogFormat          *string           `yaml:"log_format"`
}

var reportPolicyCache struct {
	mu      sync.RWMutex
	path    string
	exists  bool
	modTime int64
	policy  ReportPolicy
}

func DefaultReportPolicy() ReportPolicy {
	return ReportPolicy{
		ColorMode:          "auto",
		SarifPretty:        false,
		Redact:             false,
		ConfigToolName:     "Snyk",
		DependencyToolName: "Snyk Container",
		DefaultKind:        "Kubernetes",
		LogLevel:           "warn",
		LogFormat:          "auto",
	}
}

// LoadReportPolicy reads optional keys from path (DefaultPolicyFile when
// empty) and applies environment overrides on top:
//
//	color: auto|always|never
//	sarif_pretty: true
//	redact: true
//	redaction_patterns:
//	  - 'corp-[0-9a-f]{8}'
//	severity_overrides:
//	  SNYK-CC-K8S-1: low
//	config_tool_name: Snyk
//	dependency_tool_name: Snyk Container
//	default_kind: Kubernetes
//	fail_on: high
//	log_level: warn
//	log_format: auto|console|json
//
// A missing file yields the defaults. Parsed files are cached by
// modification time.
func LoadReportPolicy(path string) (ReportPolicy, error) {
	if path == "" {
		path = DefaultPolicyFile
	}
	if absPath, err := filepath.Abs(path); err == nil {
		path = absPath
	}

	p, err := loadPolicyFile(path)
	if err != nil {
		return ReportPolicy{}, err
	}
	applyEnv(&p)
	return p, nil
}

func loadPolicyFile(path string) (ReportPolicy, error) {
	p := DefaultReportPolicy()

	st, statErr := os.Stat(path)
	if statErr != nil {
		reportPolicyCache.mu.RLock()
		if reportPolicyCache.path == path && !reportPolicyCache.exists {
			cached := reportPolicyCache.policy
			reportPolicyCache.mu.RUnlock()
			return cached, nil
		}
		reportPolicyCache.mu.RUnlock()
		storePolicy(path, false, 0, p)
		return p, nil
	}

	modTime := st.ModTime().UnixNano()
	reportPolicyCache.mu.RLock()
	if reportPolicyCache.path == path && reportPolicyCache.exists && reportPolicyCache.modTime == modTime {
		cached := reportPolicyCache.policy
		reportPolicyCache.mu.RUnlock()
		return cached, nil
	}
	reportPolicyCache.mu.RUnlock()

	raw, err := os.ReadFile(path)
	if err != nil {
		return ReportPolicy{}, fmt.Errorf("read %s: %w", path, err)
	}
	var pf policyFile
	if err := yaml.Unmarshal(raw, &pf); err != nil {
		return ReportPolicy{}, fmt.Errorf("parse %s: %w", path, err)
	}
	pf.apply(&p)

	storePolicy(path, true, modTime, p)
	return p, nil
}

func storePolicy(path string, exists bool, modTime int64, p ReportPolicy) {
	reportPolicyCache.mu.Lock()
	reportPolicyCache.path = path
	reportPolicyCache.exists = exists
	reportPolicyCache.modTime = modTime
	reportPolicyCache.policy = p
	reportPolicyCache.mu.Unlock()
}

// apply copies recognized values; unknown enum values keep the default.
func (pf policyFile) apply(p *ReportPolicy) {
	if pf.Color != nil {
		mode := strings.ToLower(strings.TrimSpace(*pf.Color))
		if mode == "auto" || mode == "always" || mode == "never" {
			p.ColorMode = mode
		}
	}
	if pf.SarifPretty != nil {
		p.SarifPretty = *pf.SarifPretty
	}
	if pf.Redact != nil {
		p.Redact = *pf.Redact
	}
	for _, pat := range pf.RedactionPatterns {
		if pat = strings.TrimSpace(pat); pat != "" {
			p.RedactionPatterns = append(p.RedactionPatterns, pat)
		}
	}
	if len(pf.SeverityOverrides) > 0 {
		p.SeverityOverrides = make(map[string]string, len(pf.SeverityOverrides))
		for id, sev := range pf.SeverityOverrides {
			p.SeverityOverrides[id] = sev
		}
	}
	setString(&p.ConfigToolName, pf.ConfigToolName)
	setString(&p.DependencyToolName, pf.DependencyToolName)
	setString(&p.DefaultKind, pf.DefaultKind)
	setString(&p.FailOn, pf.FailOn)
	setString(&p.LogLevel, pf.LogLevel)
	if pf.LogFormat != nil {
		format := strings.ToLower(strings.TrimSpace(*pf.LogFormat))
		if format == "auto" || format == "console" || format == "json" {
			p.LogFormat = format
		}
	}
}

func setString(dst *string, v *string) {
	if v == nil {
		return
	}
	if s := strings.TrimSpace(*v); s != "" {
		*dst = s
	}
}

func applyEnv(p *ReportPolicy) {
	if v := strings.TrimSpace(os.Getenv(EnvNoColor)); v != "" && v != "0" && !strings.EqualFold(v, "false") {
		p.ColorMode = "never"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		p.LogLevel = v
	}
}
