package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writePolicy(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, DefaultPolicyFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadReportPolicy(t *testing.T) {
	t.Setenv(EnvNoColor, "")
	t.Setenv(EnvLogLevel, "")

	content := `color: never
sarif_pretty: true
redact: true
redaction_patterns:
  - 'corp-[0-9a-f]{8}'
  - ''
severity_overrides:
  SNYK-CC-K8S-1: low
config_tool_name: Scanner
dependency_tool_name: Scanner Container
default_kind: Helm
fail_on: high
log_level: debug
log_format: json
`
	path := writePolicy(t, t.TempDir(), content)

	p, err := LoadReportPolicy(path)
	require.NoError(t, err)
	require.Equal(t, "never", p.ColorMode)
	require.True(t, p.SarifPretty)
	require.True(t, p.Redact)
	require.Equal(t, []string{"corp-[0-9a-f]{8}"}, p.RedactionPatterns)
	require.Equal(t, map[string]string{"SNYK-CC-K8S-1": "low"}, p.SeverityOverrides)
	require.Equal(t, "Scanner", p.ConfigToolName)
	require.Equal(t, "Scanner Container", p.DependencyToolName)
	require.Equal(t, "Helm", p.DefaultKind)
	require.Equal(t, "high", p.FailOn)
	require.Equal(t, "debug", p.LogLevel)
	require.Equal(t, "json", p.LogFormat)
}

func TestLoadReportPolicyMissingFile(t *testing.T) {
	t.Setenv(EnvNoColor, "")
	t.Setenv(EnvLogLevel, "")

	p, err := LoadReportPolicy(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	require.Equal(t, DefaultReportPolicy(), p)
}

func TestLoadReportPolicyKeepsDefaultsForUnknownValues(t *testing.T) {
	t.Setenv(EnvNoColor, "")
	t.Setenv(EnvLogLevel, "")

	path := writePolicy(t, t.TempDir(), "color: rainbow\nlog_format: xml\nconfig_tool_name: '  '\n")
	p, err := LoadReportPolicy(path)
	require.NoError(t, err)
	require.Equal(t, "auto", p.ColorMode)
	require.Equal(t, "auto", p.LogFormat)
	require.Equal(t, "Snyk", p.ConfigToolName)
}

func TestLoadReportPolicyInvalidYAML(t *testing.T) {
	path := writePolicy(t, t.TempDir(), "color: [unterminated\n")
	_, err := LoadReportPolicy(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), path)
}

func TestLoadReportPolicyEnvOverrides(t *testing.T) {
	t.Setenv(EnvNoColor, "1")
	t.Setenv(EnvLogLevel, "trace")

	path := writePolicy(t, t.TempDir(), "color: always\nlog_level: info\n")
	p, err := LoadReportPolicy(path)
	require.NoError(t, err)
	require.Equal(t, "never", p.ColorMode)
	require.Equal(t, "trace", p.LogLevel)
}

func TestLoadReportPolicyReloadsOnChange(t *testing.T) {
	t.Setenv(EnvNoColor, "")
	t.Setenv(EnvLogLevel, "")

	path := writePolicy(t, t.TempDir(), "fail_on: low\n")
	p, err := LoadReportPolicy(path)
	require.NoError(t, err)
	require.Equal(t, "low", p.FailOn)

	require.NoError(t, os.WriteFile(path, []byte("fail_on: medium\n"), 0o644))
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	p, err = LoadReportPolicy(path)
	require.NoError(t, err)
	require.Equal(t, "medium", p.FailOn)
}
