package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MOYARU/prsreport/internal/app/ui"
	"github.com/MOYARU/prsreport/internal/config"
	"github.com/MOYARU/prsreport/internal/report"
)

const iacDoc = `{
  "targetFile": "deploy.yaml",
  "projectType": "k8sconfig",
  "testedSummary": "Tested deploy.yaml for known issues",
  "result": {
    "cloudConfigResults": [
      {"id": "SNYK-CC-K8S-1", "title": "Privileged container", "severity": "high", "subType": "Deployment",
       "description": "## Overview\nRuns privileged.\n## Remediation\nDrop it", "lineNumber": 4,
       "cloudConfigPath": ["[DocId: 0]", "spec"]},
      {"id": "SNYK-CC-K8S-2", "title": "token=abcd1234", "severity": "low", "subType": "Pod"}
    ]
  }
}`

type fixture struct {
	dir    string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv(config.EnvNoColor, "")
	t.Setenv(config.EnvLogLevel, "")
	return &fixture{dir: t.TempDir()}
}

func (fx *fixture) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(fx.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	return path
}

func (fx *fixture) options(files ...string) Options {
	return Options{
		Files:      files,
		PolicyPath: filepath.Join(fx.dir, "policy.yaml"),
		Stdout:     &fx.stdout,
		Stderr:     &fx.stderr,
	}
}

func TestRunTextReport(t *testing.T) {
	fx := newFixture(t)
	path := fx.write(t, "iac.json", iacDoc)

	if err := Run(fx.options(path)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	out := fx.stdout.String()
	for _, want := range []string{
		"Infrastructure as code issues:",
		"  ✗ Privileged container [High Severity] [SNYK-CC-K8S-1] in Deployment",
		"introduced by [DocId: 0] > spec",
		"Runs privileged.",
		"Type:              Kubernetes",
		"Tested deploy.yaml for known issues, found 2 issues",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("non-terminal output should be plain: %q", out)
	}
}

func TestRunSarifToStdout(t *testing.T) {
	fx := newFixture(t)
	path := fx.write(t, "iac.json", iacDoc)

	opts := fx.options(path)
	opts.Sarif = true
	if err := Run(opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string            `json:"name"`
					Rules []json.RawMessage `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []json.RawMessage `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(fx.stdout.Bytes(), &doc); err != nil {
		t.Fatalf("stdout is not a SARIF document: %v\n%s", err, fx.stdout.String())
	}
	if doc.Version != "2.1.0" || len(doc.Runs) != 1 {
		t.Fatalf("unexpected log: %+v", doc)
	}
	run := doc.Runs[0]
	if run.Tool.Driver.Name != "Snyk" || len(run.Tool.Driver.Rules) != 2 || len(run.Results) != 2 {
		t.Fatalf("unexpected run: name=%s rules=%d results=%d", run.Tool.Driver.Name, len(run.Tool.Driver.Rules), len(run.Results))
	}
	if strings.Contains(fx.stdout.String(), "Infrastructure as code issues:") {
		t.Fatalf("text report should not be printed with --sarif")
	}
}

func TestRunSarifFileAlongsideText(t *testing.T) {
	fx := newFixture(t)
	path := fx.write(t, "iac.json", iacDoc)
	target := filepath.Join(fx.dir, "out.sarif")

	opts := fx.options(path)
	opts.SarifFile = target
	if err := Run(opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected SARIF file: %v", err)
	}
	if !strings.Contains(fx.stdout.String(), "found 2 issues") {
		t.Fatalf("expected text report on stdout:\n%s", fx.stdout.String())
	}
	if !strings.Contains(fx.stderr.String(), target) {
		t.Fatalf("expected saved message on stderr: %q", fx.stderr.String())
	}
}

func TestRunRedactsFindingText(t *testing.T) {
	fx := newFixture(t)
	path := fx.write(t, "iac.json", iacDoc)

	opts := fx.options(path)
	opts.Redact = true
	if err := Run(opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	out := fx.stdout.String()
	if strings.Contains(out, "abcd1234") {
		t.Fatalf("token leaked into report:\n%s", out)
	}
	if !strings.Contains(out, "token=<redacted>") {
		t.Fatalf("expected redacted title:\n%s", out)
	}
}

func TestRunAppliesPolicy(t *testing.T) {
	fx := newFixture(t)
	path := fx.write(t, "iac.json", iacDoc)
	fx.write(t, "policy.yaml", "severity_overrides:\n  SNYK-CC-K8S-1: medium\nfail_on: high\n")

	if err := Run(fx.options(path)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(fx.stdout.String(), "[Medium Severity] [SNYK-CC-K8S-1]") {
		t.Fatalf("override not applied:\n%s", fx.stdout.String())
	}
}

func TestRunFailOn(t *testing.T) {
	fx := newFixture(t)
	path := fx.write(t, "iac.json", iacDoc)

	opts := fx.options(path)
	opts.FailOn = "HIGH"
	err := Run(opts)
	if !errors.Is(err, ErrThresholdExceeded) {
		t.Fatalf("expected ErrThresholdExceeded, got %v", err)
	}

	opts.FailOn = "bogus"
	fx.stdout.Reset()
	if err := Run(opts); !errors.Is(err, report.ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity, got %v", err)
	}
}

func TestRunReadsStdin(t *testing.T) {
	fx := newFixture(t)
	opts := fx.options(StdinPath)
	opts.Stdin = strings.NewReader(`{"targetFile": "main.tf", "findings": [{"id": "R", "title": "t", "severity": "low"}]}`)

	if err := Run(opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(fx.stdout.String(), "Tested main.tf, found 1 issues") {
		t.Fatalf("unexpected output:\n%s", fx.stdout.String())
	}
}

func TestRunMultipleSetsPrintsSummary(t *testing.T) {
	fx := newFixture(t)
	a := fx.write(t, "a.json", iacDoc)
	b := fx.write(t, "b.yaml", "targetFile: b.tf\nkind: Terraform\nfindings:\n  - id: T1\n    title: open\n    severity: medium\n")

	if err := Run(fx.options(a, b)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(fx.stdout.String(), "High: 1  Medium: 1  Low: 1  Total: 3") {
		t.Fatalf("missing severity summary:\n%s", fx.stdout.String())
	}
}

func TestRunNoInput(t *testing.T) {
	fx := newFixture(t)
	if err := Run(fx.options()); err == nil {
		t.Fatalf("expected error without input files")
	}
}

func TestRunReportsRenderErrors(t *testing.T) {
	fx := newFixture(t)
	path := fx.write(t, "bad.json", `{"findings": [{"id": "X", "severity": "urgent"}]}`)
	err := Run(fx.options(path))
	if !errors.Is(err, report.ErrInvalidSeverity) {
		t.Fatalf("expected ErrInvalidSeverity, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error should name the input file: %v", err)
	}
}

func TestRunColoredSummaryFollowsPolicy(t *testing.T) {
	fx := newFixture(t)
	a := fx.write(t, "a.json", iacDoc)
	b := fx.write(t, "b.json", iacDoc)
	fx.write(t, "policy.yaml", "color: always\n")

	if err := Run(fx.options(a, b)); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if !strings.Contains(fx.stdout.String(), ui.ColorRed+"High: 2  Medium: 0  Low: 2  Total: 4"+ui.ColorReset) {
		t.Fatalf("expected colored severity summary:\n%q", fx.stdout.String())
	}

	fx.stdout.Reset()
	opts := fx.options(a, b)
	opts.NoColor = true
	if err := Run(opts); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if strings.Contains(fx.stdout.String(), "\x1b[") {
		t.Fatalf("--no-color output contains escapes: %q", fx.stdout.String())
	}
}
