// Package input decodes finding documents produced by scanners into
// report.FindingSet values.
package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MOYARU/prsreport/internal/report"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// StdinPath names standard input in a path list. It is decoded as JSON.
const StdinPath = "-"

// ErrUnsupportedFormat is returned for file extensions other than
// .json, .yaml and .yml.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// rawFinding accepts the field names of both scanner shapes on top of the
// canonical ones.
type rawFinding struct {
	report.Finding  `yaml:",inline"`
	CloudConfigPath []string `json:"cloudConfigPath,omitempty" yaml:"cloudConfigPath,omitempty"`
	From            []string `json:"from,omitempty" yaml:"from,omitempty"`
}

// document is one finding set in any of the accepted shapes:
//
//	{"findings": [...]}                    canonical
//	{"vulnerabilities": [...]}             container / dependency scan
//	{"result": {"cloudConfigResults": []}} infrastructure-as-code scan
type document struct {
	Family            report.Family `json:"family,omitempty" yaml:"family,omitempty"`
	Kind              string        `json:"kind,omitempty" yaml:"kind,omitempty"`
	ProjectType       string        `json:"projectType,omitempty" yaml:"projectType,omitempty"`
	TargetFile        string        `json:"targetFile,omitempty" yaml:"targetFile,omitempty"`
	DisplayTargetFile string        `json:"displayTargetFile,omitempty" yaml:"displayTargetFile,omitempty"`
	TestedSummary     string        `json:"testedSummary,omitempty" yaml:"testedSummary,omitempty"`
	Findings          []rawFinding  `json:"findings,omitempty" yaml:"findings,omitempty"`
	Vulnerabilities   []rawFinding  `json:"vulnerabilities,omitempty" yaml:"vulnerabilities,omitempty"`
	Result            *struct {
		CloudConfigResults []rawFinding `json:"cloudConfigResults,omitempty" yaml:"cloudConfigResults,omitempty"`
	} `json:"result,omitempty" yaml:"result,omitempty"`
}

// FormatFor picks the decoder from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads every finding set stored in path. A JSON file may hold a single
// object or an array of them; a YAML file may hold several documents.
func Load(path string) ([]report.FindingSet, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sets, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sets, nil
}

// LoadAll loads each path in order and concatenates the sets. StdinPath
// reads from stdin.
func LoadAll(paths []string, stdin io.Reader) ([]report.FindingSet, error) {
	var out []report.FindingSet
	for _, p := range paths {
		if p == StdinPath {
			sets, err := Decode(stdin, FormatJSON)
			if err != nil {
				return nil, fmt.Errorf("<stdin>: %w", err)
			}
			out = append(out, sets...)
			continue
		}
		sets, err := Load(p)
		if err != nil {
			return nil, err
		}
		out = append(out, sets...)
	}
	return out, nil
}

func Decode(r io.Reader, format Format) ([]report.FindingSet, error) {
	var docs []document
	var err error
	switch format {
	case FormatJSON:
		docs, err = decodeJSON(r)
	case FormatYAML:
		docs, err = decodeYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(format))
	}
	if err != nil {
		return nil, err
	}

	sets := make([]report.FindingSet, 0, len(docs))
	for i, d := range docs {
		set, err := d.normalize()
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func decodeJSON(r io.Reader) ([]document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var docs []document
		if err := json.Unmarshal(trimmed, &docs); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
		return docs, nil
	}
	var d document
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	return []document{d}, nil
}

func decodeYAML(r io.Reader) ([]document, error) {
	dec := yaml.NewDecoder(r)
	var docs []document
	for {
		var d document
		err := dec.Decode(&d)
		if errors.Is(err, io.EOF) {
			return docs, nil
		}
		if err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
		docs = append(docs, d)
	}
}

func (d document) normalize() (report.FindingSet, error) {
	set := report.FindingSet{
		Family:            d.Family,
		Kind:              d.Kind,
		ProjectType:       d.ProjectType,
		TargetFile:        d.TargetFile,
		DisplayTargetFile: d.DisplayTargetFile,
		TestedSummary:     d.TestedSummary,
	}

	raw := d.Findings
	switch {
	case len(d.Vulnerabilities) > 0:
		raw = append(raw, d.Vulnerabilities...)
		if set.Family == "" {
			set.Family = report.FamilyDependency
		}
	case d.Result != nil && len(d.Result.CloudConfigResults) > 0:
		raw = append(raw, d.Result.CloudConfigResults...)
		if set.Family == "" {
			set.Family = report.FamilyConfig
		}
	}

	if len(raw) > 0 {
		set.Findings = make([]report.Finding, 0, len(raw))
	}
	for _, rf := range raw {
		f := rf.Finding
		sev, err := report.ParseSeverity(string(f.Severity))
		if err != nil {
			return report.FindingSet{}, fmt.Errorf("finding %s: %w", f.ID, err)
		}
		f.Severity = sev
		if len(f.Path) == 0 {
			switch {
			case len(rf.CloudConfigPath) > 0:
				f.Path = rf.CloudConfigPath
			case len(rf.From) > 0:
				f.Path = rf.From
			}
		}
		set.Findings = append(set.Findings, f)
	}
	return set, nil
}
