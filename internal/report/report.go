package report

type Severity string
type Family string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"

	// FamilyConfig covers infrastructure-as-code misconfigurations.
	FamilyConfig Family = "config"
	// FamilyDependency covers vulnerable packages found in containers or manifests.
	FamilyDependency Family = "dependency"
)

// DefaultKind is the resource kind named in config findings when the set
// carries neither a kind nor a project type.
const DefaultKind = "Kubernetes"

type Identifiers struct {
	CWE []string `json:"CWE,omitempty" yaml:"CWE,omitempty"`
	CVE []string `json:"CVE,omitempty" yaml:"CVE,omitempty"`
}

type Finding struct {
	ID          string      `json:"id" yaml:"id"`
	Title       string      `json:"title" yaml:"title"`
	Severity    Severity    `json:"severity" yaml:"severity"`
	SubType     string      `json:"subType,omitempty" yaml:"subType,omitempty"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Path        []string    `json:"path,omitempty" yaml:"path,omitempty"`
	TargetFile  string      `json:"targetFile,omitempty" yaml:"targetFile,omitempty"`
	LineNumber  int         `json:"lineNumber,omitempty" yaml:"lineNumber,omitempty"`
	Identifiers Identifiers `json:"identifiers,omitempty" yaml:"identifiers,omitempty"`
	PackageName string      `json:"packageName,omitempty" yaml:"packageName,omitempty"`
	Name        string      `json:"name,omitempty" yaml:"name,omitempty"`
	Version     string      `json:"version,omitempty" yaml:"version,omitempty"`
	IsNew       bool        `json:"isNew,omitempty" yaml:"isNew,omitempty"`
}

// FindingSet is one tested target and everything found in it. It is
// produced by the caller and never modified by the renderers.
type FindingSet struct {
	Family            Family    `json:"family,omitempty" yaml:"family,omitempty"`
	Kind              string    `json:"kind,omitempty" yaml:"kind,omitempty"`
	ProjectType       string    `json:"projectType,omitempty" yaml:"projectType,omitempty"`
	TargetFile        string    `json:"targetFile,omitempty" yaml:"targetFile,omitempty"`
	DisplayTargetFile string    `json:"displayTargetFile,omitempty" yaml:"displayTargetFile,omitempty"`
	TestedSummary     string    `json:"testedSummary,omitempty" yaml:"testedSummary,omitempty"`
	Findings          []Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
}

// ResolvedFamily returns the declared family, or infers it from the findings:
// any finding with package context makes the set a dependency set.
func (s FindingSet) ResolvedFamily() Family {
	if s.Family != "" {
		return s.Family
	}
	for _, f := range s.Findings {
		if f.PackageName != "" || f.Name != "" {
			return FamilyDependency
		}
	}
	return FamilyConfig
}

// ResolvedKind is the display name of the scanned resource kind.
func (s FindingSet) ResolvedKind() string {
	if s.Kind != "" {
		return s.Kind
	}
	if s.ProjectType != "" {
		return CapitalizeKind(s.ProjectType)
	}
	return DefaultKind
}

// ArtifactFile is the file findings point at when they carry no override.
func (s FindingSet) ArtifactFile() string {
	if s.ResolvedFamily() == FamilyDependency && s.DisplayTargetFile != "" {
		return s.DisplayTargetFile
	}
	return s.TargetFile
}

func CapitalizeKind(projectType string) string {
	switch projectType {
	case "k8sconfig":
		return "Kubernetes"
	case "helmconfig":
		return "Helm"
	case "terraformconfig":
		return "Terraform"
	default:
		return "Infrastructure as Code"
	}
}
