package sarif

import (
	gosarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/MOYARU/prsreport/internal/report"
)

// Location is where a single finding occurrence lives.
type Location struct {
	URI       string
	StartLine int
}

// Locate resolves a finding to its artifact and line. The finding's own
// target file wins over the set's; unknown lines default to 1. The URI is
// passed through unvalidated.
func Locate(set report.FindingSet, f report.Finding) Location {
	uri := f.TargetFile
	if uri == "" {
		uri = set.ArtifactFile()
	}
	line := f.LineNumber
	if line <= 0 {
		line = 1
	}
	return Location{URI: uri, StartLine: line}
}

func (l Location) sarifLocation() *gosarif.Location {
	return gosarif.NewLocationWithPhysicalLocation(
		gosarif.NewPhysicalLocation().
			WithArtifactLocation(gosarif.NewSimpleArtifactLocation(l.URI)).
			WithRegion(gosarif.NewRegion().WithStartLine(l.StartLine)),
	)
}
