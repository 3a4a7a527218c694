package report

import "strings"

const (
	overviewHeading = "## Overview"
	sectionHeading  = "##"
	detailsHeading  = "# Details"
)

// ExtractOverview returns the trimmed text between the first "## Overview"
// heading and the next "##" or "# Details" marker, whichever comes first.
// A description with no overview heading, or with no marker after it,
// yields "".
func ExtractOverview(description string) string {
	start := strings.Index(description, overviewHeading)
	if start < 0 {
		return ""
	}
	start += len(overviewHeading)
	rest := description[start:]

	end := strings.Index(rest, sectionHeading)
	if d := strings.Index(rest, detailsHeading); d >= 0 && (end < 0 || d < end) {
		end = d
	}
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
