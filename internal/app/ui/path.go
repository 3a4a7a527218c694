package ui

import "strings"

const pathSeparator = " > "

// PrintPath joins provenance segments into the compact form shown after
// "introduced by", e.g. "[DocId: 0] > input > spec > containers[web]".
func PrintPath(path []string) string {
	parts := make([]string, 0, len(path))
	for _, p := range path {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return strings.Join(parts, pathSeparator)
}
