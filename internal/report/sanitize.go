package report

import (
	"fmt"
	"regexp"
)

var (
	reBearer    = regexp.MustCompile(`(?i)\b(bearer\s+)([a-z0-9\-\._~\+\/]+=*)`)
	reApiKeyKV  = regexp.MustCompile(`(?i)\b(api[_-]?key|access[_-]?token|token|secret|password|authorization)\s*[:=]\s*([^\s,;]+)`)
	reLongToken = regexp.MustCompile(`\b[a-zA-Z0-9_\-]{32,}\b`)
)

// Redactor masks credentials that leak into finding text (titles and
// markdown descriptions copied from scanned files).
type Redactor struct {
	custom []*regexp.Regexp
}

// NewRedactor compiles the extra patterns configured by the user. Every
// match of a custom pattern is replaced with "<redacted>".
func NewRedactor(patterns []string) (*Redactor, error) {
	r := &Redactor{}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("redaction pattern %q: %w", p, err)
		}
		r.custom = append(r.custom, re)
	}
	return r, nil
}

func (r *Redactor) Text(s string) string {
	out := s
	out = reBearer.ReplaceAllString(out, "${1}<redacted>")
	out = reApiKeyKV.ReplaceAllString(out, "${1}=<redacted>")
	out = reLongToken.ReplaceAllStringFunc(out, func(tok string) string {
		return tok[:4] + "...<redacted>..." + tok[len(tok)-4:]
	})
	for _, re := range r.custom {
		out = re.ReplaceAllString(out, "<redacted>")
	}
	return out
}

func (r *Redactor) Finding(f Finding) Finding {
	f.Title = r.Text(f.Title)
	f.Description = r.Text(f.Description)
	return f
}

// Set returns a redacted copy; the input set is left untouched.
func (r *Redactor) Set(s FindingSet) FindingSet {
	if len(s.Findings) == 0 {
		return s
	}
	out := s
	out.Findings = make([]Finding, len(s.Findings))
	for i, f := range s.Findings {
		out.Findings[i] = r.Finding(f)
	}
	return out
}
