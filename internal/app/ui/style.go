package ui

import "github.com/fatih/color"

// Styler applies terminal styling to report text. The zero value renders
// plain text, which is what non-interactive output gets.
type Styler struct {
	enabled bool
}

func NewStyler(enabled bool) Styler {
	return Styler{enabled: enabled}
}

func (s Styler) Enabled() bool {
	return s.enabled
}

// Paint wraps text with the given attributes. Each call builds its own
// color.Color so concurrent renders never share state.
func (s Styler) Paint(text string, attrs ...color.Attribute) string {
	if !s.enabled || len(attrs) == 0 {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

func (s Styler) Bold(text string) string {
	return s.Paint(text, color.Bold)
}
