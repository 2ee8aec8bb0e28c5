package resolver

import "fmt"

// Default stage thresholds. Scores are on the 0-100 scale of
// utils.ScoreLabels; the section window is measured in runes.
const (
	DefaultTableThreshold    = 80
	DefaultPatternThreshold  = 75
	DefaultFallbackThreshold = 70
	DefaultSectionWindow     = 5000
)

// Thresholds are the minimum scores each stage accepts, plus the span of
// text the section-anchored stage searches after a heading. A zero field
// selects its default.
type Thresholds struct {
	Table         int `yaml:"table" json:"table"`
	Pattern       int `yaml:"pattern" json:"pattern"`
	Fallback      int `yaml:"fallback" json:"fallback"`
	SectionWindow int `yaml:"section_window" json:"section_window"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		Table:         DefaultTableThreshold,
		Pattern:       DefaultPatternThreshold,
		Fallback:      DefaultFallbackThreshold,
		SectionWindow: DefaultSectionWindow,
	}
}

// WithDefaults replaces zero fields with their defaults.
func (t Thresholds) WithDefaults() Thresholds {
	d := DefaultThresholds()
	if t.Table == 0 {
		t.Table = d.Table
	}
	if t.Pattern == 0 {
		t.Pattern = d.Pattern
	}
	if t.Fallback == 0 {
		t.Fallback = d.Fallback
	}
	if t.SectionWindow == 0 {
		t.SectionWindow = d.SectionWindow
	}
	return t
}

func (t Thresholds) Validate() error {
	scores := []struct {
		name  string
		value int
	}{
		{"table", t.Table},
		{"pattern", t.Pattern},
		{"fallback", t.Fallback},
	}
	for _, s := range scores {
		if s.value < 0 || s.value > 100 {
			return fmt.Errorf("threshold %s must be within 0..100, got %d", s.name, s.value)
		}
	}
	if t.SectionWindow < 0 {
		return fmt.Errorf("section_window must not be negative, got %d", t.SectionWindow)
	}
	return nil
}
