package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithDefaults(t *testing.T) {
	got := Thresholds{Pattern: 60}.WithDefaults()
	assert.Equal(t, Thresholds{Table: 80, Pattern: 60, Fallback: 70, SectionWindow: 5000}, got)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultThresholds().Validate())
	assert.Error(t, Thresholds{Table: 101}.Validate())
	assert.Error(t, Thresholds{Fallback: -1}.Validate())
	assert.Error(t, Thresholds{SectionWindow: -5}.Validate())
}
