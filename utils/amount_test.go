package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"1,200":      "1200",
		" 600 ":      "600",
		"(1,000)":    "-1000",
		"△2,500":     "-2500",
		"-42":        "-42",
		"+7":         "7",
		"12.5%":      "12.5",
		"3,000백만원": "3000",
	}
	for in, want := range cases {
		got, err := ParseAmount(in)
		require.NoError(t, err, in)
		assert.True(t, decimal.RequireFromString(want).Equal(got), "%s -> %s", in, got)
	}
}

func TestParseAmountRejectsNonNumeric(t *testing.T) {
	for _, in := range []string{"", "N/A", ",,,", "1,2,3abc"} {
		_, err := ParseAmount(in)
		assert.Error(t, err, in)
	}
}

func TestFormatGrouped(t *testing.T) {
	assert.Equal(t, "0", FormatGrouped(decimal.Zero))
	assert.Equal(t, "999", FormatGrouped(decimal.NewFromInt(999)))
	assert.Equal(t, "1,000", FormatGrouped(decimal.NewFromInt(1000)))
	assert.Equal(t, "1,234,567", FormatGrouped(decimal.NewFromInt(1234567)))
	assert.Equal(t, "-12,345", FormatGrouped(decimal.NewFromInt(-12345)))
	assert.Equal(t, "1,001", FormatGrouped(decimal.RequireFromString("1000.6")))
}

func TestHasDigit(t *testing.T) {
	assert.True(t, HasDigit("a1"))
	assert.False(t, HasDigit("금액"))
	assert.False(t, HasDigit(""))
}
