package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("1h")
	require.NoError(t, err)
	assert.Equal(t, "1hour", p.FileName())

	p, err = ParsePeriod("48hours")
	require.NoError(t, err)
	assert.Equal(t, Period48H, p)

	_, err = ParsePeriod("2h")
	assert.ErrorIs(t, err, ErrUnknownPeriod)
}

func TestEveryPeriodHasFileName(t *testing.T) {
	for _, p := range Periods() {
		assert.True(t, p.Valid())
		assert.NotEmpty(t, p.FileName(), string(p))
	}
	assert.False(t, Period("5h").Valid())
}

func TestTabVisibilityAt(t *testing.T) {
	tests := []struct {
		hour int
		want TabVisibility
	}{
		{0, TabVisibility{false, false, Period6H}},
		{5, TabVisibility{false, false, Period6H}},
		{6, TabVisibility{false, true, Period3H}},
		{8, TabVisibility{false, true, Period3H}},
		{9, TabVisibility{true, true, Period1H}},
		{23, TabVisibility{true, true, Period1H}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TabVisibilityAt(tt.hour), "hour %d", tt.hour)
	}
}

func TestBadgeStep(t *testing.T) {
	assert.Equal(t, 1, BadgeStep(0))
	assert.Equal(t, 1, BadgeStep(15))
	assert.Equal(t, 2, BadgeStep(16))
	assert.Equal(t, 3, BadgeStep(50))
	assert.Equal(t, 4, BadgeStep(51))
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", FormatNumber(999))
	assert.Equal(t, "1.0k", FormatNumber(1000))
	assert.Equal(t, "1.5k", FormatNumber(1500))
	assert.Equal(t, "2.3m", FormatNumber(2_300_000))
	assert.Equal(t, "1.0b", FormatNumber(1_000_000_000))
}
