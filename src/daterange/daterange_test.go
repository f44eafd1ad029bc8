package daterange

import (
	"testing"
	"time"

	"github.com/dkarthick-works/sudden/src/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

// All preset tests pin the clock to 2025-03-31.
var march31 = fixedClock{t: time.Date(2025, 3, 31, 14, 0, 0, 0, time.UTC)}

func TestForPresetThisMonth(t *testing.T) {
	r, err := ForPreset(PresetThisMonth, march31)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-01", r.FromDate.String())
	assert.Equal(t, "2025-03-31", r.ToDate.String())
	assert.Equal(t, PresetThisMonth, r.Preset)
}

func TestForPresetLast30Days(t *testing.T) {
	r, err := ForPreset(PresetLast30Days, march31)
	require.NoError(t, err)
	// 30 calendar days back from Mar 31 lands on Mar 1.
	assert.Equal(t, "2025-03-01", r.FromDate.String())
	assert.Equal(t, "2025-03-31", r.ToDate.String())
}

func TestForPresetLast30DaysAcrossLeapFebruary(t *testing.T) {
	clock := fixedClock{t: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)}
	r, err := ForPreset(PresetLast30Days, clock)
	require.NoError(t, err)
	// Feb 2024 has 29 days, so calendar subtraction reaches Feb 14.
	assert.Equal(t, "2024-02-14", r.FromDate.String())
}

func TestForPresetYearToDate(t *testing.T) {
	r, err := ForPreset(PresetYearToDate, march31)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", r.FromDate.String())
	assert.Equal(t, "2025-03-31", r.ToDate.String())
}

func TestForPresetAlwaysEndsToday(t *testing.T) {
	for _, p := range []Preset{PresetThisMonth, PresetLast30Days, PresetYearToDate} {
		r, err := ForPreset(p, march31)
		require.NoError(t, err)
		assert.Equal(t, "2025-03-31", r.ToDate.String(), "preset %s", p)
	}
}

func TestForPresetRejectsCustom(t *testing.T) {
	_, err := ForPreset(PresetCustom, march31)
	assert.Error(t, err)
}

func TestDefaultIsLast30Days(t *testing.T) {
	r := Default(march31)
	assert.Equal(t, PresetLast30Days, r.Preset)
	assert.Equal(t, "2025-03-01", r.FromDate.String())
}

func TestManualBoundaryFlipsPresetToCustom(t *testing.T) {
	r, err := ForPreset(PresetThisMonth, march31)
	require.NoError(t, err)

	d, err := models.ParseDate("2025-03-10")
	require.NoError(t, err)

	custom := r.WithFrom(d)
	assert.Equal(t, PresetCustom, custom.Preset)
	assert.Equal(t, "2025-03-10", custom.FromDate.String())
	assert.Equal(t, "2025-03-31", custom.ToDate.String())

	custom = r.WithTo(d)
	assert.Equal(t, PresetCustom, custom.Preset)
	assert.Equal(t, "2025-03-10", custom.ToDate.String())
}

func TestValidateRejectsInvertedRange(t *testing.T) {
	from, _ := models.ParseDate("2025-03-20")
	to, _ := models.ParseDate("2025-03-10")

	r := Range{FromDate: from, ToDate: to, Preset: PresetCustom}
	assert.Error(t, r.Validate())

	assert.NoError(t, Range{FromDate: to, ToDate: from}.Validate())
	assert.NoError(t, Range{FromDate: from, ToDate: from}.Validate())
}
