// Package daterange computes the named dashboard filter presets and
// validates chronological constraints on date pairs.
package daterange

import (
	"fmt"
	"time"

	"github.com/dkarthick-works/sudden/src/models"
)

// Clock supplies the current time. Production code uses SystemClock;
// tests inject a fixed clock so preset computations are deterministic.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Preset names a formula-derived date range. Custom is recorded, never
// computed: it marks a range where the user supplied a boundary by hand.
type Preset string

const (
	PresetThisMonth  Preset = "this-month"
	PresetLast30Days Preset = "last-30-days"
	PresetYearToDate Preset = "ytd"
	PresetCustom     Preset = "custom"
)

// Range is an inclusive [fromDate, toDate] pair at calendar-date
// granularity, tagged with the preset that produced it.
type Range struct {
	FromDate models.Date `json:"fromDate"`
	ToDate   models.Date `json:"toDate"`
	Preset   Preset      `json:"preset"`
}

// ForPreset computes a named preset range ending today. Both boundaries
// and the tag are set together; a named preset never leaves a stale
// boundary behind.
func ForPreset(p Preset, clock Clock) (Range, error) {
	today := models.DateOf(clock.Now())
	switch p {
	case PresetThisMonth:
		first := models.Date{Year: today.Year, Month: today.Month, Day: 1}
		return Range{FromDate: first, ToDate: today, Preset: p}, nil
	case PresetLast30Days:
		return Range{FromDate: today.AddDays(-30), ToDate: today, Preset: p}, nil
	case PresetYearToDate:
		jan1 := models.Date{Year: today.Year, Month: time.January, Day: 1}
		return Range{FromDate: jan1, ToDate: today, Preset: p}, nil
	default:
		return Range{}, fmt.Errorf("unknown date range preset %q", p)
	}
}

// Default is the range the dashboard opens with.
func Default(clock Clock) Range {
	r, _ := ForPreset(PresetLast30Days, clock)
	return r
}

// WithFrom replaces the lower boundary and tags the range as custom in
// the same step, so the tag can never disagree with the boundaries.
func (r Range) WithFrom(d models.Date) Range {
	r.FromDate = d
	r.Preset = PresetCustom
	return r
}

// WithTo replaces the upper boundary and tags the range as custom.
func (r Range) WithTo(d models.Date) Range {
	r.ToDate = d
	r.Preset = PresetCustom
	return r
}

// Validate rejects ranges whose boundaries are out of order.
func (r Range) Validate() error {
	if r.FromDate.After(r.ToDate) {
		return fmt.Errorf("fromDate %s must not be after toDate %s", r.FromDate, r.ToDate)
	}
	return nil
}
