package schedfa

import (
	"fmt"
	"strings"
	"time"
)

// WindowMode selects how the reporting window is derived from an
// assessment year.
type WindowMode int

const (
	// Calendar reports on the calendar year preceding the assessment year,
	// Jan 1 to Dec 31. This is the window Schedule FA asks for.
	Calendar WindowMode = iota
	// Financial reports on the financial year ending in the assessment
	// year, Apr 1 to Mar 31.
	Financial
)

func (m WindowMode) String() string {
	switch m {
	case Calendar:
		return "calendar"
	case Financial:
		return "financial"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseWindowMode parses a window mode name.
func ParseWindowMode(s string) (WindowMode, error) {
	switch strings.ToLower(s) {
	case "calendar":
		return Calendar, nil
	case "financial":
		return Financial, nil
	default:
		return Calendar, fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
	}
}

// ResolveWindow returns the inclusive reporting window for an assessment
// year under the given mode.
func ResolveWindow(mode WindowMode, assessmentYear int) (Range, error) {
	switch mode {
	case Calendar:
		return Range{
			From: NewDate(assessmentYear-1, time.January, 1),
			To:   NewDate(assessmentYear-1, time.December, 31),
		}, nil
	case Financial:
		return Range{
			From: NewDate(assessmentYear-1, time.April, 1),
			To:   NewDate(assessmentYear, time.March, 31),
		}, nil
	default:
		return Range{}, fmt.Errorf("%w: %s for year %d", ErrUnsupportedMode, mode, assessmentYear)
	}
}

// ReferenceDate returns the fixed acquisition date attributed to the
// synthetic aggregate of pre-window holdings: the last day of the calendar
// year two years before the assessment year.
//
// This is a deployment convention of the tax form, not a general rule, so
// the Engine takes it as configuration with this value as the default.
func ReferenceDate(assessmentYear int) Date {
	return NewDate(assessmentYear-2, time.December, 31)
}
