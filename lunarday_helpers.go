package lunarday

import (
	"fmt"
	"time"
)

// LunarYearDays returns the number of days in the given lunar year,
// including any leap month.
func (c *Converter) LunarYearDays(year int) (int, error) {
	y, ok := c.table.yearIndex(year)
	if !ok {
		return 0, fmt.Errorf("%w: lunar year %d", ErrOutOfRange, year)
	}
	return c.table.data.YearDays[y], nil
}

// LunarMonthDays returns the length of the given lunar month and of the
// leap month inserted after it (0 when there is none).
func (c *Converter) LunarMonthDays(year, month int) (days, leapDays int, err error) {
	if month < 1 || month > monthsPerYear {
		return 0, 0, fmt.Errorf("%w: lunar month %d", ErrInvalidDate, month)
	}
	y, ok := c.table.yearIndex(year)
	if !ok {
		return 0, 0, fmt.Errorf("%w: lunar year %d", ErrOutOfRange, year)
	}
	total, frac := c.table.variant(y, month-1)
	if frac == 0 {
		return total, 0, nil
	}
	return frac, total - frac, nil
}

// Coverage returns the first and last solar dates (midnight UTC) the
// Converter can convert.
func (c *Converter) Coverage() (first, last time.Time) {
	return c.table.Coverage()
}

// Covers reports whether the KST calendar date of t can be converted.
func (c *Converter) Covers(t time.Time) bool {
	first, last := c.Coverage()
	day := dateFromTime(t).toTime()
	return !day.Before(first) && !day.After(last)
}

// --- Package-level convenience functions ---

// LunarYearDays returns the number of days in a lunar year of the built-in table.
func LunarYearDays(year int) (int, error) { return defaultConv.LunarYearDays(year) }

// LunarMonthDays returns the regular and leap lengths of a lunar month of
// the built-in table.
func LunarMonthDays(year, month int) (days, leapDays int, err error) {
	return defaultConv.LunarMonthDays(year, month)
}

// Coverage returns the solar date range of the built-in table.
func Coverage() (first, last time.Time) { return defaultConv.Coverage() }

// Covers reports whether the built-in table can convert the date of t.
func Covers(t time.Time) bool { return defaultConv.Covers(t) }
