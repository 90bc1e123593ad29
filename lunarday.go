// Package lunarday converts solar (Gregorian) dates into Korean lunisolar
// calendar dates.
//
// Conversion is table driven: the number of days between a fixed epoch
// (solar 2001-01-24, lunar 2001-01-01) and the requested date is walked
// through precomputed per-year and per-month day counts. The built-in table
// covers lunar years 2001 through 2050 and is compiled into this package
// by cmd/genlunar; other tables can be loaded from TOML with [LoadTable].
//
// All time.Time inputs are normalized to KST (Asia/Seoul, UTC+9) before the
// calendar date is extracted.
//
// Basic usage with package-level functions:
//
//	d, err := lunarday.Convert(2023, 1, 22)
//	// d == lunarday.Date{Year: 2023, Month: 1, Day: 1}
//
// For a custom table, create a Converter:
//
//	table, err := lunarday.LoadTableFile("lunar.toml")
//	conv := lunarday.New(table)
//	d, err := conv.FromTime(time.Now())
package lunarday

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Date is a lunar calendar date.
type Date struct {
	Year  int
	Month int
	Day   int
	// Leap reports that the day lies in the leap month inserted after Month.
	Leap bool
}

func (d Date) String() string {
	s := fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	if d.Leap {
		s += " (leap)"
	}
	return s
}

// Converter converts solar dates using a single [Table].
// Create one with [New]. All methods are safe for concurrent use.
type Converter struct {
	table *Table
	log   *zap.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithLogger makes the Converter log rejected dates at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.log = l
		}
	}
}

// New creates a Converter for table. A nil table selects [DefaultTable].
func New(table *Table, opts ...Option) *Converter {
	if table == nil {
		table = DefaultTable()
	}
	c := &Converter{table: table, log: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultConv is the package-level converter used by top-level functions.
var defaultConv = New(nil)

// Table returns the table the Converter reads.
func (c *Converter) Table() *Table { return c.table }

// TotalSolarDayOffset returns the number of days from the table epoch to
// the given solar date. See the package-level [TotalSolarDayOffset] for the
// precondition on dates before the epoch.
func (c *Converter) TotalSolarDayOffset(year, month, day int) int {
	return solarDayOffset(c.table.epoch, year, month, day)
}

// ConvertToLunarDate returns the lunar year, month and day for a solar date.
//
// The input is not validated. Dates before the table epoch give meaningless
// results, and dates past the table coverage panic with an error wrapping
// [ErrOutOfRange]. Use [Converter.Convert] to get errors instead.
func (c *Converter) ConvertToLunarDate(year, month, day int) (int, int, int) {
	y, m, d, _, ok := c.table.resolve(c.TotalSolarDayOffset(year, month, day))
	if !ok {
		sd := date{year: year, month: time.Month(month), day: day}
		panic(fmt.Errorf("%w: %s", ErrOutOfRange, sd))
	}
	return c.table.data.BaseYear + y, m + 1, d + 1
}

// Convert returns the lunar date for a solar date. It returns
// [ErrInvalidDate], [ErrBeforeEpoch] or [ErrOutOfRange] (wrapped) when the
// date cannot be converted with the Converter's table.
func (c *Converter) Convert(year, month, day int) (Date, error) {
	return c.convert(date{year: year, month: time.Month(month), day: day})
}

// FromTime returns the lunar date for the KST calendar date of t.
func (c *Converter) FromTime(t time.Time) (Date, error) {
	return c.convert(dateFromTime(t))
}

// Today returns the lunar date for the current day in KST.
func (c *Converter) Today() (Date, error) {
	return c.FromTime(time.Now())
}

func (c *Converter) convert(sd date) (Date, error) {
	var err error
	switch {
	case !sd.valid():
		err = ErrInvalidDate
	case sd.before(c.table.epoch):
		err = ErrBeforeEpoch
	case sd.after(c.table.last):
		err = ErrOutOfRange
	}
	if err == nil {
		y, m, d, leap, ok := c.table.resolve(solarDayOffset(c.table.epoch, sd.year, int(sd.month), sd.day))
		if ok {
			return Date{Year: c.table.data.BaseYear + y, Month: m + 1, Day: d + 1, Leap: leap}, nil
		}
		err = ErrOutOfRange
	}
	c.log.Debug("solar date rejected", zap.Stringer("date", sd), zap.Error(err))
	return Date{}, fmt.Errorf("%w: %s", err, sd)
}

// resolve locates totalDay, a day offset from the epoch, in the table and
// returns zero-based year, month and day indices. Each unit is found by
// subtracting lengths while the remainder is at least the current length,
// so an offset equal to a cumulative boundary lands on day 0 of the next unit.
// ok is false when the offset runs past the end of the table.
func (t *Table) resolve(totalDay int) (y, m, d int, leap, ok bool) {
	yearDays := t.data.YearDays
	for y < len(yearDays) && totalDay >= yearDays[y] {
		totalDay -= yearDays[y]
		y++
	}
	if y == len(yearDays) {
		return 0, 0, 0, false, false
	}

	var days, frac int
	for ; m < monthsPerYear; m++ {
		days, frac = t.variant(y, m)
		if totalDay < days {
			break
		}
		totalDay -= days
	}
	if m == monthsPerYear {
		return 0, 0, 0, false, false
	}

	d = totalDay
	if d >= frac {
		d -= frac
		leap = frac > 0
	}
	return y, m, d, leap, true
}

// --- Package-level convenience functions ---

// ConvertToLunarDate returns the lunar year, month and day for a solar date
// using the built-in table. See [Converter.ConvertToLunarDate].
func ConvertToLunarDate(year, month, day int) (int, int, int) {
	return defaultConv.ConvertToLunarDate(year, month, day)
}

// Convert returns the lunar date for a solar date using the built-in table.
func Convert(year, month, day int) (Date, error) { return defaultConv.Convert(year, month, day) }

// FromTime returns the lunar date for the KST calendar date of t.
func FromTime(t time.Time) (Date, error) { return defaultConv.FromTime(t) }

// Today returns the lunar date for the current day in KST.
func Today() (Date, error) { return defaultConv.Today() }
