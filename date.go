package lunarday

import (
	"fmt"
	"time"
)

// kstZone is Korea Standard Time (UTC+9, no daylight saving). The lunar
// tables count civil days in Korea, so every time.Time input is normalised
// to KST before its calendar date is taken.
var kstZone = time.FixedZone("Asia/Seoul", 9*60*60)

// date is an internal comparable solar date.
// Users work with time.Time or plain integers; this type is not exported.
type date struct {
	year  int
	month time.Month
	day   int
}

// dateFromTime converts a time.Time to a date by first normalizing to KST.
func dateFromTime(t time.Time) date {
	kt := t.In(kstZone)
	y, m, d := kt.Date()
	return date{year: y, month: m, day: d}
}

func (d date) toTime() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// valid reports whether the month is 1..12 and the day exists in that month.
func (d date) valid() bool {
	if d.month < time.January || d.month > time.December {
		return false
	}
	return d.day >= 1 && d.day <= SolarDaysInMonth(d.year, int(d.month))
}

func (d date) before(other date) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

func (d date) after(other date) bool { return other.before(d) }

func (d date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, int(d.month), d.day)
}
