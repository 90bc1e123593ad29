package lunarday

import "time"

// solarEpoch is the solar side of the built-in anchor: solar 2001-01-24 is
// lunar 2001-01-01.
var solarEpoch = date{year: 2001, month: time.January, day: 24}

// solarDayNum holds Gregorian month lengths for a common year.
var solarDayNum = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int) bool {
	return year%400 == 0 || (year%100 != 0 && year%4 == 0)
}

// SolarDaysInMonth returns the number of days in the given Gregorian month.
// The month must be in 1..12; other values panic.
func SolarDaysInMonth(year, month int) int {
	if month != 2 {
		return solarDayNum[month-1]
	}
	if isLeapYear(year) {
		return 29
	}
	return 28
}

// SolarDaysInYear returns 366 for Gregorian leap years and 365 otherwise.
func SolarDaysInYear(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

// TotalSolarDayOffset returns the number of days from the built-in epoch
// (2001-01-24) to the given solar date. The epoch itself is 0.
//
// Whole years are only accumulated forward from the epoch year, so the
// result is meaningless for dates before the epoch. Use [Convert] for a
// checked conversion.
func TotalSolarDayOffset(year, month, day int) int {
	return solarDayOffset(solarEpoch, year, month, day)
}

// solarDayOffset counts days from epoch to (year, month, day).
func solarDayOffset(epoch date, year, month, day int) int {
	total := 0
	for i := epoch.year; i < year; i++ {
		total += SolarDaysInYear(i)
	}
	for i := 1; i < month; i++ {
		total += SolarDaysInMonth(year, i)
	}
	total += day
	for i := 1; i < int(epoch.month); i++ {
		total -= SolarDaysInMonth(epoch.year, i)
	}
	total -= epoch.day
	return total
}
