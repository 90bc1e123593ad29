package lunarday

import (
	"errors"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var conversionTests = []struct {
	name  string
	solar [3]int
	want  Date
}{
	{"epoch", [3]int{2001, 1, 24}, Date{2001, 1, 1, false}},
	{"end of first month", [3]int{2001, 2, 22}, Date{2001, 1, 30, false}},
	{"start of second month", [3]int{2001, 2, 23}, Date{2001, 2, 1, false}},
	{"month before a leap month", [3]int{2001, 4, 24}, Date{2001, 4, 1, false}},
	{"leap month 2001", [3]int{2001, 5, 23}, Date{2001, 4, 1, true}},
	{"month after a leap month", [3]int{2001, 6, 21}, Date{2001, 5, 1, false}},
	{"lunar new year 2002", [3]int{2002, 2, 12}, Date{2002, 1, 1, false}},
	{"leap month 2004", [3]int{2004, 3, 21}, Date{2004, 2, 1, true}},
	{"last day of a leap month", [3]int{2006, 9, 21}, Date{2006, 7, 29, true}},
	{"leap month 2012", [3]int{2012, 4, 21}, Date{2012, 3, 1, true}},
	{"leap month 2017", [3]int{2017, 6, 24}, Date{2017, 5, 1, true}},
	{"regular month 2020", [3]int{2020, 4, 23}, Date{2020, 4, 1, false}},
	{"leap month 2020", [3]int{2020, 5, 23}, Date{2020, 4, 1, true}},
	{"lunar new year's eve 2022", [3]int{2023, 1, 21}, Date{2022, 12, 30, false}},
	{"lunar new year 2023", [3]int{2023, 1, 22}, Date{2023, 1, 1, false}},
	{"leap month 2023", [3]int{2023, 3, 22}, Date{2023, 2, 1, true}},
	{"lunar new year 2024", [3]int{2024, 2, 10}, Date{2024, 1, 1, false}},
	{"lunar new year 2025", [3]int{2025, 1, 29}, Date{2025, 1, 1, false}},
	{"lunar new year 2026", [3]int{2026, 2, 17}, Date{2026, 1, 1, false}},
	{"autumn 2026", [3]int{2026, 10, 18}, Date{2026, 9, 8, false}},
	{"leap month 2036", [3]int{2036, 8, 21}, Date{2036, 6, 29, true}},
	{"after leap month 2036", [3]int{2036, 8, 22}, Date{2036, 7, 1, false}},
	{"last covered day", [3]int{2051, 2, 9}, Date{2050, 12, 29, false}},
}

func TestConvert(t *testing.T) {
	t.Parallel()

	for _, tt := range conversionTests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.solar[0], tt.solar[1], tt.solar[2])
			if err != nil {
				t.Fatalf("Convert(%v) error = %v", tt.solar, err)
			}
			if got != tt.want {
				t.Errorf("Convert(%v) = %s, want %s", tt.solar, got, tt.want)
			}
		})
	}
}

func TestConvertToLunarDate(t *testing.T) {
	t.Parallel()

	for _, tt := range conversionTests {
		t.Run(tt.name, func(t *testing.T) {
			y, m, dd := ConvertToLunarDate(tt.solar[0], tt.solar[1], tt.solar[2])
			if y != tt.want.Year || m != tt.want.Month || dd != tt.want.Day {
				t.Errorf("ConvertToLunarDate(%v) = (%d, %d, %d), want (%d, %d, %d)",
					tt.solar, y, m, dd, tt.want.Year, tt.want.Month, tt.want.Day)
			}
		})
	}
}

func TestConvertToLunarDate_YearBoundaryInclusive(t *testing.T) {
	t.Parallel()

	// The offset of 2023-01-22 equals the sum of lunar years 2001..2022,
	// so it must land on the first day of the next year, not past the end
	// of the previous one.
	var cumulative int
	for _, n := range DefaultTable().Data().YearDays[:22] {
		cumulative += n
	}
	if got := TotalSolarDayOffset(2023, 1, 22); got != cumulative {
		t.Fatalf("TotalSolarDayOffset(2023, 1, 22) = %d, want %d", got, cumulative)
	}
	y, m, dd := ConvertToLunarDate(2023, 1, 22)
	if y != 2023 || m != 1 || dd != 1 {
		t.Errorf("ConvertToLunarDate(2023, 1, 22) = (%d, %d, %d), want (2023, 1, 1)", y, m, dd)
	}
}

func TestConvertToLunarDate_PanicsBeyondTable(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic past the end of the table")
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrOutOfRange) {
			t.Errorf("panic value = %v, want an error wrapping ErrOutOfRange", r)
		}
	}()
	ConvertToLunarDate(2051, 2, 10)
}

func TestConvertToLunarDate_BeforeEpochUnchecked(t *testing.T) {
	t.Parallel()

	// Not a valid lunar date; the raw conversion does not guard the epoch.
	y, m, dd := ConvertToLunarDate(2001, 1, 23)
	if y != 2001 || m != 1 || dd != 0 {
		t.Errorf("ConvertToLunarDate(2001, 1, 23) = (%d, %d, %d), want (2001, 1, 0)", y, m, dd)
	}
}

func TestConvert_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		solar [3]int
		want  error
	}{
		{"month zero", [3]int{2023, 0, 1}, ErrInvalidDate},
		{"month thirteen", [3]int{2023, 13, 1}, ErrInvalidDate},
		{"day zero", [3]int{2023, 1, 0}, ErrInvalidDate},
		{"April 31", [3]int{2023, 4, 31}, ErrInvalidDate},
		{"Feb 29 in a common year", [3]int{2023, 2, 29}, ErrInvalidDate},
		{"day before epoch", [3]int{2001, 1, 23}, ErrBeforeEpoch},
		{"year before epoch", [3]int{2000, 12, 31}, ErrBeforeEpoch},
		{"day after coverage", [3]int{2051, 2, 10}, ErrOutOfRange},
		{"far future", [3]int{2100, 1, 1}, ErrOutOfRange},
		{"huge year", [3]int{1 << 40, 1, 1}, ErrOutOfRange},
		{"max year", [3]int{math.MaxInt, 12, 31}, ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.solar[0], tt.solar[1], tt.solar[2])
			if !errors.Is(err, tt.want) {
				t.Fatalf("Convert(%v) error = %v, want %v", tt.solar, err, tt.want)
			}
			if got != (Date{}) {
				t.Errorf("Convert(%v) = %s, want zero Date on error", tt.solar, got)
			}
		})
	}
}

func TestConvert_ErrorMentionsDate(t *testing.T) {
	t.Parallel()

	_, err := Convert(2051, 2, 10)
	if err == nil || !strings.Contains(err.Error(), "2051-02-10") {
		t.Errorf("error = %v, want it to mention 2051-02-10", err)
	}
}

func TestConvert_AgreesWithRawAcrossCoverage(t *testing.T) {
	t.Parallel()

	first, last := Coverage()
	var prev Date
	newYears := 0
	for cur := first; !cur.After(last); cur = cur.AddDate(0, 0, 1) {
		y, m, dd := cur.Year(), int(cur.Month()), cur.Day()
		got, err := Convert(y, m, dd)
		if err != nil {
			t.Fatalf("Convert(%s) error = %v", cur.Format(time.DateOnly), err)
		}
		ry, rm, rd := ConvertToLunarDate(y, m, dd)
		if ry != got.Year || rm != got.Month || rd != got.Day {
			t.Fatalf("%s: raw (%d, %d, %d) disagrees with %s", cur.Format(time.DateOnly), ry, rm, rd, got)
		}
		if got.Day < 1 || got.Day > 30 || got.Month < 1 || got.Month > 12 {
			t.Fatalf("%s: out of range lunar date %s", cur.Format(time.DateOnly), got)
		}

		if cur.Equal(first) {
			prev = got
			continue
		}
		sameMonth := got.Year == prev.Year && got.Month == prev.Month && got.Leap == prev.Leap
		switch {
		case sameMonth && got.Day == prev.Day+1:
		case !sameMonth && got.Day == 1:
			if got.Year == prev.Year+1 {
				newYears++
			}
		default:
			t.Fatalf("%s: %s does not follow %s", cur.Format(time.DateOnly), got, prev)
		}
		prev = got
	}
	if newYears != DefaultTable().Years()-1 {
		t.Errorf("saw %d lunar new years, want %d", newYears, DefaultTable().Years()-1)
	}
}

func TestFromTime_KSTNormalization(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		time time.Time
		want Date
	}{
		{
			// 2023-01-21 15:00 UTC = 2023-01-22 00:00 KST
			"UTC afternoon is lunar new year in KST",
			time.Date(2023, time.January, 21, 15, 0, 0, 0, time.UTC),
			Date{2023, 1, 1, false},
		},
		{
			// 2023-01-21 14:59 UTC = 2023-01-21 23:59 KST
			"UTC afternoon is still new year's eve in KST",
			time.Date(2023, time.January, 21, 14, 59, 0, 0, time.UTC),
			Date{2022, 12, 30, false},
		},
		{
			"KST late evening",
			time.Date(2023, time.January, 22, 23, 59, 59, 0, kstZone),
			Date{2023, 1, 1, false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromTime(tt.time)
			if err != nil {
				t.Fatalf("FromTime(%s) error = %v", tt.time.Format(time.RFC3339), err)
			}
			if got != tt.want {
				t.Errorf("FromTime(%s) = %s, want %s", tt.time.Format(time.RFC3339), got, tt.want)
			}
		})
	}
}

func TestToday(t *testing.T) {
	t.Parallel()

	if !Covers(time.Now()) {
		t.Skip("current date is outside the built-in table")
	}
	got, err := Today()
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	want, _ := FromTime(time.Now())
	// The two calls may straddle midnight; only check the year.
	if got.Year != want.Year && got.Year+1 != want.Year {
		t.Errorf("Today() = %s, want close to %s", got, want)
	}
}

func TestNew_NilTableUsesDefault(t *testing.T) {
	t.Parallel()

	if New(nil).Table() != DefaultTable() {
		t.Error("New(nil) should use the built-in table")
	}
}

func TestNew_CustomBaseYear(t *testing.T) {
	t.Parallel()

	data := DefaultTable().Data()
	data.BaseYear = 1
	table, err := NewTable(data)
	if err != nil {
		t.Fatalf("NewTable error = %v", err)
	}
	conv := New(table)

	y, m, dd := conv.ConvertToLunarDate(2001, 1, 24)
	if y != 1 || m != 1 || dd != 1 {
		t.Errorf("ConvertToLunarDate(2001, 1, 24) = (%d, %d, %d), want (1, 1, 1)", y, m, dd)
	}
	got, err := conv.Convert(2023, 1, 22)
	if err != nil || got != (Date{23, 1, 1, false}) {
		t.Errorf("Convert(2023, 1, 22) = %s, %v; want 0023-01-01", got, err)
	}
	// The package-level converter is unaffected.
	if got, _ := Convert(2023, 1, 22); got.Year != 2023 {
		t.Errorf("default Convert year = %d, want 2023", got.Year)
	}
}

func TestNew_CustomEpoch(t *testing.T) {
	t.Parallel()

	// Start the table one lunar year later: lunar 2002-01-01 is solar 2002-02-12.
	data := DefaultTable().Data()
	data.BaseYear = 2002
	data.Epoch = "2002-02-12"
	data.YearDays = data.YearDays[1:]
	data.MonthIndex = data.MonthIndex[1:]
	table, err := NewTable(data)
	if err != nil {
		t.Fatalf("NewTable error = %v", err)
	}
	conv := New(table)

	if got := conv.TotalSolarDayOffset(2002, 2, 12); got != 0 {
		t.Errorf("TotalSolarDayOffset at the custom epoch = %d, want 0", got)
	}
	for _, tt := range conversionTests[6:] {
		got, err := conv.Convert(tt.solar[0], tt.solar[1], tt.solar[2])
		if err != nil || got != tt.want {
			t.Errorf("Convert(%v) = %s, %v; want %s", tt.solar, got, err, tt.want)
		}
	}
	if _, err := conv.Convert(2002, 2, 11); !errors.Is(err, ErrBeforeEpoch) {
		t.Errorf("Convert(2002, 2, 11) error = %v, want ErrBeforeEpoch", err)
	}
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	conv := New(nil, WithLogger(zap.New(core)))

	if _, err := conv.Convert(2023, 1, 22); err != nil {
		t.Fatalf("Convert error = %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("successful conversion logged %d entries", logs.Len())
	}

	if _, err := conv.Convert(2000, 1, 1); err == nil {
		t.Fatal("expected an error before the epoch")
	}
	entries := logs.FilterMessage("solar date rejected").All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["date"]; got != "2000-01-01" {
		t.Errorf("logged date = %v, want 2000-01-01", got)
	}
}

func TestWithLogger_Nil(t *testing.T) {
	t.Parallel()

	conv := New(nil, WithLogger(nil))
	if _, err := conv.Convert(2000, 1, 1); err == nil {
		t.Fatal("expected an error before the epoch")
	}
}

func TestDateString(t *testing.T) {
	t.Parallel()

	if got := (Date{2023, 1, 1, false}).String(); got != "2023-01-01" {
		t.Errorf("String() = %q", got)
	}
	if got := (Date{2020, 4, 1, true}).String(); got != "2020-04-01 (leap)" {
		t.Errorf("String() = %q", got)
	}
}

// --- Concurrency tests ---

func TestConcurrentAccess(t *testing.T) {
	conv := New(nil)
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tt := conversionTests[i%len(conversionTests)]
			got, err := conv.Convert(tt.solar[0], tt.solar[1], tt.solar[2])
			if err != nil || got != tt.want {
				t.Errorf("Convert(%v) = %s, %v; want %s", tt.solar, got, err, tt.want)
			}
			if n, err := conv.LunarYearDays(2023); n != 384 || err != nil {
				t.Errorf("LunarYearDays(2023) = %d, %v; want 384, nil", n, err)
			}
		}(i)
	}

	wg.Wait()
}
