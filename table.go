package lunarday

import (
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
)

//go:generate sh -c "cd cmd/genlunar && go run . --input ../../data/lunardays.csv --output ../../table_data.go"

const monthsPerYear = 12

// TableData is the plain form of a lunar day-count table. It is what
// [LoadTable] decodes from TOML and what cmd/genlunar emits.
//
// YearDays[y] is the length of lunar year y, counted from BaseYear.
// MonthIndex[y][m] selects a month variant; MonthDays[v] is the length of
// variant v including any inserted leap segment, and MonthFrac[v] is the
// length of the regular part when the variant carries a leap month (0 otherwise).
type TableData struct {
	BaseYear   int     `toml:"base_year"`
	Epoch      string  `toml:"epoch"` // solar date of lunar BaseYear-01-01, "YYYY-MM-DD"
	YearDays   []int   `toml:"year_days"`
	MonthDays  []int   `toml:"month_days"`
	MonthFrac  []int   `toml:"month_frac"`
	MonthIndex [][]int `toml:"month_index"`
}

func (d TableData) clone() TableData {
	out := TableData{
		BaseYear:  d.BaseYear,
		Epoch:     d.Epoch,
		YearDays:  slices.Clone(d.YearDays),
		MonthDays: slices.Clone(d.MonthDays),
		MonthFrac: slices.Clone(d.MonthFrac),
	}
	out.MonthIndex = make([][]int, len(d.MonthIndex))
	for i, row := range d.MonthIndex {
		out.MonthIndex[i] = slices.Clone(row)
	}
	return out
}

// Table is an immutable lunar day-count table anchored at a solar epoch.
// Create one with [NewTable] or [LoadTable]. A Table is safe for concurrent use.
type Table struct {
	data  TableData
	epoch date
	last  date // last convertible solar date
	days  int
}

var builtinTable = mustTable(builtinTableData)

func mustTable(data TableData) *Table {
	t, err := NewTable(data)
	if err != nil {
		panic(err)
	}
	return t
}

// DefaultTable returns the built-in table covering lunar years 2001..2050
// (solar 2001-01-24 through 2051-02-09).
func DefaultTable() *Table { return builtinTable }

// NewTable builds a Table from a copy of data.
//
// Only the shape is checked: the epoch must parse, every year needs twelve
// month entries and every entry must name an existing variant. Whether the
// year lengths agree with the month lengths is not checked.
func NewTable(data TableData) (*Table, error) {
	ep, err := time.Parse(time.DateOnly, data.Epoch)
	if err != nil {
		return nil, fmt.Errorf("%w: epoch %q: %v", ErrMalformedTable, data.Epoch, err)
	}
	if len(data.YearDays) == 0 {
		return nil, fmt.Errorf("%w: no years", ErrMalformedTable)
	}
	if len(data.MonthIndex) != len(data.YearDays) {
		return nil, fmt.Errorf("%w: %d year lengths but %d month rows",
			ErrMalformedTable, len(data.YearDays), len(data.MonthIndex))
	}
	if len(data.MonthDays) == 0 || len(data.MonthFrac) != len(data.MonthDays) {
		return nil, fmt.Errorf("%w: %d month variants but %d fractions",
			ErrMalformedTable, len(data.MonthDays), len(data.MonthFrac))
	}
	for y, row := range data.MonthIndex {
		if len(row) != monthsPerYear {
			return nil, fmt.Errorf("%w: year %d has %d months",
				ErrMalformedTable, data.BaseYear+y, len(row))
		}
		for m, v := range row {
			if v < 0 || v >= len(data.MonthDays) {
				return nil, fmt.Errorf("%w: year %d month %d: unknown variant %d",
					ErrMalformedTable, data.BaseYear+y, m+1, v)
			}
		}
	}

	t := &Table{
		data:  data.clone(),
		epoch: date{year: ep.Year(), month: ep.Month(), day: ep.Day()},
	}
	for _, n := range t.data.YearDays {
		t.days += n
	}
	last := ep.AddDate(0, 0, t.days-1)
	t.last = date{year: last.Year(), month: last.Month(), day: last.Day()}
	return t, nil
}

// LoadTable decodes a TOML table from r. Unknown keys are rejected.
func LoadTable(r io.Reader) (*Table, error) {
	var data TableData
	md, err := toml.NewDecoder(r).Decode(&data)
	if err != nil {
		return nil, fmt.Errorf("decoding table: %w", err)
	}
	return tableFromTOML(data, md)
}

// LoadTableFile decodes the TOML table stored at path.
func LoadTableFile(path string) (*Table, error) {
	var data TableData
	md, err := toml.DecodeFile(path, &data)
	if err != nil {
		return nil, fmt.Errorf("decoding table %s: %w", path, err)
	}
	t, err := tableFromTOML(data, md)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

func tableFromTOML(data TableData, md toml.MetaData) (*Table, error) {
	if keys := md.Undecoded(); len(keys) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q", ErrMalformedTable, keys[0].String())
	}
	return NewTable(data)
}

// Data returns a deep copy of the table contents.
func (t *Table) Data() TableData { return t.data.clone() }

// BaseYear returns the lunar year of the first table row.
func (t *Table) BaseYear() int { return t.data.BaseYear }

// Epoch returns the solar date (midnight UTC) of lunar BaseYear-01-01.
func (t *Table) Epoch() time.Time { return t.epoch.toTime() }

// Years returns the number of lunar years in the table.
func (t *Table) Years() int { return len(t.data.YearDays) }

// Days returns the number of days the table covers.
func (t *Table) Days() int { return t.days }

// Coverage returns the first and last solar dates (midnight UTC) the table
// can convert.
func (t *Table) Coverage() (first, last time.Time) {
	first = t.epoch.toTime()
	return first, first.AddDate(0, 0, t.days-1)
}

// yearIndex maps a lunar year to its row, reporting false when the table
// does not contain it.
func (t *Table) yearIndex(year int) (int, bool) {
	y := year - t.data.BaseYear
	return y, y >= 0 && y < len(t.data.YearDays)
}

// variant returns the full length and leap fraction of month m of row y.
func (t *Table) variant(y, m int) (days, frac int) {
	v := t.data.MonthIndex[y][m]
	return t.data.MonthDays[v], t.data.MonthFrac[v]
}
