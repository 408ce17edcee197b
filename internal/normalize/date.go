package normalize

import (
	"strconv"
	"strings"
)

// Precision marks how much of a date is actually known. Watchlist records
// routinely carry year-only birth dates.
type Precision int

const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
)

// Date is a partial-precision calendar date. Month and Day are zero when
// below the stated precision.
type Date struct {
	Year      int
	Month     int
	Day       int
	Precision Precision
}

// ParseDate accepts "2006", "2006-01" and "2006-01-02" forms. Malformed
// values are reported via ok=false, never as an error; the caller degrades
// the feature to not-applicable.
func ParseDate(s string) (Date, bool) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 3)
	if len(parts) == 0 || parts[0] == "" {
		return Date{}, false
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1000 || year > 9999 {
		return Date{}, false
	}
	d := Date{Year: year, Precision: PrecisionYear}
	if len(parts) > 1 {
		month, err := strconv.Atoi(parts[1])
		if err != nil || month < 1 || month > 12 {
			return Date{}, false
		}
		d.Month = month
		d.Precision = PrecisionMonth
	}
	if len(parts) > 2 {
		day, err := strconv.Atoi(parts[2])
		if err != nil || day < 1 || day > 31 {
			return Date{}, false
		}
		d.Day = day
		d.Precision = PrecisionDay
	}
	return d, true
}

// SharedPrecision returns the coarsest precision both dates carry.
func SharedPrecision(a, b Date) Precision {
	if a.Precision < b.Precision {
		return a.Precision
	}
	return b.Precision
}

// EqualAt reports whether two dates agree when both are truncated to the
// given precision.
func EqualAt(a, b Date, p Precision) bool {
	if a.Year != b.Year {
		return false
	}
	if p >= PrecisionMonth && a.Month != b.Month {
		return false
	}
	if p >= PrecisionDay && a.Day != b.Day {
		return false
	}
	return true
}
