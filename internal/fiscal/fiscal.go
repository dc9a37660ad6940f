// Package fiscal maps calendar dates onto fiscal-year month indexes.
package fiscal

import "time"

// Months is the number of buckets in a fiscal year.
const Months = 12

// DefaultStart is April, the start of the Indian fiscal year.
const DefaultStart = time.April

// MonthIndex returns the zero-based fiscal month index of a calendar month.
// With an April start, April is 0 and March is 11.
func MonthIndex(m time.Month, start time.Month) int {
	if start < time.January || start > time.December {
		start = DefaultStart
	}
	return (int(m) - int(start) + Months) % Months
}

// IndexOf returns the fiscal month index of a date.
func IndexOf(t time.Time, start time.Month) int {
	return MonthIndex(t.Month(), start)
}

// MonthAt is the inverse of MonthIndex.
func MonthAt(index int, start time.Month) time.Month {
	if start < time.January || start > time.December {
		start = DefaultStart
	}
	return time.Month((int(start)-1+index%Months+Months)%Months + 1)
}

// Label returns the short month name for a fiscal index, e.g. "Apr".
func Label(index int, start time.Month) string {
	return MonthAt(index, start).String()[:3]
}
