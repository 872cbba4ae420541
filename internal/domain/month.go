package domain

import (
	"fmt"
	"time"
)

// Month is a calendar month, usable as a map key
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the calendar month containing t
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month()}
}

// Start returns midnight UTC on the first day of the month
func (m Month) Start() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns midnight UTC on the last day of the month
func (m Month) End() time.Time {
	return m.Start().AddDate(0, 1, -1)
}

// Next returns the immediately following calendar month
func (m Month) Next() Month {
	return MonthOf(m.Start().AddDate(0, 1, 0))
}

// Before reports whether m is chronologically before other
func (m Month) Before(other Month) bool {
	if m.Year != other.Year {
		return m.Year < other.Year
	}
	return m.Month < other.Month
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
