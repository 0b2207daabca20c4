package model

import (
	"fmt"
	"time"
)

// GridSize is six weeks of seven days.
const GridSize = 42

// WeekDays is the column header order of the grid, Sunday first.
var WeekDays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type CalendarDay struct {
	Date           int           `json:"date"`
	IsCurrentMonth bool          `json:"isCurrentMonth"`
	IsToday        bool          `json:"isToday"`
	Posts          []ContentPost `json:"posts"`
}

// CalendarGrid is a derived projection; it is rebuilt, never patched.
type CalendarGrid struct {
	Year  int           `json:"year"`
	Month int           `json:"month"` // 0-based, January is 0
	Days  []CalendarDay `json:"days"`
}

// CalendarDate is a day picked on the grid. Month is 0-based like the grid.
type CalendarDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// ParseCalendarDate reads a YYYY-MM-DD string.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return CalendarDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return CalendarDate{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}, nil
}

// String renders the date as YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month+1, d.Day)
}

// Valid reports whether the date exists on the calendar.
func (d CalendarDate) Valid() bool {
	if d.Month < 0 || d.Month > 11 || d.Day < 1 {
		return false
	}
	return d.Day <= DaysIn(d.Year, d.Month)
}

// DaysIn returns the number of days of a 0-based month.
func DaysIn(year, month int) int {
	// day 0 of the following month is the last day of this one
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}
