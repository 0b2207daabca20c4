package usecase

import (
	"time"

	"content-planner/domain/model"
)

// BuildDateGrid lays out a 0-based month as 42 cells, Sunday first, with the
// trailing days of the previous month and the leading days of the next one.
// Only a current-month cell matching today's date in today's location is marked.
func BuildDateGrid(year, month int, today time.Time) []model.CalendarDay {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	lead := int(first.Weekday())
	daysInMonth := model.DaysIn(year, month)
	prevDays := first.AddDate(0, 0, -1).Day()

	days := make([]model.CalendarDay, 0, model.GridSize)

	for i := lead - 1; i >= 0; i-- {
		days = append(days, model.CalendarDay{Date: prevDays - i, Posts: []model.ContentPost{}})
	}

	todayIn := today.Year() == year && int(today.Month())-1 == month
	for d := 1; d <= daysInMonth; d++ {
		days = append(days, model.CalendarDay{
			Date:           d,
			IsCurrentMonth: true,
			IsToday:        todayIn && today.Day() == d,
			Posts:          []model.ContentPost{},
		})
	}

	for d := 1; len(days) < model.GridSize; d++ {
		days = append(days, model.CalendarDay{Date: d, Posts: []model.ContentPost{}})
	}

	return days
}
