package dto

import "content-planner/domain/model"

// CalendarQuery is bound from GET /api/calendar. Month is 0-based; nil means current.
type CalendarQuery struct {
	Year    *int `form:"year"`
	Month   *int `form:"month"`
	Visible *int `form:"visible"`
}

type CalendarDayResponse struct {
	model.CalendarDay
	More int `json:"more"`
}

type CalendarResponse struct {
	Year       int                   `json:"year"`
	Month      int                   `json:"month"`
	MonthLabel string                `json:"monthLabel"`
	WeekDays   []string              `json:"weekDays"`
	Days       []CalendarDayResponse `json:"days"`
}
