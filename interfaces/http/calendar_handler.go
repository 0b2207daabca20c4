package http

import (
	"net/http"
	"time"

	"content-planner/domain/dto"
	"content-planner/domain/model"
	"content-planner/usecase"

	"github.com/gin-gonic/gin"
)

type ICalendarHandler interface {
	GetCalendar(ctx *gin.Context)
}

type CalendarHandler struct {
	calendarUsecase usecase.ICalendarUsecase
}

func NewCalendarHandler(uc usecase.ICalendarUsecase) ICalendarHandler {
	return &CalendarHandler{calendarUsecase: uc}
}

// GetCalendar returns the 42-cell projection of ?year=&month= (0-based),
// defaulting to the current month. ?visible=N truncates each cell to N posts.
func (h *CalendarHandler) GetCalendar(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	var q dto.CalendarQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "year, month and visible must be integers"})
		return
	}
	year, month := h.calendarUsecase.CurrentMonth()
	if q.Year != nil {
		year = *q.Year
	}
	if q.Month != nil {
		month = *q.Month
	}

	grid, err := h.calendarUsecase.GetMonth(ctx.Request.Context(), userID, year, month)
	if err != nil {
		respondError(ctx, err, "Failed to load calendar")
		return
	}

	limit := -1
	if q.Visible != nil {
		limit = *q.Visible
	}
	ctx.JSON(http.StatusOK, toCalendarResponse(grid, limit))
}

func toCalendarResponse(grid *model.CalendarGrid, limit int) dto.CalendarResponse {
	res := dto.CalendarResponse{
		Year:       grid.Year,
		Month:      grid.Month,
		MonthLabel: time.Month(grid.Month+1).String(),
		WeekDays:   model.WeekDays,
		Days:       make([]dto.CalendarDayResponse, 0, len(grid.Days)),
	}
	for _, day := range grid.Days {
		posts, more := usecase.VisiblePosts(day, limit)
		day.Posts = posts
		res.Days = append(res.Days, dto.CalendarDayResponse{CalendarDay: day, More: more})
	}
	return res
}
