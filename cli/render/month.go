// Package render prints calendar projections for the terminal.
package render

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"content-planner/domain/model"
	"content-planner/usecase"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
)

var platformColors = map[model.Platform]*color.Color{
	model.PlatformInstagram: color.New(color.FgMagenta),
	model.PlatformTikTok:    color.New(color.FgCyan),
	model.PlatformFacebook:  color.New(color.FgBlue),
	model.PlatformLinkedIn:  color.New(color.FgHiBlue),
	model.PlatformX:         color.New(color.FgWhite),
}

var statusColors = map[model.PostStatus]*color.Color{
	model.StatusPublished: color.New(color.FgGreen),
	model.StatusScheduled: color.New(color.FgYellow),
	model.StatusDraft:     color.New(color.Faint),
}

// Month writes the 6x7 grid followed by an agenda of the month's posts,
// showing at most visible posts per day.
func Month(w io.Writer, grid *model.CalendarGrid, visible int) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)
	today := color.New(color.Bold, color.Underline)

	_, _ = fmt.Fprintln(w, bold.Sprintf("%s %d", time.Month(grid.Month+1), grid.Year))

	tbl := uitable.New()
	tbl.Separator = "  "
	header := make([]interface{}, 0, len(model.WeekDays))
	for _, d := range model.WeekDays {
		header = append(header, bold.Sprint(d))
	}
	tbl.AddRow(header...)

	for week := 0; week < model.GridSize/7; week++ {
		row := make([]interface{}, 0, 7)
		for _, day := range grid.Days[week*7 : week*7+7] {
			label := strconv.Itoa(day.Date)
			if len(day.Posts) > 0 {
				label += "*"
			}
			switch {
			case !day.IsCurrentMonth:
				label = faint.Sprint(label)
			case day.IsToday:
				label = today.Sprint(label)
			}
			row = append(row, label)
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(w, tbl)
	_, _ = fmt.Fprintln(w, "")

	agenda := uitable.New()
	agenda.Separator = "  "
	agenda.MaxColWidth = 48
	agenda.AddRow(bold.Sprint("Day"), bold.Sprint("Time"), bold.Sprint("Platform"), bold.Sprint("Status"), bold.Sprint("Title"))
	rows := 0
	for _, day := range grid.Days {
		if !day.IsCurrentMonth || len(day.Posts) == 0 {
			continue
		}
		posts, more := usecase.VisiblePosts(day, visible)
		for _, p := range posts {
			agenda.AddRow(day.Date, p.Time, colorize(platformColors[p.Platform], string(p.Platform)), colorize(statusColors[p.Status], string(p.Status)), p.Title)
			rows++
		}
		if more > 0 {
			agenda.AddRow("", "", "", "", faint.Sprintf("+%d more", more))
		}
	}
	if rows == 0 {
		_, _ = fmt.Fprintln(w, faint.Sprint("Nothing scheduled this month."))
		return
	}
	_, _ = fmt.Fprintln(w, agenda)
}

func colorize(c *color.Color, s string) string {
	if c == nil {
		return s
	}
	return c.Sprint(s)
}
