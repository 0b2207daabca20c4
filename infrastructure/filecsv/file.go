package filecsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"content-planner/domain/model"
	"content-planner/infrastructure/logger"
)

var agendaHeader = []string{"date", "time", "platform", "status", "title", "link"}

// NewFile creates or truncates path for writing.
func NewFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while open file")
		return nil, err
	}

	return file, nil
}

// WriteAgenda writes every post of the grid's own month, one row per post.
// Leading and trailing days of neighbouring months are skipped.
func WriteAgenda(w io.Writer, grid *model.CalendarGrid) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(agendaHeader); err != nil {
		return err
	}
	for _, day := range grid.Days {
		if !day.IsCurrentMonth {
			continue
		}
		date := model.CalendarDate{Year: grid.Year, Month: grid.Month, Day: day.Date}.String()
		for _, p := range day.Posts {
			if err := cw.Write([]string{date, p.Time, string(p.Platform), string(p.Status), p.Title, p.Link}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write agenda: %w", err)
	}
	return nil
}
