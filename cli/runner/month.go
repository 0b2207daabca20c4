// Package runner holds the work behind each calctl command.
package runner

import (
	"context"
	"fmt"
	"io"

	"content-planner/cli/render"
	"content-planner/infrastructure/filecsv"
	"content-planner/usecase"
)

type Month struct {
	Calendar usecase.ICalendarUsecase
	Out      io.Writer

	Year    int
	Month   int // 1-12, zero means current
	Visible int
	CSVPath string
}

func (m *Month) Do(ctx context.Context, userID string) error {
	year, month := m.Calendar.CurrentMonth()
	if m.Year != 0 {
		year = m.Year
	}
	if m.Month != 0 {
		if m.Month < 1 || m.Month > 12 {
			return fmt.Errorf("month must be between 1 and 12, got %d", m.Month)
		}
		month = m.Month - 1
	}
	visible := m.Visible
	if visible <= 0 {
		visible = usecase.DefaultVisiblePosts
	}

	grid, err := m.Calendar.GetMonth(ctx, userID, year, month)
	if err != nil {
		return err
	}
	render.Month(m.Out, grid, visible)

	if m.CSVPath == "" {
		return nil
	}
	f, err := filecsv.NewFile(m.CSVPath)
	if err != nil {
		return err
	}
	if err := filecsv.WriteAgenda(f, grid); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
