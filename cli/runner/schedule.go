package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"content-planner/domain/model"
	"content-planner/usecase"

	"github.com/fatih/color"
)

// Schedule drives one compose session from flags to a single submission.
type Schedule struct {
	Compose  usecase.IComposeUsecase
	Out      io.Writer
	Today    func() time.Time
	Location *time.Location // calendar zone used when --date is omitted

	Date     string
	Time     string
	Title    string
	Platform string
	Format   string
	ImageURL string
	Caption  string
	Now      bool
}

func (s *Schedule) Do(ctx context.Context, userID string) error {
	date, err := s.date()
	if err != nil {
		return err
	}

	snap, err := s.Compose.Open(ctx, userID, date)
	if err != nil {
		return err
	}
	defer func() { _ = s.Compose.Close(ctx, userID, snap.ID) }()

	if _, err := s.Compose.Edit(ctx, userID, snap.ID, s.patch()); err != nil {
		return s.report(err, "")
	}

	if s.Now {
		res, err := s.Compose.PublishNow(ctx, userID, snap.ID)
		if err != nil {
			return s.report(err, res.Error)
		}
		_, _ = fmt.Fprintln(s.Out, color.GreenString("Published."))
		return nil
	}

	res, created, err := s.Compose.Submit(ctx, userID, snap.ID)
	if err != nil {
		return s.report(err, res.Error)
	}
	// the session form is reset on success, so report what was sent
	msg := fmt.Sprintf("Scheduled %q for %s.", s.Title, res.PublishAt)
	if created != nil && created.ID != "" {
		msg = fmt.Sprintf("Scheduled %q for %s (id %s).", s.Title, res.PublishAt, created.ID)
	}
	_, _ = fmt.Fprintln(s.Out, color.GreenString("%s", msg))
	return nil
}

func (s *Schedule) date() (model.CalendarDate, error) {
	if s.Date != "" {
		return model.ParseCalendarDate(s.Date)
	}
	today := time.Now
	if s.Today != nil {
		today = s.Today
	}
	t := today()
	if s.Location != nil {
		t = t.In(s.Location)
	}
	return model.CalendarDate{Year: t.Year(), Month: int(t.Month()) - 1, Day: t.Day()}, nil
}

func (s *Schedule) patch() model.ComposeFormPatch {
	var p model.ComposeFormPatch
	set := func(dst **string, v string) {
		if v != "" {
			*dst = &v
		}
	}
	set(&p.Title, s.Title)
	set(&p.Platform, s.Platform)
	set(&p.Format, s.Format)
	set(&p.Time, s.Time)
	set(&p.ImageURL, s.ImageURL)
	set(&p.Caption, s.Caption)
	return p
}

// report prints the form message; the session's own message wins over the raw error.
func (s *Schedule) report(err error, shown string) error {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		_, _ = fmt.Fprintln(s.Out, color.RedString("Missing or invalid: %v", ve.Fields))
		return err
	}
	if shown == "" {
		shown = model.UserMessage(err, err.Error())
	}
	_, _ = fmt.Fprintln(s.Out, color.RedString("%s", shown))
	return err
}
