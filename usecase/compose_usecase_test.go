package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"content-planner/domain/dto"
	"content-planner/domain/model"
	"content-planner/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type refreshRecorder struct {
	mu    sync.Mutex
	users []string
}

func (r *refreshRecorder) refresh(_ context.Context, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
}

func (r *refreshRecorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.users...)
}

func strPtr(s string) *string { return &s }

func filledPatch() model.ComposeFormPatch {
	return model.ComposeFormPatch{
		Title:    strPtr("Winter drop"),
		Time:     strPtr("09:30"),
		ImageURL: strPtr("https://cdn.example.com/a.jpg"),
		Caption:  strPtr("New in"),
	}
}

func openFilled(t *testing.T, uc usecase.IComposeUsecase) model.ComposeSnapshot {
	t.Helper()
	ctx := context.Background()
	snap, err := uc.Open(ctx, "user-1", model.CalendarDate{Year: 2026, Month: 0, Day: 25})
	require.NoError(t, err)
	snap, err = uc.Edit(ctx, "user-1", snap.ID, filledPatch())
	require.NoError(t, err)
	return snap
}

func TestCombinePublishAt(t *testing.T) {
	got, err := usecase.CombinePublishAt(model.CalendarDate{Year: 2026, Month: 0, Day: 25}, "09:30")
	require.NoError(t, err)
	assert.Equal(t, "2026-01-25T09:30:00", got)

	got, err = usecase.CombinePublishAt(model.CalendarDate{Year: 2026, Month: 11, Day: 31}, "23:59")
	require.NoError(t, err)
	assert.Equal(t, "2026-12-31T23:59:00", got)

	_, err = usecase.CombinePublishAt(model.CalendarDate{Year: 2026, Month: 0, Day: 25}, "9am")
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"time"}, verr.Fields)

	_, err = usecase.CombinePublishAt(model.CalendarDate{Year: 2026, Month: 1, Day: 30}, "09:00")
	assert.ErrorAs(t, err, &verr)
}

func TestCompose_OpenDefaults(t *testing.T) {
	uc := usecase.NewComposeUsecase(new(MockPublication), nil)

	snap, err := uc.Open(context.Background(), "user-1", model.CalendarDate{Year: 2026, Month: 0, Day: 25})
	require.NoError(t, err)
	assert.NotEmpty(t, snap.ID)
	assert.Equal(t, model.ComposeIdle, snap.State)
	assert.Equal(t, model.PlatformInstagram, snap.Form.Platform)
	assert.Equal(t, model.FormatFeed, snap.Form.Format)
	assert.Equal(t, "09:00", snap.Form.Time)
	assert.False(t, snap.IsSubmitting)

	_, err = uc.Open(context.Background(), "", model.CalendarDate{Year: 2026, Month: 0, Day: 25})
	assert.ErrorIs(t, err, model.ErrUnauthenticated)

	_, err = uc.Open(context.Background(), "user-1", model.CalendarDate{Year: 2026, Month: 0, Day: 32})
	assert.Error(t, err)
}

func TestCompose_SessionsAreOwned(t *testing.T) {
	uc := usecase.NewComposeUsecase(new(MockPublication), nil)
	snap, err := uc.Open(context.Background(), "user-1", model.CalendarDate{Year: 2026, Month: 0, Day: 25})
	require.NoError(t, err)

	_, err = uc.Get(context.Background(), "user-2", snap.ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
}

func TestCompose_EditRejectsUnknownEnums(t *testing.T) {
	uc := usecase.NewComposeUsecase(new(MockPublication), nil)
	ctx := context.Background()
	snap, _ := uc.Open(ctx, "user-1", model.CalendarDate{Year: 2026, Month: 0, Day: 25})

	snap, err := uc.Edit(ctx, "user-1", snap.ID, model.ComposeFormPatch{Platform: strPtr("myspace"), Format: strPtr("reel")})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"platform"}, verr.Fields)
	assert.Equal(t, model.PlatformInstagram, snap.Form.Platform)
	assert.Equal(t, model.FormatReel, snap.Form.Format)
	assert.Equal(t, model.ComposeComposing, snap.State)
}

func TestCompose_SubmitValidationSkipsBackend(t *testing.T) {
	pubs := new(MockPublication)
	rec := &refreshRecorder{}
	uc := usecase.NewComposeUsecase(pubs, rec.refresh)
	ctx := context.Background()

	snap, _ := uc.Open(ctx, "user-1", model.CalendarDate{Year: 2026, Month: 0, Day: 25})
	snap, _ = uc.Edit(ctx, "user-1", snap.ID, model.ComposeFormPatch{Title: strPtr("Only a title")})

	snap, created, err := uc.Submit(ctx, "user-1", snap.ID)

	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"imageUrl", "caption"}, verr.Fields)
	assert.Nil(t, created)
	assert.Equal(t, model.ComposeComposing, snap.State)
	assert.Equal(t, "Only a title", snap.Form.Title)
	pubs.AssertNotCalled(t, "CreatePublication", mock.Anything, mock.Anything)
	assert.Empty(t, rec.calls())
}

func TestCompose_SubmitSuccess(t *testing.T) {
	pubs := new(MockPublication)
	audit := new(MockComposeAudit)
	events := new(MockPublicationEvents)
	rec := &refreshRecorder{}
	uc := usecase.NewComposeUsecase(pubs, rec.refresh, usecase.WithAudit(audit), usecase.WithEvents(events))

	snap := openFilled(t, uc)

	pubs.On("CreatePublication", mock.Anything, &dto.CreatePublicationRequest{
		Title:     "Winter drop",
		Platform:  "INSTAGRAM",
		Format:    "FEED",
		PublishAt: "2026-01-25T09:30:00",
		Payload:   dto.PublicationPayload{ImageURL: "https://cdn.example.com/a.jpg", Caption: "New in"},
	}).Return(&model.RawPublication{ID: "pub-9"}, nil).Once()
	audit.On("CreateAudit", mock.Anything, mock.MatchedBy(func(a []*model.ComposeAudit) bool {
		return len(a) == 1 && a[0].Status == "success" && a[0].Mode == usecase.ComposeModeSchedule &&
			a[0].PublishAt != nil && *a[0].PublishAt == "2026-01-25T09:30:00"
	})).Return(nil).Once()
	events.On("PublishScheduled", mock.Anything, mock.MatchedBy(func(e model.PublicationScheduled) bool {
		return e.PublicationID == "pub-9" && e.UserID == "user-1" && !e.Immediate
	})).Return(nil).Once()

	done, created, err := uc.Submit(context.Background(), "user-1", snap.ID)

	require.NoError(t, err)
	assert.Equal(t, "pub-9", created.ID)
	assert.Equal(t, model.ComposeSucceeded, done.State)
	assert.True(t, done.Closed)
	assert.Equal(t, model.NewComposeForm(), done.Form)
	assert.Equal(t, []string{"user-1"}, rec.calls())

	_, err = uc.Get(context.Background(), "user-1", snap.ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)

	pubs.AssertExpectations(t)
	audit.AssertExpectations(t)
	events.AssertExpectations(t)
}

func TestCompose_SubmitFailureKeepsForm(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"backend message", &model.BackendError{StatusCode: 422, Message: "publishAt must be in the future"}, "publishAt must be in the future"},
		{"backend without message", &model.BackendError{StatusCode: 500}, "Failed to schedule post"},
		{"network", &model.NetworkError{Op: "create publication", Err: errors.New("connection refused")}, "An unexpected error occurred"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pubs := new(MockPublication)
			rec := &refreshRecorder{}
			uc := usecase.NewComposeUsecase(pubs, rec.refresh)
			snap := openFilled(t, uc)

			pubs.On("CreatePublication", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			failed, _, err := uc.Submit(context.Background(), "user-1", snap.ID)

			require.Error(t, err)
			assert.Equal(t, model.ComposeFailed, failed.State)
			assert.Equal(t, tt.message, failed.Error)
			assert.Equal(t, "Winter drop", failed.Form.Title)
			assert.Equal(t, "09:30", failed.Form.Time)
			assert.False(t, failed.Closed)
			assert.Empty(t, rec.calls())

			// failed is editable and can be resubmitted
			pubs.On("CreatePublication", mock.Anything, mock.Anything).Return(&model.RawPublication{ID: "ok"}, nil).Once()
			edited, err := uc.Edit(context.Background(), "user-1", snap.ID, model.ComposeFormPatch{Caption: strPtr("Retry")})
			require.NoError(t, err)
			assert.Equal(t, model.ComposeComposing, edited.State)
			assert.Empty(t, edited.Error)

			done, _, err := uc.Submit(context.Background(), "user-1", snap.ID)
			require.NoError(t, err)
			assert.Equal(t, model.ComposeSucceeded, done.State)
		})
	}
}

func TestCompose_SingleSubmissionInFlight(t *testing.T) {
	pubs := new(MockPublication)
	rec := &refreshRecorder{}
	uc := usecase.NewComposeUsecase(pubs, rec.refresh)
	snap := openFilled(t, uc)

	release := make(chan struct{})
	pubs.On("CreatePublication", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(&model.RawPublication{ID: "pub-1"}, nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, _, firstErr = uc.Submit(context.Background(), "user-1", snap.ID)
	}()

	require.Eventually(t, func() bool {
		s, err := uc.Get(context.Background(), "user-1", snap.ID)
		return err == nil && s.IsSubmitting
	}, time.Second, 5*time.Millisecond)

	_, _, err := uc.Submit(context.Background(), "user-1", snap.ID)
	assert.ErrorIs(t, err, model.ErrSubmitInFlight)
	_, err = uc.Edit(context.Background(), "user-1", snap.ID, model.ComposeFormPatch{Title: strPtr("late edit")})
	assert.ErrorIs(t, err, model.ErrSubmitInFlight)
	_, err = uc.PublishNow(context.Background(), "user-1", snap.ID)
	assert.ErrorIs(t, err, model.ErrSubmitInFlight)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)
	pubs.AssertNumberOfCalls(t, "CreatePublication", 1)
	assert.Equal(t, []string{"user-1"}, rec.calls())
}

func TestCompose_CloseDuringSubmit(t *testing.T) {
	pubs := new(MockPublication)
	rec := &refreshRecorder{}
	uc := usecase.NewComposeUsecase(pubs, rec.refresh)
	snap := openFilled(t, uc)

	release := make(chan struct{})
	pubs.On("CreatePublication", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { <-release }).
		Return(&model.RawPublication{ID: "pub-1"}, nil).Once()

	result := make(chan model.ComposeSnapshot, 1)
	go func() {
		s, _, _ := uc.Submit(context.Background(), "user-1", snap.ID)
		result <- s
	}()

	require.Eventually(t, func() bool {
		s, err := uc.Get(context.Background(), "user-1", snap.ID)
		return err == nil && s.IsSubmitting
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, uc.Close(context.Background(), "user-1", snap.ID))
	close(release)

	late := <-result
	assert.True(t, late.Closed)
	assert.NotEqual(t, model.ComposeSucceeded, late.State)
	assert.Equal(t, "Winter drop", late.Form.Title)
	// the publication exists, so the calendar is still refreshed
	assert.Equal(t, []string{"user-1"}, rec.calls())
}

func TestCompose_SubmitCancelledContextStillCompletes(t *testing.T) {
	pubs := new(MockPublication)
	uc := usecase.NewComposeUsecase(pubs, nil)
	snap := openFilled(t, uc)

	pubs.On("CreatePublication", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), mock.Anything).
		Return(&model.RawPublication{ID: "pub-1"}, nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done, _, err := uc.Submit(ctx, "user-1", snap.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ComposeSucceeded, done.State)
}

func TestCompose_PublishNow(t *testing.T) {
	pubs := new(MockPublication)
	events := new(MockPublicationEvents)
	rec := &refreshRecorder{}
	uc := usecase.NewComposeUsecase(pubs, rec.refresh, usecase.WithEvents(events))
	ctx := context.Background()

	snap, _ := uc.Open(ctx, "user-1", model.CalendarDate{Year: 2026, Month: 0, Day: 25})
	_, err := uc.PublishNow(ctx, "user-1", snap.ID)
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"imageUrl", "caption"}, verr.Fields)
	pubs.AssertNotCalled(t, "PublishNow", mock.Anything, mock.Anything)

	_, err = uc.Edit(ctx, "user-1", snap.ID, model.ComposeFormPatch{ImageURL: strPtr("https://cdn.example.com/b.jpg"), Caption: strPtr("Now")})
	require.NoError(t, err)

	pubs.On("PublishNow", mock.Anything, &dto.PublishNowRequest{ImageURL: "https://cdn.example.com/b.jpg", Caption: "Now"}).
		Return(&dto.PublishNowResponse{ID: "ig-1"}, nil).Once()
	events.On("PublishScheduled", mock.Anything, mock.MatchedBy(func(e model.PublicationScheduled) bool {
		return e.Immediate && e.PublicationID == "ig-1" && e.PublishAt == ""
	})).Return(errors.New("broker down")).Once()

	done, err := uc.PublishNow(ctx, "user-1", snap.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ComposeSucceeded, done.State)
	assert.Empty(t, done.PublishAt)
	assert.Equal(t, []string{"user-1"}, rec.calls())
	events.AssertExpectations(t)
}

func TestCompose_PublishImmediately(t *testing.T) {
	pubs := new(MockPublication)
	audit := new(MockComposeAudit)
	rec := &refreshRecorder{}
	uc := usecase.NewComposeUsecase(pubs, rec.refresh, usecase.WithAudit(audit))
	ctx := context.Background()

	_, err := uc.PublishImmediately(ctx, "user-1", dto.PublishNowRequest{Caption: "no image"})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"image_url"}, verr.Fields)

	req := dto.PublishNowRequest{ImageURL: "https://cdn.example.com/c.jpg", Caption: "hi"}
	pubs.On("PublishNow", mock.Anything, &req).Return(nil, &model.BackendError{StatusCode: 400, Message: "bad image"}).Once()
	audit.On("CreateAudit", mock.Anything, mock.MatchedBy(func(a []*model.ComposeAudit) bool {
		return a[0].Status == "failed" && a[0].ErrorMessage != nil
	})).Return(errors.New("db down")).Once()

	_, err = uc.PublishImmediately(ctx, "user-1", req)
	var be *model.BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, 400, be.StatusCode)
	assert.Empty(t, rec.calls())
	audit.AssertExpectations(t)
}

func TestCompose_PublishImmediatelySurvivesDisconnect(t *testing.T) {
	pubs := new(MockPublication)
	rec := &refreshRecorder{}
	uc := usecase.NewComposeUsecase(pubs, rec.refresh)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := dto.PublishNowRequest{ImageURL: "https://cdn.example.com/d.jpg", Caption: "live"}
	pubs.On("PublishNow", mock.MatchedBy(func(ctx context.Context) bool { return ctx.Err() == nil }), &req).
		Return(&dto.PublishNowResponse{ID: "ig-7"}, nil).Once()

	res, err := uc.PublishImmediately(ctx, "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, "ig-7", res.ID)
	assert.Equal(t, []string{"user-1"}, rec.calls())
	pubs.AssertExpectations(t)
}

func TestCompose_SlowAuditDoesNotHoldSession(t *testing.T) {
	pubs := new(MockPublication)
	audit := new(MockComposeAudit)
	uc := usecase.NewComposeUsecase(pubs, nil, usecase.WithAudit(audit))
	snap := openFilled(t, uc)

	release := make(chan struct{})
	pubs.On("CreatePublication", mock.Anything, mock.Anything).
		Return(nil, &model.BackendError{StatusCode: 503, Message: "try later"}).Once()
	audit.On("CreateAudit", mock.MatchedBy(func(ctx context.Context) bool {
		_, bounded := ctx.Deadline()
		return bounded
	}), mock.Anything).Run(func(mock.Arguments) { <-release }).Return(nil).Once()

	done := make(chan error, 1)
	go func() {
		_, _, err := uc.Submit(context.Background(), "user-1", snap.ID)
		done <- err
	}()

	// the audit write is still blocked, yet the form is already failed and editable
	require.Eventually(t, func() bool {
		s, err := uc.Get(context.Background(), "user-1", snap.ID)
		return err == nil && s.State == model.ComposeFailed && !s.IsSubmitting
	}, time.Second, 5*time.Millisecond)
	edited, err := uc.Edit(context.Background(), "user-1", snap.ID, model.ComposeFormPatch{Caption: strPtr("again")})
	require.NoError(t, err)
	assert.Equal(t, model.ComposeComposing, edited.State)

	close(release)
	var be *model.BackendError
	require.ErrorAs(t, <-done, &be)
	audit.AssertExpectations(t)
}

func TestCompose_PurgeIdle(t *testing.T) {
	now := time.Date(2026, time.January, 15, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	uc := usecase.NewComposeUsecase(new(MockPublication), nil, usecase.WithClock(clock))
	ctx := context.Background()

	old, _ := uc.Open(ctx, "user-1", model.CalendarDate{Year: 2026, Month: 0, Day: 25})
	now = now.Add(45 * time.Minute)
	fresh, _ := uc.Open(ctx, "user-1", model.CalendarDate{Year: 2026, Month: 0, Day: 26})

	assert.Equal(t, 1, uc.PurgeIdle(30*time.Minute))
	_, err := uc.Get(ctx, "user-1", old.ID)
	assert.ErrorIs(t, err, model.ErrSessionNotFound)
	_, err = uc.Get(ctx, "user-1", fresh.ID)
	assert.NoError(t, err)

	require.NoError(t, uc.Close(ctx, "user-1", fresh.ID))
	assert.ErrorIs(t, uc.Close(ctx, "user-1", fresh.ID), model.ErrSessionNotFound)
}
