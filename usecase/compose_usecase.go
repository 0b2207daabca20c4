package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"content-planner/domain/dto"
	"content-planner/domain/model"
	"content-planner/domain/repository"
	"content-planner/infrastructure/logger"

	"github.com/google/uuid"
)

const (
	ComposeModeSchedule   = "schedule"
	ComposeModePublishNow = "publish_now"

	scheduleFailedMessage = "Failed to schedule post"
	publishFailedMessage  = "Failed to publish"

	// bounds the audit write, broker publish and refresh after a backend call
	sideEffectTimeout = 10 * time.Second
)

// RefreshFunc is invoked after a publication was created so the caller's
// calendar gets re-fetched and re-projected.
type RefreshFunc func(ctx context.Context, userID string)

// CombinePublishAt joins a grid date and an HH:MM time into a local instant
// string, e.g. 2026-01-25 and 09:30 give 2026-01-25T09:30:00.
func CombinePublishAt(date model.CalendarDate, hhmm string) (string, error) {
	if !date.Valid() {
		return "", &model.ValidationError{Fields: []string{"date"}}
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return "", &model.ValidationError{Fields: []string{"time"}}
	}
	return fmt.Sprintf("%sT%02d:%02d:00", date.String(), t.Hour(), t.Minute()), nil
}

// missingFields returns the required compose fields that are blank.
func missingFields(f model.ComposeForm) []string {
	var missing []string
	check := func(name, v string) {
		if strings.TrimSpace(v) == "" {
			missing = append(missing, name)
		}
	}
	check("title", f.Title)
	check("platform", string(f.Platform))
	check("format", string(f.Format))
	check("time", f.Time)
	check("imageUrl", f.ImageURL)
	check("caption", f.Caption)
	return missing
}

type composeSession struct {
	mu        sync.Mutex
	id        string
	userID    string
	date      model.CalendarDate
	state     model.ComposeState
	form      model.ComposeForm
	errMsg    string
	fields    []string
	publishAt string
	closed    bool
	updatedAt time.Time
}

func (s *composeSession) snapshot() model.ComposeSnapshot {
	return model.ComposeSnapshot{
		ID:           s.id,
		UserID:       s.userID,
		State:        s.state,
		Date:         s.date,
		Form:         s.form,
		Error:        s.errMsg,
		Fields:       append([]string(nil), s.fields...),
		IsSubmitting: s.state == model.ComposeSubmitting,
		Closed:       s.closed,
		PublishAt:    s.publishAt,
		UpdatedAt:    s.updatedAt,
	}
}

// editable rejects edits and submits on closed or in-flight sessions.
func (s *composeSession) editable() error {
	if s.closed {
		return model.ErrSessionClosed
	}
	if s.state == model.ComposeSubmitting {
		return model.ErrSubmitInFlight
	}
	return nil
}

type IComposeUsecase interface {
	Open(ctx context.Context, userID string, date model.CalendarDate) (model.ComposeSnapshot, error)
	Get(ctx context.Context, userID, sessionID string) (model.ComposeSnapshot, error)
	Edit(ctx context.Context, userID, sessionID string, patch model.ComposeFormPatch) (model.ComposeSnapshot, error)
	Submit(ctx context.Context, userID, sessionID string) (model.ComposeSnapshot, *model.RawPublication, error)
	PublishNow(ctx context.Context, userID, sessionID string) (model.ComposeSnapshot, error)
	Close(ctx context.Context, userID, sessionID string) error
	PublishImmediately(ctx context.Context, userID string, req dto.PublishNowRequest) (*dto.PublishNowResponse, error)
	PurgeIdle(maxIdle time.Duration) int
}

type composeUsecase struct {
	publications repository.IPublication
	audit        repository.IComposeAudit      // optional
	events       repository.IPublicationEvents // optional
	refresh      RefreshFunc
	now          func() time.Time

	mu       sync.RWMutex
	sessions map[string]*composeSession
}

// ComposeOption configures optional collaborators of the compose usecase.
type ComposeOption func(*composeUsecase)

// WithAudit records every submission outcome.
func WithAudit(audit repository.IComposeAudit) ComposeOption {
	return func(u *composeUsecase) { u.audit = audit }
}

// WithEvents announces successful schedules on a broker.
func WithEvents(events repository.IPublicationEvents) ComposeOption {
	return func(u *composeUsecase) { u.events = events }
}

func WithClock(now func() time.Time) ComposeOption {
	return func(u *composeUsecase) { u.now = now }
}

func NewComposeUsecase(publications repository.IPublication, refresh RefreshFunc, opts ...ComposeOption) IComposeUsecase {
	u := &composeUsecase{
		publications: publications,
		refresh:      refresh,
		now:          time.Now,
		sessions:     make(map[string]*composeSession),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Open starts a session in Idle with the default form for the picked day.
func (u *composeUsecase) Open(ctx context.Context, userID string, date model.CalendarDate) (model.ComposeSnapshot, error) {
	if userID == "" {
		return model.ComposeSnapshot{}, model.ErrUnauthenticated
	}
	if !date.Valid() {
		return model.ComposeSnapshot{}, &model.ValidationError{Fields: []string{"date"}}
	}
	s := &composeSession{
		id:        uuid.NewString(),
		userID:    userID,
		date:      date,
		state:     model.ComposeIdle,
		form:      model.NewComposeForm(),
		updatedAt: u.now(),
	}
	u.mu.Lock()
	u.sessions[s.id] = s
	u.mu.Unlock()

	logger.GetLogger().WithFields(map[string]interface{}{"session_id": s.id, "user_id": userID, "date": date.String()}).Debug("compose session opened")
	return s.snapshot(), nil
}

func (u *composeUsecase) Get(ctx context.Context, userID, sessionID string) (model.ComposeSnapshot, error) {
	s, err := u.lookup(userID, sessionID)
	if err != nil {
		return model.ComposeSnapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Edit applies field changes and moves the session to Composing.
func (u *composeUsecase) Edit(ctx context.Context, userID, sessionID string, patch model.ComposeFormPatch) (model.ComposeSnapshot, error) {
	s, err := u.lookup(userID, sessionID)
	if err != nil {
		return model.ComposeSnapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.editable(); err != nil {
		return s.snapshot(), err
	}

	var invalid []string
	if patch.Title != nil {
		s.form.Title = *patch.Title
	}
	if patch.Platform != nil {
		if p, ok := model.ParsePlatform(*patch.Platform); ok || *patch.Platform == "" {
			s.form.Platform = p
		} else {
			invalid = append(invalid, "platform")
		}
	}
	if patch.Format != nil {
		if f, ok := model.ParseFormat(*patch.Format); ok || *patch.Format == "" {
			s.form.Format = f
		} else {
			invalid = append(invalid, "format")
		}
	}
	if patch.Time != nil {
		s.form.Time = *patch.Time
	}
	if patch.ImageURL != nil {
		s.form.ImageURL = *patch.ImageURL
	}
	if patch.Caption != nil {
		s.form.Caption = *patch.Caption
	}

	s.state = model.ComposeComposing
	s.updatedAt = u.now()
	if len(invalid) > 0 {
		verr := &model.ValidationError{Fields: invalid}
		s.errMsg, s.fields = verr.Error(), invalid
		return s.snapshot(), verr
	}
	s.errMsg, s.fields = "", nil
	return s.snapshot(), nil
}

// Submit schedules the form for the session's date. Validation failures never
// reach the backend; backend failures leave the form intact for a retry.
func (u *composeUsecase) Submit(ctx context.Context, userID, sessionID string) (model.ComposeSnapshot, *model.RawPublication, error) {
	s, err := u.lookup(userID, sessionID)
	if err != nil {
		return model.ComposeSnapshot{}, nil, err
	}

	s.mu.Lock()
	if err := s.editable(); err != nil {
		snap := s.snapshot()
		s.mu.Unlock()
		return snap, nil, err
	}
	publishAt, verr := u.validateSchedule(s)
	if verr != nil {
		snap := s.snapshot()
		s.mu.Unlock()
		return snap, nil, verr
	}
	form := s.form
	req := &dto.CreatePublicationRequest{
		Title:     form.Title,
		Platform:  form.Platform.BackendValue(),
		Format:    form.Format.BackendValue(),
		PublishAt: publishAt,
		Payload:   dto.PublicationPayload{ImageURL: form.ImageURL, Caption: form.Caption},
	}
	s.state = model.ComposeSubmitting
	s.publishAt = publishAt
	s.errMsg, s.fields = "", nil
	s.updatedAt = u.now()
	s.mu.Unlock()

	// closing the surface does not cancel the request
	callCtx := context.WithoutCancel(ctx)
	created, callErr := u.publications.CreatePublication(callCtx, req)

	if callErr != nil {
		snap := u.fail(s, callErr, scheduleFailedMessage)
		sideCtx, cancel := context.WithTimeout(callCtx, sideEffectTimeout)
		defer cancel()
		u.recordAudit(sideCtx, s, ComposeModeSchedule, string(form.Platform), &publishAt, callErr)
		return snap, nil, callErr
	}

	// the session leaves Submitting before any audit or broker round trip
	snap := u.succeed(s)

	sideCtx, cancel := context.WithTimeout(callCtx, sideEffectTimeout)
	defer cancel()
	u.recordAudit(sideCtx, s, ComposeModeSchedule, string(form.Platform), &publishAt, nil)
	evt := model.PublicationScheduled{
		Type:      "publication.scheduled",
		UserID:    userID,
		Platform:  string(form.Platform),
		Format:    string(form.Format),
		PublishAt: publishAt,
	}
	if created != nil {
		evt.PublicationID = created.ID
	}
	u.publishEvent(sideCtx, evt)
	u.invokeRefresh(sideCtx, userID)
	return snap, created, nil
}

// PublishNow is the immediate path: no date/time combination and no publishAt.
func (u *composeUsecase) PublishNow(ctx context.Context, userID, sessionID string) (model.ComposeSnapshot, error) {
	s, err := u.lookup(userID, sessionID)
	if err != nil {
		return model.ComposeSnapshot{}, err
	}

	s.mu.Lock()
	if err := s.editable(); err != nil {
		snap := s.snapshot()
		s.mu.Unlock()
		return snap, err
	}
	var missing []string
	if strings.TrimSpace(s.form.ImageURL) == "" {
		missing = append(missing, "imageUrl")
	}
	if strings.TrimSpace(s.form.Caption) == "" {
		missing = append(missing, "caption")
	}
	if len(missing) > 0 {
		verr := &model.ValidationError{Fields: missing}
		s.state = model.ComposeComposing
		s.errMsg, s.fields = verr.Error(), missing
		snap := s.snapshot()
		s.mu.Unlock()
		return snap, verr
	}
	form := s.form
	s.state = model.ComposeSubmitting
	s.publishAt = ""
	s.errMsg, s.fields = "", nil
	s.updatedAt = u.now()
	s.mu.Unlock()

	callCtx := context.WithoutCancel(ctx)
	res, callErr := u.publications.PublishNow(callCtx, &dto.PublishNowRequest{ImageURL: form.ImageURL, Caption: form.Caption})

	if callErr != nil {
		snap := u.fail(s, callErr, publishFailedMessage)
		sideCtx, cancel := context.WithTimeout(callCtx, sideEffectTimeout)
		defer cancel()
		u.recordAudit(sideCtx, s, ComposeModePublishNow, string(model.PlatformInstagram), nil, callErr)
		return snap, callErr
	}

	snap := u.succeed(s)

	sideCtx, cancel := context.WithTimeout(callCtx, sideEffectTimeout)
	defer cancel()
	u.recordAudit(sideCtx, s, ComposeModePublishNow, string(model.PlatformInstagram), nil, nil)
	evt := model.PublicationScheduled{Type: "publication.published", UserID: userID, Platform: string(model.PlatformInstagram), Immediate: true}
	if res != nil {
		evt.PublicationID = res.ID
	}
	u.publishEvent(sideCtx, evt)
	u.invokeRefresh(sideCtx, userID)
	return snap, nil
}

// Close dismisses the surface. An in-flight request keeps running but its
// result is not applied to the dismissed session.
func (u *composeUsecase) Close(ctx context.Context, userID, sessionID string) error {
	s, err := u.lookup(userID, sessionID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.closed = true
	inFlight := s.state == model.ComposeSubmitting
	s.updatedAt = u.now()
	s.mu.Unlock()

	u.forget(sessionID)
	logger.GetLogger().WithField("session_id", sessionID).WithField("in_flight", inFlight).Debug("compose session closed")
	return nil
}

// PublishImmediately is the session-less publish-now used by the standalone publisher.
func (u *composeUsecase) PublishImmediately(ctx context.Context, userID string, req dto.PublishNowRequest) (*dto.PublishNowResponse, error) {
	var missing []string
	if strings.TrimSpace(req.ImageURL) == "" {
		missing = append(missing, "image_url")
	}
	if strings.TrimSpace(req.Caption) == "" {
		missing = append(missing, "caption")
	}
	if len(missing) > 0 {
		return nil, &model.ValidationError{Fields: missing}
	}
	// a dropped client connection does not cancel the publish
	callCtx := context.WithoutCancel(ctx)
	res, err := u.publications.PublishNow(callCtx, &req)

	sideCtx, cancel := context.WithTimeout(callCtx, sideEffectTimeout)
	defer cancel()
	u.recordAudit(sideCtx, &composeSession{userID: userID}, ComposeModePublishNow, string(model.PlatformInstagram), nil, err)
	if err != nil {
		return nil, err
	}
	u.invokeRefresh(sideCtx, userID)
	return res, nil
}

// PurgeIdle drops sessions untouched for longer than maxIdle, except in-flight ones.
func (u *composeUsecase) PurgeIdle(maxIdle time.Duration) int {
	cutoff := u.now().Add(-maxIdle)
	u.mu.Lock()
	defer u.mu.Unlock()
	purged := 0
	for id, s := range u.sessions {
		s.mu.Lock()
		stale := s.state != model.ComposeSubmitting && s.updatedAt.Before(cutoff)
		if stale {
			s.closed = true
		}
		s.mu.Unlock()
		if stale {
			delete(u.sessions, id)
			purged++
		}
	}
	return purged
}

func (u *composeUsecase) validateSchedule(s *composeSession) (string, error) {
	if missing := missingFields(s.form); len(missing) > 0 {
		verr := &model.ValidationError{Fields: missing}
		s.state = model.ComposeComposing
		s.errMsg, s.fields = verr.Error(), missing
		return "", verr
	}
	publishAt, err := CombinePublishAt(s.date, s.form.Time)
	if err != nil {
		s.state = model.ComposeComposing
		s.errMsg = err.Error()
		if verr, ok := err.(*model.ValidationError); ok {
			s.fields = verr.Fields
		}
		return "", err
	}
	return publishAt, nil
}

// succeed closes the surface and resets the form, unless it was already dismissed.
func (u *composeUsecase) succeed(s *composeSession) model.ComposeSnapshot {
	s.mu.Lock()
	if s.closed {
		snap := s.snapshot()
		s.mu.Unlock()
		logger.GetLogger().WithField("session_id", s.id).Info("publication created after the compose surface was closed")
		return snap
	}
	s.state = model.ComposeSucceeded
	s.form = model.NewComposeForm()
	s.errMsg, s.fields = "", nil
	s.closed = true
	s.updatedAt = u.now()
	snap := s.snapshot()
	s.mu.Unlock()

	// registry lock is never taken while holding a session lock
	u.forget(s.id)
	logger.GetLogger().WithField("session_id", s.id).Info("compose session succeeded")
	return snap
}

// fail keeps the form values and makes the session editable again.
func (u *composeUsecase) fail(s *composeSession, err error, fallback string) model.ComposeSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	logger.GetLogger().WithField("session_id", s.id).WithField("error", err).Warn("compose submission failed")
	if s.closed {
		return s.snapshot()
	}
	s.state = model.ComposeFailed
	s.errMsg = model.UserMessage(err, fallback)
	s.updatedAt = u.now()
	return s.snapshot()
}

func (u *composeUsecase) lookup(userID, sessionID string) (*composeSession, error) {
	u.mu.RLock()
	s, ok := u.sessions[sessionID]
	u.mu.RUnlock()
	if !ok || s.userID != userID {
		return nil, model.ErrSessionNotFound
	}
	return s, nil
}

func (u *composeUsecase) forget(sessionID string) {
	u.mu.Lock()
	delete(u.sessions, sessionID)
	u.mu.Unlock()
}

func (u *composeUsecase) invokeRefresh(ctx context.Context, userID string) {
	if u.refresh != nil {
		u.refresh(ctx, userID)
	}
}

func (u *composeUsecase) recordAudit(ctx context.Context, s *composeSession, mode, platform string, publishAt *string, callErr error) {
	if u.audit == nil {
		return
	}
	status := "success"
	var errMsg *string
	if callErr != nil {
		status = "failed"
		m := callErr.Error()
		errMsg = &m
	}
	rec := &model.ComposeAudit{
		SessionID:    s.id,
		UserID:       s.userID,
		Mode:         mode,
		Platform:     platform,
		PublishAt:    publishAt,
		Status:       status,
		ErrorMessage: errMsg,
		CreatedAt:    u.now().UTC(),
	}
	if err := u.audit.CreateAudit(ctx, []*model.ComposeAudit{rec}); err != nil {
		logger.GetLogger().WithField("session_id", s.id).WithField("error", err).Warn("failed writing compose audit")
	}
}

func (u *composeUsecase) publishEvent(ctx context.Context, evt model.PublicationScheduled) {
	if u.events == nil {
		return
	}
	if err := u.events.PublishScheduled(ctx, evt); err != nil {
		logger.GetLogger().WithField("event", evt.Type).WithField("error", err).Warn("failed publishing publication event")
	}
}
