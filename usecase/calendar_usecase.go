package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"content-planner/domain/dto"
	"content-planner/domain/model"
	"content-planner/domain/repository"
	"content-planner/infrastructure/logger"
)

// DefaultVisiblePosts is how many posts a month cell shows before "+N more".
const DefaultVisiblePosts = 3

// ProjectCalendar builds the renderable grid for a 0-based month. Posts are
// attached to current-month cells only; spillover cells stay empty.
func ProjectCalendar(n *Normalizer, year, month int, pubs []model.RawPublication, today time.Time) model.CalendarGrid {
	buckets := n.BucketByDay(pubs, year, month)
	days := BuildDateGrid(year, month, today.In(n.loc))
	for i := range days {
		if !days[i].IsCurrentMonth {
			continue
		}
		if posts, ok := buckets[days[i].Date]; ok {
			days[i].Posts = posts
		}
	}
	return model.CalendarGrid{Year: year, Month: month, Days: days}
}

// VisiblePosts applies the cell truncation policy without touching the day.
func VisiblePosts(day model.CalendarDay, limit int) ([]model.ContentPost, int) {
	if limit < 0 || len(day.Posts) <= limit {
		return day.Posts, 0
	}
	return day.Posts[:limit], len(day.Posts) - limit
}

type ICalendarUsecase interface {
	GetMonth(ctx context.Context, userID string, year, month int) (*model.CalendarGrid, error)
	CurrentMonth() (year, month int)
	ListPublications(ctx context.Context, userID string, req *dto.PublicationListRequest) ([]model.RawPublication, error)
	Refresh(ctx context.Context, userID string)
}

type calendarUsecase struct {
	publications repository.IPublication
	cache        repository.IPublicationCache // optional
	cacheTTL     time.Duration
	normalizer   *Normalizer
	now          func() time.Time

	// generations is bumped per user by Refresh; a fetch that started
	// under an older generation must not write its list back.
	mu          sync.Mutex
	generations map[string]uint64
}

// NewCalendarUsecase wires the projection to the backend. cache may be nil.
func NewCalendarUsecase(publications repository.IPublication, cache repository.IPublicationCache, cacheTTL time.Duration, loc *time.Location, now func() time.Time) ICalendarUsecase {
	if now == nil {
		now = time.Now
	}
	return &calendarUsecase{
		publications: publications,
		cache:        cache,
		cacheTTL:     cacheTTL,
		normalizer:   NewNormalizer(loc),
		now:          now,
		generations:  make(map[string]uint64),
	}
}

func (u *calendarUsecase) CurrentMonth() (int, int) {
	t := u.now().In(u.normalizer.loc)
	return t.Year(), int(t.Month()) - 1
}

// GetMonth fetches the caller's publications and recomputes the whole grid.
func (u *calendarUsecase) GetMonth(ctx context.Context, userID string, year, month int) (*model.CalendarGrid, error) {
	if month < 0 || month > 11 {
		return nil, &model.ValidationError{Fields: []string{"month"}}
	}
	pubs, err := u.fetch(ctx, userID)
	if err != nil {
		return nil, err
	}
	grid := ProjectCalendar(u.normalizer, year, month, pubs, u.now())
	return &grid, nil
}

func (u *calendarUsecase) ListPublications(ctx context.Context, userID string, req *dto.PublicationListRequest) ([]model.RawPublication, error) {
	if req != nil && *req != (dto.PublicationListRequest{}) {
		// filtered lists bypass the per-user cache
		return u.publications.ListPublications(ctx, req)
	}
	return u.fetch(ctx, userID)
}

// Refresh drops the cached list so the next projection reads the backend.
func (u *calendarUsecase) Refresh(ctx context.Context, userID string) {
	if !u.cacheEnabled() {
		return
	}
	u.bumpGeneration(userID)
	if err := u.cache.Invalidate(ctx, userID); err != nil {
		logger.GetLogger().WithField("user_id", userID).WithField("error", err).Warn("failed invalidating publication cache")
	}
}

func (u *calendarUsecase) cacheEnabled() bool {
	return u.cache != nil && u.cacheTTL > 0
}

func (u *calendarUsecase) generation(userID string) uint64 {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.generations[userID]
}

func (u *calendarUsecase) bumpGeneration(userID string) {
	u.mu.Lock()
	u.generations[userID]++
	u.mu.Unlock()
}

func (u *calendarUsecase) fetch(ctx context.Context, userID string) ([]model.RawPublication, error) {
	gen := u.generation(userID)
	if u.cacheEnabled() && userID != "" {
		list, ok, err := u.cache.Get(ctx, userID)
		if err != nil {
			logger.GetLogger().WithField("user_id", userID).WithField("error", err).Warn("publication cache read failed")
		} else if ok {
			return list, nil
		}
	}

	list, err := u.publications.ListPublications(ctx, nil)
	if err != nil {
		if !errors.Is(err, model.ErrUnauthenticated) {
			logger.GetLogger().WithField("user_id", userID).WithField("error", err).Error("fetching publications failed")
		}
		return nil, err
	}

	if u.cacheEnabled() && userID != "" {
		if u.generation(userID) != gen {
			logger.GetLogger().WithField("user_id", userID).Debug("calendar refreshed during fetch; not caching the older list")
			return list, nil
		}
		if err := u.cache.Set(ctx, userID, list, u.cacheTTL); err != nil {
			logger.GetLogger().WithField("user_id", userID).WithField("error", err).Warn("publication cache write failed")
		} else if u.generation(userID) != gen {
			// a refresh slipped in between the check and the write
			_ = u.cache.Invalidate(ctx, userID)
		}
	}
	return list, nil
}
