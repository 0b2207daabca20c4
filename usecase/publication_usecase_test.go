package usecase_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"content-planner/domain/dto"
	"content-planner/domain/model"
	"content-planner/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPublicationUsecase_Create(t *testing.T) {
	ctx := context.Background()
	pubs := new(MockPublication)
	rec := &refreshRecorder{}
	uc := usecase.NewPublicationUsecase(pubs, nil, rec.refresh)

	_, err := uc.Create(ctx, "user-1", &dto.CreatePublicationRequest{Platform: "MYSPACE", Format: "FEED"})
	var verr *model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"title", "platform"}, verr.Fields)
	pubs.AssertNotCalled(t, "CreatePublication", mock.Anything, mock.Anything)

	req := &dto.CreatePublicationRequest{Title: "Hello", Platform: "INSTAGRAM", Format: "FEED"}
	pubs.On("CreatePublication", ctx, req).Return(&model.RawPublication{ID: "p1"}, nil).Once()
	created, err := uc.Create(ctx, "user-1", req)
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ID)
	assert.Equal(t, []string{"user-1"}, rec.calls())
}

func TestPublicationUsecase_WritesRefreshOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()
	pubs := new(MockPublication)
	rec := &refreshRecorder{}
	uc := usecase.NewPublicationUsecase(pubs, nil, rec.refresh)

	pubs.On("DeletePublication", ctx, "p1").Return(&model.BackendError{StatusCode: 404, Message: "Publication not found"}).Once()
	err := uc.Delete(ctx, "user-1", "p1")
	var be *model.BackendError
	require.ErrorAs(t, err, &be)
	assert.Empty(t, rec.calls())

	pubs.On("UpdatePublication", ctx, "p2", map[string]interface{}{"status": "DRAFT"}).Return(&model.RawPublication{ID: "p2", Status: "DRAFT"}, nil).Once()
	pubs.On("PublishPublication", ctx, "p2").Return(json.RawMessage(`{"ok":true}`), nil).Once()
	pubs.On("DeletePublication", ctx, "p2").Return(nil).Once()

	_, err = uc.Update(ctx, "user-1", "p2", map[string]interface{}{"status": "DRAFT"})
	require.NoError(t, err)
	raw, err := uc.Publish(ctx, "user-1", "p2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(raw))
	require.NoError(t, uc.Delete(ctx, "user-1", "p2"))
	assert.Len(t, rec.calls(), 3)

	_, err = uc.Update(ctx, "user-1", "p2", nil)
	assert.ErrorAs(t, err, new(*model.ValidationError))
	pubs.AssertExpectations(t)
}

func TestPublicationUsecase_ListUsesCalendarCache(t *testing.T) {
	ctx := context.Background()
	pubs := new(MockPublication)
	cache := new(MockPublicationCache)
	cache.On("Get", ctx, "user-1").Return([]model.RawPublication{{ID: "cached"}}, true, nil).Once()

	calendar := usecase.NewCalendarUsecase(pubs, cache, time.Minute, time.UTC, fixedNow)
	uc := usecase.NewPublicationUsecase(pubs, calendar, nil)

	list, err := uc.List(ctx, "user-1", &dto.PublicationListRequest{})
	require.NoError(t, err)
	assert.Equal(t, "cached", list[0].ID)
	pubs.AssertNotCalled(t, "ListPublications", mock.Anything, mock.Anything)
}
