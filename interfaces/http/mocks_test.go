package http

import (
	"context"
	"encoding/json"
	"time"

	"content-planner/domain/dto"
	"content-planner/domain/model"

	"github.com/stretchr/testify/mock"
)

type MockCalendarUsecase struct {
	mock.Mock
}

func (m *MockCalendarUsecase) GetMonth(ctx context.Context, userID string, year, month int) (*model.CalendarGrid, error) {
	args := m.Called(ctx, userID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CalendarGrid), args.Error(1)
}

func (m *MockCalendarUsecase) CurrentMonth() (int, int) {
	args := m.Called()
	return args.Int(0), args.Int(1)
}

func (m *MockCalendarUsecase) ListPublications(ctx context.Context, userID string, req *dto.PublicationListRequest) ([]model.RawPublication, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RawPublication), args.Error(1)
}

func (m *MockCalendarUsecase) Refresh(ctx context.Context, userID string) {
	m.Called(ctx, userID)
}

type MockComposeUsecase struct {
	mock.Mock
}

func (m *MockComposeUsecase) Open(ctx context.Context, userID string, date model.CalendarDate) (model.ComposeSnapshot, error) {
	args := m.Called(ctx, userID, date)
	return args.Get(0).(model.ComposeSnapshot), args.Error(1)
}

func (m *MockComposeUsecase) Get(ctx context.Context, userID, sessionID string) (model.ComposeSnapshot, error) {
	args := m.Called(ctx, userID, sessionID)
	return args.Get(0).(model.ComposeSnapshot), args.Error(1)
}

func (m *MockComposeUsecase) Edit(ctx context.Context, userID, sessionID string, patch model.ComposeFormPatch) (model.ComposeSnapshot, error) {
	args := m.Called(ctx, userID, sessionID, patch)
	return args.Get(0).(model.ComposeSnapshot), args.Error(1)
}

func (m *MockComposeUsecase) Submit(ctx context.Context, userID, sessionID string) (model.ComposeSnapshot, *model.RawPublication, error) {
	args := m.Called(ctx, userID, sessionID)
	var created *model.RawPublication
	if args.Get(1) != nil {
		created = args.Get(1).(*model.RawPublication)
	}
	return args.Get(0).(model.ComposeSnapshot), created, args.Error(2)
}

func (m *MockComposeUsecase) PublishNow(ctx context.Context, userID, sessionID string) (model.ComposeSnapshot, error) {
	args := m.Called(ctx, userID, sessionID)
	return args.Get(0).(model.ComposeSnapshot), args.Error(1)
}

func (m *MockComposeUsecase) Close(ctx context.Context, userID, sessionID string) error {
	return m.Called(ctx, userID, sessionID).Error(0)
}

func (m *MockComposeUsecase) PublishImmediately(ctx context.Context, userID string, req dto.PublishNowRequest) (*dto.PublishNowResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublishNowResponse), args.Error(1)
}

func (m *MockComposeUsecase) PurgeIdle(maxIdle time.Duration) int {
	return m.Called(maxIdle).Int(0)
}

type MockPublicationUsecase struct {
	mock.Mock
}

func (m *MockPublicationUsecase) List(ctx context.Context, userID string, req *dto.PublicationListRequest) ([]model.RawPublication, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RawPublication), args.Error(1)
}

func (m *MockPublicationUsecase) Create(ctx context.Context, userID string, req *dto.CreatePublicationRequest) (*model.RawPublication, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RawPublication), args.Error(1)
}

func (m *MockPublicationUsecase) Get(ctx context.Context, id string) (*model.RawPublication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RawPublication), args.Error(1)
}

func (m *MockPublicationUsecase) Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*model.RawPublication, error) {
	args := m.Called(ctx, userID, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RawPublication), args.Error(1)
}

func (m *MockPublicationUsecase) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockPublicationUsecase) Publish(ctx context.Context, userID, id string) (json.RawMessage, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
