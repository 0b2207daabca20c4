package usecase_test

import (
	"context"
	"encoding/json"
	"time"

	"content-planner/domain/dto"
	"content-planner/domain/model"

	"github.com/stretchr/testify/mock"
)

type MockPublication struct {
	mock.Mock
}

func (m *MockPublication) ListPublications(ctx context.Context, req *dto.PublicationListRequest) ([]model.RawPublication, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RawPublication), args.Error(1)
}

func (m *MockPublication) CreatePublication(ctx context.Context, req *dto.CreatePublicationRequest) (*model.RawPublication, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RawPublication), args.Error(1)
}

func (m *MockPublication) PublishNow(ctx context.Context, req *dto.PublishNowRequest) (*dto.PublishNowResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PublishNowResponse), args.Error(1)
}

func (m *MockPublication) GetPublication(ctx context.Context, id string) (*model.RawPublication, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RawPublication), args.Error(1)
}

func (m *MockPublication) UpdatePublication(ctx context.Context, id string, updates map[string]interface{}) (*model.RawPublication, error) {
	args := m.Called(ctx, id, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RawPublication), args.Error(1)
}

func (m *MockPublication) DeletePublication(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPublication) PublishPublication(ctx context.Context, id string) (json.RawMessage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type MockPublicationCache struct {
	mock.Mock
}

func (m *MockPublicationCache) Get(ctx context.Context, userID string) ([]model.RawPublication, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]model.RawPublication), args.Bool(1), args.Error(2)
}

func (m *MockPublicationCache) Set(ctx context.Context, userID string, list []model.RawPublication, ttl time.Duration) error {
	return m.Called(ctx, userID, list, ttl).Error(0)
}

func (m *MockPublicationCache) Invalidate(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockComposeAudit struct {
	mock.Mock
}

func (m *MockComposeAudit) CreateAudit(ctx context.Context, audits []*model.ComposeAudit) error {
	return m.Called(ctx, audits).Error(0)
}

func (m *MockComposeAudit) ListBySession(ctx context.Context, sessionID string) ([]*model.ComposeAudit, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ComposeAudit), args.Error(1)
}

type MockPublicationEvents struct {
	mock.Mock
}

func (m *MockPublicationEvents) PublishScheduled(ctx context.Context, evt model.PublicationScheduled) error {
	return m.Called(ctx, evt).Error(0)
}
