package repository

import (
	"context"
	"encoding/json"
	"time"

	"content-planner/domain/dto"
	"content-planner/domain/model"
)

// IPublication is the backend that owns publication records.
type IPublication interface {
	ListPublications(ctx context.Context, req *dto.PublicationListRequest) ([]model.RawPublication, error)
	CreatePublication(ctx context.Context, req *dto.CreatePublicationRequest) (*model.RawPublication, error)
	PublishNow(ctx context.Context, req *dto.PublishNowRequest) (*dto.PublishNowResponse, error)
	GetPublication(ctx context.Context, id string) (*model.RawPublication, error)
	UpdatePublication(ctx context.Context, id string, updates map[string]interface{}) (*model.RawPublication, error)
	DeletePublication(ctx context.Context, id string) error
	PublishPublication(ctx context.Context, id string) (json.RawMessage, error)
}

// IPublicationCache keeps the last fetched list per user for a short TTL.
type IPublicationCache interface {
	Get(ctx context.Context, userID string) ([]model.RawPublication, bool, error)
	Set(ctx context.Context, userID string, list []model.RawPublication, ttl time.Duration) error
	Invalidate(ctx context.Context, userID string) error
}

// IComposeAudit appends submission outcomes.
type IComposeAudit interface {
	CreateAudit(ctx context.Context, audits []*model.ComposeAudit) error
	ListBySession(ctx context.Context, sessionID string) ([]*model.ComposeAudit, error)
}

// IPublicationEvents publishes lifecycle events to a broker.
type IPublicationEvents interface {
	PublishScheduled(ctx context.Context, evt model.PublicationScheduled) error
}
