package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"content-planner/domain/dto"
	"content-planner/domain/model"
	"content-planner/domain/repository"
	"content-planner/infrastructure/logger"
)

// IPublicationUsecase forwards publication CRUD to the backend on behalf of a user.
type IPublicationUsecase interface {
	List(ctx context.Context, userID string, req *dto.PublicationListRequest) ([]model.RawPublication, error)
	Create(ctx context.Context, userID string, req *dto.CreatePublicationRequest) (*model.RawPublication, error)
	Get(ctx context.Context, id string) (*model.RawPublication, error)
	Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*model.RawPublication, error)
	Delete(ctx context.Context, userID, id string) error
	Publish(ctx context.Context, userID, id string) (json.RawMessage, error)
}

type publicationUsecase struct {
	publications repository.IPublication
	calendar     ICalendarUsecase
	refresh      RefreshFunc
}

// NewPublicationUsecase serves reads through calendar so the list cache is shared;
// refresh runs after every successful write.
func NewPublicationUsecase(publications repository.IPublication, calendar ICalendarUsecase, refresh RefreshFunc) IPublicationUsecase {
	return &publicationUsecase{publications: publications, calendar: calendar, refresh: refresh}
}

func (u *publicationUsecase) List(ctx context.Context, userID string, req *dto.PublicationListRequest) ([]model.RawPublication, error) {
	if u.calendar != nil {
		return u.calendar.ListPublications(ctx, userID, req)
	}
	return u.publications.ListPublications(ctx, req)
}

func (u *publicationUsecase) Create(ctx context.Context, userID string, req *dto.CreatePublicationRequest) (*model.RawPublication, error) {
	if req == nil {
		return nil, &model.ValidationError{Fields: []string{"body"}}
	}
	var missing []string
	if strings.TrimSpace(req.Title) == "" {
		missing = append(missing, "title")
	}
	if _, ok := model.ParseBackendPlatform(req.Platform); !ok {
		missing = append(missing, "platform")
	}
	if strings.TrimSpace(req.Format) == "" {
		missing = append(missing, "format")
	}
	if len(missing) > 0 {
		return nil, &model.ValidationError{Fields: missing}
	}

	created, err := u.publications.CreatePublication(ctx, req)
	if err != nil {
		return nil, err
	}
	u.afterWrite(ctx, userID, "create")
	return created, nil
}

func (u *publicationUsecase) Get(ctx context.Context, id string) (*model.RawPublication, error) {
	return u.publications.GetPublication(ctx, id)
}

func (u *publicationUsecase) Update(ctx context.Context, userID, id string, updates map[string]interface{}) (*model.RawPublication, error) {
	if len(updates) == 0 {
		return nil, &model.ValidationError{Fields: []string{"body"}}
	}
	updated, err := u.publications.UpdatePublication(ctx, id, updates)
	if err != nil {
		return nil, err
	}
	u.afterWrite(ctx, userID, "update")
	return updated, nil
}

func (u *publicationUsecase) Delete(ctx context.Context, userID, id string) error {
	if err := u.publications.DeletePublication(ctx, id); err != nil {
		return err
	}
	u.afterWrite(ctx, userID, "delete")
	return nil
}

func (u *publicationUsecase) Publish(ctx context.Context, userID, id string) (json.RawMessage, error) {
	res, err := u.publications.PublishPublication(ctx, id)
	if err != nil {
		return nil, err
	}
	u.afterWrite(ctx, userID, "publish")
	return res, nil
}

func (u *publicationUsecase) afterWrite(ctx context.Context, userID, op string) {
	logger.GetLogger().WithField("user_id", userID).WithField("op", op).Debug("publication changed; refreshing calendar")
	if u.refresh != nil {
		u.refresh(ctx, userID)
	}
}
