package dto

import "encoding/json"

// Res is the envelope returned by middleware rejections.
type Res struct {
	ResponseCode    string `json:"responseCode"`
	ResponseMessage string `json:"responseMessage"`
}

// PublicationPayload is the media part of a create request.
type PublicationPayload struct {
	ImageURL string `json:"image_url"`
	Caption  string `json:"caption"`
}

// CreatePublicationRequest is sent to the backend to create a publication.
// PublishAt is omitted for an immediate publication.
type CreatePublicationRequest struct {
	Title     string             `json:"title" binding:"required"`
	Platform  string             `json:"platform" binding:"required"`
	Format    string             `json:"format" binding:"required"`
	PublishAt string             `json:"publishAt,omitempty"`
	Payload   PublicationPayload `json:"payload"`
}

// PublishNowRequest is the body of the publish-now collaborator.
type PublishNowRequest struct {
	ImageURL string `json:"image_url" binding:"required"`
	Caption  string `json:"caption" binding:"required"`
}

// PublishNowResponse is whatever the backend returned on success.
type PublishNowResponse struct {
	ID      string          `json:"id,omitempty"`
	Message string          `json:"message,omitempty"`
	Raw     json.RawMessage `json:"-"`
}

// PublicationListRequest filters the backend list; encoded with go-querystring.
type PublicationListRequest struct {
	WorkspaceID string `form:"workspaceId" url:"workspaceId,omitempty"`
	From        string `form:"from" url:"from,omitempty"`
	To          string `form:"to" url:"to,omitempty"`
	Platform    string `form:"platform" url:"platform,omitempty"`
	Status      string `form:"status" url:"status,omitempty"`
}

// ErrorResponse is the backend's error body; either field may be set.
type ErrorResponse struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ComposeOpenRequest opens a compose session on a grid day.
type ComposeOpenRequest struct {
	Date string `json:"date" binding:"required"`
}
