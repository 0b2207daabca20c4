package http

import (
	"errors"
	"net/http"

	"content-planner/domain/model"
	"content-planner/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var verr *model.ValidationError
	var berr *model.BackendError
	var nerr *model.NetworkError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrSubmitInFlight):
		return http.StatusConflict
	case errors.Is(err, model.ErrSessionClosed):
		return http.StatusGone
	case errors.As(err, &berr):
		if berr.StatusCode >= 400 {
			return berr.StatusCode
		}
		return http.StatusBadGateway
	case errors.As(err, &nerr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondError(ctx *gin.Context, err error, fallback string) {
	status := statusFor(err)
	body := gin.H{"message": model.UserMessage(err, fallback)}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
	}
	if errors.Is(err, model.ErrSessionNotFound) || errors.Is(err, model.ErrSubmitInFlight) || errors.Is(err, model.ErrSessionClosed) {
		body["message"] = err.Error()
	}
	if body["message"] == "" {
		body["message"] = model.UnexpectedErrorMessage
	}
	if status >= http.StatusInternalServerError {
		logger.GetLogger().WithField("path", ctx.FullPath()).WithField("error", err).Error("request failed")
	}
	ctx.JSON(status, body)
}

func requireUser(ctx *gin.Context) (string, bool) {
	userID := ctx.GetString("user_id")
	if userID == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return "", false
	}
	return userID, true
}
