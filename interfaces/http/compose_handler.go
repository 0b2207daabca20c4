package http

import (
	"net/http"

	"content-planner/domain/dto"
	"content-planner/domain/model"
	"content-planner/usecase"

	"github.com/gin-gonic/gin"
)

type IComposeHandler interface {
	Open(ctx *gin.Context)
	Get(ctx *gin.Context)
	Edit(ctx *gin.Context)
	Submit(ctx *gin.Context)
	PublishNow(ctx *gin.Context)
	Close(ctx *gin.Context)
}

type ComposeHandler struct {
	composeUsecase usecase.IComposeUsecase
}

func NewComposeHandler(uc usecase.IComposeUsecase) IComposeHandler {
	return &ComposeHandler{composeUsecase: uc}
}

func (h *ComposeHandler) Open(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.ComposeOpenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "date is required", "fields": []string{"date"}})
		return
	}
	date, err := model.ParseCalendarDate(req.Date)
	if err != nil {
		respondError(ctx, &model.ValidationError{Fields: []string{"date"}}, "")
		return
	}
	snap, err := h.composeUsecase.Open(ctx.Request.Context(), userID, date)
	if err != nil {
		respondError(ctx, err, "Failed to open compose session")
		return
	}
	ctx.JSON(http.StatusCreated, snap)
}

func (h *ComposeHandler) Get(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	snap, err := h.composeUsecase.Get(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "")
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (h *ComposeHandler) Edit(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	var patch model.ComposeFormPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	snap, err := h.composeUsecase.Edit(ctx.Request.Context(), userID, ctx.Param("id"), patch)
	if err != nil {
		respondSnapshotError(ctx, snap, err, "")
		return
	}
	ctx.JSON(http.StatusOK, snap)
}

func (h *ComposeHandler) Submit(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	snap, created, err := h.composeUsecase.Submit(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondSnapshotError(ctx, snap, err, "Failed to schedule post")
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"session": snap, "publication": created})
}

func (h *ComposeHandler) PublishNow(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	snap, err := h.composeUsecase.PublishNow(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondSnapshotError(ctx, snap, err, "Failed to publish")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"session": snap})
}

func (h *ComposeHandler) Close(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	if err := h.composeUsecase.Close(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		respondError(ctx, err, "")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// respondSnapshotError returns the session alongside the error so the form
// can be re-rendered with its preserved values.
func respondSnapshotError(ctx *gin.Context, snap model.ComposeSnapshot, err error, fallback string) {
	if snap.ID == "" {
		respondError(ctx, err, fallback)
		return
	}
	message := snap.Error
	if message == "" {
		message = model.UserMessage(err, fallback)
	}
	if message == "" {
		message = err.Error()
	}
	ctx.JSON(statusFor(err), gin.H{"message": message, "fields": snap.Fields, "session": snap})
}
