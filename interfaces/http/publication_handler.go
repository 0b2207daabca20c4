package http

import (
	"net/http"

	"content-planner/domain/dto"
	"content-planner/domain/model"
	"content-planner/usecase"

	"github.com/gin-gonic/gin"
)

type IPublicationHandler interface {
	List(ctx *gin.Context)
	Create(ctx *gin.Context)
	Get(ctx *gin.Context)
	Update(ctx *gin.Context)
	Delete(ctx *gin.Context)
	Publish(ctx *gin.Context)
	InstagramPublish(ctx *gin.Context)
}

type PublicationHandler struct {
	publicationUsecase usecase.IPublicationUsecase
	composeUsecase     usecase.IComposeUsecase
}

func NewPublicationHandler(pub usecase.IPublicationUsecase, compose usecase.IComposeUsecase) IPublicationHandler {
	return &PublicationHandler{publicationUsecase: pub, composeUsecase: compose}
}

func (h *PublicationHandler) List(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.PublicationListRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid query"})
		return
	}
	list, err := h.publicationUsecase.List(ctx.Request.Context(), userID, &req)
	if err != nil {
		respondError(ctx, err, "Failed to fetch publications")
		return
	}
	if list == nil {
		list = []model.RawPublication{}
	}
	ctx.JSON(http.StatusOK, list)
}

func (h *PublicationHandler) Create(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.CreatePublicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	created, err := h.publicationUsecase.Create(ctx.Request.Context(), userID, &req)
	if err != nil {
		respondError(ctx, err, "Failed to create publication")
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

func (h *PublicationHandler) Get(ctx *gin.Context) {
	pub, err := h.publicationUsecase.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Failed to fetch publication")
		return
	}
	ctx.JSON(http.StatusOK, pub)
}

func (h *PublicationHandler) Update(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	var updates map[string]interface{}
	if err := ctx.ShouldBindJSON(&updates); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	pub, err := h.publicationUsecase.Update(ctx.Request.Context(), userID, ctx.Param("id"), updates)
	if err != nil {
		respondError(ctx, err, "Failed to update publication")
		return
	}
	ctx.JSON(http.StatusOK, pub)
}

func (h *PublicationHandler) Delete(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	if err := h.publicationUsecase.Delete(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		respondError(ctx, err, "Failed to delete publication")
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (h *PublicationHandler) Publish(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	res, err := h.publicationUsecase.Publish(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		respondError(ctx, err, "Failed to publish")
		return
	}
	if len(res) == 0 {
		ctx.Status(http.StatusNoContent)
		return
	}
	ctx.Data(http.StatusOK, "application/json; charset=utf-8", res)
}

// InstagramPublish is the standalone publish-now path, outside any compose session.
func (h *PublicationHandler) InstagramPublish(ctx *gin.Context) {
	userID, ok := requireUser(ctx)
	if !ok {
		return
	}
	var req dto.PublishNowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "image_url and caption are required"})
		return
	}
	res, err := h.composeUsecase.PublishImmediately(ctx.Request.Context(), userID, req)
	if err != nil {
		respondError(ctx, err, "Failed to publish")
		return
	}
	if len(res.Raw) > 0 {
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", res.Raw)
		return
	}
	ctx.JSON(http.StatusOK, res)
}
