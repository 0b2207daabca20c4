package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Healthz reports liveness plus which optional collaborators are wired.
func Healthz(components map[string]bool) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok", "components": components})
	}
}
