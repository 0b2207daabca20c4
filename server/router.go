package server

import (
	"time"

	"content-planner/infrastructure/realtime"
	httpHandler "content-planner/interfaces/http"
	"content-planner/interfaces/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Calendar    httpHandler.ICalendarHandler
	Publication httpHandler.IPublicationHandler
	Compose     httpHandler.IComposeHandler
	Hub         *realtime.Hub
	Health      gin.HandlerFunc
}

func InitiateRouter(h Handlers, secretKey string, corsOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if h.Health != nil {
		router.GET("/healthz", h.Health)
	}

	api := router.Group("api")
	api.Use(middleware.Auth(secretKey))

	api.GET("/calendar", h.Calendar.GetCalendar)
	if h.Hub != nil {
		api.GET("/calendar/stream", h.Hub.Serve)
	}

	api.GET("/publications", h.Publication.List)
	api.POST("/publications", h.Publication.Create)
	api.GET("/publications/:id", h.Publication.Get)
	api.PATCH("/publications/:id", h.Publication.Update)
	api.DELETE("/publications/:id", h.Publication.Delete)
	api.POST("/publications/:id/publish", h.Publication.Publish)
	api.POST("/instagram/publish", h.Publication.InstagramPublish)

	api.POST("/compose", h.Compose.Open)
	api.GET("/compose/:id", h.Compose.Get)
	api.PATCH("/compose/:id", h.Compose.Edit)
	api.DELETE("/compose/:id", h.Compose.Close)
	api.POST("/compose/:id/submit", h.Compose.Submit)
	api.POST("/compose/:id/publish-now", h.Compose.PublishNow)

	return router
}
