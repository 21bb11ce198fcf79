package handlers

import (
	"tourly/pkg/config"
	"tourly/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func SetupRouter(pages *services.Pages, store sessions.Store, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger(logger), gin.Recovery())

	// Session Setup
	r.Use(sessions.Sessions("tourly", store))

	// Templates & Static Files
	r.SetHTMLTemplate(pages.Template())
	r.Static("/static", config.StaticPath)

	// --- Pages ---
	r.GET("/", Home)
	r.GET("/tours", ToursIndex)
	r.GET("/tours/:slug", TourPage(pages))

	// --- Draft preview ---
	r.GET("/preview", EnablePreview)
	r.GET("/preview/exit", ExitPreview)

	api := r.Group("/api")
	{
		api.GET("/tours", ListTours)
		api.GET("/tours/:slug", GetTour(pages))
		api.POST("/webhook", HandleWebhook)
		api.POST("/build", BuildTokenRequired, HandleBuild(pages))
	}

	r.NoRoute(NotFound)
	return r
}
