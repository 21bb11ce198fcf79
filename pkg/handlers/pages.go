package handlers

import (
	"errors"
	"net/http"

	"tourly/pkg/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Home(c *gin.Context) {
	tours, err := services.ListTours(c.Request.Context(), storyVersion(c))
	if err != nil {
		// The home page still works without the tour list.
		zap.L().Warn("Home page without tours", zap.Error(err))
	}
	c.HTML(http.StatusOK, "home.html", services.HomePage(services.Site, tours, isPreview(c)))
}

func ToursIndex(c *gin.Context) {
	tours, err := services.ListTours(c.Request.Context(), storyVersion(c))
	if err != nil {
		renderError(c, err)
		return
	}
	c.HTML(http.StatusOK, "tours.html", services.ToursIndexPage(services.Site, tours, isPreview(c)))
}

func TourPage(pages *services.Pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if !services.ValidSlug(slug) {
			NotFound(c)
			return
		}

		story, err := services.GetTour(c.Request.Context(), slug, storyVersion(c))
		if err != nil {
			renderError(c, err)
			return
		}
		c.HTML(http.StatusOK, "tour.html", pages.TourPage(services.Site, story, isPreview(c)))
	}
}

func NotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, "404.html", services.NotFoundPage(services.Site))
}

func renderError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrStoryNotFound) {
		NotFound(c)
		return
	}
	_ = c.Error(err)
	data := services.NotFoundPage(services.Site)
	data.Title = "Unavailable | " + services.Site.Title
	c.HTML(http.StatusBadGateway, "error.html", data)
}
