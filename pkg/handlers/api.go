package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"tourly/pkg/config"
	"tourly/pkg/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func ListTours(c *gin.Context) {
	tours, err := services.ListTours(c.Request.Context(), storyVersion(c))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch tours"})
		return
	}
	c.JSON(http.StatusOK, services.BuildTourCards(tours))
}

func GetTour(pages *services.Pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if !services.ValidSlug(slug) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
			return
		}

		story, err := services.GetTour(c.Request.Context(), slug, storyVersion(c))
		if err != nil {
			if errors.Is(err, services.ErrStoryNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Tour not found"})
				return
			}
			_ = c.Error(err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch tour"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"story":     story,
			"body_html": pages.RenderBody(story),
		})
	}
}

// HandleWebhook drops cached content when Storyblok reports a change.
func HandleWebhook(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid body"})
		return
	}
	if !services.VerifyWebhookSignature(body, c.GetHeader("webhook-signature"), config.WebhookSecret) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var ev services.WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	invalidated := services.ApplyWebhook(ev)
	if invalidated == "" {
		invalidated = "all"
	}
	zap.L().Info("Webhook applied",
		zap.String("action", ev.Action),
		zap.String("full_slug", ev.FullSlug),
		zap.String("invalidated", invalidated))
	c.JSON(http.StatusOK, gin.H{"status": "ok", "invalidated": invalidated})
}

func HandleBuild(pages *services.Pages) gin.HandlerFunc {
	return func(c *gin.Context) {
		written, err := services.ExportSite(c.Request.Context(), pages, config.ExportPath, config.StaticPath)
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "log": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "files": written})
	}
}
