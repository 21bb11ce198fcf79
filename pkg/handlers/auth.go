package handlers

import (
	"crypto/rand"
	"crypto/subtle"
	"net/http"
	"strings"

	"tourly/pkg/config"
	"tourly/pkg/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const previewKey = "preview"

// NewSessionStore returns the cookie store backing preview sessions. Without
// SESSION_SECRET a random key is used, so sessions end with the process.
func NewSessionStore() sessions.Store {
	secret := []byte(config.SessionSecret)
	if len(secret) == 0 {
		zap.L().Warn("SESSION_SECRET not set, using an ephemeral session key")
		secret = make([]byte, 32)
		_, _ = rand.Read(secret)
	}
	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   60 * 60,
		HttpOnly: true,
		Secure:   config.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// BuildTokenRequired guards the build endpoint with BUILD_TOKEN.
func BuildTokenRequired(c *gin.Context) {
	if config.BuildToken == "" {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Build disabled"})
		return
	}
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(config.BuildToken)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	c.Next()
}

func isPreview(c *gin.Context) bool {
	preview, _ := sessions.Default(c).Get(previewKey).(bool)
	return preview
}

func storyVersion(c *gin.Context) string {
	if isPreview(c) {
		return services.VersionDraft
	}
	return services.VersionPublished
}

// EnablePreview switches the session to draft content and redirects to the
// requested tour.
func EnablePreview(c *gin.Context) {
	if config.PreviewSecret == "" {
		c.String(http.StatusForbidden, "Preview disabled")
		return
	}
	secret := c.Query("secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(config.PreviewSecret)) != 1 {
		c.String(http.StatusUnauthorized, "Invalid preview secret")
		return
	}

	target := "/"
	if slug := c.Query("slug"); slug != "" {
		if !services.ValidSlug(slug) {
			c.String(http.StatusBadRequest, "Invalid slug")
			return
		}
		target = "/tours/" + slug
	}

	session := sessions.Default(c)
	session.Set(previewKey, true)
	if err := session.Save(); err != nil {
		_ = c.Error(err)
		c.String(http.StatusInternalServerError, "Failed to start preview")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, target)
}

func ExitPreview(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}
