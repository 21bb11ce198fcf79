package services

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"tourly/pkg/config"
)

// WebhookEvent is the payload Storyblok posts for story events.
type WebhookEvent struct {
	Text     string `json:"text"`
	Action   string `json:"action"`
	SpaceID  int    `json:"space_id"`
	StoryID  int    `json:"story_id"`
	FullSlug string `json:"full_slug"`
}

// VerifyWebhookSignature checks the hex HMAC-SHA1 of body against signature.
// An empty secret disables verification.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	if secret == "" {
		return true
	}
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(strings.ToLower(strings.TrimSpace(signature))))
}

// ApplyWebhook invalidates whatever the event touched. It returns the tour
// slug it dropped, or "" when the whole cache was cleared.
func ApplyWebhook(ev WebhookEvent) string {
	if slug, ok := strings.CutPrefix(ev.FullSlug, config.ToursPrefix); ok && ValidSlug(slug) {
		InvalidateTour(slug)
		return slug
	}
	InvalidateCache()
	return ""
}
