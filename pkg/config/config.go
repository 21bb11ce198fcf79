package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	Port   = "8080"
	AppEnv = "development"

	LogLevel = "info"

	// Storyblok settings
	StoryblokAPIBase      = "https://api.storyblok.com/v2"
	StoryblokToken        = ""
	StoryblokPreviewToken = ""
	ToursPrefix           = "tours/"

	// Cache settings
	CacheConcurrency = 20
	CacheTTL         = 5 * time.Minute

	// Secrets
	SessionSecret = ""
	PreviewSecret = ""
	WebhookSecret = ""
	BuildToken    = ""

	// Paths
	SiteConfigPath = "./site.yml"
	StaticPath     = "./static"
	ExportPath     = "./public"
)

// Init reads settings from the environment, after loading .env from the
// working directory if there is one. It reports whether .env was loaded.
func Init() (envLoaded bool) {
	envLoaded = godotenv.Load() == nil

	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	Port = getEnv("PORT", "8080")
	AppEnv = getEnv("APP_ENV", "development")
	LogLevel = getEnv("LOG_LEVEL", "info")

	StoryblokAPIBase = getEnv("STORYBLOK_API_BASE", "https://api.storyblok.com/v2")
	StoryblokToken = getEnv("STORYBLOK_TOKEN", "")
	StoryblokPreviewToken = getEnv("STORYBLOK_PREVIEW_TOKEN", StoryblokToken)
	ToursPrefix = getEnv("STORYBLOK_TOURS_PREFIX", "tours/")

	SessionSecret = getEnv("SESSION_SECRET", "")
	PreviewSecret = getEnv("PREVIEW_SECRET", "")
	WebhookSecret = getEnv("WEBHOOK_SECRET", "")
	BuildToken = getEnv("BUILD_TOKEN", "")

	SiteConfigPath = getEnv("SITE_CONFIG_PATH", "./site.yml")
	StaticPath = getEnv("STATIC_PATH", "./static")
	ExportPath = getEnv("EXPORT_PATH", "./public")

	CacheConcurrency = 20
	if cc := os.Getenv("CACHE_CONCURRENCY"); cc != "" {
		if val, err := strconv.Atoi(cc); err == nil && val > 0 {
			CacheConcurrency = val
		}
	}

	CacheTTL = 5 * time.Minute
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		if val, err := strconv.Atoi(ttl); err == nil && val >= 0 {
			CacheTTL = time.Duration(val) * time.Second
		}
	}
	return envLoaded
}

func GetAppURL() string {
	appURL := os.Getenv("APP_URL")
	if appURL == "" {
		appURL = "http://localhost:" + Port
	}
	return appURL
}

func IsProduction() bool {
	return AppEnv == "production"
}
