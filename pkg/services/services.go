package services

import (
	"fmt"

	"tourly/pkg/config"
	"tourly/pkg/richtext"

	"go.uber.org/zap"
)

// Init wires the CDN client and site config from config and returns the
// page renderer shared by the HTTP handlers and the exporter.
func Init(logger *zap.Logger) (*Pages, error) {
	Client = NewStoryblokClient()

	site, err := LoadSiteConfig(config.SiteConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load site config: %w", err)
	}
	Site = site

	return NewPages(richtext.New(logger.Named("richtext")))
}
