package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"tourly/pkg/models"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Site is the loaded site configuration. Init populates it.
var Site = DefaultSiteConfig()

func DefaultSiteConfig() *models.SiteConfig {
	return &models.SiteConfig{
		Title:       "Tourly",
		Description: "Explore the best walking tours across the world",
		Brand:       "Travelu",
		Lang:        "en",
		Navigation: []models.NavItem{
			{Title: "TOURS", Href: "/tours"},
			{Title: "DESTINATIONS", Href: "#destinations"},
			{Title: "ABOUT", Href: "#about"},
			{Title: "CONTACT", Href: "#contact"},
		},
		Labels: []models.Label{
			{Icon: "map-pin", Label: "Local Guides"},
			{Icon: "compass", Label: "Custom Itineraries"},
			{Icon: "globe", Label: "Worldwide Destinations"},
		},
		Features: []models.Feature{
			{Icon: "map", Label: "Expert Planning", Description: "Crafting exceptional journeys from global escape plans to unleash your wanderlust."},
			{Icon: "calendar", Label: "Flexible Booking", Description: "Book your next adventure with confidence and flexible cancellation policies."},
			{Icon: "plane", Label: "Seamless Travel", Description: "Experience stress-free travel with our end-to-end support and local expertise."},
		},
		Hero: models.HeroCopy{
			Name:         "UNLEASH YOUR WANDERLUST",
			Introduction: "Crafting exceptional journeys from global escape plans to unleash your wanderlust. Seamless travel, extraordinary adventures.",
		},
	}
}

// SafeJoin joins target below root/sub, refusing paths that climb out.
func SafeJoin(root, sub, target string) string {
	cleanTarget := filepath.Clean(target)
	if strings.Contains(cleanTarget, "..") {
		return ""
	}
	return filepath.Join(root, sub, cleanTarget)
}

// LoadSiteConfig reads a site config file. The format follows the
// extension: .yml/.yaml, .toml or .json. A missing file yields the defaults.
// Fields absent from the file keep their default values.
func LoadSiteConfig(path string) (*models.SiteConfig, error) {
	cfg := DefaultSiteConfig()

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	var loaded models.SiteConfig
	if err := ParseSiteConfig(content, formatFromPath(path), &loaded); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	mergeSiteConfig(cfg, &loaded)
	return cfg, nil
}

// mergeSiteConfig copies every field set in src over dst.
func mergeSiteConfig(dst, src *models.SiteConfig) {
	setString := func(d *string, v string) {
		if v != "" {
			*d = v
		}
	}
	setString(&dst.Title, src.Title)
	setString(&dst.Description, src.Description)
	setString(&dst.Brand, src.Brand)
	setString(&dst.Lang, src.Lang)
	setString(&dst.Hero.Name, src.Hero.Name)
	setString(&dst.Hero.Introduction, src.Hero.Introduction)

	if len(src.Navigation) > 0 {
		dst.Navigation = src.Navigation
	}
	if len(src.Labels) > 0 {
		dst.Labels = src.Labels
	}
	if len(src.Features) > 0 {
		dst.Features = src.Features
	}
}

func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return "toml"
	case ".json":
		return "json"
	default:
		return "yaml"
	}
}

// ParseSiteConfig decodes content in the given format into cfg. Unknown keys
// are an error in every format. Empty content leaves cfg untouched.
func ParseSiteConfig(content []byte, format string, cfg *models.SiteConfig) error {
	var err error
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		err = dec.Decode(cfg)
	case "toml":
		err = toml.NewDecoder(bytes.NewReader(content)).DisallowUnknownFields().Decode(cfg)
	case "json":
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		err = dec.Decode(cfg)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
