package models

// SiteConfig describes the brand chrome around CMS content. It is read from
// site.yml (or .toml/.json) at startup.
type SiteConfig struct {
	Title       string    `yaml:"title" toml:"title" json:"title"`
	Description string    `yaml:"description" toml:"description" json:"description"`
	Brand       string    `yaml:"brand" toml:"brand" json:"brand"`
	Lang        string    `yaml:"lang" toml:"lang" json:"lang"`
	Navigation  []NavItem `yaml:"navigation" toml:"navigation" json:"navigation"`
	Labels      []Label   `yaml:"labels" toml:"labels" json:"labels"`
	Features    []Feature `yaml:"features" toml:"features" json:"features"`
	Hero        HeroCopy  `yaml:"hero" toml:"hero" json:"hero"`
}

type NavItem struct {
	Title string `yaml:"title" toml:"title" json:"title"`
	Href  string `yaml:"href" toml:"href" json:"href"`
}

type Label struct {
	Icon  string `yaml:"icon" toml:"icon" json:"icon"`
	Label string `yaml:"label" toml:"label" json:"label"`
}

type Feature struct {
	Icon        string `yaml:"icon" toml:"icon" json:"icon"`
	Label       string `yaml:"label" toml:"label" json:"label"`
	Description string `yaml:"description" toml:"description" json:"description"`
}

// HeroCopy is the fallback text for a hero section without CMS data.
type HeroCopy struct {
	Name         string `yaml:"name" toml:"name" json:"name"`
	Introduction string `yaml:"introduction" toml:"introduction" json:"introduction"`
}
