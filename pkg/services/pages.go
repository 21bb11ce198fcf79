package services

import (
	"fmt"
	"html/template"
	"io"
	"strings"

	"tourly/pkg/models"
	"tourly/pkg/richtext"
	"tourly/templates"
)

const (
	bodyClass = "tour-content prose prose-lg"

	heroWordStep = 0.15
)

// HeroWord is one word of the animated hero title.
type HeroWord struct {
	Text  string
	Delay string
}

type HeroData struct {
	Name         string
	Words        []HeroWord
	Introduction string
	Price        string
	Image        string
	Alt          string
}

func (h HeroData) HasImage() bool {
	return h.Image != ""
}

type TourCard struct {
	Slug         string `json:"slug"`
	URL          string `json:"url"`
	Name         string `json:"name"`
	Location     string `json:"location,omitempty"`
	Price        string `json:"price,omitempty"`
	Introduction string `json:"introduction,omitempty"`
	Image        string `json:"image,omitempty"`
	Alt          string `json:"alt"`
}

// PageData is the view model every page template receives.
type PageData struct {
	Site        *models.SiteConfig
	Title       string
	Description string
	Hero        HeroData
	Body        template.HTML
	Tours       []TourCard
	Preview     bool
}

// Pages owns the parsed page templates and the rich-text renderer.
type Pages struct {
	tmpl     *template.Template
	renderer *richtext.Renderer
}

func NewPages(renderer *richtext.Renderer) (*Pages, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"delay": animationDelay,
	}).ParseFS(templates.FS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Pages{tmpl: tmpl, renderer: renderer}, nil
}

func (p *Pages) Template() *template.Template {
	return p.tmpl
}

func (p *Pages) Render(w io.Writer, name string, data PageData) error {
	return p.tmpl.ExecuteTemplate(w, name, data)
}

// animationDelay formats base+step*index seconds as a CSS time.
func animationDelay(base, step float64, index int) string {
	return fmt.Sprintf("%.2fs", base+step*float64(index))
}

// BuildHero fills the hero from tour content, falling back to the site copy
// for a missing name or introduction.
func BuildHero(site *models.SiteConfig, content *models.TourContent) HeroData {
	hero := HeroData{
		Name:         site.Hero.Name,
		Introduction: site.Hero.Introduction,
	}
	if content != nil {
		if content.Name != "" {
			hero.Name = content.Name
		}
		if content.Introduction != "" {
			hero.Introduction = content.Introduction
		}
		hero.Price = content.Price
		hero.Image = content.MainImage.Filename
		hero.Alt = content.MainImage.Alt
	}
	if hero.Alt == "" {
		hero.Alt = hero.Name
	}
	for i, word := range strings.Fields(hero.Name) {
		hero.Words = append(hero.Words, HeroWord{Text: word, Delay: animationDelay(0, heroWordStep, i)})
	}
	return hero
}

func BuildTourCards(stories []models.TourStory) []TourCard {
	cards := make([]TourCard, 0, len(stories))
	for _, s := range stories {
		slug, ok := TourSlug(s)
		if !ok {
			continue
		}
		name := s.Content.Name
		if name == "" {
			name = s.Name
		}
		alt := s.Content.MainImage.Alt
		if alt == "" {
			alt = name
		}
		cards = append(cards, TourCard{
			Slug:         slug,
			URL:          "/tours/" + slug,
			Name:         name,
			Location:     s.Content.Location,
			Price:        s.Content.Price,
			Introduction: s.Content.Introduction,
			Image:        s.Content.MainImage.Filename,
			Alt:          alt,
		})
	}
	return cards
}

func HomePage(site *models.SiteConfig, tours []models.TourStory, preview bool) PageData {
	return PageData{
		Site:        site,
		Title:       site.Title,
		Description: site.Description,
		Hero:        BuildHero(site, nil),
		Tours:       BuildTourCards(tours),
		Preview:     preview,
	}
}

func ToursIndexPage(site *models.SiteConfig, tours []models.TourStory, preview bool) PageData {
	return PageData{
		Site:        site,
		Title:       "Tours | " + site.Title,
		Description: site.Description,
		Tours:       BuildTourCards(tours),
		Preview:     preview,
	}
}

func (p *Pages) TourPage(site *models.SiteConfig, story *models.TourStory, preview bool) PageData {
	hero := BuildHero(site, &story.Content)
	description := story.Content.Introduction
	if description == "" {
		description = site.Description
	}
	return PageData{
		Site:        site,
		Title:       hero.Name + " | " + site.Title,
		Description: description,
		Hero:        hero,
		Body:        p.RenderBody(story),
		Preview:     preview,
	}
}

// RenderBody renders a story body without the surrounding page.
func (p *Pages) RenderBody(story *models.TourStory) template.HTML {
	return p.renderer.RenderDocument(story.Content.Body, bodyClass)
}

func NotFoundPage(site *models.SiteConfig) PageData {
	return PageData{
		Site:        site,
		Title:       "Not found | " + site.Title,
		Description: site.Description,
	}
}
