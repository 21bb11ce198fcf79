package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"tourly/pkg/config"
	"tourly/pkg/models"
	"tourly/pkg/richtext"
	"tourly/pkg/services"

	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cdnStub struct {
	mu        sync.Mutex
	published map[string]models.TourStory
	drafts    map[string]models.TourStory
	down      bool
	hits      int
}

func (s *cdnStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits++

	if s.down {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
		return
	}
	source := s.published
	if r.URL.Query().Get("version") == services.VersionDraft {
		source = s.drafts
	}

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/cdn/stories" {
		stories := []models.TourStory{}
		for _, slug := range []string{"tours/lisbon", "tours/porto"} {
			if st, ok := source[slug]; ok {
				stories = append(stories, st)
			}
		}
		w.Header().Set("Total", "2")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"stories": stories})
		return
	}
	st, ok := source[strings.TrimPrefix(r.URL.Path, "/cdn/stories/")]
	if !ok {
		http.Error(w, `["This record could not be found"]`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"story": st})
}

func (s *cdnStub) SetDown(down bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.down = down
}

func (s *cdnStub) Hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits
}

func story(slug, name, body string) models.TourStory {
	return models.TourStory{
		Name:     name,
		Slug:     slug,
		FullSlug: "tours/" + slug,
		Content: models.TourContent{
			Component:    "tour",
			Name:         name,
			Price:        "€59",
			Introduction: "Discover " + name,
			Body: models.Document{Root: &models.Node{Type: "doc", Content: []models.Node{
				{Type: "paragraph", Content: []models.Node{{Type: "text", Text: body, Marks: []models.Mark{{Type: "bold"}}}}},
			}}},
		},
	}
}

// setup wires the package globals to a CDN stub and returns the router.
func setup(t *testing.T) (*gin.Engine, *cdnStub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cdn := &cdnStub{
		published: map[string]models.TourStory{
			"tours/lisbon": story("lisbon", "Lisbon", "Seven hills"),
			"tours/porto":  story("porto", "Porto", "Port wine"),
		},
		drafts: map[string]models.TourStory{
			"tours/lisbon": story("lisbon", "Lisbon", "Draft hills"),
		},
	}
	srv := httptest.NewServer(cdn)
	t.Cleanup(srv.Close)

	prevClient, prevSite := services.Client, services.Site
	prevStatic, prevPrefix := config.StaticPath, config.ToursPrefix
	services.Client = &services.StoryblokClient{BaseURL: srv.URL, Token: "pub", PreviewToken: "prev", HTTP: srv.Client()}
	services.Site = services.DefaultSiteConfig()
	services.InvalidateCache()
	config.StaticPath = t.TempDir()
	config.ToursPrefix = "tours/"
	t.Cleanup(func() {
		services.Client, services.Site = prevClient, prevSite
		config.StaticPath, config.ToursPrefix = prevStatic, prevPrefix
		services.InvalidateCache()
	})

	pages, err := services.NewPages(richtext.New(nil))
	require.NoError(t, err)

	store := cookie.NewStore([]byte("0123456789abcdef0123456789abcdef"))
	return SetupRouter(pages, store, zap.NewNop()), cdn
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
