package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"tourly/pkg/config"
	"tourly/pkg/models"
)

const (
	testToken        = "public-token"
	testPreviewToken = "preview-token"
)

// fakeCDN serves a minimal Storyblok delivery API from memory.
type fakeCDN struct {
	mu        sync.Mutex
	published map[string]models.TourStory
	drafts    map[string]models.TourStory
	hits      int
	server    *httptest.Server
}

func newFakeCDN(t *testing.T, stories ...models.TourStory) *fakeCDN {
	t.Helper()
	f := &fakeCDN{
		published: map[string]models.TourStory{},
		drafts:    map[string]models.TourStory{},
	}
	for _, s := range stories {
		f.published[s.FullSlug] = s
		f.drafts[s.FullSlug] = s
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeCDN) Hits() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits
}

func (f *fakeCDN) SetDraft(s models.TourStory) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts[s.FullSlug] = s
}

func (f *fakeCDN) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits++

	q := r.URL.Query()
	source := f.published
	wantToken := testToken
	if q.Get("version") == VersionDraft {
		source = f.drafts
		wantToken = testPreviewToken
	}
	if q.Get("token") != wantToken {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/cdn/stories" {
		var matched []models.TourStory
		for slug, s := range source {
			if strings.HasPrefix(slug, q.Get("starts_with")) {
				matched = append(matched, s)
			}
		}
		sort.Slice(matched, func(i, j int) bool { return matched[i].FullSlug < matched[j].FullSlug })

		perPage, _ := strconv.Atoi(q.Get("per_page"))
		page, _ := strconv.Atoi(q.Get("page"))
		start := min((page-1)*perPage, len(matched))
		end := min(start+perPage, len(matched))

		w.Header().Set("Total", strconv.Itoa(len(matched)))
		_ = json.NewEncoder(w).Encode(storiesResponse{Stories: matched[start:end]})
		return
	}

	slug := strings.TrimPrefix(r.URL.Path, "/cdn/stories/")
	s, ok := source[slug]
	if !ok {
		http.Error(w, `["This record could not be found"]`, http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(storyResponse{Story: s})
}

// useCDN points the package client at f and resets cache state.
func useCDN(t *testing.T, f *fakeCDN) {
	t.Helper()
	prevClient, prevPrefix, prevTTL := Client, config.ToursPrefix, config.CacheTTL
	Client = &StoryblokClient{
		BaseURL:      f.server.URL,
		Token:        testToken,
		PreviewToken: testPreviewToken,
		HTTP:         f.server.Client(),
	}
	config.ToursPrefix = "tours/"
	InvalidateCache()
	t.Cleanup(func() {
		Client, config.ToursPrefix, config.CacheTTL = prevClient, prevPrefix, prevTTL
		InvalidateCache()
	})
}

func tourStory(slug, name string) models.TourStory {
	return models.TourStory{
		ID:       len(slug),
		Name:     name,
		Slug:     slug,
		FullSlug: "tours/" + slug,
		Content: models.TourContent{
			Component:    "tour",
			Name:         name,
			Price:        "€49",
			Location:     "Portugal",
			Introduction: "A walk through " + name + ".",
			MainImage: models.TourAsset{
				Filename: "https://a.storyblok.com/f/1/" + slug + ".jpg",
			},
			Body: models.Document{Root: &models.Node{
				Type: "doc",
				Content: []models.Node{
					{Type: "paragraph", Content: []models.Node{{Type: "text", Text: "About " + name}}},
				},
			}},
		},
	}
}
