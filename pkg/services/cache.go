package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"tourly/pkg/config"
	"tourly/pkg/models"

	"go.uber.org/zap"
)

// Client is the CDN client used by the cache. Init sets it from config.
var Client *StoryblokClient

type cachedTour struct {
	story     models.TourStory
	fetchedAt time.Time
}

var (
	tourCache   = map[string]cachedTour{}
	tourList    []models.TourStory
	listFetched time.Time
	listLoaded  bool
	cacheMutex  sync.Mutex

	now = time.Now
)

// ValidSlug reports whether slug names a single story below the tours folder.
func ValidSlug(slug string) bool {
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsAny(slug, `/\?#`) {
		return false
	}
	return true
}

// TourSlug returns the path of s below ToursPrefix, the slug GetTour resolves.
// Start pages and stories in nested folders have none.
func TourSlug(s models.TourStory) (string, bool) {
	slug, ok := strings.CutPrefix(s.FullSlug, config.ToursPrefix)
	if !ok || s.IsStartpage || !ValidSlug(slug) {
		return "", false
	}
	return slug, true
}

func fresh(fetchedAt time.Time) bool {
	if config.CacheTTL == 0 {
		return true
	}
	return now().Sub(fetchedAt) < config.CacheTTL
}

// GetTour returns the tour stored at <ToursPrefix><slug>. Published reads are
// served from the cache; draft reads always go to the CDN.
func GetTour(ctx context.Context, slug, version string) (*models.TourStory, error) {
	fullSlug := config.ToursPrefix + slug
	if version == VersionDraft {
		return Client.GetStory(ctx, fullSlug, VersionDraft)
	}

	cacheMutex.Lock()
	entry, ok := tourCache[slug]
	cacheMutex.Unlock()
	if ok && fresh(entry.fetchedAt) {
		story := entry.story
		return &story, nil
	}

	story, err := Client.GetStory(ctx, fullSlug, VersionPublished)
	if err != nil {
		return nil, err
	}

	cacheMutex.Lock()
	tourCache[slug] = cachedTour{story: *story, fetchedAt: now()}
	cacheMutex.Unlock()
	return story, nil
}

// ListTours returns every tour story. The published list is cached alongside
// the individual tours it contains.
func ListTours(ctx context.Context, version string) ([]models.TourStory, error) {
	if version == VersionDraft {
		stories, err := Client.ListStories(ctx, config.ToursPrefix, VersionDraft)
		if err != nil {
			return nil, err
		}
		return onlyTours(stories), nil
	}

	cacheMutex.Lock()
	if listLoaded && fresh(listFetched) {
		out := append([]models.TourStory(nil), tourList...)
		cacheMutex.Unlock()
		return out, nil
	}
	cacheMutex.Unlock()

	stories, err := Client.ListStories(ctx, config.ToursPrefix, VersionPublished)
	if err != nil {
		return nil, err
	}
	stories = onlyTours(stories)

	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	fetchedAt := now()
	tourList = stories
	listFetched = fetchedAt
	listLoaded = true
	for _, s := range stories {
		slug, _ := TourSlug(s)
		tourCache[slug] = cachedTour{story: s, fetchedAt: fetchedAt}
	}
	return append([]models.TourStory(nil), stories...), nil
}

// onlyTours keeps the stories that have a tour slug. Folder start pages and
// stories in nested folders share the prefix but are not reachable as tours.
func onlyTours(stories []models.TourStory) []models.TourStory {
	out := make([]models.TourStory, 0, len(stories))
	for _, s := range stories {
		if _, ok := TourSlug(s); !ok {
			if !s.IsStartpage {
				zap.L().Debug("Skipping story outside the tours folder", zap.String("full_slug", s.FullSlug))
			}
			continue
		}
		out = append(out, s)
	}
	return out
}

// WarmCache loads the published tour list so the first visitors do not pay
// for the CDN round trip.
func WarmCache(ctx context.Context) (int, error) {
	stories, err := ListTours(ctx, VersionPublished)
	if err != nil {
		return 0, err
	}
	zap.L().Info("Tour cache warmed", zap.Int("tours", len(stories)))
	return len(stories), nil
}

func InvalidateCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	tourCache = map[string]cachedTour{}
	tourList = nil
	listLoaded = false
}

// InvalidateTour drops one tour and the list that may contain it.
func InvalidateTour(slug string) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	delete(tourCache, slug)
	tourList = nil
	listLoaded = false
}
