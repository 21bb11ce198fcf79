package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"tourly/pkg/config"
	"tourly/pkg/models"
)

const (
	VersionPublished = "published"
	VersionDraft     = "draft"

	storiesPerPage = 100
)

var ErrStoryNotFound = errors.New("story not found")

// StoryblokClient talks to the Storyblok content delivery API.
type StoryblokClient struct {
	BaseURL      string
	Token        string
	PreviewToken string
	HTTP         *http.Client
}

func NewStoryblokClient() *StoryblokClient {
	return &StoryblokClient{
		BaseURL:      strings.TrimRight(config.StoryblokAPIBase, "/"),
		Token:        config.StoryblokToken,
		PreviewToken: config.StoryblokPreviewToken,
		HTTP:         &http.Client{Timeout: 10 * time.Second},
	}
}

type storyResponse struct {
	Story models.TourStory `json:"story"`
}

type storiesResponse struct {
	Stories []models.TourStory `json:"stories"`
}

// GetStory fetches a single story by its full slug, e.g. "tours/lisbon".
func (c *StoryblokClient) GetStory(ctx context.Context, fullSlug, version string) (*models.TourStory, error) {
	var resp storyResponse
	if _, err := c.get(ctx, "/cdn/stories/"+strings.Trim(fullSlug, "/"), version, url.Values{}, &resp); err != nil {
		return nil, err
	}
	return &resp.Story, nil
}

// ListStories returns every story whose full slug starts with prefix,
// following pagination until the reported total is reached.
func (c *StoryblokClient) ListStories(ctx context.Context, prefix, version string) ([]models.TourStory, error) {
	var all []models.TourStory
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("starts_with", prefix)
		q.Set("per_page", strconv.Itoa(storiesPerPage))
		q.Set("page", strconv.Itoa(page))

		var resp storiesResponse
		header, err := c.get(ctx, "/cdn/stories", version, q, &resp)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Stories...)

		total, err := strconv.Atoi(header.Get("Total"))
		if err != nil || len(resp.Stories) < storiesPerPage || len(all) >= total {
			return all, nil
		}
	}
}

func (c *StoryblokClient) get(ctx context.Context, path, version string, q url.Values, out interface{}) (http.Header, error) {
	if version == "" {
		version = VersionPublished
	}
	token := c.Token
	if version == VersionDraft && c.PreviewToken != "" {
		token = c.PreviewToken
	}
	q.Set("token", token)
	q.Set("version", version)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("storyblok request %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", path, ErrStoryNotFound)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return nil, fmt.Errorf("storyblok %s: status %d: %s", path, res.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return res.Header, nil
}
