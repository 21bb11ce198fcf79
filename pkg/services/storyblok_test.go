package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoryblokClient_GetStory(t *testing.T) {
	cdn := newFakeCDN(t, tourStory("lisbon", "Lisbon Old Town"))
	useCDN(t, cdn)

	story, err := Client.GetStory(context.Background(), "tours/lisbon", VersionPublished)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon Old Town", story.Content.Name)
	require.NotNil(t, story.Content.Body.Root)
	assert.Equal(t, "doc", story.Content.Body.Root.Type)

	_, err = Client.GetStory(context.Background(), "tours/nowhere", VersionPublished)
	assert.ErrorIs(t, err, ErrStoryNotFound)
}

func TestStoryblokClient_DraftUsesPreviewToken(t *testing.T) {
	cdn := newFakeCDN(t, tourStory("porto", "Porto"))
	useCDN(t, cdn)

	draft := tourStory("porto", "Porto (draft)")
	cdn.SetDraft(draft)

	story, err := Client.GetStory(context.Background(), "tours/porto", VersionDraft)
	require.NoError(t, err)
	assert.Equal(t, "Porto (draft)", story.Content.Name)

	Client.PreviewToken = "wrong"
	_, err = Client.GetStory(context.Background(), "tours/porto", VersionDraft)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
}

func TestStoryblokClient_ListStoriesPaginates(t *testing.T) {
	cdn := newFakeCDN(t)
	for i := 0; i < 230; i++ {
		s := tourStory(fmt.Sprintf("tour-%03d", i), fmt.Sprintf("Tour %d", i))
		cdn.published[s.FullSlug] = s
	}
	blog := tourStory("hello", "Not a tour")
	blog.FullSlug = "blog/hello"
	cdn.published[blog.FullSlug] = blog
	useCDN(t, cdn)

	got, err := Client.ListStories(context.Background(), "tours/", VersionPublished)
	require.NoError(t, err)
	assert.Len(t, got, 230)
	assert.Equal(t, "tour-000", got[0].Slug)
	assert.Equal(t, "tour-229", got[229].Slug)
	assert.Equal(t, 3, cdn.Hits())
}

func TestStoryblokClient_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := &StoryblokClient{BaseURL: srv.URL, Token: "t"}
	_, err := c.GetStory(context.Background(), "tours/x", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrStoryNotFound)
	assert.Contains(t, err.Error(), "status 503")
}

func TestStoryblokClient_RequestShape(t *testing.T) {
	var gotPath, gotVersion, gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotVersion = r.URL.Query().Get("version")
		gotToken = r.URL.Query().Get("token")
		_, _ = w.Write([]byte(`{"story": {"slug": "x", "content": {"body": ""}}}`))
	}))
	defer srv.Close()

	c := &StoryblokClient{BaseURL: srv.URL, Token: "pub", PreviewToken: "prev"}
	story, err := c.GetStory(context.Background(), "/tours/x/", "")
	require.NoError(t, err)

	assert.Equal(t, "/cdn/stories/tours/x", gotPath)
	assert.Equal(t, VersionPublished, gotVersion)
	assert.Equal(t, "pub", gotToken)
	assert.Nil(t, story.Content.Body.Root)
}
