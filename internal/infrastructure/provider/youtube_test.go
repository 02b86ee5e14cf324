package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DeepDiveDigest/internal/domain"
)

func TestYouTubeSearch(t *testing.T) {
	t.Parallel()

	var items []string
	for i := 0; i < 20; i++ {
		items = append(items, fmt.Sprintf(`{"id":{"videoId":"vid%d"},"snippet":{"title":"Stoicism &amp; you %d","channelTitle":"Philosophy Hub","publishedAt":"2024-03-01T10:00:00Z","description":"<b>Marcus</b>   Aurelius"}}`, i, i))
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "stoicism", q.Get("q"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "15", q.Get("maxResults"))
		assert.Equal(t, "en", q.Get("relevanceLanguage"))
		assert.Equal(t, "moderate", q.Get("safeSearch"))
		assert.Equal(t, "secret", q.Get("key"))
		_, _ = w.Write([]byte(`{"items":[` + strings.Join(items, ",") + `]}`))
	}))
	defer server.Close()

	yt := NewYouTube(server.Client(), server.URL+"/youtube/v3/search", "secret")
	videos, err := yt.Search(context.Background(), "stoicism")
	require.NoError(t, err)
	require.Len(t, videos, youtubeMaxResults)

	first := videos[0]
	assert.Equal(t, "vid0", first.VideoID)
	assert.Equal(t, "Stoicism & you 0", first.Title)
	assert.Equal(t, "Philosophy Hub", first.ChannelTitle)
	assert.Equal(t, "Marcus Aurelius", first.Description)
	assert.Equal(t, 2024, first.PublishedAt.Year())
}

func TestYouTubeSearchMissingKey(t *testing.T) {
	t.Parallel()

	yt := NewYouTube(nil, "http://127.0.0.1:1", "")
	_, err := yt.Search(context.Background(), "stoicism")
	require.Error(t, err)
	assert.Equal(t, domain.ErrConfiguration, domain.KindOf(err))
}

func TestYouTubeSearchStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	yt := NewYouTube(server.Client(), server.URL, "secret")
	_, err := yt.Search(context.Background(), "stoicism")
	require.Error(t, err)
	assert.Equal(t, domain.ErrSourceUnavailable, domain.KindOf(err))
	assert.Contains(t, err.Error(), "403 - quota exceeded")
}

func TestYouTubeSearchTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	endpoint := server.URL
	server.Close()

	yt := NewYouTube(nil, endpoint, "secret")
	_, err := yt.Search(context.Background(), "stoicism")
	require.Error(t, err)
	assert.Equal(t, domain.ErrSourceUnavailable, domain.KindOf(err))
}
