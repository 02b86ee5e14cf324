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

func searchItems(n int) string {
	var items []string
	for i := 0; i < n; i++ {
		items = append(items, fmt.Sprintf(`{"title":"Result %d","link":"https://www.example.com/%d","displayLink":"www.example.com","snippet":"snippet %d"}`, i, i, i))
	}
	return `{"items":[` + strings.Join(items, ",") + `]}`
}

func TestWebSearch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "key", q.Get("key"))
		assert.Equal(t, "cx", q.Get("cx"))
		assert.Equal(t, "stoicism", q.Get("q"))
		assert.Equal(t, "10", q.Get("num"))
		assert.Equal(t, "active", q.Get("safe"))
		_, _ = w.Write([]byte(searchItems(12)))
	}))
	defer server.Close()

	web := NewWebSearch(server.Client(), server.URL, "key", "cx")
	assert.Equal(t, "web", web.Name())

	articles, err := web.Search(context.Background(), "stoicism")
	require.NoError(t, err)
	require.Len(t, articles, 10)

	assert.Equal(t, "Result 0", articles[0].Title)
	assert.Equal(t, "https://www.example.com/0", articles[0].URL)
	assert.Equal(t, "example.com", articles[0].Source)
	assert.Equal(t, domain.KindWeb, articles[0].Kind)
}

func TestWebSearchMissingCredentials(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ key, cx string }{{"", "cx"}, {"key", ""}} {
		web := NewWebSearch(nil, "http://127.0.0.1:1", tc.key, tc.cx)
		_, err := web.Search(context.Background(), "stoicism")
		require.Error(t, err)
		assert.Equal(t, domain.ErrConfiguration, domain.KindOf(err))
	}
}

func TestWebSearchStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	web := NewWebSearch(server.Client(), server.URL, "key", "cx")
	_, err := web.Search(context.Background(), "stoicism")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429 - Unknown error")
}

func TestNewsSearch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "stoicism news", q.Get("q"))
		assert.Equal(t, "date:r:pastMonth", q.Get("sort"))
		assert.Equal(t, "5", q.Get("num"))
		_, _ = w.Write([]byte(searchItems(8)))
	}))
	defer server.Close()

	news := NewNewsSearch(server.Client(), server.URL, "key", "cx", nil)
	assert.Equal(t, "news", news.Name())

	articles, err := news.Search(context.Background(), "stoicism")
	require.NoError(t, err)
	require.Len(t, articles, 5)
	assert.Equal(t, "[News] Result 0", articles[0].Title)
	assert.Equal(t, domain.KindNews, articles[0].Kind)
}

func TestNewsSearchDegradesQuietly(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	news := NewNewsSearch(server.Client(), server.URL, "key", "cx", nil)
	articles, err := news.Search(context.Background(), "stoicism")
	require.NoError(t, err)
	assert.Empty(t, articles)

	unconfigured := NewNewsSearch(server.Client(), server.URL, "", "", nil)
	articles, err = unconfigured.Search(context.Background(), "stoicism")
	require.NoError(t, err)
	assert.Empty(t, articles)
}

func TestHostLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "example.com", hostLabel("www.example.com"))
	assert.Equal(t, "blog.example.com", hostLabel("https://blog.example.com/post"))
}
