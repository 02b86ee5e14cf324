package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DeepDiveDigest/internal/domain"
)

const ahmiaPage = `
<ol>
  <li class="result">
    <h4><a href="/search/redirect?search_term=privacy&redirect_url=http://abcdefgh.onion/">Privacy Wiki</a></h4>
    <p>A hidden wiki about privacy tools.</p>
  </li>
  <li class="result">
    <h4><a href="https://clearnet.example.com/">Clearnet Mirror</a></h4>
    <p>Not an onion address.</p>
  </li>
  <li class="result">
    <h4><a href="http://direct1234.onion/forum">Direct Forum</a></h4>
    <p>Linked without a redirect.</p>
  </li>
</ol>`

func TestExtractOnionResults(t *testing.T) {
	t.Parallel()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(ahmiaPage))
	require.NoError(t, err)

	results := extractOnionResults(doc)
	require.Len(t, results, 2)

	assert.Equal(t, "[Tor] Privacy Wiki", results[0].Title)
	assert.Equal(t, "http://abcdefgh.onion/", results[0].URL)
	assert.Equal(t, onionSourceLabel, results[0].Source)
	assert.Equal(t, "A hidden wiki about privacy tools.", results[0].Snippet)
	assert.Equal(t, domain.KindOnion, results[0].Kind)

	assert.Equal(t, "http://direct1234.onion/forum", results[1].URL)
}

func TestOnionSearchCapsResults(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString("<ol>")
	for i := 0; i < 9; i++ {
		fmt.Fprintf(&b, `<li class="result"><h4><a href="http://site%d.onion/">Site %d</a></h4><p>about %d</p></li>`, i, i, i)
	}
	b.WriteString("</ol>")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "privacy", r.URL.Query().Get("q"))
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		_, _ = w.Write([]byte(b.String()))
	}))
	defer server.Close()

	onion := NewOnion(server.Client(), server.URL+"/search/", nil)
	results, err := onion.Search(context.Background(), "privacy")
	require.NoError(t, err)
	assert.Len(t, results, onionMaxResults)
}

func TestOnionSearchNonOK(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	onion := NewOnion(server.Client(), server.URL, nil)
	results, err := onion.Search(context.Background(), "privacy")
	require.NoError(t, err)
	assert.Empty(t, results)
}
