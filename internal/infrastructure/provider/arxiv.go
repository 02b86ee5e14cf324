package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/ports"
)

const (
	arxivMaxResults    = 5
	arxivAbstractRunes = 200
	arxivSourceLabel   = "ArXiv.org (Scientific Paper)"
)

// Arxiv queries the arXiv export API and reads its Atom feed.
type Arxiv struct {
	client   *http.Client
	endpoint string
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*Arxiv)(nil)

// NewArxiv wires an HTTP client; a nil client gets a 20s timeout.
func NewArxiv(client *http.Client, endpoint string, logger *slog.Logger) *Arxiv {
	return &Arxiv{client: defaultClient(client), endpoint: endpoint, logger: orDiscard(logger)}
}

func (a *Arxiv) Name() string { return "arxiv" }

// Search returns up to five papers matching the topic in any field.
func (a *Arxiv) Search(ctx context.Context, topic string) ([]domain.ArticleCandidate, error) {
	queryURL, err := buildQueryURL(a.endpoint, topic, arxivMaxResults)
	if err != nil {
		return nil, domain.NewError(domain.ErrConfiguration, "arxiv endpoint", err)
	}

	feed, err := a.fetchFeed(ctx, queryURL)
	if err != nil {
		return nil, err
	}
	if feed == nil {
		return nil, nil
	}

	papers := make([]domain.ArticleCandidate, 0, arxivMaxResults)
	for _, item := range feed.Items {
		if len(papers) >= arxivMaxResults {
			break
		}
		if paper, ok := parseEntry(item); ok {
			papers = append(papers, paper)
		}
	}
	return papers, nil
}

// fetchFeed returns a nil feed for a non-success status.
func (a *Arxiv) fetchFeed(ctx context.Context, queryURL string) (*gofeed.Feed, error) {
	resp, err := get(ctx, a.client, a.Name(), queryURL, map[string]string{"User-Agent": appUserAgent})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		a.logger.Warn("arxiv search returned non-success status", "status", resp.Status)
		return nil, nil
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, domain.NewError(domain.ErrSourceUnavailable, "arxiv: parse feed", err)
	}
	return feed, nil
}

func parseEntry(item *gofeed.Item) (domain.ArticleCandidate, bool) {
	if item == nil {
		return domain.ArticleCandidate{}, false
	}

	title := plainText(item.Title)
	id := strings.TrimSpace(item.GUID)
	if id == "" {
		id = strings.TrimSpace(item.Link)
	}
	if title == "" || id == "" {
		return domain.ArticleCandidate{}, false
	}

	snippet := "No summary available."
	if summary := plainText(item.Description); summary != "" {
		snippet = truncateRunes(summary, arxivAbstractRunes) + "..."
	}

	return domain.ArticleCandidate{
		Title:   "[Paper] " + title,
		URL:     id,
		Source:  arxivSourceLabel,
		Snippet: snippet,
		Kind:    domain.KindPaper,
	}, true
}

func buildQueryURL(base, topic string, maxResults int) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid arxiv url %s: %w", base, err)
	}

	query := parsed.Query()
	query.Set("search_query", "all:"+topic)
	query.Set("start", "0")
	query.Set("max_results", strconv.Itoa(maxResults))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
