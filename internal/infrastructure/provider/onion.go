package provider

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/ports"
)

const (
	onionMaxResults  = 5
	onionSourceLabel = "Tor Network (Onion Site)"
	onionSuffix      = ".onion"
)

// Onion scrapes a clearnet search front-end (Ahmia) of the Tor index.
type Onion struct {
	client   *http.Client
	endpoint string
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*Onion)(nil)

// NewOnion wires an HTTP client and the search page URL.
func NewOnion(client *http.Client, endpoint string, logger *slog.Logger) *Onion {
	return &Onion{client: defaultClient(client), endpoint: endpoint, logger: orDiscard(logger)}
}

func (o *Onion) Name() string { return "onion" }

// Search returns at most five results whose target is an onion address.
func (o *Onion) Search(ctx context.Context, topic string) ([]domain.ArticleCandidate, error) {
	endpoint, err := withQuery(o.endpoint, url.Values{"q": {topic}})
	if err != nil {
		return nil, domain.NewError(domain.ErrConfiguration, "onion endpoint", err)
	}

	resp, err := get(ctx, o.client, o.Name(), endpoint, map[string]string{"User-Agent": browserUserAgent})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		o.logger.Warn("onion search returned non-success status", "status", resp.StatusCode)
		return nil, nil
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, domain.NewError(domain.ErrSourceUnavailable, "onion: parse document", err)
	}

	return extractOnionResults(doc), nil
}

func extractOnionResults(doc *goquery.Document) []domain.ArticleCandidate {
	var results []domain.ArticleCandidate

	doc.Find("li.result").EachWithBreak(func(_ int, item *goquery.Selection) bool {
		link := item.Find("h4 a").First()
		href, ok := link.Attr("href")
		if !ok {
			return true
		}

		target := onionTarget(href)
		if !strings.Contains(target, onionSuffix) {
			return true
		}

		results = append(results, domain.ArticleCandidate{
			Title:   "[Tor] " + plainText(link.Text()),
			URL:     target,
			Source:  onionSourceLabel,
			Snippet: plainText(item.Find("p").First().Text()),
			Kind:    domain.KindOnion,
		})
		return len(results) < onionMaxResults
	})

	return results
}

// onionTarget unwraps the aggregator's redirect link to the real destination.
func onionTarget(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("redirect_url"); target != "" {
		return target
	}
	return href
}
