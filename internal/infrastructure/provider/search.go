package provider

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/ports"
)

type searchMode int

const (
	modeWeb searchMode = iota
	modeNews
)

// CustomSearch queries Google Programmable Search. The web variant needs both
// credentials and fails loudly without them; the news variant degrades to no results.
type CustomSearch struct {
	client   *http.Client
	endpoint string
	apiKey   string
	engineID string
	mode     searchMode
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*CustomSearch)(nil)

// NewWebSearch builds the general web adapter.
func NewWebSearch(client *http.Client, endpoint, apiKey, engineID string) *CustomSearch {
	return &CustomSearch{
		client:   defaultClient(client),
		endpoint: endpoint,
		apiKey:   apiKey,
		engineID: engineID,
		mode:     modeWeb,
		logger:   orDiscard(nil),
	}
}

// NewNewsSearch builds the news adapter on the same endpoint.
func NewNewsSearch(client *http.Client, endpoint, apiKey, engineID string, logger *slog.Logger) *CustomSearch {
	return &CustomSearch{
		client:   defaultClient(client),
		endpoint: endpoint,
		apiKey:   apiKey,
		engineID: engineID,
		mode:     modeNews,
		logger:   orDiscard(logger),
	}
}

func (s *CustomSearch) Name() string {
	if s.mode == modeNews {
		return "news"
	}
	return "web"
}

type customSearchResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		DisplayLink string `json:"displayLink"`
		Snippet     string `json:"snippet"`
	} `json:"items"`
}

// Search runs one keyword query.
func (s *CustomSearch) Search(ctx context.Context, topic string) ([]domain.ArticleCandidate, error) {
	if s.apiKey == "" || s.engineID == "" {
		if s.mode == modeNews {
			s.logger.Warn("news search skipped: search credentials not configured")
			return nil, nil
		}
		return nil, domain.Errorf(domain.ErrConfiguration, "GOOGLE_PSE_API_KEY or GOOGLE_PSE_CX is not configured")
	}

	endpoint, err := withQuery(s.endpoint, s.params(topic))
	if err != nil {
		return nil, domain.NewError(domain.ErrConfiguration, s.Name()+" endpoint", err)
	}

	resp, err := get(ctx, s.client, s.Name(), endpoint, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if s.mode == modeNews {
			s.logger.Warn("news search returned non-success status", "status", resp.StatusCode)
			return nil, nil
		}
		return nil, statusError("Google PSE", resp)
	}

	var payload customSearchResponse
	if err := decodeJSON(s.Name(), resp.Body, &payload); err != nil {
		return nil, err
	}

	limit, prefix, kind := 10, "", domain.KindWeb
	if s.mode == modeNews {
		limit, prefix, kind = 5, "[News] ", domain.KindNews
	}

	articles := make([]domain.ArticleCandidate, 0, len(payload.Items))
	for _, item := range payload.Items {
		if len(articles) >= limit {
			break
		}
		display := item.DisplayLink
		if display == "" {
			display = item.Link
		}
		articles = append(articles, domain.ArticleCandidate{
			Title:   prefix + plainText(item.Title),
			URL:     item.Link,
			Source:  hostLabel(display),
			Snippet: plainText(item.Snippet),
			Kind:    kind,
		})
	}
	return articles, nil
}

func (s *CustomSearch) params(topic string) url.Values {
	if s.mode == modeNews {
		return url.Values{
			"key":  {s.apiKey},
			"cx":   {s.engineID},
			"q":    {topic + " news"},
			"sort": {"date:r:pastMonth"},
			"num":  {"5"},
		}
	}
	return url.Values{
		"key":  {s.apiKey},
		"cx":   {s.engineID},
		"q":    {topic},
		"num":  {"10"},
		"safe": {"active"},
	}
}
