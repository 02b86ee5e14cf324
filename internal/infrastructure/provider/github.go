package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/ports"
)

const githubMaxResults = 5

// GitHub searches public repositories sorted by stars. The token is optional and
// only raises the rate limit.
type GitHub struct {
	client   *http.Client
	endpoint string
	token    string
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*GitHub)(nil)

// NewGitHub wires the repository search endpoint.
func NewGitHub(client *http.Client, endpoint, token string, logger *slog.Logger) *GitHub {
	return &GitHub{client: defaultClient(client), endpoint: endpoint, token: token, logger: orDiscard(logger)}
}

func (g *GitHub) Name() string { return "github" }

type githubSearchResponse struct {
	Items []struct {
		FullName        string `json:"full_name"`
		HTMLURL         string `json:"html_url"`
		StargazersCount int    `json:"stargazers_count"`
		Description     string `json:"description"`
	} `json:"items"`
}

// Search returns the five most-starred repositories for the topic.
func (g *GitHub) Search(ctx context.Context, topic string) ([]domain.ArticleCandidate, error) {
	endpoint, err := withQuery(g.endpoint, url.Values{
		"q":        {topic},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {"5"},
	})
	if err != nil {
		return nil, domain.NewError(domain.ErrConfiguration, "github endpoint", err)
	}

	headers := map[string]string{
		"Accept":     "application/vnd.github.v3+json",
		"User-Agent": appUserAgent,
	}
	if g.token != "" {
		headers["Authorization"] = "Bearer " + g.token
	}

	resp, err := get(ctx, g.client, g.Name(), endpoint, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		g.logger.Warn("github search failed or rate limited", "status", resp.StatusCode)
		return nil, nil
	}

	var payload githubSearchResponse
	if err := decodeJSON(g.Name(), resp.Body, &payload); err != nil {
		return nil, err
	}

	repos := make([]domain.ArticleCandidate, 0, githubMaxResults)
	for _, item := range payload.Items {
		if len(repos) >= githubMaxResults {
			break
		}
		snippet := plainText(item.Description)
		if snippet == "" {
			snippet = "No description available."
		}
		repos = append(repos, domain.ArticleCandidate{
			Title:   "[GitHub] " + item.FullName,
			URL:     item.HTMLURL,
			Source:  fmt.Sprintf("GitHub (%d stars)", item.StargazersCount),
			Snippet: snippet,
			Kind:    domain.KindRepository,
		})
	}
	return repos, nil
}
