package provider

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/ports"
)

const youtubeMaxResults = 15

// YouTube searches the YouTube Data API v3. The API key is mandatory.
type YouTube struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

var _ ports.VideoSource = (*YouTube)(nil)

// NewYouTube wires the search endpoint and key.
func NewYouTube(client *http.Client, endpoint, apiKey string) *YouTube {
	return &YouTube{client: defaultClient(client), endpoint: endpoint, apiKey: apiKey}
}

func (y *YouTube) Name() string { return "youtube" }

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Description  string `json:"description"`
		} `json:"snippet"`
	} `json:"items"`
}

// Search requests up to 15 English, moderately safe video results.
func (y *YouTube) Search(ctx context.Context, topic string) ([]domain.VideoCandidate, error) {
	if y.apiKey == "" {
		return nil, domain.Errorf(domain.ErrConfiguration, "YOUTUBE_API_KEY is not configured")
	}

	endpoint, err := withQuery(y.endpoint, url.Values{
		"part":              {"snippet"},
		"q":                 {topic},
		"type":              {"video"},
		"maxResults":        {"15"},
		"relevanceLanguage": {"en"},
		"safeSearch":        {"moderate"},
		"key":               {y.apiKey},
	})
	if err != nil {
		return nil, domain.NewError(domain.ErrConfiguration, "youtube endpoint", err)
	}

	resp, err := get(ctx, y.client, y.Name(), endpoint, map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("YouTube API", resp)
	}

	var payload youtubeSearchResponse
	if err := decodeJSON(y.Name(), resp.Body, &payload); err != nil {
		return nil, err
	}

	videos := make([]domain.VideoCandidate, 0, len(payload.Items))
	for _, item := range payload.Items {
		if len(videos) >= youtubeMaxResults {
			break
		}
		published, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		videos = append(videos, domain.VideoCandidate{
			VideoID:      item.ID.VideoID,
			Title:        plainText(item.Snippet.Title),
			ChannelTitle: plainText(item.Snippet.ChannelTitle),
			PublishedAt:  published,
			Description:  plainText(item.Snippet.Description),
		})
	}
	return videos, nil
}
