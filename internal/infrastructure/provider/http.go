// Package provider holds the search adapters that normalize provider responses
// into video and article candidates.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/logging"
)

const (
	defaultTimeout   = 20 * time.Second
	appUserAgent     = "Deep-Dive-Digest-App"
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	spaceRun     = regexp.MustCompile(`\s+`)
)

func defaultClient(client *http.Client) *http.Client {
	if client == nil {
		return &http.Client{Timeout: defaultTimeout}
	}
	return client
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return logging.Discard()
	}
	return logger
}

// get performs a GET and returns the response; the caller closes the body.
func get(ctx context.Context, client *http.Client, provider, rawURL string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, domain.NewError(domain.ErrSourceUnavailable, provider+": build request", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.NewError(domain.ErrSourceUnavailable, provider+": request failed", err)
	}
	return resp, nil
}

func withQuery(base string, params url.Values) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %s: %w", base, err)
	}
	query := parsed.Query()
	for k, vs := range params {
		for _, v := range vs {
			query.Set(k, v)
		}
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// statusError reads the provider's error message (Google-style JSON) from a non-2xx response.
func statusError(provider string, resp *http.Response) error {
	payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	msg := "Unknown error"
	if err := json.Unmarshal(payload, &body); err == nil && body.Error.Message != "" {
		msg = body.Error.Message
	}
	return domain.Errorf(domain.ErrSourceUnavailable, "%s error: %d - %s", provider, resp.StatusCode, msg)
}

func decodeJSON(provider string, r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return domain.NewError(domain.ErrSourceUnavailable, provider+": decode response", err)
	}
	return nil
}

// plainText strips markup, decodes entities and collapses whitespace.
func plainText(s string) string {
	if s == "" {
		return ""
	}
	text := html.UnescapeString(strictPolicy.Sanitize(s))
	return strings.TrimSpace(spaceRun.ReplaceAllString(text, " "))
}

// hostLabel turns a display link or URL into a bare host without "www.".
func hostLabel(raw string) string {
	candidate := raw
	if !strings.HasPrefix(candidate, "http") {
		candidate = "https://" + candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Hostname() == "" {
		return raw
	}
	return strings.TrimPrefix(parsed.Hostname(), "www.")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
