package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DeepDiveDigest/internal/config"
	"DeepDiveDigest/internal/domain"
)

func TestNewWithoutKeyReturnsNil(t *testing.T) {
	t.Parallel()

	oracle, err := New(context.Background(), config.OracleConfig{Provider: config.OracleGemini})
	require.NoError(t, err)
	assert.Nil(t, oracle)
}

func TestNewUnknownProvider(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), config.OracleConfig{Provider: "claude", APIKey: "k"})
	require.Error(t, err)
	assert.Equal(t, domain.ErrConfiguration, domain.KindOf(err))
}

func TestOpenAIComplete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		body, _ := io.ReadAll(r.Body)
		var req struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		assert.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		assert.InDelta(t, 0.3, req.Temperature, 1e-9)
		if assert.Len(t, req.Messages, 2) {
			assert.Equal(t, "system", req.Messages[0].Role)
			assert.Equal(t, "only pick", req.Messages[0].Content)
			assert.Equal(t, "user", req.Messages[1].Role)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"chatcmpl-1","object":"chat.completion","created":1700000000,"model":"gpt-4o-mini",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  {\"topic\":\"x\"}  "}}]
		}`))
	}))
	defer server.Close()

	oracle, err := New(context.Background(), config.OracleConfig{
		Provider:    config.OracleOpenAI,
		Model:       "gpt-4o-mini",
		Endpoint:    server.URL,
		APIKey:      "sk-test",
		Temperature: 0.3,
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)

	text, err := oracle.Complete(context.Background(), "only pick", "the prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"topic":"x"}`, text)
}

func TestOpenAICompleteServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	oracle := NewOpenAI(config.OracleConfig{Model: "gpt-4o-mini", Endpoint: server.URL, APIKey: "sk"}, server.Client())
	_, err := oracle.Complete(context.Background(), "s", "p")
	require.Error(t, err)
	assert.Equal(t, domain.ErrSourceUnavailable, domain.KindOf(err))
}

func TestGeminiComplete(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.5-flash:generateContent"), r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "the prompt")
		assert.Contains(t, string(body), "only pick")
		assert.Contains(t, string(body), "application/json")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"{\"topic\":\"y\"}"}]},"finishReason":"STOP"}]}`))
	}))
	defer server.Close()

	oracle, err := NewGemini(context.Background(), config.OracleConfig{
		Model:       "gemini-2.5-flash",
		Endpoint:    server.URL,
		APIKey:      "gm-test",
		Temperature: 0.3,
	}, server.Client())
	require.NoError(t, err)

	text, err := oracle.Complete(context.Background(), "only pick", "the prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"topic":"y"}`, text)
}

func TestGeminiCompleteEmptyReply(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	oracle, err := NewGemini(context.Background(), config.OracleConfig{
		Model: "gemini-2.5-flash", Endpoint: server.URL, APIKey: "gm-test",
	}, server.Client())
	require.NoError(t, err)

	_, err = oracle.Complete(context.Background(), "s", "p")
	require.Error(t, err)
	assert.Equal(t, domain.ErrSelectionMalformed, domain.KindOf(err))
}
