package llm

import (
	"context"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"DeepDiveDigest/internal/config"
	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/ports"
)

// Gemini asks a Gemini model for a JSON-only reply.
type Gemini struct {
	client      *genai.Client
	model       string
	temperature float32
}

var _ ports.Oracle = (*Gemini)(nil)

// NewGemini constructs the client eagerly; the SDK does no network I/O here.
func NewGemini(ctx context.Context, cfg config.OracleConfig, httpClient *http.Client) (*Gemini, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if cfg.Endpoint != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, domain.NewError(domain.ErrConfiguration, "create gemini client", err)
	}

	return &Gemini{client: client, model: cfg.Model, temperature: float32(cfg.Temperature)}, nil
}

// Complete sends system and prompt in one request and returns the raw text.
func (g *Gemini) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(g.temperature),
		ResponseMIMEType:  "application/json",
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	})
	if err != nil {
		return "", callFailed("gemini", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", emptyReply("gemini")
	}
	return text, nil
}
