// Package llm holds the selection oracle backends.
package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"DeepDiveDigest/internal/config"
	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/ports"
)

// New builds the oracle selected in configuration. A missing credential yields a nil
// oracle and no error so the pipeline can fail the request with configuration-error.
func New(ctx context.Context, cfg config.OracleConfig) (ports.Oracle, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, nil
	}

	client := &http.Client{Timeout: orDefault(cfg.Timeout)}
	switch cfg.Provider {
	case config.OracleOpenAI:
		return NewOpenAI(cfg, client), nil
	case config.OracleGemini, "":
		return NewGemini(ctx, cfg, client)
	default:
		return nil, domain.Errorf(domain.ErrConfiguration, "unknown oracle provider %q", cfg.Provider)
	}
}

func orDefault(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return 60 * time.Second
	}
	return timeout
}

func emptyReply(backend string) error {
	return domain.Errorf(domain.ErrSelectionMalformed, "%s returned an empty response", backend)
}

func callFailed(backend string, err error) error {
	return domain.NewError(domain.ErrSourceUnavailable, fmt.Sprintf("%s request failed", backend), err)
}
