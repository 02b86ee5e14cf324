// Package httpapi exposes the digest pipeline over HTTP.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"DeepDiveDigest/internal/domain"
)

// Runner is the pipeline entry point the handlers call.
type Runner interface {
	Run(ctx context.Context, topic, lang string) domain.DigestResult
}

// DigestRequest is the body of POST /api/digest.
type DigestRequest struct {
	Topic string `json:"topic"`
	Lang  string `json:"lang"`
}

// Handler serves digest and health endpoints.
type Handler struct {
	runner Runner
	logger *slog.Logger
}

// NewHandler creates the digest handler.
func NewHandler(runner Runner, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{runner: runner, logger: logger}
}

// Digest runs one pipeline request and writes the DigestResult.
func (h *Handler) Digest(c echo.Context) error {
	var req DigestRequest
	if err := c.Bind(&req); err != nil {
		result := domain.Failed(domain.NewError(domain.ErrInvalidRequest, "request body must be JSON", err))
		return c.JSON(http.StatusBadRequest, result)
	}

	result := h.runner.Run(c.Request().Context(), req.Topic, req.Lang)
	if result.Success {
		return c.JSON(http.StatusOK, result)
	}

	h.logger.Info("digest request failed", "kind", result.Error.Kind, "topic", req.Topic)
	return c.JSON(StatusFor(result.Error.Kind), result)
}

// Health answers liveness probes.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// StatusFor maps an error kind to its HTTP status.
func StatusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrInvalidRequest:
		return http.StatusBadRequest
	case domain.ErrNoRelevantCandidates:
		return http.StatusUnprocessableEntity
	case domain.ErrSelectionMalformed, domain.ErrSelectionHallucinated, domain.ErrSourceUnavailable:
		return http.StatusBadGateway
	case domain.ErrConfiguration:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
