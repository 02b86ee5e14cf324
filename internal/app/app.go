package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"DeepDiveDigest/internal/config"
	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/httpapi"
	"DeepDiveDigest/internal/infrastructure/imagegen"
	"DeepDiveDigest/internal/infrastructure/llm"
	"DeepDiveDigest/internal/infrastructure/provider"
	"DeepDiveDigest/internal/logging"
	"DeepDiveDigest/internal/selection"
	"DeepDiveDigest/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// Application wires configs to use cases and transports.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
}

// New builds the application from configuration. A missing oracle credential is not
// an error here; each run reports it as configuration-error.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	oracle, err := llm.New(ctx, cfg.Oracle)
	if err != nil {
		return nil, err
	}
	if oracle == nil {
		baseLogger.Warn("selection oracle credential missing; digests will fail", "provider", cfg.Oracle.Provider)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Sources:     buildSources(cfg.Providers, baseLogger),
		Selector:    selection.NewEngine(oracle, baseLogger.With("component", "selection")),
		Illustrator: imagegen.NewPollinations(cfg.Images),
		Logger:      baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline}, nil
}

func buildSources(p config.ProviderConfig, logger *slog.Logger) usecase.Sources {
	searchClient := httpClient(p.Search.Timeout)
	return usecase.Sources{
		Videos: provider.NewYouTube(httpClient(p.YouTube.Timeout), p.YouTube.Endpoint, p.YouTube.APIKey),
		Web:    provider.NewWebSearch(searchClient, p.Search.Endpoint, p.Search.APIKey, p.Search.EngineID),
		Onion:  provider.NewOnion(httpClient(p.Onion.Timeout), p.Onion.Endpoint, logger.With("component", "provider.onion")),
		News: provider.NewNewsSearch(searchClient, p.Search.Endpoint, p.Search.APIKey, p.Search.EngineID,
			logger.With("component", "provider.news")),
		Papers: provider.NewArxiv(httpClient(p.Arxiv.Timeout), p.Arxiv.Endpoint, logger.With("component", "provider.arxiv")),
		Repos: provider.NewGitHub(httpClient(p.GitHub.Timeout), p.GitHub.Endpoint, p.GitHub.Token,
			logger.With("component", "provider.github")),
	}
}

func httpClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// Digest runs the pipeline once.
func (a *Application) Digest(ctx context.Context, topic, lang string) domain.DigestResult {
	return a.pipeline.Run(ctx, topic, lang)
}

// Serve runs the HTTP API on addr (or the configured address) until ctx is done.
func (a *Application) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		addr = a.cfg.Server.Address
	}

	handler := httpapi.NewHandler(a.pipeline, a.logger.With("component", "httpapi"))
	e := httpapi.NewServer(handler, a.logger.With("component", "http"))

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting http server", "address", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
