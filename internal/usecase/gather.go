package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/metrics"
	"DeepDiveDigest/internal/ports"
)

// Sources is the fixed set of providers a run fans out to. A nil slot contributes nothing.
type Sources struct {
	Videos ports.VideoSource
	Web    ports.ArticleSource
	Onion  ports.ArticleSource
	News   ports.ArticleSource
	Papers ports.ArticleSource
	Repos  ports.ArticleSource
}

// articleSources lists the article providers in concatenation order.
func (s Sources) articleSources() []ports.ArticleSource {
	return []ports.ArticleSource{s.Web, s.Onion, s.News, s.Papers, s.Repos}
}

// Pools are the raw, unfiltered results of one fan-out.
type Pools struct {
	Videos   []domain.VideoCandidate
	Articles []domain.ArticleCandidate
}

// Gather queries every source concurrently and waits for all of them. A failing or
// panicking source is logged and contributes an empty slice; nothing is cancelled.
func Gather(ctx context.Context, sources Sources, topic string, logger *slog.Logger) Pools {
	articleSources := sources.articleSources()
	articleOutcomes := make([][]domain.ArticleCandidate, len(articleSources))
	var videos []domain.VideoCandidate

	var g errgroup.Group
	if sources.Videos != nil {
		g.Go(func() error {
			videos = fetch(ctx, logger, sources.Videos.Name(), sources.Videos.Search, topic)
			return nil
		})
	}
	for i, src := range articleSources {
		if src == nil {
			continue
		}
		g.Go(func() error {
			articleOutcomes[i] = fetch(ctx, logger, src.Name(), src.Search, topic)
			return nil
		})
	}
	_ = g.Wait()

	pools := Pools{Videos: videos}
	for _, outcome := range articleOutcomes {
		pools.Articles = append(pools.Articles, outcome...)
	}

	logger.Info("providers joined", "videos", len(pools.Videos), "articles", len(pools.Articles))
	return pools
}

func fetch[T any](ctx context.Context, logger *slog.Logger, provider string, search func(context.Context, string) ([]T, error), topic string) (items []T) {
	start := time.Now()
	outcome := metrics.OutcomeOK

	defer func() {
		if r := recover(); r != nil {
			items = nil
			outcome = metrics.OutcomePanic
			logger.Error("provider panicked", "provider", provider, "error", fmt.Sprint(r))
		}
		metrics.RecordProvider(provider, outcome, time.Since(start))
	}()

	found, err := search(ctx, topic)
	if err != nil {
		if domain.KindOf(err) == domain.ErrConfiguration {
			outcome = metrics.OutcomeConfigError
			logger.Error("provider misconfigured", "provider", provider, "error", err)
		} else {
			outcome = metrics.OutcomeError
			logger.Warn("provider unavailable", "provider", provider, "error", err)
		}
		return nil
	}

	logger.Info("provider returned", "provider", provider, "count", len(found))
	return found
}
