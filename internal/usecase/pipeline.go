package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/filter"
	"DeepDiveDigest/internal/metrics"
	"DeepDiveDigest/internal/ports"
	"DeepDiveDigest/internal/selection"
)

// PipelineDeps wires all driven adapters into the digest pipeline.
type PipelineDeps struct {
	Sources     Sources
	Selector    *selection.Engine
	Illustrator ports.Illustrator
	Logger      *slog.Logger
}

// Pipeline implements the topic-to-digest workflow.
type Pipeline struct {
	sources     Sources
	selector    *selection.Engine
	illustrator ports.Illustrator
	logger      *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		sources:     deps.Sources,
		selector:    deps.Selector,
		illustrator: deps.Illustrator,
		logger:      logger,
	}
}

// Run executes one request and wraps the outcome as a DigestResult.
func (p *Pipeline) Run(ctx context.Context, topic, lang string) domain.DigestResult {
	digest, err := p.Execute(ctx, topic, lang)
	if err != nil {
		return domain.Failed(err)
	}
	return domain.Succeeded(digest)
}

// Execute gathers, filters, selects, validates and illustrates. It returns either a
// complete digest or a *domain.PipelineError, never both.
func (p *Pipeline) Execute(ctx context.Context, topic, lang string) (digest domain.Digest, err error) {
	logger := p.logger.With("run_id", uuid.NewString())

	defer func() {
		outcome := "success"
		if err != nil {
			err = domain.AsPipelineError(err)
			outcome = string(domain.KindOf(err))
			logger.Warn("digest failed", "error", err)
		}
		metrics.RecordRun(outcome)
	}()

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return domain.Digest{}, domain.Errorf(domain.ErrInvalidRequest, "topic must not be empty")
	}
	language, err := domain.ParseLanguage(lang)
	if err != nil {
		return domain.Digest{}, domain.NewError(domain.ErrInvalidRequest, "unsupported language", err)
	}
	logger = logger.With("topic", topic, "lang", string(language))

	if !p.selector.Ready() {
		return domain.Digest{}, domain.Errorf(domain.ErrConfiguration, "selection oracle credential is not configured")
	}

	pools := Gather(ctx, p.sources, topic, logger)
	metrics.RecordCandidates("videos", metrics.StageRaw, len(pools.Videos))
	metrics.RecordCandidates("articles", metrics.StageRaw, len(pools.Articles))

	set := filterPools(pools, topic, logger)
	metrics.RecordCandidates("videos", metrics.StageFiltered, len(set.Videos))
	metrics.RecordCandidates("articles", metrics.StageFiltered, len(set.Articles))

	if set.Empty() {
		return domain.Digest{}, domain.Errorf(domain.ErrNoRelevantCandidates,
			"no relevant videos or articles found for %q", topic)
	}

	digest, err = p.selector.Select(ctx, topic, language, set)
	if err != nil {
		return domain.Digest{}, err
	}

	Illustrate(ctx, p.illustrator, digest.Sections, logger)

	logger.Info("digest ready", "sections", len(digest.Sections))
	return digest, nil
}

func filterPools(pools Pools, topic string, logger *slog.Logger) domain.CandidateSet {
	videos, videoReport := filter.ApplyWithReport(pools.Videos, topic)
	articles, articleReport := filter.ApplyWithReport(pools.Articles, topic)

	logger.Info("candidates filtered",
		"videos", len(videos), "video_rejections", map[string]int(videoReport),
		"articles", len(articles), "article_rejections", map[string]int(articleReport),
	)
	return domain.CandidateSet{Videos: videos, Articles: articles}
}
