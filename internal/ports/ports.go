package ports

import (
	"context"

	"DeepDiveDigest/internal/domain"
)

// VideoSource searches a video provider for a topic.
type VideoSource interface {
	Name() string
	Search(ctx context.Context, topic string) ([]domain.VideoCandidate, error)
}

// ArticleSource searches a web, news, onion, paper or repository provider for a topic.
type ArticleSource interface {
	Name() string
	Search(ctx context.Context, topic string) ([]domain.ArticleCandidate, error)
}

// Oracle sends one closed-world instruction to a generative model and returns its raw text.
type Oracle interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Illustrator turns a section's image prompt (or title) into an image locator.
type Illustrator interface {
	Illustrate(ctx context.Context, prompt string) (string, error)
}
