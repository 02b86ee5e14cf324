package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/ports"
)

// Illustrate fills ImageURL for every section in parallel. Each task writes only its
// own section; a failure leaves that section's ImageURL empty.
func Illustrate(ctx context.Context, illustrator ports.Illustrator, sections []domain.Section, logger *slog.Logger) {
	if illustrator == nil {
		return
	}

	var g errgroup.Group
	for i := range sections {
		g.Go(func() error {
			sections[i].ImageURL = illustrateOne(ctx, illustrator, sections[i], logger.With("section", i+1))
			return nil
		})
	}
	_ = g.Wait()
}

func illustrateOne(ctx context.Context, illustrator ports.Illustrator, section domain.Section, logger *slog.Logger) (locator string) {
	defer func() {
		if r := recover(); r != nil {
			locator = ""
			logger.Error("illustrator panicked", "error", fmt.Sprint(r))
		}
	}()

	prompt := section.ImagePrompt
	if prompt == "" {
		prompt = section.Title
	}

	locator, err := illustrator.Illustrate(ctx, prompt)
	if err != nil {
		logger.Warn("image generation failed", "error", err)
		return ""
	}
	return locator
}
