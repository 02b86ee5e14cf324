// Package imagegen builds image locators for digest sections.
package imagegen

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"DeepDiveDigest/internal/config"
	"DeepDiveDigest/internal/ports"
)

const maxSeed = 1_000_000

// ErrEmptyPrompt is returned when there is nothing to illustrate.
var ErrEmptyPrompt = errors.New("image prompt is empty")

// Pollinations renders a URL-addressed image locator; the image is produced by the
// remote service when the locator is first fetched.
type Pollinations struct {
	endpoint string
	width    int
	height   int

	mu  sync.Mutex
	rng *rand.Rand
}

var _ ports.Illustrator = (*Pollinations)(nil)

// NewPollinations builds an illustrator from configuration with a randomly seeded source.
func NewPollinations(cfg config.ImageConfig) *Pollinations {
	return NewPollinationsWithSource(cfg, rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewPollinationsWithSource fixes the seed source, for deterministic locators in tests.
func NewPollinationsWithSource(cfg config.ImageConfig, src rand.Source) *Pollinations {
	return &Pollinations{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		width:    cfg.Width,
		height:   cfg.Height,
		rng:      rand.New(src),
	}
}

// Illustrate returns <endpoint>/prompt/<escaped>?width=..&height=..&nologo=true&seed=..
func (p *Pollinations) Illustrate(_ context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	if p.endpoint == "" {
		return "", errors.New("image endpoint is not configured")
	}

	query := url.Values{}
	query.Set("width", strconv.Itoa(p.width))
	query.Set("height", strconv.Itoa(p.height))
	query.Set("nologo", "true")
	query.Set("seed", strconv.Itoa(p.seed()))

	return p.endpoint + "/prompt/" + url.PathEscape(prompt) + "?" + query.Encode(), nil
}

func (p *Pollinations) seed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng.IntN(maxSeed)
}
