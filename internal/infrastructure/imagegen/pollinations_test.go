package imagegen

import (
	"context"
	"math/rand/v2"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DeepDiveDigest/internal/config"
)

func testConfig() config.ImageConfig {
	return config.ImageConfig{Endpoint: "https://image.pollinations.ai/", Width: 1024, Height: 600}
}

func TestIllustrateBuildsLocator(t *testing.T) {
	t.Parallel()

	p := NewPollinations(testConfig())
	locator, err := p.Illustrate(context.Background(), "  a marble bust of Seneca, golden hour  ")
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(locator, "https://image.pollinations.ai/prompt/a%20marble%20bust%20of%20Seneca%2C%20golden%20hour?"), locator)

	parsed, err := url.Parse(locator)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "1024", q.Get("width"))
	assert.Equal(t, "600", q.Get("height"))
	assert.Equal(t, "true", q.Get("nologo"))

	seed, err := strconv.Atoi(q.Get("seed"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, seed, 0)
	assert.Less(t, seed, maxSeed)
}

func TestIllustrateDeterministicWithFixedSource(t *testing.T) {
	t.Parallel()

	a := NewPollinationsWithSource(testConfig(), rand.NewPCG(1, 2))
	b := NewPollinationsWithSource(testConfig(), rand.NewPCG(1, 2))

	la, err := a.Illustrate(context.Background(), "stoa")
	require.NoError(t, err)
	lb, err := b.Illustrate(context.Background(), "stoa")
	require.NoError(t, err)
	assert.Equal(t, la, lb)
}

func TestIllustrateEmptyPrompt(t *testing.T) {
	t.Parallel()

	p := NewPollinations(testConfig())
	_, err := p.Illustrate(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}
