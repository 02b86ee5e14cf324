package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"DeepDiveDigest/internal/config"
	"DeepDiveDigest/internal/domain"
	"DeepDiveDigest/internal/logging"
)

func TestDigestWithoutOracleCredential(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte("oracle:\n  provider: gemini\n"))
	require.NoError(t, err)

	application, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	result := application.Digest(context.Background(), "Stoicism", "en")
	require.False(t, result.Success)
	assert.Equal(t, domain.ErrConfiguration, result.Error.Kind)
}

func TestNewRejectsUnknownOracle(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Oracle: config.OracleConfig{Provider: "mystery", APIKey: "k"}}
	_, err := New(context.Background(), cfg, logging.Discard())
	require.Error(t, err)
	assert.Equal(t, domain.ErrConfiguration, domain.KindOf(err))
}

func TestBuildSourcesFillsEverySlot(t *testing.T) {
	t.Parallel()

	sources := buildSources(config.ProviderConfig{}, logging.Discard())
	assert.NotNil(t, sources.Videos)
	assert.NotNil(t, sources.Web)
	assert.NotNil(t, sources.Onion)
	assert.NotNil(t, sources.News)
	assert.NotNil(t, sources.Papers)
	assert.NotNil(t, sources.Repos)
	assert.Equal(t, "news", sources.News.Name())
}
