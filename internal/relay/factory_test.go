package relay_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/charsheet/internal/config"
	"github.com/edgard/charsheet/internal/relay"
)

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	client, err := relay.NewClient(ctx, config.RelayConfig{Provider: config.ProviderOpenAI}, discardLogger())
	require.NoError(t, err)
	assert.Nil(t, client)

	client, err = relay.NewClient(ctx, config.RelayConfig{Provider: config.ProviderOpenAI, APIKey: "key"}, discardLogger())
	require.NoError(t, err)
	assert.NotNil(t, client)

	_, err = relay.NewClient(ctx, config.RelayConfig{Provider: "llama", APIKey: "key"}, discardLogger())
	assert.ErrorContains(t, err, "unknown relay provider")
}
