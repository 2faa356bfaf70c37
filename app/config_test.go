package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tencent-go/avrogen/env"
)

func TestConfig(t *testing.T) {
	t.Setenv("AVROGEN_MAX_DEPTH", "8")
	t.Setenv("AVROGEN_SUFFIX", "Event")
	cfg, err := env.NewReaderBuilder[Config]().Build().Parse()
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.MaxDepth)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.True(t, cfg.Policy().Accepts("OrderEvent"))
	assert.False(t, cfg.Policy().Accepts("OrderDto"))
	assert.Equal(t, 8, cfg.Converter().MaxDepth())
}
