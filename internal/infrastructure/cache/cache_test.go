package cache

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/otica-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_DisabledWithoutAddress(t *testing.T) {
	c := New(context.Background(), config.RedisConfig{}, zap.NewNop())
	assert.IsType(t, Noop{}, c)
}

func TestNew_FallsBackWhenUnreachable(t *testing.T) {
	c := New(context.Background(), config.RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	assert.IsType(t, Noop{}, c)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	require.NoError(t, c.Set(context.Background(), "k", 1, time.Minute))

	var got int
	found, err := c.Get(context.Background(), "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.DeletePrefix(context.Background(), "k"))
	assert.NoError(t, c.Close())
}
