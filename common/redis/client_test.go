package redis

import (
	"context"
	"testing"

	"sluice-scada/common/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)
	client := NewRedisClient(&config.RedisConfig{Addr: mr.Addr()})

	require.NoError(t, client.Ping(context.Background()).Err())
	assert.NoError(t, Close(client))
	assert.NoError(t, Close(nil))
}
