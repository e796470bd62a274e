package redisclient

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	p, err := ConnectRedis(mr.Addr(), "", RedisParam{PoolMultiplier: 8})
	require.NoError(t, err)
	defer p.Close()

	conn := p.Get()
	defer conn.Close()
	_, err = conn.Do("SET", "k", "v")
	assert.NoError(t, err)
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestConnectRedisWithPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secret")

	_, err := ConnectRedis(mr.Addr(), "wrong")
	assert.Error(t, err)

	p, err := ConnectRedis(mr.Addr(), "secret")
	require.NoError(t, err)
	p.Close()
}

func TestConnectRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := ConnectRedis(addr, "")
	assert.Error(t, err)
}
