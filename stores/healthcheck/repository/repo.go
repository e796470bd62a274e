package repository

import (
	"time"

	"github.com/x-xyz/suinsapi/base/ctx"
	hcdomain "github.com/x-xyz/suinsapi/domain/healthcheck"
	"github.com/x-xyz/suinsapi/domain/keys"
	"github.com/x-xyz/suinsapi/service/redis"
)

const pingTimeout = 2 * time.Second

type impl struct {
	redisCache redis.Service
	chain      hcdomain.ChainPinger
}

// New creates new healthCheck repo over the shared redis and the fullnode
func New(
	redisCache redis.Service,
	chain hcdomain.ChainPinger,
) hcdomain.HealthCheckRepo {
	return &impl{
		redisCache: redisCache,
		chain:      chain,
	}
}

func (im *impl) PingRedis(c ctx.Ctx) error {
	tc, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()

	if err := im.redisCache.Set(tc, keys.RedisKey(keys.PfxHealthCheck, "testset"), []byte("1"), 30*time.Second); err != nil {
		c.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}

func (im *impl) PingChain(c ctx.Ctx) (string, error) {
	tc, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()

	id, err := im.chain.GetChainIdentifier(tc)
	if err != nil {
		c.WithField("err", err).Error("sui_getChainIdentifier failed")
		return "", err
	}
	return id, nil
}
