package primitive

import (
	"time"

	"github.com/coocood/freecache"

	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/base/metrics"
	"github.com/x-xyz/suinsapi/service/cache/provider"
)

type impl struct {
	name  string
	cache *freecache.Cache
	met   metrics.Service
}

// NewPrimitive is an in-process provider of sizeMb megabytes. The oldest
// entries are evicted once it is full.
func NewPrimitive(name string, sizeMb int) provider.Provider {
	return &impl{
		name:  name,
		cache: freecache.NewCache(sizeMb * 1024 * 1024),
		met:   metrics.New("freecache"),
	}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	val, ttl, err := im.cache.GetWithExpiration([]byte(key))
	if err == freecache.ErrNotFound {
		im.met.BumpSum("miss", 1, "name", im.name)
		return nil, 0, provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.GetWithExpiration failed")
		return nil, 0, err
	}

	im.met.BumpSum("hit", 1, "name", im.name)
	if ttl == 0 {
		return val, 0, nil
	}
	// freecache returns the expire timestamp, not the remaining seconds
	remain := time.Until(time.Unix(int64(ttl), 0))
	if remain < time.Second {
		remain = time.Second
	}
	return val, remain, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	if err := im.cache.Set([]byte(key), value, int(ttl.Seconds())); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	im.cache.Del([]byte(key))
	return nil
}
