package suins

import (
	"strconv"

	"github.com/x-xyz/suinsapi/base/ctx"
	"github.com/x-xyz/suinsapi/base/log"
	"github.com/x-xyz/suinsapi/domain"
	"github.com/x-xyz/suinsapi/domain/keys"
	suinsdomain "github.com/x-xyz/suinsapi/domain/suins"
	"github.com/x-xyz/suinsapi/service/cache"
)

type cachedClient struct {
	Client
	cache cache.Service
}

// NewCachedClient caches successful lookups of client. Failures are never
// cached.
func NewCachedClient(client Client, cache cache.Service) Client {
	return &cachedClient{
		Client: client,
		cache:  cache,
	}
}

func (cc *cachedClient) ResolveNameServiceAddress(c ctx.Ctx, name string) (*domain.Address, error) {
	// unregistered names are cached as empty address
	res := domain.EmptyAddress
	key := keys.RedisKey("resolve", name)
	err := cc.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		addr, err := cc.Client.ResolveNameServiceAddress(c, name)
		if err != nil {
			return nil, err
		}
		val := domain.EmptyAddress
		if addr != nil {
			val = *addr
		}
		return &val, nil
	})

	if err != nil {
		c.WithFields(log.Fields{
			"err":  err,
			"name": name,
		}).Error("failed to cache.GetByFunc")
		return nil, err
	}

	if res.IsEmpty() {
		return nil, nil
	}
	return &res, nil
}

func (cc *cachedClient) ResolveNameServiceNames(c ctx.Ctx, address domain.Address, cursor *string, limit int) (*suinsdomain.NamesPage, error) {
	cursorKey := ""
	if cursor != nil {
		cursorKey = *cursor
	}
	res := suinsdomain.NamesPage{}
	key := keys.RedisKey("names", string(address), cursorKey, strconv.Itoa(limit))
	err := cc.cache.GetByFunc(c, key, &res, func() (interface{}, error) {
		return cc.Client.ResolveNameServiceNames(c, address, cursor, limit)
	})

	if err != nil {
		c.WithFields(log.Fields{
			"err":     err,
			"address": address,
		}).Error("failed to cache.GetByFunc")
		return nil, err
	}

	return &res, nil
}

func (cc *cachedClient) PurgeAddress(c ctx.Ctx, name string) error {
	return cc.cache.Del(c, keys.RedisKey("resolve", name))
}

// PurgeNames drops the first page of names, the only one default name
// lookups read.
func (cc *cachedClient) PurgeNames(c ctx.Ctx, address domain.Address) error {
	return cc.cache.Del(c, keys.RedisKey("names", string(address), "", strconv.Itoa(suinsdomain.DefaultNameLimit)))
}
