package cache

import (
	"encoding/json"
	"reflect"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/metrics"
	"github.com/x-xyz/marketengine/domain/keys"
	"github.com/x-xyz/marketengine/service/cache/provider"
)

var met = metrics.New("cache")

type impl struct {
	ttl         time.Duration
	pfx         string
	cache       provider.Provider
	serialize   Serializer
	deserialize Deserializer
	loads       singleflight.Group
}

func New(config ServiceConfig) Service {
	im := &impl{
		ttl:         config.Ttl,
		pfx:         config.Pfx,
		cache:       config.Cache,
		serialize:   config.Serialize,
		deserialize: config.Deserialize,
	}
	if im.serialize == nil {
		im.serialize = json.Marshal
	}
	if im.deserialize == nil {
		im.deserialize = json.Unmarshal
	}
	return im
}

func (im *impl) GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error {
	err := im.Get(c, key, container)
	if err == nil {
		met.BumpSum("hit", 1, "pfx", im.pfx)
		return nil
	} else if err != ErrNotFound {
		// reads keep working on a broken cache
		c.WithField("err", err).WithField("key", key).Warn("Get failed, fallback to getter")
	}
	met.BumpSum("miss", 1, "pfx", im.pfx)

	val, err, shared := im.loads.Do(key, func() (interface{}, error) {
		val, err := getter()
		if err != nil {
			return nil, err
		}
		if err := im.Set(c, key, val); err != nil {
			c.WithField("err", err).WithField("key", key).Warn("Set failed")
		}
		return val, nil
	})
	if err != nil {
		return err
	}
	if shared {
		met.BumpSum("shared", 1, "pfx", im.pfx)
	}

	// callers sharing a load get copies of the same top-level value
	reflect.ValueOf(container).Elem().Set(reflect.ValueOf(val).Elem())
	return nil
}

func (im *impl) Get(c ctx.Ctx, key string, container interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	val, _, err := im.cache.Get(c, key)
	if err == provider.ErrNotFound {
		return ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Get failed")
		return err
	}

	if err := im.deserialize(val, container); err != nil {
		c.WithField("err", err).WithField("key", key).Error("deserialize failed")
		return err
	}
	return nil
}

func (im *impl) Set(c ctx.Ctx, key string, value interface{}) error {
	key = keys.RedisKey(im.pfx, key)

	val, err := im.serialize(value)
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("serialize failed")
		return err
	}

	if err := im.cache.Set(c, key, val, im.ttl); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Set failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	key = keys.RedisKey(im.pfx, key)

	if err := im.cache.Del(c, key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("cache.Del failed")
		return err
	}
	return nil
}
