package redis

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/service/cache/provider"
)

type impl struct {
	pool *redis.Pool
}

func NewRedis(pool *redis.Pool) provider.Provider {
	return &impl{pool}
}

func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	conn, err := im.pool.GetContext(c)
	if err != nil {
		c.WithField("err", err).Error("pool.GetContext failed")
		return nil, time.Duration(0), err
	}
	defer conn.Close()

	val, err := redis.Bytes(redis.DoContext(conn, c, "GET", key))
	if err == redis.ErrNil {
		return nil, time.Duration(0), provider.ErrNotFound
	} else if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis GET failed")
		return nil, time.Duration(0), err
	}

	pttl, err := redis.Int64(redis.DoContext(conn, c, "PTTL", key))
	if err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis PTTL failed")
		return nil, time.Duration(0), err
	}
	if pttl < 0 {
		// -1 no expiry, -2 expired between GET and PTTL
		pttl = 0
	}

	return val, time.Duration(pttl) * time.Millisecond, nil
}

func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	conn, err := im.pool.GetContext(c)
	if err != nil {
		c.WithField("err", err).Error("pool.GetContext failed")
		return err
	}
	defer conn.Close()

	args := []interface{}{key, value}
	if ms := ttl.Milliseconds(); ms > 0 {
		args = append(args, "PX", ms)
	}

	if _, err := redis.DoContext(conn, c, "SET", args...); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis SET failed")
		return err
	}
	return nil
}

func (im *impl) Del(c ctx.Ctx, key string) error {
	conn, err := im.pool.GetContext(c)
	if err != nil {
		c.WithField("err", err).Error("pool.GetContext failed")
		return err
	}
	defer conn.Close()

	if _, err := redis.DoContext(conn, c, "DEL", key); err != nil {
		c.WithField("err", err).WithField("key", key).Error("redis DEL failed")
		return err
	}
	return nil
}
