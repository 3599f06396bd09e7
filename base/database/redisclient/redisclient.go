package redisclient

import (
	"context"
	"runtime"
	"time"

	"github.com/gomodule/redigo/redis"

	"github.com/x-xyz/marketengine/base/backoff"
	"github.com/x-xyz/marketengine/base/log"
)

const (
	dialTimeout = 2 * time.Second
	ioTimeout   = 1500 * time.Millisecond
	idleTimeout = 4 * time.Minute

	defaultMaxIdle   = 200
	defaultMaxActive = 1024
)

// Options tunes the pool. The zero value suits unit tests: default pool size and a single dial.
type Options struct {
	Password string
	// PoolMultiplier sizes the pool per cpu, a quarter of it may idle
	PoolMultiplier float64
	// DialRetries is the number of extra dials, spaced by exponential backoff
	DialRetries int
}

func (o Options) poolSize() (maxIdle, maxActive int) {
	if o.PoolMultiplier <= 0 {
		return defaultMaxIdle, defaultMaxActive
	}
	active := float64(runtime.NumCPU()) * o.PoolMultiplier
	return int(active / 4), int(active)
}

// MustConnect is Connect but panics on failure
func MustConnect(uri string, opts Options) *redis.Pool {
	p, err := Connect(uri, opts)
	if err != nil {
		log.Log().WithFields(log.Fields{"redisURI": uri, "err": err}).Panic("redis unreachable")
	}
	return p
}

// Connect builds a pool for a redis:// uri and makes sure the server answers PING
func Connect(uri string, opts Options) (*redis.Pool, error) {
	dialOpts := []redis.DialOption{
		redis.DialConnectTimeout(dialTimeout),
		redis.DialReadTimeout(ioTimeout),
		redis.DialWriteTimeout(ioTimeout),
	}
	if opts.Password != "" {
		dialOpts = append(dialOpts, redis.DialPassword(opts.Password))
	}

	maxIdle, maxActive := opts.poolSize()
	p := &redis.Pool{
		MaxIdle:     maxIdle,
		MaxActive:   maxActive,
		Wait:        true,
		IdleTimeout: idleTimeout,
		Dial: func() (redis.Conn, error) {
			return redis.DialURL(uri, dialOpts...)
		},
		TestOnBorrow: testOnBorrow,
	}

	b := backoff.NewExponential(time.Second, 8*time.Second)
	err := backoff.Retry(context.Background(), b, 1+opts.DialRetries, func(attempt int) error {
		if err := ping(p); err != nil {
			log.Log().WithFields(log.Fields{
				"redisURI": uri,
				"err":      err,
				"attempt":  attempt,
			}).Warn("redis ping failed")
			return err
		}
		return nil
	})
	if err != nil {
		p.Close()
		return nil, err
	}

	log.Log().WithField("redisURI", uri).Info("redis connected")
	return p, nil
}

// testOnBorrow skips connections used within the last second
func testOnBorrow(c redis.Conn, lastUsed time.Time) error {
	if time.Since(lastUsed) < time.Second {
		return nil
	}
	_, err := c.Do("PING")
	return err
}

func ping(p *redis.Pool) error {
	c, err := p.Dial()
	if err != nil {
		return err
	}
	defer c.Close()
	_, err = c.Do("PING")
	return err
}
