package locker

import (
	"context"
	"sync"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/google/uuid"

	"github.com/x-xyz/marketengine/base/backoff"
	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/goroutine"
	"github.com/x-xyz/marketengine/base/metrics"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/keys"
	"github.com/x-xyz/marketengine/domain/lock"
)

var (
	met = metrics.New("locker")

	// only the holder of the token may release
	releaseScript = redis.NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

	refreshScript = redis.NewScript(1, `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)
)

type redisImpl struct {
	pool *redis.Pool
	cfg  Config
}

// NewRedis returns an item locker shared by every instance using the same redis
func NewRedis(pool *redis.Pool, cfg Config) lock.ItemLocker {
	return &redisImpl{pool: pool, cfg: cfg.withDefaults()}
}

func (im *redisImpl) Lock(c ctx.Ctx, itemId string) (lock.Unlock, error) {
	defer met.BumpTime("lock.wait").End()

	key := keys.ItemLockKey(itemId)
	token := uuid.NewString()

	waitCtx, cancel := context.WithTimeout(c, im.cfg.WaitTimeout)
	defer cancel()

	bo := backoff.NewExponential(20*time.Millisecond, 500*time.Millisecond, backoff.WithJitter(0.3))
	for {
		ok, err := im.tryAcquire(c, key, token)
		if err != nil {
			c.WithField("err", err).WithField("key", key).Error("tryAcquire failed")
			return nil, err
		} else if ok {
			break
		}

		if err := bo.Backoff(waitCtx); err != nil {
			if c.Err() != nil {
				return nil, c.Err()
			}
			met.BumpSum("lock.busy", 1)
			c.WithField("itemId", itemId).Warn("item lock wait timeout")
			return nil, domain.ErrItemBusy
		}
	}

	// the caller's context may be done before it unlocks
	held := ctx.Detach(c)
	stop := make(chan struct{})
	stopped := goroutine.RecoverableGo(func() {
		im.keepAlive(held, key, token, stop)
	}, goroutine.WithName("itemLockKeepAlive"))

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stop)
			<-stopped
			if err := im.release(held, key, token); err != nil {
				c.WithField("err", err).WithField("key", key).Error("release failed")
			}
		})
	}, nil
}

// keepAlive pushes the expiry of a held lock forward every third of the ttl until stop is closed,
// so the lock outlives holders slower than the ttl. A crashed holder stops refreshing and the lock expires.
func (im *redisImpl) keepAlive(c ctx.Ctx, key, token string, stop <-chan struct{}) {
	ticker := time.NewTicker(im.cfg.Ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		ok, err := im.refresh(c, key, token)
		if err != nil {
			met.BumpSum("lock.refresh.err", 1)
			c.WithField("err", err).WithField("key", key).Warn("refresh failed")
			continue
		}
		if !ok {
			met.BumpSum("lock.lost", 1)
			c.WithField("key", key).Error("item lock lost while held")
			return
		}
	}
}

func (im *redisImpl) refresh(c ctx.Ctx, key, token string) (bool, error) {
	conn, err := im.pool.GetContext(c)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	n, err := redis.Int(refreshScript.Do(conn, key, token, im.cfg.Ttl.Milliseconds()))
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (im *redisImpl) tryAcquire(c ctx.Ctx, key, token string) (bool, error) {
	conn, err := im.pool.GetContext(c)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	_, err = redis.String(redis.DoContext(conn, c, "SET", key, token, "NX", "PX", im.cfg.Ttl.Milliseconds()))
	if err == redis.ErrNil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, nil
}

func (im *redisImpl) release(c ctx.Ctx, key, token string) error {
	conn, err := im.pool.GetContext(c)
	if err != nil {
		return err
	}
	defer conn.Close()

	n, err := redis.Int(releaseScript.Do(conn, key, token))
	if err != nil {
		return err
	}
	if n == 0 {
		// ttl passed while held, someone else may own it now
		met.BumpSum("lock.expiredBeforeRelease", 1)
		c.WithField("key", key).Error("item lock expired before release")
	}
	return nil
}
