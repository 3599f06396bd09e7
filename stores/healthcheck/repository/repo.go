package repository

import (
	"time"

	"github.com/gomodule/redigo/redis"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/base/database/mongoclient"
	"github.com/x-xyz/marketengine/domain/healthcheck"
	"github.com/x-xyz/marketengine/domain/keys"
)

const pingTimeout = 2 * time.Second

type impl struct {
	mgoClient *mongoclient.Client
	pool      *redis.Pool
}

// New pings mongo and the redis pool backing item locks and caches
func New(mgoClient *mongoclient.Client, pool *redis.Pool) healthcheck.Repo {
	return &impl{
		mgoClient: mgoClient,
		pool:      pool,
	}
}

func (im *impl) PingDB(c ctx.Ctx) error {
	tc, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()
	if err := im.mgoClient.Ping(tc, readpref.Primary()); err != nil {
		c.WithField("err", err).Error("ping mongo error")
		return err
	}
	return nil
}

func (im *impl) PingCache(c ctx.Ctx) error {
	tc, cancel := ctx.WithTimeout(c, pingTimeout)
	defer cancel()

	conn, err := im.pool.GetContext(tc)
	if err != nil {
		c.WithField("err", err).Error("pool.GetContext failed")
		return err
	}
	defer conn.Close()

	if _, err := conn.Do("SET", keys.RedisKey(keys.PfxHealthCheck, "testset"), "1", "EX", 30); err != nil {
		c.WithField("err", err).Error("test redis set failed")
		return err
	}
	return nil
}
