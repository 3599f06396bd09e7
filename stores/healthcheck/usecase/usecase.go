package usecase

import (
	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain/healthcheck"
)

type impl struct {
	repo healthcheck.Repo
}

func New(repo healthcheck.Repo) healthcheck.Usecase {
	return &impl{
		repo: repo,
	}
}

// Check fails on the first unreachable store
func (im *impl) Check(c ctx.Ctx) error {
	if err := im.repo.PingDB(c); err != nil {
		return err
	}
	return im.repo.PingCache(c)
}
