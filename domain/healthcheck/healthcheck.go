package healthcheck

import (
	"github.com/x-xyz/marketengine/base/ctx"
)

// Usecase reports whether the engine can serve traffic
type Usecase interface {
	Check(c ctx.Ctx) error
}

// Repo pings the stores the engine depends on
type Repo interface {
	PingDB(c ctx.Ctx) error
	PingCache(c ctx.Ctx) error
}
