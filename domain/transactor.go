package domain

import "github.com/x-xyz/marketengine/base/ctx"

// Transactor runs `run` as one unit of work against the persistence layer.
// query.Mongo implements it with a mongo session transaction.
type Transactor interface {
	RunWithTransaction(c ctx.Ctx, run func(ctx.Ctx) error) error
}
