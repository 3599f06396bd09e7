// Package query wraps the mongo driver with per table metrics, slow logs and optional COLLSCAN checks.
// The testcases show the usage of each method.
package query

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
)

var (
	// ErrNotFound is mongo document not found error
	ErrNotFound = errors.New("document not found")

	// ErrDuplicateKey is an error when violating unique index
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrCollScan is returned for unindexed queries when index checking is on
	ErrCollScan = errors.New("COLLSCAN is not allowed")
)

type patchOp struct {
	patchMany bool
}

// PatchOp is an alias for functional argument
type PatchOp func(*patchOp)

// WithPatchMany patches every selected document instead of the first one
func WithPatchMany() PatchOp {
	return func(o *patchOp) {
		o.patchMany = true
	}
}

// Mongo abstract the mongo layer.
type Mongo interface {
	// Insert returns ErrDuplicateKey when a unique index is violated
	Insert(context ctx.Ctx, table domain.Table, insert interface{}) error

	FindOne(context ctx.Ctx, table domain.Table, query, result interface{}) error

	Count(context ctx.Ctx, table domain.Table, selector interface{}) (n int, err error)

	// Search sorts by a comma separated field list, "-" prefixes a descending field
	// (ex "-price,createDate"). An empty sort leaves the order to the server.
	Search(context ctx.Ctx, table domain.Table, offset, limit int, sort string, query, results interface{}) error

	// Remove returns ErrNotFound if selector does not match any documents
	Remove(context ctx.Ctx, table domain.Table, selector interface{}) error

	RemoveAll(context ctx.Ctx, table domain.Table, selector interface{}) (removedCnt int64, err error)

	// Patch $sets update on the selected document, or all of them WithPatchMany.
	// Returns ErrNotFound if selector does not match any documents.
	Patch(context ctx.Ctx, table domain.Table, selector, update interface{}, ops ...PatchOp) error

	// CustomPatch applies a raw update document.
	// Returns ErrNotFound if upsert is false and selector does not match any documents.
	CustomPatch(context ctx.Ctx, table domain.Table, selector, update bson.M, upsert bool) error

	// EnsureIndexes creates indexes if they do not exist
	EnsureIndexes(context ctx.Ctx, table domain.Table, indexes []mongo.IndexModel) error

	// RunWithTransaction runs `run` in one mongo transaction. Every query issued with the ctx passed
	// to `run` belongs to the transaction. Against a standalone server `run` is called without one.
	RunWithTransaction(context ctx.Ctx, run func(ctx.Ctx) error) error
}
