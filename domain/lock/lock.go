package lock

import "github.com/x-xyz/marketengine/base/ctx"

// Unlock releases a held lock. It is safe to call more than once.
type Unlock func()

// ItemLocker serializes mutations of one item across requests and instances.
// Lock blocks until the lock is held, c is done, or the wait timeout passes (domain.ErrItemBusy).
type ItemLocker interface {
	Lock(c ctx.Ctx, itemId string) (Unlock, error)
}
