package locker

import (
	"context"
	"sync"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/domain"
	"github.com/x-xyz/marketengine/domain/lock"
)

type localImpl struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
	cfg   Config
}

// NewLocal returns an in-process item locker. It only serializes callers in this process.
func NewLocal(cfg Config) lock.ItemLocker {
	return &localImpl{
		slots: map[string]chan struct{}{},
		cfg:   cfg.withDefaults(),
	}
}

func (im *localImpl) slot(itemId string) chan struct{} {
	im.mu.Lock()
	defer im.mu.Unlock()

	s, ok := im.slots[itemId]
	if !ok {
		s = make(chan struct{}, 1)
		im.slots[itemId] = s
	}
	return s
}

func (im *localImpl) Lock(c ctx.Ctx, itemId string) (lock.Unlock, error) {
	s := im.slot(itemId)

	waitCtx, cancel := context.WithTimeout(c, im.cfg.WaitTimeout)
	defer cancel()

	select {
	case s <- struct{}{}:
	case <-waitCtx.Done():
		if c.Err() != nil {
			return nil, c.Err()
		}
		return nil, domain.ErrItemBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-s })
	}, nil
}
