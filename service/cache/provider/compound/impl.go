package compound

import (
	"time"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/service/cache/provider"
)

type impl struct {
	layers []provider.Provider
}

// NewCompound stacks layers, fastest first. A hit is copied into the faster layers
// with the ttl it has left.
func NewCompound(layers ...provider.Provider) provider.Provider {
	return &impl{layers}
}

// Get returns the first hit. A failing layer is skipped, the error is returned only when no layer hits.
func (im *impl) Get(c ctx.Ctx, key string) ([]byte, time.Duration, error) {
	var lastErr error
	for idx, lyr := range im.layers {
		val, ttl, err := lyr.Get(c, key)
		if err == provider.ErrNotFound {
			continue
		} else if err != nil {
			lastErr = err
			continue
		}

		for _, faster := range im.layers[:idx] {
			if err := faster.Set(c, key, val, ttl); err != nil {
				c.WithField("err", err).WithField("key", key).Warn("backfill failed")
			}
		}
		return val, ttl, nil
	}

	if lastErr != nil {
		return nil, 0, lastErr
	}
	return nil, 0, provider.ErrNotFound
}

// Set writes every layer, slowest first, so a faster layer never holds what a slower one missed
func (im *impl) Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error {
	for i := len(im.layers) - 1; i >= 0; i-- {
		if err := im.layers[i].Set(c, key, value, ttl); err != nil {
			return err
		}
	}
	return nil
}

// Del clears every layer even if one fails and returns the first error
func (im *impl) Del(c ctx.Ctx, key string) error {
	var first error
	for _, lyr := range im.layers {
		if err := lyr.Del(c, key); err != nil && first == nil {
			first = err
		}
	}
	return first
}
