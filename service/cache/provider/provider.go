// Package provider defines the byte stores behind the cache service.
package provider

import (
	"errors"
	"time"

	"github.com/x-xyz/marketengine/base/ctx"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// Provider stores raw bytes. Get returns the ttl left, 0 when the entry never expires.
type Provider interface {
	Get(c ctx.Ctx, key string) ([]byte, time.Duration, error)
	// Set with a zero ttl keeps the entry until it is deleted or evicted
	Set(c ctx.Ctx, key string, value []byte, ttl time.Duration) error
	Del(c ctx.Ctx, key string) error
}
