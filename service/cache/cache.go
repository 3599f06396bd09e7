// Package cache serializes values over a raw byte provider and loads misses through a getter.
package cache

import (
	"errors"
	"time"

	"github.com/x-xyz/marketengine/base/ctx"
	"github.com/x-xyz/marketengine/service/cache/provider"
)

var (
	ErrNotFound = errors.New("Cache not found")
)

// OneTimeGetter loads the value of a missed key. It must return a pointer.
type OneTimeGetter func() (interface{}, error)

type Serializer func(interface{}) ([]byte, error)

type Deserializer func([]byte, interface{}) error

type Service interface {
	// GetByFunc reads key into container and falls back to getter on a miss.
	// Concurrent misses of one key share a single getter call.
	GetByFunc(c ctx.Ctx, key string, container interface{}, getter OneTimeGetter) error
	Get(c ctx.Ctx, key string, container interface{}) error
	Set(c ctx.Ctx, key string, value interface{}) error
	Del(c ctx.Ctx, key string) error
}

// ServiceConfig configures New. Serialize and Deserialize default to encoding/json.
type ServiceConfig struct {
	Ttl         time.Duration
	Pfx         string
	Cache       provider.Provider
	Serialize   Serializer
	Deserialize Deserializer
}
