package locker

import (
	"time"
)

const (
	defaultTtl         = 2 * time.Minute
	defaultWaitTimeout = 10 * time.Second
)

// Config of an item locker.
// Ttl bounds how long a crashed holder keeps the lock. A live holder keeps refreshing it, however long it holds.
type Config struct {
	Ttl         time.Duration
	WaitTimeout time.Duration
}

func (cfg Config) withDefaults() Config {
	if cfg.Ttl <= 0 {
		cfg.Ttl = defaultTtl
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = defaultWaitTimeout
	}
	return cfg
}
