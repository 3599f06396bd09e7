package redisclient

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolSize(t *testing.T) {
	idle, active := Options{}.poolSize()
	assert.Equal(t, defaultMaxIdle, idle)
	assert.Equal(t, defaultMaxActive, active)

	cpu := runtime.NumCPU()
	idle, active = Options{PoolMultiplier: 8}.poolSize()
	assert.Equal(t, cpu*8, active)
	assert.Equal(t, cpu*2, idle)
}

func TestConnectUnreachable(t *testing.T) {
	_, err := Connect("redis://127.0.0.1:1", Options{})
	assert.Error(t, err)
}
