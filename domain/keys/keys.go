package keys

import (
	"crypto/md5"
	"fmt"
	"strings"
)

const (
	// PfxItemLock is used for prefixing per item purchase locks
	PfxItemLock = "itemLock"
	// PfxItemHistory is used for prefixing cached item histories
	PfxItemHistory = "itemHistory"
	// PfxHealthCheck is used by the readiness check
	PfxHealthCheck = "healthCheck"
)

// MD5 hashes the data with md5
func MD5(data string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(data)))
}

// CustomKey is used to join the customized key by componets with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey is used to join the redis key by componets
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// RedisLuaKey is used to join the redis key by componets for redis lua
// If a key created by RedisLuaKey prefix to a set of keys
// then the set of keys will be forced in the same shard for doing lua
func RedisLuaKey(components ...string) string {
	return "{" + CustomKey(":", components...) + "}"
}

// ItemLockKey is the key guarding purchases of a single item
func ItemLockKey(itemId string) string {
	return RedisLuaKey(PfxItemLock, itemId)
}
