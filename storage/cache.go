package storage

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

var cacheCtx = context.Background()

// DefaultCacheTTL bounds how stale cached dropdown data can get.
const DefaultCacheTTL = 30 * time.Minute

// CacheGet loads a JSON value into out. The cache is best-effort: a
// missing client, a miss or a decode error all report false and the
// caller falls through to the database.
func CacheGet(key string, out interface{}) bool {
	if Redis == nil {
		return false
	}
	val, err := Redis.Get(cacheCtx, key).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		log.Printf("cache: unreadable payload for %s: %v", key, err)
		return false
	}
	return true
}

func CacheSet(key string, value interface{}, ttl time.Duration) {
	if Redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := Redis.Set(cacheCtx, key, data, ttl).Err(); err != nil {
		log.Printf("cache: set %s failed: %v", key, err)
	}
}

func CacheRemove(key string) {
	if Redis == nil {
		return
	}
	if err := Redis.Del(cacheCtx, key).Err(); err != nil {
		log.Printf("cache: del %s failed: %v", key, err)
	}
}

// CacheRemovePrefix drops every key under the given prefix. Mutations
// of taxonomy/location rows call this with "lookup:".
func CacheRemovePrefix(prefix string) {
	if Redis == nil {
		return
	}
	iter := Redis.Scan(cacheCtx, 0, prefix+"*", 0).Iterator()
	for iter.Next(cacheCtx) {
		Redis.Del(cacheCtx, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Printf("cache: scan %s* failed: %v", prefix, err)
	}
}
