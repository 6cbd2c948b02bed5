package cache

import "time"

// BytesCache stores rendered output with a TTL.
type BytesCache interface {
	GetBytes(key string) (b []byte, ok bool)
	SetBytes(key string, value []byte, ttl time.Duration)
	// Sweep drops expired entries and returns how many remain.
	Sweep() int
}
