// Package cache stores computed layout results keyed by the inputs that
// produced them. Positions are derived state, so the cache is exactly
// that - a cache, never a source of truth: keys hash the canonical tree
// structure together with orientation and config, which means any
// structural edit, resize or setting change produces a different key and
// stale entries can never be served.
//
// Backends: file (CLI default), redis (shared deployments), null
// (disabled). All implementations are safe for concurrent use.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is the interface for layout-result storage backends.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// LayoutKey builds the cache key for a layout computation. parts must
// fully determine the output: the document's structural fingerprint, the
// orientation name and the spacing config. Hashing keeps keys short and
// uniform regardless of document size.
func LayoutKey(parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	// Full SHA-256 (64 hex chars) to prevent collisions between documents.
	return fmt.Sprintf("layout:%s", hex.EncodeToString(hash[:]))
}

// Fingerprint computes a SHA-256 hash of the input data, used to
// fingerprint a serialized tree for key construction.
func Fingerprint(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
