// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers register
// hooks at startup to receive events about layout passes, overlap
// resolution, structural edits and cache operations.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach avoids import cycles (hooks are registered by main, not
// by libraries) and keeps the engine dependency-free from observability
// frameworks.
//
// # Usage
//
//	func main() {
//	    observability.SetEngineHooks(&myEngineHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Engine().OnLayoutStart(ctx, orientation, nodeCount)
//	// ... compute layout ...
//	observability.Engine().OnLayoutComplete(ctx, orientation, nodeCount, warnings, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// EngineHooks receives events from the layout engine and edit executor.
type EngineHooks interface {
	// Layout events
	OnLayoutStart(ctx context.Context, orientation string, nodeCount int)
	OnLayoutComplete(ctx context.Context, orientation string, nodeCount, warningCount int, duration time.Duration, err error)

	// Overlap resolution events
	OnResolveStart(ctx context.Context, movedNodeID string)
	OnResolveComplete(ctx context.Context, movedNodeID string, visited int, duration time.Duration, err error)

	// Structural edit events
	OnEditApplied(ctx context.Context, recordCount int)
	OnEditRejected(ctx context.Context, reason string)
}

// CacheHooks receives events from layout-cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopEngineHooks is a no-op implementation of EngineHooks.
type NoopEngineHooks struct{}

func (NoopEngineHooks) OnLayoutStart(context.Context, string, int) {}
func (NoopEngineHooks) OnLayoutComplete(context.Context, string, int, int, time.Duration, error) {
}
func (NoopEngineHooks) OnResolveStart(context.Context, string)                               {}
func (NoopEngineHooks) OnResolveComplete(context.Context, string, int, time.Duration, error) {}
func (NoopEngineHooks) OnEditApplied(context.Context, int)                                   {}
func (NoopEngineHooks) OnEditRejected(context.Context, string)                               {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

var (
	engineHooks EngineHooks = NoopEngineHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	hooksMu     sync.RWMutex
)

// SetEngineHooks registers custom engine hooks.
// This should be called once at application startup before any layout runs.
func SetEngineHooks(h EngineHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		engineHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Engine returns the registered engine hooks.
func Engine() EngineHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return engineHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	engineHooks = NoopEngineHooks{}
	cacheHooks = NoopCacheHooks{}
}
