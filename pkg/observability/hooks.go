// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about monitor probing, layout application, and the name
// cache.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetApplyHooks(&myApplyHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Probe().OnProbeStart(ctx, "xrandr")
//	// ... probe ...
//	observability.Probe().OnProbeComplete(ctx, "xrandr", len(records), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Probe Hooks
// =============================================================================

// ProbeHooks receives events from monitor discovery.
type ProbeHooks interface {
	OnProbeStart(ctx context.Context, method string)
	OnProbeComplete(ctx context.Context, method string, monitors int, duration time.Duration, err error)
}

// =============================================================================
// Apply Hooks
// =============================================================================

// ApplyHooks receives events while xrandr argument groups are executed.
type ApplyHooks interface {
	// OnApplyStart is called once before the first group runs.
	OnApplyStart(ctx context.Context, runID string, groups int)

	// OnGroupComplete is called after each group, successful or not.
	OnGroupComplete(ctx context.Context, runID string, index, exitCode int, duration time.Duration, err error)

	// OnApplyComplete is called once after the last group.
	OnApplyComplete(ctx context.Context, runID string, failed int, duration time.Duration)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopProbeHooks is a no-op implementation of ProbeHooks.
type NoopProbeHooks struct{}

func (NoopProbeHooks) OnProbeStart(context.Context, string)                               {}
func (NoopProbeHooks) OnProbeComplete(context.Context, string, int, time.Duration, error) {}

// NoopApplyHooks is a no-op implementation of ApplyHooks.
type NoopApplyHooks struct{}

func (NoopApplyHooks) OnApplyStart(context.Context, string, int)                               {}
func (NoopApplyHooks) OnGroupComplete(context.Context, string, int, int, time.Duration, error) {}
func (NoopApplyHooks) OnApplyComplete(context.Context, string, int, time.Duration)             {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	probeHooks ProbeHooks = NoopProbeHooks{}
	applyHooks ApplyHooks = NoopApplyHooks{}
	cacheHooks CacheHooks = NoopCacheHooks{}
	hooksMu    sync.RWMutex
)

// SetProbeHooks registers custom probe hooks.
// This should be called once at application startup.
func SetProbeHooks(h ProbeHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		probeHooks = h
	}
}

// SetApplyHooks registers custom apply hooks.
// This should be called once at application startup.
func SetApplyHooks(h ApplyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		applyHooks = h
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

// Probe returns the registered probe hooks.
func Probe() ProbeHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return probeHooks
}

// Apply returns the registered apply hooks.
func Apply() ApplyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return applyHooks
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
	probeHooks = NoopProbeHooks{}
	applyHooks = NoopApplyHooks{}
	cacheHooks = NoopCacheHooks{}
}
