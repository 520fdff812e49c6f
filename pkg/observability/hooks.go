// Package observability provides hooks for metrics and instrumentation.
//
// This package enables optional instrumentation without adding hard
// dependencies to the generation code. Consumers register hooks at startup to
// receive events about batch packing, datum generation and rendering.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// A Prometheus implementation is included; see [NewPrometheusHooks].
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    hooks := observability.NewPrometheusHooks(prometheus.NewRegistry())
//	    observability.SetGenerationHooks(hooks)
//	    observability.SetRenderHooks(hooks)
//	    // ... run generation
//	    hooks.WriteTextfile("metrics.prom")
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Generation().OnBatchAttempt(ctx, datum, attempt, len(grids))
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Generation Hooks
// =============================================================================

// GenerationHooks receives events from dataset generation.
type GenerationHooks interface {
	// OnBatchAttempt records one attempt to pack a freshly drawn batch.
	OnBatchAttempt(ctx context.Context, datum, attempt, grids int)

	// OnPlacement records a successful packing with the number of random
	// positions tried and shrink steps taken across all grids.
	OnPlacement(ctx context.Context, datum, positions, shrinks int)

	// OnBatchComplete records the end of the retry loop for one datum.
	OnBatchComplete(ctx context.Context, datum, attempts int, duration time.Duration, err error)

	// OnDatumGenerated records a datum that was fully built and accepted by
	// the sink.
	OnDatumGenerated(ctx context.Context, datum int)

	// OnDatumSkipped records a datum that was dropped from the dataset.
	OnDatumSkipped(ctx context.Context, datum int, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from artifact rendering.
type RenderHooks interface {
	// OnRenderComplete records one rendered artifact.
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopGenerationHooks is a no-op implementation of GenerationHooks.
type NoopGenerationHooks struct{}

func (NoopGenerationHooks) OnBatchAttempt(context.Context, int, int, int)                   {}
func (NoopGenerationHooks) OnPlacement(context.Context, int, int, int)                      {}
func (NoopGenerationHooks) OnBatchComplete(context.Context, int, int, time.Duration, error) {}
func (NoopGenerationHooks) OnDatumGenerated(context.Context, int)                           {}
func (NoopGenerationHooks) OnDatumSkipped(context.Context, int, error)                      {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	generationHooks GenerationHooks = NoopGenerationHooks{}
	renderHooks     RenderHooks     = NoopRenderHooks{}
	hooksMu         sync.RWMutex
)

// SetGenerationHooks registers custom generation hooks.
// This should be called once at application startup before any generation.
func SetGenerationHooks(h GenerationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		generationHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// Generation returns the registered generation hooks.
func Generation() GenerationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return generationHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	generationHooks = NoopGenerationHooks{}
	renderHooks = NoopRenderHooks{}
}
