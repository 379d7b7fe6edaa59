package observability

import (
	"context"
	"testing"
	"time"
)

type countingEngineHooks struct {
	NoopEngineHooks
	layouts  int
	resolves int
	edits    int
}

func (h *countingEngineHooks) OnLayoutComplete(context.Context, string, int, int, time.Duration, error) {
	h.layouts++
}

func (h *countingEngineHooks) OnResolveComplete(context.Context, string, int, time.Duration, error) {
	h.resolves++
}

func (h *countingEngineHooks) OnEditApplied(context.Context, int) {
	h.edits++
}

type countingCacheHooks struct {
	NoopCacheHooks
	hits, misses int
}

func (h *countingCacheHooks) OnCacheHit(context.Context, string)  { h.hits++ }
func (h *countingCacheHooks) OnCacheMiss(context.Context, string) { h.misses++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Errorf("Engine() = %T, want NoopEngineHooks", Engine())
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Errorf("Cache() = %T, want NoopCacheHooks", Cache())
	}

	// No-op hooks must tolerate every call, including nil contexts.
	Engine().OnLayoutStart(context.Background(), "clockwise", 10)
	Engine().OnLayoutComplete(context.Background(), "clockwise", 10, 0, time.Millisecond, nil)
	Cache().OnCacheSet(context.Background(), "layout", 128)
}

func TestSetAndResetHooks(t *testing.T) {
	defer Reset()

	eng := &countingEngineHooks{}
	ch := &countingCacheHooks{}
	SetEngineHooks(eng)
	SetCacheHooks(ch)

	ctx := context.Background()
	Engine().OnLayoutComplete(ctx, "clockwise", 5, 0, time.Millisecond, nil)
	Engine().OnResolveComplete(ctx, "a", 3, time.Millisecond, nil)
	Engine().OnEditApplied(ctx, 2)
	Cache().OnCacheHit(ctx, "layout")
	Cache().OnCacheMiss(ctx, "layout")

	if eng.layouts != 1 || eng.resolves != 1 || eng.edits != 1 {
		t.Errorf("engine hook counts = %d/%d/%d, want 1/1/1", eng.layouts, eng.resolves, eng.edits)
	}
	if ch.hits != 1 || ch.misses != 1 {
		t.Errorf("cache hook counts = %d/%d, want 1/1", ch.hits, ch.misses)
	}

	Reset()
	if _, ok := Engine().(NoopEngineHooks); !ok {
		t.Error("Reset() did not restore noop engine hooks")
	}
}

func TestSetHooksIgnoresNil(t *testing.T) {
	defer Reset()

	eng := &countingEngineHooks{}
	SetEngineHooks(eng)
	SetEngineHooks(nil)
	if Engine() != eng {
		t.Error("SetEngineHooks(nil) replaced the registered hooks")
	}

	ch := &countingCacheHooks{}
	SetCacheHooks(ch)
	SetCacheHooks(nil)
	if Cache() != ch {
		t.Error("SetCacheHooks(nil) replaced the registered hooks")
	}
}
