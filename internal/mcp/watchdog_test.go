package mcp

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatchParent_CancelsOnParentChange(t *testing.T) {
	var ppid atomic.Int64
	ppid.Store(100)
	getppid = func() int { return int(ppid.Load()) }
	t.Cleanup(func() { getppid = osGetppid })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	WatchParent(ctx, 5*time.Millisecond, cancel)

	ppid.Store(1)
	select {
	case <-ctx.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("watchdog did not cancel after parent change")
	}
}

func TestWatchParent_StopsWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var called atomic.Bool
	WatchParent(ctx, 5*time.Millisecond, func() { called.Store(true) })
	cancel()

	time.Sleep(30 * time.Millisecond)
	if called.Load() {
		t.Error("cancelFn should not be called while the parent is alive")
	}
}
