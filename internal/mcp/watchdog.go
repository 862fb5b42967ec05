package mcp

import (
	"context"
	"os"
	"time"

	"golden/internal/logging"
)

var (
	osGetppid = os.Getppid
	getppid   = osGetppid
)

// WatchParent polls the parent PID and calls cancelFn once it changes, so a
// stdio server exits when the client that spawned it goes away.
//
// It must not read stdin: the SDK's StdioTransport owns it exclusively.
// The goroutine exits when ctx is canceled or parent death is detected.
func WatchParent(ctx context.Context, interval time.Duration, cancelFn context.CancelFunc) {
	ppid := getppid()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if getppid() != ppid {
					logging.New("mcp").Warn("parent process exited, shutting down", "ppid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
