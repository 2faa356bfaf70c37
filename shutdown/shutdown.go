// Package shutdown runs registered close hooks when the process is asked to stop.
package shutdown

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

type Hook func(ctx context.Context) error

var (
	asyncStops []Hook
	syncStops  []Hook
	mu         sync.Mutex
	timeout    = time.Second * 10
)

// NotifyContext returns a context canceled on SIGINT or SIGTERM.
func NotifyContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}

// Wait blocks until ctx is done or a stop signal arrives, then runs every hook.
func Wait(ctx context.Context) {
	ctx, stop := NotifyContext(ctx)
	<-ctx.Done()
	stop()
	logrus.Info("shutdown signal received")
	Stop()
}

// Stop runs the registered hooks once, bounded by the configured timeout.
// Synchronous hooks run last, in reverse registration order.
func Stop() {
	mu.Lock()
	async, ordered := asyncStops, syncStops
	asyncStops, syncStops = nil, nil
	d := timeout
	mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	stopAsync(ctx, async)
	stopSync(ctx, ordered)
	logrus.Info("shutdown completed")
}

// OnShutdown registers cb. Passing true makes the hook synchronous.
func OnShutdown(cb Hook, args ...bool) {
	mu.Lock()
	defer mu.Unlock()
	if len(args) > 0 && args[0] {
		syncStops = append(syncStops, cb)
	} else {
		asyncStops = append(asyncStops, cb)
	}
}

func SetTimeout(d time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	timeout = d
}

func stopSync(ctx context.Context, hooks []Hook) {
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			logrus.WithError(err).Error("shutdown error")
		}
	}
}

func stopAsync(ctx context.Context, hooks []Hook) {
	var wg sync.WaitGroup
	for _, h := range hooks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := h(ctx); err != nil {
				logrus.WithError(err).Error("shutdown error")
			}
		}()
	}
	wg.Wait()
}
