package shutdown

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStop(t *testing.T) {
	var (
		mu    sync.Mutex
		order []string
	)
	record := func(name string) Hook {
		return func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			order = append(order, name)
			return nil
		}
	}
	OnShutdown(record("first"), true)
	OnShutdown(record("second"), true)
	OnShutdown(func(ctx context.Context) error { return errors.New("ignored") })

	Stop()
	assert.Equal(t, []string{"second", "first"}, order)

	Stop()
	assert.Len(t, order, 2)
}

func TestWaitOnContext(t *testing.T) {
	called := make(chan struct{})
	OnShutdown(func(ctx context.Context) error {
		close(called)
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	Wait(ctx)
	<-called
}
