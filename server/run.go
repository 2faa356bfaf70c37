package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/shutdown"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// Run serves handler on addr with cleartext HTTP/2 until ctx is done.
func Run(ctx context.Context, addr string, handler http.Handler) errx.Error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	shutdown.OnShutdown(func(ctx context.Context) error {
		return srv.Shutdown(ctx)
	})

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return errx.Unavailable.WithMsgf("serve %s", addr).WithCause(err).Err()
		}
		return nil
	case <-ctx.Done():
		shutdown.Stop()
		return nil
	}
}
