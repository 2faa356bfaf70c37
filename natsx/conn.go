// Package natsx creates NATS connections from the environment.
package natsx

import (
	"context"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/env"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/shutdown"
)

type Config struct {
	Addresses string `env:"NATS_ADDRESSES" example:"nats://localhost:4222,nats://localhost:4223"`
}

var ConfigReaderBuilder = env.NewReaderBuilder[Config]()

var configReader = ConfigReaderBuilder.Build()

func GetDefaultConn() *nats.Conn {
	return getDefaultConn()
}

var getDefaultConn = sync.OnceValue(func() *nats.Conn {
	conn, err := ConnectWithDefaultOptions(configReader.Read().Addresses)
	if err != nil {
		logrus.WithError(err).Panic("connect nats failed")
		return nil
	}
	shutdown.OnShutdown(func(ctx context.Context) error {
		if err := conn.FlushWithContext(ctx); err != nil {
			logrus.WithError(err).Warn("nats flush failed")
		}
		conn.Close()
		logrus.Info("nats connection closed")
		return nil
	}, true)
	logrus.Info("nats connected")
	return conn
})

func ConnectWithDefaultOptions(addresses string, options ...nats.Option) (*nats.Conn, errx.Error) {
	options = append([]nats.Option{
		nats.Name("avrogen"),
		nats.Timeout(30 * time.Second),
		nats.PingInterval(3 * time.Second),
		nats.ReconnectWait(30 * time.Second),
		nats.MaxPingsOutstanding(3),
	}, options...)
	c, err := nats.Connect(addresses, options...)
	if err != nil {
		return nil, errx.Unavailable.WithMsg("nats connection failed").WithCause(err).Err()
	}
	return c, nil
}
