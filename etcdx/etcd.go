// Package etcdx creates etcd clients from the environment.
package etcdx

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/env"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/shutdown"
	clientv3 "go.etcd.io/etcd/client/v3"
)

type Config struct {
	Endpoints   []string      `env:"ETCD_ENDPOINTS" example:"127.0.0.1:2379"`
	DialTimeout time.Duration `env:"ETCD_DIAL_TIMEOUT" default:"5s"`
}

var ConfigReaderBuilder = env.NewReaderBuilder[Config]()

var configReader = ConfigReaderBuilder.Build()

func NewClient(cfg Config) (*clientv3.Client, errx.Error) {
	cli, err := clientv3.New(clientv3.Config{
		Endpoints:   cfg.Endpoints,
		DialTimeout: cfg.DialTimeout,
	})
	if err != nil {
		return nil, errx.Unavailable.WithMsgf("connect etcd %s failed", strings.Join(cfg.Endpoints, ",")).WithCause(err).Err()
	}
	return cli, nil
}

// DefaultClient returns the client built from the environment.
func DefaultClient() *clientv3.Client {
	return defaultClient()
}

var defaultClient = sync.OnceValue(func() *clientv3.Client {
	cli, err := NewClient(configReader.Read())
	if err != nil {
		logrus.WithError(err).Panic("connect etcd failed")
	}
	shutdown.OnShutdown(func(ctx context.Context) error {
		defer logrus.Infoln("etcd connection closed")
		return cli.Close()
	}, true)
	logrus.Infoln("etcd connected")
	return cli
})
