// Package redisx creates redis clients from the environment.
package redisx

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/env"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/shutdown"
)

// Config lists one address for a single node, several for a cluster.
type Config struct {
	Addresses []string `env:"REDIS_ADDRESS" example:"127.0.0.1:6379"`
	Password  string   `env:"REDIS_PASSWORD,omitempty" example:"123456"`
	DB        int      `env:"REDIS_DB" default:"0"`
}

var ConfigReaderBuilder = env.NewReaderBuilder[Config]()

var configReader = ConfigReaderBuilder.Build()

func NewClient(ctx context.Context, cfg Config) (redis.UniversalClient, errx.Error) {
	cli := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    cfg.Addresses,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := cli.Ping(ctx).Err(); err != nil {
		_ = cli.Close()
		return nil, errx.Unavailable.WithMsg("redis connection failed").WithCause(err).Err()
	}
	return cli, nil
}

func GetDefaultClient() redis.UniversalClient {
	return getClient()
}

var getClient = sync.OnceValue(func() redis.UniversalClient {
	cli, err := NewClient(context.Background(), configReader.Read())
	if err != nil {
		logrus.WithError(err).Fatal("redis connection failed")
	}
	shutdown.OnShutdown(func(ctx context.Context) error {
		return cli.Close()
	}, true)
	logrus.Info("redis connected")
	return cli
})
