// Package mongox creates MongoDB clients from the environment.
package mongox

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/env"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/shutdown"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Config struct {
	URI        string `env:"MONGO_URI" example:"mongodb://localhost:27017"`
	Database   string `env:"MONGO_DATABASE" default:"avrogen"`
	Collection string `env:"MONGO_COLLECTION" default:"schemas"`
}

var ConfigReaderBuilder = env.NewReaderBuilder[Config]()

var configReader = ConfigReaderBuilder.Build()

func NewClient(ctx context.Context, cfg Config, opts ...*options.ClientOptions) (*mongo.Client, errx.Error) {
	opts = append([]*options.ClientOptions{options.Client().ApplyURI(cfg.URI)}, opts...)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, opts...)
	if err != nil {
		return nil, errx.Unavailable.WithMsg("mongodb connection failed").WithCause(err).Err()
	}
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errx.Unavailable.WithMsg("mongodb ping failed").WithCause(err).Err()
	}
	return client, nil
}

func GetDefaultClient() *mongo.Client {
	return defaultClient()
}

// DefaultCollection is the schema collection named by the environment.
func DefaultCollection() *mongo.Collection {
	cfg := configReader.Read()
	return defaultClient().Database(cfg.Database).Collection(cfg.Collection)
}

var defaultClient = sync.OnceValue(func() *mongo.Client {
	client, err := NewClient(context.Background(), configReader.Read())
	if err != nil {
		logrus.WithError(err).Fatal("create mongodb connection failed")
	}
	shutdown.OnShutdown(func(ctx context.Context) error {
		defer logrus.Infoln("mongodb connection closed")
		return client.Disconnect(ctx)
	}, true)
	logrus.Info("mongodb connected")
	return client
})
