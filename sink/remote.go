package sink

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/errx"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultRedisPrefix = "avro:schema:"
	DefaultNatsSubject = "avro.schema"
	DefaultEtcdPrefix  = "/avro/schemas"
	SchemaNameHeader   = "Avro-Schema-Name"
)

// RedisSetter is satisfied by every go-redis client.
type RedisSetter interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// RedisSink stores each schema under Prefix + full name. A zero TTL keeps keys forever.
type RedisSink struct {
	Client RedisSetter
	Prefix string
	TTL    time.Duration
}

func (s RedisSink) Key(fullName string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return prefix + fullName
}

func (s RedisSink) Write(ctx context.Context, o Output) errx.Error {
	key := s.Key(o.FullName)
	if err := s.Client.Set(ctx, key, o.Text, s.TTL).Err(); err != nil {
		return errx.Unavailable.WithMsgf("redis set %s", key).WithCause(err).Err()
	}
	logrus.WithField("key", key).Debug("avro schema stored in redis")
	return nil
}

// NatsPublisher is satisfied by *nats.Conn.
type NatsPublisher interface {
	PublishMsg(m *nats.Msg) error
}

// NatsSink publishes each schema on <Subject>.<full name>.
type NatsSink struct {
	Conn    NatsPublisher
	Subject string
}

func (s NatsSink) subject(fullName string) string {
	subject := s.Subject
	if subject == "" {
		subject = DefaultNatsSubject
	}
	return subject + "." + fullName
}

func (s NatsSink) Write(_ context.Context, o Output) errx.Error {
	msg := nats.NewMsg(s.subject(o.FullName))
	msg.Header.Set(SchemaNameHeader, o.FullName)
	msg.Data = o.Text
	if err := s.Conn.PublishMsg(msg); err != nil {
		return errx.Unavailable.WithMsgf("nats publish %s", msg.Subject).WithCause(err).Err()
	}
	return nil
}

// EtcdPutter is satisfied by *clientv3.Client.
type EtcdPutter interface {
	Put(ctx context.Context, key, val string, opts ...clientv3.OpOption) (*clientv3.PutResponse, error)
}

// EtcdSink stores each schema under <Prefix>/<full name>.
type EtcdSink struct {
	Client EtcdPutter
	Prefix string
}

func (s EtcdSink) Key(fullName string) string {
	prefix := s.Prefix
	if prefix == "" {
		prefix = DefaultEtcdPrefix
	}
	return prefix + "/" + fullName
}

func (s EtcdSink) Write(ctx context.Context, o Output) errx.Error {
	key := s.Key(o.FullName)
	if _, err := s.Client.Put(ctx, key, string(o.Text)); err != nil {
		return errx.Unavailable.WithMsgf("etcd put %s", key).WithCause(err).Err()
	}
	return nil
}

// MongoUpserter is satisfied by *mongo.Collection.
type MongoUpserter interface {
	ReplaceOne(ctx context.Context, filter any, replacement any, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
}

type SchemaDocument struct {
	ID        string    `bson:"_id"`
	Name      string    `bson:"name"`
	Schema    string    `bson:"schema"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// MongoSink upserts one document per full name.
type MongoSink struct {
	Collection MongoUpserter
	Now        func() time.Time
}

func (s MongoSink) Write(ctx context.Context, o Output) errx.Error {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	doc := SchemaDocument{ID: o.FullName, Name: o.Name, Schema: string(o.Text), UpdatedAt: now().UTC()}
	_, err := s.Collection.ReplaceOne(ctx, bson.M{"_id": o.FullName}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errx.Unavailable.WithMsgf("mongodb upsert %s", o.FullName).WithCause(err).Err()
	}
	return nil
}
