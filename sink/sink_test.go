package sink

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tencent-go/avrogen/errx"
	clientv3 "go.etcd.io/etcd/client/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var order = Output{
	Name:     "OrderDto",
	FullName: "com.x.OrderDto.OrderDto",
	Text:     []byte(`{"type": "record"}`),
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "OrderAvroDto.avsc", FileName("OrderDto"))
	assert.Equal(t, "Order.avsc", FileName("Order"))
	assert.Equal(t, "AvroDto.avsc", FileName("Dto"))
}

func TestFileSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "schemas")
	s := &FileSink{Dir: dir}
	require.NoError(t, s.Write(context.Background(), order))
	require.NoError(t, s.Write(context.Background(), order))
	data, err := os.ReadFile(filepath.Join(dir, "OrderAvroDto.avsc"))
	require.NoError(t, err)
	assert.Equal(t, order.Text, data)

	clash := Output{Name: "OrderDto", FullName: "com.y.OrderDto.OrderDto", Text: []byte(`{}`)}
	xerr := s.Write(context.Background(), clash)
	require.Error(t, xerr)
	assert.Equal(t, errx.TypeValidation, xerr.Type())
	data, err = os.ReadFile(filepath.Join(dir, "OrderAvroDto.avsc"))
	require.NoError(t, err)
	assert.Equal(t, order.Text, data)
}

func TestWriterSink(t *testing.T) {
	var buf bytes.Buffer
	s := &WriterSink{W: &buf}
	require.NoError(t, s.Write(context.Background(), order))
	assert.Equal(t, "{\"type\": \"record\"}\n", buf.String())
}

func TestZipSink(t *testing.T) {
	s := &ZipSink{}
	require.NoError(t, s.Write(context.Background(), order))
	require.NoError(t, s.Write(context.Background(), Output{Name: "Line", FullName: "Line", Text: []byte("{}")}))

	data, err := s.Bytes()
	require.NoError(t, err)
	r, e := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, e)
	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"com/x/OrderDto/OrderAvroDto.avsc", "Line.avsc"}, names)

	path := filepath.Join(t.TempDir(), "schemas.zip")
	require.NoError(t, s.Save(path))
	assert.FileExists(t, path)
}

type fakeRedis struct {
	key   string
	value any
	ttl   time.Duration
	err   error
}

func (f *fakeRedis) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	f.key, f.value, f.ttl = key, value, expiration
	return redis.NewStatusResult("OK", f.err)
}

func TestRedisSink(t *testing.T) {
	client := &fakeRedis{}
	s := RedisSink{Client: client, TTL: time.Hour}
	require.NoError(t, s.Write(context.Background(), order))
	assert.Equal(t, "avro:schema:com.x.OrderDto.OrderDto", client.key)
	assert.Equal(t, order.Text, client.value)
	assert.Equal(t, time.Hour, client.ttl)

	client.err = errors.New("connection refused")
	err := RedisSink{Client: client, Prefix: "p:"}.Write(context.Background(), order)
	require.Error(t, err)
	assert.Equal(t, errx.TypeUnavailable, err.Type())
	assert.Equal(t, "p:com.x.OrderDto.OrderDto", client.key)
}

type fakeNats struct {
	msgs []*nats.Msg
}

func (f *fakeNats) PublishMsg(m *nats.Msg) error {
	f.msgs = append(f.msgs, m)
	return nil
}

func TestNatsSink(t *testing.T) {
	conn := &fakeNats{}
	require.NoError(t, NatsSink{Conn: conn}.Write(context.Background(), order))
	require.Len(t, conn.msgs, 1)
	assert.Equal(t, "avro.schema.com.x.OrderDto.OrderDto", conn.msgs[0].Subject)
	assert.Equal(t, "com.x.OrderDto.OrderDto", conn.msgs[0].Header.Get(SchemaNameHeader))
	assert.Equal(t, order.Text, conn.msgs[0].Data)
}

type fakeEtcd struct {
	puts map[string]string
}

func (f *fakeEtcd) Put(ctx context.Context, key, val string, opts ...clientv3.OpOption) (*clientv3.PutResponse, error) {
	f.puts[key] = val
	return &clientv3.PutResponse{}, nil
}

func TestEtcdSink(t *testing.T) {
	client := &fakeEtcd{puts: map[string]string{}}
	require.NoError(t, EtcdSink{Client: client}.Write(context.Background(), order))
	assert.Equal(t, string(order.Text), client.puts["/avro/schemas/com.x.OrderDto.OrderDto"])
}

type fakeMongo struct {
	filter      any
	replacement any
	upsert      bool
}

func (f *fakeMongo) ReplaceOne(ctx context.Context, filter any, replacement any, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	f.filter, f.replacement = filter, replacement
	for _, o := range opts {
		if o.Upsert != nil {
			f.upsert = *o.Upsert
		}
	}
	return &mongo.UpdateResult{UpsertedCount: 1}, nil
}

func TestMongoSink(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	coll := &fakeMongo{}
	s := MongoSink{Collection: coll, Now: func() time.Time { return at }}
	require.NoError(t, s.Write(context.Background(), order))
	assert.True(t, coll.upsert)
	assert.Equal(t, bson.M{"_id": "com.x.OrderDto.OrderDto"}, coll.filter)
	assert.Equal(t, SchemaDocument{
		ID:        "com.x.OrderDto.OrderDto",
		Name:      "OrderDto",
		Schema:    string(order.Text),
		UpdatedAt: at,
	}, coll.replacement)
}

type failing struct{ calls int }

func (f *failing) Write(context.Context, Output) errx.Error {
	f.calls++
	return errx.IO.WithMsg("disk full").Err()
}

func TestMulti(t *testing.T) {
	first, second := &failing{}, &failing{}
	var buf bytes.Buffer
	err := Multi(first, &WriterSink{W: &buf}, second).Write(context.Background(), order)
	require.Error(t, err)
	assert.Equal(t, errx.TypeIO, err.Type())
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.NotEmpty(t, buf.String())

	err = WriteAll(context.Background(), first, []Output{order, order})
	require.Error(t, err)
	assert.Equal(t, 2, first.calls)
	assert.Contains(t, err.Error(), "write com.x.OrderDto.OrderDto")
}
