package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"github.com/tencent-go/avrogen/converter"
	"github.com/tencent-go/avrogen/descriptor"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/etcdx"
	"github.com/tencent-go/avrogen/mongox"
	"github.com/tencent-go/avrogen/natsx"
	"github.com/tencent-go/avrogen/redisx"
	"github.com/tencent-go/avrogen/sink"
)

type outputOptions struct {
	out      string
	zip      string
	stdout   bool
	validate bool
	redis    bool
	nats     bool
	etcd     bool
	mongo    bool
}

func (o *outputOptions) bind(cmd *cobra.Command, remote bool) {
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "Output directory (default $AVROGEN_OUTPUT_DIR)")
	cmd.Flags().StringVar(&o.zip, "zip", "", "Write all schemas into this zip archive")
	cmd.Flags().BoolVar(&o.stdout, "stdout", false, "Print schemas instead of writing files")
	cmd.Flags().BoolVar(&o.validate, "validate", false, "Parse every generated schema before writing it")
	if remote {
		cmd.Flags().BoolVar(&o.redis, "redis", false, "Store schemas in redis ($REDIS_ADDRESS)")
		cmd.Flags().BoolVar(&o.nats, "nats", false, "Publish schemas on nats ($NATS_ADDRESSES)")
		cmd.Flags().BoolVar(&o.etcd, "etcd", false, "Store schemas in etcd ($ETCD_ENDPOINTS)")
		cmd.Flags().BoolVar(&o.mongo, "mongo", false, "Upsert schemas into mongodb ($MONGO_URI)")
	}
}

func (s *state) converter(cmd *cobra.Command, o *outputOptions) *converter.Converter {
	validate := s.cfg.Validate
	if cmd.Flags().Changed("validate") {
		validate = o.validate
	}
	return converter.New(converter.WithMaxDepth(s.cfg.MaxDepth), converter.WithValidation(validate))
}

// sinks builds the requested destinations. Files are written unless only other
// destinations were asked for.
func (s *state) sinks(o *outputOptions, stdout io.Writer) ([]sink.Sink, *sink.ZipSink) {
	var (
		sinks []sink.Sink
		zip   *sink.ZipSink
	)
	if o.stdout {
		sinks = append(sinks, &sink.WriterSink{W: stdout})
	}
	if o.zip != "" {
		zip = &sink.ZipSink{}
		sinks = append(sinks, zip)
	}
	if o.redis {
		sinks = append(sinks, sink.RedisSink{Client: redisx.GetDefaultClient()})
	}
	if o.nats {
		sinks = append(sinks, sink.NatsSink{Conn: natsx.GetDefaultConn()})
	}
	if o.etcd {
		sinks = append(sinks, sink.EtcdSink{Client: etcdx.DefaultClient()})
	}
	if o.mongo {
		sinks = append(sinks, sink.MongoSink{Collection: mongox.DefaultCollection()})
	}
	if o.out != "" || len(sinks) == 0 {
		dir := o.out
		if dir == "" {
			dir = s.cfg.OutputDir
		}
		sinks = append(sinks, &sink.FileSink{Dir: dir})
	}
	return sinks, zip
}

func (s *state) convertAndWrite(ctx context.Context, cmd *cobra.Command, o *outputOptions, classes []*descriptor.ClassDescriptor) errx.Error {
	results, err := s.converter(cmd, o).ConvertAll(ctx, classes)
	if err != nil {
		return err
	}
	outputs := make([]sink.Output, len(results))
	for i, r := range results {
		outputs[i] = sink.Output{Name: r.Schema.Name, FullName: r.Schema.FullName(), Text: r.Text}
	}
	sinks, zip := s.sinks(o, cmd.OutOrStdout())
	if err = sink.WriteAll(ctx, sink.Multi(sinks...), outputs); err != nil {
		return err
	}
	if zip != nil {
		return zip.Save(o.zip)
	}
	return nil
}
