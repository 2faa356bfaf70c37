// Package converter turns class descriptors into Avro record schemas.
package converter

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/avro"
	"github.com/tencent-go/avrogen/descriptor"
	"github.com/tencent-go/avrogen/errx"
	"golang.org/x/sync/errgroup"
)

const DefaultMaxDepth = 64

// Converter is immutable after New and safe for concurrent use.
type Converter struct {
	maxDepth int
	validate bool
	logger   logrus.FieldLogger
}

type Option func(*Converter)

// WithMaxDepth bounds how deeply records may nest. Values below 1 keep the default.
func WithMaxDepth(depth int) Option {
	return func(c *Converter) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *Converter) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithValidation parses every produced schema text before returning it.
func WithValidation(enabled bool) Option {
	return func(c *Converter) {
		c.validate = enabled
	}
}

func New(opts ...Option) *Converter {
	c := &Converter{
		maxDepth: DefaultMaxDepth,
		logger:   logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Converter) MaxDepth() int {
	return c.maxDepth
}

// Convert builds the record schema of class and renders it as schema text.
func (c *Converter) Convert(class *descriptor.ClassDescriptor) ([]byte, errx.Error) {
	record, err := c.Build(class)
	if err != nil {
		return nil, err
	}
	return c.render(record)
}

func (c *Converter) render(record *avro.Record) ([]byte, errx.Error) {
	text, err := avro.Marshal(record)
	if err != nil {
		return nil, err
	}
	if c.validate {
		if err = avro.Validate(text); err != nil {
			return nil, errx.Wrap(err).AppendMsgf("schema of %s", record.FullName()).Err()
		}
	}
	c.logger.WithField("schema", record.FullName()).Debug("converted class to avro schema")
	return text, nil
}

type Result struct {
	Class  *descriptor.ClassDescriptor
	Schema *avro.Record
	Text   []byte
}

// ConvertAll converts classes concurrently. Results keep the order of classes.
// The first failure cancels the remaining conversions.
func (c *Converter) ConvertAll(ctx context.Context, classes []*descriptor.ClassDescriptor) ([]Result, errx.Error) {
	results := make([]Result, len(classes))
	g, ctx := errgroup.WithContext(ctx)
	for i, class := range classes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			record, err := c.Build(class)
			if err != nil {
				return err
			}
			text, err := c.render(record)
			if err != nil {
				return err
			}
			results[i] = Result{Class: class, Schema: record, Text: text}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errx.Wrap(err).Err()
	}
	return results, nil
}
