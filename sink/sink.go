// Package sink delivers generated schema texts to files, archives and remote stores.
package sink

import (
	"context"
	"strings"

	"github.com/tencent-go/avrogen/errx"
)

// Output is one generated schema.
type Output struct {
	// Name is the simple class name.
	Name string
	// FullName is the Avro full name of the record.
	FullName string
	Text     []byte
}

type Sink interface {
	Write(ctx context.Context, o Output) errx.Error
}

const classSuffix = "Dto"

// FileName is the schema file name for a class: OrderDto becomes OrderAvroDto.avsc.
func FileName(className string) string {
	if base, ok := strings.CutSuffix(className, classSuffix); ok {
		return base + "Avro" + classSuffix + ".avsc"
	}
	return className + ".avsc"
}

// namespaceDir maps "com.x.OrderDto.OrderDto" to "com/x/OrderDto".
func namespaceDir(fullName string) string {
	i := strings.LastIndex(fullName, ".")
	if i < 0 {
		return ""
	}
	return strings.ReplaceAll(fullName[:i], ".", "/")
}

type multi []Sink

// Multi writes to every sink and returns the first error after all were attempted.
func Multi(sinks ...Sink) Sink {
	return multi(sinks)
}

func (m multi) Write(ctx context.Context, o Output) errx.Error {
	var first errx.Error
	for _, s := range m {
		if err := s.Write(ctx, o); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// WriteAll writes outputs in order and stops at the first failure.
func WriteAll(ctx context.Context, s Sink, outputs []Output) errx.Error {
	for _, o := range outputs {
		if err := s.Write(ctx, o); err != nil {
			return errx.Wrap(err).AppendMsgf("write %s", o.FullName).Err()
		}
	}
	return nil
}
