package converter

import (
	"github.com/tencent-go/avrogen/avro"
	"github.com/tencent-go/avrogen/descriptor"
	"github.com/tencent-go/avrogen/errx"
)

var kindSchemas = map[descriptor.Kind]avro.Schema{
	descriptor.KindBool:   avro.Boolean,
	descriptor.KindByte:   avro.Bytes,
	descriptor.KindShort:  avro.Long,
	descriptor.KindInt:    avro.Long,
	descriptor.KindLong:   avro.Long,
	descriptor.KindFloat:  avro.Float,
	descriptor.KindDouble: avro.Double,
	descriptor.KindChar:   avro.String,
}

// Resolve maps a single field type. Types without a mapping become string.
func (c *Converter) Resolve(t descriptor.TypeDescriptor) (avro.Schema, errx.Error) {
	w := &walker{Converter: c, onPath: map[string]bool{}}
	return w.resolve(t)
}

func (w *walker) resolve(t descriptor.TypeDescriptor) (avro.Schema, errx.Error) {
	switch v := t.(type) {
	case descriptor.Primitive:
		if s, ok := kindSchemas[v.Kind]; ok {
			return s, nil
		}
	case descriptor.Boxed:
		if s, ok := kindSchemas[v.Kind]; ok {
			return s, nil
		}
	case descriptor.String:
		return avro.String, nil
	case descriptor.Temporal:
		if v.Kind == descriptor.TemporalLocalDateTime {
			return avro.LogicalLong{LogicalType: avro.LogicalLocalTimestampMillis}, nil
		}
	case descriptor.Enum:
		return avro.Enum{Name: v.Name, Namespace: v.QualifiedName, Symbols: v.Symbols}, nil
	case descriptor.Array:
		items, err := w.resolve(v.Elem)
		if err != nil {
			return nil, err
		}
		return avro.Array{Items: items}, nil
	case descriptor.Collection:
		if len(v.Params) == 1 {
			items, err := w.resolve(v.Params[0])
			if err != nil {
				return nil, err
			}
			return avro.Array{Items: items}, nil
		}
	case descriptor.Class:
		if v.Class != nil {
			return w.record(v.Class)
		}
	}
	// Every type not mapped above ends here, including nil, Unresolved, a class
	// reference without a class and collections with other than one parameter.
	w.logger.WithField("type", descriptor.Render(t)).Debug("no avro mapping, falling back to string")
	return avro.String, nil
}
