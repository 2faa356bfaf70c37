package source

import (
	"reflect"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/tencent-go/avrogen/avro"
	d "github.com/tencent-go/avrogen/descriptor"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/types"
	"github.com/tencent-go/avrogen/util"
)

var (
	timeType     = reflect.TypeOf(time.Time{})
	durationType = reflect.TypeOf(time.Duration(0))
	decimalType  = reflect.TypeOf(decimal.Decimal{})
)

var reflectKinds = map[reflect.Kind]d.Kind{
	reflect.Bool:    d.KindBool,
	reflect.Int8:    d.KindByte,
	reflect.Uint8:   d.KindByte,
	reflect.Int16:   d.KindShort,
	reflect.Uint16:  d.KindShort,
	reflect.Int:     d.KindInt,
	reflect.Int32:   d.KindInt,
	reflect.Uint:    d.KindInt,
	reflect.Uint32:  d.KindInt,
	reflect.Int64:   d.KindLong,
	reflect.Uint64:  d.KindLong,
	reflect.Float32: d.KindFloat,
	reflect.Float64: d.KindDouble,
}

// FromValue describes the struct type of v, which may be a pointer.
func FromValue(v any) (*d.ClassDescriptor, errx.Error) {
	if v == nil {
		return nil, errx.Validation.WithMsg("nil value").Err()
	}
	return FromType(reflect.TypeOf(v))
}

// FromType describes a named struct type. Types referring to themselves produce a cyclic descriptor.
//
// Enums registered through types.RegisterEnum use the Symbol of each item. When any
// symbol is not a valid Avro symbol, such as "local-date-time" or "1", the field is
// described as a string instead.
func FromType(typ reflect.Type) (*d.ClassDescriptor, errx.Error) {
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct || typ.Name() == "" {
		return nil, errx.Validation.WithMsgf("%s is not a named struct", typ).Err()
	}
	r := &reflector{
		classes:    map[reflect.Type]*d.ClassDescriptor{},
		describing: map[reflect.Type]bool{},
	}
	return r.class(typ), nil
}

// reflector caches classes by type. describing holds the named non-struct types
// being described, so a type like `type Tree map[string]Tree` ends as Unresolved.
type reflector struct {
	classes    map[reflect.Type]*d.ClassDescriptor
	describing map[reflect.Type]bool
}

func (r *reflector) class(typ reflect.Type) *d.ClassDescriptor {
	if class, ok := r.classes[typ]; ok {
		return class
	}
	class := &d.ClassDescriptor{
		Name:          typ.Name(),
		QualifiedName: util.QualifiedName(typ.PkgPath(), typ.Name()),
	}
	r.classes[typ] = class
	class.Fields = r.fields(typ, nil, map[reflect.Type]bool{typ: true})
	return class
}

// fields flattens embedded structs. A struct embedded again inside its own
// flattening is kept as a regular field.
func (r *reflector) fields(typ reflect.Type, fields []d.FieldDescriptor, flattening map[reflect.Type]bool) []d.FieldDescriptor {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		name, ok := util.FieldName(f.Name, f.Tag, util.TagAvro, util.TagJson)
		if !ok {
			continue
		}
		if f.Anonymous && name == f.Name {
			embedded := f.Type
			if embedded.Kind() == reflect.Pointer {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct && !isSpecial(embedded) && !flattening[embedded] {
				flattening[embedded] = true
				fields = r.fields(embedded, fields, flattening)
				delete(flattening, embedded)
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		fields = append(fields, d.FieldDescriptor{Name: name, Type: r.describe(f.Type)})
	}
	return fields
}

func isSpecial(typ reflect.Type) bool {
	return typ == timeType || typ == decimalType
}

func (r *reflector) describe(typ reflect.Type) d.TypeDescriptor {
	switch typ {
	case timeType:
		return d.Temporal{Kind: d.TemporalLocalDateTime}
	case durationType:
		return d.Primitive{Kind: d.KindLong}
	case decimalType:
		return d.String{}
	}
	if e, ok := types.EnumOf(typ); ok {
		symbols := make([]string, 0, len(e.Items()))
		for _, item := range e.Items() {
			if !avro.IsName(item.Symbol()) {
				logrus.WithField("type", typ.String()).Debugf("enum symbol %q is not an avro name, using string", item.Symbol())
				return d.String{}
			}
			symbols = append(symbols, item.Symbol())
		}
		return d.Enum{
			Name:          typ.Name(),
			QualifiedName: util.QualifiedName(typ.PkgPath(), typ.Name()),
			Symbols:       symbols,
		}
	}
	if kind, ok := reflectKinds[typ.Kind()]; ok {
		return d.Primitive{Kind: kind}
	}
	if typ.Name() != "" && typ.Kind() != reflect.Struct {
		if r.describing[typ] {
			return d.Unresolved{Name: typ.String()}
		}
		r.describing[typ] = true
		defer delete(r.describing, typ)
	}

	switch typ.Kind() {
	case reflect.String:
		return d.String{}
	case reflect.Pointer:
		elem := r.describe(typ.Elem())
		if p, ok := elem.(d.Primitive); ok {
			return d.Boxed{Kind: p.Kind}
		}
		return elem
	case reflect.Slice:
		if typ.Elem().Kind() == reflect.Uint8 {
			return d.Array{Elem: d.Primitive{Kind: d.KindByte}}
		}
		return d.Collection{Name: "slice", Params: []d.TypeDescriptor{r.describe(typ.Elem())}}
	case reflect.Array:
		return d.Array{Elem: r.describe(typ.Elem())}
	case reflect.Map:
		return d.Collection{Name: "map", Params: []d.TypeDescriptor{r.describe(typ.Key()), r.describe(typ.Elem())}}
	case reflect.Struct:
		if typ.Name() != "" {
			return d.Class{Class: r.class(typ)}
		}
	}
	return d.Unresolved{Name: typ.String()}
}
