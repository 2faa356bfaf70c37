// Package descriptor models the structural description of a data-transfer class:
// its name, namespace and ordered, typed fields.
package descriptor

import (
	"strings"

	"github.com/tencent-go/avrogen/types"
)

// ClassDescriptor describes a class and its fields in declaration order.
// Descriptors may share pointers; a class reachable from itself forms a cycle.
type ClassDescriptor struct {
	Name          string
	QualifiedName string
	Fields        []FieldDescriptor
}

type FieldDescriptor struct {
	Name string
	Type TypeDescriptor
}

// Key identifies the class within one conversion.
func (c *ClassDescriptor) Key() string {
	if c.QualifiedName != "" {
		return c.QualifiedName
	}
	return c.Name
}

func (c *ClassDescriptor) String() string {
	return c.Key()
}

// Kind is the width/meaning of a primitive or boxed primitive.
type Kind string

const (
	KindBool   Kind = "bool"
	KindByte   Kind = "byte"
	KindShort  Kind = "short"
	KindInt    Kind = "int"
	KindLong   Kind = "long"
	KindFloat  Kind = "float"
	KindDouble Kind = "double"
	KindChar   Kind = "char"
)

func (Kind) Enum() types.Enum {
	return types.RegisterEnum(KindBool, KindByte, KindShort, KindInt, KindLong, KindFloat, KindDouble, KindChar)
}

// Kinds lists every primitive kind in declaration order.
func Kinds() []Kind {
	items := KindBool.Enum().Items()
	kinds := make([]Kind, len(items))
	for i, item := range items {
		kinds[i] = item.Value.(Kind)
	}
	return kinds
}

var boxedNames = map[Kind]string{
	KindBool:   "Boolean",
	KindByte:   "Byte",
	KindShort:  "Short",
	KindInt:    "Integer",
	KindLong:   "Long",
	KindFloat:  "Float",
	KindDouble: "Double",
	KindChar:   "Character",
}

// BoxedName is the name of the nullable wrapper of k.
func (k Kind) BoxedName() string {
	return boxedNames[k]
}

func (k Kind) String() string {
	if k == KindBool {
		return "boolean"
	}
	return string(k)
}

type TemporalKind string

const (
	TemporalLocalDateTime TemporalKind = "local-date-time"
	TemporalLocalDate     TemporalKind = "local-date"
	TemporalLocalTime     TemporalKind = "local-time"
	TemporalInstant       TemporalKind = "instant"
)

func (TemporalKind) Enum() types.Enum {
	return types.RegisterEnum(TemporalLocalDateTime, TemporalLocalDate, TemporalLocalTime, TemporalInstant)
}

var temporalNames = map[TemporalKind]string{
	TemporalLocalDateTime: "LocalDateTime",
	TemporalLocalDate:     "LocalDate",
	TemporalLocalTime:     "LocalTime",
	TemporalInstant:       "Instant",
}

func (k TemporalKind) String() string {
	if name, ok := temporalNames[k]; ok {
		return name
	}
	return string(k)
}

func joinTypes(ts []TypeDescriptor) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = Render(t)
	}
	return strings.Join(parts, ",")
}
