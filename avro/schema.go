// Package avro holds the schema tree produced by the converter and its JSON text form.
package avro

import "regexp"

// Schema is one node of an Avro schema tree.
type Schema interface {
	schema()
}

// Primitive type names.
const (
	TypeNull    = "null"
	TypeBoolean = "boolean"
	TypeInt     = "int"
	TypeLong    = "long"
	TypeFloat   = "float"
	TypeDouble  = "double"
	TypeBytes   = "bytes"
	TypeString  = "string"
)

const LogicalLocalTimestampMillis = "local-timestamp-millis"

var (
	Boolean = Primitive{Type: TypeBoolean}
	Long    = Primitive{Type: TypeLong}
	Float   = Primitive{Type: TypeFloat}
	Double  = Primitive{Type: TypeDouble}
	Bytes   = Primitive{Type: TypeBytes}
	String  = Primitive{Type: TypeString}
)

// Primitive is written as its bare type name.
type Primitive struct {
	Type string
}

// LogicalLong is a long annotated with a logical type.
type LogicalLong struct {
	LogicalType string
}

type Enum struct {
	Name      string
	Namespace string
	Symbols   []string
}

type Array struct {
	Items Schema
}

// Record fields are required and kept in declaration order.
type Record struct {
	Name      string
	Namespace string
	Fields    []Field
}

type Field struct {
	Name   string
	Schema Schema
}

func (Primitive) schema()   {}
func (LogicalLong) schema() {}
func (Enum) schema()        {}
func (Array) schema()       {}
func (*Record) schema()     {}

func (e Enum) FullName() string {
	return fullName(e.Namespace, e.Name)
}

func (r *Record) FullName() string {
	return fullName(r.Namespace, r.Name)
}

// Field returns the field called name.
func (r *Record) Field(name string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

func fullName(namespace, name string) string {
	if namespace == "" {
		return name
	}
	return namespace + "." + name
}

var nameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// IsName reports whether s is a valid name component or enum symbol.
func IsName(s string) bool {
	return nameRe.MatchString(s)
}
