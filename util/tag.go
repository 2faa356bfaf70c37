package util

import (
	"reflect"
	"strings"
)

type StructTag string

const (
	TagAvro StructTag = "avro"
	TagJson StructTag = "json"
	TagEnv  StructTag = "env"
)

// FieldName picks the serialized name of a struct field from the first present tag.
// The second result is false when the field is excluded with "-".
func FieldName(goName string, tag reflect.StructTag, keys ...StructTag) (string, bool) {
	for _, key := range keys {
		value, ok := tag.Lookup(string(key))
		if !ok {
			continue
		}
		name, _, _ := strings.Cut(value, ",")
		if name == "-" {
			return "", false
		}
		if name != "" {
			return name, true
		}
	}
	return goName, true
}
