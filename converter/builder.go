package converter

import (
	"strings"

	"github.com/tencent-go/avrogen/avro"
	"github.com/tencent-go/avrogen/descriptor"
	"github.com/tencent-go/avrogen/errx"
)

// Build maps class to a record named after its simple name in the namespace of its
// qualified name. Fields are required and keep declaration order.
func (c *Converter) Build(class *descriptor.ClassDescriptor) (*avro.Record, errx.Error) {
	w := &walker{Converter: c, onPath: map[string]bool{}}
	return w.record(class)
}

// walker carries the classes on the current resolution path.
type walker struct {
	*Converter
	path   []string
	onPath map[string]bool
}

func (w *walker) record(class *descriptor.ClassDescriptor) (*avro.Record, errx.Error) {
	if class == nil {
		return nil, errx.Validation.WithMsg("class descriptor is nil").Err()
	}
	if class.Name == "" {
		return nil, errx.Validation.WithMsgf("class %q has no name", class.QualifiedName).Err()
	}
	key := class.Key()
	if w.onPath[key] {
		return nil, errx.Cycle.WithMsgf("cyclic type graph: %s", strings.Join(append(w.path, key), " -> ")).Err()
	}
	if len(w.path) >= w.maxDepth {
		return nil, errx.Cycle.WithMsgf("type graph deeper than %d at %s", w.maxDepth, key).Err()
	}

	w.path = append(w.path, key)
	w.onPath[key] = true
	defer func() {
		w.path = w.path[:len(w.path)-1]
		delete(w.onPath, key)
	}()

	record := &avro.Record{
		Name:      class.Name,
		Namespace: class.QualifiedName,
		Fields:    make([]avro.Field, 0, len(class.Fields)),
	}
	for i, field := range class.Fields {
		if field.Name == "" {
			return nil, errx.Validation.WithMsgf("field #%d of %s has no name", i, key).Err()
		}
		schema, err := w.resolve(field.Type)
		if err != nil {
			return nil, err
		}
		record.Fields = append(record.Fields, avro.Field{Name: field.Name, Schema: schema})
	}
	return record, nil
}
