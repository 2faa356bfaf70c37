package avro

import (
	"reflect"

	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/util"
)

type recordNode struct {
	Type      string      `json:"type"`
	Name      string      `json:"name"`
	Namespace string      `json:"namespace,omitempty"`
	Fields    []fieldNode `json:"fields"`
}

type fieldNode struct {
	Name string `json:"name"`
	Type any    `json:"type"`
}

type enumNode struct {
	Type      string   `json:"type"`
	Name      string   `json:"name"`
	Namespace string   `json:"namespace,omitempty"`
	Symbols   []string `json:"symbols"`
}

type arrayNode struct {
	Type  string `json:"type"`
	Items any    `json:"items"`
}

type logicalNode struct {
	Type        string `json:"type"`
	LogicalType string `json:"logicalType"`
}

// Marshal renders s as indented schema JSON. A record or enum already written earlier in
// the document is referenced by its full name. A record or enum without a namespace takes
// the namespace of the record it is written in.
func Marshal(s Schema) ([]byte, errx.Error) {
	e := &encoder{defined: map[string]Schema{}}
	node, err := e.node(s, "")
	if err != nil {
		return nil, err
	}
	return util.PrettyJson().Marshal(node)
}

// encoder keeps every named type written so far by its effective full name.
type encoder struct {
	defined map[string]Schema
}

func (e *encoder) node(s Schema, enclosing string) (any, errx.Error) {
	switch v := s.(type) {
	case Primitive:
		return v.Type, nil
	case LogicalLong:
		return logicalNode{Type: TypeLong, LogicalType: v.LogicalType}, nil
	case Enum:
		name := fullName(effectiveNamespace(v.Namespace, enclosing), v.Name)
		if seen, err := e.define(name, v); err != nil || seen {
			return name, err
		}
		symbols := v.Symbols
		if symbols == nil {
			symbols = []string{}
		}
		return enumNode{Type: "enum", Name: v.Name, Namespace: v.Namespace, Symbols: symbols}, nil
	case Array:
		items, err := e.node(v.Items, enclosing)
		if err != nil {
			return nil, err
		}
		return arrayNode{Type: "array", Items: items}, nil
	case *Record:
		if v == nil {
			return nil, errx.Validation.WithMsg("nil record schema").Err()
		}
		namespace := effectiveNamespace(v.Namespace, enclosing)
		name := fullName(namespace, v.Name)
		if seen, err := e.define(name, v); err != nil || seen {
			return name, err
		}
		n := recordNode{Type: "record", Name: v.Name, Namespace: v.Namespace, Fields: make([]fieldNode, 0, len(v.Fields))}
		for _, f := range v.Fields {
			t, err := e.node(f.Schema, namespace)
			if err != nil {
				return nil, errx.Wrap(err).AppendMsgf("field %s.%s", v.Name, f.Name).Err()
			}
			n.Fields = append(n.Fields, fieldNode{Name: f.Name, Type: t})
		}
		return n, nil
	default:
		return nil, errx.Validation.WithMsgf("unsupported schema node %T", s).Err()
	}
}

func effectiveNamespace(namespace, enclosing string) string {
	if namespace != "" {
		return namespace
	}
	return enclosing
}

// define records s under name and reports whether an equal schema was written before.
// A different schema under a name already written is an error.
func (e *encoder) define(name string, s Schema) (bool, errx.Error) {
	prev, ok := e.defined[name]
	if !ok {
		e.defined[name] = s
		return false, nil
	}
	if reflect.DeepEqual(prev, s) {
		return true, nil
	}
	return false, errx.Validation.WithMsgf("%s is defined twice with different schemas", name).Err()
}
