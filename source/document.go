package source

import (
	"os"

	"github.com/sirupsen/logrus"
	d "github.com/tencent-go/avrogen/descriptor"
	"github.com/tencent-go/avrogen/errx"
	"gopkg.in/yaml.v3"
)

// DocumentSpec is the YAML or JSON form of a descriptor document.
type DocumentSpec struct {
	Classes []ClassSpec `yaml:"classes" json:"classes"`
	Enums   []EnumSpec  `yaml:"enums" json:"enums"`
}

type ClassSpec struct {
	Name          string      `yaml:"name" json:"name"`
	QualifiedName string      `yaml:"qualifiedName" json:"qualifiedName"`
	Fields        []FieldSpec `yaml:"fields" json:"fields"`
}

type FieldSpec struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

type EnumSpec struct {
	Name          string   `yaml:"name" json:"name"`
	QualifiedName string   `yaml:"qualifiedName" json:"qualifiedName"`
	Symbols       []string `yaml:"symbols" json:"symbols"`
}

// Document is a parsed descriptor document. Classes referencing each other share pointers.
type Document struct {
	classes []*d.ClassDescriptor
	types   map[string]d.TypeDescriptor
}

func LoadDocument(path string) (*Document, errx.Error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errx.IO.WithMsgf("read %s", path).WithCause(err).Err()
	}
	return ParseDocument(data)
}

func ParseDocument(data []byte) (*Document, errx.Error) {
	var spec DocumentSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, errx.Validation.WithMsg("malformed descriptor document").WithCause(err).Err()
	}
	return NewDocument(spec)
}

func NewDocument(spec DocumentSpec) (*Document, errx.Error) {
	doc := &Document{types: map[string]d.TypeDescriptor{}}
	ambiguous := map[string]bool{}
	register := func(name, qualifiedName string, t d.TypeDescriptor) errx.Error {
		if name == "" {
			return errx.Validation.WithMsgf("type %q has no name", qualifiedName).Err()
		}
		if qualifiedName != "" {
			if _, ok := doc.types[qualifiedName]; ok {
				return errx.Validation.WithMsgf("type %s declared twice", qualifiedName).Err()
			}
			doc.types[qualifiedName] = t
		}
		if _, ok := doc.types[name]; ok || ambiguous[name] {
			if qualifiedName == "" {
				return errx.Validation.WithMsgf("type %s declared twice", name).Err()
			}
			delete(doc.types, name)
			ambiguous[name] = true
			return nil
		}
		doc.types[name] = t
		return nil
	}

	for _, e := range spec.Enums {
		t := d.Enum{Name: e.Name, QualifiedName: e.QualifiedName, Symbols: e.Symbols}
		if err := register(e.Name, e.QualifiedName, t); err != nil {
			return nil, err
		}
	}
	for _, c := range spec.Classes {
		class := &d.ClassDescriptor{Name: c.Name, QualifiedName: c.QualifiedName}
		if err := register(c.Name, c.QualifiedName, d.Class{Class: class}); err != nil {
			return nil, err
		}
		doc.classes = append(doc.classes, class)
	}

	find := func(name string) (d.TypeDescriptor, bool) {
		t, ok := doc.types[name]
		if !ok && ambiguous[name] {
			logrus.WithField("type", name).Warn("ambiguous simple type name, use the qualified name")
		}
		return t, ok
	}
	for i, c := range spec.Classes {
		class := doc.classes[i]
		class.Fields = make([]d.FieldDescriptor, len(c.Fields))
		for j, f := range c.Fields {
			ref, err := parseTypeExpr(f.Type)
			if err != nil {
				return nil, errx.Wrap(err).AppendMsgf("field %s.%s", c.Name, f.Name).Err()
			}
			class.Fields[j] = d.FieldDescriptor{Name: f.Name, Type: ref.descriptor(find)}
		}
	}
	return doc, nil
}

// Class finds a class by qualified or simple name.
func (doc *Document) Class(name string) (*d.ClassDescriptor, errx.Error) {
	if t, ok := doc.types[name].(d.Class); ok {
		return t.Class, nil
	}
	return nil, errx.NotFound.WithMsgf("class %s not found in document", name).Err()
}

// Classes lists every class in document order.
func (doc *Document) Classes() []*d.ClassDescriptor {
	return doc.classes
}

// Roots lists the classes accepted by policy in document order.
func (doc *Document) Roots(policy Policy) []*d.ClassDescriptor {
	var roots []*d.ClassDescriptor
	for _, class := range doc.classes {
		if policy.Accepts(class.Name) {
			roots = append(roots, class)
		}
	}
	return roots
}
