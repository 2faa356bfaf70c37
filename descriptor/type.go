package descriptor

// TypeDescriptor is the closed set of field types a descriptor source can report.
// A nil TypeDescriptor means the source could not resolve the type.
type TypeDescriptor interface {
	String() string
	typeDescriptor()
}

// Primitive is a non-nullable value type.
type Primitive struct {
	Kind Kind
}

// Boxed is the nullable wrapper of a primitive.
type Boxed struct {
	Kind Kind
}

type String struct{}

type Temporal struct {
	Kind TemporalKind
}

// Enum lists its constants in declaration order.
type Enum struct {
	Name          string
	QualifiedName string
	Symbols       []string
}

// Array is a fixed component-type array.
type Array struct {
	Elem TypeDescriptor
}

// Collection is a list-like generic container. Only exactly one parameter is meaningful.
type Collection struct {
	Name   string
	Params []TypeDescriptor
}

// Class refers to another described class.
type Class struct {
	Class *ClassDescriptor
}

// Unresolved is a type the source saw but could not or would not describe.
type Unresolved struct {
	Name string
}

func (Primitive) typeDescriptor()  {}
func (Boxed) typeDescriptor()      {}
func (String) typeDescriptor()     {}
func (Temporal) typeDescriptor()   {}
func (Enum) typeDescriptor()       {}
func (Array) typeDescriptor()      {}
func (Collection) typeDescriptor() {}
func (Class) typeDescriptor()      {}
func (Unresolved) typeDescriptor() {}

func (t Primitive) String() string { return t.Kind.String() }
func (t Boxed) String() string     { return t.Kind.BoxedName() }
func (String) String() string      { return "String" }
func (t Temporal) String() string  { return t.Kind.String() }
func (t Enum) String() string      { return qualified(t.QualifiedName, t.Name) }
func (t Array) String() string     { return Render(t.Elem) + "[]" }

func (t Collection) String() string {
	name := t.Name
	if name == "" {
		name = "List"
	}
	if len(t.Params) == 0 {
		return name
	}
	return name + "<" + joinTypes(t.Params) + ">"
}

func (t Class) String() string {
	if t.Class == nil {
		return "<nil class>"
	}
	return t.Class.Key()
}

func (t Unresolved) String() string {
	if t.Name == "" {
		return "<unresolved>"
	}
	return t.Name
}

// Render is String that tolerates a nil descriptor.
func Render(t TypeDescriptor) string {
	if t == nil {
		return "<unresolved>"
	}
	return t.String()
}

func qualified(qualifiedName, name string) string {
	if qualifiedName != "" {
		return qualifiedName
	}
	return name
}
