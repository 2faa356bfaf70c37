package source

import (
	"context"
	"go/types"
	"reflect"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	d "github.com/tencent-go/avrogen/descriptor"
	"github.com/tencent-go/avrogen/errx"
	"github.com/tencent-go/avrogen/util"
	"golang.org/x/tools/go/packages"
)

const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Packages is a set of type-checked Go packages.
type Packages struct {
	pkgs   []*packages.Package
	mapper *typeMapper
}

// LoadPackages loads the packages matching patterns, resolved relative to dir.
func LoadPackages(ctx context.Context, dir string, patterns ...string) (*Packages, errx.Error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     dir,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errx.IO.WithMsg("failed to load packages").WithCause(err).Err()
	}
	var msgs []string
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			msgs = append(msgs, e.Error())
		}
	})
	if len(msgs) > 0 {
		return nil, errx.Validation.WithMsgf("package errors: %s", strings.Join(msgs, "; ")).Err()
	}
	if len(pkgs) == 0 {
		return nil, errx.NotFound.WithMsgf("no packages match %v", patterns).Err()
	}
	logrus.WithField("patterns", patterns).Debugf("loaded %d packages", len(pkgs))
	return &Packages{pkgs: pkgs, mapper: newTypeMapper()}, nil
}

// Classes lists the exported named struct types accepted by policy, sorted by qualified name.
func (p *Packages) Classes(policy Policy) []*d.ClassDescriptor {
	var classes []*d.ClassDescriptor
	for _, pkg := range p.pkgs {
		scope := pkg.Types.Scope()
		for _, name := range scope.Names() {
			named, ok := exportedStruct(scope.Lookup(name))
			if !ok || !policy.Accepts(name) {
				continue
			}
			classes = append(classes, p.mapper.class(named))
		}
	}
	sort.Slice(classes, func(i, j int) bool {
		return classes[i].QualifiedName < classes[j].QualifiedName
	})
	return classes
}

// Class finds an exported struct by simple or qualified name.
func (p *Packages) Class(name string) (*d.ClassDescriptor, errx.Error) {
	for _, pkg := range p.pkgs {
		simple := name
		if prefix := util.Namespace(pkg.PkgPath) + "."; strings.HasPrefix(name, prefix) {
			simple = strings.TrimPrefix(name, prefix)
		}
		if named, ok := exportedStruct(pkg.Types.Scope().Lookup(simple)); ok {
			return p.mapper.class(named), nil
		}
	}
	return nil, errx.NotFound.WithMsgf("type %s not found", name).Err()
}

func exportedStruct(obj types.Object) (*types.Named, bool) {
	tn, ok := obj.(*types.TypeName)
	if !ok || !tn.Exported() || tn.IsAlias() {
		return nil, false
	}
	named, ok := tn.Type().(*types.Named)
	if !ok || named.TypeParams().Len() > 0 {
		return nil, false
	}
	_, ok = named.Underlying().(*types.Struct)
	return named, ok
}

// FromNamed describes a named struct type of a type-checked package.
func FromNamed(named *types.Named) (*d.ClassDescriptor, errx.Error) {
	if _, ok := named.Underlying().(*types.Struct); !ok {
		return nil, errx.Validation.WithMsgf("%s is not a struct", named).Err()
	}
	return newTypeMapper().class(named), nil
}

// typeMapper caches classes by type name. describing holds the named non-struct
// types being described, so a type like `type Tree map[string]Tree` ends as Unresolved.
type typeMapper struct {
	classes    map[*types.TypeName]*d.ClassDescriptor
	describing map[*types.TypeName]bool
}

func newTypeMapper() *typeMapper {
	return &typeMapper{
		classes:    map[*types.TypeName]*d.ClassDescriptor{},
		describing: map[*types.TypeName]bool{},
	}
}

var basicKinds = map[types.BasicKind]d.Kind{
	types.Bool:    d.KindBool,
	types.Int8:    d.KindByte,
	types.Uint8:   d.KindByte,
	types.Int16:   d.KindShort,
	types.Uint16:  d.KindShort,
	types.Int:     d.KindInt,
	types.Int32:   d.KindInt,
	types.Uint:    d.KindInt,
	types.Uint32:  d.KindInt,
	types.Int64:   d.KindLong,
	types.Uint64:  d.KindLong,
	types.Float32: d.KindFloat,
	types.Float64: d.KindDouble,
}

func (m *typeMapper) class(named *types.Named) *d.ClassDescriptor {
	obj := named.Obj()
	if class, ok := m.classes[obj]; ok {
		return class
	}
	class := &d.ClassDescriptor{
		Name:          obj.Name(),
		QualifiedName: qualifiedName(obj),
	}
	m.classes[obj] = class
	class.Fields = m.fields(named.Underlying().(*types.Struct), nil, map[types.Type]bool{named: true})
	return class
}

// fields flattens embedded structs. A struct embedded again inside its own
// flattening is kept as a regular field.
func (m *typeMapper) fields(st *types.Struct, fields []d.FieldDescriptor, flattening map[types.Type]bool) []d.FieldDescriptor {
	for i := 0; i < st.NumFields(); i++ {
		v := st.Field(i)
		name, ok := util.FieldName(v.Name(), reflect.StructTag(st.Tag(i)), util.TagAvro, util.TagJson)
		if !ok {
			continue
		}
		if v.Embedded() && name == v.Name() {
			typ := types.Unalias(v.Type())
			if ptr, ok := typ.(*types.Pointer); ok {
				typ = types.Unalias(ptr.Elem())
			}
			if embedded, ok := typ.Underlying().(*types.Struct); ok && !isSpecialNamed(typ) && !flattening[typ] {
				flattening[typ] = true
				fields = m.fields(embedded, fields, flattening)
				delete(flattening, typ)
				continue
			}
		}
		if !v.Exported() {
			continue
		}
		fields = append(fields, d.FieldDescriptor{Name: name, Type: m.describe(v.Type())})
	}
	return fields
}

func isSpecialNamed(t types.Type) bool {
	switch namedPath(t) {
	case "time.Time", "github.com/shopspring/decimal.Decimal":
		return true
	}
	return false
}

// namedPath is "pkg/path.Name" for named types and "" otherwise.
func namedPath(t types.Type) string {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok || named.Obj().Pkg() == nil {
		return ""
	}
	return named.Obj().Pkg().Path() + "." + named.Obj().Name()
}

func (m *typeMapper) describe(t types.Type) d.TypeDescriptor {
	t = types.Unalias(t)
	switch namedPath(t) {
	case "time.Time":
		return d.Temporal{Kind: d.TemporalLocalDateTime}
	case "time.Duration":
		return d.Primitive{Kind: d.KindLong}
	case "github.com/shopspring/decimal.Decimal":
		return d.String{}
	}

	switch v := t.(type) {
	case *types.Basic:
		return describeBasic(v)
	case *types.Named:
		if e, ok := enumOf(v); ok {
			return e
		}
		if _, ok := v.Underlying().(*types.Struct); ok && v.TypeParams().Len() == 0 {
			return d.Class{Class: m.class(v)}
		}
		obj := v.Obj()
		if m.describing[obj] {
			return d.Unresolved{Name: qualifiedName(obj)}
		}
		m.describing[obj] = true
		defer delete(m.describing, obj)
		return m.describe(v.Underlying())
	case *types.Pointer:
		elem := m.describe(v.Elem())
		if p, ok := elem.(d.Primitive); ok {
			return d.Boxed{Kind: p.Kind}
		}
		return elem
	case *types.Slice:
		if b, ok := types.Unalias(v.Elem()).(*types.Basic); ok && b.Kind() == types.Uint8 {
			return d.Array{Elem: d.Primitive{Kind: d.KindByte}}
		}
		return d.Collection{Name: "slice", Params: []d.TypeDescriptor{m.describe(v.Elem())}}
	case *types.Array:
		return d.Array{Elem: m.describe(v.Elem())}
	case *types.Map:
		return d.Collection{Name: "map", Params: []d.TypeDescriptor{m.describe(v.Key()), m.describe(v.Elem())}}
	}
	return d.Unresolved{Name: t.String()}
}

func describeBasic(b *types.Basic) d.TypeDescriptor {
	if b.Name() == "rune" {
		return d.Primitive{Kind: d.KindChar}
	}
	if b.Info()&types.IsString != 0 {
		return d.String{}
	}
	if kind, ok := basicKinds[b.Kind()]; ok {
		return d.Primitive{Kind: kind}
	}
	return d.Unresolved{Name: b.Name()}
}

// enumOf treats a named basic type with package-level constants of that type as an enum.
// Symbols are the constant names in source order.
func enumOf(named *types.Named) (d.TypeDescriptor, bool) {
	if _, ok := named.Underlying().(*types.Basic); !ok {
		return nil, false
	}
	obj := named.Obj()
	if obj.Pkg() == nil {
		return nil, false
	}
	scope := obj.Pkg().Scope()
	var consts []*types.Const
	for _, name := range scope.Names() {
		c, ok := scope.Lookup(name).(*types.Const)
		if ok && types.Identical(c.Type(), named) {
			consts = append(consts, c)
		}
	}
	if len(consts) == 0 {
		return nil, false
	}
	sort.SliceStable(consts, func(i, j int) bool {
		return consts[i].Pos() < consts[j].Pos()
	})
	symbols := make([]string, len(consts))
	for i, c := range consts {
		symbols[i] = c.Name()
	}
	return d.Enum{Name: obj.Name(), QualifiedName: qualifiedName(obj), Symbols: symbols}, true
}

func qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return util.QualifiedName(obj.Pkg().Path(), obj.Name())
}
