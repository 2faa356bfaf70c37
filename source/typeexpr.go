package source

import (
	"strings"
	"unicode"

	d "github.com/tencent-go/avrogen/descriptor"
	"github.com/tencent-go/avrogen/errx"
)

var primitiveNames = map[string]d.Kind{
	"boolean": d.KindBool,
	"byte":    d.KindByte,
	"short":   d.KindShort,
	"int":     d.KindInt,
	"long":    d.KindLong,
	"float":   d.KindFloat,
	"double":  d.KindDouble,
	"char":    d.KindChar,
}

var boxedNames = map[string]d.Kind{}

func init() {
	for _, kind := range d.Kinds() {
		boxedNames[kind.BoxedName()] = kind
	}
}

var temporalNames = map[string]d.TemporalKind{
	"LocalDateTime": d.TemporalLocalDateTime,
	"LocalDate":     d.TemporalLocalDate,
	"LocalTime":     d.TemporalLocalTime,
	"Instant":       d.TemporalInstant,
}

var collectionNames = map[string]bool{
	"List":       true,
	"ArrayList":  true,
	"LinkedList": true,
	"Collection": true,
	"Set":        true,
	"HashSet":    true,
	"Map":        true,
	"HashMap":    true,
}

// typeRef is a parsed type expression such as "Map<String,List<Long>>[]".
type typeRef struct {
	Name   string
	Params []typeRef
	Dims   int
}

// lookup resolves class and enum names of the enclosing document.
type lookup func(name string) (d.TypeDescriptor, bool)

func (r typeRef) descriptor(find lookup) d.TypeDescriptor {
	t := r.element(find)
	for range r.Dims {
		t = d.Array{Elem: t}
	}
	return t
}

func (r typeRef) element(find lookup) d.TypeDescriptor {
	simple := r.Name[strings.LastIndex(r.Name, ".")+1:]
	if len(r.Params) == 0 {
		if t, ok := find(r.Name); ok {
			return t
		}
	}
	if kind, ok := primitiveNames[r.Name]; ok {
		return d.Primitive{Kind: kind}
	}
	if !isJavaName(r.Name) {
		return d.Unresolved{Name: r.String()}
	}
	switch {
	case boxedNames[simple] != "":
		return d.Boxed{Kind: boxedNames[simple]}
	case simple == "String":
		return d.String{}
	case temporalNames[simple] != "":
		return d.Temporal{Kind: temporalNames[simple]}
	case collectionNames[simple]:
		params := make([]d.TypeDescriptor, len(r.Params))
		for i, p := range r.Params {
			params[i] = p.descriptor(find)
		}
		return d.Collection{Name: simple, Params: params}
	}
	return d.Unresolved{Name: r.String()}
}

// isJavaName is true for bare names and names in the java.* packages.
func isJavaName(name string) bool {
	return !strings.Contains(name, ".") || strings.HasPrefix(name, "java.")
}

func (r typeRef) String() string {
	var b strings.Builder
	b.WriteString(r.Name)
	if len(r.Params) > 0 {
		b.WriteByte('<')
		for i, p := range r.Params {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(p.String())
		}
		b.WriteByte('>')
	}
	for range r.Dims {
		b.WriteString("[]")
	}
	return b.String()
}

type exprParser struct {
	src string
	pos int
}

func parseTypeExpr(src string) (typeRef, errx.Error) {
	p := &exprParser{src: src}
	ref, err := p.expr()
	if err != nil {
		return typeRef{}, err
	}
	p.skipSpace()
	if p.pos != len(p.src) {
		return typeRef{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return ref, nil
}

func (p *exprParser) expr() (typeRef, errx.Error) {
	var ref typeRef
	p.skipSpace()
	if p.peek() == '?' {
		p.pos++
		ref.Name = "?"
	} else {
		name, err := p.name()
		if err != nil {
			return ref, err
		}
		ref.Name = name
	}
	p.skipSpace()
	if p.peek() == '<' {
		p.pos++
		for {
			param, err := p.expr()
			if err != nil {
				return ref, err
			}
			ref.Params = append(ref.Params, param)
			p.skipSpace()
			c := p.peek()
			p.pos++
			if c == '>' {
				break
			}
			if c != ',' {
				return ref, p.errorf("expected ',' or '>'")
			}
		}
	}
	for {
		p.skipSpace()
		if !strings.HasPrefix(p.src[p.pos:], "[") {
			return ref, nil
		}
		p.pos++
		p.skipSpace()
		if p.peek() != ']' {
			return ref, p.errorf("expected ']'")
		}
		p.pos++
		ref.Dims++
	}
}

func (p *exprParser) name() (string, errx.Error) {
	start := p.pos
	for p.pos < len(p.src) {
		r := rune(p.src[p.pos])
		if r == '.' || r == '_' || r == '$' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			p.pos++
			continue
		}
		break
	}
	name := p.src[start:p.pos]
	if name == "" || strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return "", p.errorf("expected type name")
	}
	return name, nil
}

func (p *exprParser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *exprParser) skipSpace() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *exprParser) errorf(format string, a ...any) errx.Error {
	return errx.Validation.WithMsgf(format, a...).AppendMsgf("type expression %q at %d", p.src, p.pos).Err()
}
