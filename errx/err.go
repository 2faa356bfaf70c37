package errx

import (
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
)

type Error interface {
	error
	fmt.Formatter
	Unwrap() error
	Cause() error
	Code() int
	Type() Type
	Stack() Stack
}

type Builder interface {
	WithMsg(string) Builder
	WithMsgf(format string, a ...any) Builder
	AppendMsg(string) Builder
	AppendMsgf(format string, a ...any) Builder
	WithCode(int) Builder
	WithType(Type) Builder
	WithCause(error) Builder
	Err() Error
}

type Type string

const (
	TypeInternal    Type = "internal"
	TypeValidation  Type = "validation"
	TypeNotFound    Type = "not_found"
	TypeCycle       Type = "cycle"
	TypeIO          Type = "io"
	TypeUnavailable Type = "unavailable"
	TypeTimeout     Type = "timeout"
	TypeCanceled    Type = "canceled"
)

type Frame struct {
	Name string `json:"name"`
	File string `json:"file"`
	Line int    `json:"line"`
}

type Stack []Frame

func (f Frame) Format(s fmt.State, verb rune) {
	switch verb {
	case 's':
		if s.Flag('+') {
			_, _ = io.WriteString(s, f.Name+"\n\t"+f.File)
			return
		}
		_, _ = io.WriteString(s, path.Base(f.File))
	case 'd':
		_, _ = io.WriteString(s, strconv.Itoa(f.Line))
	case 'n':
		_, _ = io.WriteString(s, shortFuncName(f.Name))
	case 'v':
		f.Format(s, 's')
		_, _ = io.WriteString(s, ":")
		f.Format(s, 'd')
	}
}

func shortFuncName(name string) string {
	name = name[strings.LastIndex(name, "/")+1:]
	return name[strings.Index(name, ".")+1:]
}

func (s Stack) Format(st fmt.State, verb rune) {
	if verb != 'v' || !st.Flag('+') {
		return
	}
	for _, f := range s {
		_, _ = fmt.Fprintf(st, "\n%+v", f)
	}
}
