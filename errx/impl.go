package errx

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"runtime"
	"strconv"
	"strings"
)

type impl struct {
	cause error
	msg   string
	code  int
	stack Stack
	typ   Type
}

func (i *impl) Error() string {
	return i.msg
}

func (i *impl) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, i.msg)
			i.stack.Format(s, verb)
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, i.msg)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", i.msg)
	}
}

func (i *impl) Unwrap() error {
	return i.cause
}

func (i *impl) Cause() error {
	return errors.Unwrap(i)
}

func (i *impl) Code() int {
	return i.code
}

func (i *impl) Type() Type {
	return i.typ
}

func (i *impl) Stack() Stack {
	return i.stack
}

// derive keeps the receiver as cause so errors.Is matches predefined builders.
func (i *impl) derive(mutate func(c *impl)) *impl {
	c := &impl{
		cause: i,
		msg:   i.msg,
		code:  i.code,
		stack: i.stack,
		typ:   i.typ,
	}
	mutate(c)
	return c
}

func (i *impl) WithMsg(s string) Builder {
	return i.derive(func(c *impl) { c.msg = s })
}

func (i *impl) WithMsgf(format string, a ...any) Builder {
	return i.WithMsg(fmt.Sprintf(format, a...))
}

func (i *impl) AppendMsg(prefix string) Builder {
	return i.derive(func(c *impl) {
		if c.msg == "" {
			c.msg = prefix
		} else {
			c.msg = prefix + ": " + c.msg
		}
	})
}

func (i *impl) AppendMsgf(format string, a ...any) Builder {
	return i.AppendMsg(fmt.Sprintf(format, a...))
}

func (i *impl) WithCode(code int) Builder {
	return i.derive(func(c *impl) { c.code = code })
}

func (i *impl) WithType(t Type) Builder {
	return i.derive(func(c *impl) { c.typ = t })
}

// WithCause attaches err as the underlying cause and appends its message.
func (i *impl) WithCause(err error) Builder {
	if err == nil {
		return i
	}
	return i.derive(func(c *impl) {
		c.cause = &chain{head: i, tail: err}
		if c.msg == "" {
			c.msg = err.Error()
		} else {
			c.msg = c.msg + ": " + err.Error()
		}
		if e, ok := err.(Error); ok && c.stack == nil {
			c.stack = e.Stack()
		}
	})
}

func (i *impl) Err() Error {
	c := i.derive(func(*impl) {})
	if c.stack == nil {
		c.stack = callers()
	}
	return c
}

// chain lets errors.Is/As see both the builder an error was derived from and its cause.
type chain struct {
	head error
	tail error
}

func (c *chain) Error() string {
	return c.tail.Error()
}

func (c *chain) Unwrap() []error {
	return []error{c.head, c.tail}
}

var framePattern = regexp.MustCompile(`(?m)(?P<Name>.+)\n\t(?P<File>.+):(?P<Line>\d+)`)

func parseStack(stackStr string) Stack {
	var stack Stack
	for _, match := range framePattern.FindAllStringSubmatch(stackStr, -1) {
		line, _ := strconv.Atoi(match[3])
		stack = append(stack, Frame{Name: match[1], File: match[2], Line: line})
	}
	return stack
}

func callers() Stack {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])
	var stack Stack
	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, "avrogen/errx.") {
			stack = append(stack, Frame{
				Name: frame.Function,
				File: frame.File,
				Line: frame.Line,
			})
		}
		if !more {
			break
		}
	}
	return stack
}
