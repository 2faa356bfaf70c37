package errx

import (
	"context"
	"errors"
	"fmt"
)

var (
	Validation  = Define().WithType(TypeValidation).WithMsg("validation failed")
	NotFound    = Define().WithType(TypeNotFound).WithMsg("not found")
	Cycle       = Define().WithType(TypeCycle).WithMsg("cyclic type graph")
	IO          = Define().WithType(TypeIO).WithMsg("io failure")
	Unavailable = Define().WithType(TypeUnavailable).WithMsg("service unavailable")
	Internal    = Define().WithMsg("internal error")

	// Conversion is the single failure surfaced to users of the converter front ends.
	Conversion = Define().WithMsg("unable to convert class to avro schema")
)

func Define() Builder {
	return rootError
}

var rootError = &impl{
	cause: errors.New(""),
	typ:   TypeInternal,
}

type emptyError struct{}

func (e *emptyError) WithMsg(s string) Builder { return rootError.WithMsg(s) }
func (e *emptyError) WithMsgf(format string, a ...any) Builder { return rootError.WithMsgf(format, a...) }
func (e *emptyError) AppendMsg(s string) Builder { return rootError.AppendMsg(s) }
func (e *emptyError) AppendMsgf(format string, a ...any) Builder { return rootError.AppendMsgf(format, a...) }
func (e *emptyError) WithCode(i int) Builder { return rootError.WithCode(i) }
func (e *emptyError) WithType(t Type) Builder { return rootError.WithType(t) }
func (e *emptyError) WithCause(err error) Builder { return rootError.WithCause(err) }
func (e *emptyError) Err() Error { return nil }

var empty = &emptyError{}

// Wrap adopts err into the errx world. Wrap(nil).Err() is nil.
func Wrap(err error) Builder {
	if err == nil {
		return empty
	}
	if i, ok := err.(*impl); ok {
		return i
	}
	if e, ok := err.(Error); ok {
		return &impl{
			cause: e,
			msg:   e.Error(),
			stack: e.Stack(),
			code:  e.Code(),
			typ:   e.Type(),
		}
	}
	t := TypeInternal
	if errors.Is(err, context.DeadlineExceeded) {
		t = TypeTimeout
	} else if errors.Is(err, context.Canceled) {
		t = TypeCanceled
	}
	return &impl{
		cause: err,
		typ:   t,
		msg:   err.Error(),
		stack: parseStack(fmt.Sprintf("%+v", err)),
	}
}

// TypeOf reports the errx type of err, TypeInternal for foreign errors.
func TypeOf(err error) Type {
	var e Error
	if errors.As(err, &e) {
		return e.Type()
	}
	return TypeInternal
}

func New(msg string) Error {
	return Define().WithMsg(msg).Err()
}

func Newf(format string, a ...any) Error {
	return Define().WithMsgf(format, a...).Err()
}
