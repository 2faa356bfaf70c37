package types

import (
	"fmt"
	"reflect"

	"github.com/tencent-go/avrogen/util"
)

// IEnum is implemented by named types with a closed, ordered set of values.
// The method must work on the zero value.
type IEnum interface {
	Enum() Enum
}

type Enum interface {
	Items() []EnumElement
	Contains(val any) bool
}

type EnumElement struct {
	Value any `json:"value"`
}

// Symbol renders the element value, preferring its String method.
func (e EnumElement) Symbol() string {
	if s, ok := e.Value.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(e.Value)
}

type supportedTypes interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~string
}

type enumImpl struct {
	items  []EnumElement
	values map[any]struct{}
}

func (d *enumImpl) Items() []EnumElement {
	return d.items
}

func (d *enumImpl) Contains(val any) bool {
	_, ok := d.values[val]
	return ok
}

var store util.LazyMap[reflect.Type, *enumImpl]

// RegisterEnum records the values of T in declaration order. Later calls for the same
// type return the first registration.
func RegisterEnum[T supportedTypes](items ...T) Enum {
	if len(items) == 0 {
		panic("types.RegisterEnum: no items")
	}
	v, _ := store.LoadOrLazyStore(reflect.TypeOf(items[0]), func() *enumImpl {
		e := &enumImpl{
			items:  make([]EnumElement, len(items)),
			values: make(map[any]struct{}, len(items)),
		}
		for i, item := range items {
			e.items[i] = EnumElement{Value: item}
			e.values[item] = struct{}{}
		}
		return e
	})
	return v
}

var enumInterface = reflect.TypeOf((*IEnum)(nil)).Elem()

// EnumOf returns the registered values of typ when its value type implements IEnum.
func EnumOf(typ reflect.Type) (Enum, bool) {
	if typ.Kind() == reflect.Pointer || typ.Kind() == reflect.Interface || !typ.Implements(enumInterface) {
		return nil, false
	}
	e := reflect.New(typ).Elem().Interface().(IEnum).Enum()
	if e == nil || len(e.Items()) == 0 {
		return nil, false
	}
	return e, true
}
