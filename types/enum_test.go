package types

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type color string

const (
	red   color = "RED"
	green color = "GREEN"
	blue  color = "BLUE"
)

func (color) Enum() Enum {
	return RegisterEnum(red, green, blue)
}

type level int

func (l level) String() string {
	return [...]string{"LOW", "HIGH"}[l]
}

func (level) Enum() Enum {
	return RegisterEnum(level(0), level(1))
}

func TestRegisterEnum(t *testing.T) {
	t.Run("declaration order", func(t *testing.T) {
		e, ok := EnumOf(reflect.TypeOf(red))
		require.True(t, ok)
		var symbols []string
		for _, item := range e.Items() {
			symbols = append(symbols, item.Symbol())
		}
		assert.Equal(t, []string{"RED", "GREEN", "BLUE"}, symbols)
		assert.True(t, e.Contains(green))
		assert.False(t, e.Contains("GREEN"))
	})

	t.Run("stringer symbols", func(t *testing.T) {
		e, ok := EnumOf(reflect.TypeOf(level(0)))
		require.True(t, ok)
		assert.Equal(t, "HIGH", e.Items()[1].Symbol())
	})

	t.Run("not an enum", func(t *testing.T) {
		_, ok := EnumOf(reflect.TypeOf(""))
		assert.False(t, ok)
	})

	t.Run("empty registration panics", func(t *testing.T) {
		assert.Panics(t, func() { RegisterEnum[string]() })
	})
}
