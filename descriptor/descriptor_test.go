package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	assert.Equal(t, []Kind{
		KindBool, KindByte, KindShort, KindInt, KindLong, KindFloat, KindDouble, KindChar,
	}, Kinds())
	assert.Equal(t, "Integer", KindInt.BoxedName())
	assert.Equal(t, "Character", KindChar.BoxedName())
}

func TestRender(t *testing.T) {
	order := &ClassDescriptor{Name: "OrderDto", QualifiedName: "com.x.OrderDto"}
	cases := []struct {
		name string
		typ  TypeDescriptor
		want string
	}{
		{"nil", nil, "<unresolved>"},
		{"primitive", Primitive{Kind: KindBool}, "boolean"},
		{"boxed", Boxed{Kind: KindLong}, "Long"},
		{"string", String{}, "String"},
		{"temporal", Temporal{Kind: TemporalLocalDateTime}, "LocalDateTime"},
		{"enum", Enum{Name: "Status", QualifiedName: "com.x.Status"}, "com.x.Status"},
		{"array", Array{Elem: Primitive{Kind: KindInt}}, "int[]"},
		{"list", Collection{Name: "List", Params: []TypeDescriptor{String{}}}, "List<String>"},
		{"map", Collection{Name: "Map", Params: []TypeDescriptor{String{}, Boxed{Kind: KindInt}}}, "Map<String,Integer>"},
		{"raw list", Collection{}, "List"},
		{"class", Class{Class: order}, "com.x.OrderDto"},
		{"unresolved", Unresolved{Name: "chan int"}, "chan int"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Render(c.typ))
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "com.x.A", (&ClassDescriptor{Name: "A", QualifiedName: "com.x.A"}).Key())
	assert.Equal(t, "A", (&ClassDescriptor{Name: "A"}).Key())
}
