package avro

import (
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tencent-go/avrogen/errx"
)

func orderRecord() *Record {
	status := Enum{Name: "Status", Namespace: "com.x.Status", Symbols: []string{"NEW", "PAID"}}
	return &Record{
		Name:      "OrderDto",
		Namespace: "com.x.OrderDto",
		Fields: []Field{
			{Name: "id", Schema: Long},
			{Name: "tags", Schema: Array{Items: String}},
			{Name: "created", Schema: LogicalLong{LogicalType: LogicalLocalTimestampMillis}},
			{Name: "status", Schema: status},
			{Name: "previous", Schema: status},
		},
	}
}

func TestMarshal(t *testing.T) {
	text, err := Marshal(orderRecord())
	require.NoError(t, err)

	t.Run("shape", func(t *testing.T) {
		assert.JSONEq(t, `{
			"type": "record",
			"name": "OrderDto",
			"namespace": "com.x.OrderDto",
			"fields": [
				{"name": "id", "type": "long"},
				{"name": "tags", "type": {"type": "array", "items": "string"}},
				{"name": "created", "type": {"type": "long", "logicalType": "local-timestamp-millis"}},
				{"name": "status", "type": {"type": "enum", "name": "Status", "namespace": "com.x.Status", "symbols": ["NEW", "PAID"]}},
				{"name": "previous", "type": "com.x.Status.Status"}
			]
		}`, string(text))
	})

	t.Run("key order", func(t *testing.T) {
		s := string(text)
		assert.True(t, strings.HasPrefix(s, "{\n  \"type\": \"record\""))
		assert.Less(t, strings.Index(s, `"name"`), strings.Index(s, `"namespace"`))
		assert.Less(t, strings.Index(s, `"namespace"`), strings.Index(s, `"fields"`))
		assert.Less(t, strings.Index(s, `"symbols"`), strings.LastIndex(s, `"previous"`))
	})

	t.Run("deterministic", func(t *testing.T) {
		again, err := Marshal(orderRecord())
		require.NoError(t, err)
		assert.Equal(t, text, again)
	})

	t.Run("passes validation", func(t *testing.T) {
		assert.NoError(t, Validate(text))
	})
}

func TestMarshalPrimitive(t *testing.T) {
	text, err := Marshal(String)
	require.NoError(t, err)
	assert.Equal(t, `"string"`, string(text))
}

func TestMarshalRecursiveRecord(t *testing.T) {
	node := &Record{Name: "Node", Namespace: "a"}
	node.Fields = []Field{{Name: "next", Schema: Array{Items: node}}}

	text, err := Marshal(node)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, jsoniter.Unmarshal(text, &decoded))
	fields := decoded["fields"].([]any)
	next := fields[0].(map[string]any)["type"].(map[string]any)
	assert.Equal(t, "a.Node", next["items"])
}

func TestMarshalEmptyEnum(t *testing.T) {
	text, err := Marshal(Enum{Name: "E"})
	require.NoError(t, err)
	assert.Contains(t, string(text), `"symbols": []`)
}

func TestMarshalNilRecord(t *testing.T) {
	var r *Record
	_, err := Marshal(r)
	require.Error(t, err)
	assert.Equal(t, errx.TypeValidation, err.Type())
}

func TestValidate(t *testing.T) {
	err := Validate([]byte(`{"type": "record", "name": "A", "fields": [{"name": "x", "type": "nope"}]}`))
	require.Error(t, err)
	assert.Equal(t, errx.TypeValidation, err.Type())

	canonical, err := CanonicalForm([]byte(`{"type": "record", "name": "A", "namespace": "n", "fields": [{"name": "x", "type": "long"}]}`))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"n.A","type":"record","fields":[{"name":"x","type":"long"}]}`, canonical)
}

func TestFullName(t *testing.T) {
	assert.Equal(t, "com.x.OrderDto.OrderDto", orderRecord().FullName())
	assert.Equal(t, "E", Enum{Name: "E"}.FullName())
	f, ok := orderRecord().Field("tags")
	assert.True(t, ok)
	assert.Equal(t, Array{Items: String}, f.Schema)
}

func TestMarshalRepeatedRecord(t *testing.T) {
	line := func() *Record {
		return &Record{Name: "Line", Namespace: "n", Fields: []Field{{Name: "qty", Schema: Long}}}
	}
	root := &Record{Name: "Order", Namespace: "n", Fields: []Field{
		{Name: "first", Schema: line()},
		{Name: "last", Schema: line()},
	}}
	text, err := Marshal(root)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, jsoniter.Unmarshal(text, &decoded))
	assert.Equal(t, "n.Line", decoded["fields"].([]any)[1].(map[string]any)["type"])
	assert.NoError(t, Validate(text))
}

func TestMarshalConflictingNames(t *testing.T) {
	root := &Record{Name: "Order", Namespace: "n", Fields: []Field{
		{Name: "a", Schema: &Record{Name: "Line", Namespace: "n", Fields: []Field{{Name: "qty", Schema: Long}}}},
		{Name: "b", Schema: &Record{Name: "Line", Namespace: "n", Fields: []Field{{Name: "sku", Schema: String}}}},
	}}
	_, err := Marshal(root)
	require.Error(t, err)
	assert.Equal(t, errx.TypeValidation, err.Type())
	assert.Contains(t, err.Error(), "n.Line")

	_, err = Marshal(&Record{Name: "Order", Namespace: "n", Fields: []Field{
		{Name: "a", Schema: Enum{Name: "S", Namespace: "n", Symbols: []string{"A"}}},
		{Name: "b", Schema: Enum{Name: "S", Namespace: "n", Symbols: []string{"B"}}},
	}})
	require.Error(t, err)
	assert.Equal(t, errx.TypeValidation, err.Type())
}

func TestMarshalInheritedNamespace(t *testing.T) {
	inner := &Record{Name: "Inner", Fields: []Field{{Name: "x", Schema: Long}}}
	status := Enum{Name: "Status", Symbols: []string{"ON"}}
	root := &Record{Name: "Outer", Namespace: "o", Fields: []Field{
		{Name: "inner", Schema: inner},
		{Name: "status", Schema: status},
		{Name: "other", Schema: &Record{Name: "Other", Namespace: "p", Fields: []Field{
			{Name: "inner", Schema: inner},
			{Name: "status", Schema: status},
		}}},
	}}
	text, err := Marshal(root)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, jsoniter.Unmarshal(text, &decoded))
	other := decoded["fields"].([]any)[2].(map[string]any)["type"].(map[string]any)
	otherFields := other["fields"].([]any)
	assert.Equal(t, "o.Inner", otherFields[0].(map[string]any)["type"])
	assert.Equal(t, "o.Status", otherFields[1].(map[string]any)["type"])
	assert.NoError(t, Validate(text))
}

func TestIsName(t *testing.T) {
	for _, s := range []string{"A", "_x", "NEW_ORDER", "v2"} {
		assert.True(t, IsName(s), s)
	}
	for _, s := range []string{"", "1", "local-date-time", "a.b", "2x"} {
		assert.False(t, IsName(s), s)
	}
}
