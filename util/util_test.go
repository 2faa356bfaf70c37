package util

import (
	"archive/zip"
	"bytes"
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQualifiedName(t *testing.T) {
	cases := []struct {
		pkgPath string
		name    string
		want    string
	}{
		{"github.com/acme/orders", "OrderDto", "github.com.acme.orders.OrderDto"},
		{"github.com/acme/order-svc/v2", "Item", "github.com.acme.order_svc.v2.Item"},
		{"example.com/1st", "A", "example.com._1st.A"},
		{"", "Local", "Local"},
	}
	for _, c := range cases {
		t.Run(c.want, func(t *testing.T) {
			assert.Equal(t, c.want, QualifiedName(c.pkgPath, c.name))
		})
	}
}

func TestFieldName(t *testing.T) {
	type sample struct {
		A string `avro:"a_avro" json:"a_json"`
		B string `json:"b,omitempty"`
		C string `json:"-"`
		D string `json:",omitempty"`
	}
	typ := reflect.TypeOf(sample{})
	get := func(i int) (string, bool) {
		f := typ.Field(i)
		return FieldName(f.Name, f.Tag, TagAvro, TagJson)
	}

	name, ok := get(0)
	assert.True(t, ok)
	assert.Equal(t, "a_avro", name)

	name, _ = get(1)
	assert.Equal(t, "b", name)

	_, ok = get(2)
	assert.False(t, ok)

	name, _ = get(3)
	assert.Equal(t, "D", name)
}

func TestDataFiles(t *testing.T) {
	files := []DataFile{
		{Dir: "schemas", Name: "OrderAvroDto.avsc", Data: []byte(`"string"`)},
		{Dir: "./", Name: "top.avsc", Data: []byte(`"long"`)},
	}

	t.Run("zip", func(t *testing.T) {
		data, err := ZipFilesBytes(files)
		require.NoError(t, err)
		r, e := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		require.NoError(t, e)
		require.Len(t, r.File, 2)
		assert.Equal(t, "schemas/OrderAvroDto.avsc", r.File[0].Name)
		assert.Equal(t, "top.avsc", r.File[1].Name)
	})

	t.Run("write", func(t *testing.T) {
		root := t.TempDir()
		target, err := WriteFile(root, files[0])
		require.NoError(t, err)
		data, e := os.ReadFile(target)
		require.NoError(t, e)
		assert.Equal(t, `"string"`, string(data))
	})
}

func TestLazyMap(t *testing.T) {
	var m LazyMap[string, int]
	calls := 0
	initialize := func() int { calls++; return 7 }

	v, loaded := m.LoadOrLazyStore("k", initialize)
	assert.False(t, loaded)
	assert.Equal(t, 7, v)

	v, loaded = m.LoadOrLazyStore("k", initialize)
	assert.True(t, loaded)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)

	_, ok := m.Load("missing")
	assert.False(t, ok)
}
