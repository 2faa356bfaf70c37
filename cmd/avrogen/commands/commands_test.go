package commands

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tencent-go/avrogen/avro"
)

const document = `
enums:
  - {name: Status, qualifiedName: com.x.Status, symbols: [NEW, PAID]}
classes:
  - name: OrderDto
    qualifiedName: com.x.OrderDto
    fields:
      - {name: id, type: int}
      - {name: status, type: Status}
      - {name: items, type: List<String>}
  - name: Node
    qualifiedName: com.x.Node
    fields:
      - {name: next, type: Node}
`

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeDocument(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "orders.yaml")
	require.NoError(t, os.WriteFile(path, []byte(document), 0o644))
	return path
}

func TestDocCmd(t *testing.T) {
	path := writeDocument(t)

	t.Run("files", func(t *testing.T) {
		dir := t.TempDir()
		_, err := run(t, "doc", path, "--out", dir, "--validate")
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "OrderAvroDto.avsc"))
		require.NoError(t, err)
		assert.NoError(t, avro.Validate(data))
	})

	t.Run("stdout and zip", func(t *testing.T) {
		archive := filepath.Join(t.TempDir(), "schemas.zip")
		out, err := run(t, "doc", path, "--stdout", "--zip", archive)
		require.NoError(t, err)
		assert.Contains(t, out, `"name": "OrderDto"`)
		assert.FileExists(t, archive)
	})

	t.Run("cycle", func(t *testing.T) {
		_, err := run(t, "doc", path, "--class", "Node", "--stdout")
		require.Error(t, err)
		msg := Report(err)
		assert.Contains(t, msg, "unable to convert class to avro schema: ")
		assert.Contains(t, msg, "com.x.Node -> com.x.Node")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "doc", filepath.Join(t.TempDir(), "none.yaml"))
		require.Error(t, err)
	})
}

func TestGenCmd(t *testing.T) {
	out, err := run(t, "gen", "../../../source/testdata/orders", "--stdout", "--validate")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "OrderDto"`)
	assert.Contains(t, out, `"name": "LineDto"`)

	out, err = run(t, "gen", "../../../source/testdata/orders", "--type", "LineDto", "--stdout")
	require.NoError(t, err)
	assert.NotContains(t, out, `"name": "OrderDto"`)

	_, err = run(t, "gen", "../../../source/testdata/orders", "--type", "Node", "--stdout")
	require.Error(t, err)

	_, err = run(t, "gen", "--all", "--type", "X")
	require.Error(t, err)
}

func TestReport(t *testing.T) {
	assert.Equal(t, "unable to convert class to avro schema: boom", Report(errors.New("boom")))
}
