package adapter

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "jsprobe.dev/pkg/jsprobe/internal/model"
)

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	path := filepath.Join(t.TempDir(), "f.js")
	content := "function f(x) { return x; }"
	writeTestFile(t, path, content)

	file, err := adapter.ReadFile(context.Background(), m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, content, file.Content)
	assert.Equal(t, fmt.Sprintf("%x", sha256.Sum256([]byte(content))), file.Hash)

	_, err = adapter.ReadFile(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing.js")))
	require.Error(t, err)
}

func TestLocalSourceFSAdapter_ReadInputs(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	t.Run("mapping with inputs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "inputs.yaml")
		writeTestFile(t, path, "inputs:\n  - args: [5]\n  - [-1]\n  - expr: \"f(0)\"\n")

		inputs, err := adapter.ReadInputs(context.Background(), m.Path(path))
		require.NoError(t, err)
		require.Len(t, inputs, 3)
		assert.Equal(t, []any{5}, inputs[0].Args)
		assert.Equal(t, []any{-1}, inputs[1].Args)
		assert.Equal(t, "f(0)", inputs[2].Expr)
	})

	t.Run("bare list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "inputs.yaml")
		writeTestFile(t, path, "- [1, 2]\n- [3, 4]\n")

		inputs, err := adapter.ReadInputs(context.Background(), m.Path(path))
		require.NoError(t, err)
		assert.Len(t, inputs, 2)
	})

	t.Run("empty document", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "inputs.yaml")
		writeTestFile(t, path, "")

		inputs, err := adapter.ReadInputs(context.Background(), m.Path(path))
		require.NoError(t, err)
		assert.Empty(t, inputs)
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "inputs.yaml")
		writeTestFile(t, path, "inputs: [\n")

		_, err := adapter.ReadInputs(context.Background(), m.Path(path))
		require.Error(t, err)
	})
}

func TestLocalSourceFSAdapter_WriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	path := filepath.Join(t.TempDir(), "nested", "out.txt")

	require.NoError(t, adapter.WriteFile(context.Background(), m.Path(path), []byte("ok")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
}

func TestLocalSourceFSAdapter_CancelledContext(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := adapter.ReadFile(ctx, "whatever.js")
	require.ErrorIs(t, err, context.Canceled)
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
}
