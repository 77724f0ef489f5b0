package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRuntime(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		values, err := LoadRuntime("")
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("flat file", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "env.yaml")
		require.NoError(t, os.WriteFile(p, []byte("VITE_API_URL: https://api.example.com\nVITE_BLOG_API_URL: ''\n"), 0o600))

		values, err := LoadRuntime(p)
		require.NoError(t, err)
		assert.Equal(t, "https://api.example.com", values["VITE_API_URL"])
		assert.Equal(t, "", values["VITE_BLOG_API_URL"])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadRuntime(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("not a map", func(t *testing.T) {
		p := filepath.Join(t.TempDir(), "env.yaml")
		require.NoError(t, os.WriteFile(p, []byte("- a\n- b\n"), 0o600))
		_, err := LoadRuntime(p)
		assert.Error(t, err)
	})
}
