package compat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.hermetik.dev/hermetik/internal/adapters/compat"
	"go.hermetik.dev/hermetik/internal/core/domain"
)

func TestValidate_EmbeddedMatrix(t *testing.T) {
	t.Parallel()

	v, err := compat.Load("")
	require.NoError(t, err)
	assert.Equal(t, "wasm-tools", v.Base())

	t.Run("untested combination yields one warning", func(t *testing.T) {
		t.Parallel()

		warnings := v.Validate(map[string]string{
			"wasm-tools": "1.235.0",
			"wac":        "0.8.0",
		})
		require.Len(t, warnings, 1)
		assert.Equal(t, domain.CompatWarning{
			Artifact:    "wac",
			Version:     "0.8.0",
			BaseName:    "wasm-tools",
			BaseVersion: "1.235.0",
			Recommended: []string{"0.7.0"},
		}, warnings[0])
	})

	t.Run("tested combination passes", func(t *testing.T) {
		t.Parallel()

		warnings := v.Validate(map[string]string{
			"wasm-tools":  "1.235.0",
			"wac":         "0.7.0",
			"wit-bindgen": "0.43.0",
		})
		assert.Empty(t, warnings)
	})

	t.Run("artifact unknown to the matrix passes", func(t *testing.T) {
		t.Parallel()

		warnings := v.Validate(map[string]string{
			"wasm-tools": "1.235.0",
			"some-tool":  "9.9.9",
		})
		assert.Empty(t, warnings)
	})

	t.Run("base version without a row passes", func(t *testing.T) {
		t.Parallel()

		warnings := v.Validate(map[string]string{
			"wasm-tools": "0.1.0",
			"wac":        "0.8.0",
		})
		assert.Empty(t, warnings)
	})

	t.Run("selection without the base passes", func(t *testing.T) {
		t.Parallel()

		warnings := v.Validate(map[string]string{"wac": "0.8.0"})
		assert.Empty(t, warnings)
	})

	t.Run("warnings are sorted by artifact", func(t *testing.T) {
		t.Parallel()

		warnings := v.Validate(map[string]string{
			"wasm-tools": "1.235.0",
			"wkg":        "0.1.0",
			"wac":        "0.8.0",
		})
		require.Len(t, warnings, 2)
		assert.Equal(t, "wac", warnings[0].Artifact)
		assert.Equal(t, "wkg", warnings[1].Artifact)
	})
}

func TestLoad_Override(t *testing.T) {
	t.Parallel()

	t.Run("operator matrix replaces the embedded one", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		content := []byte("base: wkg\nrows:\n  \"0.11.0\":\n    wac: [\"0.8.0\"]\n")
		require.NoError(t, os.WriteFile(filepath.Join(dir, compat.OverrideFileName), content, 0o600))

		v, err := compat.Load(dir)
		require.NoError(t, err)
		assert.Equal(t, "wkg", v.Base())

		warnings := v.Validate(map[string]string{"wkg": "0.11.0", "wac": "0.7.0"})
		require.Len(t, warnings, 1)
		assert.Equal(t, []string{"0.8.0"}, warnings[0].Recommended)
	})

	t.Run("missing override falls back to embedded", func(t *testing.T) {
		t.Parallel()

		v, err := compat.Load(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "wasm-tools", v.Base())
	})

	t.Run("malformed override fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, compat.OverrideFileName), []byte(":\tnot yaml"), 0o600))

		_, err := compat.Load(dir)
		require.ErrorIs(t, err, domain.ErrMatrixLoad)
	})

	t.Run("missing base fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, compat.OverrideFileName), []byte("rows: {}\n"), 0o600))

		_, err := compat.Load(dir)
		require.ErrorIs(t, err, domain.ErrMatrixLoad)
	})

	t.Run("empty allowed set fails", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		content := []byte("base: wkg\nrows:\n  \"0.11.0\":\n    wac: []\n")
		require.NoError(t, os.WriteFile(filepath.Join(dir, compat.OverrideFileName), content, 0o600))

		_, err := compat.Load(dir)
		require.ErrorIs(t, err, domain.ErrMatrixLoad)
	})
}
