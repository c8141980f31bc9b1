//go:build linux || darwin

package uibind_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/uibind"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreSnapshot(t *testing.T) {
	store := newStore(t, "TSN1_")
	require.NoError(t, store.Set(uibind.KeyAPI, "qt6"))
	require.NoError(t, store.Set(uibind.KeyScale, "1.25"))

	snap := store.Snapshot()
	assert.Equal(t, map[string]string{
		uibind.KeyAPI:   "qt6",
		uibind.KeyScale: "1.25",
	}, snap, "absent keys must not appear")
}

func TestStoreScan(t *testing.T) {
	store := newStore(t, "TSN2_")
	require.NoError(t, store.Set(uibind.KeyAPI, "gtk4"))
	require.NoError(t, store.Set(uibind.KeyFont, "Fira Sans"))
	require.NoError(t, store.Set(uibind.KeyFontSize, "large"))

	var settings uibind.Settings
	require.NoError(t, store.Scan(&settings))

	assert.Equal(t, uibind.Settings{
		API:      "gtk4",
		Font:     "Fira Sans",
		FontSize: "large",
	}, settings)
}

func TestStoreExportImport(t *testing.T) {
	t.Run("Round Trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")

		source := newStore(t, "TSX1_")
		require.NoError(t, source.Set(uibind.KeyAPI, "qt5"))
		require.NoError(t, source.Set(uibind.KeyScale, "2"))
		require.NoError(t, source.Set(uibind.KeyFont, "Fira Sans"))
		require.NoError(t, source.Export(path))

		target := newStore(t, "TSX2_")
		require.NoError(t, target.Import(path))

		assert.Equal(t, "qt5", target.Get(uibind.KeyAPI, "auto"))
		assert.Equal(t, "2", target.Get(uibind.KeyScale, "auto"))
		assert.Equal(t, "Fira Sans", target.Get(uibind.KeyFont, "default"))
		_, ok := target.Lookup(uibind.KeyFontSize)
		assert.False(t, ok)
	})

	t.Run("Unknown Keys Are Skipped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		content := "api = \"qt6\"\ntheme = \"dark\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		store := newStore(t, "TSX3_")
		require.NoError(t, store.Import(path))

		assert.Equal(t, "qt6", store.Get(uibind.KeyAPI, "auto"))
	})

	t.Run("Non String Values Are Rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "settings.toml")
		require.NoError(t, os.WriteFile(path, []byte("scale = 1.5\n"), 0o644))

		store := newStore(t, "TSX4_")
		err := store.Import(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be a string")
	})

	t.Run("Missing File Is An Error", func(t *testing.T) {
		store := newStore(t, "TSX5_")
		assert.Error(t, store.Import(filepath.Join(t.TempDir(), "absent.toml")))
	})
}
