package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Len(t, cfg.Languages, 4)
	assert.Equal(t, "enwiki", cfg.Languages[0].Project())
	assert.Equal(t, 10, cfg.Depth)
	assert.Equal(t, 180*time.Second, cfg.PetScanTimeout.Std())
	assert.NoError(t, cfg.validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
languages:
  - code: en
    name: English
    category: Non-binary_people
depth: 3
petscan_timeout: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, cfg.Languages, 1)
	assert.Equal(t, 3, cfg.Depth)
	assert.Equal(t, 30*time.Second, cfg.PetScanTimeout.Std())
	// untouched fields keep their defaults
	assert.Equal(t, Default().SPARQLEndpoint, cfg.SPARQLEndpoint)
	assert.Equal(t, Default().SPARQLTimeout, cfg.SPARQLTimeout)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	t.Run("language without category", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("languages:\n  - code: en\n    name: English\n"), 0644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "category")
	})

	t.Run("bad duration", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("petscan_timeout: soon\n"), 0644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "invalid duration")
	})

	t.Run("negative depth", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("depth: -1\n"), 0644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "depth")
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("languages: [\n"), 0644))
		_, err := Load(path)
		assert.Error(t, err)
	})
}
