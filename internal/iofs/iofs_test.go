package iofs_test

import (
	"os"
	"testing"

	"github.com/placenames/pndb/internal/iofs"
	"github.com/placenames/pndb/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(tempHome))

	dirs := []string{
		config.ConfigDir(tempHome),
		config.CacheDir(tempHome),
		config.LogDir(tempHome),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	// second call is a no-op
	assert.NoError(t, iofs.EnsureDirs(tempHome))
}

func TestEnsureConfigFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(tempHome))
	require.NoError(t, iofs.EnsureConfigFile(tempHome))

	path := config.ConfigFilePath(tempHome)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, iofs.ConfigYAML, string(data))

	// an existing config file is never overwritten
	custom := []byte("database:\n  host: custom\n")
	require.NoError(t, os.WriteFile(path, custom, 0644))
	require.NoError(t, iofs.EnsureConfigFile(tempHome))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, custom, data)
}

func TestValidateConfigFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that uses file system in short mode")
	}

	tempHome := t.TempDir()
	require.NoError(t, iofs.EnsureDirs(tempHome))
	require.NoError(t, iofs.EnsureConfigFile(tempHome))

	t.Run("embedded config is valid", func(t *testing.T) {
		assert.NoError(t, iofs.ValidateConfigFile(tempHome))
	})

	t.Run("broken YAML is rejected", func(t *testing.T) {
		path := config.ConfigFilePath(tempHome)
		broken := []byte("database:\n  host: [unclosed\n")
		require.NoError(t, os.WriteFile(path, broken, 0644))
		assert.Error(t, iofs.ValidateConfigFile(tempHome))
	})
}
