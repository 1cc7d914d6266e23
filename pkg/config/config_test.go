package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codefang-tech/lingua/pkg/config"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, config.DefaultAggregateMaxEntries, cfg.Aggregate.MaxEntries)
	assert.Equal(t, config.DefaultAggregateWorkers, cfg.Aggregate.Workers)
	assert.Equal(t, config.DefaultRegistryCataloguePath, cfg.Registry.CataloguePath)
	assert.Equal(t, config.DefaultLoggingLevel, cfg.Logging.Level)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	configContent := `
registry:
  catalogue_path: "/etc/lingua/languages.yml"

aggregate:
  max_entries: 5000
  workers: 4
  cache_dir: "/tmp/lingua-cache"

logging:
  level: "debug"
`

	tmpDir := t.TempDir()

	tmpFile, err := os.CreateTemp(tmpDir, "test-config-*.yaml")
	require.NoError(t, err)

	_, writeErr := tmpFile.WriteString(configContent)
	require.NoError(t, writeErr)

	require.NoError(t, tmpFile.Close())

	cfg, loadErr := config.LoadConfig(tmpFile.Name())
	require.NoError(t, loadErr)

	assert.Equal(t, "/etc/lingua/languages.yml", cfg.Registry.CataloguePath)
	assert.Equal(t, 5000, cfg.Aggregate.MaxEntries)
	assert.Equal(t, 4, cfg.Aggregate.Workers)
	assert.Equal(t, "/tmp/lingua-cache", cfg.Aggregate.CacheDir)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadConfigInvalidMaxEntries(t *testing.T) {
	t.Parallel()

	configContent := `
aggregate:
  max_entries: 0
`

	tmpDir := t.TempDir()

	tmpFile, err := os.CreateTemp(tmpDir, "test-config-*.yaml")
	require.NoError(t, err)

	_, writeErr := tmpFile.WriteString(configContent)
	require.NoError(t, writeErr)

	require.NoError(t, tmpFile.Close())

	cfg, loadErr := config.LoadConfig(tmpFile.Name())
	require.Error(t, loadErr)
	assert.Nil(t, cfg)
}
