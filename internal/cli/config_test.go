package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config")

	v, err := loadConfig(dir)
	require.NoError(t, err)

	// First load creates the directory and a default config.yaml.
	_, err = os.Stat(filepath.Join(dir, configFileExt))
	require.NoError(t, err)
	assert.Equal(t, defaultLogLevel, v.GetString(cfgKeyLogLevel))
	assert.Empty(t, v.GetString(cfgKeyDataDir))
}

func TestLoadConfigReadsValues(t *testing.T) {
	dir := t.TempDir()
	content := "log_level: debug\ndata_dir: /srv/satchel\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileExt), []byte(content), 0o644))

	v, err := loadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", v.GetString(cfgKeyLogLevel))
	assert.Equal(t, "/srv/satchel", v.GetString(cfgKeyDataDir))
}

func TestWriteConfigIfMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), configFileExt)

	require.NoError(t, writeConfigIfMissing(path, "/data/satchel"))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "data_dir: /data/satchel")

	// A second call leaves the existing file untouched.
	require.NoError(t, os.WriteFile(path, []byte("log_level: warn\n"), 0o644))
	require.NoError(t, writeConfigIfMissing(path, "/other"))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "log_level: warn\n", string(data))
}
