package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: sqlite\n  path: tasks.db\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, BackendSQLite, cfg.Storage.Backend)
	require.Equal(t, "tasks.db", cfg.Storage.Path)
	require.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9000\n"), 0o644))
	t.Setenv("TRACKER_SERVER_PORT", "9100")
	t.Setenv("TRACKER_STORAGE_BACKEND", "csv")
	t.Setenv("TRACKER_STORAGE_PATH", "tasks.csv")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, BackendCSV, cfg.Storage.Backend)
	require.Equal(t, "tasks.csv", cfg.Storage.Path)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	t.Setenv("TRACKER_STORAGE_BACKEND", "postgres")
	_, err = Load("")
	require.ErrorContains(t, err, "unknown storage backend")
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Storage.Backend = BackendCSV
	require.ErrorContains(t, cfg.Validate(), "requires a path")

	cfg = DefaultConfig()
	cfg.Server.Port = 0
	require.Error(t, cfg.Validate())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tracker.yaml")
	cfg := DefaultConfig()
	cfg.Server.Port = 8181
	cfg.Storage = StorageConfig{Backend: BackendCSV, Path: "data/tasks.csv"}

	require.NoError(t, Save(path, cfg))
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)

	require.ErrorContains(t, Save(path, cfg), "already exists")
}
