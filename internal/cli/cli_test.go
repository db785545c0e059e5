package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"task-tracker-api/internal/config"
	"task-tracker-api/internal/manager"
	"task-tracker-api/internal/models"
	"task-tracker-api/internal/snapshot"

	"github.com/stretchr/testify/require"
)

func seedCSV(t *testing.T, path string) {
	t.Helper()
	m := manager.NewFileBackedTaskManager(snapshot.NewCSVFile(path))
	start := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	_, err := m.AddTask(models.NewTask("Write report", "q1, q2").Scheduled(start, time.Hour))
	require.NoError(t, err)
	epic, err := m.AddEpic(models.NewEpic("Release", ""))
	require.NoError(t, err)
	_, err = m.AddSubtask(models.NewSubtask("Build", "", epic.ID).Scheduled(start.Add(2*time.Hour), 30*time.Minute))
	require.NoError(t, err)
}

func TestParseTarget(t *testing.T) {
	backend, path, err := parseTarget("sqlite:data/tasks.db")
	require.NoError(t, err)
	require.Equal(t, config.BackendSQLite, backend)
	require.Equal(t, "data/tasks.db", path)

	for _, bad := range []string{"tasks.csv", "csv:", "memory:x", "json:tasks.json"} {
		_, _, err := parseTarget(bad)
		require.Error(t, err, bad)
	}
}

func TestConvert_CSVToSQLiteAndBack(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "tasks.csv")
	dbPath := filepath.Join(dir, "tasks.db")
	exportPath := filepath.Join(dir, "export.csv")
	seedCSV(t, csvPath)

	n, err := convert("csv:"+csvPath, "sqlite:"+dbPath)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	n, err = convert("sqlite:"+dbPath, "csv:"+exportPath)
	require.NoError(t, err)
	require.Equal(t, 3, n)

	source, err := snapshot.NewCSVFile(csvPath).Load()
	require.NoError(t, err)
	exported, err := snapshot.NewCSVFile(exportPath).Load()
	require.NoError(t, err)
	require.Equal(t, len(source.Tasks), len(exported.Tasks))
	require.Equal(t, source.Subtasks[0].EpicID, exported.Subtasks[0].EpicID)
	require.True(t, source.Tasks[0].StartTime.Equal(*exported.Tasks[0].StartTime))
	require.Equal(t, "q1, q2", exported.Tasks[0].Description)
}

func TestConvert_MissingSource(t *testing.T) {
	dir := t.TempDir()
	_, err := convert("csv:"+filepath.Join(dir, "missing.csv"), "csv:"+filepath.Join(dir, "out.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildManager(t *testing.T) {
	m, closeStore, err := buildManager(config.StorageConfig{Backend: config.BackendMemory})
	require.NoError(t, err)
	closeStore()
	require.Empty(t, m.GetAllTasks())

	csvPath := filepath.Join(t.TempDir(), "tasks.csv")
	seedCSV(t, csvPath)
	m, closeStore, err = buildManager(config.StorageConfig{Backend: config.BackendCSV, Path: csvPath})
	require.NoError(t, err)
	defer closeStore()
	require.Len(t, m.GetAllTasks(), 1)
	require.Len(t, m.GetAllSubtasks(), 1)

	// ids continue after the restored maximum
	created, err := m.AddTask(models.NewTask("next", ""))
	require.NoError(t, err)
	require.Equal(t, 4, created.ID)

	_, _, err = buildManager(config.StorageConfig{Backend: "postgres", Path: "x"})
	require.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.yaml")
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"config", "init", path})
	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, config.DefaultConfig(), cfg)
}
