package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportLogSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	j := newTestJournal(t, repo)
	clock := &fixedClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	j.now = clock.Now

	_, err := j.CheckNewDay()
	require.NoError(t, err)
	_, err = j.AddEntry(500, 40, true)
	require.NoError(t, err)
	clock.Advance(24 * time.Hour)
	_, err = j.CheckNewDay()
	require.NoError(t, err)
	require.NoError(t, j.SetGoals(1800, 120))

	dir := t.TempDir()
	now := time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC)
	path, err := ExportLog(j, dir, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "daybook-log-2026-03-11.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var payload LogExport
	require.NoError(t, json.Unmarshal(data, &payload))
	require.Len(t, payload.Archive["2026-03-10"], 1)
	assert.Equal(t, 500, payload.Archive["2026-03-10"][0].Cal)
	assert.Equal(t, 1800, payload.Goals.CalGoal)
	assert.Equal(t, 1, payload.Stats.TotalDays)
	assert.Equal(t, 1, payload.Stats.WorkoutDays)
	assert.True(t, payload.ExportDate.Equal(now))
}

func TestExportCombosSnapshot(t *testing.T) {
	repo := newTestRepo(t)
	tracker := newTestTracker(t, repo, []string{"A", "B"})

	_, err := tracker.ToggleComplete("A-B")
	require.NoError(t, err)
	require.NoError(t, tracker.AddTime("A-B", 10))
	require.NoError(t, tracker.AddTime("A-B", 8))
	require.NoError(t, tracker.AddTime("B-A", 12))

	dir := t.TempDir()
	now := time.Date(2026, 3, 11, 10, 30, 0, 0, time.UTC)
	path, err := ExportCombos(tracker, dir, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "daybook-combos-2026-03-11.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var payload ComboExport
	require.NoError(t, json.Unmarshal(data, &payload))
	assert.Equal(t, "1.0", payload.Version)
	assert.Len(t, payload.Combos, 2)
	assert.Equal(t, 2, payload.Stats.TotalCombos)
	assert.Equal(t, 1, payload.Stats.Completed)
	assert.Equal(t, 3, payload.Stats.TotalAttempts)
	assert.InDelta(t, 30.0, payload.Stats.TotalTrainingTime, 1e-9)
}
