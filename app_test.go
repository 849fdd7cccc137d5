package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	repo := newTestRepo(t)
	journal := newTestJournal(t, repo)
	tracker := newTestTracker(t, repo, []string{"A", "B", "C"})
	var buf bytes.Buffer
	return NewApp(journal, tracker, &buf), &buf
}

func TestAppStatusShowsTotals(t *testing.T) {
	app, buf := newTestApp(t)

	require.NoError(t, app.AddEntry(500, 40, false))
	require.NoError(t, app.AddEntry(300, 20, false))
	buf.Reset()

	require.NoError(t, app.Status())
	out := buf.String()
	assert.Contains(t, out, "Calories: 800 / 2000")
	assert.Contains(t, out, "Protein:  60g / 150g")
	assert.Contains(t, out, "Workout:  no")
}

func TestAppNetCaloriesInStatus(t *testing.T) {
	app, buf := newTestApp(t)

	require.NoError(t, app.SetBurn(400))
	require.NoError(t, app.AddEntry(1000, 50, false))
	buf.Reset()

	require.NoError(t, app.Status())
	assert.Contains(t, buf.String(), "Net:      600 (1000 - 400 burned)")
}

func TestAppDeleteMissingIsQuietNoOp(t *testing.T) {
	app, buf := newTestApp(t)

	require.NoError(t, app.DeleteEntry(5))
	assert.Contains(t, buf.String(), "No entry at that index.")
}

func TestAppValidationSurfacesToCaller(t *testing.T) {
	app, _ := newTestApp(t)

	err := app.AddEntry(-10, 0, false)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestAppListCombos(t *testing.T) {
	app, buf := newTestApp(t)

	require.NoError(t, app.ToggleCombo("A-B"))
	buf.Reset()

	require.NoError(t, app.ListCombos("all"))
	out := buf.String()
	assert.Contains(t, out, "Showing 6 of 6 combos, 17% completed")
	assert.Contains(t, out, "A-B")

	buf.Reset()
	require.NoError(t, app.ListCombos("completed"))
	assert.Contains(t, buf.String(), "Showing 1 of 6 combos")
}

func TestAppComboStatsOutput(t *testing.T) {
	app, buf := newTestApp(t)

	require.NoError(t, app.AddComboTime("A-B", 10))
	require.NoError(t, app.AddComboTime("A-B", 8))
	require.NoError(t, app.AddComboTime("A-B", 9))
	buf.Reset()

	require.NoError(t, app.ComboStats("A-B"))
	out := buf.String()
	assert.Contains(t, out, "Fastest: 8.0min | Slowest: 10.0min | Avg: 9.0min | Attempts: 3")
	assert.Contains(t, out, "+10.0%")
}

func TestAppLogEmptyArchive(t *testing.T) {
	app, buf := newTestApp(t)

	require.NoError(t, app.Log("all"))
	assert.Contains(t, buf.String(), "No archived days match this filter.")
}

func TestAppWorkoutToggle(t *testing.T) {
	app, buf := newTestApp(t)

	require.NoError(t, app.SetWorkout(""))
	assert.Contains(t, buf.String(), "Workout marked done")

	buf.Reset()
	require.NoError(t, app.SetWorkout(""))
	assert.Contains(t, buf.String(), "Workout unmarked")

	err := app.SetWorkout("maybe")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestAppResetAllRegeneratesCombos(t *testing.T) {
	app, buf := newTestApp(t)

	require.NoError(t, app.AddEntry(500, 40, false))
	require.NoError(t, app.ToggleCombo("A-B"))
	buf.Reset()

	require.NoError(t, app.ResetAll())

	assert.Empty(t, app.journal.Entries())
	combo, err := app.combos.Find("A-B")
	require.NoError(t, err)
	assert.False(t, combo.Completed)
}

func TestAppShowAndDeleteArchivedDay(t *testing.T) {
	app, buf := newTestApp(t)
	clock := &fixedClock{t: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	app.journal.now = clock.Now

	_, err := app.journal.CheckNewDay()
	require.NoError(t, err)
	require.NoError(t, app.AddEntry(500, 40, false))
	require.NoError(t, app.AddEntry(300, 20, false))
	clock.Advance(24 * time.Hour)
	_, err = app.journal.CheckNewDay()
	require.NoError(t, err)
	buf.Reset()

	require.NoError(t, app.ShowDay("2026-03-10"))
	out := buf.String()
	assert.Contains(t, out, "500")
	assert.Contains(t, out, "300")
	assert.Contains(t, out, "Total:")

	buf.Reset()
	require.NoError(t, app.DeleteArchived("2026-03-10", 0))
	assert.Contains(t, buf.String(), "Deleted from 2026-03-10: 500 cal")

	buf.Reset()
	require.NoError(t, app.DeleteArchived("2026-03-09", 0))
	assert.Contains(t, buf.String(), "No entry at that date and index.")

	buf.Reset()
	require.NoError(t, app.ShowDay("2026-03-09"))
	assert.Contains(t, buf.String(), "No entries for that day.")
}

func TestAppThemeShowAndSet(t *testing.T) {
	app, buf := newTestApp(t)

	require.NoError(t, app.Theme(""))
	assert.Contains(t, buf.String(), "Theme: light")

	buf.Reset()
	require.NoError(t, app.Theme("dark"))
	assert.Contains(t, buf.String(), "Theme set to dark")

	buf.Reset()
	require.NoError(t, app.Theme(""))
	assert.Contains(t, buf.String(), "Theme: dark")

	err := app.Theme("solarized")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestAppExportCombosWritesFile(t *testing.T) {
	app, buf := newTestApp(t)

	dir := t.TempDir()
	now := time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC)
	require.NoError(t, app.ExportCombos(dir, now))
	assert.Contains(t, buf.String(), "daybook-combos-2026-03-11.json")
}
