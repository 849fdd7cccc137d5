package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func entriesWith(cal, protein int, workout bool) []Entry {
	return []Entry{{Time: time.Now(), Cal: cal, Protein: protein, Workout: workout}}
}

func TestStreakCountsBackFromToday(t *testing.T) {
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	archive := Archive{
		"2026-03-10": entriesWith(500, 40, false),
		"2026-03-09": entriesWith(400, 30, false),
		"2026-03-08": entriesWith(300, 20, false),
		// gap at 2026-03-07
		"2026-03-06": entriesWith(200, 10, false),
	}

	assert.Equal(t, 3, Streak(archive, 0, today))
}

func TestStreakTodayViaLiveEntries(t *testing.T) {
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	archive := Archive{
		"2026-03-09": entriesWith(400, 30, false),
	}

	assert.Equal(t, 2, Streak(archive, 1, today), "live entries fill today's bucket")
}

func TestStreakEmptyTodayBreaksStreak(t *testing.T) {
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	archive := Archive{
		"2026-03-09": entriesWith(400, 30, false),
		"2026-03-08": entriesWith(300, 20, false),
	}

	// current-day-inclusive: nothing recorded today means no streak
	assert.Equal(t, 0, Streak(archive, 0, today))
}

func TestStreakEmptyArchive(t *testing.T) {
	assert.Equal(t, 0, Streak(Archive{}, 0, time.Now()))
}

func TestDailyTotals(t *testing.T) {
	cal, protein := DailyTotals([]Entry{
		{Cal: 500, Protein: 40},
		{Cal: 300, Protein: 20},
		{Cal: 700, Protein: 10},
	})

	assert.Equal(t, MetricSummary{Sum: 1500, Avg: 500, Min: 300, Max: 700, Count: 3}, cal)
	assert.Equal(t, MetricSummary{Sum: 70, Avg: 70.0 / 3.0, Min: 10, Max: 40, Count: 3}, protein)
}

func TestDailyTotalsEmpty(t *testing.T) {
	cal, protein := DailyTotals(nil)
	assert.Zero(t, cal.Sum)
	assert.Zero(t, cal.Count)
	assert.Zero(t, protein.Avg)
}

func TestArchiveStats(t *testing.T) {
	archive := Archive{
		"2026-03-09": {
			{Cal: 1800, Protein: 100, Workout: true},
			{Cal: 200, Protein: 50},
		},
		"2026-03-08": {
			{Cal: 1500, Protein: 90},
		},
	}

	stats := NewArchiveStats(archive)
	assert.Equal(t, 2, stats.TotalDays)
	assert.Equal(t, 1, stats.WorkoutDays)
	assert.Equal(t, 1750, stats.AvgCal)
	assert.Equal(t, 120, stats.AvgProtein)
}

func TestArchiveStatsEmpty(t *testing.T) {
	stats := NewArchiveStats(Archive{})
	assert.Zero(t, stats.TotalDays)
	assert.Zero(t, stats.AvgCal)
	assert.Zero(t, stats.AvgProtein)
}

func TestDayStatsGoalFlags(t *testing.T) {
	settings := Settings{CalGoal: 2000, ProteinGoal: 150}

	day := NewDayStats("2026-03-09", []Entry{
		{Cal: 1200, Protein: 100},
		{Cal: 900, Protein: 60, Workout: true},
	}, settings)

	assert.Equal(t, 2100, day.Cal)
	assert.Equal(t, 160, day.Protein)
	assert.Equal(t, 2, day.Entries)
	assert.True(t, day.Workout)
	assert.True(t, day.CalGoalMet)
	assert.True(t, day.ProteinGoalMet)

	short := NewDayStats("2026-03-08", entriesWith(500, 40, false), settings)
	assert.False(t, short.CalGoalMet)
	assert.False(t, short.ProteinGoalMet)
}

func TestFilterDays(t *testing.T) {
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	archive := Archive{
		"2026-03-10": entriesWith(500, 40, false),
		"2026-03-04": entriesWith(400, 30, true),
		"2026-03-02": entriesWith(300, 20, false),
		"2026-02-27": entriesWith(200, 10, true),
	}
	keys := []string{"2026-03-10", "2026-03-04", "2026-03-02", "2026-02-27"}

	tests := []struct {
		filter string
		want   []string
	}{
		{filter: "all", want: keys},
		{filter: "week", want: []string{"2026-03-10", "2026-03-04"}},
		{filter: "month", want: []string{"2026-03-10", "2026-03-04", "2026-03-02"}},
		{filter: "workout", want: []string{"2026-03-04", "2026-02-27"}},
		{filter: "bogus", want: keys},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterDays(archive, keys, tt.filter, today))
		})
	}
}

func TestWeekFilterIsInclusive(t *testing.T) {
	today := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	assert.True(t, isThisWeek("2026-03-03", today), "seven days ago is inside the window")
	assert.True(t, isThisWeek("2026-03-10", today))
	assert.False(t, isThisWeek("2026-03-02", today))
	assert.False(t, isThisWeek("2026-03-11", today), "future days are outside")
}

func TestComboStatsScenario(t *testing.T) {
	stats := NewComboStats([]float64{10.0, 8.0, 9.0})

	assert.Equal(t, 8.0, stats.Fastest)
	assert.Equal(t, 10.0, stats.Slowest)
	assert.InDelta(t, 9.0, stats.Avg, 1e-9)
	assert.Equal(t, 3, stats.Count)
	assert.True(t, stats.HasTrend)
	// first (10.0) vs latest (9.0), not best vs worst
	assert.InDelta(t, 10.0, stats.Improvement, 1e-9)
}

func TestComboStatsFewAttempts(t *testing.T) {
	empty := NewComboStats(nil)
	assert.Zero(t, empty.Count)
	assert.False(t, empty.HasTrend)

	single := NewComboStats([]float64{7.5})
	assert.Equal(t, 1, single.Count)
	assert.Equal(t, 7.5, single.Fastest)
	assert.Equal(t, 7.5, single.Slowest)
	assert.False(t, single.HasTrend)
}

func TestCompletionPercent(t *testing.T) {
	assert.Equal(t, 0, CompletionPercent(nil))
	assert.Equal(t, 0, CompletionPercent([]Combo{}))

	combos := []Combo{
		{ID: "A-B", Completed: true},
		{ID: "B-A"},
		{ID: "A-C", Completed: true},
	}
	assert.Equal(t, 67, CompletionPercent(combos))
}
