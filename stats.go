package main

import (
	"math"
	"time"
)

// Totals sums each metric over entries.
func Totals(entries []Entry) (cal, protein int) {
	for _, e := range entries {
		cal += e.Cal
		protein += e.Protein
	}
	return cal, protein
}

// MetricSummary is a single-pass reduction over one metric's values.
type MetricSummary struct {
	Sum   int
	Avg   float64
	Min   int
	Max   int
	Count int
}

func summarizeMetric(values []int) MetricSummary {
	s := MetricSummary{Count: len(values)}
	if len(values) == 0 {
		return s
	}
	s.Min = values[0]
	s.Max = values[0]
	for _, v := range values {
		s.Sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Avg = float64(s.Sum) / float64(s.Count)
	return s
}

// DailyTotals reduces one day's entries per metric.
func DailyTotals(entries []Entry) (cal, protein MetricSummary) {
	cals := make([]int, len(entries))
	proteins := make([]int, len(entries))
	for i, e := range entries {
		cals[i] = e.Cal
		proteins[i] = e.Protein
	}
	return summarizeMetric(cals), summarizeMetric(proteins)
}

func hasWorkout(entries []Entry) bool {
	for _, e := range entries {
		if e.Workout {
			return true
		}
	}
	return false
}

// NewDayStats summarizes one day's entries against the goals.
func NewDayStats(date string, entries []Entry, settings Settings) DayStats {
	cal, protein := Totals(entries)
	return DayStats{
		Date:           date,
		Cal:            cal,
		Protein:        protein,
		Entries:        len(entries),
		Workout:        hasWorkout(entries),
		CalGoalMet:     cal >= settings.CalGoal,
		ProteinGoalMet: protein >= settings.ProteinGoal,
	}
}

// NewArchiveStats computes all-time aggregates over the archive.
// Averages are per-day arithmetic means, rounded; zero when the archive
// is empty.
func NewArchiveStats(archive Archive) ArchiveStats {
	stats := ArchiveStats{TotalDays: len(archive)}

	var totalCal, totalProtein int
	for _, entries := range archive {
		cal, protein := Totals(entries)
		totalCal += cal
		totalProtein += protein
		if hasWorkout(entries) {
			stats.WorkoutDays++
		}
	}

	if stats.TotalDays > 0 {
		stats.AvgCal = int(math.Round(float64(totalCal) / float64(stats.TotalDays)))
		stats.AvgProtein = int(math.Round(float64(totalProtein) / float64(stats.TotalDays)))
	}

	return stats
}

// Streak counts consecutive days with at least one entry, walking back
// from today. Today counts through either the live log or an archived
// bucket; an empty today ends the streak at zero.
func Streak(archive Archive, liveEntries int, today time.Time) int {
	streak := 0
	day := today
	for {
		key := dayKey(day)
		filled := len(archive[key]) > 0
		if key == dayKey(today) && liveEntries > 0 {
			filled = true
		}
		if !filled {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// Day filters.

func isThisWeek(key string, today time.Time) bool {
	// Day keys sort lexicographically, so the inclusive window
	// [today-7d, today] is a plain string range.
	return key >= dayKey(today.AddDate(0, 0, -7)) && key <= dayKey(today)
}

func isThisMonth(key string, today time.Time) bool {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return false
	}
	return t.Month() == today.Month() && t.Year() == today.Year()
}

// FilterDays returns the day keys matching the named filter. Unknown
// filter names pass everything through, like the reference behavior.
func FilterDays(archive Archive, keys []string, filter string, today time.Time) []string {
	var out []string
	for _, key := range keys {
		switch filter {
		case "week":
			if !isThisWeek(key, today) {
				continue
			}
		case "month":
			if !isThisMonth(key, today) {
				continue
			}
		case "workout":
			if !hasWorkout(archive[key]) {
				continue
			}
		}
		out = append(out, key)
	}
	return out
}

// NewComboStats computes the attempt-time summary for one combo.
// Improvement is the percentage change from the first recorded attempt to
// the most recent one.
func NewComboStats(times []float64) ComboStats {
	stats := ComboStats{Count: len(times)}
	if len(times) == 0 {
		return stats
	}

	stats.Fastest = times[0]
	stats.Slowest = times[0]
	var sum float64
	for _, t := range times {
		if t < stats.Fastest {
			stats.Fastest = t
		}
		if t > stats.Slowest {
			stats.Slowest = t
		}
		sum += t
	}
	stats.Avg = sum / float64(len(times))

	if len(times) >= 2 {
		first := times[0]
		last := times[len(times)-1]
		stats.Improvement = (first - last) / first * 100
		stats.HasTrend = true
	}

	return stats
}

// CompletionPercent is the rounded share of completed combos, zero when
// there are none.
func CompletionPercent(combos []Combo) int {
	if len(combos) == 0 {
		return 0
	}
	completed := 0
	for _, c := range combos {
		if c.Completed {
			completed++
		}
	}
	return int(math.Round(float64(completed) / float64(len(combos)) * 100))
}
