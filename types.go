package main

import "time"

type Entry struct {
	Time    time.Time `json:"time"`
	Cal     int       `json:"cal"`
	Protein int       `json:"protein"`
	Workout bool      `json:"workout"`
}

// Archive maps a day key (YYYY-MM-DD) to the entries recorded that day.
// Absent key means no activity on that day.
type Archive map[string][]Entry

type Settings struct {
	CalGoal     int `json:"calGoal"`
	ProteinGoal int `json:"proteinGoal"`
	DailyBurn   int `json:"dailyBurn"`
}

func DefaultSettings() Settings {
	return Settings{
		CalGoal:     2000,
		ProteinGoal: 150,
		DailyBurn:   0,
	}
}

type Preset struct {
	Name    string `json:"name"`
	Cal     int    `json:"cal"`
	Protein int    `json:"protein"`
}

type Combo struct {
	ID        string    `json:"id"`
	Station1  string    `json:"station1"`
	Station2  string    `json:"station2"`
	Completed bool      `json:"completed"`
	Times     []float64 `json:"times"`
	CreatedAt time.Time `json:"createdAt"`
}

// DayStats summarizes a single day's entries against the configured goals.
type DayStats struct {
	Date           string
	Cal            int
	Protein        int
	Entries        int
	Workout        bool
	CalGoalMet     bool
	ProteinGoalMet bool
}

// ArchiveStats summarizes the whole archive.
type ArchiveStats struct {
	TotalDays   int `json:"totalDays"`
	WorkoutDays int `json:"workoutDays"`
	AvgCal      int `json:"avgCal"`
	AvgProtein  int `json:"avgProtein"`
}

// ComboStats summarizes one combo's recorded attempt times.
// Improvement compares the first attempt against the most recent one,
// not the best against the worst; HasTrend is false with fewer than
// two attempts.
type ComboStats struct {
	Fastest     float64
	Slowest     float64
	Avg         float64
	Count       int
	Improvement float64
	HasTrend    bool
}
