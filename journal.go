package main

import (
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Journal owns the live entry log, the archive of past days, the user's
// goals and presets, and the workout flag. It is the only writer of that
// state; callers get snapshots. Every mutation persists before it commits
// to memory, so a failed write never leaves memory ahead of the database.
type Journal struct {
	repo *Repo
	log  *zap.Logger

	// mu guards all fields below. Operations are synchronous, but the
	// undo expiry timer fires on its own goroutine.
	mu          sync.Mutex
	entries     []Entry
	archive     Archive
	settings    Settings
	presets     []Preset
	workoutDone bool

	undoWindow  time.Duration
	lastDeleted *deletedEntry

	now func() time.Time
}

type deletedEntry struct {
	entry    Entry
	index    int
	deadline time.Time
	timer    *time.Timer
}

func NewJournal(repo *Repo, undoWindow time.Duration, logger *zap.Logger) (*Journal, error) {
	entries, err := repo.LoadEntries()
	if err != nil {
		return nil, err
	}
	archive, err := repo.LoadArchive()
	if err != nil {
		return nil, err
	}
	settings, err := repo.LoadSettings()
	if err != nil {
		return nil, err
	}
	presets, err := repo.LoadPresets()
	if err != nil {
		return nil, err
	}
	workoutDone, err := repo.LoadWorkoutDone()
	if err != nil {
		return nil, err
	}

	return &Journal{
		repo:        repo,
		log:         logger,
		entries:     entries,
		archive:     archive,
		settings:    settings,
		presets:     presets,
		workoutDone: workoutDone,
		undoWindow:  undoWindow,
		now:         time.Now,
	}, nil
}

// AddEntry validates and appends a new entry stamped with the current
// time, returning the stored entry.
func (j *Journal) AddEntry(cal, protein int, workout bool) (Entry, error) {
	if cal < 0 || protein < 0 {
		return Entry{}, validationf("please enter positive values for calories and protein")
	}
	if cal == 0 && protein == 0 {
		return Entry{}, validationf("please enter at least calories or protein values")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	entry := Entry{Time: j.now(), Cal: cal, Protein: protein, Workout: workout}
	next := append(append([]Entry{}, j.entries...), entry)
	if err := j.repo.SaveEntries(next); err != nil {
		return Entry{}, err
	}
	j.entries = next
	return entry, nil
}

// DeleteEntry removes the entry at index and arms the undo slot. The
// removed entry stays restorable until the undo window elapses or
// another delete replaces it.
func (j *Journal) DeleteEntry(index int) (Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if index < 0 || index >= len(j.entries) {
		return Entry{}, ErrNotFound
	}

	removed := j.entries[index]
	next := append([]Entry{}, j.entries[:index]...)
	next = append(next, j.entries[index+1:]...)
	if err := j.repo.SaveEntries(next); err != nil {
		return Entry{}, err
	}
	j.entries = next

	if j.lastDeleted != nil && j.lastDeleted.timer != nil {
		j.lastDeleted.timer.Stop()
	}
	slot := &deletedEntry{
		entry:    removed,
		index:    index,
		deadline: j.now().Add(j.undoWindow),
	}
	slot.timer = time.AfterFunc(j.undoWindow, func() {
		j.mu.Lock()
		defer j.mu.Unlock()
		if j.lastDeleted == slot {
			j.lastDeleted = nil
		}
	})
	j.lastDeleted = slot

	return removed, nil
}

// Undo restores the most recently deleted entry at its original index.
// Returns ErrNotFound once the window has elapsed or when nothing is
// pending.
func (j *Journal) Undo() (Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	slot := j.lastDeleted
	if slot == nil || j.now().After(slot.deadline) {
		return Entry{}, ErrNotFound
	}

	index := slot.index
	if index > len(j.entries) {
		index = len(j.entries)
	}
	next := append([]Entry{}, j.entries[:index]...)
	next = append(next, slot.entry)
	next = append(next, j.entries[index:]...)
	if err := j.repo.SaveEntries(next); err != nil {
		return Entry{}, err
	}
	j.entries = next

	if slot.timer != nil {
		slot.timer.Stop()
	}
	j.lastDeleted = nil

	return slot.entry, nil
}

// EditEntry removes the entry at index and returns its values so the
// caller can re-add corrected ones. Edits are delete-then-re-add; the
// replacement lands at the end of the log.
func (j *Journal) EditEntry(index int) (Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if index < 0 || index >= len(j.entries) {
		return Entry{}, ErrNotFound
	}

	removed := j.entries[index]
	next := append([]Entry{}, j.entries[:index]...)
	next = append(next, j.entries[index+1:]...)
	if err := j.repo.SaveEntries(next); err != nil {
		return Entry{}, err
	}
	j.entries = next
	return removed, nil
}

// Entries returns a snapshot of the live log.
func (j *Journal) Entries() []Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Entry{}, j.entries...)
}

// ArchiveSnapshot returns a shallow copy of the archive.
func (j *Journal) ArchiveSnapshot() Archive {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make(Archive, len(j.archive))
	for k, v := range j.archive {
		out[k] = append([]Entry{}, v...)
	}
	return out
}

// Totals sums the live log per metric.
func (j *Journal) Totals() (cal, protein int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Totals(j.entries)
}

// NetCalories is today's calories minus the configured daily burn.
func (j *Journal) NetCalories() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	cal, _ := Totals(j.entries)
	return cal - j.settings.DailyBurn
}

func (j *Journal) Settings() Settings {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.settings
}

func (j *Journal) WorkoutDone() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.workoutDone
}

// SetGoals updates the daily calorie and protein goals; both must be
// positive.
func (j *Journal) SetGoals(cal, protein int) error {
	if cal <= 0 || protein <= 0 {
		return validationf("please enter valid positive numbers for both goals")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	next := j.settings
	next.CalGoal = cal
	next.ProteinGoal = protein
	if err := j.repo.SaveSettings(next); err != nil {
		return err
	}
	j.settings = next
	return nil
}

// SetBurn updates the estimated daily calorie burn.
func (j *Journal) SetBurn(burn int) error {
	if burn < 0 {
		return validationf("please enter a valid positive number")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	next := j.settings
	next.DailyBurn = burn
	if err := j.repo.SaveSettings(next); err != nil {
		return err
	}
	j.settings = next
	return nil
}

// SetWorkout records whether today's workout happened.
func (j *Journal) SetWorkout(done bool) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.repo.SaveWorkoutDone(done); err != nil {
		return err
	}
	j.workoutDone = done
	return nil
}

func (j *Journal) Theme() (string, error) {
	return j.repo.LoadTheme()
}

func (j *Journal) SetTheme(theme string) error {
	if theme != "light" && theme != "dark" {
		return validationf("theme must be light or dark")
	}
	return j.repo.SaveTheme(theme)
}

// +---------------------+
// |                     |
// |       Presets       |
// |                     |
// +---------------------+

func (j *Journal) Presets() []Preset {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]Preset{}, j.presets...)
}

func (j *Journal) AddPreset(name string, cal, protein int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationf("preset name must not be empty")
	}
	if cal < 0 || protein < 0 {
		return validationf("please enter valid positive numbers")
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	next := append(append([]Preset{}, j.presets...), Preset{Name: name, Cal: cal, Protein: protein})
	if err := j.repo.SavePresets(next); err != nil {
		return err
	}
	j.presets = next
	return nil
}

func (j *Journal) DeletePreset(index int) (Preset, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if index < 0 || index >= len(j.presets) {
		return Preset{}, ErrNotFound
	}

	removed := j.presets[index]
	next := append([]Preset{}, j.presets[:index]...)
	next = append(next, j.presets[index+1:]...)
	if err := j.repo.SavePresets(next); err != nil {
		return Preset{}, err
	}
	j.presets = next
	return removed, nil
}

// QuickAdd records an entry from the preset at index, carrying the
// current workout flag.
func (j *Journal) QuickAdd(index int) (Entry, error) {
	j.mu.Lock()
	if index < 0 || index >= len(j.presets) {
		j.mu.Unlock()
		return Entry{}, ErrNotFound
	}
	preset := j.presets[index]
	workout := j.workoutDone
	j.mu.Unlock()

	return j.AddEntry(preset.Cal, preset.Protein, workout)
}

// +---------------------+
// |                     |
// |       Rollover      |
// |                     |
// +---------------------+

// CheckNewDay runs the day-boundary check. When the recorded check date
// is an earlier day and the live log is non-empty, the log is archived
// under that date (last write wins), cleared, and the workout flag
// reset. Gap days receive no bucket. Idempotent within one day.
func (j *Journal) CheckNewDay() (rolled bool, err error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	last, err := j.repo.LoadLastCheckDate()
	if err != nil {
		return false, err
	}
	today := dayKey(j.now())

	if last == "" || last == today {
		if last == "" {
			if err := j.repo.SaveLastCheckDate(today); err != nil {
				return false, err
			}
		}
		return false, nil
	}

	if len(j.entries) > 0 {
		nextArchive := make(Archive, len(j.archive)+1)
		for k, v := range j.archive {
			nextArchive[k] = v
		}
		nextArchive[last] = append([]Entry{}, j.entries...)

		if err := j.repo.SaveArchive(nextArchive); err != nil {
			return false, err
		}
		if err := j.repo.SaveEntries([]Entry{}); err != nil {
			return false, err
		}
		if err := j.repo.SaveWorkoutDone(false); err != nil {
			return false, err
		}

		j.archive = nextArchive
		j.entries = []Entry{}
		j.workoutDone = false
		rolled = true

		j.log.Info("archived previous day",
			zap.String("date", last),
			zap.Int("entries", len(nextArchive[last])))
	}

	if err := j.repo.SaveLastCheckDate(today); err != nil {
		return rolled, err
	}
	return rolled, nil
}

// ResetDay archives today's entries under today's key immediately and
// starts the day fresh.
func (j *Journal) ResetDay() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	today := dayKey(j.now())
	if len(j.entries) > 0 {
		nextArchive := make(Archive, len(j.archive)+1)
		for k, v := range j.archive {
			nextArchive[k] = v
		}
		nextArchive[today] = append([]Entry{}, j.entries...)
		if err := j.repo.SaveArchive(nextArchive); err != nil {
			return err
		}
		j.archive = nextArchive
	}

	if err := j.repo.SaveEntries([]Entry{}); err != nil {
		return err
	}
	if err := j.repo.SaveWorkoutDone(false); err != nil {
		return err
	}
	j.entries = []Entry{}
	j.workoutDone = false
	return nil
}

// ResetAll wipes the live log, the archive and the workout flag. Goals
// and presets survive.
func (j *Journal) ResetAll() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.repo.SaveEntries([]Entry{}); err != nil {
		return err
	}
	if err := j.repo.SaveArchive(Archive{}); err != nil {
		return err
	}
	if err := j.repo.SaveWorkoutDone(false); err != nil {
		return err
	}
	j.entries = []Entry{}
	j.archive = Archive{}
	j.workoutDone = false
	return nil
}

// DeleteArchivedEntry removes one entry from an archived day, keeping
// the order of the remaining entries. The day's key is dropped entirely
// when its last entry goes.
func (j *Journal) DeleteArchivedEntry(date string, index int) (Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	entries, ok := j.archive[date]
	if !ok || index < 0 || index >= len(entries) {
		return Entry{}, ErrNotFound
	}

	removed := entries[index]
	rest := append([]Entry{}, entries[:index]...)
	rest = append(rest, entries[index+1:]...)

	next := make(Archive, len(j.archive))
	for k, v := range j.archive {
		next[k] = v
	}
	if len(rest) == 0 {
		delete(next, date)
	} else {
		next[date] = rest
	}

	if err := j.repo.SaveArchive(next); err != nil {
		return Entry{}, err
	}
	j.archive = next
	return removed, nil
}

// ArchivedDay returns one archived day's entries.
func (j *Journal) ArchivedDay(date string) ([]Entry, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	entries, ok := j.archive[date]
	if !ok {
		return nil, false
	}
	return append([]Entry{}, entries...), true
}

// +---------------------+
// |                     |
// |       Queries       |
// |                     |
// +---------------------+

// Streak counts consecutive days ending at today with at least one
// entry, live or archived.
func (j *Journal) Streak() int {
	j.mu.Lock()
	defer j.mu.Unlock()
	return Streak(j.archive, len(j.entries), j.now())
}

// DayLog returns per-day summaries for the archive, newest first,
// narrowed by the named filter (all, week, month, workout).
func (j *Journal) DayLog(filter string) []DayStats {
	j.mu.Lock()
	defer j.mu.Unlock()

	keys := make([]string, 0, len(j.archive))
	for k := range j.archive {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	keys = FilterDays(j.archive, keys, filter, j.now())

	out := make([]DayStats, 0, len(keys))
	for _, k := range keys {
		out = append(out, NewDayStats(k, j.archive[k], j.settings))
	}
	return out
}

// Stats computes the all-time archive aggregates.
func (j *Journal) Stats() ArchiveStats {
	j.mu.Lock()
	defer j.mu.Unlock()
	return NewArchiveStats(j.archive)
}
