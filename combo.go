package main

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

const maxComboMinutes = 999

// ComboTracker owns the station-pair grid. Combos are generated once
// from the configured station list and only their completion flag and
// attempt times ever change; a reset regenerates the identical grid so
// combo IDs stay valid across resets.
type ComboTracker struct {
	repo     *Repo
	log      *zap.Logger
	stations []string

	mu     sync.Mutex
	combos []Combo

	now func() time.Time
}

func NewComboTracker(repo *Repo, stations []string, logger *zap.Logger) (*ComboTracker, error) {
	t := &ComboTracker{
		repo:     repo,
		log:      logger,
		stations: stations,
		now:      time.Now,
	}

	combos, err := repo.LoadCombos()
	if err != nil {
		return nil, err
	}
	if len(combos) == 0 {
		combos = t.generate()
		if err := repo.SaveCombos(combos); err != nil {
			return nil, err
		}
		logger.Info("generated combo grid",
			zap.Int("stations", len(stations)),
			zap.Int("combos", len(combos)))
	}
	t.combos = combos

	return t, nil
}

// generate builds every ordered pair of distinct stations, in station
// list order. N stations yield N*(N-1) combos with stable IDs.
func (t *ComboTracker) generate() []Combo {
	now := t.now()
	var combos []Combo
	for i, a := range t.stations {
		for j, b := range t.stations {
			if i == j {
				continue
			}
			combos = append(combos, Combo{
				ID:        a + "-" + b,
				Station1:  a,
				Station2:  b,
				Completed: false,
				Times:     []float64{},
				CreatedAt: now,
			})
		}
	}
	return combos
}

func (t *ComboTracker) findIndex(id string) int {
	for i, c := range t.combos {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Combos returns a snapshot of the full grid.
func (t *ComboTracker) Combos() []Combo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// Find returns the combo with the given ID.
func (t *ComboTracker) Find(id string) (Combo, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	i := t.findIndex(id)
	if i < 0 {
		return Combo{}, ErrNotFound
	}
	c := t.combos[i]
	c.Times = append([]float64{}, c.Times...)
	return c, nil
}

// ToggleComplete flips the completion flag and reports the new state.
func (t *ComboTracker) ToggleComplete(id string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.findIndex(id)
	if i < 0 {
		return false, ErrNotFound
	}

	next := t.snapshotLocked()
	next[i].Completed = !next[i].Completed
	if err := t.repo.SaveCombos(next); err != nil {
		return false, err
	}
	t.combos = next
	return next[i].Completed, nil
}

// AddTime appends an attempt time in minutes to the combo.
func (t *ComboTracker) AddTime(id string, minutes float64) error {
	if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
		return validationf("please enter a valid number")
	}
	if minutes <= 0 {
		return validationf("time must be greater than 0")
	}
	if minutes > maxComboMinutes {
		return validationf("time seems too high, please check your input")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.findIndex(id)
	if i < 0 {
		return ErrNotFound
	}

	next := t.snapshotLocked()
	next[i].Times = append(next[i].Times, minutes)
	if err := t.repo.SaveCombos(next); err != nil {
		return err
	}
	t.combos = next
	return nil
}

// RemoveTime deletes the attempt at index, preserving the order of the
// remaining attempts.
func (t *ComboTracker) RemoveTime(id string, index int) (float64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	i := t.findIndex(id)
	if i < 0 {
		return 0, ErrNotFound
	}
	if index < 0 || index >= len(t.combos[i].Times) {
		return 0, ErrNotFound
	}

	next := t.snapshotLocked()
	removed := next[i].Times[index]
	next[i].Times = append(next[i].Times[:index:index], next[i].Times[index+1:]...)
	if err := t.repo.SaveCombos(next); err != nil {
		return 0, err
	}
	t.combos = next
	return removed, nil
}

// Filter returns combos matching the named filter: all, pending or
// completed. Unknown names pass everything through.
func (t *ComboTracker) Filter(name string) []Combo {
	all := t.Combos()
	switch name {
	case "pending":
		var out []Combo
		for _, c := range all {
			if !c.Completed {
				out = append(out, c)
			}
		}
		return out
	case "completed":
		var out []Combo
		for _, c := range all {
			if c.Completed {
				out = append(out, c)
			}
		}
		return out
	default:
		return all
	}
}

// CompletionPercent is the rounded share of completed combos.
func (t *ComboTracker) CompletionPercent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return CompletionPercent(t.combos)
}

// Reset regenerates the grid, discarding all completion state and
// recorded times. IDs are identical to the original generation.
func (t *ComboTracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next := t.generate()
	if err := t.repo.SaveCombos(next); err != nil {
		return err
	}
	t.combos = next
	t.log.Info("combo grid reset", zap.Int("combos", len(next)))
	return nil
}

// snapshotLocked deep-copies the grid so a failed save leaves the
// committed state untouched. Callers must hold mu.
func (t *ComboTracker) snapshotLocked() []Combo {
	out := make([]Combo, len(t.combos))
	for i, c := range t.combos {
		out[i] = c
		out[i].Times = append([]float64{}, c.Times...)
	}
	return out
}
