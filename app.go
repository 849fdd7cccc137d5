package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/nexidian/gocliselect"
)

// App wires the engine to the command surface. All user-facing text is
// produced here; the journal and combo tracker stay print-free.
type App struct {
	journal *Journal
	combos  *ComboTracker
	out     io.Writer
}

func NewApp(journal *Journal, combos *ComboTracker, out io.Writer) *App {
	return &App{journal: journal, combos: combos, out: out}
}

// notify maps engine errors to CLI behavior: NotFound is a quiet no-op,
// validation and storage errors surface to the caller.
func (a *App) notify(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) {
		fmt.Fprintln(a.out, notFoundMsg)
		return nil
	}
	return err
}

func (a *App) AddEntry(cal, protein int, workout bool) error {
	entry, err := a.journal.AddEntry(cal, protein, workout)
	if err != nil {
		return err
	}

	totalCal, totalProtein := a.journal.Totals()
	fmt.Fprintf(a.out, "Added: %d cal, %dg protein at %s\n",
		entry.Cal, entry.Protein, entry.Time.Format("15:04"))
	fmt.Fprintf(a.out, "Today: %d cal, %dg protein\n", totalCal, totalProtein)
	return nil
}

func (a *App) DeleteEntry(index int) error {
	entry, err := a.journal.DeleteEntry(index)
	if err != nil {
		return a.notify(err, "No entry at that index.")
	}

	fmt.Fprintf(a.out, "Deleted: %d cal, %dg protein. Run 'daybook undo' within %s to restore.\n",
		entry.Cal, entry.Protein, a.journal.undoWindow)
	return nil
}

func (a *App) Undo() error {
	entry, err := a.journal.Undo()
	if err != nil {
		return a.notify(err, "Nothing to undo.")
	}

	fmt.Fprintf(a.out, "Restored: %d cal, %dg protein\n", entry.Cal, entry.Protein)
	return nil
}

func (a *App) EditEntry(index int) error {
	entry, err := a.journal.EditEntry(index)
	if err != nil {
		return a.notify(err, "No entry at that index.")
	}

	fmt.Fprintf(a.out, "Removed entry: %d cal, %dg protein (workout: %v)\n",
		entry.Cal, entry.Protein, entry.Workout)
	fmt.Fprintf(a.out, "Re-add it with corrected values: daybook add <cal> <protein>\n")
	return nil
}

// Status prints today's log, totals against goals, net calories, the
// workout flag and the current streak.
func (a *App) Status() error {
	entries := a.journal.Entries()
	settings := a.journal.Settings()
	totalCal, totalProtein := Totals(entries)

	headers := []string{"#", "Time", "Cal", "Protein", "Workout"}
	var rows [][]string
	for i, e := range entries {
		workout := ""
		if e.Workout {
			workout = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			e.Time.Format("15:04"),
			strconv.Itoa(e.Cal),
			strconv.Itoa(e.Protein),
			workout,
		})
	}
	PrintTable(a.out, headers, rows, nil)

	if len(entries) > 0 {
		calSum, _ := DailyTotals(entries)
		fmt.Fprintf(a.out, "\nMeals: %d (smallest %d cal, largest %d cal, avg %.0f cal)\n",
			calSum.Count, calSum.Min, calSum.Max, calSum.Avg)
	}

	fmt.Fprintf(a.out, "\nCalories: %d / %d\n", totalCal, settings.CalGoal)
	fmt.Fprintf(a.out, "Protein:  %dg / %dg\n", totalProtein, settings.ProteinGoal)
	fmt.Fprintf(a.out, "Net:      %d (%d - %d burned)\n",
		totalCal-settings.DailyBurn, totalCal, settings.DailyBurn)

	workout := "no"
	if a.journal.WorkoutDone() {
		workout = "yes"
	}
	fmt.Fprintf(a.out, "Workout:  %s\n", workout)

	if streak := a.journal.Streak(); streak > 0 {
		fmt.Fprintf(a.out, "Streak:   %d day(s)\n", streak)
	}
	return nil
}

// Log prints the archive, one row per day, newest first.
func (a *App) Log(filter string) error {
	days := a.journal.DayLog(filter)
	if len(days) == 0 {
		fmt.Fprintln(a.out, "No archived days match this filter.")
		return nil
	}

	headers := []string{"Date", "Cal", "Protein", "Entries", "Workout", "Goals"}
	var rows [][]string
	for _, d := range days {
		workout := ""
		if d.Workout {
			workout = "yes"
		}
		goals := ""
		if d.CalGoalMet {
			goals += "cal "
		}
		if d.ProteinGoalMet {
			goals += "protein"
		}
		rows = append(rows, []string{
			formatDate(d.Date),
			strconv.Itoa(d.Cal),
			strconv.Itoa(d.Protein),
			strconv.Itoa(d.Entries),
			workout,
			goals,
		})
	}
	PrintTable(a.out, headers, rows, nil)

	stats := a.journal.Stats()
	fmt.Fprintf(a.out, "\n%d day(s) tracked, %d with a workout, avg %d cal / %dg protein per day\n",
		stats.TotalDays, stats.WorkoutDays, stats.AvgCal, stats.AvgProtein)
	return nil
}

// ShowDay lists one archived day's entries with their indices, so a
// stale entry can be deleted by index.
func (a *App) ShowDay(date string) error {
	entries, ok := a.journal.ArchivedDay(date)
	if !ok {
		fmt.Fprintln(a.out, "No entries for that day.")
		return nil
	}

	fmt.Fprintf(a.out, "%s\n", formatDate(date))
	headers := []string{"#", "Time", "Cal", "Protein", "Workout"}
	var rows [][]string
	for i, e := range entries {
		workout := ""
		if e.Workout {
			workout = "yes"
		}
		rows = append(rows, []string{
			strconv.Itoa(i),
			e.Time.Format("15:04"),
			strconv.Itoa(e.Cal),
			strconv.Itoa(e.Protein),
			workout,
		})
	}
	cal, protein := Totals(entries)
	footers := []string{"", "Total:", strconv.Itoa(cal), strconv.Itoa(protein), ""}
	PrintTable(a.out, headers, rows, footers)
	return nil
}

// DeleteArchived removes one entry from an archived day.
func (a *App) DeleteArchived(date string, index int) error {
	entry, err := a.journal.DeleteArchivedEntry(date, index)
	if err != nil {
		return a.notify(err, "No entry at that date and index.")
	}

	fmt.Fprintf(a.out, "Deleted from %s: %d cal, %dg protein\n", date, entry.Cal, entry.Protein)
	return nil
}

func (a *App) Streak() error {
	streak := a.journal.Streak()
	if streak == 0 {
		fmt.Fprintln(a.out, "No streak yet. Start tracking to build one.")
		return nil
	}
	fmt.Fprintf(a.out, "%d day(s) streak\n", streak)
	return nil
}

func (a *App) SetGoals(cal, protein int) error {
	if err := a.journal.SetGoals(cal, protein); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Goals updated: %d cal, %dg protein\n", cal, protein)
	return nil
}

func (a *App) SetBurn(burn int) error {
	if err := a.journal.SetBurn(burn); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Daily burn set to %d calories\n", burn)
	return nil
}

func (a *App) SetWorkout(arg string) error {
	var done bool
	switch arg {
	case "on", "yes", "true":
		done = true
	case "off", "no", "false":
		done = false
	case "":
		done = !a.journal.WorkoutDone()
	default:
		return validationf("expected on or off, got %q", arg)
	}

	if err := a.journal.SetWorkout(done); err != nil {
		return err
	}
	if done {
		fmt.Fprintln(a.out, "Workout marked done for today.")
	} else {
		fmt.Fprintln(a.out, "Workout unmarked for today.")
	}
	return nil
}

// Theme shows the stored display preference, or sets it when arg is
// given.
func (a *App) Theme(arg string) error {
	if arg == "" {
		theme, err := a.journal.Theme()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Theme: %s\n", theme)
		return nil
	}

	if err := a.journal.SetTheme(arg); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Theme set to %s\n", arg)
	return nil
}

// +---------------------+
// |                     |
// |       Presets       |
// |                     |
// +---------------------+

func (a *App) AddPreset(name string, cal, protein int) error {
	if err := a.journal.AddPreset(name, cal, protein); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Preset %q created (%d cal, %dg protein)\n", name, cal, protein)
	return nil
}

func (a *App) ListPresets() error {
	presets := a.journal.Presets()
	if len(presets) == 0 {
		fmt.Fprintln(a.out, "No presets yet. Create one with 'daybook preset add'.")
		return nil
	}

	headers := []string{"#", "Name", "Cal", "Protein"}
	var rows [][]string
	for i, p := range presets {
		rows = append(rows, []string{
			strconv.Itoa(i), p.Name, strconv.Itoa(p.Cal), strconv.Itoa(p.Protein),
		})
	}
	PrintTable(a.out, headers, rows, nil)
	return nil
}

func (a *App) DeletePreset(index int) error {
	preset, err := a.journal.DeletePreset(index)
	if err != nil {
		return a.notify(err, "No preset at that index.")
	}
	fmt.Fprintf(a.out, "Preset %q deleted\n", preset.Name)
	return nil
}

// UsePreset opens an interactive picker over the saved presets and adds
// an entry from the chosen one.
func (a *App) UsePreset() error {
	presets := a.journal.Presets()
	if len(presets) == 0 {
		fmt.Fprintln(a.out, "No presets yet. Create one with 'daybook preset add'.")
		return nil
	}

	menu := gocliselect.NewMenu("Pick a preset")
	for i, p := range presets {
		menu.AddItem(fmt.Sprintf("%s (%d cal, %dg)", p.Name, p.Cal, p.Protein), strconv.Itoa(i))
	}

	selection, err := menu.Display()
	if err != nil {
		return err
	}
	choice, _ := selection.(string)
	if choice == "" {
		return nil
	}
	index, err := strconv.Atoi(choice)
	if err != nil {
		return nil
	}

	entry, err := a.journal.QuickAdd(index)
	if err != nil {
		return a.notify(err, "No preset at that index.")
	}
	fmt.Fprintf(a.out, "Added: %d cal, %dg protein\n", entry.Cal, entry.Protein)
	return nil
}

// +---------------------+
// |                     |
// |        Combos       |
// |                     |
// +---------------------+

// ListCombos prints the combo grid narrowed by filter, with per-combo
// attempt stats and the overall completion percentage.
func (a *App) ListCombos(filter string) error {
	filtered := a.combos.Filter(filter)
	all := a.combos.Combos()

	headers := []string{"ID", "Done", "Attempts", "Fastest", "Slowest", "Avg", "Trend"}
	var rows [][]string
	for _, c := range filtered {
		stats := NewComboStats(c.Times)

		done := ""
		if c.Completed {
			done = "x"
		}
		fastest, slowest, avg, trend := "-", "-", "-", "-"
		if stats.Count > 0 {
			fastest = fmt.Sprintf("%.1fmin", stats.Fastest)
			slowest = fmt.Sprintf("%.1fmin", stats.Slowest)
			avg = fmt.Sprintf("%.1fmin", stats.Avg)
		}
		if stats.HasTrend {
			trend = fmt.Sprintf("%+.1f%%", stats.Improvement)
		}
		rows = append(rows, []string{
			c.ID, done, strconv.Itoa(stats.Count), fastest, slowest, avg, trend,
		})
	}
	PrintTable(a.out, headers, rows, nil)

	fmt.Fprintf(a.out, "\nShowing %d of %d combos, %d%% completed\n",
		len(filtered), len(all), a.combos.CompletionPercent())
	return nil
}

func (a *App) ToggleCombo(id string) error {
	completed, err := a.combos.ToggleComplete(id)
	if err != nil {
		return a.notify(err, "No such combo.")
	}
	if completed {
		fmt.Fprintf(a.out, "Combo %s marked as completed\n", id)
	} else {
		fmt.Fprintf(a.out, "Combo %s marked as pending\n", id)
	}
	return nil
}

func (a *App) AddComboTime(id string, minutes float64) error {
	if err := a.combos.AddTime(id, minutes); err != nil {
		return a.notify(err, "No such combo.")
	}
	fmt.Fprintf(a.out, "Time added: %.1f minutes\n", minutes)
	return nil
}

func (a *App) RemoveComboTime(id string, index int) error {
	removed, err := a.combos.RemoveTime(id, index)
	if err != nil {
		return a.notify(err, "No such combo or attempt.")
	}
	fmt.Fprintf(a.out, "Removed time of %.1f minutes\n", removed)
	return nil
}

func (a *App) ComboStats(id string) error {
	combo, err := a.combos.Find(id)
	if err != nil {
		return a.notify(err, "No such combo.")
	}

	stats := NewComboStats(combo.Times)
	fmt.Fprintf(a.out, "%s + %s\n", combo.Station1, combo.Station2)
	if stats.Count == 0 {
		fmt.Fprintln(a.out, "No times recorded yet.")
		return nil
	}
	fmt.Fprintf(a.out, "Fastest: %.1fmin | Slowest: %.1fmin | Avg: %.1fmin | Attempts: %d\n",
		stats.Fastest, stats.Slowest, stats.Avg, stats.Count)
	if stats.HasTrend {
		fmt.Fprintf(a.out, "Improvement since first attempt: %+.1f%%\n", stats.Improvement)
	}
	return nil
}

func (a *App) ResetCombos() error {
	if err := a.combos.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Combo grid reset.")
	return nil
}

// +---------------------+
// |                     |
// |    Export / Reset   |
// |                     |
// +---------------------+

func (a *App) ExportLog(dir string, now time.Time) error {
	path, err := ExportLog(a.journal, dir, now)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Log exported to %s\n", path)
	return nil
}

func (a *App) ExportCombos(dir string, now time.Time) error {
	path, err := ExportCombos(a.combos, dir, now)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Combos exported to %s\n", path)
	return nil
}

func (a *App) ResetDay() error {
	if err := a.journal.ResetDay(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Today archived and cleared.")
	return nil
}

// ResetAll wipes the journal and regenerates the combo grid. Goals and
// presets survive.
func (a *App) ResetAll() error {
	if err := a.journal.ResetAll(); err != nil {
		return err
	}
	if err := a.combos.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "All data has been reset.")
	return nil
}
