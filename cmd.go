package main

import (
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func SetupCommands(a *App) *cobra.Command {
	// root command
	rootCmd := &cobra.Command{
		Use:           "daybook",
		Short:         "A daily calorie, protein and workout-combo tracker",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	// command for recording a meal entry
	addCmd := &cobra.Command{
		Use:   "add <calories> <protein>",
		Short: "Record a meal entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := strconv.Atoi(args[0])
			if err != nil {
				return validationf("please enter valid numbers for calories and protein")
			}
			protein, err := strconv.Atoi(args[1])
			if err != nil {
				return validationf("please enter valid numbers for calories and protein")
			}
			workout, _ := cmd.Flags().GetBool("workout")
			return a.AddEntry(cal, protein, workout)
		},
	}
	addCmd.Flags().BoolP("workout", "w", false, "tag this entry with today's workout")

	// command for deleting an entry by index, restorable with undo
	deleteCmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete an entry from today's log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return validationf("index must be a number")
			}
			return a.DeleteEntry(index)
		},
	}

	undoCmd := &cobra.Command{
		Use:   "undo",
		Short: "Restore the most recently deleted entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Undo()
		},
	}

	// edits are delete-then-re-add: the removed values are printed for
	// re-entry and the replacement lands at the end of the log
	editCmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Remove an entry and print its values for re-entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return validationf("index must be a number")
			}
			return a.EditEntry(index)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show today's entries, totals and goal progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Status()
		},
	}

	logCmd := &cobra.Command{
		Use:   "log",
		Short: "Show the archive of past days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			return a.Log(filter)
		},
	}
	logCmd.Flags().StringP("filter", "f", "all", "all, week, month or workout")
	logShowCmd := &cobra.Command{
		Use:   "show <date>",
		Short: "List one archived day's entries with their indices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDayArg(args[0])
			if err != nil {
				return err
			}
			return a.ShowDay(date)
		},
	}
	logDeleteCmd := &cobra.Command{
		Use:   "delete <date> <index>",
		Short: "Delete one entry from an archived day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDayArg(args[0])
			if err != nil {
				return err
			}
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return validationf("index must be a number")
			}
			return a.DeleteArchived(date, index)
		},
	}
	logCmd.AddCommand(logShowCmd, logDeleteCmd)

	streakCmd := &cobra.Command{
		Use:   "streak",
		Short: "Show the current tracking streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Streak()
		},
	}

	goalCmd := &cobra.Command{
		Use:   "goal <calories> <protein>",
		Short: "Set the daily calorie and protein goals",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := strconv.Atoi(args[0])
			if err != nil {
				return validationf("please enter valid positive numbers for both goals")
			}
			protein, err := strconv.Atoi(args[1])
			if err != nil {
				return validationf("please enter valid positive numbers for both goals")
			}
			return a.SetGoals(cal, protein)
		},
	}

	burnCmd := &cobra.Command{
		Use:   "burn <calories>",
		Short: "Set the estimated daily calorie burn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			burn, err := strconv.Atoi(args[0])
			if err != nil {
				return validationf("please enter a valid positive number")
			}
			return a.SetBurn(burn)
		},
	}

	workoutCmd := &cobra.Command{
		Use:   "workout [on|off]",
		Short: "Mark or unmark today's workout (toggles without an argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return a.SetWorkout(arg)
		},
	}

	themeCmd := &cobra.Command{
		Use:   "theme [light|dark]",
		Short: "Show or set the display theme preference",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return a.Theme(arg)
		},
	}

	// preset commands
	presetCmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage quick-add presets",
	}
	presetAddCmd := &cobra.Command{
		Use:   "add <name> <calories> <protein>",
		Short: "Create a quick-add preset",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := strconv.Atoi(args[1])
			if err != nil {
				return validationf("please enter valid positive numbers")
			}
			protein, err := strconv.Atoi(args[2])
			if err != nil {
				return validationf("please enter valid positive numbers")
			}
			return a.AddPreset(args[0], cal, protein)
		},
	}
	presetListCmd := &cobra.Command{
		Use:   "list",
		Short: "List presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ListPresets()
		},
	}
	presetDeleteCmd := &cobra.Command{
		Use:   "delete <index>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return validationf("index must be a number")
			}
			return a.DeletePreset(index)
		},
	}
	presetUseCmd := &cobra.Command{
		Use:   "use",
		Short: "Pick a preset interactively and add it to today's log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.UsePreset()
		},
	}
	presetCmd.AddCommand(presetAddCmd, presetListCmd, presetDeleteCmd, presetUseCmd)

	// combo commands
	comboCmd := &cobra.Command{
		Use:   "combo",
		Short: "Track station-pair workout combos",
	}
	comboListCmd := &cobra.Command{
		Use:   "list",
		Short: "List combos with attempt stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			return a.ListCombos(filter)
		},
	}
	comboListCmd.Flags().StringP("filter", "f", "all", "all, pending or completed")
	comboDoneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a combo's completion flag",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return comboIDs(a), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ToggleCombo(args[0])
		},
	}
	comboTimeCmd := &cobra.Command{
		Use:   "time <id> <minutes>",
		Short: "Record an attempt time for a combo",
		Args:  cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return comboIDs(a), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return validationf("please enter a valid number")
			}
			return a.AddComboTime(args[0], minutes)
		},
	}
	comboRmTimeCmd := &cobra.Command{
		Use:   "rm-time <id> <index>",
		Short: "Remove a recorded attempt time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return validationf("index must be a number")
			}
			return a.RemoveComboTime(args[0], index)
		},
	}
	comboStatsCmd := &cobra.Command{
		Use:   "stats <id>",
		Short: "Show attempt stats for one combo",
		Args:  cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return comboIDs(a), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ComboStats(args[0])
		},
	}
	comboResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Regenerate the combo grid, discarding times and completions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ResetCombos()
		},
	}
	comboCmd.AddCommand(comboListCmd, comboDoneCmd, comboTimeCmd, comboRmTimeCmd, comboStatsCmd, comboResetCmd)

	// export commands
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write one-way JSON snapshots",
	}
	exportLogCmd := &cobra.Command{
		Use:   "log",
		Short: "Export the archive, goals and stats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("out")
			return a.ExportLog(dir, time.Now())
		},
	}
	exportLogCmd.Flags().StringP("out", "o", ".", "directory to write the export into")
	exportCombosCmd := &cobra.Command{
		Use:   "combos",
		Short: "Export the combo grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("out")
			return a.ExportCombos(dir, time.Now())
		},
	}
	exportCombosCmd.Flags().StringP("out", "o", ".", "directory to write the export into")
	exportCmd.AddCommand(exportLogCmd, exportCombosCmd)

	resetDayCmd := &cobra.Command{
		Use:   "reset-day",
		Short: "Archive today's entries now and start fresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.ResetDay()
		},
	}

	resetAllCmd := &cobra.Command{
		Use:   "reset-all",
		Short: "Wipe the journal and regenerate the combo grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmed, _ := cmd.Flags().GetBool("yes")
			if !confirmed {
				return validationf("pass --yes to confirm wiping all data")
			}
			return a.ResetAll()
		},
	}
	resetAllCmd.Flags().Bool("yes", false, "confirm the wipe")

	// add commands
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(streakCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(burnCmd)
	rootCmd.AddCommand(workoutCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(comboCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetDayCmd)
	rootCmd.AddCommand(resetAllCmd)

	return rootCmd
}

func parseDayArg(arg string) (string, error) {
	t, err := time.Parse("2006-01-02", arg)
	if err != nil {
		return "", validationf("date must look like 2006-01-02")
	}
	return dayKey(t), nil
}

func comboIDs(a *App) []string {
	combos := a.combos.Combos()
	ids := make([]string, 0, len(combos))
	for _, c := range combos {
		ids = append(ids, c.ID)
	}
	return ids
}
