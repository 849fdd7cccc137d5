package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig(DefaultConfigPath())
	if err != nil {
		return err
	}

	level := zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if cfg.Verbose {
		level.SetLevel(zapcore.DebugLevel)
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = level
	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	repo, err := NewRepo(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer repo.Close()

	journal, err := NewJournal(repo, cfg.UndoDuration(), logger)
	if err != nil {
		return err
	}

	// Day-boundary check runs once per process start, never on a timer.
	rolled, err := journal.CheckNewDay()
	if err != nil {
		return err
	}
	if rolled {
		fmt.Println("Yesterday's entries archived. Starting fresh.")
	}

	combos, err := NewComboTracker(repo, cfg.Stations, logger)
	if err != nil {
		return err
	}

	app := NewApp(journal, combos, os.Stdout)
	rootCmd := SetupCommands(app)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			level.SetLevel(zapcore.DebugLevel)
		}
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}

	return rootCmd.Execute()
}
