package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Export payloads are one-way snapshots; there is no importer.

type LogExport struct {
	Archive    Archive      `json:"archive"`
	Goals      Settings     `json:"goals"`
	Stats      ArchiveStats `json:"stats"`
	ExportDate time.Time    `json:"exportDate"`
}

type ComboExport struct {
	Version    string         `json:"version"`
	ExportDate time.Time      `json:"exportDate"`
	Combos     []Combo        `json:"combos"`
	Stats      ComboExportSum `json:"stats"`
}

type ComboExportSum struct {
	TotalCombos       int     `json:"totalCombos"`
	Completed         int     `json:"completed"`
	TotalAttempts     int     `json:"totalAttempts"`
	TotalTrainingTime float64 `json:"totalTrainingTime"`
}

// ExportLog writes a snapshot of the archive, goals and aggregate stats
// into dir and returns the written path. The filename carries the
// current date.
func ExportLog(j *Journal, dir string, now time.Time) (string, error) {
	payload := LogExport{
		Archive:    j.ArchiveSnapshot(),
		Goals:      j.Settings(),
		Stats:      j.Stats(),
		ExportDate: now,
	}

	path := filepath.Join(dir, fmt.Sprintf("daybook-log-%s.json", dayKey(now)))
	return path, writeExport(path, payload)
}

// ExportCombos writes a versioned snapshot of the combo grid into dir
// and returns the written path.
func ExportCombos(t *ComboTracker, dir string, now time.Time) (string, error) {
	combos := t.Combos()

	sum := ComboExportSum{TotalCombos: len(combos)}
	for _, c := range combos {
		if c.Completed {
			sum.Completed++
		}
		sum.TotalAttempts += len(c.Times)
		for _, minutes := range c.Times {
			sum.TotalTrainingTime += minutes
		}
	}

	payload := ComboExport{
		Version:    "1.0",
		ExportDate: now,
		Combos:     combos,
		Stats:      sum,
	}

	path := filepath.Join(dir, fmt.Sprintf("daybook-combos-%s.json", dayKey(now)))
	return path, writeExport(path, payload)
}

func writeExport(path string, payload any) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
