package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Storage keys. All values are JSON-encoded text.
const (
	keyEntries       = "entries"
	keyArchive       = "archive"
	keySettings      = "settings"
	keyPresets       = "presets"
	keyCombos        = "combos"
	keyWorkoutDone   = "workoutDone"
	keyLastCheckDate = "lastCheckDate"
	keyTheme         = "theme"
)

const (
	// migration queries
	createKVTableSQL = `
  CREATE TABLE IF NOT EXISTS kv (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
  )`

	// kv queries
	getValueSQL = `SELECT value FROM kv WHERE key = ?`
	setValueSQL = `INSERT INTO kv (key, value) VALUES (?, ?)
  ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	deleteValueSQL = `DELETE FROM kv WHERE key = ?`
)

type Repo struct {
	db *sql.DB
}

func NewRepo(dbPath string) (*Repo, error) {
	// ensure directory exists
	err := os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// open database
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// verify connection with database
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	repo := &Repo{db: db}

	// run migrations
	if err := repo.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repo, nil
}

func (r *Repo) Close() error {
	return r.db.Close()
}

// runs migrations on initial start
func (r *Repo) runMigrations() error {
	if _, err := r.db.Exec(createKVTableSQL); err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}
	return nil
}

// Get returns the raw blob stored under key. found is false when the key
// has never been written; that is not an error.
func (r *Repo) Get(key string) (blob []byte, found bool, err error) {
	var value string
	err = r.db.QueryRow(getValueSQL, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return []byte(value), true, nil
}

// Set upserts the blob stored under key.
func (r *Repo) Set(key string, blob []byte) error {
	if _, err := r.db.Exec(setValueSQL, key, string(blob)); err != nil {
		return fmt.Errorf("failed to write %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is a no-op.
func (r *Repo) Delete(key string) error {
	if _, err := r.db.Exec(deleteValueSQL, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

// loadJSON decodes the value under key into out. A missing key leaves
// out untouched, so callers pass it pre-filled with the default value.
func (r *Repo) loadJSON(key string, out any) error {
	blob, found, err := r.Get(key)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if err := json.Unmarshal(blob, out); err != nil {
		return fmt.Errorf("corrupt value for %q: %w", key, err)
	}
	return nil
}

func (r *Repo) saveJSON(key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return r.Set(key, blob)
}

// +---------------------+
// |                     |
// |   Journal Queries   |
// |                     |
// +---------------------+

func (r *Repo) LoadEntries() ([]Entry, error) {
	entries := []Entry{}
	if err := r.loadJSON(keyEntries, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Repo) SaveEntries(entries []Entry) error {
	return r.saveJSON(keyEntries, entries)
}

func (r *Repo) LoadArchive() (Archive, error) {
	archive := Archive{}
	if err := r.loadJSON(keyArchive, &archive); err != nil {
		return nil, err
	}
	return archive, nil
}

func (r *Repo) SaveArchive(archive Archive) error {
	return r.saveJSON(keyArchive, archive)
}

func (r *Repo) LoadSettings() (Settings, error) {
	settings := DefaultSettings()
	if err := r.loadJSON(keySettings, &settings); err != nil {
		return settings, err
	}
	return settings, nil
}

func (r *Repo) SaveSettings(settings Settings) error {
	return r.saveJSON(keySettings, settings)
}

func (r *Repo) LoadPresets() ([]Preset, error) {
	presets := []Preset{}
	if err := r.loadJSON(keyPresets, &presets); err != nil {
		return nil, err
	}
	return presets, nil
}

func (r *Repo) SavePresets(presets []Preset) error {
	return r.saveJSON(keyPresets, presets)
}

func (r *Repo) LoadWorkoutDone() (bool, error) {
	var done bool
	if err := r.loadJSON(keyWorkoutDone, &done); err != nil {
		return false, err
	}
	return done, nil
}

func (r *Repo) SaveWorkoutDone(done bool) error {
	return r.saveJSON(keyWorkoutDone, done)
}

// LoadLastCheckDate returns the day key recorded by the last rollover
// check, or "" when no check has run yet.
func (r *Repo) LoadLastCheckDate() (string, error) {
	var date string
	if err := r.loadJSON(keyLastCheckDate, &date); err != nil {
		return "", err
	}
	return date, nil
}

func (r *Repo) SaveLastCheckDate(date string) error {
	return r.saveJSON(keyLastCheckDate, date)
}

func (r *Repo) LoadTheme() (string, error) {
	theme := "light"
	if err := r.loadJSON(keyTheme, &theme); err != nil {
		return "", err
	}
	return theme, nil
}

func (r *Repo) SaveTheme(theme string) error {
	return r.saveJSON(keyTheme, theme)
}

// +---------------------+
// |                     |
// |    Combo Queries    |
// |                     |
// +---------------------+

func (r *Repo) LoadCombos() ([]Combo, error) {
	combos := []Combo{}
	if err := r.loadJSON(keyCombos, &combos); err != nil {
		return nil, err
	}
	return combos, nil
}

func (r *Repo) SaveCombos(combos []Combo) error {
	return r.saveJSON(keyCombos, combos)
}
