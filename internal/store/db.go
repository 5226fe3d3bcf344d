// Package store persists launch history and small key-value settings in a
// SQLite database. All access goes through a single worker goroutine fed by
// request/response channels, so the UI never blocks on disk.
package store

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/justyntemme/quickdeck/internal/debug"
)

type EventType int

const (
	RecordLaunch EventType = iota
	FetchStats
	ClearHistory
	FetchSettings
	SaveSetting
)

type Request struct {
	Op       EventType
	ButtonID string
	Label    string
	Target   string
	Key      string
	Value    string
}

type Response struct {
	Op       EventType
	Stats    []ButtonStats     // Launch counts per button
	Settings map[string]string // Key-value settings
	Err      error
}

// ButtonStats aggregates the launch history for one button.
type ButtonStats struct {
	ButtonID   string
	Label      string
	Target     string
	Count      int
	LastLaunch time.Time
}

// timeLayout matches SQLite's CURRENT_TIMESTAMP text format.
const timeLayout = "2006-01-02 15:04:05"

type DB struct {
	conn         *sql.DB
	RequestChan  chan Request
	ResponseChan chan Response
}

func NewDB() *DB {
	return &DB{
		RequestChan:  make(chan Request, 10),
		ResponseChan: make(chan Response, 10),
	}
}

// DefaultPath returns the usage database path: ~/.config/quickdeck/usage.db
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "quickdeck", "usage.db")
}

// Open initializes the database connection and schema
func (d *DB) Open(dbPath string) error {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return err
	}

	// Performance Tuning
	// WAL mode allows simultaneous readers and writers
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return err
	}
	// Synchronous NORMAL is safe against app crashes, faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		return err
	}

	// Schema - Launch history table
	launchQuery := `
	CREATE TABLE IF NOT EXISTS launches (
		button_id TEXT NOT NULL,
		label TEXT NOT NULL,
		target TEXT NOT NULL,
		launched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_launches_button ON launches(button_id);
	`
	if _, err := db.Exec(launchQuery); err != nil {
		return err
	}

	// Schema - Settings table
	settingsQuery := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	if _, err := db.Exec(settingsQuery); err != nil {
		return err
	}

	d.conn = db
	return nil
}

func (d *DB) Start() {
	for req := range d.RequestChan {
		switch req.Op {
		case RecordLaunch:
			d.handleRecord(req.ButtonID, req.Label, req.Target)
		case FetchStats:
			d.handleFetchStats()
		case ClearHistory:
			d.handleClear()
		case FetchSettings:
			d.handleFetchSettings()
		case SaveSetting:
			d.handleSaveSetting(req.Key, req.Value)
		}
	}
}

func (d *DB) handleRecord(buttonID, label, target string) {
	debug.Log(debug.STORE, "record launch button=%s label=%q", buttonID, label)
	_, err := d.conn.Exec(
		"INSERT INTO launches (button_id, label, target) VALUES (?, ?, ?)",
		buttonID, label, target)
	if err != nil {
		log.Printf("Store Error: %v", err)
	}
	// Always trigger a fetch after modification to sync UI
	d.handleFetchStats()
}

func (d *DB) handleFetchStats() {
	// MAX(launched_at) makes the bare label/target columns come from the most
	// recent row of each group (SQLite min/max bare-column rule)
	rows, err := d.conn.Query(`
		SELECT button_id, label, target, COUNT(*), MAX(launched_at)
		FROM launches
		GROUP BY button_id
		ORDER BY COUNT(*) DESC, MAX(launched_at) DESC`)
	if err != nil {
		d.ResponseChan <- Response{Op: FetchStats, Err: err}
		return
	}
	defer rows.Close()

	var stats []ButtonStats
	for rows.Next() {
		var s ButtonStats
		var last string
		if err := rows.Scan(&s.ButtonID, &s.Label, &s.Target, &s.Count, &last); err != nil {
			continue
		}
		if t, err := time.Parse(timeLayout, last); err == nil {
			s.LastLaunch = t
		}
		stats = append(stats, s)
	}

	d.ResponseChan <- Response{Op: FetchStats, Stats: stats}
}

func (d *DB) handleClear() {
	_, err := d.conn.Exec("DELETE FROM launches")
	if err != nil {
		log.Printf("Store Error: %v", err)
	}
	d.handleFetchStats()
}

func (d *DB) handleFetchSettings() {
	rows, err := d.conn.Query("SELECT key, value FROM settings")
	if err != nil {
		d.ResponseChan <- Response{Op: FetchSettings, Err: err}
		return
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err == nil {
			settings[key] = value
		}
	}

	d.ResponseChan <- Response{Op: FetchSettings, Settings: settings}
}

func (d *DB) handleSaveSetting(key, value string) {
	// Use INSERT OR REPLACE to upsert the setting
	_, err := d.conn.Exec("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)", key, value)
	if err != nil {
		log.Printf("Store Error saving setting: %v", err)
	}
	// Trigger a fetch to sync settings
	d.handleFetchSettings()
}

func (d *DB) Close() {
	if d.conn != nil {
		d.conn.Close()
	}
}
