package storage

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pfrederiksen/powerball-results/internal/draw"
)

const (
	DefaultLatestFile  = "resultados_actuales.json"
	DefaultHistoryFile = "historico_resultados.json"
)

// ErrIncompleteOutcome is returned when asked to persist an unsuccessful outcome
var ErrIncompleteOutcome = errors.New("refusing to save incomplete outcome")

// Storage handles persistence of the latest snapshot and the draw history
type Storage struct {
	dataDir     string
	latestPath  string
	historyPath string
}

// SaveResult describes what a Save did to the history
type SaveResult struct {
	Added        bool
	HistoryCount int
}

// New creates a new Storage instance. Relative file names are resolved against
// dataDir; empty names fall back to the defaults.
func New(dataDir, latestFile, historyFile string) (*Storage, error) {
	dataDir, err := expandHome(dataDir)
	if err != nil {
		return nil, err
	}
	if dataDir == "" {
		dataDir = "."
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	if latestFile == "" {
		latestFile = DefaultLatestFile
	}
	if historyFile == "" {
		historyFile = DefaultHistoryFile
	}

	return &Storage{
		dataDir:     dataDir,
		latestPath:  resolve(dataDir, latestFile),
		historyPath: resolve(dataDir, historyFile),
	}, nil
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}

func resolve(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// LatestPath returns the path of the latest snapshot file
func (s *Storage) LatestPath() string {
	return s.latestPath
}

// HistoryPath returns the path of the history file
func (s *Storage) HistoryPath() string {
	return s.historyPath
}

// SaveLatest overwrites the latest snapshot file
func (s *Storage) SaveLatest(snapshot draw.Snapshot) error {
	if err := writeJSON(s.latestPath, snapshot); err != nil {
		return fmt.Errorf("saving latest results: %w", err)
	}
	return nil
}

// LoadLatest reads the latest snapshot. It returns nil without error when no
// snapshot has been written yet.
func (s *Storage) LoadLatest() (*draw.Snapshot, error) {
	data, err := os.ReadFile(s.latestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading latest results: %w", err)
	}

	var snapshot draw.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing latest results: %w", err)
	}
	return &snapshot, nil
}

// LoadHistory reads the full history, newest first
func (s *Storage) LoadHistory() ([]draw.Record, error) {
	data, err := s.readHistory()
	if err != nil || data == nil {
		return []draw.Record{}, err
	}

	var history []draw.Record
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	if history == nil {
		history = []draw.Record{}
	}
	return history, nil
}

// readHistory returns the history file contents, or nil when there is no history yet
func (s *Storage) readHistory() ([]byte, error) {
	data, err := os.ReadFile(s.historyPath)
	if err != nil {
		if os.IsNotExist(err) {
			// No history yet
			return nil, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	return data, nil
}

// historyEntry is a stored record kept exactly as written; only its draw date is decoded
type historyEntry struct {
	date string
	raw  json.RawMessage
}

func (e historyEntry) DrawDate() string {
	return e.date
}

func (s *Storage) loadHistoryEntries() ([]historyEntry, error) {
	data, err := s.readHistory()
	if err != nil || data == nil {
		return nil, err
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}

	entries := make([]historyEntry, 0, len(raws))
	for i, raw := range raws {
		var key struct {
			Draw struct {
				Date string `json:"fecha"`
			} `json:"sorteo"`
		}
		if err := json.Unmarshal(raw, &key); err != nil {
			return nil, fmt.Errorf("parsing history entry %d: %w", i, err)
		}
		entries = append(entries, historyEntry{date: key.Draw.Date, raw: raw})
	}
	return entries, nil
}

// AppendHistory prepends rec unless a record for the same draw date exists.
// Existing entries are written back byte for byte, including fields this
// package does not model. It reports whether the record was added and the
// resulting history length.
func (s *Storage) AppendHistory(rec draw.Record) (bool, int, error) {
	history, err := s.loadHistoryEntries()
	if err != nil {
		return false, 0, err
	}

	raw, err := json.MarshalIndent(rec, "  ", "  ")
	if err != nil {
		return false, len(history), fmt.Errorf("encoding history record: %w", err)
	}

	merged, added := draw.MergeHistory(history, historyEntry{date: rec.DrawDate(), raw: raw})
	if !added {
		return false, len(history), nil
	}
	if err := writeHistory(s.historyPath, merged); err != nil {
		return false, len(history), fmt.Errorf("saving history: %w", err)
	}
	return true, len(merged), nil
}

// writeHistory writes entries as an indented JSON array without re-encoding them
func writeHistory(path string, entries []historyEntry) error {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, e := range entries {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		buf.Write(e.raw)
	}
	if len(entries) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("]\n")

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Save writes the latest snapshot and merges the outcome into the history.
// Only successful outcomes are persisted.
func (s *Storage) Save(o *draw.Outcome) (SaveResult, error) {
	if o == nil || !o.Success {
		return SaveResult{}, ErrIncompleteOutcome
	}

	if err := s.SaveLatest(o.Snapshot()); err != nil {
		return SaveResult{}, err
	}

	added, count, err := s.AppendHistory(o.Record())
	if err != nil {
		return SaveResult{}, err
	}
	return SaveResult{Added: added, HistoryCount: count}, nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}
