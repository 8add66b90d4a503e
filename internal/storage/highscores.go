package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// DefaultHighScoresPath is where best scores live unless overridden.
const DefaultHighScoresPath = "~/.arena/highscores.yaml"

// ScoreModes are the keys always present in the high-score document.
var ScoreModes = []string{"classic", "ai_battle", "obstacle"}

// errCorrupt marks a high-score file that exists but does not parse.
var errCorrupt = errors.New("not a score mapping")

// PersistenceError reports a high-score file that could not be read or written.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// HighScores keeps the best score per mode in a flat YAML mapping.
// It is safe for concurrent use by several sessions. Every save merges
// with the file on disk, so processes sharing the file keep each other's
// bests.
type HighScores struct {
	path   string
	logger *log.Logger

	mu     sync.Mutex
	scores map[string]int
}

// NewHighScores opens the high-score file at path.
// A missing file means every mode starts at zero. An unreadable file is
// logged and treated the same way.
func NewHighScores(path string, logger *log.Logger) *HighScores {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if path == "" {
		path = DefaultHighScoresPath
	}
	if expanded, err := expandHome(path); err == nil {
		path = expanded
	}

	h := &HighScores{
		path:   path,
		logger: logger,
		scores: zeroScores(),
	}
	if err := h.Load(); err != nil {
		logger.Warn("high scores unavailable, starting from zero", "err", err)
	}
	return h
}

func zeroScores() map[string]int {
	m := make(map[string]int, len(ScoreModes))
	for _, mode := range ScoreModes {
		m[mode] = 0
	}
	return m
}

// Path returns the backing file path.
func (h *HighScores) Path() string {
	return h.path
}

// Load re-reads the file. On error the in-memory scores are reset to zero.
func (h *HighScores) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.scores = zeroScores()

	doc, err := readScores(h.path)
	if err != nil {
		return &PersistenceError{Op: "load", Path: h.path, Err: err}
	}
	for mode, score := range doc {
		h.scores[mode] = score
	}
	return nil
}

// readScores parses the file at path. A missing file yields no scores.
// Negative values read as zero.
func readScores(path string) (map[string]int, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var doc map[string]int
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	for mode, score := range doc {
		doc[mode] = max(score, 0)
	}
	return doc, nil
}

// Best returns the best known score for mode.
func (h *HighScores) Best(mode string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scores[mode]
}

// All returns a copy of every mode's best score.
func (h *HighScores) All() map[string]int {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]int, len(h.scores))
	for k, v := range h.scores {
		out[k] = v
	}
	return out
}

// Record stores score for mode if it beats the current best.
// It returns the best score after recording and whether it changed.
// The in-memory best is raised even when saving fails.
func (h *HighScores) Record(mode string, score int) (int, bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	best := h.scores[mode]
	if score <= best {
		return best, false, nil
	}

	h.scores[mode] = score
	if err := h.saveLocked(); err != nil {
		return h.scores[mode], true, err
	}

	// Another process may have saved a higher score since we loaded.
	best = h.scores[mode]
	if best > score {
		return best, false, nil
	}
	h.logger.Info("new high score", "mode", mode, "score", score)
	return best, true, nil
}

// RecordHighScore records score and logs persistence failures instead of
// surfacing them, so a broken file never interrupts play.
func (h *HighScores) RecordHighScore(mode string, score int) (int, error) {
	best, _, err := h.Record(mode, score)
	if err != nil {
		h.logger.Error("could not save high score", "mode", mode, "score", score, "err", err)
	}
	return best, err
}

// HighScore returns the best score for mode.
func (h *HighScores) HighScore(mode string) int {
	return h.Best(mode)
}

// saveLocked merges the file on disk into memory, keeping the higher score
// per mode, and writes the result atomically. A file that does not parse is
// moved aside to <path>.corrupt instead of being overwritten.
// Caller holds h.mu.
func (h *HighScores) saveLocked() error {
	disk, err := readScores(h.path)
	switch {
	case errors.Is(err, errCorrupt):
		aside := h.path + ".corrupt"
		if rerr := os.Rename(h.path, aside); rerr != nil {
			return &PersistenceError{Op: "save", Path: h.path, Err: rerr}
		}
		h.logger.Warn("unreadable high-score file moved aside", "path", aside, "err", err)
	case err != nil:
		return &PersistenceError{Op: "save", Path: h.path, Err: err}
	}
	for mode, score := range disk {
		h.scores[mode] = max(h.scores[mode], score)
	}

	data, err := yaml.Marshal(h.scores)
	if err != nil {
		return &PersistenceError{Op: "save", Path: h.path, Err: err}
	}

	dir := filepath.Dir(h.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &PersistenceError{Op: "save", Path: h.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".highscores-*.yaml")
	if err != nil {
		return &PersistenceError{Op: "save", Path: h.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: h.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: h.path, Err: err}
	}
	if err := os.Rename(tmpName, h.path); err != nil {
		os.Remove(tmpName)
		return &PersistenceError{Op: "save", Path: h.path, Err: err}
	}
	return nil
}
