package storage

import (
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestHighScoresMissingFileIsZero(t *testing.T) {
	h := NewHighScores(filepath.Join(t.TempDir(), "highscores.yaml"), nil)

	all := h.All()
	for _, mode := range ScoreModes {
		assert.Equal(t, 0, all[mode], "mode %s", mode)
	}
}

func TestHighScoresRecordOnlyWhenBeaten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.yaml")
	h := NewHighScores(path, nil)

	best, changed, err := h.Record("classic", 30)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 30, best)

	best, changed, err = h.Record("classic", 20)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 30, best)

	// A fresh store sees the persisted value.
	reopened := NewHighScores(path, nil)
	assert.Equal(t, 30, reopened.Best("classic"))
	assert.Equal(t, 0, reopened.Best("obstacle"))
}

func TestHighScoresFileIsFlatMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.yaml")
	h := NewHighScores(path, nil)
	_, _, err := h.Record("ai_battle", 70)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]int
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, map[string]int{"classic": 0, "ai_battle": 70, "obstacle": 0}, doc)
}

func TestHighScoresNeverDecrease(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.yaml")
	h := NewHighScores(path, nil)
	rng := rand.New(rand.NewSource(3))

	prev := 0
	for i := 0; i < 100; i++ {
		_, _, err := h.Record("obstacle", rng.Intn(500))
		require.NoError(t, err)

		persisted := NewHighScores(path, nil).Best("obstacle")
		require.GreaterOrEqual(t, persisted, prev, "persisted score decreased at save %d", i)
		prev = persisted
	}
}

func TestHighScoresUnreadableFileRecovers(t *testing.T) {
	// A directory where the file should be cannot be read as YAML.
	path := t.TempDir()

	h := NewHighScores(path, nil)
	assert.Equal(t, 0, h.Best("classic"))

	err := h.Load()
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr), "expected PersistenceError, got %v", err)
	assert.Equal(t, "load", perr.Op)
}

func TestHighScoresCorruptFileRecovers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.yaml")
	require.NoError(t, os.WriteFile(path, []byte("classic: [not a number"), 0o644))

	h := NewHighScores(path, nil)
	assert.Equal(t, 0, h.Best("classic"))
}

func TestHighScoresUnwritableKeepsPlaying(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	h := NewHighScores(filepath.Join(blocker, "highscores.yaml"), nil)

	best, err := h.RecordHighScore("classic", 40)
	var perr *PersistenceError
	require.True(t, errors.As(err, &perr), "expected PersistenceError, got %v", err)
	assert.Equal(t, "save", perr.Op)
	assert.NotNil(t, errors.Unwrap(err))

	// The session still knows its best score.
	assert.Equal(t, 40, best)
	assert.Equal(t, 40, h.HighScore("classic"))
}

func TestHighScoresSharedFileKeepsHigherBest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.yaml")
	a := NewHighScores(path, nil)
	b := NewHighScores(path, nil)

	_, _, err := b.Record("classic", 200)
	require.NoError(t, err)

	// a loaded before b saved and only knows 0.
	best, changed, err := a.Record("classic", 150)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 200, best)

	_, _, err = a.Record("obstacle", 10)
	require.NoError(t, err)
	_, _, err = b.Record("ai_battle", 70)
	require.NoError(t, err)

	fresh := NewHighScores(path, nil)
	assert.Equal(t, map[string]int{"classic": 200, "ai_battle": 70, "obstacle": 10}, fresh.All())
}

func TestHighScoresCorruptFileMovedAside(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.yaml")
	broken := []byte("classic: 500\nobstacle: [")
	require.NoError(t, os.WriteFile(path, broken, 0o644))

	h := NewHighScores(path, nil)
	_, _, err := h.Record("obstacle", 10)
	require.NoError(t, err)

	kept, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	assert.Equal(t, broken, kept)
	assert.Equal(t, 10, NewHighScores(path, nil).Best("obstacle"))
}
