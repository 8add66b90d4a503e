package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveRunAndLookup(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{Mode: "ai_battle", Score: 120, AIScore: 90, Level: 3, Reason: "opponent"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("expected positive row id, got %d", id)
	}

	runs, err := store.RecentRuns(1)
	if err != nil || len(runs) != 1 {
		t.Fatalf("RecentRuns() = %v, %v", runs, err)
	}
	got := runs[0]
	if _, err := uuid.Parse(got.RunID); err != nil {
		t.Errorf("generated run id %q is not a UUID: %v", got.RunID, err)
	}
	if got.Score != 120 || got.AIScore != 90 || got.Level != 3 || got.Reason != "opponent" {
		t.Errorf("round-tripped run = %+v", got)
	}
}

func TestStoreTopScores(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveRun(Run{Mode: "classic", Score: s}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, err := store.SaveRun(Run{Mode: "obstacle", Score: 500}); err != nil {
		t.Fatal(err)
	}

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}
	if scores[0].Level != 1 {
		t.Errorf("bare score should default to level 1, got %d", scores[0].Level)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{Mode: "classic", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores("classic", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Mode: "classic", Score: 100})
	store.SaveRun(Run{Mode: "classic", Score: 200})
	store.SaveRun(Run{Mode: "obstacle", Score: 300})

	if err := store.ClearScores("classic"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	classic, _ := store.TopScores("classic", 10)
	if len(classic) != 0 {
		t.Errorf("Expected 0 classic scores after clear, got %d", len(classic))
	}
	obstacle, _ := store.TopScores("obstacle", 10)
	if len(obstacle) != 1 {
		t.Errorf("Obstacle scores should not be affected by clearing classic")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Mode: "obstacle", Score: 40, Level: 1, Reason: "wall"})
	store.SaveRun(Run{Mode: "obstacle", Score: 160, Level: 4, Reason: "obstacle"})
	store.SaveRun(Run{Mode: "classic", Score: 10, Level: 1, Reason: "self"})

	stats, err := store.GetGameStats("obstacle")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 160 || stats.BestLevel != 4 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 100 {
		t.Errorf("AvgScore = %v, expected 100", stats.AvgScore)
	}

	empty, err := store.GetGameStats("ai_battle")
	if err != nil {
		t.Fatalf("GetGameStats() on empty mode failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 {
		t.Errorf("empty mode stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected stats for 2 modes, got %d", len(all))
	}
	if all["classic"] == nil || all["classic"].HighScore != 10 {
		t.Errorf("classic stats = %+v", all["classic"])
	}
}
