package storage

import (
	"os"
	"path/filepath"
	"testing"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveResultGeneratesRunID(t *testing.T) {
	store := openTestStore(t)

	id, runID, err := store.SaveResult(ResultEntry{LevelID: "lvl01", Mode: "moves", Score: 1200, Stars: 1, Won: true})
	if err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("Expected positive ID, got %d", id)
	}
	if len(runID) != 36 {
		t.Errorf("Expected uuid run id, got %q", runID)
	}

	got, err := store.ResultByRunID(runID)
	if err != nil {
		t.Fatalf("ResultByRunID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Expected stored result, got nil")
	}
	if got.Score != 1200 || !got.Won || got.Stars != 1 {
		t.Errorf("Unexpected stored result: %+v", got)
	}

	missing, err := store.ResultByRunID("nope")
	if err != nil {
		t.Fatalf("ResultByRunID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for unknown run id, got %+v", missing)
	}
}

func TestSaveResultDuplicateRunID(t *testing.T) {
	store := openTestStore(t)

	e := ResultEntry{RunID: "fixed", LevelID: "lvl01", Mode: "moves", Score: 10}
	if _, _, err := store.SaveResult(e); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}
	if _, _, err := store.SaveResult(e); err == nil {
		t.Error("Expected error for duplicate run id")
	}
}

func TestTopResults(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, _, err := store.SaveResult(ResultEntry{LevelID: "lvl01", Mode: "moves", Score: score}); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}
	if _, _, err := store.SaveResult(ResultEntry{LevelID: "lvl02", Mode: "moves", Score: 500}); err != nil {
		t.Fatalf("SaveResult() failed: %v", err)
	}

	results, err := store.TopResults("lvl01", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	expected := []int{200, 100, 50}
	for i, r := range results {
		if r.Score != expected[i] {
			t.Errorf("Result %d: expected %d, got %d", i, expected[i], r.Score)
		}
		if r.LevelID != "lvl01" {
			t.Errorf("Result %d: expected level lvl01, got %s", i, r.LevelID)
		}
	}

	limited, err := store.TopResults("lvl01", 2)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 results, got %d", len(limited))
	}
}

func TestRecentResults(t *testing.T) {
	store := openTestStore(t)

	for _, lvl := range []string{"a", "b", "c"} {
		if _, _, err := store.SaveResult(ResultEntry{LevelID: lvl, Mode: "moves"}); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	recent, err := store.RecentResults(2)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(recent))
	}
	if recent[0].LevelID != "c" || recent[1].LevelID != "b" {
		t.Errorf("Expected newest first (c, b), got (%s, %s)", recent[0].LevelID, recent[1].LevelID)
	}
}

func TestBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("lvl01")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty level, got %d", best)
	}

	for _, score := range []int{100, 300, 200} {
		if _, _, err := store.SaveResult(ResultEntry{LevelID: "lvl01", Mode: "target", Score: score}); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	best, err = store.BestScore("lvl01")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected best score 300, got %d", best)
	}
}

func TestClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(ResultEntry{LevelID: "lvl01", Mode: "moves", Score: 100})
	store.SaveResult(ResultEntry{LevelID: "lvl02", Mode: "moves", Score: 200})

	if err := store.ClearResults("lvl01"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}

	results, _ := store.TopResults("lvl01", 10)
	if len(results) != 0 {
		t.Errorf("Expected 0 results after clear, got %d", len(results))
	}
	results, _ = store.TopResults("lvl02", 10)
	if len(results) != 1 {
		t.Errorf("Expected 1 result for lvl02, got %d", len(results))
	}
}

func TestLevelStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveResult(ResultEntry{LevelID: "lvl01", Mode: "moves", Score: 100, Stars: 0})
	store.SaveResult(ResultEntry{LevelID: "lvl01", Mode: "moves", Score: 300, Stars: 2, Won: true})
	store.SaveResult(ResultEntry{LevelID: "lvl02", Mode: "target", Score: 50})

	stats, err := store.GetLevelStats("lvl01")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if stats.Plays != 2 {
		t.Errorf("Expected 2 plays, got %d", stats.Plays)
	}
	if stats.Wins != 1 {
		t.Errorf("Expected 1 win, got %d", stats.Wins)
	}
	if stats.BestScore != 300 || stats.BestStars != 2 {
		t.Errorf("Expected best 300/2, got %d/%d", stats.BestScore, stats.BestStars)
	}
	if stats.AvgScore != 200 {
		t.Errorf("Expected average 200, got %f", stats.AvgScore)
	}

	empty, err := store.GetLevelStats("never")
	if err != nil {
		t.Fatalf("GetLevelStats() failed: %v", err)
	}
	if empty.Plays != 0 {
		t.Errorf("Expected 0 plays, got %d", empty.Plays)
	}

	all, err := store.GetAllLevelsStats()
	if err != nil {
		t.Fatalf("GetAllLevelsStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 levels, got %d", len(all))
	}
}
