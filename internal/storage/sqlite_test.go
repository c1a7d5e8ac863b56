package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreInMemory(t *testing.T) {
	store, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveScore("sortlane", 10); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if high, _ := store.HighScore("sortlane"); high != 10 {
		t.Errorf("HighScore = %d, expected 10", high)
	}
}

func TestStoreSessionScores(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("sortlane", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("sortlane_endless", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("sortlane", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 2 || scores[0].Score != 200 || scores[1].Score != 100 {
		t.Errorf("unexpected top scores: %+v", scores)
	}

	all, err := store.TopScores("sortlane", 0)
	if err != nil || len(all) != 3 {
		t.Errorf("TopScores(limit 0) = %d entries, %v", len(all), err)
	}

	high, err := store.HighScore("sortlane_endless")
	if err != nil || high != 500 {
		t.Errorf("HighScore = %d, %v", high, err)
	}
	if high, _ := store.HighScore("unknown"); high != 0 {
		t.Errorf("HighScore for unplayed game = %d, expected 0", high)
	}

	stats, err := store.GetGameStats("sortlane")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 200 || stats.TotalScore != 350 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	if err := store.ClearScores("sortlane"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("sortlane", 10); len(scores) != 0 {
		t.Errorf("expected no scores after clear, got %d", len(scores))
	}
}

func TestStoreLevelResults(t *testing.T) {
	store := openTestStore(t)

	results := []LevelResult{
		{RunID: "a", GameID: "sortlane", LevelID: "01", Status: "complete", Score: 500, Correct: 5, Elapsed: 20 * time.Second},
		{RunID: "a", GameID: "sortlane", LevelID: "02", Status: "failed", Score: 300, Correct: 3, Escaped: 1},
		{RunID: "b", GameID: "sortlane", LevelID: "01", Status: "complete", Score: 500, Correct: 5, Incorrect: 1, Elapsed: 15 * time.Second},
		{RunID: "b", GameID: "sortlane", LevelID: "01", Status: "failed", Score: 900},
	}
	for _, r := range results {
		if _, err := store.SaveResult(r); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	top, err := store.TopResults("01", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("failed attempts must not rank, got %d results", len(top))
	}
	if top[0].RunID != "b" || top[0].Elapsed != 15*time.Second {
		t.Errorf("ties should break on faster time, got %+v", top[0])
	}

	best, err := store.BestScore("01")
	if err != nil || best != 500 {
		t.Errorf("BestScore = %d, %v", best, err)
	}
	if best, _ := store.BestScore("02"); best != 0 {
		t.Errorf("BestScore for a never-completed level = %d, expected 0", best)
	}

	sum, err := store.LevelSummary("01")
	if err != nil {
		t.Fatalf("LevelSummary() failed: %v", err)
	}
	if sum.Attempts != 3 || sum.Completions != 2 || sum.BestScore != 500 || sum.BestTime != 15*time.Second {
		t.Errorf("unexpected summary: %+v", sum)
	}

	empty, err := store.LevelSummary("nope")
	if err != nil || empty.Attempts != 0 || empty.BestTime != 0 {
		t.Errorf("empty summary = %+v, %v", empty, err)
	}

	all, err := store.AllLevelSummaries()
	if err != nil {
		t.Fatalf("AllLevelSummaries() failed: %v", err)
	}
	if len(all) != 2 || all["02"].Completions != 0 || all["02"].Attempts != 1 {
		t.Errorf("unexpected summaries: %+v", all)
	}

	run, err := store.RunResults("a")
	if err != nil || len(run) != 2 || run[0].LevelID != "01" || run[1].Escaped != 1 {
		t.Errorf("RunResults = %+v, %v", run, err)
	}

	if err := store.ClearResults("01"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	if top, _ := store.TopResults("01", 10); len(top) != 0 {
		t.Errorf("expected level 01 cleared, got %d", len(top))
	}
	if err := store.ClearResults(""); err != nil {
		t.Fatalf("ClearResults(all) failed: %v", err)
	}
	if all, _ := store.AllLevelSummaries(); len(all) != 0 {
		t.Errorf("expected every level cleared, got %d", len(all))
	}
}

func TestLevelResultAccuracy(t *testing.T) {
	tests := []struct {
		name     string
		r        LevelResult
		expected float64
	}{
		{"nothing collected", LevelResult{}, 100},
		{"all correct", LevelResult{Correct: 4}, 100},
		{"three of four", LevelResult{Correct: 3, Incorrect: 1}, 75},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Accuracy(); got != tc.expected {
				t.Errorf("Accuracy() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestResultRecorder(t *testing.T) {
	store := openTestStore(t)
	rec := NewResultRecorder(store, "sortlane", 42)
	if rec.RunID() == "" {
		t.Fatal("recorder should have a run ID")
	}

	rec.OnEvent(sim.Event{Kind: sim.EventItemSpawned})
	rec.OnEvent(sim.Event{Kind: sim.EventLevelComplete, Stats: sim.Stats{
		LevelID: "01", Status: sim.StatusComplete, Score: 300, Correct: 3, Elapsed: 12 * time.Second,
	}})
	rec.OnEvent(sim.Event{Kind: sim.EventLevelFailed, Stats: sim.Stats{
		LevelID: "02", Status: sim.StatusFailed, Escaped: 1,
	}})

	if rec.Saved() != 2 || rec.Err() != nil {
		t.Fatalf("Saved = %d, Err = %v", rec.Saved(), rec.Err())
	}

	run, err := store.RunResults(rec.RunID())
	if err != nil {
		t.Fatalf("RunResults() failed: %v", err)
	}
	if len(run) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run))
	}
	if run[0].Status != "complete" || run[0].Seed != 42 || run[0].Elapsed != 12*time.Second {
		t.Errorf("unexpected first result: %+v", run[0])
	}
	if run[1].Status != "failed" || run[1].GameID != "sortlane" {
		t.Errorf("unexpected second result: %+v", run[1])
	}

	other := NewResultRecorder(store, "sortlane", 42)
	if other.RunID() == rec.RunID() {
		t.Error("each recorder should get its own run ID")
	}
}

func TestResultRecorderSimulation(t *testing.T) {
	store := openTestStore(t)
	rec := NewResultRecorder(store, "sortlane", 7)

	s, err := sim.New(sim.LevelConfig{
		ID:                 "auto",
		LaneCount:          1,
		AllowedCategories:  []sim.Category{sim.CategoryPaper},
		TimeLimitSeconds:   60,
		TargetItemCount:    2,
		SpawnIntervalMs:    1000,
		MaxConcurrentItems: 2,
	}, sim.WithSeed(7), sim.WithSink(rec))
	if err != nil {
		t.Fatalf("sim.New failed: %v", err)
	}

	st := sim.RunHeadless(s, time.Second/60, 60*60)
	if st.Status != sim.StatusComplete {
		t.Fatalf("autoplay did not complete: %+v", st)
	}

	best, err := store.BestScore("auto")
	if err != nil || best != st.Score {
		t.Errorf("BestScore = %d, %v, expected %d", best, err, st.Score)
	}
}
