package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
)

// LevelResult is the outcome of one attempt at one level.
type LevelResult struct {
	ID        int64
	RunID     string
	GameID    string
	LevelID   string
	Status    string // "complete" or "failed"
	Score     int
	Correct   int
	Incorrect int
	Escaped   int
	Retries   int
	Elapsed   time.Duration
	Seed      int64
	CreatedAt time.Time
}

// Accuracy returns correct collections as a percentage of all
// collections, or 100 when nothing was collected.
func (r LevelResult) Accuracy() float64 {
	total := r.Correct + r.Incorrect
	if total == 0 {
		return 100
	}
	return float64(r.Correct) * 100 / float64(total)
}

// ResultFromStats converts final level stats into a result row.
func ResultFromStats(runID, gameID string, seed int64, st sim.Stats) LevelResult {
	return LevelResult{
		RunID:     runID,
		GameID:    gameID,
		LevelID:   st.LevelID,
		Status:    st.Status.String(),
		Score:     st.Score,
		Correct:   st.Correct,
		Incorrect: st.Incorrect,
		Escaped:   st.Escaped,
		Retries:   st.Retries,
		Elapsed:   st.Elapsed,
		Seed:      seed,
	}
}

const resultColumns = `id, run_id, game_id, level_id, status, score, correct, incorrect,
		        escaped, retries, elapsed_ms, seed, created_at`

// SaveResult records a level attempt. Returns the ID of the inserted record.
func (s *Store) SaveResult(r LevelResult) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO level_results
		 (run_id, game_id, level_id, status, score, correct, incorrect, escaped, retries, elapsed_ms, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.GameID, r.LevelID, r.Status,
		r.Score, r.Correct, r.Incorrect, r.Escaped, r.Retries,
		r.Elapsed.Milliseconds(), r.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save level result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// scanResults reads every row of a level_results query.
func scanResults(rows *sql.Rows) ([]LevelResult, error) {
	defer rows.Close()

	var results []LevelResult
	for rows.Next() {
		var r LevelResult
		var elapsedMs int64
		var createdAt any
		if err := rows.Scan(
			&r.ID, &r.RunID, &r.GameID, &r.LevelID, &r.Status,
			&r.Score, &r.Correct, &r.Incorrect, &r.Escaped, &r.Retries,
			&elapsedMs, &r.Seed, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// TopResults retrieves the best completed attempts at a level, ordered by
// score descending then by time.
func (s *Store) TopResults(levelID string, limit int) ([]LevelResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM level_results
		 WHERE level_id = ? AND status = 'complete'
		 ORDER BY score DESC, elapsed_ms ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level results: %w", err)
	}
	return scanResults(rows)
}

// RunResults retrieves every attempt recorded under a run ID in play order.
func (s *Store) RunResults(runID string) ([]LevelResult, error) {
	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM level_results
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run results: %w", err)
	}
	return scanResults(rows)
}

// BestScore returns the highest score of a completed attempt at a level.
// Returns 0 if the level was never completed.
func (s *Store) BestScore(levelID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM level_results WHERE level_id = ? AND status = 'complete'",
		levelID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// LevelSummary aggregates every attempt at one level.
type LevelSummary struct {
	LevelID     string
	Attempts    int
	Completions int
	BestScore   int
	BestTime    time.Duration // fastest completion, 0 if never completed
	LastPlayed  time.Time
}

// LevelSummary retrieves aggregated statistics for a level. A level with no
// attempts yields a zero summary.
func (s *Store) LevelSummary(levelID string) (*LevelSummary, error) {
	sum := &LevelSummary{LevelID: levelID}

	var best, fastest sql.NullInt64
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = 'complete' THEN 1 ELSE 0 END), 0),
		        MAX(CASE WHEN status = 'complete' THEN score END),
		        MIN(CASE WHEN status = 'complete' THEN elapsed_ms END),
		        MAX(created_at)
		 FROM level_results WHERE level_id = ?`,
		levelID,
	).Scan(&sum.Attempts, &sum.Completions, &best, &fastest, &lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get level summary: %w", err)
	}

	if best.Valid {
		sum.BestScore = int(best.Int64)
	}
	if fastest.Valid {
		sum.BestTime = time.Duration(fastest.Int64) * time.Millisecond
	}
	sum.LastPlayed = parseTime(lastPlayed)
	return sum, nil
}

// AllLevelSummaries retrieves summaries for every level that has been played,
// keyed by level ID.
func (s *Store) AllLevelSummaries() (map[string]*LevelSummary, error) {
	rows, err := s.db.Query(
		`SELECT level_id, COUNT(*),
		        COALESCE(SUM(CASE WHEN status = 'complete' THEN 1 ELSE 0 END), 0),
		        MAX(CASE WHEN status = 'complete' THEN score END),
		        MIN(CASE WHEN status = 'complete' THEN elapsed_ms END),
		        MAX(created_at)
		 FROM level_results
		 GROUP BY level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level summaries: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*LevelSummary)
	for rows.Next() {
		var sum LevelSummary
		var best, fastest sql.NullInt64
		var lastPlayed any
		if err := rows.Scan(&sum.LevelID, &sum.Attempts, &sum.Completions, &best, &fastest, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan summary row: %w", err)
		}
		if best.Valid {
			sum.BestScore = int(best.Int64)
		}
		if fastest.Valid {
			sum.BestTime = time.Duration(fastest.Int64) * time.Millisecond
		}
		sum.LastPlayed = parseTime(lastPlayed)
		out[sum.LevelID] = &sum
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// ClearResults deletes every attempt at a level. An empty levelID clears
// all levels.
func (s *Store) ClearResults(levelID string) error {
	var err error
	if levelID == "" {
		_, err = s.db.Exec("DELETE FROM level_results")
	} else {
		_, err = s.db.Exec("DELETE FROM level_results WHERE level_id = ?", levelID)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear level results: %w", err)
	}
	return nil
}

// ResultRecorder is a sim.Sink that saves every finished level under one
// run ID. Save errors do not interrupt play; the last one is kept for Err.
type ResultRecorder struct {
	store  *Store
	runID  string
	gameID string
	seed   int64

	mu    sync.Mutex
	saved int
	err   error
}

// NewResultRecorder creates a recorder with a fresh run ID.
func NewResultRecorder(store *Store, gameID string, seed int64) *ResultRecorder {
	return &ResultRecorder{
		store:  store,
		runID:  uuid.NewString(),
		gameID: gameID,
		seed:   seed,
	}
}

// RunID returns the identifier shared by every result this recorder saves.
func (r *ResultRecorder) RunID() string { return r.runID }

// OnEvent implements sim.Sink.
func (r *ResultRecorder) OnEvent(e sim.Event) {
	if !e.Terminal() || r.store == nil {
		return
	}
	_, err := r.store.SaveResult(ResultFromStats(r.runID, r.gameID, r.seed, e.Stats))

	r.mu.Lock()
	defer r.mu.Unlock()
	if err != nil {
		r.err = err
		return
	}
	r.saved++
}

// Saved returns how many results were written.
func (r *ResultRecorder) Saved() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.saved
}

// Err returns the last save error, if any.
func (r *ResultRecorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
