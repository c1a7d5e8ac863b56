package sim

import (
	"math"
	"time"
)

// Status is the level lifecycle state. It leaves StatusActive at most once.
type Status int

const (
	StatusActive Status = iota
	StatusComplete
	StatusFailed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusComplete:
		return "complete"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Stats is a read-only snapshot of level progress.
type Stats struct {
	LevelID   string
	Target    int
	TimeLimit time.Duration
	Elapsed   time.Duration

	Spawned   int
	Correct   int
	Incorrect int // forced collections only
	Escaped   int
	Retries   int
	Score     int

	Status Status
}

// Remaining returns the time left, which may be negative after a timeout.
func (s Stats) Remaining() time.Duration {
	return s.TimeLimit - s.Elapsed
}

// Progress returns the share of the target collected correctly, 0..100.
func (s Stats) Progress() float64 {
	if s.Target <= 0 {
		return 100
	}
	return math.Min(100, float64(s.Correct)/float64(s.Target)*100)
}

// Accuracy returns correct / (correct + incorrect) as a percentage. It is
// 100 when nothing has been collected yet.
func (s Stats) Accuracy() float64 {
	attempts := s.Correct + s.Incorrect
	if attempts == 0 {
		return 100
	}
	return float64(s.Correct) / float64(attempts) * 100
}

// Level is the level controller: it owns the timer and the counters and
// decides completion and failure. Nothing else mutates Stats.
type Level struct {
	stats Stats
}

// NewLevel creates an active level from cfg.
func NewLevel(cfg LevelConfig) *Level {
	return &Level{
		stats: Stats{
			LevelID:   cfg.ID,
			Target:    cfg.TargetItemCount,
			TimeLimit: cfg.TimeLimit(),
			Status:    StatusActive,
		},
	}
}

// Stats returns a snapshot of the current statistics.
func (l *Level) Stats() Stats { return l.stats }

// Status returns the current status.
func (l *Level) Status() Status { return l.stats.Status }

// Active reports whether the level is still being played.
func (l *Level) Active() bool { return l.stats.Status == StatusActive }

// Advance adds dt to the elapsed time of an active level.
func (l *Level) Advance(dt time.Duration) {
	if !l.Active() {
		return
	}
	l.stats.Elapsed += dt
}

// Record folds an item event into the counters. Level events and events
// arriving after the level ended are ignored.
func (l *Level) Record(ev Event) {
	if !l.Active() {
		return
	}
	switch ev.Kind {
	case EventItemSpawned:
		l.stats.Spawned++
	case EventCorrectCollection:
		l.stats.Correct++
		l.stats.Score += ev.Points
	case EventMisclassifiedRetry:
		l.stats.Retries++
	case EventIncorrectCollectionForced:
		l.stats.Incorrect++
	case EventItemEscaped:
		l.stats.Escaped++
	}
}

// Settle evaluates the end conditions once all of a tick's events have been
// recorded. live is the number of items that are not yet terminal. When the
// level ends it returns the LevelComplete or LevelFailed event; failure is
// checked first.
func (l *Level) Settle(live int) (Event, bool) {
	if !l.Active() {
		return Event{}, false
	}

	s := &l.stats
	switch {
	case s.Escaped > 0 || s.Remaining() <= 0:
		s.Status = StatusFailed
		return Event{Kind: EventLevelFailed, Stats: *s}, true
	case s.Spawned >= s.Target && s.Correct >= s.Target && live == 0:
		s.Status = StatusComplete
		return Event{Kind: EventLevelComplete, Stats: *s}, true
	}
	return Event{}, false
}
