package sortlane

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
)

// LogSink writes simulation events to a structured logger. Per-item events
// are logged at debug level and level outcomes at info.
type LogSink struct {
	logger *log.Logger
}

// NewLogSink creates a sink that logs through logger.
func NewLogSink(logger *log.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// OnEvent implements sim.Sink.
func (s *LogSink) OnEvent(e sim.Event) {
	if e.Terminal() {
		st := e.Stats
		s.logger.Info(e.Kind.String(),
			"tick", e.Tick,
			"level", st.LevelID,
			"score", st.Score,
			"correct", st.Correct,
			"incorrect", st.Incorrect,
			"escaped", st.Escaped,
			"retries", st.Retries,
			"elapsed", st.Elapsed,
		)
		return
	}

	kv := []any{
		"tick", e.Tick,
		"item", e.Item,
		"category", e.Category,
		"lane", e.LaneID,
	}
	switch e.Kind {
	case sim.EventCorrectCollection:
		kv = append(kv, "classifier", e.Classifier, "points", e.Points)
	case sim.EventMisclassifiedRetry:
		kv = append(kv, "classifier", e.Classifier, "retries_left", e.RetriesLeft)
	case sim.EventIncorrectCollectionForced:
		kv = append(kv, "classifier", e.Classifier)
	}
	s.logger.Debug(e.Kind.String(), kv...)
}
