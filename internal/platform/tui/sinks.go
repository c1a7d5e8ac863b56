package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sortlane/internal/games/sortlane"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
	"github.com/vovakirdan/sortlane/internal/registry"
	"github.com/vovakirdan/sortlane/internal/storage"
)

// eventSource is implemented by games that publish simulation events.
type eventSource interface {
	Subscribe(sink sim.Sink)
}

// attachSinks subscribes a result recorder and an event logger to game when
// it publishes events. It returns the recorder, or nil without a store.
func attachSinks(game registry.Game, store *storage.Store, logger *log.Logger, seed int64) *storage.ResultRecorder {
	src, ok := game.(eventSource)
	if !ok {
		return nil
	}

	if logger != nil {
		src.Subscribe(sortlane.NewLogSink(logger.With("game", game.ID())))
	}

	if store == nil {
		return nil
	}
	rec := storage.NewResultRecorder(store, game.ID(), seed)
	src.Subscribe(rec)
	return rec
}
