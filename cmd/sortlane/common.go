package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/sortlane/internal/core"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/levels"
	"github.com/vovakirdan/sortlane/internal/storage"
)

// parseLogLevel maps a --log-level value to a logger level.
func parseLogLevel(s string) (log.Level, error) {
	lvl, err := log.ParseLevel(s)
	if err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// newLogger builds the CLI logger writing to stderr.
func newLogger(prefix string) *log.Logger {
	//nolint:errcheck // validated in applyGlobalFlags
	lvl, _ := parseLogLevel(flagLogLevel)
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	})
}

// runtimeConfig sizes the game to the terminal, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// levelLoader returns the loader for --levels-dir or the builtin campaign.
func levelLoader() *levels.Loader {
	if flagLevelsDir != "" {
		return levels.NewLoader(flagLevelsDir)
	}
	return levels.Builtin()
}

// openStore opens the scores database. Games still run without storage, so
// callers that can degrade get nil and a warning instead of an error.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, results will not be saved", "error", err)
		return nil
	}
	return store
}
