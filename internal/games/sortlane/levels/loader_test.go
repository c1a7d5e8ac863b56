package levels_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/vovakirdan/sortlane/internal/games/sortlane/levels"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/levels/formats"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
)

const validLevel = `id: lvl01
name: Intro
lanes: 2
categories: [paper, glass]
time_limit: 45
target: 6
spawn_interval_ms: 1500
max_concurrent: 2
metadata:
  hint: hello
`

func writeLevel(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoaderLoadAll(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "b.yaml", validLevel)
	writeLevel(t, dir, "a.yml", "id: lvl00\nlanes: 1\ncategories: [metal]\ntime_limit: 30\ntarget: 2\nspawn_interval_ms: 500\n")
	writeLevel(t, dir, "broken.yaml", "id: [unterminated")
	writeLevel(t, dir, "notes.txt", "not a level")

	loader := levels.NewLoader(dir)
	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(lvls))
	}
	if lvls[0].ID != "lvl00" || lvls[1].ID != "lvl01" {
		t.Errorf("levels not sorted by ID: %s, %s", lvls[0].ID, lvls[1].ID)
	}
	if lvls[0].Name != "lvl00" {
		t.Errorf("missing name should default to ID, got %q", lvls[0].Name)
	}
	if lvls[0].Config.MaxConcurrentItems != 3 {
		t.Errorf("default max_concurrent = %d, expected 3", lvls[0].Config.MaxConcurrentItems)
	}

	problems, err := loader.Check()
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	if len(problems) != 1 {
		t.Errorf("expected 1 problem for broken.yaml, got %v", problems)
	}
}

func TestLoaderLoadByID(t *testing.T) {
	dir := t.TempDir()
	writeLevel(t, dir, "intro.yaml", validLevel)
	loader := levels.NewLoader(dir)

	lvl, err := loader.LoadByID("lvl01")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	cfg := lvl.Config
	if lvl.Name != "Intro" || cfg.LaneCount != 2 || cfg.TargetItemCount != 6 {
		t.Errorf("unexpected level: %+v", lvl)
	}
	if cfg.TimeLimit() != 45*time.Second || cfg.SpawnInterval() != 1500*time.Millisecond {
		t.Errorf("durations = %v/%v", cfg.TimeLimit(), cfg.SpawnInterval())
	}
	if len(cfg.AllowedCategories) != 2 || cfg.AllowedCategories[1] != sim.CategoryGlass {
		t.Errorf("categories = %v", cfg.AllowedCategories)
	}
	if lvl.Hint() != "hello" {
		t.Errorf("Hint() = %q", lvl.Hint())
	}

	if _, err := loader.LoadByID("missing"); !errors.Is(err, levels.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoaderRejectsInvalidConfig(t *testing.T) {
	fsys := fstest.MapFS{
		"zero-lanes.yaml": {Data: []byte("id: z\nlanes: 0\ncategories: [paper]\ntime_limit: 10\ntarget: 1\n")},
		"bad-cat.yaml":    {Data: []byte("id: c\nlanes: 1\ncategories: [cardboard]\ntime_limit: 10\ntarget: 1\n")},
		"no-id.yaml":      {Data: []byte("lanes: 1\ncategories: [paper]\ntime_limit: 10\ntarget: 1\n")},
	}
	loader := levels.NewFSLoader(fsys, "mem")

	tests := []struct {
		file string
		code string
	}{
		{"zero-lanes.yaml", "INVALID_CONFIG"},
		{"bad-cat.yaml", "PARSE"},
		{"no-id.yaml", "MISSING_ID"},
	}

	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			_, err := loader.LoadFile(tc.file)
			var verr levels.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Code != tc.code {
				t.Errorf("Code = %s, expected %s", verr.Code, tc.code)
			}
		})
	}

	_, err := loader.LoadFile("zero-lanes.yaml")
	var cerr *sim.ConfigurationError
	if !errors.As(err, &cerr) || cerr.Field != "LaneCount" {
		t.Errorf("expected wrapped ConfigurationError on LaneCount, got %v", err)
	}
}

func TestLoaderDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"a.yaml": {Data: []byte(validLevel)},
		"b.yaml": {Data: []byte(validLevel)},
	}
	loader := levels.NewFSLoader(fsys, "mem")

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) != 1 || lvls[0].FilePath != "a.yaml" {
		t.Errorf("expected only the first definition, got %+v", lvls)
	}
}

func TestBuiltinCampaign(t *testing.T) {
	loader := levels.Builtin()
	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(lvls) < 5 {
		t.Fatalf("expected at least 5 builtin levels, got %d", len(lvls))
	}
	problems, _ := loader.Check()
	if len(problems) != 0 {
		t.Errorf("builtin campaign has invalid files: %v", problems)
	}

	for _, lvl := range lvls {
		if _, err := lvl.NewSimulation(); err != nil {
			t.Errorf("level %s: %v", lvl.ID, err)
		}
	}

	next, ok := loader.Next(lvls[0].ID)
	if !ok || next.ID != lvls[1].ID {
		t.Errorf("Next(%s) = %s/%v, expected %s", lvls[0].ID, next.ID, ok, lvls[1].ID)
	}
	if _, ok := loader.Next(lvls[len(lvls)-1].ID); ok {
		t.Error("Next on the last level should report false")
	}
}

func TestEndlessGrowsHarder(t *testing.T) {
	prev := levels.Endless(0, 0)
	if err := prev.Config.Validate(); err != nil {
		t.Fatalf("endless level 0 invalid: %v", err)
	}
	for i := 1; i < 20; i++ {
		lvl := levels.Endless(i, 0.5)
		if err := lvl.Config.Validate(); err != nil {
			t.Fatalf("endless level %d invalid: %v", i, err)
		}
		if lvl.Config.TargetItemCount <= prev.Config.TargetItemCount {
			t.Errorf("level %d target did not grow", i)
		}
		if lvl.Config.LaneCount < prev.Config.LaneCount {
			t.Errorf("level %d lost lanes", i)
		}
		prev = lvl
	}

	easy := levels.Endless(4, 0)
	hard := levels.Endless(4, 1)
	if hard.Config.SpawnIntervalMs >= easy.Config.SpawnIntervalMs {
		t.Error("higher difficulty should spawn faster")
	}
	if hard.Config.TimeLimitSeconds >= easy.Config.TimeLimitSeconds {
		t.Error("higher difficulty should allow less time")
	}
}

func TestMarshalRoundTripKeepsCategories(t *testing.T) {
	lvl := levels.Endless(6, 0)
	data, err := formats.MarshalYAML(lvl.Config, map[string]string{"source": "endless"})
	if err != nil {
		t.Fatalf("MarshalYAML failed: %v", err)
	}
	parsed, err := formats.ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML failed: %v", err)
	}
	if len(parsed.Config.AllowedCategories) != len(lvl.Config.AllowedCategories) {
		t.Errorf("categories = %v, expected %v", parsed.Config.AllowedCategories, lvl.Config.AllowedCategories)
	}
	if parsed.Metadata["source"] != "endless" {
		t.Errorf("metadata lost: %v", parsed.Metadata)
	}
}
