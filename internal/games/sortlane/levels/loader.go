// Package levels loads level definitions for SortLane from YAML files.
// This package depends on sim but sim does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/sortlane/internal/games/sortlane/levels/formats"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// ValidationError describes why a level file was rejected.
type ValidationError struct {
	Code    string
	Message string
	Err     error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// ErrNotFound is returned by LoadByID for an unknown level.
var ErrNotFound = errors.New("level not found")

// Level represents a complete level definition.
type Level struct {
	ID       string
	Name     string
	Config   sim.LevelConfig
	Metadata map[string]string
	FilePath string
}

// Hint returns the optional hint shown before the level starts.
func (l Level) Hint() string {
	return l.Metadata["hint"]
}

// NewSimulation builds a simulation for this level.
func (l Level) NewSimulation(opts ...sim.Option) (*sim.Simulation, error) {
	return sim.New(l.Config, opts...)
}

// Loader handles loading levels from a file system.
type Loader struct {
	FS   fs.FS
	Root string // for messages only
}

// NewLoader creates a loader over a directory on disk.
func NewLoader(root string) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root}
}

// NewFSLoader creates a loader over an arbitrary file system.
func NewFSLoader(fsys fs.FS, name string) *Loader {
	return &Loader{FS: fsys, Root: name}
}

// Builtin returns a loader over the embedded campaign.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("levels: builtin campaign missing: %v", err))
	}
	return NewFSLoader(sub, "builtin")
}

// LoadAll recursively scans and loads all level files.
// Invalid files and duplicate IDs are skipped. Returns levels sorted by ID.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.scan()
	return levels, err
}

// Check loads every file and returns the problems found, one per
// rejected file.
func (l *Loader) Check() ([]error, error) {
	_, problems, err := l.scan()
	return problems, err
}

func (l *Loader) scan() ([]Level, []error, error) {
	var levels []Level
	var problems []error
	seen := make(map[string]string)

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			problems = append(problems, err)
			return nil
		}
		if first, dup := seen[level.ID]; dup {
			problems = append(problems, ValidationError{
				Code:    "DUPLICATE_ID",
				Message: fmt.Sprintf("%s: id %q already defined in %s", p, level.ID, first),
			})
			return nil
		}
		seen[level.ID] = p
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, problems, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	parsed, err := parseByExtension(data, strings.ToLower(path.Ext(p)))
	if err != nil {
		return Level{}, ValidationError{Code: "PARSE", Message: fmt.Sprintf("%s: %v", p, err), Err: err}
	}

	if parsed.ID == "" {
		return Level{}, ValidationError{Code: "MISSING_ID", Message: fmt.Sprintf("%s: level has no id", p)}
	}
	if err := parsed.Config.Validate(); err != nil {
		return Level{}, ValidationError{Code: "INVALID_CONFIG", Message: fmt.Sprintf("%s: %v", p, err), Err: err}
	}

	return Level{
		ID:       parsed.ID,
		Name:     parsed.Name,
		Config:   parsed.Config,
		Metadata: parsed.Metadata,
		FilePath: p,
	}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Next returns the level following id in ID order.
func (l *Loader) Next(id string) (Level, bool) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, false
	}
	for i, lvl := range levels {
		if lvl.ID == id && i+1 < len(levels) {
			return levels[i+1], true
		}
	}
	return Level{}, false
}

func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

func parseByExtension(data []byte, ext string) (formats.Level, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
