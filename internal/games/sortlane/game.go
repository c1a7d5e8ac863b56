// Package sortlane adapts the lane sorting simulation to the terminal
// platform: it maps cells to world space, turns input actions into
// placement commands and draws lanes, classifiers and items.
package sortlane

import (
	"fmt"
	"time"

	"github.com/vovakirdan/sortlane/internal/config"
	"github.com/vovakirdan/sortlane/internal/core"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/levels"
	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
	"github.com/vovakirdan/sortlane/internal/registry"
)

// Game states
const (
	StatePlaying  = "playing"  // Level running
	StatePaused   = "paused"   // Simulation frozen
	StateCleared  = "cleared"  // Level complete, waiting for Enter
	StateGameOver = "gameover" // Level failed
	StateWin      = "win"      // Every campaign level complete
)

// GameMode represents the game mode.
type GameMode int

const (
	ModeCampaign GameMode = iota // Play the level files in order
	ModeEndless                  // Generated levels until one fails
)

// messageTicks is how long a feedback line stays visible.
const messageTicks = 120

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	levelsDir        string
	startLevel       string
)

// SetConfigPath sets the custom engine config path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard, fixed).
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLevelsDir loads the campaign from dir instead of the builtin levels.
func SetLevelsDir(dir string) {
	levelsDir = dir
}

// SetStartLevel starts the campaign at the level with the given ID.
func SetStartLevel(id string) {
	startLevel = id
}

// Game implements registry.Game on top of sim.Simulation.
type Game struct {
	mode GameMode

	campaign   []levels.Level
	start      string // overrides the package start level when set
	levelIndex int
	level      levels.Level
	sim        *sim.Simulation
	sinks      []sim.Sink

	state     string
	banked    int // score from levels already left behind
	tickCount int
	tickDt    time.Duration

	cursorX, cursorY int
	message          string
	messageColor     core.Color
	messageLeft      int
	stepMessages     []string

	runtime    core.RuntimeConfig
	cfg        config.SortLaneConfig
	difficulty *config.DifficultyManager
	view       viewport

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a campaign game.
func New() *Game {
	return &Game{mode: ModeCampaign}
}

// NewEndless creates an endless game.
func NewEndless() *Game {
	return &Game{mode: ModeEndless}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeEndless {
		return "sortlane_endless"
	}
	return "sortlane"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeEndless {
		return "SortLane (Endless)"
	}
	return "SortLane"
}

// StartAt makes the next Reset begin the campaign at the level with the
// given ID. Unknown IDs start from the first level.
func (g *Game) StartAt(id string) {
	g.start = id
}

// Subscribe attaches a sink to every simulation this game creates,
// including the one already running.
func (g *Game) Subscribe(sink sim.Sink) {
	if sink == nil {
		return
	}
	g.sinks = append(g.sinks, sink)
	if g.sim != nil {
		g.sim.Subscribe(sink)
	}
}

// Reset loads configuration and starts from the first level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if g.runtime.TickRate <= 0 {
		g.runtime.TickRate = core.DefaultConfig().TickRate
	}
	g.tickDt = time.Second / time.Duration(g.runtime.TickRate)

	cfg, err := config.LoadSortLane(configPath)
	if err != nil {
		cfg = config.DefaultSortLaneConfig()
	}
	config.ApplySortLanePreset(&cfg, difficultyPreset)
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.campaign = loadCampaign()
	g.levelIndex = 0
	first := startLevel
	if g.start != "" {
		first = g.start
	}
	if g.mode == ModeCampaign && first != "" {
		for i, lvl := range g.campaign {
			if lvl.ID == first {
				g.levelIndex = i
				break
			}
		}
	}

	g.banked = 0
	g.tickCount = 0
	g.message = ""
	g.messageLeft = 0
	g.startLevel()
}

// Campaign returns the campaign levels in play order, from the levels
// directory when one is set and loads cleanly, otherwise the builtin set.
func Campaign() []levels.Level {
	return loadCampaign()
}

// loadCampaign reads the level directory, falling back to the builtin set
// when it is missing or empty.
func loadCampaign() []levels.Level {
	if levelsDir != "" {
		if lvls, err := levels.NewLoader(levelsDir).LoadAll(); err == nil && len(lvls) > 0 {
			return lvls
		}
	}
	lvls, err := levels.Builtin().LoadAll()
	if err != nil {
		return nil
	}
	return lvls
}

// currentLevel returns the level definition for levelIndex with difficulty
// scaling applied.
func (g *Game) currentLevel() (levels.Level, bool) {
	p := g.progress()
	if g.mode == ModeEndless {
		return levels.Endless(g.levelIndex, g.difficulty.Level(p)), true
	}
	if g.levelIndex < 0 || g.levelIndex >= len(g.campaign) {
		return levels.Level{}, false
	}
	lvl := g.campaign[g.levelIndex]
	lvl.Config.SpawnIntervalMs = g.difficulty.SpawnInterval(lvl.Config.SpawnIntervalMs, p)
	lvl.Config.TimeLimitSeconds = g.difficulty.TimeLimit(lvl.Config.TimeLimitSeconds, p)
	return lvl, true
}

func (g *Game) progress() config.Progress {
	return config.Progress{Score: g.banked, Ticks: g.tickCount, LevelIndex: g.levelIndex}
}

// startLevel builds a fresh simulation for levelIndex.
func (g *Game) startLevel() {
	g.sim = nil
	g.stepMessages = g.stepMessages[:0]

	lvl, ok := g.currentLevel()
	if !ok {
		g.state = StateGameOver
		g.flash("No levels found", core.ColorRed)
		return
	}
	g.level = lvl

	tuning := g.cfg.Tuning()
	tuning.ItemSpeed = g.difficulty.ItemSpeed(tuning.ItemSpeed, g.progress())

	opts := []sim.Option{
		sim.WithTuning(tuning),
		sim.WithSeed(g.runtime.Seed + int64(g.levelIndex)),
		sim.WithSink(sim.SinkFunc(g.onEvent)),
	}
	for _, sink := range g.sinks {
		opts = append(opts, sim.WithSink(sink))
	}

	s, err := lvl.NewSimulation(opts...)
	if err != nil {
		g.state = StateGameOver
		g.flash(fmt.Sprintf("Level %s: %v", lvl.ID, err), core.ColorRed)
		return
	}
	g.sim = s
	g.state = StatePlaying

	g.minScreenW = 40
	g.minScreenH = hudRows + footerRows + 2*lvl.Config.LaneCount
	g.layout()

	// Cursor starts a third of the way along the first lane.
	if lanes := s.Lanes(); len(lanes) > 0 {
		g.cursorX, g.cursorY = g.view.toCell(lanes[0].PointAt(1.0 / 3))
	}

	if hint := lvl.Hint(); hint != "" {
		g.flash(hint, core.ColorCyan)
	}
}

// layout recomputes the viewport for the current screen size.
func (g *Game) layout() {
	g.screenTooSmall = g.runtime.ScreenW < g.minScreenW || g.runtime.ScreenH < g.minScreenH
	if g.sim != nil {
		g.view = newViewport(g.runtime.ScreenW, g.runtime.ScreenH, g.sim)
	}
}

// Resize adapts the view to a new terminal size without restarting the
// level. The cursor keeps its world position.
func (g *Game) Resize(w, h int) {
	var world core.Vec2
	hadView := g.sim != nil && g.view.w > 0
	if hadView {
		world = g.view.toWorld(g.cursorX, g.cursorY)
	}
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.layout()
	if hadView && g.sim != nil {
		g.cursorX, g.cursorY = g.view.toCell(world)
	}
}

// restartLevel replays the current level without banking its score.
func (g *Game) restartLevel() {
	g.startLevel()
}

// nextLevel banks the finished level and moves on.
func (g *Game) nextLevel() {
	if g.sim != nil {
		g.banked += g.sim.Stats().Score
	}
	g.levelIndex++
	if g.mode == ModeCampaign && g.levelIndex >= len(g.campaign) {
		g.levelIndex = len(g.campaign) - 1
		g.sim = nil
		g.state = StateWin
		return
	}
	g.startLevel()
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.stepMessages = g.stepMessages[:0]

	if g.screenTooSmall {
		return g.result()
	}

	if in.Has(core.ActionRestart) {
		if g.state == StateWin || g.sim == nil {
			g.Reset(g.runtime)
		} else {
			g.restartLevel()
		}
		return g.result()
	}

	if in.Has(core.ActionPause) {
		if g.state == StatePaused {
			g.state = StatePlaying
		} else if g.state == StatePlaying {
			g.state = StatePaused
		}
	}

	if g.messageLeft > 0 {
		g.messageLeft--
	}

	switch g.state {
	case StateCleared:
		if in.Has(core.ActionConfirm) {
			g.nextLevel()
		}
		return g.result()
	case StatePaused, StateGameOver, StateWin:
		return g.result()
	}

	g.tickCount++
	g.handleInput(in)

	res := g.sim.Update(g.tickDt)
	switch res.Status {
	case sim.StatusComplete:
		if g.mode == ModeCampaign && g.levelIndex == len(g.campaign)-1 {
			g.state = StateWin
		} else {
			g.state = StateCleared
		}
	case sim.StatusFailed:
		g.state = StateGameOver
	}

	return g.result()
}

func (g *Game) result() core.StepResult {
	var msgs []string
	if len(g.stepMessages) > 0 {
		msgs = append(msgs, g.stepMessages...)
	}
	return core.StepResult{State: g.State(), Messages: msgs}
}

// onEvent turns simulation events into player feedback.
func (g *Game) onEvent(e sim.Event) {
	var msg string
	color := core.ColorDefault
	switch e.Kind {
	case sim.EventCorrectCollection:
		msg = fmt.Sprintf("+%d %s sorted", e.Points, e.Category)
		color = core.ColorBrightGreen
	case sim.EventMisclassifiedRetry:
		msg = fmt.Sprintf("%s rejected, %d retries left", e.Category, e.RetriesLeft)
		color = core.ColorYellow
	case sim.EventIncorrectCollectionForced:
		msg = fmt.Sprintf("%s forced into the wrong bin", e.Category)
		color = core.ColorRed
	case sim.EventItemEscaped:
		msg = fmt.Sprintf("%s escaped lane %d", e.Category, e.LaneID+1)
		color = core.ColorBrightRed
	case sim.EventLevelComplete:
		msg = "Level complete"
		color = core.ColorBrightGreen
	case sim.EventLevelFailed:
		msg = "Level failed"
		color = core.ColorBrightRed
	default:
		return
	}
	g.flash(msg, color)
}

// flash shows msg on the status line for a couple of seconds.
func (g *Game) flash(msg string, color core.Color) {
	g.message = msg
	g.messageColor = color
	g.messageLeft = messageTicks
	g.stepMessages = append(g.stepMessages, msg)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	score := g.banked
	if g.sim != nil {
		score += g.sim.Stats().Score
	}
	return core.GameState{
		Score:    score,
		GameOver: g.state == StateGameOver || g.state == StateWin,
		Paused:   g.state == StatePaused,
		Won:      g.state == StateWin,
	}
}

// Simulation exposes the running level for headless tools and tests.
func (g *Game) Simulation() *sim.Simulation {
	return g.sim
}

// Level returns the level definition currently being played.
func (g *Game) Level() levels.Level {
	return g.level
}

// Register the games with the registry
func init() {
	registry.Register("sortlane", func() registry.Game {
		return New()
	})
	registry.Register("sortlane_endless", func() registry.Game {
		return NewEndless()
	})
}
