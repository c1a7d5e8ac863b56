package sortlane

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
)

// Snapshot is a flat copy of the observable game state, used for
// determinism checks and replay comparison.
type Snapshot struct {
	Tick       uint64
	Mode       int // 0=Campaign, 1=Endless
	LevelIndex int
	LevelID    string
	State      string
	Score      int
	Cursor     [2]int
	Selected   int

	Stats sim.Stats

	// Each classifier is 4 values: Category, LaneID, X, Y
	ClassifierData []float64

	// Each item is 5 values: ID, Category, LaneID, Progress, State
	ItemData []float64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:       int(g.mode),
		LevelIndex: g.levelIndex,
		LevelID:    g.level.ID,
		State:      g.state,
		Score:      g.State().Score,
		Cursor:     [2]int{g.cursorX, g.cursorY},
	}
	if g.sim == nil {
		return snap
	}

	snap.Tick = g.sim.Tick()
	snap.Selected = int(g.sim.SelectedCategory())
	snap.Stats = g.sim.Stats()

	for _, c := range g.sim.Classifiers() {
		snap.ClassifierData = append(snap.ClassifierData,
			float64(c.Primary()), float64(c.LaneID()), c.Position().X, c.Position().Y)
	}
	for _, it := range g.sim.LiveItems() {
		snap.ItemData = append(snap.ItemData,
			float64(it.ID()), float64(it.Category()), float64(it.LaneID()), it.Progress(), float64(it.State()))
	}
	return snap
}

// Hash returns an FNV-1a digest of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	put := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:]) //nolint:errcheck // hash.Hash never fails
	}
	putInt := func(v int) { put(uint64(int64(v))) } //#nosec G115 -- hash computation

	put(snap.Tick)
	putInt(snap.Mode)
	putInt(snap.LevelIndex)
	h.Write([]byte(snap.LevelID)) //nolint:errcheck // hash.Hash never fails
	h.Write([]byte(snap.State))   //nolint:errcheck // hash.Hash never fails
	putInt(snap.Score)
	putInt(snap.Cursor[0])
	putInt(snap.Cursor[1])
	putInt(snap.Selected)

	st := snap.Stats
	for _, v := range []int{st.Spawned, st.Correct, st.Incorrect, st.Escaped, st.Retries, st.Score, int(st.Status)} {
		putInt(v)
	}
	put(uint64(st.Elapsed)) //#nosec G115 -- hash computation

	for _, v := range snap.ClassifierData {
		put(math.Float64bits(v))
	}
	for _, v := range snap.ItemData {
		put(math.Float64bits(v))
	}
	return h.Sum64()
}
