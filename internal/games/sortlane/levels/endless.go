package levels

import (
	"fmt"
	"math"

	"github.com/vovakirdan/sortlane/internal/games/sortlane/sim"
)

// EndlessPrefix is the ID prefix of generated endless levels.
const EndlessPrefix = "endless-"

// Endless generates the index-th (0-based) level of endless mode.
// difficulty in [0, 1] tightens the timer and the spawn rate on top of the
// growth that comes from the index itself.
func Endless(index int, difficulty float64) Level {
	if index < 0 {
		index = 0
	}
	difficulty = math.Max(0, math.Min(1, difficulty))

	lanes := min(1+index/2, 5)
	catCount := min(1+(index+1)/2, int(sim.CategoryCount))
	target := 5 + 2*index

	all := sim.AllCategories()
	cats := make([]sim.Category, catCount)
	copy(cats, all[:catCount])

	interval := float64(max(600, 2400-150*index))
	interval *= 1 - 0.35*difficulty

	timePerItem := 6.0 * (1 - 0.3*difficulty)
	timeLimit := math.Round(20 + float64(target)*timePerItem)

	id := fmt.Sprintf("%s%03d", EndlessPrefix, index+1)
	return Level{
		ID:   id,
		Name: fmt.Sprintf("Endless %d", index+1),
		Config: sim.LevelConfig{
			ID:                 id,
			Name:               fmt.Sprintf("Endless %d", index+1),
			LaneCount:          lanes,
			AllowedCategories:  cats,
			TimeLimitSeconds:   timeLimit,
			TargetItemCount:    target,
			SpawnIntervalMs:    int(interval),
			MaxConcurrentItems: min(2+index/2, 6),
		},
	}
}
