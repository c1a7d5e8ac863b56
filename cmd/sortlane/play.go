package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/sortlane/internal/games/sortlane/levels"
	"github.com/vovakirdan/sortlane/internal/platform/tui"
)

var flagEndless bool

var playCmd = &cobra.Command{
	Use:   "play [level-id]",
	Short: "Play the campaign",
	Long: `Start playing the campaign, from the first level or from the given
level ID. Run 'sortlane levels' to see the IDs.

Controls:
  Arrows/WASD      - Move the cursor
  Space/Left click - Place a classifier of the selected category
  X/Right click    - Remove the classifier under the cursor
  1-6, Tab         - Select category
  Enter            - Next level after a clear
  P                - Pause
  R                - Restart level
  Esc/B            - Back (when paused or over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, extra retries per item
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty, fewer retries
  fixed  - No progression, stays at config's initial level

Examples:
  sortlane play
  sortlane play 04-heavy-metal
  sortlane play --endless --difficulty hard
  sortlane play --config ./my-sortlane.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Play generated levels until one fails")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "sortlane"
	start := ""
	if flagEndless {
		gameID = "sortlane_endless"
	}

	if len(args) == 1 {
		if flagEndless {
			return errors.New("a level ID cannot be combined with --endless")
		}
		lvl, err := levelLoader().LoadByID(args[0])
		if errors.Is(err, levels.ErrNotFound) {
			return errors.New("unknown level " + args[0] + ", run 'sortlane levels' to see available levels")
		}
		if err != nil {
			return err
		}
		start = lvl.ID
	}

	game, err := tui.NewGame(gameID, start)
	if err != nil {
		return err
	}

	logger := newLogger("sortlane")
	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	_, err = tui.Run(game, store, logger, runtimeConfig())
	return err
}
