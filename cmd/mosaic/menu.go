package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-mosaic/internal/config"
	"github.com/vovakirdan/memory-mosaic/internal/platform/tui"
	"github.com/vovakirdan/memory-mosaic/internal/slicer"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a game, picture and difficulty interactively",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to choose a game, left/right to change the picture
and Tab to change the difficulty. Quitting a game returns to the menu.

Controls:
  Up/Down/j/k  - Choose game
  Left/Right   - Change picture
  Tab          - Change difficulty
  Enter/Space  - Play
  Q            - Quit

Examples:
  mosaic menu
  mosaic menu --image ./photo.png
  mosaic menu --fps 60`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagImage, "image", "", "Extra picture offered in the menu (file path)")
	menuCmd.Flags().StringVar(&flagRule, "rule", "", "Pairing rule: diagonal or vertical")
}

// menuChoices lists the configured picture first, then the catalog, and
// the difficulty presets smallest first.
func menuChoices(cfg config.MosaicConfig, extra ...string) tui.MenuChoices {
	seen := make(map[string]bool)
	var pictures []string
	for _, p := range append(append(extra, cfg.Board.Picture), slicer.Names()...) {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		pictures = append(pictures, p)
	}
	return tui.MenuChoices{
		Pictures:     pictures,
		Difficulties: cfg.PresetNames(),
	}
}

func runMenu(_ *cobra.Command, _ []string) error {
	console := stderrLogger()
	cfg := loadConfig(console)
	if err := checkPlayFlags(cfg); err != nil {
		return err
	}

	logger, closer, err := fileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	choices := menuChoices(cfg, flagImage)
	rt := terminalConfig()
	for {
		sel, err := tui.RunMenu(rt, choices)
		if err != nil {
			return err
		}
		rt = sel.Config
		if sel.Quit || sel.GameID == "" {
			return nil
		}

		game, err := newGame(sel, flagRule)
		if err != nil {
			logger.Error("cannot create game", "game", sel.GameID, "error", err)
			continue
		}

		// Fresh shuffle for each game unless a seed was pinned.
		rt.Seed = flagSeed
		if rt.Seed == 0 {
			rt.Seed = time.Now().UnixNano()
		}

		logger.Info("starting game", "game", sel.GameID, "picture", sel.Picture, "difficulty", sel.Difficulty)
		if err := tui.Run(game, rt, tui.ModelOptions{
			Player: newPlayer(cfg, os.Stderr, logger),
			Logger: logger,
		}); err != nil {
			logger.Error("game failed", "game", sel.GameID, "error", err)
		}
	}
}
