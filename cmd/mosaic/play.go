package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/memory-mosaic/internal/config"
	"github.com/vovakirdan/memory-mosaic/internal/core"
	"github.com/vovakirdan/memory-mosaic/internal/platform/tui"
	"github.com/vovakirdan/memory-mosaic/internal/puzzle"
	"github.com/vovakirdan/memory-mosaic/internal/registry"
	"github.com/vovakirdan/memory-mosaic/internal/slicer"
)

var (
	flagImage      string
	flagRule       string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: mosaic).

Controls:
  Arrows/WASD  - Move the cursor
  Space/Enter  - Flip the tile under the cursor, or drop a held tile
  G            - Grab a face-up pair tile
  Mouse        - Click to flip, drag a face-up tile to move it
  F            - Finish: check the picture
  P            - Pause
  R            - Restart (after the game ends)
  ?            - Help
  Q/Ctrl+C     - Quit

Pairing rules:
  diagonal  - a tile pairs with its mirror through the centre
  vertical  - a tile pairs with its mirror across the middle column

Examples:
  mosaic play
  mosaic play mosaic_hard
  mosaic play --image ./photo.jpg --difficulty hard
  mosaic play --rule vertical --seed 42
  mosaic play mosaic_tutorial`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagImage, "image", "", "Built-in picture name or image file (png, jpeg, gif, bmp, webp)")
	playCmd.Flags().StringVar(&flagRule, "rule", "", "Pairing rule: diagonal or vertical")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset for the mosaic game: easy or hard")
}

// terminalConfig sizes the runtime config to the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// checkPlayFlags rejects flag values the game would otherwise silently
// replace with defaults.
func checkPlayFlags(cfg config.MosaicConfig) error {
	if flagRule != "" {
		if _, err := puzzle.ParseRule(flagRule); err != nil {
			return err
		}
	}
	if flagDifficulty != "" {
		if _, ok := cfg.GridSizeForPreset(config.ParseDifficulty(flagDifficulty)); !ok {
			return fmt.Errorf("%w: unknown difficulty %q", config.ErrInvalid, flagDifficulty)
		}
	}
	return nil
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "mosaic"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'mosaic list' to see available games)", gameID)
	}

	console := stderrLogger()
	cfg := loadConfig(console)
	if err := checkPlayFlags(cfg); err != nil {
		return err
	}
	if flagImage != "" {
		if _, err := slicer.Load(flagImage); err != nil {
			console.Warn("picture unavailable, the board will be blank", "error", err)
		}
	}

	logger, closer, err := fileLogger()
	if err != nil {
		return err
	}
	defer closer.Close()

	game, err := newGame(tui.MenuResult{
		GameID:     gameID,
		Picture:    flagImage,
		Difficulty: flagDifficulty,
	}, flagRule)
	if err != nil {
		return err
	}

	start := time.Now()
	logger.Info("starting game", "game", gameID, "picture", flagImage, "seed", flagSeed)
	err = tui.Run(game, terminalConfig(), tui.ModelOptions{
		Player: newPlayer(cfg, os.Stderr, logger),
		Logger: logger,
	})
	logger.Info("game closed", "game", gameID, "played", time.Since(start).Round(time.Second))
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if state := game.State(); state.GameOver && state.Won {
		fmt.Printf("Puzzle complete! Score: %d\n", state.Score)
	}
	return nil
}
