// mosaic is a terminal picture puzzle: find mirrored tile pairs, drag them
// home and rebuild the picture before the clock runs out.
//
// Usage:
//
//	mosaic list              - List available games
//	mosaic play [game]       - Play a game (default: mosaic)
//	mosaic menu              - Pick game, picture and difficulty interactively
//	mosaic serve             - Start SSH server for remote play
//	mosaic pictures          - List or preview the built-in pictures
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set RNG seed for reproducible shuffles
//	--config <path>     - Custom mosaic.yaml
//	--log-file <path>   - Write logs to a file while the game runs
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-mosaic/internal/audio"
	"github.com/vovakirdan/memory-mosaic/internal/config"
	"github.com/vovakirdan/memory-mosaic/internal/core"
	"github.com/vovakirdan/memory-mosaic/internal/games/mosaic"
	"github.com/vovakirdan/memory-mosaic/internal/platform/tui"
	"github.com/vovakirdan/memory-mosaic/internal/registry"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogFile  string
	flagLogLevel string
	flagMute     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mosaic",
	Short: "Memory Mosaic - a picture memory puzzle for your terminal",
	Long: `Memory Mosaic slices a picture into a shuffled grid of face-down tiles.
Flip two tiles: mirrored partners stay face-up. Drag face-up tiles onto
their true cells to lock them, and rebuild the picture before time runs out.

Available commands:
  list      - Show all available games
  play      - Play a game directly
  menu      - Interactive picker for game, picture and difficulty
  serve     - Start SSH server for remote play
  pictures  - List or preview the built-in pictures

Examples:
  mosaic play
  mosaic play mosaic_hard --image ./cat.png
  mosaic play --rule vertical --difficulty hard
  mosaic play mosaic_tutorial
  mosaic serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", core.DefaultConfig().TickRate, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a custom mosaic.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: ~/.mosaic/mosaic.log)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable sound cues")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(picturesCmd)
}

// stderrLogger logs to the terminal before or without a full-screen UI.
func stderrLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "mosaic"})
	setLevel(logger)
	return logger
}

// fileLogger logs to the log file so full-screen games keep a clean
// terminal. The returned closer must be called on exit.
func fileLogger() (*log.Logger, io.Closer, error) {
	path := flagLogFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".mosaic", "mosaic.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "mosaic"})
	setLevel(logger)
	return logger, f, nil
}

func setLevel(logger *log.Logger) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)
}

// loadConfig validates the configuration up front so mistakes are reported
// on the terminal rather than only inside the game.
func loadConfig(logger *log.Logger) config.MosaicConfig {
	cfg, err := config.LoadMosaic(flagConfig)
	if err != nil {
		logger.Warn("using default configuration", "error", err)
	}
	return cfg
}

// newPlayer builds the sound player for a terminal.
func newPlayer(cfg config.MosaicConfig, out io.Writer, logger *log.Logger) audio.Player {
	enabled := cfg.Audio.Enabled && !flagMute
	return audio.NewLogged(audio.FromConfig(enabled, cfg.Audio.Volume, out), logger)
}

// newGame creates a game for a menu or command-line selection. Options are
// passed per instance so SSH sessions never share them.
func newGame(sel tui.MenuResult, rule string) (registry.Game, error) {
	opts := mosaic.Options{
		ConfigPath: flagConfig,
		Picture:    sel.Picture,
		Rule:       rule,
	}
	switch sel.GameID {
	case "mosaic":
		opts.Difficulty = sel.Difficulty
		return mosaic.NewWithOptions(mosaic.ModeClassic, opts), nil
	case "mosaic_hard":
		return mosaic.NewWithOptions(mosaic.ModeHard, opts), nil
	case "mosaic_tutorial":
		return mosaic.NewTutorialWithOptions(opts), nil
	}
	return registry.Create(sel.GameID)
}
