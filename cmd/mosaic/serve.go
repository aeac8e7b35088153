package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memory-mosaic/internal/audio"
	"github.com/vovakirdan/memory-mosaic/internal/platform/tui"
	"github.com/vovakirdan/memory-mosaic/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Memory Mosaic SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the game menu. Picture and
difficulty choices are per session.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.mosaic/host_key

Examples:
  mosaic serve                           # Listen on :23234 with auto-generated key
  mosaic serve --ssh :2222               # Listen on port 2222
  mosaic serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagRule, "rule", "", "Pairing rule for every session: diagonal or vertical")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger := stderrLogger()
	logger.SetReportTimestamp(true)
	cfg := loadConfig(logger)
	if err := checkPlayFlags(cfg); err != nil {
		return err
	}

	sshCfg := tui.DefaultSSHServerConfig()
	sshCfg.Address = flagSSHAddr
	sshCfg.HostKeyPath = flagHostKey
	sshCfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	sshCfg.TickRate = flagFPS
	sshCfg.Logger = logger
	sshCfg.Choices = menuChoices(cfg)
	sshCfg.NewGame = func(sel tui.MenuResult) (registry.Game, error) {
		return newGame(sel, flagRule)
	}
	sshCfg.NewPlayer = func(out io.Writer) audio.Player {
		return audio.FromConfig(cfg.Audio.Enabled && !flagMute, cfg.Audio.Volume, out)
	}

	server, err := tui.NewSSHServer(sshCfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting Memory Mosaic SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe()
}
