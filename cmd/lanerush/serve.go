package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Lane Rush SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the variant menu and its own
runs. Sound cues are never played by the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.lanerush/host_key

Examples:
  lanerush serve                           # Listen on :23234 with auto-generated key
  lanerush serve --ssh :2222               # Listen on port 2222
  lanerush serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr, "lanerush-ssh")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}, tui.Options{
		Config:  cfg,
		Runtime: runtimeConfig(80, 24),
		Assets:  newAssets(cfg, logger),
		Logger:  logger,
	})
	if err != nil {
		fail("%v", err)
	}

	fmt.Printf("Starting Lane Rush SSH server on %s\n", flagSSHAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		closeLog()
		fail("%v", err)
	}
}
