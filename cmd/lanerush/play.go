package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lanerush/internal/platform/tui"
	"github.com/vovakirdan/lanerush/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play in the terminal",
	Long: `Play in the terminal. Without a variant, a menu lets you pick one and
returns to it when you leave a game.

Controls:
  W/A/S/D, arrows - Steer
  R               - Restart (after a crash)
  Esc             - Back to menu
  Ctrl+S          - Save a text screenshot
  Q/Ctrl+C        - Quit

Terminals do not report key releases, so a key counts as held while it
auto-repeats.

Examples:
  lanerush play
  lanerush play lanerush --difficulty easy
  lanerush play lanerush-twin --config ./my-lanerush.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	if len(args) == 1 {
		checkVariant(args[0])
	}

	// The alternate screen owns the terminal; log only to --log-file.
	logger, closeLog, err := newLogger(io.Discard, "lanerush")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	cues, closeCues := newCues(cfg, logger)
	defer closeCues()

	opts := tui.Options{
		Config:  cfg,
		Runtime: runtimeConfig(width, height),
		Assets:  newAssets(cfg, logger),
		Logger:  logger,
		Cues:    cues,
	}

	if len(args) == 0 {
		err = tui.RunSession(opts)
	} else {
		game, createErr := registry.Create(args[0])
		if createErr != nil {
			fail("%v", createErr)
		}
		err = tui.Run(game, opts)
	}
	if err != nil {
		closeCues()
		closeLog()
		fail("%v", err)
	}
}
