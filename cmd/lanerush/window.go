package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/games/lanerush"
	"github.com/vovakirdan/lanerush/internal/platform/window"
	"github.com/vovakirdan/lanerush/internal/registry"
)

var windowCmd = &cobra.Command{
	Use:   "window [variant]",
	Short: "Play in a desktop window",
	Long: `Open a resizable window and play. Resizing the window resizes the road.

Controls:
  W/A/S/D, arrows - Steer
  R               - Restart (after a crash)
  Esc/Q           - Quit

Examples:
  lanerush window
  lanerush window lanerush-twin --sound`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWindow,
}

func runWindow(cmd *cobra.Command, args []string) {
	id := lanerush.IDSingle
	if len(args) == 1 {
		id = args[0]
	}
	checkVariant(id)

	logger, closeLog, err := newLogger(os.Stderr, "lanerush")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	game, err := registry.Create(id)
	if err != nil {
		fail("%v", err)
	}

	cues, closeCues := newCues(cfg, logger)
	defer closeCues()

	err = window.Run(game, window.Options{
		Config:  cfg,
		Runtime: runtimeConfig(int(cfg.World.Width), int(cfg.World.Height)),
		Assets:  newAssets(cfg, logger),
		Logger:  logger,
		Cues:    cues,
	})
	if err != nil {
		closeCues()
		closeLog()
		fail("%v", err)
	}
}
