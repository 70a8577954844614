package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/games/lanerush"
)

var (
	flagSimSeconds  float64
	flagSimSpawners int
	flagSimHold     float64
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless game",
	Long: `Play a game without a display. A seeded random driver steers the car
and frames are pumped at --fps until the car crashes or --seconds pass.
The same flags always give the same result, which makes this useful for
tuning the difficulty ramp.

Examples:
  lanerush sim --seed 7
  lanerush sim --seconds 300 --spawners 2 --difficulty hard`,
	Run: runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 60, "Stop after this many simulated seconds")
	simCmd.Flags().IntVar(&flagSimSpawners, "spawners", 1, "Number of obstacle spawners")
	simCmd.Flags().Float64Var(&flagSimHold, "hold", 0.25, "Seconds the driver keeps each key choice")
}

func runSim(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(os.Stderr, "lanerush-sim")
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	cfg, err := loadConfig()
	if err != nil {
		fail("%v", err)
	}

	rt := runtimeConfig(0, 0)
	res, err := lanerush.RunHeadless(lanerush.HeadlessOptions{
		Config:      cfg,
		Spawners:    flagSimSpawners,
		Seed:        rt.Seed,
		FPS:         rt.TickRate,
		MaxSeconds:  flagSimSeconds,
		HoldSeconds: flagSimHold,
		Logger:      logger,
	})
	if err != nil {
		closeLog()
		fail("%v", err)
	}

	outcome := "survived"
	if res.Lost {
		outcome = "crashed"
	}
	fmt.Printf("run %s (seed %d): %s after %.2fs\n", res.RunID, rt.Seed, outcome, res.Seconds)
	fmt.Printf("  frames:     %d\n", res.Frames)
	fmt.Printf("  score:      %.0f\n", res.Score)
	fmt.Printf("  spawned:    %d\n", res.Spawned)
	fmt.Printf("  interval:   %.3fs\n", res.Interval)
	fmt.Printf("  multiplier: %.3f\n", res.Multiplier)

	switch steps := config.NewRamp(cfg.Spawner).StepsToFloor(); steps {
	case -1:
		fmt.Println("  ramp:       fixed")
	default:
		fmt.Printf("  ramp:       floor %.2fs after %d spawns per spawner\n", cfg.Spawner.Floor, steps)
	}
}
