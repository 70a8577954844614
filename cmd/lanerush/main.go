// lanerush is an arcade game: steer a car down an endless road and dodge
// the obstacles falling towards it.
//
// Usage:
//
//	lanerush list              - List game variants
//	lanerush play [variant]    - Play in the terminal (menu without a variant)
//	lanerush window [variant]  - Play in a desktop window
//	lanerush serve             - Start SSH server for remote play
//	lanerush sim               - Run a headless game and print the result
//	lanerush config            - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Use a custom YAML or TOML config
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lanerush/internal/assets"
	"github.com/vovakirdan/lanerush/internal/audio"
	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/games/lanerush"
	"github.com/vovakirdan/lanerush/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagSound      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lanerush",
	Short: "Lane Rush - dodge the traffic on an endless road",
	Long: `Lane Rush is an arcade game: steer a car down an endless road and
dodge the obstacles falling towards it. Every obstacle that passes scores
its width, and they come faster the longer you last.

Available commands:
  list     - Show the game variants
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  sim      - Run a headless game
  config   - Print the effective configuration

Examples:
  lanerush play
  lanerush play lanerush-twin --difficulty hard
  lanerush window --sound
  lanerush sim --seconds 120 --seed 7`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagSound, "sound", false, "Play sound cues")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger creates the logger for a command. Logs go to --log-file if
// set, otherwise to fallback. The returned function closes the file.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closeFn := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out = f
		closeFn = func() { _ = f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closeFn, nil
}

// loadConfig applies the global config flags and loads the configuration.
func loadConfig() (config.LaneRushConfig, error) {
	lanerush.SetConfigPath(flagConfig)
	if err := lanerush.SetDifficultyPreset(flagDifficulty); err != nil {
		return config.LaneRushConfig{}, err
	}
	return lanerush.LoadConfig()
}

// newAssets creates the sprite library described by cfg.
func newAssets(cfg config.LaneRushConfig, logger *log.Logger) *assets.Library {
	return assets.New(assets.Options{
		Dir:     cfg.Assets.Dir,
		Timeout: time.Duration(cfg.Assets.TimeoutMS) * time.Millisecond,
		Logger:  logger,
	})
}

// newCues opens the speaker if sound is enabled. A missing audio device
// is not fatal. The returned function releases the speaker.
func newCues(cfg config.LaneRushConfig, logger *log.Logger) (registry.Cues, func()) {
	if !flagSound && !cfg.Audio.Enabled {
		return nil, func() {}
	}
	sm := audio.NewSoundManager(cfg.Audio.SampleRate, cfg.Audio.Volume)
	if err := sm.Initialize(); err != nil {
		logger.Warn("sound disabled", "error", err)
		return nil, func() {}
	}
	return sm, sm.Cleanup
}

// runtimeConfig builds the runtime config from the global flags.
func runtimeConfig(w, h int) core.RuntimeConfig {
	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  w,
		ScreenH:  h,
		TickRate: flagFPS,
		Seed:     seed,
	}
}

// checkVariant exits if id is not a registered variant.
func checkVariant(id string) {
	if !registry.Exists(id) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", id)
		fmt.Fprintln(os.Stderr, "Run 'lanerush list' to see available games.")
		os.Exit(1)
	}
}
