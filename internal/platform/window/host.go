// Package window hosts games in a desktop window with Ebitengine.
package window

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/engine"
	"github.com/vovakirdan/lanerush/internal/registry"
)

// Options configures a window host.
type Options struct {
	// Config supplies the initial window size and key bindings.
	Config  config.LaneRushConfig
	Runtime core.RuntimeConfig
	Assets  engine.AssetLoader
	Logger  *log.Logger
	Cues    registry.Cues
}

// Host adapts a registry.Game to ebiten.Game. Frames are delivered from
// Draw, one per requested pulse; key presses and releases come from
// Update.
type Host struct {
	game    registry.Game
	opts    Options
	surface *Surface
	pulses  *engine.PulseCounter
	start   time.Time
	keys    []ebiten.Key
	w, h    int
}

// NewHost creates a host for game. Call Start before running it.
func NewHost(game registry.Game, opts Options) *Host {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	w, h := opts.Config.World.Width, opts.Config.World.Height
	return &Host{
		game:    game,
		opts:    opts,
		surface: NewSurface(w, h),
		pulses:  &engine.PulseCounter{},
		w:       int(w),
		h:       int(h),
	}
}

// Start begins a run drawing into the window.
func (h *Host) Start() error {
	h.start = time.Now()
	err := h.game.Start(registry.Env{
		Surface:   h.surface,
		Assets:    h.opts.Assets,
		Scheduler: h.pulses,
		Logger:    h.opts.Logger,
		Cues:      h.opts.Cues,
		Runtime:   h.opts.Runtime,
	})
	if err != nil {
		return fmt.Errorf("window: cannot start %s: %w", h.game.ID(), err)
	}
	return nil
}

// Update forwards key presses and releases. Escape and Q close the
// window.
func (h *Host) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		if id, ok := GameKey(k, h.opts.Config.Controls); ok {
			h.game.KeyDown(id)
		}
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		if id, ok := GameKey(k, h.opts.Config.Controls); ok {
			h.game.KeyUp(id)
		}
	}
	return nil
}

// Draw delivers a frame if the game asked for one. The screen is not
// cleared between frames, so a stopped game keeps its last picture.
func (h *Host) Draw(screen *ebiten.Image) {
	h.surface.SetTarget(screen)
	if h.pulses.Take() {
		h.game.Frame(float64(time.Since(h.start).Microseconds()) / 1000)
	}
}

// Layout follows the window size and resizes the playfield with it.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != h.w || outsideHeight != h.h {
		h.w, h.h = outsideWidth, outsideHeight
		h.surface.SetSize(float64(outsideWidth), float64(outsideHeight))
		h.game.Resize(float64(outsideWidth), float64(outsideHeight))
		h.opts.Logger.Debug("window resized", "width", outsideWidth, "height", outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// GameKey translates an ebiten key to the identifier the game expects.
// Arrow keys alias the movement controls; letters map to themselves.
func GameKey(k ebiten.Key, c config.ControlsConfig) (string, bool) {
	switch k {
	case ebiten.KeyArrowUp:
		return c.Up, true
	case ebiten.KeyArrowLeft:
		return c.Left, true
	case ebiten.KeyArrowDown:
		return c.Down, true
	case ebiten.KeyArrowRight:
		return c.Right, true
	}
	name := k.String()
	if len(name) != 1 {
		return "", false
	}
	return strings.ToLower(name), true
}

// Run opens a window and plays game until it is closed.
func Run(game registry.Game, opts Options) error {
	host := NewHost(game, opts)
	if err := host.Start(); err != nil {
		return err
	}
	defer game.Stop()
	defer host.surface.Forget()

	ebiten.SetWindowSize(host.w, host.h)
	ebiten.SetWindowTitle(game.Title())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	if opts.Runtime.TickRate > 0 {
		ebiten.SetTPS(opts.Runtime.TickRate)
	}

	if err := ebiten.RunGame(host); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}
