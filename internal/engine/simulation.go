package engine

import (
	"context"
	"fmt"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/kamstrup/intmap"

	"github.com/vovakirdan/lanerush/internal/core"
)

var discardLogger = log.New(io.Discard)

// OverlayFunc draws over the entities, given the current score.
type OverlayFunc func(s Surface, score float64)

// Options configures a Simulation.
type Options struct {
	Surface   Surface
	Assets    AssetLoader
	Scheduler FrameScheduler
	Logger    *log.Logger

	// Diagnostics draws frame time and FPS after every frame.
	Diagnostics bool
	// GameOver replaces the default game-over overlay.
	GameOver OverlayFunc
	// Foreground, if set, draws after every entity in each frame.
	Foreground OverlayFunc
}

type frameClock struct {
	first, last float64
	set         bool
}

// Simulation owns the entities of a run and drives them frame by frame.
//
// All methods must be called from the frame thread. The only exception is
// the completion callback handed to the AssetLoader, which may fire from any
// goroutine and only touches the deferred queue.
type Simulation struct {
	core.Hub

	surface   Surface
	assets    AssetLoader
	scheduler FrameScheduler
	logger    *log.Logger
	gameOver  OverlayFunc
	fg        OverlayFunc

	ctx    context.Context
	cancel context.CancelFunc

	entities []Node
	index    *intmap.Map[EntityID, Node]
	nextID   EntityID
	deferred DeferredQueue
	keys     core.KeyState

	clock          frameClock
	running        bool
	lost           bool
	overlayPending bool
	score          float64
	frames         uint64
	diagnostics    bool
}

// NewSimulation creates a stopped simulation.
func NewSimulation(opts Options) *Simulation {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Simulation{
		surface:     opts.Surface,
		assets:      opts.Assets,
		scheduler:   opts.Scheduler,
		logger:      opts.Logger,
		gameOver:    opts.GameOver,
		fg:          opts.Foreground,
		diagnostics: opts.Diagnostics,
		ctx:         ctx,
		cancel:      cancel,
		index:       intmap.New[EntityID, Node](64),
		keys:        core.NewKeyState(),
	}
	if s.logger == nil {
		s.logger = discardLogger
	}
	if s.scheduler == nil {
		s.scheduler = &PulseCounter{}
	}
	if s.gameOver == nil {
		s.gameOver = DefaultGameOver
	}
	s.Bind(s)
	return s
}

// HandleEvent keeps the key map in step with key events.
func (s *Simulation) HandleEvent(ev core.Event, args ...any) {
	switch ev {
	case EventKeyDown, EventKeyUp:
		if len(args) == 0 {
			return
		}
		if key, ok := args[0].(string); ok {
			s.keys.Set(key, ev == EventKeyDown)
		}
	case EventScore:
		if len(args) == 0 {
			return
		}
		if n, ok := args[0].(float64); ok {
			s.score += n
		}
	}
}

// Add attaches a node and starts its pending sprite load. The node stays
// inactive until SetActive(true). Adding a node twice does nothing.
func (s *Simulation) Add(node Node) Node {
	e := node.Base()
	if e.sim != nil {
		return node
	}

	s.nextID++
	e.ID = s.nextID
	e.sim = s
	e.self = node
	e.Bind(node)

	s.entities = append(s.entities, node)
	s.index.Put(e.ID, node)

	if e.pendingLoad {
		e.pendingLoad = false
		e.startLoad()
	}
	return node
}

// Spawn adds a node and requests its activation.
func (s *Simulation) Spawn(node Node) Node {
	s.Add(node)
	node.Base().SetActive(true)
	return node
}

// Entity looks up a live entity by id.
func (s *Simulation) Entity(id EntityID) (Node, bool) {
	return s.index.Get(id)
}

// Entities returns the entities in draw order. The slice must not be
// modified.
func (s *Simulation) Entities() []Node {
	return s.entities
}

// Len returns the number of entities, including ones awaiting pruning.
func (s *Simulation) Len() int {
	return len(s.entities)
}

// Defer queues fn to run at the start of the next frame.
func (s *Simulation) Defer(fn func()) {
	s.deferred.Push(fn)
}

// Deferred exposes the deferred queue.
func (s *Simulation) Deferred() *DeferredQueue {
	return &s.deferred
}

// Surface returns the drawing surface.
func (s *Simulation) Surface() Surface {
	return s.surface
}

// Logger returns the simulation logger.
func (s *Simulation) Logger() *log.Logger {
	return s.logger
}

// Context is cancelled by Close. Asset loads use it.
func (s *Simulation) Context() context.Context {
	return s.ctx
}

// Running reports whether the loop schedules itself.
func (s *Simulation) Running() bool { return s.running }

// Lost reports whether the run ended in a collision.
func (s *Simulation) Lost() bool { return s.lost }

// Score returns the accumulated score.
func (s *Simulation) Score() float64 { return s.score }

// Frames returns the number of ticks run.
func (s *Simulation) Frames() uint64 { return s.frames }

// SetRunning starts or stops the loop. Starting resets the frame clock on
// the next pulse, restarts sprite loads dropped by the last stop and
// requests a pulse. Stopping clears the clock and drops all deferred
// callbacks and pending sprite reservations.
func (s *Simulation) SetRunning(running bool) {
	if running == s.running {
		return
	}
	s.running = running
	s.clock = frameClock{}
	if running {
		s.logger.Debug("simulation started")
		for _, n := range s.entities {
			n.Base().resumeLoad()
		}
		s.scheduler.RequestFrame()
		return
	}
	s.deferred.Flush()
	s.logger.Debug("simulation stopped", "frames", s.frames)
}

// KeyDown records a key press.
func (s *Simulation) KeyDown(key string) {
	s.emit(EventKeyDown, key)
}

// KeyUp records a key release.
func (s *Simulation) KeyUp(key string) {
	s.emit(EventKeyUp, key)
}

// IsKeyDown reports whether key is held.
func (s *Simulation) IsKeyDown(key string) bool {
	return s.keys.IsDown(key)
}

// AddScore adds n to the score.
func (s *Simulation) AddScore(n float64) {
	s.emit(EventScore, n)
}

// Lose ends the run: the loop stops, EventLose fires, and the game-over
// overlay is drawn on the next pulse. Only the first call of a run has any
// effect.
func (s *Simulation) Lose() {
	if !s.running {
		return
	}
	s.SetRunning(false)
	s.lost = true
	s.logger.Info("run lost", "score", int(s.score), "frames", s.frames)
	s.emit(EventLose, s.score)
	s.overlayPending = true
	s.scheduler.RequestFrame()
}

// Frame is the host entry point for a frame pulse with a timestamp in
// milliseconds. A running simulation ticks; a lost one draws its game-over
// overlay once.
func (s *Simulation) Frame(ts float64) {
	if s.running {
		s.Tick(ts)
		return
	}
	if s.overlayPending {
		s.overlayPending = false
		if s.surface != nil {
			s.gameOver(s.surface, s.score)
		}
	}
}

// Tick runs one frame: clear the surface, drain deferred callbacks, tick and
// draw active entities, prune deleted ones, and request the next pulse.
func (s *Simulation) Tick(ts float64) {
	if !s.clock.set {
		s.clock = frameClock{first: ts, last: ts, set: true}
	}
	ms := ts - s.clock.last
	dt := ms / 1000
	s.clock.last = ts
	s.frames++

	if s.surface != nil {
		s.surface.ClearRect(0, 0, s.surface.Width(), s.surface.Height())
	}

	s.deferred.Drain()

	// Entities added during this pass wait for the next frame.
	n := len(s.entities)
	for i := 0; i < n; i++ {
		node := s.entities[i]
		if !node.Base().IsActive() {
			continue
		}
		node.Tick(dt)
		if s.surface != nil {
			node.Draw(s.surface, dt)
		}
	}

	s.prune()

	if s.fg != nil && s.surface != nil {
		s.fg(s.surface, s.score)
	}

	if s.running {
		s.scheduler.RequestFrame()
	}

	if s.diagnostics && s.surface != nil {
		s.drawDiagnostics(ms)
	}
}

// prune removes deleted entities, keeping the order of the rest.
func (s *Simulation) prune() {
	for i := len(s.entities) - 1; i >= 0; i-- {
		e := s.entities[i].Base()
		if !e.deleted {
			continue
		}
		s.index.Del(e.ID)
		s.entities = append(s.entities[:i], s.entities[i+1:]...)
	}
}

func (s *Simulation) drawDiagnostics(ms float64) {
	fps := 0
	if ms > 0 {
		fps = int(1000 / ms)
	}
	s.surface.SetFont("12px monospace")
	s.surface.SetTextAlign(AlignLeft)
	s.surface.SetFillStyle(color.White)
	s.surface.FillText(fmt.Sprintf("ms:%d", int(ms)), 10, 12)
	s.surface.FillText(fmt.Sprintf("FPS:%d", fps), 10, 28)
}

// Close stops the loop and cancels in-flight asset loads.
func (s *Simulation) Close() {
	s.SetRunning(false)
	s.cancel()
}

func (s *Simulation) emit(ev core.Event, args ...any) {
	if err := s.Emit(ev, args...); err != nil {
		s.logger.Error("simulation event failed", "event", ev, "err", err)
	}
}

// DefaultGameOver dims the frame and prints the final score with a restart
// hint.
func DefaultGameOver(s Surface, score float64) {
	w, h := s.Width(), s.Height()
	s.SetFillStyle(color.RGBA{A: 0xa0})
	s.FillRect(0, 0, w, h)

	s.SetTextAlign(AlignCenter)
	s.SetFillStyle(color.White)
	s.SetFont("bold 32px sans-serif")
	s.FillText("GAME OVER", w/2, h/2-24)
	s.SetFont("16px sans-serif")
	s.FillText(fmt.Sprintf("Score: %d", int(score)), w/2, h/2+8)
	s.FillText("Press R to restart", w/2, h/2+32)
}
