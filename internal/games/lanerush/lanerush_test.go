package lanerush

import (
	"math"
	"testing"

	"github.com/vovakirdan/lanerush/internal/assets"
	"github.com/vovakirdan/lanerush/internal/config"
	"github.com/vovakirdan/lanerush/internal/core"
	"github.com/vovakirdan/lanerush/internal/engine"
	"github.com/vovakirdan/lanerush/internal/registry"
)

const epsilon = 1e-9

type countingCues struct {
	score, crash int
}

func (c *countingCues) PlayScore() { c.score++ }
func (c *countingCues) PlayCrash() { c.crash++ }

func testEnv(cfg config.LaneRushConfig) (registry.Env, *engine.Recorder, *engine.PulseCounter) {
	rec := engine.NewRecorder(cfg.World.Width, cfg.World.Height)
	sched := &engine.PulseCounter{}
	return registry.Env{
		Surface:   rec,
		Assets:    assets.New(assets.Options{Sync: true}),
		Scheduler: sched,
		Runtime:   core.RuntimeConfig{Seed: 42, TickRate: 60},
	}, rec, sched
}

// startedRun returns a run whose backdrop and car are active.
func startedRun(t *testing.T, spawners int) (*Run, *engine.Recorder) {
	t.Helper()
	cfg := config.DefaultLaneRushConfig()
	env, rec, _ := testEnv(cfg)
	run := NewRun(cfg, env, spawners)
	run.Start()
	run.Sim.Frame(0)

	if !run.Backdrop.IsActive() || !run.Vehicle.IsActive() {
		t.Fatalf("backdrop %v, vehicle %v: expected both active after the first frame",
			run.Backdrop.State(), run.Vehicle.State())
	}
	return run, rec
}

// activeObstacle spawns an obstacle and runs a zero-length frame so it is
// loaded and placed.
func activeObstacle(t *testing.T, run *Run, sprite string, scale, speed float64) *Obstacle {
	t.Helper()
	o := NewObstacle(run, sprite, scale, speed)
	run.Sim.Spawn(o)
	run.Sim.Frame(0)
	if !o.IsActive() {
		t.Fatalf("obstacle state = %v, expected active", o.State())
	}
	return o
}

func TestVehicleStartsCentred(t *testing.T) {
	run, _ := startedRun(t, 1)
	v := run.Vehicle

	if v.Size.W != 40 || v.Size.H != 70 {
		t.Errorf("vehicle size = (%v, %v), expected car sprite at half scale (40, 70)", v.Size.W, v.Size.H)
	}
	if c := v.Center(); c != core.Vec(400, 300) {
		t.Errorf("vehicle centre = %v, expected (400, 300)", c)
	}
}

func TestVehicleClampsToBackdrop(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		dt       float64
		expected core.Vector2
	}{
		{"up-left short", []string{"w", "a"}, 1.5, core.Vec(0, 0)},
		{"up-left long", []string{"w", "a"}, 10, core.Vec(0, 0)},
		{"up-left huge", []string{"w", "a"}, 1e6, core.Vec(0, 0)},
		{"down-right", []string{"s", "d"}, 10, core.Vec(760, 560)},
		{"left only", []string{"a"}, 10, core.Vec(0, 280)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			run, _ := startedRun(t, 1)
			v := run.Vehicle
			v.SetAutoSize(false)
			v.SetSize(40, 40)
			v.SetPos(380, 280)

			for _, k := range tc.keys {
				run.Sim.KeyDown(k)
			}
			v.Tick(tc.dt)

			if v.Pos != tc.expected {
				t.Errorf("Pos = %v, expected %v", v.Pos, tc.expected)
			}
		})
	}
}

func TestVehicleMovesAtSpeed(t *testing.T) {
	run, _ := startedRun(t, 1)
	v := run.Vehicle
	start := v.Pos

	run.Sim.KeyDown("d")
	v.Tick(0.1)

	if math.Abs(v.Pos.X-(start.X+35)) > epsilon || v.Pos.Y != start.Y {
		t.Errorf("Pos = %v, expected %v moved 35 right", v.Pos, start)
	}

	run.Sim.KeyUp("d")
	before := v.Pos
	v.Tick(0.1)
	if v.Pos != before {
		t.Errorf("car moved with no keys held: %v -> %v", before, v.Pos)
	}
}

func TestVehicleHitboxIsSmaller(t *testing.T) {
	run, _ := startedRun(t, 1)
	v := run.Vehicle
	hb := v.Hitbox()

	if math.Abs(hb.W-v.Size.W*0.7) > epsilon || math.Abs(hb.H-v.Size.H*0.7) > epsilon {
		t.Errorf("hitbox = (%v, %v), expected 70%% of (%v, %v)", hb.W, hb.H, v.Size.W, v.Size.H)
	}
	hbCentre := core.Vec(hb.Pos.X+hb.W/2, hb.Pos.Y+hb.H/2)
	if c := v.Center(); math.Abs(c.X-hbCentre.X) > epsilon || math.Abs(c.Y-hbCentre.Y) > epsilon {
		t.Errorf("hitbox centre = %v, expected %v", hbCentre, c)
	}
	if hb.Pos == &v.Pos {
		t.Error("hitbox must not alias the car position")
	}
}

func TestObstacleActivatesAboveRoad(t *testing.T) {
	run, _ := startedRun(t, 1)

	for i := 0; i < 20; i++ {
		o := activeObstacle(t, run, "barrier.png", 0.5, 100)
		if o.Pos.X < 0 || o.Pos.X > 800-o.Size.W {
			t.Errorf("obstacle X = %v, expected within [0, %v]", o.Pos.X, 800-o.Size.W)
		}
		if o.Pos.Y != -o.Size.H {
			t.Errorf("obstacle Y = %v, expected %v", o.Pos.Y, -o.Size.H)
		}
		o.Delete()
	}
}

func TestObstacleCollisionEndsRun(t *testing.T) {
	run, _ := startedRun(t, 1)
	v := run.Vehicle

	loses := 0
	run.Sim.On(engine.EventLose, func(src any, args ...any) { loses++ })

	o := activeObstacle(t, run, "rock.png", 0.5, 100)
	o.SetPosVec(v.TopLeft())

	run.Sim.Frame(16)
	if !run.Sim.Lost() || run.Sim.Running() {
		t.Fatalf("after overlap: lost %v, running %v, expected lost and stopped", run.Sim.Lost(), run.Sim.Running())
	}
	score := run.Sim.Score()

	// The overlay pulse, then a second overlapping frame
	run.Sim.Frame(32)
	run.Sim.Tick(48)

	if run.Sim.Score() != score {
		t.Errorf("score changed after the crash: %v -> %v", score, run.Sim.Score())
	}
	if loses != 1 {
		t.Errorf("lose fired %d times, expected 1", loses)
	}
}

func TestObstaclePastBottomScoresWidth(t *testing.T) {
	run, _ := startedRun(t, 1)

	o := activeObstacle(t, run, "crate.png", 0.5, 100)
	if o.Size.W != 40 {
		t.Fatalf("obstacle width = %v, expected 40", o.Size.W)
	}
	o.SetPos(0, 599.9)

	run.Sim.Frame(16)

	if run.Sim.Score() != 40 {
		t.Errorf("Score() = %v, expected 40", run.Sim.Score())
	}
	if _, ok := run.Sim.Entity(o.ID); ok {
		t.Error("obstacle should be pruned after leaving the road")
	}
	for _, n := range run.Sim.Entities() {
		if n == engine.Node(o) {
			t.Error("obstacle still in the entity list")
		}
	}
	if run.Sim.Lost() {
		t.Error("scoring must not end the run")
	}
}

func TestSpawnerRamp(t *testing.T) {
	run, _ := startedRun(t, 1)
	sp := run.Spawners[0]

	if sp.Elapsed() != -1 {
		t.Fatalf("Elapsed() = %v, expected -delay (-1)", sp.Elapsed())
	}

	sp.Tick(3.5)
	if sp.Spawned() != 0 {
		t.Fatal("spawner fired before delay + interval")
	}
	sp.Tick(0.5)
	if sp.Spawned() != 1 || run.Spawned() != 1 {
		t.Fatalf("Spawned() = %d, expected 1", sp.Spawned())
	}
	if math.Abs(sp.Multiplier()-1.05) > epsilon {
		t.Errorf("Multiplier() = %v, expected 1.05", sp.Multiplier())
	}
	if math.Abs(sp.Interval()-2.85) > epsilon {
		t.Errorf("Interval() = %v, expected 2.85", sp.Interval())
	}
	if sp.Elapsed() != 0 {
		t.Errorf("Elapsed() = %v, expected reset to 0", sp.Elapsed())
	}

	for i := 0; i < 200; i++ {
		sp.Tick(sp.Interval())
		if sp.Interval() < 0.5 {
			t.Fatalf("Interval() = %v after %d spawns, below floor", sp.Interval(), i+2)
		}
	}
	if sp.Interval() != 0.5 {
		t.Errorf("Interval() = %v, expected convergence to 0.5", sp.Interval())
	}
}

func TestSpawnedObstacleJitterBounds(t *testing.T) {
	run, _ := startedRun(t, 1)
	cfg := run.Config().Obstacles

	for i := 0; i < 200; i++ {
		mult := 1 + float64(i)/100
		o := run.spawnObstacle(mult)

		base := cfg.BaseSpeed * mult
		if o.Speed() < base*0.9-epsilon || o.Speed() > base*1.1+epsilon {
			t.Errorf("speed %v outside ±10%% of %v", o.Speed(), base)
		}
		if o.Scale() < 0.5*0.75-epsilon || o.Scale() > 0.5*1.25+epsilon {
			t.Errorf("scale %v outside ±25%% of 0.5", o.Scale())
		}
	}
}

func TestJitter(t *testing.T) {
	tests := []struct {
		u, expected float64
	}{
		{0, 1},
		{0.25, 1.25},
		{0.5, 1},
		{0.75, 0.75},
	}
	for _, tc := range tests {
		if got := Jitter(0.25, tc.u); math.Abs(got-tc.expected) > epsilon {
			t.Errorf("Jitter(0.25, %v) = %v, expected %v", tc.u, got, tc.expected)
		}
	}
}

func TestTwinSpawnersArePhased(t *testing.T) {
	run, _ := startedRun(t, 2)
	if len(run.Spawners) != 2 {
		t.Fatalf("len(Spawners) = %d, expected 2", len(run.Spawners))
	}
	if run.Spawners[0].Elapsed() != -1 || run.Spawners[1].Elapsed() != -2.5 {
		t.Errorf("elapsed = (%v, %v), expected (-1, -2.5)", run.Spawners[0].Elapsed(), run.Spawners[1].Elapsed())
	}
}

func TestBackdropScrollsInTwoRegions(t *testing.T) {
	run, rec := startedRun(t, 1)

	run.Sim.Frame(500) // 0.5s at 120 units per second
	if math.Abs(run.Backdrop.Offset()-60) > epsilon {
		t.Fatalf("Offset() = %v, expected 60", run.Backdrop.Offset())
	}

	var regions []engine.Op
	for _, op := range rec.Ops {
		if op.Kind == "DrawImageRegion" && op.Src == "road.png" {
			regions = append(regions, op)
		}
	}
	if len(regions) != 2 {
		t.Fatalf("road drawn with %d regions, expected 2", len(regions))
	}
	top, bottom := regions[0].Args, regions[1].Args
	if top[5] != 0 || top[7] != 60 {
		t.Errorf("top region dest y/h = (%v, %v), expected (0, 60)", top[5], top[7])
	}
	if bottom[5] != 60 || bottom[7] != 540 {
		t.Errorf("bottom region dest y/h = (%v, %v), expected (60, 540)", bottom[5], bottom[7])
	}
	if top[3]+bottom[3] != 120 {
		t.Errorf("source heights sum to %v, expected the road tile height 120", top[3]+bottom[3])
	}
}

func TestBackdropResize(t *testing.T) {
	run, _ := startedRun(t, 1)
	run.Resize(400, 300)

	if run.Backdrop.Size.W != 400 || run.Backdrop.Size.H != 300 {
		t.Errorf("backdrop size = (%v, %v), expected (400, 300)", run.Backdrop.Size.W, run.Backdrop.Size.H)
	}

	run.Sim.KeyDown("s")
	run.Sim.KeyDown("d")
	run.Vehicle.Tick(100)
	br := run.Vehicle.BottomRight()
	if br != core.Vec(400, 300) {
		t.Errorf("car bottom-right = %v, expected clamp to the resized road (400, 300)", br)
	}
}

func TestHUDShowsGroupedScore(t *testing.T) {
	run, rec := startedRun(t, 1)
	run.Sim.AddScore(12345)
	run.Sim.Frame(16)

	found := false
	for _, text := range rec.Texts() {
		if text == "Score: 12,345" {
			found = true
		}
	}
	if !found {
		t.Errorf("texts = %v, expected \"Score: 12,345\"", rec.Texts())
	}
}

func TestHUDDrawnAboveObstacles(t *testing.T) {
	run, rec := startedRun(t, 1)
	o := activeObstacle(t, run, "crate.png", 0.5, 0)
	o.SetPos(700, 0)
	run.Sim.Frame(16)

	crate, score := -1, -1
	for i, op := range rec.Ops {
		switch {
		case op.Kind == "DrawImage" && op.Src == "crate.png":
			crate = i
		case op.Kind == "FillText" && op.Text == "Score: 0":
			score = i
		}
	}
	if crate < 0 || score < 0 {
		t.Fatalf("ops = %v, expected both the crate and the score", rec.Ops)
	}
	if score < crate {
		t.Errorf("score drawn at op %d before the crate at op %d", score, crate)
	}
}

func TestGameOverOverlay(t *testing.T) {
	run, rec := startedRun(t, 1)
	run.Sim.AddScore(2500)
	run.Sim.Lose()
	run.Sim.Frame(16)

	want := map[string]bool{"GAME OVER": false, "Score: 2,500": false, "Press R to restart": false}
	for _, text := range rec.Texts() {
		if _, ok := want[text]; ok {
			want[text] = true
		}
	}
	for text, seen := range want {
		if !seen {
			t.Errorf("overlay missing %q", text)
		}
	}
}

func TestCuesFollowEvents(t *testing.T) {
	cfg := config.DefaultLaneRushConfig()
	env, _, _ := testEnv(cfg)
	cues := &countingCues{}
	env.Cues = cues

	run := NewRun(cfg, env, 1)
	run.Start()
	run.Sim.AddScore(10)
	run.Sim.Lose()

	if cues.score != 1 || cues.crash != 1 {
		t.Errorf("cues = %+v, expected one score and one crash", *cues)
	}
}
