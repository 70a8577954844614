// Package audio plays short synthesized cues for score and crash events.
// Audio is optional: every method is safe to call without a device.
package audio

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// DefaultSampleRate is used when the configured rate is not positive.
const DefaultSampleRate = beep.SampleRate(44100)

// SoundManager owns the speaker and a mixer that cues are added to.
type SoundManager struct {
	mu          sync.Mutex
	sr          beep.SampleRate
	volume      float64
	mixer       *beep.Mixer
	initialized bool
	seed        int64
}

// NewSoundManager creates a manager. Nothing plays until Initialize.
func NewSoundManager(sampleRate int, volume float64) *SoundManager {
	sr := beep.SampleRate(sampleRate)
	if sr <= 0 {
		sr = DefaultSampleRate
	}
	return &SoundManager{
		sr:     sr,
		volume: math.Max(0, math.Min(1, volume)),
		mixer:  &beep.Mixer{},
		seed:   time.Now().UnixNano(),
	}
}

// Initialize opens the speaker. Calling it again is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.sr, sm.sr.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: cannot open speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences every cue.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// PlayScore plays a short rising blip.
func (sm *SoundManager) PlayScore() {
	sm.play(beep.Take(sm.sr.N(90*time.Millisecond), NewToneGenerator(sm.sr, 660, 990, 0.25*sm.volume)))
}

// PlayCrash plays a noisy rumble that dies away.
func (sm *SoundManager) PlayCrash() {
	sm.mu.Lock()
	sm.seed++
	seed := sm.seed
	sm.mu.Unlock()
	sm.play(beep.Take(sm.sr.N(600*time.Millisecond), NewCrashGenerator(sm.sr, seed, 0.6*sm.volume)))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// ToneGenerator sweeps a sine from one frequency to another with a linear
// fade out over its first second.
type ToneGenerator struct {
	sr        beep.SampleRate
	from, to  float64
	amplitude float64
	pos       int
	phase     float64
}

// NewToneGenerator creates a tone sweep.
func NewToneGenerator(sr beep.SampleRate, from, to, amplitude float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, from: from, to: to, amplitude: amplitude}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	length := float64(g.sr.N(100 * time.Millisecond))
	for i := range samples {
		progress := math.Min(float64(g.pos)/length, 1)
		freq := g.from + (g.to-g.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		sample := g.amplitude * (1 - progress) * math.Sin(g.phase)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}

// CrashGenerator mixes white noise with a low rumble under an exponential
// decay.
type CrashGenerator struct {
	sr        beep.SampleRate
	amplitude float64
	pos       int
	seed      int64
}

// NewCrashGenerator creates a crash sound. The same seed yields the same
// samples.
func NewCrashGenerator(sr beep.SampleRate, seed int64, amplitude float64) *CrashGenerator {
	return &CrashGenerator{sr: sr, amplitude: amplitude, seed: seed}
}

func (g *CrashGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 6)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		rumble := math.Sin(2 * math.Pi * 55 * t)

		sample := g.amplitude * envelope * (0.6*noise + 0.4*rumble)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrashGenerator) Err() error {
	return nil
}
