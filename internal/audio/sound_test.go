package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestSoundManagerWithoutDevice(t *testing.T) {
	sm := NewSoundManager(0, 2)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("cues panicked without initialization: %v", r)
		}
	}()

	sm.PlayScore()
	sm.PlayCrash()
	sm.Cleanup()

	if sm.sr != DefaultSampleRate {
		t.Errorf("sample rate = %v, expected default %v", sm.sr, DefaultSampleRate)
	}
	if sm.volume != 1 {
		t.Errorf("volume = %v, expected clamp to 1", sm.volume)
	}
}

func TestToneGeneratorFadesOut(t *testing.T) {
	sr := beep.SampleRate(8000)
	g := NewToneGenerator(sr, 440, 880, 0.5)

	buf := make([][2]float64, sr.N(100*time.Millisecond))
	n, ok := g.Stream(buf)
	if n != len(buf) || !ok {
		t.Fatalf("Stream() = (%d, %v), expected (%d, true)", n, ok, len(buf))
	}

	early, late := peak(buf[:len(buf)/4]), peak(buf[3*len(buf)/4:])
	if early > 0.5 {
		t.Errorf("peak %v exceeds amplitude 0.5", early)
	}
	if late >= early {
		t.Errorf("tone should fade: early peak %v, late peak %v", early, late)
	}

	// After the sweep the tone is silent
	tail := make([][2]float64, 64)
	g.Stream(tail)
	if peak(tail) != 0 {
		t.Errorf("tail peak = %v, expected silence", peak(tail))
	}
}

func TestCrashGeneratorDeterministic(t *testing.T) {
	sr := beep.SampleRate(8000)
	a := make([][2]float64, 256)
	b := make([][2]float64, 256)
	NewCrashGenerator(sr, 7, 0.6).Stream(a)
	NewCrashGenerator(sr, 7, 0.6).Stream(b)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs for the same seed: %v vs %v", i, a[i], b[i])
		}
	}
	if peak(a) > 0.6 {
		t.Errorf("peak %v exceeds amplitude 0.6", peak(a))
	}
}

func TestCuesMixAndEnd(t *testing.T) {
	sr := beep.SampleRate(8000)
	mixer := &beep.Mixer{}
	mixer.Add(beep.Take(sr.N(90*time.Millisecond), NewToneGenerator(sr, 660, 990, 0.25)))
	mixer.Add(beep.Take(sr.N(600*time.Millisecond), NewCrashGenerator(sr, 1, 0.6)))

	if mixer.Len() != 2 {
		t.Fatalf("mixer.Len() = %d, expected 2", mixer.Len())
	}

	buf := make([][2]float64, sr.N(time.Second))
	mixer.Stream(buf)
	if mixer.Len() != 0 {
		t.Errorf("mixer.Len() = %d after a second, expected finished cues to be removed", mixer.Len())
	}
}

func peak(samples [][2]float64) float64 {
	m := 0.0
	for _, s := range samples {
		m = math.Max(m, math.Abs(s[0]))
	}
	return m
}
