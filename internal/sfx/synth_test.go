package sfx

import (
	"math"
	"testing"

	"github.com/Garsondee/trail-arena/internal/arena"
)

func TestGenerate_AllCuesBoundedAndAudible(t *testing.T) {
	for _, c := range Cues() {
		s := Generate(c, SampleRate)
		if len(s) == 0 {
			t.Fatalf("%s: no samples", c)
		}
		peak := 0.0
		for i, v := range s {
			if math.IsNaN(v) || v < -1 || v > 1 {
				t.Fatalf("%s: sample %d = %v out of range", c, i, v)
			}
			peak = math.Max(peak, math.Abs(v))
		}
		if peak < 0.05 {
			t.Fatalf("%s: peak %.3f is inaudible", c, peak)
		}
	}
}

func TestGenerate_DurationScalesWithRate(t *testing.T) {
	a := len(Generate(CueGameOver, 22050))
	b := len(Generate(CueGameOver, 44100))
	if b != 2*a && b != 2*a+1 {
		t.Fatalf("frames at 22050=%d, at 44100=%d", a, b)
	}
	if Generate(cueCount, SampleRate) != nil {
		t.Fatal("unknown cue rendered samples")
	}
}

func TestPCM16Stereo_Layout(t *testing.T) {
	buf := PCM16Stereo([]float64{0, 1, -1, 2}, 1)
	if len(buf) != 16 {
		t.Fatalf("len = %d, want 16", len(buf))
	}
	frame := func(i int) (int16, int16) {
		l := int16(uint16(buf[i*4]) | uint16(buf[i*4+1])<<8)
		r := int16(uint16(buf[i*4+2]) | uint16(buf[i*4+3])<<8)
		return l, r
	}
	want := []int16{0, math.MaxInt16, -math.MaxInt16, math.MaxInt16}
	for i, w := range want {
		l, r := frame(i)
		if l != w || r != w {
			t.Fatalf("frame %d = (%d,%d), want %d on both channels", i, l, r, w)
		}
	}
	if half := PCM16Stereo([]float64{1}, 0.5); int16(uint16(half[0])|uint16(half[1])<<8) != 16384 {
		t.Fatal("gain not applied")
	}
}

func TestBank_HoldsEveryCue(t *testing.T) {
	b := NewBank(8000)
	for _, c := range Cues() {
		if len(b.Samples(c)) == 0 {
			t.Fatalf("%s missing from bank", c)
		}
	}
	if b.Samples(-1) != nil || b.Rate() != 8000 {
		t.Fatal("bank bounds or rate wrong")
	}
}

func TestCueFor(t *testing.T) {
	cases := []struct {
		cat, key string
		want     Cue
		ok       bool
	}{
		{arena.CatPickup, arena.KeyEaten, CueEat, true},
		{arena.CatCollision, arena.KeyMarker, CueBump, true},
		{arena.CatMatch, arena.KeyFinished, CueGameOver, true},
		{arena.CatPickup, arena.KeySpawn, 0, false},
		{arena.CatCollision, arena.KeySelf, 0, false},
	}
	for _, tc := range cases {
		got, ok := CueFor(arena.MatchLogEntry{Category: tc.cat, Key: tc.key})
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("%s/%s = %v,%v want %v,%v", tc.cat, tc.key, got, ok, tc.want, tc.ok)
		}
	}
}
