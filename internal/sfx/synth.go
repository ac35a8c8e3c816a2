// Package sfx synthesizes the arena's sound cues procedurally so neither
// front end ships audio assets.
package sfx

import (
	"math"

	"github.com/Garsondee/trail-arena/internal/arena"
)

// SampleRate is the rate every cue is rendered at.
const SampleRate = 44100

// Cue identifies a sound effect.
type Cue int

const (
	CueEat Cue = iota
	CueBump
	CueGameOver
	CueMenuSelect
	cueCount
)

func (c Cue) String() string {
	switch c {
	case CueEat:
		return "eat"
	case CueBump:
		return "bump"
	case CueGameOver:
		return "game_over"
	case CueMenuSelect:
		return "menu_select"
	default:
		return "unknown"
	}
}

// Cues lists every cue, in declaration order.
func Cues() []Cue {
	out := make([]Cue, 0, cueCount)
	for c := Cue(0); c < cueCount; c++ {
		out = append(out, c)
	}
	return out
}

// CueFor maps a match log entry to the cue it should trigger.
func CueFor(e arena.MatchLogEntry) (Cue, bool) {
	switch {
	case e.Category == arena.CatPickup && e.Key == arena.KeyEaten:
		return CueEat, true
	case e.Category == arena.CatCollision && e.Key == arena.KeyMarker:
		return CueBump, true
	case e.Category == arena.CatMatch && e.Key == arena.KeyFinished:
		return CueGameOver, true
	}
	return 0, false
}

// Generate renders a cue as mono samples in [-1,1] at rate.
func Generate(c Cue, rate int) []float64 {
	switch c {
	case CueEat:
		return genEat(rate)
	case CueBump:
		return genBump(rate)
	case CueGameOver:
		return genGameOver(rate)
	case CueMenuSelect:
		return genMenuSelect(rate)
	}
	return nil
}

// softSat is a soft clipper that keeps stacked layers inside [-1,1].
func softSat(x float64) float64 {
	if x > 1.0 {
		return 1.0 - 0.5/x
	}
	if x < -1.0 {
		return -1.0 + 0.5/(-x)
	}
	return x - x*x*x/3.0
}

// adsr returns an envelope at normalized progress [0,1].
// attack, decay and release are fractions of the total duration.
func adsr(progress, attack, decay, sustain, release float64) float64 {
	switch {
	case progress < attack:
		return progress / attack
	case progress < attack+decay:
		return 1.0 - (progress-attack)/decay*(1.0-sustain)
	case progress < 1.0-release:
		return sustain
	default:
		return sustain * (1.0 - (progress-(1.0-release))/release)
	}
}

func fm(t, carrier, modRatio, modIdx float64) float64 {
	mod := math.Sin(2 * math.Pi * carrier * modRatio * t)
	return math.Sin(2*math.Pi*carrier*t + modIdx*mod)
}

func frames(seconds float64, rate int) int {
	return int(seconds * float64(rate))
}

// genEat: rising FM chirp.
func genEat(rate int) []float64 {
	n := frames(0.09, rate)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(rate)
		p := float64(i) / float64(n)
		env := adsr(p, 0.01, 0.5, 0.0, 0.1)
		freq := 480 + 720*p
		s := fm(t, freq, 2.0, 3.5*env) * env * 0.5
		s += math.Sin(2*math.Pi*freq*3*t) * env * 0.06
		out[i] = softSat(s)
	}
	return out
}

// genBump: dull low thud for brushing the wall marker.
func genBump(rate int) []float64 {
	n := frames(0.12, rate)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(rate)
		p := float64(i) / float64(n)
		env := math.Exp(-p * 9)
		s := fm(t, 95, 0.5, 1.1) * env * 0.55
		s += math.Sin(2*math.Pi*190*t) * env * 0.12
		out[i] = softSat(s)
	}
	return out
}

// genGameOver: three falling notes.
func genGameOver(rate int) []float64 {
	n := frames(0.75, rate)
	notes := []struct{ freq, onset float64 }{
		{329.63, 0.00}, // E4
		{261.63, 0.14}, // C4
		{220.00, 0.28}, // A3
	}
	mix := make([]float64, n)
	for _, note := range notes {
		start := frames(note.onset, rate)
		for i := start; i < n; i++ {
			t := float64(i) / float64(rate)
			np := float64(i-start) / float64(n-start)
			env := adsr(np, 0.008, 0.25, 0.3, 0.45)
			freq := note.freq * (1 - np*0.025)
			s := fm(t, freq, 2.0, 2.0*env) * env * 0.32
			s += math.Sin(2*math.Pi*freq*0.5*t) * env * 0.1
			mix[i] += s
		}
	}
	for i, s := range mix {
		mix[i] = softSat(s)
	}
	return mix
}

// genMenuSelect: short falling click.
func genMenuSelect(rate int) []float64 {
	n := frames(0.065, rate)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / float64(rate)
		p := float64(i) / float64(n)
		env := adsr(p, 0.004, 0.55, 0.0, 0.1)
		freq := 1400 - 700*p
		out[i] = softSat(fm(t, freq, 1.0, 0.6) * env * 0.38)
	}
	return out
}
