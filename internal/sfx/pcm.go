package sfx

import "math"

// PCM16Stereo encodes mono samples as signed 16-bit little-endian stereo,
// the layout ebiten's audio players expect. Out-of-range samples clip.
func PCM16Stereo(samples []float64, gain float64) []byte {
	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		v := int16(math.Round(clamp(s*gain, -1, 1) * math.MaxInt16))
		buf[i*4] = byte(v)
		buf[i*4+1] = byte(v >> 8)
		buf[i*4+2] = byte(v)
		buf[i*4+3] = byte(v >> 8)
	}
	return buf
}

// Bank holds every cue pre-rendered at one rate.
type Bank struct {
	rate    int
	samples [cueCount][]float64
}

// NewBank renders all cues at rate.
func NewBank(rate int) *Bank {
	b := &Bank{rate: rate}
	for _, c := range Cues() {
		b.samples[c] = Generate(c, rate)
	}
	return b
}

func (b *Bank) Rate() int { return b.rate }

// Samples returns the rendered cue. Callers must not modify it.
func (b *Bank) Samples(c Cue) []float64 {
	if c < 0 || c >= cueCount {
		return nil
	}
	return b.samples[c]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
