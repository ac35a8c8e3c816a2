package tty

import (
	"time"

	"github.com/Garsondee/trail-arena/internal/sfx"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// cueStreamer plays a pre-rendered mono cue on both channels.
type cueStreamer struct {
	samples []float64
	gain    float64
	pos     int
}

func (c *cueStreamer) Stream(buf [][2]float64) (n int, ok bool) {
	if c.pos >= len(c.samples) {
		return 0, false
	}
	for n < len(buf) && c.pos < len(c.samples) {
		v := c.samples[c.pos] * c.gain
		buf[n][0] = v
		buf[n][1] = v
		n++
		c.pos++
	}
	return n, true
}

func (c *cueStreamer) Err() error { return nil }

// speakerSink mixes cues into the default output through beep's speaker.
// A nil sink is silent.
type speakerSink struct {
	bank *sfx.Bank
	gain float64
}

func newSpeakerSink() (*speakerSink, error) {
	rate := beep.SampleRate(sfx.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return nil, err
	}
	return &speakerSink{bank: sfx.NewBank(sfx.SampleRate), gain: 0.6}, nil
}

func (s *speakerSink) play(c sfx.Cue) {
	if s == nil {
		return
	}
	speaker.Play(&cueStreamer{samples: s.bank.Samples(c), gain: s.gain})
}

func (s *speakerSink) close() {
	if s == nil {
		return
	}
	speaker.Close()
}
