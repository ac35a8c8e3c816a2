package game

import (
	"log"

	"github.com/Garsondee/trail-arena/internal/sfx"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

const sfxVolume = 0.6

// audioSink plays pre-rendered cues through ebiten's audio context. A nil
// sink is silent.
type audioSink struct {
	ctx     *audio.Context
	players map[sfx.Cue]*audio.Player
}

func newAudioSink(rate int) *audioSink {
	s := &audioSink{
		ctx:     audio.NewContext(rate),
		players: make(map[sfx.Cue]*audio.Player),
	}
	bank := sfx.NewBank(rate)
	for _, c := range sfx.Cues() {
		p := s.ctx.NewPlayerFromBytes(sfx.PCM16Stereo(bank.Samples(c), 1))
		p.SetVolume(sfxVolume)
		s.players[c] = p
	}
	return s
}

func (s *audioSink) play(c sfx.Cue) {
	if s == nil {
		return
	}
	p := s.players[c]
	if p == nil {
		return
	}
	if err := p.Rewind(); err != nil {
		log.Printf("audio %s: %v", c, err)
		return
	}
	p.Play()
}
