package arena

import (
	"fmt"
	"image"
	"math/rand"
)

// InputFunc supplies both players' keys for the coming tick.
type InputFunc func(m *Match) [2]Steering

// Sim is a headless match harness. It mirrors a front end's frame loop
// (Update then Render) with no windowing dependency and supports
// deterministic seeding.
type Sim struct {
	Width, Height int
	Canvas        *Canvas
	Match         *Match

	cfg    Config
	seed   int64
	inputs InputFunc
	tick   int
}

// SimOption is a builder function applied to the config before the match is built.
type SimOption func(*Sim)

// WithBoard sets the canvas and play area size.
func WithBoard(w, h int) SimOption {
	return func(s *Sim) {
		s.cfg.Width, s.cfg.Height = w, h
		s.cfg.PlayWidth, s.cfg.PlayHeight = 0, 0
	}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return func(s *Sim) { s.seed = seed }
}

func WithMode(m Mode) SimOption {
	return func(s *Sim) { s.cfg.Mode = m }
}

func WithSpeed(t SpeedTier) SimOption {
	return func(s *Sim) { s.cfg.Speed = t }
}

// WithHeading fixes player i's starting heading in degrees.
func WithHeading(i int, deg float64) SimOption {
	return func(s *Sim) {
		s.cfg.Players[i].Heading = deg
		s.cfg.Players[i].RandomHeading = false
	}
}

// WithSpawn places player i at fractions of the play area.
func WithSpawn(i int, fx, fy float64) SimOption {
	return func(s *Sim) {
		s.cfg.Players[i].SpawnX = fx
		s.cfg.Players[i].SpawnY = fy
	}
}

func WithSteering(i int, m SteeringMode) SimOption {
	return func(s *Sim) { s.cfg.Players[i].Steering = m }
}

// WithoutPickups starts the match with an empty pickup set.
func WithoutPickups() SimOption {
	return func(s *Sim) { s.cfg.NoPickups = true }
}

// WithMarkerBand paints a wall-marker rectangle every frame.
func WithMarkerBand(r image.Rectangle) SimOption {
	return func(s *Sim) { s.cfg.MarkerBand = r }
}

// WithInputs drives both players from fn. Without it nobody steers.
func WithInputs(fn InputFunc) SimOption {
	return func(s *Sim) { s.inputs = fn }
}

// WithBots hands both players to a Bot.
func WithBots() SimOption {
	return func(s *Sim) {
		b0, b1 := NewBot(0), NewBot(1)
		s.inputs = func(m *Match) [2]Steering {
			return [2]Steering{b0.Steer(m), b1.Steer(m)}
		}
	}
}

// NewSim builds a canvas and match from the given options. The default is a
// 640x480 EatToGrow board at medium speed with seed 1.
func NewSim(opts ...SimOption) (*Sim, error) {
	s := &Sim{
		cfg:  DefaultConfig(640, 480),
		seed: 1,
	}
	for _, o := range opts {
		o(s)
	}
	s.Width, s.Height = s.cfg.Width, s.cfg.Height
	pw, ph := s.cfg.PlayArea()
	c, err := NewCanvas(s.cfg.Width, s.cfg.Height, pw, ph, BackgroundColor)
	if err != nil {
		return nil, fmt.Errorf("sim canvas: %w", err)
	}
	rng := rand.New(rand.NewSource(s.seed)) // #nosec G404 -- test harness
	m, err := NewMatch(c, s.cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("sim match: %w", err)
	}
	s.Canvas, s.Match = c, m
	return s, nil
}

// Step runs one frame: input, Update, Render.
func (s *Sim) Step() {
	var in [2]Steering
	if s.inputs != nil {
		in = s.inputs(s.Match)
	}
	s.tick++
	s.Match.Update(in)
	s.Match.Render()
}

// RunTicks advances the simulation n frames.
func (s *Sim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		s.Step()
	}
}

// RunUntil advances the simulation up to maxTicks frames, stopping early if
// predicate returns true. Returns the frame at which the predicate was
// satisfied, or -1.
func (s *Sim) RunUntil(predicate func(*Sim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		s.Step()
		if predicate(s) {
			return s.tick
		}
	}
	return -1
}

// CurrentTick is the number of frames stepped so far, including finished ones.
func (s *Sim) CurrentTick() int {
	return s.tick
}

// Log is the match's event log.
func (s *Sim) Log() *MatchLog {
	return s.Match.Log()
}
