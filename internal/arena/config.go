package arena

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

var (
	// ErrInvalidConfig marks a configuration the match cannot run with.
	ErrInvalidConfig = errors.New("invalid arena config")
	// ErrNoFreeSpace is returned when no collision-free pickup spot exists.
	ErrNoFreeSpace = errors.New("no free space for pickup")
)

// Palette shared by every match.
var (
	BackgroundColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	PickupColor     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	// MarkerColor is the gray of the HUD divider. Touching it registers a
	// collision that never decides a match on its own.
	MarkerColor = color.RGBA{R: 100, G: 100, B: 100, A: 255}

	BlueColor   = color.RGBA{R: 55, G: 111, B: 158, A: 255}
	YellowColor = color.RGBA{R: 255, G: 220, B: 77, A: 255}
)

// Mode selects the length, pickup and win rules of a match.
type Mode int

const (
	ModeInfiniteSnake Mode = iota
	ModeEatToGrow
	ModeEatToSurvive
	modeCount
)

func (m Mode) String() string {
	switch m {
	case ModeInfiniteSnake:
		return "infinite"
	case ModeEatToGrow:
		return "standard"
	case ModeEatToSurvive:
		return "starve"
	default:
		return "unknown"
	}
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m := Mode(0); m < modeCount; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("mode %q: %w", s, ErrInvalidConfig)
}

// SpeedTier is one of the three speed presets offered at match start.
type SpeedTier int

const (
	SpeedSlow SpeedTier = iota
	SpeedMedium
	SpeedFast
	speedCount
)

// Value returns the trail speed in pixels per tick. Every tier moves at
// least minStep so a straight trail never fills its own probe ring.
func (s SpeedTier) Value() float64 {
	switch s {
	case SpeedSlow:
		return 3.6
	case SpeedFast:
		return 5
	default:
		return 4.25
	}
}

// minStep is the smallest per-tick step at which the disk drawn two steps
// behind the head stays under the self-collision count.
const minStep = 3.5

func (s SpeedTier) String() string {
	switch s {
	case SpeedSlow:
		return "slow"
	case SpeedMedium:
		return "medium"
	case SpeedFast:
		return "fast"
	default:
		return "unknown"
	}
}

// ParseSpeed accepts the names produced by SpeedTier.String.
func ParseSpeed(s string) (SpeedTier, error) {
	for t := SpeedTier(0); t < speedCount; t++ {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("speed %q: %w", s, ErrInvalidConfig)
}

// SteeringMode decides how direction keys turn a trail.
type SteeringMode int

const (
	// SteerAbsolute turns toward the world-space heading of the held keys.
	SteerAbsolute SteeringMode = iota
	// SteerRelative turns left or right of the current heading.
	SteerRelative
)

func (s SteeringMode) String() string {
	if s == SteerRelative {
		return "relative"
	}
	return "absolute"
}

// Steering is one tick of directional key state for one player.
type Steering struct {
	Up, Down, Left, Right bool
}

// PlayerConfig is everything that tells the two trails apart.
type PlayerConfig struct {
	Name  string
	Color color.RGBA
	// SpawnX and SpawnY are fractions of the play area.
	SpawnX, SpawnY float64
	Steering       SteeringMode
	// Heading is the starting direction in degrees, ignored when RandomHeading is set.
	Heading       float64
	RandomHeading bool
}

// Config is the plain-data setup handed over by a front end at match start.
type Config struct {
	Width, Height int
	// PlayWidth and PlayHeight default to the full canvas when zero.
	PlayWidth, PlayHeight int
	Mode                  Mode
	Speed                 SpeedTier
	Players               [2]PlayerConfig
	// MarkerBand is repainted in MarkerColor every frame. Empty means none.
	MarkerBand image.Rectangle
	// NoPickups suppresses pickup spawning regardless of mode.
	NoPickups bool
}

// DefaultConfig returns the classic two-player setup for a canvas of the given size.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:  width,
		Height: height,
		Mode:   ModeEatToGrow,
		Speed:  SpeedMedium,
		Players: [2]PlayerConfig{
			{Name: "Blue Player", Color: BlueColor, SpawnX: 0.75, SpawnY: 0.5, Steering: SteerRelative, RandomHeading: true},
			{Name: "Yellow Player", Color: YellowColor, SpawnX: 0.25, SpawnY: 0.5, Steering: SteerAbsolute, RandomHeading: true},
		},
	}
}

// PlayArea returns the effective play area size.
func (c Config) PlayArea() (int, int) {
	w, h := c.PlayWidth, c.PlayHeight
	if w == 0 {
		w = c.Width
	}
	if h == 0 {
		h = c.Height
	}
	return w, h
}

// Validate reports the first field that makes the config unusable.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("size %dx%d: %w", c.Width, c.Height, ErrInvalidConfig)
	}
	pw, ph := c.PlayArea()
	if pw <= 0 || ph <= 0 || pw > c.Width || ph > c.Height {
		return fmt.Errorf("play area %dx%d: %w", pw, ph, ErrInvalidConfig)
	}
	if c.Mode < 0 || c.Mode >= modeCount {
		return fmt.Errorf("mode %d: %w", c.Mode, ErrInvalidConfig)
	}
	if c.Speed < 0 || c.Speed >= speedCount {
		return fmt.Errorf("speed %d: %w", c.Speed, ErrInvalidConfig)
	}
	reserved := []color.RGBA{BackgroundColor, PickupColor, MarkerColor}
	for i, p := range c.Players {
		for _, r := range reserved {
			if sameColor(p.Color, r) {
				return fmt.Errorf("player %d colour %v is reserved: %w", i+1, p.Color, ErrInvalidConfig)
			}
		}
		if p.SpawnX < 0 || p.SpawnX >= 1 || p.SpawnY < 0 || p.SpawnY >= 1 {
			return fmt.Errorf("player %d spawn (%.2f,%.2f): %w", i+1, p.SpawnX, p.SpawnY, ErrInvalidConfig)
		}
	}
	if sameColor(c.Players[0].Color, c.Players[1].Color) {
		return fmt.Errorf("players share colour %v: %w", c.Players[0].Color, ErrInvalidConfig)
	}
	return nil
}
