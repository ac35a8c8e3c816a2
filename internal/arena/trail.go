package arena

import (
	"image/color"
	"math"
)

const (
	// probeRadius is the ring the head is tested against every move.
	probeRadius = 5
	// drawRadius is the disk each trail segment is painted with.
	drawRadius = 5
	// eraseRadius is wider than drawRadius so no rim is left behind the tail.
	eraseRadius = 8
	// decayBase is the minimum number of segments removed per decay tick.
	decayBase = 4
	// smoothGap is the longest gap between the two newest segments that still
	// gets an interpolated midpoint.
	smoothGap = 20.0
	// lengthEpsilon absorbs float drift in the starvation countdown.
	lengthEpsilon = 1e-9
)

// Trail is one player's head and the segments it has left behind, oldest first.
type Trail struct {
	id     int
	name   string
	canvas *Canvas

	head      Vector2
	direction Vector2
	color     color.RGBA

	targetLength float64
	infinite     bool
	speed        float64
	steering     SteeringMode

	segments []Vector2

	collided      bool
	lastCollision Collision
}

// NewTrail places a trail on canvas according to cfg. heading is in degrees.
func NewTrail(id int, canvas *Canvas, cfg PlayerConfig, heading, speed, length float64) *Trail {
	return &Trail{
		id:     id,
		name:   cfg.Name,
		canvas: canvas,
		head: Vector2{
			X: cfg.SpawnX * float64(canvas.PlayAreaWidth()),
			Y: cfg.SpawnY * float64(canvas.PlayAreaHeight()),
		},
		direction:    UnitFromDegrees(heading),
		color:        cfg.Color,
		targetLength: length,
		speed:        speed,
		steering:     cfg.Steering,
	}
}

func (t *Trail) ID() int                    { return t.id }
func (t *Trail) Name() string               { return t.name }
func (t *Trail) String() string             { return t.name }
func (t *Trail) Color() color.RGBA          { return t.color }
func (t *Trail) Head() Vector2              { return t.head }
func (t *Trail) Direction() Vector2         { return t.direction }
func (t *Trail) Speed() float64             { return t.speed }
func (t *Trail) Len() int                   { return len(t.segments) }
func (t *Trail) TargetLength() float64      { return t.targetLength }
func (t *Trail) Infinite() bool             { return t.infinite }
func (t *Trail) Steering() SteeringMode     { return t.steering }
func (t *Trail) SetSteering(m SteeringMode) { t.steering = m }
func (t *Trail) Collided() bool             { return t.collided }

// LastCollision is the probe result of the most recent Move.
func (t *Trail) LastCollision() Collision { return t.lastCollision }

// Segments returns a copy of the body, oldest first.
func (t *Trail) Segments() []Vector2 {
	out := make([]Vector2, len(t.segments))
	copy(out, t.segments)
	return out
}

// SetInfinite makes the trail keep every segment it lays.
func (t *Trail) SetInfinite() { t.infinite = true }

// RotationFactor is the per-tick turn in degrees. Faster trails turn harder.
func (t *Trail) RotationFactor() float64 {
	return math.Pow(t.speed, 4.2) / 100
}

// grow applies a pickup bonus.
func (t *Trail) grow(length, speed float64) {
	t.targetLength += length
	t.speed += speed
}

// shrink lowers the target length, never below zero.
func (t *Trail) shrink(by float64) {
	t.targetLength -= by
	if t.targetLength < lengthEpsilon {
		t.targetLength = 0
	}
}

// starved reports a finite trail whose target length has run out.
func (t *Trail) starved() bool {
	return !t.infinite && t.targetLength <= lengthEpsilon
}

// Steer turns the heading according to the held keys.
func (t *Trail) Steer(in Steering) {
	step := t.RotationFactor()
	switch t.steering {
	case SteerAbsolute:
		var desired Vector2
		switch {
		case in.Left:
			desired.X = -1
		case in.Right:
			desired.X = 1
		}
		switch {
		case in.Up:
			desired.Y = -1
		case in.Down:
			desired.Y = 1
		}
		if desired.X == 0 && desired.Y == 0 {
			return
		}
		diff := t.direction.AngleTo(desired)
		switch {
		case diff <= step || 360-diff <= step:
			t.direction = desired.Normalized().Scale(t.direction.Length())
		case diff < 180:
			t.direction.Rotate(step)
		default:
			t.direction.Rotate(-step)
		}
	case SteerRelative:
		switch {
		case in.Left:
			t.direction.Rotate(-step)
		case in.Right:
			t.direction.Rotate(step)
		}
	}
}

// Move lays a segment at the current head, advances the head, wraps it into
// the play area and probes the canvas at the new position. Surplus tail
// segments are queued for erasure.
func (t *Trail) Move() {
	t.segments = append(t.segments, t.head)
	t.head = t.head.Add(t.direction.Scale(t.speed))
	t.head.X = wrapCoord(t.head.X, float64(t.canvas.PlayAreaWidth()))
	t.head.Y = wrapCoord(t.head.Y, float64(t.canvas.PlayAreaHeight()))

	t.lastCollision = t.canvas.DetectCollision(t.head.Coords(), probeRadius, t.color)
	t.collided = t.lastCollision.Hit

	if t.infinite {
		return
	}
	for float64(len(t.segments)) > t.targetLength {
		t.popTail()
	}
}

// Decay removes a batch of the oldest segments. Long trails shrink faster.
func (t *Trail) Decay() {
	n := decayBase + len(t.segments)/100
	for i := 0; i < n && len(t.segments) > 0; i++ {
		t.popTail()
	}
}

func (t *Trail) popTail() {
	t.canvas.EraseEnqueue(t.segments[0], eraseRadius)
	t.segments = t.segments[1:]
}

// Draw repaints the ends of the body. Everything in between is already in the
// buffer from earlier frames.
func (t *Trail) Draw() {
	n := len(t.segments)
	if n == 0 {
		return
	}
	t.canvas.DrawPoint(t.segments[0].Coords(), t.color, drawRadius)
	t.canvas.DrawPoint(t.segments[n-1].Coords(), t.color, drawRadius)
	if n < 2 {
		return
	}
	t.canvas.DrawPoint(t.segments[1].Coords(), t.color, drawRadius)
	gap := t.segments[n-1].Sub(t.segments[n-2])
	if gap.Length() < smoothGap {
		mid := t.segments[n-2].Add(gap.Div(2))
		t.canvas.DrawPoint(mid.Coords(), t.color, drawRadius)
	}
}
