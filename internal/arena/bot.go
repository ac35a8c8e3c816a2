package arena

import "math"

// Bot look-ahead tuning.
const (
	botProbeRadius  = 5
	botTurnDeadband = 4.0
	// botAxisThreshold is sin(22.5°): components below it count as zero when
	// mapping a heading onto eight absolute directions.
	botAxisThreshold = 0.38
)

var (
	botLookahead = []float64{10, 18, 26}
	botFan       = []float64{0, -25, 25, -50, 50, -80, 80, -120, 120}
)

// Bot produces steering input for one trail. It heads for the nearest pickup
// and probes the canvas ahead of the head to stay clear of anything drawn.
type Bot struct {
	player int
}

func NewBot(player int) *Bot {
	return &Bot{player: player}
}

// Player is the trail index the bot drives.
func (b *Bot) Player() int { return b.player }

// Steer returns the keys the bot would hold this tick.
func (b *Bot) Steer(m *Match) Steering {
	t := m.Trail(b.player)
	want := b.desiredHeading(m, t)
	if t.Steering() == SteerRelative {
		a := t.Direction().AngleTo(want)
		switch {
		case a > botTurnDeadband && a < 180:
			return Steering{Right: true}
		case a >= 180 && a < 360-botTurnDeadband:
			return Steering{Left: true}
		}
		return Steering{}
	}
	var in Steering
	switch {
	case want.X > botAxisThreshold:
		in.Right = true
	case want.X < -botAxisThreshold:
		in.Left = true
	}
	switch {
	case want.Y > botAxisThreshold:
		in.Down = true
	case want.Y < -botAxisThreshold:
		in.Up = true
	}
	return in
}

// desiredHeading picks the clear direction closest to the goal.
func (b *Bot) desiredHeading(m *Match, t *Trail) Vector2 {
	dir := t.Direction().Normalized()
	goal := dir
	if p, ok := nearestPickup(m, t.Head()); ok {
		goal = p.Sub(t.Head()).Normalized()
	}

	best := dir
	bestScore := math.Inf(-1)
	for _, off := range botFan {
		cand := dir.Rotated(off)
		if !b.clear(m, t, cand) {
			continue
		}
		score := cand.Dot(goal) - math.Abs(off)/360
		if score > bestScore {
			best, bestScore = cand, score
		}
	}
	return best
}

// clear probes a few points along heading. Pickups read as the probe's own
// colour, everything else drawn counts as blocking.
func (b *Bot) clear(m *Match, t *Trail, heading Vector2) bool {
	c := m.Canvas()
	w, h := float64(c.PlayAreaWidth()), float64(c.PlayAreaHeight())
	for _, d := range botLookahead {
		p := t.Head().Add(heading.Scale(d))
		p.X = wrapCoord(p.X, w)
		p.Y = wrapCoord(p.Y, h)
		if c.DetectCollision(p.Coords(), botProbeRadius, PickupColor).Foreign {
			return false
		}
	}
	return true
}

func nearestPickup(m *Match, from Vector2) (Vector2, bool) {
	best := Vector2{}
	bestDist := math.Inf(1)
	for _, p := range m.pickups {
		if d := p.Pos.DistanceTo(from); d < bestDist {
			best, bestDist = p.Pos, d
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
