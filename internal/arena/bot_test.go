package arena

import (
	"image"
	"testing"
)

func TestBot_TurnsTowardPickup(t *testing.T) {
	for _, mode := range []SteeringMode{SteerRelative, SteerAbsolute} {
		s := newTestSim(t, WithoutPickups(), WithHeading(0, 0), WithSteering(0, mode))
		m := s.Match
		h := m.Trail(0).Head().Coords()
		m.placePickup(h.Add(image.Pt(-50, 50)).Add(image.Pt(100, 0)))

		in := NewBot(0).Steer(m)
		switch mode {
		case SteerRelative:
			if in != (Steering{Right: true}) {
				t.Fatalf("relative: got %+v, want a right turn toward the pickup below", in)
			}
		case SteerAbsolute:
			if !in.Right || !in.Down || in.Left || in.Up {
				t.Fatalf("absolute: got %+v, want right+down", in)
			}
		}
	}
}

func TestBot_AvoidsWallAhead(t *testing.T) {
	s := newTestSim(t, WithoutPickups(), WithHeading(0, 0))
	m := s.Match
	h := m.Trail(0).Head().Coords()
	s.Canvas.DrawRect(image.Rect(h.X+18, h.Y-40, h.X+28, h.Y+40), YellowColor)

	in := NewBot(0).Steer(m)
	if in == (Steering{}) {
		t.Fatal("bot kept driving into the wall")
	}
	if in.Left == in.Right {
		t.Fatalf("got %+v, want a single turn", in)
	}
}

func TestBot_HoldsCourseWhenAligned(t *testing.T) {
	s := newTestSim(t, WithoutPickups(), WithHeading(0, 0))
	m := s.Match
	h := m.Trail(0).Head().Coords()
	m.placePickup(image.Pt(h.X+100, h.Y))
	if in := NewBot(0).Steer(m); in != (Steering{}) {
		t.Fatalf("got %+v, want no keys", in)
	}
}

func TestSim_BotsPlayToAnEnd(t *testing.T) {
	s := newTestSim(t, WithSeed(5), WithBots(), WithSpeed(SpeedFast))
	s.RunUntil(func(s *Sim) bool { return s.Match.Finished() }, 20000)
	if s.Log().CountCategory(CatPickup, KeySpawn) < 4 {
		t.Fatal("starting pickups were not logged")
	}
	r := DetermineOutcome(s.Match)
	if s.Match.Finished() == (r.Outcome == OutcomeOngoing) {
		t.Fatalf("outcome %s inconsistent with phase %s", r.Outcome, s.Match.Phase())
	}
}
