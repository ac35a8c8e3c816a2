package arena

import (
	"errors"
	"image"
	"math/rand"
	"strings"
	"testing"
)

// dumpLog prints the match log so it appears in `go test -v` output.
func dumpLog(t *testing.T, s *Sim) {
	t.Helper()
	if s.Log().Len() == 0 {
		t.Log("(no log entries)")
		return
	}
	t.Log("\n" + s.Log().Format())
}

func newTestSim(t *testing.T, opts ...SimOption) *Sim {
	t.Helper()
	s, err := NewSim(opts...)
	if err != nil {
		t.Fatalf("NewSim: %v", err)
	}
	return s
}

// twoLanes puts both players on separate rows heading right.
func twoLanes(w, h int) []SimOption {
	return []SimOption{
		WithBoard(w, h),
		WithHeading(0, 0), WithHeading(1, 0),
		WithSpawn(0, 0.1, 0.25), WithSpawn(1, 0.1, 0.75),
	}
}

func TestNewMatch_RejectsBadSetup(t *testing.T) {
	rng := rand.New(rand.NewSource(1)) // #nosec G404 -- test
	c := newTestCanvas(t, 100, 100)

	if _, err := NewMatch(c, DefaultConfig(200, 100), rng); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("canvas/config mismatch: err = %v", err)
	}
	cfg := DefaultConfig(100, 100)
	cfg.Players[1].Color = cfg.Players[0].Color
	if _, err := NewMatch(c, cfg, rng); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("shared colours: err = %v", err)
	}
	cfg = DefaultConfig(100, 100)
	cfg.Players[0].Color = MarkerColor
	if _, err := NewMatch(c, cfg, rng); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("marker colour: err = %v", err)
	}
	if _, err := NewMatch(c, DefaultConfig(100, 100), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("nil rng: err = %v", err)
	}
	if _, err := NewSim(WithBoard(0, 10)); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("zero board: err = %v", err)
	}
}

func TestNewMatch_ModeSetup(t *testing.T) {
	cases := []struct {
		mode     Mode
		pickups  int
		radius   int
		target   float64
		infinite bool
	}{
		{ModeInfiniteSnake, 0, 0, growLength, true},
		{ModeEatToGrow, 4, 7, 100, false},
		{ModeEatToSurvive, 10, 9, 75, false},
	}
	for _, c := range cases {
		s := newTestSim(t, WithMode(c.mode), WithSeed(3))
		m := s.Match
		if got := len(m.Pickups()); got != c.pickups {
			t.Errorf("%s: %d pickups, want %d", c.mode, got, c.pickups)
		}
		if m.PickupRadius() != c.radius {
			t.Errorf("%s: pickup radius %d, want %d", c.mode, m.PickupRadius(), c.radius)
		}
		for i := 0; i < 2; i++ {
			tr := m.Trail(i)
			if tr.Infinite() != c.infinite {
				t.Errorf("%s: trail %d infinite=%v", c.mode, i, tr.Infinite())
			}
			if !c.infinite && tr.TargetLength() != c.target {
				t.Errorf("%s: trail %d target %.1f, want %.1f", c.mode, i, tr.TargetLength(), c.target)
			}
		}
		if m.Phase() != PhaseRunning {
			t.Errorf("%s: phase %s, want running", c.mode, m.Phase())
		}
		for _, p := range m.Pickups() {
			pt := p.Pos.Coords()
			if px, _ := s.Canvas.At(pt.X, pt.Y); px != PickupColor {
				t.Errorf("%s: pickup at %v not painted", c.mode, pt)
			}
		}
	}
}

func TestMatch_StarvationAfterExactly500Ticks(t *testing.T) {
	opts := append(twoLanes(800, 400), WithMode(ModeEatToSurvive), WithoutPickups())
	s := newTestSim(t, opts...)

	at := s.RunUntil(func(s *Sim) bool { return s.Match.Finished() }, 2000)
	if at != 500 {
		dumpLog(t, s)
		t.Fatalf("match finished at tick %d, want 500", at)
	}
	if s.Match.Outcome() != OutcomeDraw || s.Match.Winner() != nil || s.Match.Loser() != nil {
		t.Fatalf("both starve together: outcome %s winner %v loser %v", s.Match.Outcome(), s.Match.Winner(), s.Match.Loser())
	}
	if n := s.Log().CountCategory(CatLength, KeyStarved); n != 2 {
		t.Fatalf("starved entries = %d, want 2", n)
	}
	if r := DetermineOutcome(s.Match); r.Description != "draw_mutual_starvation" {
		t.Fatalf("description = %q", r.Description)
	}
}

func TestMatch_StarvationOtherTrailWins(t *testing.T) {
	opts := append(twoLanes(800, 400), WithMode(ModeEatToSurvive), WithoutPickups())
	s := newTestSim(t, opts...)
	s.Match.Trail(1).grow(eatLengthBonus, 0)

	at := s.RunUntil(func(s *Sim) bool { return s.Match.Finished() }, 2000)
	if at != 500 {
		dumpLog(t, s)
		t.Fatalf("match finished at tick %d, want 500", at)
	}
	m := s.Match
	if m.Outcome() != OutcomePlayer2 || m.Winner() != m.Trail(1) || m.Loser() != m.Trail(0) {
		t.Fatalf("outcome %s, want player 2 to outlast a starved player 1", m.Outcome())
	}
	if r := DetermineOutcome(m); r.Description != "blue_player_starved" {
		t.Fatalf("description = %q", r.Description)
	}
}

func TestMatch_SegmentsBoundedByTarget(t *testing.T) {
	s := newTestSim(t, WithSeed(11), WithBots())
	bad := s.RunUntil(func(s *Sim) bool {
		for i := 0; i < 2; i++ {
			tr := s.Match.Trail(i)
			if float64(tr.Len()) > tr.TargetLength() {
				return true
			}
			h := tr.Head()
			if h.X < 0 || h.Y < 0 || h.X >= float64(s.Width) || h.Y >= float64(s.Height) {
				return true
			}
		}
		return false
	}, 1500)
	if bad != -1 {
		dumpLog(t, s)
		t.Fatalf("invariant broken at tick %d", bad)
	}
}

func TestMatch_InfiniteSnakeKeepsGrowing(t *testing.T) {
	opts := append(twoLanes(1200, 400), WithMode(ModeInfiniteSnake))
	s := newTestSim(t, opts...)
	s.RunTicks(150)
	if !s.Match.Running() {
		dumpLog(t, s)
		t.Fatalf("straight lanes ended the match: %s", s.Match.Outcome())
	}
	for i := 0; i < 2; i++ {
		if n := s.Match.Trail(i).Len(); n != 150 {
			t.Fatalf("trail %d len = %d, want 150", i, n)
		}
	}
	if s.Canvas.PendingErase() != 0 {
		t.Fatal("infinite trails should never queue erasures")
	}
}

func TestMatch_MutualForeignHitIsDraw(t *testing.T) {
	opts := append(twoLanes(400, 300), WithoutPickups())
	s := newTestSim(t, opts...)
	h0 := s.Match.Trail(0).Head().Coords()
	h1 := s.Match.Trail(1).Head().Coords()
	s.Canvas.DrawPoint(h0.Add(image.Pt(10, 0)), YellowColor, 6)
	s.Canvas.DrawPoint(h1.Add(image.Pt(10, 0)), BlueColor, 6)

	s.RunTicks(1)
	m := s.Match
	if m.Phase() != PhaseFinished || m.Outcome() != OutcomeDraw {
		t.Fatalf("phase %s outcome %s, want finished draw", m.Phase(), m.Outcome())
	}
	if m.Winner() != nil || m.Loser() != nil {
		t.Fatal("draw must leave winner and loser unset")
	}
	if n := s.Log().CountCategory(CatCollision, KeyForeign); n != 2 {
		t.Fatalf("foreign collision entries = %d, want 2", n)
	}
	if r := DetermineOutcome(m); r.Description != "draw_mutual_collision" {
		t.Fatalf("description = %q", r.Description)
	}
}

func TestMatch_SingleForeignHitOtherWins(t *testing.T) {
	opts := append(twoLanes(400, 300), WithoutPickups())
	s := newTestSim(t, opts...)
	h0 := s.Match.Trail(0).Head().Coords()
	s.Canvas.DrawPoint(h0.Add(image.Pt(10, 0)), YellowColor, 6)

	s.RunTicks(1)
	m := s.Match
	if m.Outcome() != OutcomePlayer2 || m.Winner() != m.Trail(1) || m.Loser() != m.Trail(0) {
		t.Fatalf("outcome %s, want player 2", m.Outcome())
	}
	if !s.Log().HasEntry(CatCollision, KeyForeign, "yellow_player") {
		dumpLog(t, s)
		t.Fatal("missing foreign collision entry naming the yellow trail")
	}
	if r := DetermineOutcome(m); r.Description != "blue_player_hit_yellow_player" {
		t.Fatalf("description = %q", r.Description)
	}
}

func TestMatch_SelfCollisionLoses(t *testing.T) {
	opts := append(twoLanes(400, 300), WithoutPickups())
	s := newTestSim(t, opts...)
	tr := s.Match.Trail(1)
	next := tr.Head().Add(tr.Direction().Scale(tr.Speed())).Coords()
	s.Canvas.DrawPoint(next, YellowColor, 10)

	s.RunTicks(1)
	m := s.Match
	if m.Outcome() != OutcomePlayer1 {
		dumpLog(t, s)
		t.Fatalf("outcome %s, want player 1 after yellow closes on itself", m.Outcome())
	}
	if c := tr.LastCollision(); c.Foreign || c.Color != YellowColor {
		t.Fatalf("collision %+v, want self", c)
	}
	if !s.Log().HasEntry(CatCollision, KeySelf, "") {
		t.Fatal("missing self collision entry")
	}
}

func TestMatch_MarkerIsNeverFatalAlone(t *testing.T) {
	band := image.Rect(60, 50, 90, 100)
	opts := append(twoLanes(400, 300), WithoutPickups(), WithMarkerBand(band))
	s := newTestSim(t, opts...)

	s.RunTicks(20)
	if !s.Match.Running() {
		dumpLog(t, s)
		t.Fatalf("marker contact ended the match: %s", s.Match.Outcome())
	}
	if n := s.Log().CountCategory(CatCollision, KeyMarker); n != 1 {
		dumpLog(t, s)
		t.Fatalf("marker entries = %d, want one per contact", n)
	}
	if px, _ := s.Canvas.At(75, 75); px != MarkerColor {
		t.Fatalf("band pixel = %v, want marker repainted over the trail", px)
	}
}

func TestMatch_PickupEatenGrowsAndScores(t *testing.T) {
	opts := append(twoLanes(400, 300), WithoutPickups())
	s := newTestSim(t, opts...)
	m := s.Match
	h0 := m.Trail(0).Head().Coords()
	m.placePickup(h0.Add(image.Pt(12, 0)))
	speed := m.Trail(0).Speed()

	s.RunTicks(1)
	if !m.Running() {
		dumpLog(t, s)
		t.Fatalf("eating ended the match: %s", m.Outcome())
	}
	if m.Scores() != [2]int{1, 0} {
		t.Fatalf("scores = %v, want [1 0]", m.Scores())
	}
	tr := m.Trail(0)
	if tr.Collided() {
		t.Fatal("pickup hit must clear the collided flag")
	}
	if tr.TargetLength() != growLength+eatLengthBonus {
		t.Fatalf("target = %.1f, want %d", tr.TargetLength(), growLength+eatLengthBonus)
	}
	if d := tr.Speed() - speed; d < eatSpeedBonus-1e-9 || d > eatSpeedBonus+1e-9 {
		t.Fatalf("speed bonus = %v", d)
	}
	if n := len(m.Pickups()); n != 1 {
		t.Fatalf("pickups = %d, want a replacement", n)
	}
	eaten := h0.Add(image.Pt(12, 0))
	if px, _ := s.Canvas.At(eaten.X, eaten.Y); px == PickupColor {
		t.Fatal("eaten pickup still painted after render")
	}
	if !s.Log().HasEntry(CatPickup, KeyEaten, "score 1") {
		dumpLog(t, s)
		t.Fatal("missing eaten entry")
	}
}

func TestHandlePickupCollision_TieGoesToEarliest(t *testing.T) {
	opts := append(twoLanes(400, 300), WithoutPickups())
	s := newTestSim(t, opts...)
	m := s.Match
	m.placePickup(image.Pt(190, 200))
	m.placePickup(image.Pt(210, 200))

	tr := m.Trail(0)
	tr.collided = true
	tr.lastCollision = Collision{Hit: true, Foreign: true, Color: PickupColor, At: image.Pt(200, 200)}
	m.handlePickupCollision(0)

	p := m.Pickups()
	if len(p) != 2 {
		t.Fatalf("pickups = %d, want 2 after replacement", len(p))
	}
	if p[0].Pos != (Vector2{X: 210, Y: 200}) {
		t.Fatalf("survivor = %v, want the later pickup at (210,200)", p[0].Pos)
	}
}

func TestSpawnPickup_FindsFreeRectangle(t *testing.T) {
	free := image.Rect(60, 20, 140, 180)
	for seed := int64(1); seed <= 25; seed++ {
		s := newTestSim(t, WithBoard(200, 200), WithoutPickups(), WithSeed(seed))
		m := s.Match
		s.Canvas.DrawRect(image.Rect(0, 0, 200, 200), BlueColor)
		s.Canvas.DrawRect(free, BackgroundColor)

		if err := m.SpawnPickup(); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		p := m.Pickups()[0].Pos.Coords()
		r := m.PickupRadius()
		foot := image.Rect(p.X-r, p.Y-r, p.X+r+1, p.Y+r+1)
		if !foot.In(free) {
			t.Fatalf("seed %d: pickup footprint %v outside free rectangle %v", seed, foot, free)
		}
	}
}

func TestSpawnPickup_NoFreeSpace(t *testing.T) {
	s := newTestSim(t, WithBoard(120, 120), WithoutPickups())
	s.Canvas.DrawRect(image.Rect(0, 0, 120, 120), YellowColor)
	err := s.Match.SpawnPickup()
	if !errors.Is(err, ErrNoFreeSpace) {
		t.Fatalf("err = %v, want ErrNoFreeSpace", err)
	}
	if len(s.Match.Pickups()) != 0 {
		t.Fatal("failed spawn should not add a pickup")
	}
	if !s.Log().HasEntry(CatPickup, KeyNoSpace, "") {
		t.Fatal("missing no_space entry")
	}
}

func TestMatch_FinishedLoserDecays(t *testing.T) {
	opts := append(twoLanes(800, 300), WithoutPickups())
	s := newTestSim(t, opts...)
	s.RunTicks(60)
	tr0 := s.Match.Trail(0)
	next := tr0.Head().Add(tr0.Direction().Scale(tr0.Speed())).Coords()
	s.Canvas.DrawPoint(next.Add(image.Pt(4, 0)), YellowColor, 5)
	s.RunTicks(1)
	if s.Match.Outcome() != OutcomePlayer2 {
		dumpLog(t, s)
		t.Fatalf("outcome %s, want player 2", s.Match.Outcome())
	}

	winnerLen := s.Match.Trail(1).Len()
	loserLen := tr0.Len()
	tick := s.Match.Tick()
	s.RunTicks(5)
	if tr0.Len() != loserLen-5*decayBase {
		t.Fatalf("loser len %d -> %d, want %d", loserLen, tr0.Len(), loserLen-5*decayBase)
	}
	if s.Match.Trail(1).Len() != winnerLen {
		t.Fatal("winner should not decay")
	}
	if s.Match.Tick() != tick {
		t.Fatal("match tick advanced after finish")
	}
	s.RunTicks(100)
	if tr0.Len() != 0 {
		t.Fatalf("loser still has %d segments", tr0.Len())
	}
}

func TestMatch_MenuAndQuitAreNoOps(t *testing.T) {
	s := newTestSim(t, twoLanes(400, 300)...)
	for _, p := range []Phase{PhaseMenu, PhaseQuit} {
		s.Match.SetPhase(p)
		head := s.Match.Trail(0).Head()
		s.RunTicks(10)
		if s.Match.Tick() != 0 || s.Match.Trail(0).Head() != head {
			t.Fatalf("phase %s advanced the match", p)
		}
	}
}

func TestSummary_MentionsResult(t *testing.T) {
	opts := append(twoLanes(400, 300), WithoutPickups())
	s := newTestSim(t, opts...)
	h0 := s.Match.Trail(0).Head().Coords()
	s.Canvas.DrawPoint(h0.Add(image.Pt(10, 0)), YellowColor, 6)
	s.RunTicks(1)

	out := Summary(s.Match, 5)
	for _, want := range []string{"result=player2_victory", "Blue Player", "Yellow Player", "events:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
}
