package arena

import (
	"fmt"
	"image"
	"math/rand"
)

// Phase is the match lifecycle state.
type Phase int

const (
	PhaseMenu Phase = iota
	PhaseRunning
	PhaseFinished
	PhaseQuit
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhaseRunning:
		return "running"
	case PhaseFinished:
		return "finished"
	case PhaseQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Mode rules.
const (
	growPickups      = 4
	growPickupRadius = 7
	growLength       = 100

	survivePickups      = 10
	survivePickupRadius = 9
	surviveLength       = 75
	starveRate          = 0.15

	eatLengthBonus = 25
	eatSpeedBonus  = 0.1

	// pickupProbeScale widens the occupancy probe around a candidate pickup.
	pickupProbeScale = 5
	// maxSpawnAttempts bounds random placement before the grid scan.
	maxSpawnAttempts = 500
)

// Pickup is a collectible disk in PickupColor.
type Pickup struct {
	Pos Vector2
}

// Match owns both trails and the pickups and applies the mode rules each tick.
type Match struct {
	canvas *Canvas
	cfg    Config
	rng    *rand.Rand
	log    *MatchLog

	phase  Phase
	tick   int
	trails [2]*Trail

	pickups      []Pickup
	pickupRadius int

	scores  [2]int
	outcome Outcome
	// winner and loser index trails; -1 when unset.
	winner, loser int

	onMarker [2]bool
}

// NewMatch validates cfg, resets the canvas and places both trails and the
// starting pickups. The match starts in PhaseRunning.
func NewMatch(canvas *Canvas, cfg Config, rng *rand.Rand) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if canvas == nil {
		return nil, fmt.Errorf("nil canvas: %w", ErrInvalidConfig)
	}
	pw, ph := cfg.PlayArea()
	if canvas.Width() != cfg.Width || canvas.Height() != cfg.Height ||
		canvas.PlayAreaWidth() != pw || canvas.PlayAreaHeight() != ph {
		return nil, fmt.Errorf("canvas %dx%d (play %dx%d) does not match config %dx%d (play %dx%d): %w",
			canvas.Width(), canvas.Height(), canvas.PlayAreaWidth(), canvas.PlayAreaHeight(),
			cfg.Width, cfg.Height, pw, ph, ErrInvalidConfig)
	}
	if rng == nil {
		return nil, fmt.Errorf("nil rng: %w", ErrInvalidConfig)
	}

	m := &Match{
		canvas: canvas,
		cfg:    cfg,
		rng:    rng,
		log:    NewMatchLog(),
		phase:  PhaseRunning,
		winner: -1,
		loser:  -1,
	}
	canvas.Clear()

	speed := cfg.Speed.Value()
	for i, pc := range cfg.Players {
		heading := pc.Heading
		if pc.RandomHeading {
			heading = float64(rng.Intn(360))
		}
		m.trails[i] = NewTrail(i, canvas, pc, heading, speed, growLength)
	}

	pickups := 0
	switch cfg.Mode {
	case ModeInfiniteSnake:
		for _, t := range m.trails {
			t.SetInfinite()
		}
	case ModeEatToGrow:
		m.pickupRadius = growPickupRadius
		pickups = growPickups
	case ModeEatToSurvive:
		m.pickupRadius = survivePickupRadius
		pickups = survivePickups
		for _, t := range m.trails {
			t.targetLength = surviveLength
		}
	}
	if cfg.NoPickups {
		pickups = 0
	}

	m.drawMarker()
	m.log.Add(0, "--", CatMatch, KeyStart,
		fmt.Sprintf("mode=%s speed=%s", cfg.Mode, cfg.Speed), speed)
	for i := 0; i < pickups; i++ {
		_ = m.SpawnPickup()
	}
	return m, nil
}

func (m *Match) Phase() Phase           { return m.phase }
func (m *Match) SetPhase(p Phase)       { m.phase = p }
func (m *Match) Mode() Mode             { return m.cfg.Mode }
func (m *Match) Config() Config         { return m.cfg }
func (m *Match) Tick() int              { return m.tick }
func (m *Match) Trail(i int) *Trail     { return m.trails[i] }
func (m *Match) Scores() [2]int         { return m.scores }
func (m *Match) Outcome() Outcome       { return m.outcome }
func (m *Match) PickupRadius() int      { return m.pickupRadius }
func (m *Match) Log() *MatchLog         { return m.log }
func (m *Match) Canvas() *Canvas        { return m.canvas }
func (m *Match) Pickups() []Pickup      { return append([]Pickup(nil), m.pickups...) }
func (m *Match) Finished() bool         { return m.phase == PhaseFinished }
func (m *Match) Running() bool          { return m.phase == PhaseRunning }
func (m *Match) trailName(i int) string { return m.trails[i].Name() }
func (m *Match) other(i int) int        { return 1 - i }
func (m *Match) pickupProbeRadius() int { return pickupProbeScale * m.pickupRadius }
func (m *Match) trailByIndex(i int) *Trail {
	if i < 0 {
		return nil
	}
	return m.trails[i]
}

// Winner is the winning trail, or nil for a draw or an unfinished match.
func (m *Match) Winner() *Trail { return m.trailByIndex(m.winner) }

// Loser is the losing trail, or nil for a draw or an unfinished match.
func (m *Match) Loser() *Trail { return m.trailByIndex(m.loser) }

// Update advances the simulation one tick. inputs are indexed like the trails.
func (m *Match) Update(inputs [2]Steering) {
	switch m.phase {
	case PhaseRunning:
		m.tick++
		for i, t := range m.trails {
			t.Steer(inputs[i])
		}
		for _, t := range m.trails {
			t.Move()
		}
		m.resolveRunning()
	case PhaseFinished:
		if m.outcome == OutcomeDraw {
			for _, t := range m.trails {
				t.Decay()
			}
			return
		}
		if l := m.Loser(); l != nil {
			l.Decay()
		}
	}
}

func (m *Match) resolveRunning() {
	for i, t := range m.trails {
		c := t.LastCollision()
		if t.Collided() && c.Foreign && sameColor(c.Color, PickupColor) && len(m.pickups) > 0 {
			m.handlePickupCollision(i)
		}
	}

	for i, t := range m.trails {
		marker := t.Collided() && t.LastCollision().Foreign && sameColor(t.LastCollision().Color, MarkerColor)
		if marker && !m.onMarker[i] {
			p := t.LastCollision().At
			m.log.Add(m.tick, t.Name(), CatCollision, KeyMarker, fmt.Sprintf("(%d,%d)", p.X, p.Y), 0)
		}
		m.onMarker[i] = marker
	}

	c0, c1 := m.fatal(0), m.fatal(1)
	p0, p1 := m.trails[0].Collided(), m.trails[1].Collided()
	switch {
	case p0 && p1:
		m.logCollision(0)
		m.logCollision(1)
		m.finish(-1)
		return
	case c0:
		m.logCollision(0)
		m.finish(1)
		return
	case c1:
		m.logCollision(1)
		m.finish(0)
		return
	}

	if m.cfg.Mode != ModeEatToSurvive {
		return
	}
	for _, t := range m.trails {
		if t.targetLength > lengthEpsilon {
			t.shrink(starveRate)
		}
	}
	s0, s1 := m.trails[0].starved(), m.trails[1].starved()
	for i, s := range []bool{s0, s1} {
		if s {
			m.log.Add(m.tick, m.trailName(i), CatLength, KeyStarved, "target length reached zero", 0)
		}
	}
	switch {
	case s0 && s1:
		m.finish(-1)
	case s0:
		m.finish(1)
	case s1:
		m.finish(0)
	}
}

// fatal reports a collision that ends the match for trail i on its own.
func (m *Match) fatal(i int) bool {
	t := m.trails[i]
	if !t.Collided() {
		return false
	}
	c := t.LastCollision()
	return !(c.Foreign && sameColor(c.Color, MarkerColor))
}

func (m *Match) logCollision(i int) {
	t := m.trails[i]
	c := t.LastCollision()
	switch {
	case !c.Foreign:
		h := t.Head().Coords()
		m.log.Add(m.tick, t.Name(), CatCollision, KeySelf, fmt.Sprintf("(%d,%d)", h.X, h.Y), 0)
	case sameColor(c.Color, MarkerColor):
		// Logged on contact by resolveRunning.
	default:
		m.log.Add(m.tick, t.Name(), CatCollision, KeyForeign,
			fmt.Sprintf("%s at (%d,%d)", colorName(m, c), c.At.X, c.At.Y), 0)
	}
}

// finish ends the match. winner is a trail index or -1 for a draw.
func (m *Match) finish(winner int) {
	m.phase = PhaseFinished
	if winner < 0 {
		m.winner, m.loser = -1, -1
		m.outcome = OutcomeDraw
		m.log.Add(m.tick, "--", CatMatch, KeyFinished, OutcomeDraw.String(), 0)
		return
	}
	m.winner, m.loser = winner, m.other(winner)
	if winner == 0 {
		m.outcome = OutcomePlayer1
	} else {
		m.outcome = OutcomePlayer2
	}
	m.log.Add(m.tick, m.trailName(winner), CatMatch, KeyFinished, m.outcome.String(), float64(winner))
}

// handlePickupCollision consumes the pickup nearest to where trail i hit one.
func (m *Match) handlePickupCollision(i int) {
	t := m.trails[i]
	at := VecFromPoint(t.LastCollision().At)

	best := 0
	bestDist := m.pickups[0].Pos.DistanceTo(at)
	for j := 1; j < len(m.pickups); j++ {
		if d := m.pickups[j].Pos.DistanceTo(at); d < bestDist {
			best, bestDist = j, d
		}
	}
	p := m.pickups[best]
	m.pickups = append(m.pickups[:best], m.pickups[best+1:]...)
	m.canvas.EraseEnqueue(p.Pos, m.pickupRadius)

	if m.cfg.Mode == ModeEatToGrow || m.cfg.Mode == ModeEatToSurvive {
		t.grow(eatLengthBonus, eatSpeedBonus)
	}
	t.collided = false
	m.scores[i]++
	pc := p.Pos.Coords()
	m.log.Add(m.tick, t.Name(), CatPickup, KeyEaten,
		fmt.Sprintf("(%d,%d) score %d", pc.X, pc.Y, m.scores[i]), float64(m.scores[i]))

	_ = m.SpawnPickup()
}

// SpawnPickup places one pickup on a spot whose wide probe finds nothing but
// background or other pickups and whose own footprint is empty. Random spots
// are tried first, then the play area is scanned on a grid. ErrNoFreeSpace is
// returned when nothing fits; the match continues with one pickup fewer.
func (m *Match) SpawnPickup() error {
	r := m.pickupRadius
	if r <= 0 {
		return fmt.Errorf("mode %s has no pickups: %w", m.cfg.Mode, ErrInvalidConfig)
	}
	pw, ph := m.canvas.PlayAreaWidth(), m.canvas.PlayAreaHeight()
	spanX, spanY := pw-2*r, ph-2*r
	if spanX > 0 && spanY > 0 {
		for i := 0; i < maxSpawnAttempts; i++ {
			p := image.Point{X: r + m.rng.Intn(spanX), Y: r + m.rng.Intn(spanY)}
			if m.pickupFits(p) {
				m.placePickup(p)
				return nil
			}
		}
		for y := r; y < ph-r; y += r {
			for x := r; x < pw-r; x += r {
				p := image.Point{X: x, Y: y}
				if m.pickupFits(p) {
					m.placePickup(p)
					return nil
				}
			}
		}
	}
	m.log.Add(m.tick, "--", CatPickup, KeyNoSpace, fmt.Sprintf("%d pickups on board", len(m.pickups)), 0)
	return fmt.Errorf("pickup radius %d on %dx%d: %w", r, pw, ph, ErrNoFreeSpace)
}

func (m *Match) pickupFits(p image.Point) bool {
	if m.canvas.DetectCollision(p, m.pickupProbeRadius(), PickupColor).Hit {
		return false
	}
	return m.canvas.IsClear(p, m.pickupRadius)
}

func (m *Match) placePickup(p image.Point) {
	m.pickups = append(m.pickups, Pickup{Pos: VecFromPoint(p)})
	m.canvas.DrawPoint(p, PickupColor, m.pickupRadius)
	m.log.Add(m.tick, "--", CatPickup, KeySpawn, fmt.Sprintf("(%d,%d)", p.X, p.Y), float64(len(m.pickups)))
}

// Render brings the canvas up to date after Update: queued erasures first,
// then the trail ends, pickups and the marker band on top.
func (m *Match) Render() {
	m.canvas.FlushErase()
	for _, t := range m.trails {
		t.Draw()
	}
	for _, p := range m.pickups {
		m.canvas.DrawPoint(p.Pos.Coords(), PickupColor, m.pickupRadius)
	}
	m.drawMarker()
}

func (m *Match) drawMarker() {
	if m.cfg.MarkerBand.Empty() {
		return
	}
	m.canvas.DrawRect(m.cfg.MarkerBand, MarkerColor)
}
