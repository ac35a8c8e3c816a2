package arena

import "fmt"

type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomePlayer1
	OutcomePlayer2
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlayer1:
		return "player1_victory"
	case OutcomePlayer2:
		return "player2_victory"
	case OutcomeDraw:
		return "draw"
	case OutcomeOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

// OutcomeReason explains how a match ended.
type OutcomeReason struct {
	Outcome     Outcome
	Tick        int
	Scores      [2]int
	Lengths     [2]int
	Collided    [2]bool
	HitColors   [2]string
	Description string
}

// DetermineOutcome inspects a match and describes its result. It does not
// change match state.
func DetermineOutcome(m *Match) OutcomeReason {
	r := OutcomeReason{
		Outcome: m.Outcome(),
		Tick:    m.Tick(),
		Scores:  m.Scores(),
	}
	for i := 0; i < 2; i++ {
		t := m.Trail(i)
		r.Lengths[i] = t.Len()
		r.Collided[i] = t.Collided()
		if t.Collided() {
			r.HitColors[i] = colorName(m, t.LastCollision())
		}
	}

	switch r.Outcome {
	case OutcomeOngoing:
		r.Description = "ongoing"
	case OutcomeDraw:
		switch {
		case r.Collided[0] && r.Collided[1]:
			r.Description = "draw_mutual_collision"
		case m.Mode() == ModeEatToSurvive:
			r.Description = "draw_mutual_starvation"
		default:
			r.Description = "draw"
		}
	default:
		loser := m.Loser()
		switch {
		case loser.Collided() && loser.LastCollision().Foreign:
			r.Description = fmt.Sprintf("%s_hit_%s", slug(loser.Name()), r.HitColors[loser.ID()])
		case loser.Collided():
			r.Description = fmt.Sprintf("%s_hit_self", slug(loser.Name()))
		default:
			r.Description = fmt.Sprintf("%s_starved", slug(loser.Name()))
		}
	}
	return r
}

// colorName labels the owner of a collision colour.
func colorName(m *Match, c Collision) string {
	switch {
	case !c.Foreign:
		return "self"
	case sameColor(c.Color, MarkerColor):
		return "marker"
	case sameColor(c.Color, PickupColor):
		return "pickup"
	}
	for i := 0; i < 2; i++ {
		if sameColor(c.Color, m.Trail(i).Color()) {
			return slug(m.Trail(i).Name())
		}
	}
	return "unknown"
}

func slug(name string) string {
	b := []byte(name)
	for i, c := range b {
		switch {
		case c >= 'A' && c <= 'Z':
			b[i] = c + ('a' - 'A')
		case c == ' ':
			b[i] = '_'
		}
	}
	return string(b)
}
