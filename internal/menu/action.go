package menu

import "github.com/Garsondee/trail-arena/internal/arena"

// Action is what choosing an option asks the front end to do.
type Action int

const (
	ActNone Action = iota
	ActStart
	ActPlayAgain
	ActQuit
	ActSetSteering
	ActSetSpeed
	ActEditBindings
	ActCaptureKey
	ActApplyBindings
	ActDiscardBindings
)

func (a Action) String() string {
	switch a {
	case ActNone:
		return "none"
	case ActStart:
		return "start"
	case ActPlayAgain:
		return "play_again"
	case ActQuit:
		return "quit"
	case ActSetSteering:
		return "set_steering"
	case ActSetSpeed:
		return "set_speed"
	case ActEditBindings:
		return "edit_bindings"
	case ActCaptureKey:
		return "capture_key"
	case ActApplyBindings:
		return "apply_bindings"
	case ActDiscardBindings:
		return "discard_bindings"
	default:
		return "unknown"
	}
}

// Control is one of the four steering inputs a player can rebind.
type Control int

const (
	ControlUp Control = iota
	ControlDown
	ControlLeft
	ControlRight
	controlCount
)

func (c Control) String() string {
	switch c {
	case ControlUp:
		return "Up"
	case ControlDown:
		return "Down"
	case ControlLeft:
		return "Left"
	case ControlRight:
		return "Right"
	default:
		return "?"
	}
}

// Bindings maps each control to a key name understood by the front end.
type Bindings [controlCount]string

// Settings is the state the menus edit and a new match reads.
type Settings struct {
	Steering [2]arena.SteeringMode
	Speed    arena.SpeedTier
	Keys     [2]Bindings
	LastMode arena.Mode
}

// Apply copies the menu choices onto a match configuration.
func (s Settings) Apply(cfg *arena.Config, mode arena.Mode) {
	cfg.Mode = mode
	cfg.Speed = s.Speed
	for i := range cfg.Players {
		cfg.Players[i].Steering = s.Steering[i]
	}
}

// Event reports the outcome of Choose. Start and PlayAgain carry the mode.
type Event struct {
	Action Action
	Mode   arena.Mode
	Player int
}
