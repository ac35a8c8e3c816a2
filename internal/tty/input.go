package tty

import (
	"strings"
	"time"
	"unicode"

	"github.com/Garsondee/trail-arena/internal/arena"
	"github.com/Garsondee/trail-arena/internal/menu"
	"github.com/gdamore/tcell/v2"
)

// Terminals report key presses and auto-repeats but never releases, so a
// control counts as held until keyTimeout passes without another press.
const keyTimeout = 150 * time.Millisecond

// Blue steers with the arrow keys, yellow with wasd.
var defaultBindings = [2]menu.Bindings{
	{"Up", "Down", "Left", "Right"},
	{"w", "s", "a", "d"},
}

// keyName names a key event the way bindings store it: tcell's key name
// for special keys, the lower-cased rune otherwise.
func keyName(ev *tcell.EventKey) string {
	if ev.Key() == tcell.KeyRune {
		return string(unicode.ToLower(ev.Rune()))
	}
	if name, ok := tcell.KeyNames[ev.Key()]; ok {
		return name
	}
	return ""
}

// heldKeys tracks the last press of each control for one player.
type heldKeys struct {
	bindings menu.Bindings
	last     [4]time.Time
}

// press records a press of the named key and reports whether it is bound.
func (h *heldKeys) press(name string, now time.Time) bool {
	hit := false
	for c, b := range h.bindings {
		if b != "" && strings.EqualFold(b, name) {
			h.last[c] = now
			hit = true
		}
	}
	return hit
}

func (h *heldKeys) held(c menu.Control, now time.Time) bool {
	t := h.last[c]
	return !t.IsZero() && now.Sub(t) < keyTimeout
}

func (h *heldKeys) steering(now time.Time) arena.Steering {
	return arena.Steering{
		Up:    h.held(menu.ControlUp, now),
		Down:  h.held(menu.ControlDown, now),
		Left:  h.held(menu.ControlLeft, now),
		Right: h.held(menu.ControlRight, now),
	}
}

func (h *heldKeys) reset() {
	h.last = [4]time.Time{}
}
