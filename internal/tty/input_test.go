package tty

import (
	"testing"
	"time"

	"github.com/Garsondee/trail-arena/internal/arena"
	"github.com/Garsondee/trail-arena/internal/menu"
	"github.com/gdamore/tcell/v2"
)

func TestKeyName(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone), "w"},
		{tcell.NewEventKey(tcell.KeyRune, 'W', tcell.ModShift), "w"},
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "Up"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "Left"},
	}
	for _, c := range cases {
		if got := keyName(c.ev); got != c.want {
			t.Fatalf("keyName(%v) = %q, want %q", c.ev.Name(), got, c.want)
		}
	}
}

func TestHeldKeys_ExpireAfterTimeout(t *testing.T) {
	h := heldKeys{bindings: defaultBindings[1]}
	now := time.Unix(100, 0)

	if h.press("q", now) {
		t.Fatal("unbound key reported as bound")
	}
	if !h.press("A", now) {
		t.Fatal("binding match should ignore case")
	}
	if got := h.steering(now.Add(keyTimeout / 2)); got != (arena.Steering{Left: true}) {
		t.Fatalf("steering = %+v, want left held", got)
	}
	if h.held(menu.ControlLeft, now.Add(keyTimeout)) {
		t.Fatal("left still held after the timeout")
	}

	h.press("a", now)
	h.reset()
	if h.held(menu.ControlLeft, now) {
		t.Fatal("reset kept a held key")
	}
}
