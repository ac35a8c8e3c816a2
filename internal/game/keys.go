package game

import (
	"fmt"

	"github.com/Garsondee/trail-arena/internal/arena"
	"github.com/Garsondee/trail-arena/internal/menu"
	"github.com/hajimehoshi/ebiten/v2"
)

// Blue steers with the arrow keys, yellow with WASD.
var defaultBindings = [2]menu.Bindings{
	{"ArrowUp", "ArrowDown", "ArrowLeft", "ArrowRight"},
	{"W", "S", "A", "D"},
}

// keySet is a player's bindings resolved to ebiten keys.
type keySet struct {
	keys  [4]ebiten.Key
	bound [4]bool
}

// resolveKeys parses key names as produced by ebiten.Key.String. Unknown
// names leave that control unbound and are reported together.
func resolveKeys(b menu.Bindings) (keySet, error) {
	var ks keySet
	var bad []string
	for i, name := range b {
		if name == "" {
			continue
		}
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(name)); err != nil {
			bad = append(bad, name)
			continue
		}
		ks.keys[i] = k
		ks.bound[i] = true
	}
	if len(bad) > 0 {
		return ks, fmt.Errorf("unknown key names %q", bad)
	}
	return ks, nil
}

func (ks keySet) held(c menu.Control) bool {
	return ks.bound[c] && ebiten.IsKeyPressed(ks.keys[c])
}

func (ks keySet) steering() arena.Steering {
	return arena.Steering{
		Up:    ks.held(menu.ControlUp),
		Down:  ks.held(menu.ControlDown),
		Left:  ks.held(menu.ControlLeft),
		Right: ks.held(menu.ControlRight),
	}
}
