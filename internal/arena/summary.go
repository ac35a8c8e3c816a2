package arena

import (
	"fmt"
	"strings"
)

// Summary renders a plain-text report of a match: setup, result, scores and
// the last lastEvents log lines. It is what the front ends copy to the
// clipboard.
func Summary(m *Match, lastEvents int) string {
	if m == nil {
		return ""
	}
	if lastEvents <= 0 {
		lastEvents = 20
	}
	cfg := m.Config()
	r := DetermineOutcome(m)

	var b strings.Builder
	fmt.Fprintf(&b, "--- trail-arena match summary ---\n")
	fmt.Fprintf(&b, "mode=%s speed=%s board=%dx%d tick=%d phase=%s\n",
		cfg.Mode, cfg.Speed, cfg.Width, cfg.Height, m.Tick(), m.Phase())
	fmt.Fprintf(&b, "result=%s reason=%s\n\n", r.Outcome, r.Description)

	for i := 0; i < 2; i++ {
		t := m.Trail(i)
		length := fmt.Sprintf("%.1f", t.TargetLength())
		if t.Infinite() {
			length = "inf"
		}
		fmt.Fprintf(&b, "%-14s score=%d segments=%d target=%s speed=%.2f steering=%s",
			t.Name(), r.Scores[i], r.Lengths[i], length, t.Speed(), t.Steering())
		if r.Collided[i] {
			fmt.Fprintf(&b, " hit=%s", r.HitColors[i])
		}
		b.WriteByte('\n')
	}

	pickups := m.Log().CountCategory(CatPickup, KeyEaten)
	fmt.Fprintf(&b, "\npickups eaten=%d on board=%d\n", pickups, len(m.pickups))

	entries := m.Log().Entries()
	if len(entries) > lastEvents {
		entries = entries[len(entries)-lastEvents:]
	}
	if len(entries) > 0 {
		b.WriteString("events:\n")
		for _, e := range entries {
			b.WriteString("  ")
			b.WriteString(e.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}
