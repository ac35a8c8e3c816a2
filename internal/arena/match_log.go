package arena

import (
	"fmt"
	"strings"
)

// Log categories and keys written by Match.
const (
	CatPickup    = "pickup"
	CatCollision = "collision"
	CatLength    = "length"
	CatMatch     = "match"

	KeySpawn    = "spawn"
	KeyEaten    = "eaten"
	KeyNoSpace  = "no_space"
	KeyForeign  = "foreign"
	KeySelf     = "self"
	KeyMarker   = "marker"
	KeyStarved  = "starved"
	KeyStart    = "start"
	KeyFinished = "finished"
)

// MatchLogEntry is one recorded match event.
type MatchLogEntry struct {
	Tick     int
	Player   string  // trail name, or "--" for match-wide events
	Category string  // pickup, collision, length, match
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=0042] Blue Player    pickup    eaten        (512,300) score 3
func (e MatchLogEntry) String() string {
	return fmt.Sprintf("[T=%04d] %-14s %-9s %-12s %s",
		e.Tick, e.Player, e.Category, e.Key, e.Value)
}

// MatchLog collects structured events for a single match. It is unbounded;
// front ends read new entries with Since.
type MatchLog struct {
	entries []MatchLogEntry
}

func NewMatchLog() *MatchLog {
	return &MatchLog{}
}

// Add records a new entry.
func (ml *MatchLog) Add(tick int, player, category, key, value string, numVal float64) {
	ml.entries = append(ml.entries, MatchLogEntry{
		Tick:     tick,
		Player:   player,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// Entries returns all recorded entries.
func (ml *MatchLog) Entries() []MatchLogEntry {
	return ml.entries
}

// Len is the number of recorded entries.
func (ml *MatchLog) Len() int { return len(ml.entries) }

// Since returns the entries recorded after the first n.
func (ml *MatchLog) Since(n int) []MatchLogEntry {
	if n < 0 {
		n = 0
	}
	if n >= len(ml.entries) {
		return nil
	}
	return ml.entries[n:]
}

// Filter returns entries matching the given category and/or key.
// Pass empty string to match any value for that field.
func (ml *MatchLog) Filter(category, key string) []MatchLogEntry {
	var out []MatchLogEntry
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		out = append(out, e)
	}
	return out
}

// CountCategory returns how many entries match the given category and key.
func (ml *MatchLog) CountCategory(category, key string) int {
	return len(ml.Filter(category, key))
}

// LastOf returns the most recent entry matching category+key, or false if none.
func (ml *MatchLog) LastOf(category, key string) (MatchLogEntry, bool) {
	for i := len(ml.entries) - 1; i >= 0; i-- {
		e := ml.entries[i]
		if (category == "" || e.Category == category) && (key == "" || e.Key == key) {
			return e, true
		}
	}
	return MatchLogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and value substring.
func (ml *MatchLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range ml.entries {
		if category != "" && e.Category != category {
			continue
		}
		if key != "" && e.Key != key {
			continue
		}
		if valueSubstr != "" && !strings.Contains(e.Value, valueSubstr) {
			continue
		}
		return true
	}
	return false
}

// Format returns the full log as a single string for t.Log output.
func (ml *MatchLog) Format() string {
	var sb strings.Builder
	for _, e := range ml.entries {
		sb.WriteString(e.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
