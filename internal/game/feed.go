package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	feedCapacity   = 32
	feedVisible    = 6
	feedLineHeight = 16
	feedWidth      = 340
)

// FeedEntry is a single line in the event feed.
type FeedEntry struct {
	Tick    int
	Label   string // trail name or "--"
	Color   color.RGBA
	Message string
}

// Feed is a ring buffer of recent match events drawn in the corner.
type Feed struct {
	entries []FeedEntry
	head    int
	count   int
}

// NewFeed creates a feed holding up to capacity entries.
func NewFeed(capacity int) *Feed {
	return &Feed{entries: make([]FeedEntry, capacity)}
}

// Add appends an entry, overwriting the oldest once full.
func (f *Feed) Add(tick int, label string, c color.RGBA, msg string) {
	f.entries[f.head] = FeedEntry{Tick: tick, Label: label, Color: c, Message: msg}
	f.head = (f.head + 1) % len(f.entries)
	if f.count < len(f.entries) {
		f.count++
	}
}

func (f *Feed) Reset() {
	f.head, f.count = 0, 0
}

func (f *Feed) Len() int { return f.count }

// Recent returns entries in chronological order (oldest first).
func (f *Feed) Recent() []FeedEntry {
	n := len(f.entries)
	result := make([]FeedEntry, f.count)
	for i := 0; i < f.count; i++ {
		result[i] = f.entries[(f.head-f.count+i+n)%n]
	}
	return result
}

// Draw renders the newest limit entries at (x, y), newest at the bottom.
func (f *Feed) Draw(screen *ebiten.Image, x, y, limit int) {
	entries := f.Recent()
	if len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}
	if len(entries) == 0 {
		return
	}
	h := len(entries)*feedLineHeight + 4
	vector.FillRect(screen, float32(x), float32(y), feedWidth, float32(h), color.RGBA{R: 10, G: 10, B: 10, A: 170}, false)
	for i, e := range entries {
		ly := y + 2 + i*feedLineHeight
		// Colour swatch for the trail the event belongs to.
		vector.FillRect(screen, float32(x+4), float32(ly+4), 4, 8, e.Color, false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d %s", e.Tick, e.Message), x+12, ly)
	}
}
