package game

import (
	"image/color"
	"testing"
)

func TestFeed_RingKeepsNewest(t *testing.T) {
	f := NewFeed(3)
	for i := 1; i <= 5; i++ {
		f.Add(i, "--", color.RGBA{}, "event")
	}
	got := f.Recent()
	if len(got) != 3 || f.Len() != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []int{3, 4, 5} {
		if got[i].Tick != want {
			t.Fatalf("entry %d tick = %d, want %d", i, got[i].Tick, want)
		}
	}
	f.Reset()
	if len(f.Recent()) != 0 {
		t.Fatal("reset feed still has entries")
	}
	f.Add(9, "Blue Player", color.RGBA{B: 1}, "eaten")
	if r := f.Recent(); len(r) != 1 || r[0].Tick != 9 {
		t.Fatalf("after reset = %+v", r)
	}
}
