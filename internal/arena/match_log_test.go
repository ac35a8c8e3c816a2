package arena

import (
	"strings"
	"testing"
)

func TestMatchLog_FilterAndSince(t *testing.T) {
	ml := NewMatchLog()
	ml.Add(0, "--", CatMatch, KeyStart, "mode=standard", 0)
	ml.Add(3, "--", CatPickup, KeySpawn, "(10,10)", 1)
	ml.Add(9, "Blue Player", CatPickup, KeyEaten, "(10,10) score 1", 1)
	ml.Add(9, "--", CatPickup, KeySpawn, "(50,20)", 1)

	if n := ml.CountCategory(CatPickup, ""); n != 3 {
		t.Fatalf("pickup entries = %d, want 3", n)
	}
	if n := ml.CountCategory("", KeySpawn); n != 2 {
		t.Fatalf("spawn entries = %d, want 2", n)
	}
	last, ok := ml.LastOf(CatPickup, KeySpawn)
	if !ok || last.Value != "(50,20)" {
		t.Fatalf("LastOf = %+v, %v", last, ok)
	}
	if _, ok := ml.LastOf(CatLength, KeyStarved); ok {
		t.Fatal("LastOf found a missing entry")
	}
	if got := ml.Since(2); len(got) != 2 || got[0].Key != KeyEaten {
		t.Fatalf("Since(2) = %+v", got)
	}
	if got := ml.Since(4); got != nil {
		t.Fatalf("Since(len) = %+v, want nil", got)
	}
	if !ml.HasEntry(CatPickup, KeyEaten, "score 1") || ml.HasEntry(CatPickup, KeyEaten, "score 2") {
		t.Fatal("HasEntry substring match wrong")
	}
	out := ml.Format()
	if strings.Count(out, "\n") != 4 || !strings.Contains(out, "[T=0009] Blue Player") {
		t.Fatalf("Format:\n%s", out)
	}
}
