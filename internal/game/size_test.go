package game

import "testing"

func TestParseSize(t *testing.T) {
	good := map[string][2]int{
		"1000x900":   {1000, 900},
		" 640X480 ":  {640, 480},
		"1920x1080":  {1920, 1080},
	}
	for in, want := range good {
		w, h, err := ParseSize(in)
		if err != nil || w != want[0] || h != want[1] {
			t.Errorf("ParseSize(%q) = %d, %d, %v; want %v", in, w, h, err, want)
		}
	}
	for _, in := range []string{"", "1000", "1000x", "x900", "axb", "100x100", "1000x-900", "10x10x10"} {
		if _, _, err := ParseSize(in); err == nil {
			t.Errorf("ParseSize(%q) accepted", in)
		}
	}
}

func TestResolveKeys(t *testing.T) {
	ks, err := resolveKeys(defaultBindings[1])
	if err != nil {
		t.Fatal(err)
	}
	for i, b := range ks.bound {
		if !b {
			t.Fatalf("control %d unbound", i)
		}
	}
	if ks.keys[0].String() != "W" {
		t.Fatalf("up = %s, want W", ks.keys[0])
	}
	ks, err = resolveKeys([4]string{"ArrowUp", "NoSuchKey", "", "D"})
	if err == nil {
		t.Fatal("unknown key name accepted")
	}
	if !ks.bound[0] || ks.bound[1] || ks.bound[2] || !ks.bound[3] {
		t.Fatalf("bound = %v", ks.bound)
	}
}

func TestArenaConfigMarkerAboveScoreBand(t *testing.T) {
	cfg := arenaConfig(1000, 900)
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.MarkerBand.Min.Y != 810 || cfg.MarkerBand.Dy() != 10 || cfg.MarkerBand.Dx() != 1000 {
		t.Fatalf("marker band = %v", cfg.MarkerBand)
	}
}
