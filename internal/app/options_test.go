package app

import "testing"

func TestOptionsDefaults(t *testing.T) {
	o := Options{Scale: -2, HUDWidth: -10}.withDefaults()
	if o.Scale != 1 {
		t.Fatalf("scale = %d", o.Scale)
	}
	if o.HUDWidth != 0 {
		t.Fatalf("hud width = %d", o.HUDWidth)
	}
	if o.Log == nil {
		t.Fatal("logger must default to a no-op")
	}

	kept := Options{Scale: 3, HUDWidth: 260, Seed: 9}.withDefaults()
	if kept.Scale != 3 || kept.HUDWidth != 260 || kept.Seed != 9 {
		t.Fatalf("explicit options changed: %+v", kept)
	}
}
