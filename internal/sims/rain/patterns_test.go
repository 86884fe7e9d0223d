package rain

import "testing"

func TestPatternTableShape(t *testing.T) {
	for typ := SplashCrown; typ < splashTypeCount; typ++ {
		for step := 0; step < SplashSteps; step++ {
			marks := Pattern(typ, step)
			if len(marks) == 0 {
				t.Fatalf("%v step %d has no marks", typ, step)
			}
			for _, m := range marks {
				if m.Glyph >= GlyphCount {
					t.Fatalf("%v step %d uses glyph %d", typ, step, m.Glyph)
				}
				if m.DY > 0 {
					t.Fatalf("%v step %d draws below the impact row", typ, step)
				}
				if m.DirMul < 0 || m.DirMul > 2 {
					t.Fatalf("%v step %d has drift multiplier %d", typ, step, m.DirMul)
				}
			}
		}
	}
}

func TestPatternFirstStepIsCentreDot(t *testing.T) {
	for typ := SplashCrown; typ < splashTypeCount; typ++ {
		marks := Pattern(typ, 0)
		if len(marks) != 1 || marks[0] != (Mark{0, 0, 0, GlyphDot}) {
			t.Fatalf("%v step 0 = %+v, want a single centred dot", typ, marks)
		}
	}
}

func TestPatternLastStepSettles(t *testing.T) {
	for typ := SplashCrown; typ < splashTypeCount; typ++ {
		for _, m := range Pattern(typ, SplashSteps-1) {
			if m.Glyph != GlyphSettle || m.DY != 0 {
				t.Fatalf("%v final step mark %+v must settle on the impact row", typ, m)
			}
		}
	}
}

func TestPatternDirectionalBursts(t *testing.T) {
	for step := 1; step < SplashSteps; step++ {
		for _, m := range Pattern(SplashLeft, step) {
			if m.DX > 0 {
				t.Fatalf("left burst step %d reaches right: %+v", step, m)
			}
		}
		for _, m := range Pattern(SplashRight, step) {
			if m.DX < 0 {
				t.Fatalf("right burst step %d reaches left: %+v", step, m)
			}
		}
	}
}

func TestPatternLookupClamps(t *testing.T) {
	if got, want := Pattern(SplashType(9), 0), Pattern(SplashSpray, 0); &got[0] != &want[0] {
		t.Fatal("unknown type must draw as spray")
	}
	if got, want := Pattern(SplashCrown, 40), Pattern(SplashCrown, SplashSteps-1); &got[0] != &want[0] {
		t.Fatal("steps past the end must hold the last step")
	}
	if got, want := Pattern(SplashCrown, -1), Pattern(SplashCrown, 0); &got[0] != &want[0] {
		t.Fatal("negative steps must clamp to the first step")
	}
}

func TestSplashScale(t *testing.T) {
	cases := []struct {
		z    float32
		want int
	}{
		{0, 3},
		{0.2, 2},
		{0.6, 1},
		{0.9, 0},
		{1, 0},
	}
	for _, tc := range cases {
		if got := SplashScale(tc.z); got != tc.want {
			t.Fatalf("SplashScale(%v) = %d, want %d", tc.z, got, tc.want)
		}
	}
}

func TestEachMarkScalesAndShifts(t *testing.T) {
	type px struct {
		x, y int
		g    Glyph
	}
	var got []px
	// Crown step 1 at scale 2 with a drift of +1.
	EachMark(SplashCrown, 3, 0.2, 1, 10, 20, func(x, y int, g Glyph) {
		got = append(got, px{x, y, g})
	})
	want := []px{
		{10 - 2 + 1, 20, GlyphLeftArm},
		{10, 20, GlyphDot},
		{10 + 2 + 1, 20, GlyphRightArm},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d marks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("mark %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestEachMarkTinySequence(t *testing.T) {
	for frame := 0; frame < SplashFrames; frame++ {
		calls := 0
		var glyph Glyph
		EachMark(SplashRight, uint8(frame), 0.95, 3, 4, 5, func(x, y int, g Glyph) {
			calls++
			glyph = g
			if x != 4 || y != 5 {
				t.Fatalf("tiny splash drawn at (%d,%d)", x, y)
			}
		})
		if calls != 1 {
			t.Fatalf("frame %d: tiny splash drew %d marks", frame, calls)
		}
		step := frame / FramesPerStep
		want := GlyphSettle
		switch {
		case step < 3:
			want = GlyphDot
		case step < 6:
			want = GlyphFleck
		}
		if glyph != want {
			t.Fatalf("frame %d: glyph %d, want %d", frame, glyph, want)
		}
	}
}
