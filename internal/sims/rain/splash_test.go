package rain

import (
	"testing"

	pcore "rainscape/pkg/core"
)

func TestSplashSpawnStopsAtCapacity(t *testing.T) {
	var s Splashes
	rng := pcore.NewXorShift32(3)
	for i := 0; i < MaxSplashes; i++ {
		if !s.Spawn(10, 10, 0.5, SplashCrown, &rng) {
			t.Fatalf("spawn %d refused below capacity", i)
		}
	}
	if s.Spawn(10, 10, 0.5, SplashCrown, &rng) {
		t.Fatal("spawn past capacity must be refused")
	}
	if s.SpawnWithNormal(10, 10, 0.5, 0, -1, &rng) {
		t.Fatal("normal spawn past capacity must be refused")
	}
	if s.Len() != MaxSplashes {
		t.Fatalf("expected %d splashes, got %d", MaxSplashes, s.Len())
	}
	if s.Spawned() != MaxSplashes {
		t.Fatalf("spawn counter = %d, want %d", s.Spawned(), MaxSplashes)
	}
}

func TestSplashSpawnJitterAndDir(t *testing.T) {
	rng := pcore.NewXorShift32(42)
	for round := 0; round < 10; round++ {
		var s Splashes
		for i := 0; i < MaxSplashes; i++ {
			s.Spawn(50, 20, 0.3, SplashSpray, &rng)
		}
		for i := 0; i < s.Len(); i++ {
			if s.X[i] < 48 || s.X[i] > 52 {
				t.Fatalf("x jitter out of range: %v", s.X[i])
			}
			if s.Dir[i] < -2 || s.Dir[i] > 2 {
				t.Fatalf("dir out of range: %d", s.Dir[i])
			}
			if s.Frame[i] != 0 || s.Typ[i] != SplashSpray || s.Y[i] != 20 {
				t.Fatalf("unexpected splash state at %d", i)
			}
		}
	}
}

func TestSplashSpawnWithNormalFollowsTilt(t *testing.T) {
	rng := pcore.NewXorShift32(8)
	var s Splashes
	left := 0
	for i := 0; i < MaxSplashes; i++ {
		s.SpawnWithNormal(50, 20, 0.3, -1, 0, &rng)
	}
	for i := 0; i < s.Len(); i++ {
		if s.Dir[i] != -5 {
			t.Fatalf("steep left tilt must clamp dir to -5, got %d", s.Dir[i])
		}
		switch s.Typ[i] {
		case SplashRight:
			t.Fatal("left tilt produced a right burst")
		case SplashLeft:
			left++
		}
	}
	// dirProb is 0.9 for |nx| = 1.
	if left < MaxSplashes/2 {
		t.Fatalf("expected mostly left bursts, got %d of %d", left, MaxSplashes)
	}
}

func TestSplashSpawnWithFlatNormalIsCentred(t *testing.T) {
	rng := pcore.NewXorShift32(8)
	var s Splashes
	for i := 0; i < MaxSplashes; i++ {
		s.SpawnWithNormal(50, 20, 0.3, 0, -1, &rng)
	}
	for i := 0; i < s.Len(); i++ {
		if s.Dir[i] < -1 || s.Dir[i] > 1 {
			t.Fatalf("flat surface dir out of range: %d", s.Dir[i])
		}
		if s.Typ[i] == SplashLeft {
			t.Fatal("nx = 0 must pick the right burst when directional")
		}
	}
}

func TestSplashFrameAdvancesUntilRemoval(t *testing.T) {
	rng := pcore.NewXorShift32(1)
	var s Splashes
	s.Spawn(1, 1, 0.5, SplashCrown, &rng)

	for tick := 1; tick < SplashFrames; tick++ {
		s.Update()
		if s.Len() != 1 {
			t.Fatalf("splash removed early at tick %d", tick)
		}
		if int(s.Frame[0]) != tick {
			t.Fatalf("frame = %d at tick %d", s.Frame[0], tick)
		}
	}
	s.Update()
	if s.Len() != 0 {
		t.Fatal("splash must be removed when its frame reaches the lifetime")
	}
}

func TestSplashUpdatePreservesOrder(t *testing.T) {
	rng := pcore.NewXorShift32(1)
	var s Splashes
	s.Spawn(1, 1, 0.5, SplashCrown, &rng) // A
	for i := 0; i < 10; i++ {
		s.Update()
	}
	s.Spawn(2, 2, 0.5, SplashLeft, &rng)  // B
	s.Spawn(3, 3, 0.5, SplashRight, &rng) // C

	for i := 0; i < SplashFrames-10; i++ {
		s.Update()
	}

	if s.Len() != 2 {
		t.Fatalf("expected B and C to survive, got %d", s.Len())
	}
	if s.Typ[0] != SplashLeft || s.Typ[1] != SplashRight {
		t.Fatalf("order not preserved: %v, %v", s.Typ[0], s.Typ[1])
	}
	if s.Y[0] != 2 || s.Y[1] != 3 {
		t.Fatal("positions must travel with their splash")
	}
	want := uint8(SplashFrames - 10)
	if s.Frame[0] != want || s.Frame[1] != want {
		t.Fatalf("frames = %d,%d want %d", s.Frame[0], s.Frame[1], want)
	}
}

func TestSplashTypeString(t *testing.T) {
	cases := map[SplashType]string{
		SplashCrown:    "crown",
		SplashLeft:     "left-burst",
		SplashRight:    "right-burst",
		SplashSpray:    "spray",
		SplashType(99): "unknown",
	}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Fatalf("%d.String() = %q, want %q", typ, got, want)
		}
	}
}
