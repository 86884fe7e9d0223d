package core

import "testing"

func TestXorShift32KnownSequence(t *testing.T) {
	r := NewXorShift32(1)
	want := []uint32{270369, 67634689, 2647435461}
	for i, w := range want {
		if got := r.Next(); got != w {
			t.Fatalf("draw %d: got %d, want %d", i, got, w)
		}
	}
}

func TestXorShift32ZeroSeedIsReplaced(t *testing.T) {
	r := NewXorShift32(0)
	if r.State() == 0 {
		t.Fatal("zero seed must not leave the register at zero")
	}
	if r.Next() == 0 {
		t.Fatal("generator stuck at zero")
	}
}

func TestXorShift32CopyReplaysSequence(t *testing.T) {
	a := NewXorShift32(DefaultSeed)
	a.Next()
	b := a
	for i := 0; i < 64; i++ {
		if x, y := a.Float32(), b.Float32(); x != y {
			t.Fatalf("draw %d diverged: %f vs %f", i, x, y)
		}
	}
}

func TestXorShift32FloatRange(t *testing.T) {
	r := NewXorShift32(DefaultSeed)
	for i := 0; i < 10000; i++ {
		v := r.Float32()
		if v < 0 || v >= 1 {
			t.Fatalf("draw %d out of range: %f", i, v)
		}
		if w := r.Range(-1, 1); w < -1 || w >= 1 {
			t.Fatalf("range draw %d out of range: %f", i, w)
		}
	}
}
