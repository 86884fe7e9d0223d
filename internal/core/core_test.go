package core

import (
	"slices"
	"testing"
	"time"
)

func TestByteGridMaxKeepsLargest(t *testing.T) {
	g := NewByteGrid(3, 2)
	g.Max(1, 1, 40)
	g.Max(1, 1, 12)
	g.Max(1, 1, 97)
	if got := g.At(1, 1); got != 97 {
		t.Fatalf("At(1,1) = %d, want 97", got)
	}

	g.Max(-1, 0, 9)
	g.Max(3, 0, 9)
	g.Max(0, 2, 9)
	for i, v := range g.Cells() {
		if i != g.Index(1, 1) && v != 0 {
			t.Fatalf("cell %d = %d after out of bounds writes", i, v)
		}
	}
}

func TestByteGridResize(t *testing.T) {
	g := NewByteGrid(-4, 5)
	if len(g.Cells()) != 0 {
		t.Fatalf("negative width allocated %d cells", len(g.Cells()))
	}

	g.Resize(4, 3)
	if g.W != 4 || g.H != 3 || len(g.Cells()) != 12 {
		t.Fatalf("resize gave %dx%d with %d cells", g.W, g.H, len(g.Cells()))
	}
	g.Max(2, 2, 5)
	g.Resize(4, 3)
	if g.At(2, 2) != 0 {
		t.Fatal("same-size resize did not clear the grid")
	}
	if g.At(9, 9) != 0 {
		t.Fatal("At outside the grid should be 0")
	}
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStep(tps int) (*FixedStep, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	f := NewFixedStep(tps)
	f.now = clock.now
	return f, clock
}

func TestFixedStepFirstCallTicks(t *testing.T) {
	f, clock := newTestStep(0)
	if f.Step() != time.Second/60 {
		t.Fatalf("default step = %v, want 1/60s", f.Step())
	}
	if !f.ShouldStep() {
		t.Fatal("a new timer should tick immediately")
	}
	if f.ShouldStep() {
		t.Fatal("no time passed but a second tick was due")
	}
	clock.advance(f.Step())
	if !f.ShouldStep() {
		t.Fatal("one step elapsed but no tick was due")
	}
}

func TestFixedStepDueCapsBacklog(t *testing.T) {
	f, clock := newTestStep(100)
	if n := f.Due(4); n != 1 {
		t.Fatalf("first Due = %d, want 1", n)
	}
	clock.advance(25 * time.Millisecond)
	if n := f.Due(4); n != 2 {
		t.Fatalf("Due after 2.5 steps = %d, want 2", n)
	}
	clock.advance(5 * time.Millisecond)
	if n := f.Due(4); n != 1 {
		t.Fatalf("leftover half step was lost: Due = %d, want 1", n)
	}

	clock.advance(time.Second)
	if n := f.Due(4); n != 4 {
		t.Fatalf("Due after a stall = %d, want the cap 4", n)
	}
	if n := f.Due(4); n != 0 {
		t.Fatalf("backlog past the cap was kept: Due = %d", n)
	}
}

func TestFixedStepRestartDropsPausedTime(t *testing.T) {
	f, clock := newTestStep(10)
	f.Due(0)
	clock.advance(time.Minute)
	f.Restart()
	if n := f.Due(0); n != 1 {
		t.Fatalf("Due after Restart = %d, want 1", n)
	}
	clock.advance(50 * time.Millisecond)
	if n := f.Due(0); n != 0 {
		t.Fatalf("half a step after Restart gave %d ticks", n)
	}
}

type fakeSim struct{ name string }

func (f fakeSim) Name() string { return f.name }
func (fakeSim) Size() Size     { return Size{} }
func (fakeSim) Reset(int64)    {}
func (fakeSim) Step()          {}
func (fakeSim) Cells() []uint8 { return nil }

func TestRegisterIgnoresIncompleteEntries(t *testing.T) {
	Register("zz-test", func(map[string]string) Sim { return fakeSim{name: "zz-test"} })
	Register("", func(map[string]string) Sim { return fakeSim{} })
	Register("zz-nil", nil)

	names := Names()
	if !slices.Contains(names, "zz-test") {
		t.Fatalf("Names() = %v, missing zz-test", names)
	}
	if slices.Contains(names, "") || slices.Contains(names, "zz-nil") {
		t.Fatalf("Names() = %v, registered an incomplete entry", names)
	}
	if !slices.IsSorted(names) {
		t.Fatalf("Names() = %v, not sorted", names)
	}
	if got := Sims()["zz-test"](nil).Name(); got != "zz-test" {
		t.Fatalf("factory built %q", got)
	}
}

func TestParameterSnapshotValues(t *testing.T) {
	s := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "a", Params: []Parameter{IntParam("n", "N", 12)}},
		{Name: "b", Params: []Parameter{FloatParam("f", "F", 0.25)}},
	}}
	values := s.Values()
	if values["n"] != "12" || values["f"] != "0.25" || len(values) != 2 {
		t.Fatalf("Values() = %v", values)
	}
}

func TestParameterControlClamp(t *testing.T) {
	c := IntControl("k", "K", 2, 1, 10)
	if c.Step != 2 || c.Type != ParamTypeInt {
		t.Fatalf("IntControl built %+v", c)
	}
	for _, tc := range []struct{ in, want float64 }{{-3, 1}, {5, 5}, {11, 10}} {
		if got := c.Clamp(tc.in); got != tc.want {
			t.Fatalf("Clamp(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
	open := ParameterControl{Type: ParamTypeFloat}
	if got := open.Clamp(-40); got != -40 {
		t.Fatalf("unbounded Clamp(-40) = %v", got)
	}
}
