package rain

import (
	"slices"
	"testing"

	pcore "rainscape/pkg/core"
)

func TestDepthBucketNearIsBright(t *testing.T) {
	cases := []struct {
		z    float32
		want int
	}{
		{0, 7},
		{0.1, 7},
		{0.5, 4},
		{0.999, 0},
		{1, 0},
		{-0.5, 7},
		{2, 0},
	}
	for _, tc := range cases {
		if got := DepthBucket(tc.z); got != tc.want {
			t.Fatalf("DepthBucket(%v) = %d, want %d", tc.z, got, tc.want)
		}
	}
}

func TestDecodeRanges(t *testing.T) {
	cases := []struct {
		code uint8
		want Code
	}{
		{0, Code{Kind: KindEmpty}},
		{1, Code{Kind: KindDroplet, Bucket: 0, Sub: 0}},
		{29, Code{Kind: KindDroplet, Bucket: 7, Sub: 0}},
		{32, Code{Kind: KindDroplet, Bucket: 7, Sub: 3}},
		{33, Code{Kind: KindSplash, Bucket: 0, Sub: 0}},
		{89, Code{Kind: KindSplash, Bucket: 7, Sub: 0}},
		{96, Code{Kind: KindSplash, Bucket: 7, Sub: 7}},
		{97, Code{Kind: KindStream, Bucket: 0, Sub: 0}},
		{128, Code{Kind: KindStream, Bucket: 7, Sub: 3}},
		{129, Code{Kind: KindEmpty}},
		{255, Code{Kind: KindEmpty}},
	}
	for _, tc := range cases {
		if got := Decode(tc.code); got != tc.want {
			t.Fatalf("Decode(%d) = %+v, want %+v", tc.code, got, tc.want)
		}
	}
}

func TestEncodeDropletTrail(t *testing.T) {
	const w, h = 16, 16
	enc := NewEncoder(w, h)
	var d Droplets
	d.Add(5, 10, 0, 1) // nearest: five-pixel trail
	d.Add(9, 10, 1, 1) // farthest: head only

	enc.EncodeDroplets(&d)
	out := enc.Cells()

	want := map[int]uint8{10: 29, 9: 30, 8: 31, 7: 32, 6: 32, 5: 0}
	for y, code := range want {
		if got := out[y*w+5]; got != code {
			t.Fatalf("near trail at y=%d = %d, want %d", y, got, code)
		}
	}
	if out[10*w+9] != 1 {
		t.Fatalf("far head = %d, want 1", out[10*w+9])
	}
	if out[9*w+9] != 0 {
		t.Fatal("far droplet must not leave a trail")
	}
}

func TestEncodeSkipsOffscreen(t *testing.T) {
	const w, h = 8, 8
	enc := NewEncoder(w, h)
	var d Droplets
	d.Add(-3, 4, 0, 1)
	d.Add(20, 4, 0, 1)
	d.Add(3, -2, 0, 1)
	d.Add(3, 10, 0, 1) // head below the screen, upper trail visible

	var s Streams
	s.add(-1, 2, 0, 100)
	s.add(2, 9, 0, 100)

	enc.EncodeDroplets(&d)
	enc.EncodeStreams(&s)
	out := enc.Cells()

	for i, v := range out {
		x, y := i%w, i/w
		if x == 3 && (y == 6 || y == 7) {
			continue
		}
		if v != 0 {
			t.Fatalf("unexpected code %d at (%d,%d)", v, x, y)
		}
	}
	if out[7*w+3] != 32 || out[6*w+3] != 32 {
		t.Fatalf("visible trail rows = %d,%d", out[7*w+3], out[6*w+3])
	}
}

func TestEncodeMaxWins(t *testing.T) {
	const w, h = 16, 16
	var (
		d  Droplets
		sp Splashes
		st Streams
	)
	d.Add(5, 5, 1, 1)
	d.Add(5, 5, 0, 1)
	sp.add(5, 5, 0, 0, SplashCrown) // frame 0 marks only the centre
	st.add(5, 5, 1, 5)

	forward := NewEncoder(w, h)
	forward.EncodeDroplets(&d)
	forward.EncodeSplashes(&sp)
	forward.EncodeStreams(&st)

	reverse := NewEncoder(w, h)
	reverse.EncodeStreams(&st)
	reverse.EncodeSplashes(&sp)
	reverse.EncodeDroplets(&d)

	if got := forward.Cells()[5*w+5]; got != StreamBase {
		t.Fatalf("stream must win the cell, got %d", got)
	}
	if !slices.Equal(forward.Cells(), reverse.Cells()) {
		t.Fatal("encoding must not depend on write order")
	}

	only := NewEncoder(w, h)
	only.EncodeDroplets(&d)
	only.EncodeSplashes(&sp)
	if got := only.Cells()[5*w+5]; got != SplashBase+7*8 {
		t.Fatalf("near splash dot = %d, want %d", got, SplashBase+7*8)
	}
}

func TestEncodeStreamSizeClasses(t *testing.T) {
	const w, h = 8, 1
	var s Streams
	s.add(0, 0, 0, 120)
	s.add(1, 0, 0, 81)
	s.add(2, 0, 0, 80)
	s.add(3, 0, 0, 41)
	s.add(4, 0, 0, 40)
	s.add(5, 0, 0, 11)
	s.add(6, 0, 0, 10)
	s.add(7, 0, 1, 1)

	enc := NewEncoder(w, h)
	enc.EncodeStreams(&s)

	want := []uint8{128, 128, 127, 127, 126, 126, 125, 97}
	if !slices.Equal(enc.Cells(), want) {
		t.Fatalf("stream codes = %v, want %v", enc.Cells(), want)
	}
}

func TestEncodeIsIdempotent(t *testing.T) {
	r := uniformScene(48, 32, 200, 0, 64)
	w := NewWithConfig(testConfig(48, 32), r)
	for i := 0; i < 200; i++ {
		w.Tick()
	}
	ticked := slices.Clone(w.Output())

	w.Encode()
	first := slices.Clone(w.Output())
	w.Encode()

	if !slices.Equal(first, w.Output()) {
		t.Fatal("re-encoding the same state must give the same bytes")
	}
	if !slices.Equal(ticked, first) {
		t.Fatal("Encode must reproduce the tick's output")
	}
}

func TestEncodeSplashesStayInRange(t *testing.T) {
	rng := pcore.NewXorShift32(77)
	var sp Splashes
	for typ := SplashCrown; typ < splashTypeCount; typ++ {
		for i := 0; i < 40; i++ {
			sp.Spawn(rng.Float32()*32, rng.Float32()*32, rng.Float32(), typ, &rng)
		}
	}
	enc := NewEncoder(32, 32)
	for f := 0; f < SplashFrames; f++ {
		enc.Clear()
		enc.EncodeSplashes(&sp)
		for _, v := range enc.Cells() {
			if v != 0 && (v < SplashBase || v >= StreamBase) {
				t.Fatalf("splash wrote code %d outside its range", v)
			}
		}
		sp.Update()
	}
}
