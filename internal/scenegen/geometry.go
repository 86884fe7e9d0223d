package scenegen

import "math"

// nonGround lists segmentation classes water cannot rest on.
var nonGround = map[uint8]bool{
	2:  true, // sky
	4:  true, // tree
	17: true, // plant
	72: true, // palm
}

func groundMask(class, ground []uint8) {
	for i, c := range class {
		if nonGround[c] {
			ground[i] = 0
			continue
		}
		ground[i] = 1
	}
}

// normals derives surface tilt from depth with central differences.
func normals(depth []float32, w, h int, scale float32, nx, ny []int8) {
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			dzdx := (depth[y*w+x+1] - depth[y*w+x-1]) * scale
			dzdy := (depth[(y+1)*w+x] - depth[(y-1)*w+x]) * scale
			l := float32(math.Sqrt(float64(dzdx*dzdx + dzdy*dzdy + 1)))
			nx[y*w+x] = toI8(-dzdx / l * 127)
			ny[y*w+x] = toI8(-dzdy / l * 127)
		}
	}
	fillEdges(nx, w, h)
	fillEdges(ny, w, h)
}

var flowScales = [...]struct {
	offset int
	weight float32
}{
	{2, 0.25},
	{5, 0.40},
	{10, 0.35},
}

const (
	flowMargin      = 10
	flowHorizBoost  = 2.5
	flowGravityBias = 0.02
)

// flowField points water down the depth gradient on ground cells. Flat
// ground falls back to pure gravity.
func flowField(depth []float32, ground []uint8, w, h int, fx, fy []int8) {
	for y := flowMargin; y < h-flowMargin; y++ {
		for x := flowMargin; x < w-flowMargin; x++ {
			if ground[y*w+x] == 0 {
				continue
			}
			var gx, gy float32
			for _, s := range flowScales {
				o := s.offset
				dx := depth[y*w+x+o] - depth[y*w+x-o]
				dy := depth[(y+o)*w+x] - depth[(y-o)*w+x]
				gx += dx * s.weight * flowHorizBoost
				gy += dy * s.weight
			}
			gy += flowGravityBias

			l := float32(math.Sqrt(float64(gx*gx + gy*gy)))
			if l <= 0.001 {
				fy[y*w+x] = 51
				continue
			}
			strength := float32(math.Min(float64(l*8+0.4), 1))
			fx[y*w+x] = toI8(gx / l * strength * 127)
			fy[y*w+x] = toI8(gy / l * strength * 127)
		}
	}
}

// ambientOcclusion darkens cells surrounded by nearer geometry.
func ambientOcclusion(depth []float32, w, h, radius int, ao []uint8) {
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := depth[y*w+x]
			var occlusion float32
			samples := 0
			for dy := -radius; dy <= radius; dy++ {
				for dx := -radius; dx <= radius; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					sx := clampInt(x+dx, 0, w-1)
					sy := clampInt(y+dy, 0, h-1)
					sample := depth[sy*w+sx]
					if sample > center {
						diff := float32(math.Min(float64(sample-center), 0.15))
						dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
						occlusion += diff / (1 + dist*0.5)
					}
					samples++
				}
			}
			factor := 1 - float32(math.Min(float64(occlusion/float32(samples)*8), 0.7))
			ao[y*w+x] = uint8(factor * 255)
		}
	}
}

func fillEdges(v []int8, w, h int) {
	if w < 2 || h < 2 {
		return
	}
	for y := 0; y < h; y++ {
		v[y*w] = v[y*w+1]
		v[y*w+w-1] = v[y*w+w-2]
	}
	for x := 0; x < w; x++ {
		v[x] = v[w+x]
		v[(h-1)*w+x] = v[(h-2)*w+x]
	}
}

func toI8(v float32) int8 {
	if v > 127 {
		return 127
	}
	if v < -127 {
		return -127
	}
	return int8(v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
