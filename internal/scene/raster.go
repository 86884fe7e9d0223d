// Package scene holds the pre-baked raster bundle a rain world collides
// against, plus the pure queries the simulation runs over it.
package scene

import (
	"errors"
	"fmt"
)

// Raster bundle errors.
var (
	ErrEmptyRaster = errors.New("raster has no cells")
	ErrLayerSize   = errors.New("raster layer size mismatch")
)

const (
	// SkyCutoff is the raw depth at or below which a cell counts as sky.
	SkyCutoff uint8 = 30
	// FlowThreshold is the raw flow magnitude a component must exceed for a
	// cell to count as flowing.
	FlowThreshold int8 = 10
)

// Raster stores every scene layer in row-major order, one element per cell.
// Depth is 0 for far and 255 for near. Normals and flow are signed and
// normalised to ±127. Pixels, AO and Class are carried for renderers and are
// never read by the simulation.
type Raster struct {
	W, H int

	Pixels  []uint8
	Depth   []uint8
	NormalX []int8
	NormalY []int8
	FlowX   []int8
	FlowY   []int8
	AO      []uint8
	Class   []uint8
	Ground  []uint8
}

// New allocates a zeroed bundle. Non-positive dimensions produce an empty
// bundle whose queries all return neutral values.
func New(w, h int) *Raster {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	n := w * h
	return &Raster{
		W:       w,
		H:       h,
		Pixels:  make([]uint8, n),
		Depth:   make([]uint8, n),
		NormalX: make([]int8, n),
		NormalY: make([]int8, n),
		FlowX:   make([]int8, n),
		FlowY:   make([]int8, n),
		AO:      make([]uint8, n),
		Class:   make([]uint8, n),
		Ground:  make([]uint8, n),
	}
}

// Validate checks that every layer covers exactly W*H cells.
func (r *Raster) Validate() error {
	if r == nil || r.W <= 0 || r.H <= 0 {
		return ErrEmptyRaster
	}
	n := r.W * r.H
	layers := []struct {
		name string
		size int
	}{
		{"pixels", len(r.Pixels)},
		{"depth", len(r.Depth)},
		{"normal_x", len(r.NormalX)},
		{"normal_y", len(r.NormalY)},
		{"flow_x", len(r.FlowX)},
		{"flow_y", len(r.FlowY)},
		{"ao", len(r.AO)},
		{"class", len(r.Class)},
		{"ground", len(r.Ground)},
	}
	for _, l := range layers {
		if l.size != n {
			return fmt.Errorf("%w: %s has %d cells, want %d", ErrLayerSize, l.name, l.size, n)
		}
	}
	return nil
}

// Index returns the linear index for (x, y) and whether it is in bounds.
func (r *Raster) Index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= r.W || y >= r.H {
		return 0, false
	}
	return y*r.W + x, true
}

// FillDepth sets every depth cell to v.
func (r *Raster) FillDepth(v uint8) {
	for i := range r.Depth {
		r.Depth[i] = v
	}
}

// FillGround sets every ground cell.
func (r *Raster) FillGround(ground bool) {
	var v uint8
	if ground {
		v = 1
	}
	for i := range r.Ground {
		r.Ground[i] = v
	}
}

// FillFlow sets every flow cell to (fx, fy).
func (r *Raster) FillFlow(fx, fy int8) {
	for i := range r.FlowX {
		r.FlowX[i] = fx
		r.FlowY[i] = fy
	}
}

// FillNormal sets every normal cell to (nx, ny).
func (r *Raster) FillNormal(nx, ny int8) {
	for i := range r.NormalX {
		r.NormalX[i] = nx
		r.NormalY[i] = ny
	}
}
