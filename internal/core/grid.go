package core

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order.
// A grid may be empty; zero-sized grids hold no cells.
type ByteGrid struct {
	W, H int
	data []uint8
}

// NewByteGrid allocates a grid with the given dimensions. Negative
// dimensions are treated as zero.
func NewByteGrid(w, h int) *ByteGrid {
	g := &ByteGrid{}
	g.Resize(w, h)
	return g
}

// Resize reallocates the grid when the dimensions change and clears it.
func (g *ByteGrid) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if w*h != len(g.data) {
		g.data = make([]uint8, w*h)
	} else {
		g.Clear()
	}
	g.W, g.H = w, h
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *ByteGrid) Cells() []uint8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// InBounds reports whether (x, y) addresses a cell.
func (g *ByteGrid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Max raises the cell at (x, y) to v. Writes outside the grid and writes of
// a smaller value are ignored.
func (g *ByteGrid) Max(x, y int, v uint8) {
	if !g.InBounds(x, y) {
		return
	}
	i := g.Index(x, y)
	if v > g.data[i] {
		g.data[i] = v
	}
}

// At returns the value at (x, y), or 0 outside the grid.
func (g *ByteGrid) At(x, y int) uint8 {
	if !g.InBounds(x, y) {
		return 0
	}
	return g.data[g.Index(x, y)]
}

// Clear fills the grid with zeros.
func (g *ByteGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
