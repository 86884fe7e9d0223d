package scenegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRejectsBadSize(t *testing.T) {
	_, err := Generate(Options{W: 0, H: 10})
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestGenerateDeterministic(t *testing.T) {
	opts := DefaultOptions()
	opts.W, opts.H = 64, 48

	a, err := Generate(opts)
	require.NoError(t, err)
	b, err := Generate(opts)
	require.NoError(t, err)

	assert.Equal(t, a.Depth, b.Depth)
	assert.Equal(t, a.FlowX, b.FlowX)
	assert.Equal(t, a.FlowY, b.FlowY)
	assert.Equal(t, a.NormalX, b.NormalX)
}

func TestGenerateLayout(t *testing.T) {
	opts := DefaultOptions()
	opts.W, opts.H = 80, 60
	opts.ObjectThreshold = 1

	r, err := Generate(opts)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	horizon := int(float64(opts.H) * opts.Horizon)
	for x := 0; x < opts.W; x++ {
		assert.Zero(t, r.DepthRaw(x, 0), "top row is sky")
		assert.False(t, r.IsGround(x, 0))
		assert.True(t, r.IsGround(x, horizon), "horizon row is ground")
		assert.Greater(t, r.DepthRaw(x, opts.H-1), r.DepthRaw(x, horizon), "bottom is nearer than horizon")
	}

	flowing := 0
	for y := 0; y < opts.H; y++ {
		for x := 0; x < opts.W; x++ {
			if r.HasFlow(x, y) {
				flowing++
				assert.True(t, r.IsGround(x, y), "flow only on ground")
			}
		}
	}
	assert.Positive(t, flowing)
}

func TestFlowFieldFlatGroundFallsWithGravity(t *testing.T) {
	w, h := 30, 30
	depth := make([]float32, w*h)
	ground := make([]uint8, w*h)
	for i := range depth {
		depth[i] = 0.5
		ground[i] = 1
	}
	fx := make([]int8, w*h)
	fy := make([]int8, w*h)
	flowField(depth, ground, w, h, fx, fy)

	c := 15*w + 15
	assert.Zero(t, fx[c])
	assert.Equal(t, int8(71), fy[c], "gravity bias alone gives strength 0.56")
	assert.Zero(t, fy[0], "margin cells carry no flow")
}

func TestNormalsOnSlope(t *testing.T) {
	w, h := 5, 5
	depth := make([]float32, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			depth[y*w+x] = float32(x) * 0.01
		}
	}
	nx := make([]int8, w*h)
	ny := make([]int8, w*h)
	normals(depth, w, h, normalScale, nx, ny)

	for i := range nx {
		assert.Negative(t, nx[i], "depth increasing in x tilts normals toward -x")
		assert.Zero(t, ny[i])
	}
}

func TestAmbientOcclusionFlatIsUnoccluded(t *testing.T) {
	w, h := 8, 8
	depth := make([]float32, w*h)
	ao := make([]uint8, w*h)
	ambientOcclusion(depth, w, h, aoRadius, ao)
	for _, v := range ao {
		assert.Equal(t, uint8(255), v)
	}
}
