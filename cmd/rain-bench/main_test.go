package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatsOr(t *testing.T) {
	def := []float32{0.5}

	got, err := floatsOr("", def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	got, err = floatsOr("0.1, 0.25,1", def)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.25, 1}, got)

	_, err = floatsOr("0.1,wet", def)
	assert.Error(t, err)
}

func TestIntsOr(t *testing.T) {
	got, err := intsOr(" ", []int{64})
	require.NoError(t, err)
	assert.Equal(t, []int{64}, got)

	got, err = intsOr("8,16", nil)
	require.NoError(t, err)
	assert.Equal(t, []int{8, 16}, got)

	_, err = intsOr("8,x", nil)
	assert.Error(t, err)
}
