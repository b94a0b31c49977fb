package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGrid_RowMajorSweep(t *testing.T) {
	b := BBox{MinLat: 0, MaxLat: 0.002, MinLng: 0, MaxLng: 0.002}
	grid := GenerateGrid(b, 0.1)

	// 0.1 km at the equator is ~0.0009 degrees, so 3 rows x 3 columns.
	require.Len(t, grid, 9)

	// First point is the box origin; the sweep advances longitude first.
	assert.Equal(t, b.MinLat, grid[0].Lat)
	assert.Equal(t, b.MinLng, grid[0].Lng)
	assert.Equal(t, grid[0].Lat, grid[1].Lat)
	assert.Greater(t, grid[1].Lng, grid[0].Lng)
	assert.Greater(t, grid[3].Lat, grid[0].Lat)
}

func TestGenerateGrid_Deterministic(t *testing.T) {
	b := BBox{MinLat: -0.01, MaxLat: 0.01, MinLng: -0.01, MaxLng: 0.01}
	assert.Equal(t, GenerateGrid(b, 0.1), GenerateGrid(b, 0.1))
}

func TestGenerateGrid_StepControlsDensity(t *testing.T) {
	b := BBox{MinLat: 0, MaxLat: 0.01, MinLng: 0, MaxLng: 0.01}
	coarse := GenerateGrid(b, 0.5)
	fine := GenerateGrid(b, 0.05)
	assert.Greater(t, len(fine), len(coarse))
}

func TestGenerateGrid_InvalidStep(t *testing.T) {
	b := BBox{MinLat: 0, MaxLat: 1, MinLng: 0, MaxLng: 1}
	assert.Nil(t, GenerateGrid(b, 0))
	assert.Nil(t, GenerateGrid(b, -1))
}

func TestGenerateGrid_PointBox(t *testing.T) {
	// A degenerate box still yields its single corner.
	b := BBox{MinLat: 1, MaxLat: 1, MinLng: 2, MaxLng: 2}
	grid := GenerateGrid(b, 0.1)
	require.Len(t, grid, 1)
	assert.Equal(t, 1.0, grid[0].Lat)
	assert.Equal(t, 2.0, grid[0].Lng)
}
