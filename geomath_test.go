package osm2route

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 0.33, roundTo(1.0/3.0, 2))
	assert.Equal(t, 0.67, roundTo(2.0/3.0, 2))
	assert.Equal(t, 2.0, roundTo(1.995, 0))
	assert.True(t, math.IsNaN(roundTo(math.NaN(), 2)))
}

func TestGetSphericalLength(t *testing.T) {
	// 0.001 degree of equator
	assert.InDelta(t, 111.3195, getSphericalLength([][]float64{{0, 0}, {0.001, 0}}), 0.0001)
	// Elevation does not affect length
	assert.Equal(t,
		getSphericalLength([][]float64{{37.64, 55.75}, {37.66, 55.73}}),
		getSphericalLength([][]float64{{37.64, 55.75, 100}, {37.66, 55.73, 300}}),
	)
	assert.Equal(t, 0.0, getSphericalLength([][]float64{{0, 0}}))
	assert.Equal(t, 0.0, getSphericalLength(nil))
}

func TestReverseLine(t *testing.T) {
	line := [][]float64{{0, 0}, {1, 1}, {2, 2}}
	reversed := reverseLine(line)
	assert.Equal(t, [][]float64{{2, 2}, {1, 1}, {0, 0}}, reversed)
	reversed[0][0] = 42
	assert.Equal(t, [][]float64{{0, 0}, {1, 1}, {2, 2}}, line)
}

func TestJoinLines(t *testing.T) {
	joined := joinLines([][][]float64{
		{{0, 0}, {1, 1}},
		{{1, 1}, {2, 2}, {3, 3}},
		{{3, 3}, {4, 4}},
	})
	assert.Equal(t, [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}, joined)
	assert.Empty(t, joinLines(nil))
}

func TestElevationGainLoss(t *testing.T) {
	line := [][]float64{{0, 0, 10}, {0, 0, 15}, {0, 0, 12}, {0, 0, 12}, {0, 0, 20}}
	assert.True(t, hasElevation(line))
	ascent, descent := elevationGainLoss(line)
	assert.Equal(t, 13.0, ascent)
	assert.Equal(t, 3.0, descent)

	assert.False(t, hasElevation([][]float64{{0, 0, 10}, {0, 0}}))
	assert.False(t, hasElevation(nil))
}
