package osm2route

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// roundTo rounds value to given number of decimal places. NaN stays NaN
func roundTo(value float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(value*scale) / scale
}

// lineToOrb drops elevation and returns planar line (Lon == X, Lat == Y)
func lineToOrb(pts [][]float64) orb.LineString {
	line := make(orb.LineString, len(pts))
	for i, pt := range pts {
		line[i] = orb.Point{pt[0], pt[1]}
	}
	return line
}

// getSphericalLength returns length for given line (meters)
func getSphericalLength(pts [][]float64) float64 {
	if len(pts) < 2 {
		return 0.0
	}
	return geo.LengthHaversine(lineToOrb(pts))
}

// hasElevation checks if every point of the line carries third (elevation) component
func hasElevation(pts [][]float64) bool {
	if len(pts) == 0 {
		return false
	}
	for _, pt := range pts {
		if len(pt) < 3 {
			return false
		}
	}
	return true
}

// elevationGainLoss returns accumulated ascent and descent (both non-negative) along the line
func elevationGainLoss(pts [][]float64) (float64, float64) {
	ascent, descent := 0.0, 0.0
	for i := 1; i < len(pts); i++ {
		delta := pts[i][2] - pts[i-1][2]
		if delta > 0 {
			ascent += delta
		} else if delta < 0 {
			descent -= delta
		}
	}
	return ascent, descent
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(pts [][]float64) [][]float64 {
	inputLen := len(pts)
	output := make([][]float64, inputLen)
	for i, n := range pts {
		j := inputLen - i - 1
		output[j] = append([]float64(nil), n...)
	}
	return output
}

// copyLine returns deep copy of given line
func copyLine(pts [][]float64) [][]float64 {
	output := make([][]float64, len(pts))
	for i, n := range pts {
		output[i] = append([]float64(nil), n...)
	}
	return output
}

// joinLines concatenates lines dropping the first point of every line after the first one (it repeats the previous end)
func joinLines(lines [][][]float64) [][]float64 {
	total := 0
	for _, line := range lines {
		total += len(line)
	}
	joined := make([][]float64, 0, total)
	for i, line := range lines {
		if i > 0 && len(line) > 0 {
			line = line[1:]
		}
		joined = append(joined, copyLine(line)...)
	}
	return joined
}
