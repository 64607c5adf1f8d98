package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineKnownDistance(t *testing.T) {
	delhi := MakePoint(28.6139, 77.2090)
	agra := MakePoint(27.1767, 78.0081)

	d := delhi.Haversine(agra)
	// straight-line Delhi-Agra is roughly 180 km
	assert.InDelta(t, 178, d, 5)
}

func TestHaversineSymmetric(t *testing.T) {
	a := MakePoint(28.6139, 77.2090)
	b := MakePoint(28.6539, 77.2490)

	assert.InDelta(t, a.Haversine(b), b.Haversine(a), 1e-9)
	assert.Equal(t, 0.0, a.Haversine(a))
}

func TestMinTravelMinutesIsLowerBound(t *testing.T) {
	a := MakePoint(28.6139, 77.2090)
	b := MakePoint(28.6539, 77.2490)

	distance := a.Haversine(b)
	minutes := a.MinTravelMinutes(b)

	assert.Greater(t, minutes, 0.0)
	// any slower-than-ceiling traversal of the same distance takes longer
	slower := distance / 40.0 * 60.0
	assert.Less(t, minutes, slower)
}
