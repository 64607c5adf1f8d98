package road

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelab/route-optimizer/pkg/geo"
)

func segment(id int64, roadType RoadType, nodes ...int64) *Segment {
	points := make([]geo.Point, len(nodes))
	for i, n := range nodes {
		points[i] = geo.MakePoint(28.61+float64(n)*0.001, 77.21)
	}
	return &Segment{ID: id, Type: roadType, NodeIDs: nodes, Points: points}
}

func TestMergeJoinsChainedSegments(t *testing.T) {
	roads := []*Segment{
		segment(1, Residential, 10, 11, 12),
		segment(2, Residential, 12, 13, 14),
	}

	m := NewMerger(roads)
	merged := m.Merge()

	require.Len(t, merged, 1)
	assert.Equal(t, 1, m.MergeCount())
	assert.Equal(t, []int64{10, 11, 12, 13, 14}, merged[0].NodeIDs)
	assert.Len(t, merged[0].Points, 5)
}

func TestMergeReorientsReversedSegment(t *testing.T) {
	roads := []*Segment{
		segment(1, Residential, 10, 11, 12),
		segment(2, Residential, 14, 13, 12),
	}

	merged := NewMerger(roads).Merge()

	require.Len(t, merged, 1)
	assert.Equal(t, int64(10), merged[0].NodeIDs[0])
	assert.Equal(t, int64(14), merged[0].NodeIDs[len(merged[0].NodeIDs)-1])
	assert.ElementsMatch(t, []int64{10, 11, 12, 13, 14}, merged[0].NodeIDs)
}

func TestMergeKeepsJunctions(t *testing.T) {
	// three segments meet at node 12, so nothing may merge there
	roads := []*Segment{
		segment(1, Residential, 10, 11, 12),
		segment(2, Residential, 12, 13, 14),
		segment(3, Residential, 12, 20, 21),
	}

	m := NewMerger(roads)
	merged := m.Merge()

	assert.Len(t, merged, 3)
	assert.Equal(t, 0, m.MergeCount())
}

func TestMergeRespectsRoadType(t *testing.T) {
	roads := []*Segment{
		segment(1, Residential, 10, 11, 12),
		segment(2, Primary, 12, 13, 14),
	}

	merged := NewMerger(roads).Merge()
	assert.Len(t, merged, 2)
}

func TestMergeRespectsSpeed(t *testing.T) {
	a := segment(1, Residential, 10, 11, 12)
	a.MaxSpeed = 50
	b := segment(2, Residential, 12, 13, 14)

	merged := NewMerger([]*Segment{a, b}).Merge()
	assert.Len(t, merged, 2)
}

func TestParseRoadType(t *testing.T) {
	assert.Equal(t, Motorway, ParseRoadType("motorway"))
	assert.Equal(t, Motorway, ParseRoadType("motorway_link"))
	assert.Equal(t, Residential, ParseRoadType("living_street"))
	assert.Equal(t, Unknown, ParseRoadType("footway"))
}

func TestSegmentSpeed(t *testing.T) {
	s := segment(1, Primary, 10, 11)
	assert.Equal(t, 80, s.Speed())

	s.MaxSpeed = 50
	assert.Equal(t, 50, s.Speed())
}

func TestSegmentSpeedCappedAtTravelCeiling(t *testing.T) {
	s := segment(1, Motorway, 10, 11)
	s.MaxSpeed = 140
	assert.Equal(t, int(geo.MaxTravelSpeedKmh), s.Speed())

	s.MaxSpeed = 0
	assert.Equal(t, 120, s.Speed())
}
