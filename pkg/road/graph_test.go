package road

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelab/route-optimizer/pkg/graph"
	"github.com/routelab/route-optimizer/pkg/graph/path"
)

func TestToGraphBuildsEdgesPerNodePair(t *testing.T) {
	segments := []*Segment{
		segment(1, Residential, 10, 11, 12),
		segment(2, Primary, 12, 13),
	}

	g, err := ToGraph(segments)
	require.NoError(t, err)

	assert.Equal(t, 4, g.NodeCount())
	assert.Equal(t, 3, g.EdgeCount())
	assert.True(t, g.HasNode("10"))
	assert.True(t, g.HasNode("13"))

	w, ok := g.Weight("10", "11")
	require.True(t, ok)
	assert.Greater(t, w.Distance, 0.0)
	// residential default speed: minutes = km / 30 * 60
	assert.InDelta(t, w.Distance/30.0*60.0, w.Time, 1e-9)

	w, ok = g.Weight("12", "13")
	require.True(t, ok)
	assert.InDelta(t, w.Distance/80.0*60.0, w.Time, 1e-9)
}

func TestToGraphToleratesParallelWays(t *testing.T) {
	segments := []*Segment{
		segment(1, Residential, 10, 11),
		segment(2, Residential, 11, 10),
	}

	g, err := ToGraph(segments)
	require.NoError(t, err)
	assert.Equal(t, 1, g.EdgeCount())
}

func TestToGraphRoutable(t *testing.T) {
	segments := []*Segment{
		segment(1, Residential, 10, 11, 12, 13),
	}

	g, err := ToGraph(segments)
	require.NoError(t, err)

	// both directions present
	_, ok := g.Weight("13", "12")
	assert.True(t, ok)

	neighbors, err := g.Neighbors("11")
	require.NoError(t, err)
	assert.Len(t, neighbors, 2)
}

func TestFastSegmentsKeepTimeSearchOptimal(t *testing.T) {
	// two competing routes between nodes 1 and 3, both tagged faster than
	// the 120 km/h travel ceiling
	legA := segment(1, Motorway, 1, 2)
	legB := segment(2, Motorway, 2, 3)
	legA.MaxSpeed = 140
	legB.MaxSpeed = 140
	direct := segment(3, Motorway, 1, 3)
	direct.MaxSpeed = 130

	g, err := ToGraph([]*Segment{legA, legB, direct})
	require.NoError(t, err)

	dijkstra, err := path.Dijkstra(g, "1", "3", graph.MetricTime)
	require.NoError(t, err)
	astar, err := path.AStar(g, "1", "3", graph.MetricTime)
	require.NoError(t, err)

	assert.InDelta(t, dijkstra.Cost, astar.Cost, 1e-9)

	// travel time never undercuts the straight-line lower bound
	start, err := g.Position("1")
	require.NoError(t, err)
	end, err := g.Position("3")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, dijkstra.Cost, start.MinTravelMinutes(end))
}
