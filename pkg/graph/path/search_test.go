package path

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelab/route-optimizer/pkg/geo"
	"github.com/routelab/route-optimizer/pkg/graph"
)

// diamondGraph builds a small graph where the cheapest route from a to d runs
// through b and c. Coordinates are packed close together so the great-circle
// estimate stays well below the edge weights.
func diamondGraph(t *testing.T) *graph.Graph {
	t.Helper()
	b := graph.NewBuilder()
	require.NoError(t, b.AddNode("a", geo.MakePoint(28.6100, 77.2100)))
	require.NoError(t, b.AddNode("b", geo.MakePoint(28.6101, 77.2100)))
	require.NoError(t, b.AddNode("c", geo.MakePoint(28.6102, 77.2100)))
	require.NoError(t, b.AddNode("d", geo.MakePoint(28.6103, 77.2100)))
	require.NoError(t, b.AddEdge("a", "b", graph.Weights{Distance: 1, Time: 2}))
	require.NoError(t, b.AddEdge("b", "c", graph.Weights{Distance: 1, Time: 2}))
	require.NoError(t, b.AddEdge("a", "c", graph.Weights{Distance: 5, Time: 1}))
	require.NoError(t, b.AddEdge("c", "d", graph.Weights{Distance: 1, Time: 2}))
	return b.Build()
}

func TestDijkstraFindsCheapestPath(t *testing.T) {
	g := diamondGraph(t)

	result, err := Dijkstra(g, "a", "d", graph.MetricDistance)
	require.NoError(t, err)

	assert.Equal(t, []graph.NodeId{"a", "b", "c", "d"}, result.Path)
	assert.InDelta(t, 3.0, result.Cost, 1e-9)
	assert.Greater(t, result.Stats.NodesExplored, 0)
}

func TestAStarMatchesDijkstra(t *testing.T) {
	g := diamondGraph(t)

	dijkstra, err := Dijkstra(g, "a", "d", graph.MetricDistance)
	require.NoError(t, err)
	astar, err := AStar(g, "a", "d", graph.MetricDistance)
	require.NoError(t, err)

	assert.Equal(t, dijkstra.Path, astar.Path)
	assert.InDelta(t, dijkstra.Cost, astar.Cost, 1e-9)
}

func TestMetricSelectsDifferentRoute(t *testing.T) {
	g := diamondGraph(t)

	// by distance the a-c shortcut is expensive, by time it is the fastest
	byDistance, err := Dijkstra(g, "a", "c", graph.MetricDistance)
	require.NoError(t, err)
	assert.Equal(t, []graph.NodeId{"a", "b", "c"}, byDistance.Path)
	assert.InDelta(t, 2.0, byDistance.Cost, 1e-9)

	byTime, err := Dijkstra(g, "a", "c", graph.MetricTime)
	require.NoError(t, err)
	assert.Equal(t, []graph.NodeId{"a", "c"}, byTime.Path)
	assert.InDelta(t, 1.0, byTime.Cost, 1e-9)
}

func TestTrivialPath(t *testing.T) {
	g := diamondGraph(t)

	result, err := Dijkstra(g, "a", "a", graph.MetricDistance)
	require.NoError(t, err)
	assert.Equal(t, []graph.NodeId{"a"}, result.Path)
	assert.Zero(t, result.Cost)
}

func TestNoPathToIsolatedNode(t *testing.T) {
	b := graph.NewBuilder()
	require.NoError(t, b.AddNode("a", geo.MakePoint(28.6100, 77.2100)))
	require.NoError(t, b.AddNode("b", geo.MakePoint(28.6101, 77.2100)))
	require.NoError(t, b.AddNode("island", geo.MakePoint(28.6102, 77.2100)))
	require.NoError(t, b.AddEdge("a", "b", graph.Weights{Distance: 1, Time: 1}))
	g := b.Build()

	_, err := Dijkstra(g, "a", "island", graph.MetricDistance)
	assert.ErrorIs(t, err, ErrNoPath)

	_, err = AStar(g, "a", "island", graph.MetricDistance)
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestUnknownEndpoint(t *testing.T) {
	g := diamondGraph(t)

	_, err := Dijkstra(g, "missing", "d", graph.MetricDistance)
	assert.ErrorIs(t, err, graph.ErrUnknownNode)

	_, err = Dijkstra(g, "a", "missing", graph.MetricDistance)
	assert.ErrorIs(t, err, graph.ErrUnknownNode)
}

func TestPathIsConnectedAndCostConsistent(t *testing.T) {
	g := diamondGraph(t)

	result, err := AStar(g, "a", "d", graph.MetricDistance)
	require.NoError(t, err)
	require.NotEmpty(t, result.Path)

	total := 0.0
	for i := 0; i+1 < len(result.Path); i++ {
		w, ok := g.Weight(result.Path[i], result.Path[i+1])
		require.True(t, ok, "consecutive path nodes must share an edge")
		total += w.Cost(graph.MetricDistance)
	}
	assert.InDelta(t, result.Cost, total, 1e-9)
}
