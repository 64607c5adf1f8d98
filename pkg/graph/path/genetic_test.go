package path

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelab/route-optimizer/pkg/geo"
	"github.com/routelab/route-optimizer/pkg/graph"
)

// lineGraph connects six nodes pairwise so every waypoint ordering is
// feasible. Edge cost is the square root of the index gap, which makes the
// direct edge strictly cheaper than any detour: every shortest-path leg is a
// single edge, and the cheapest tour walks the nodes in index order.
func lineGraph(t *testing.T) *graph.Graph {
	t.Helper()
	ids := []graph.NodeId{"n0", "n1", "n2", "n3", "n4", "n5"}
	b := graph.NewBuilder()
	for i, id := range ids {
		require.NoError(t, b.AddNode(id, geo.MakePoint(28.6100+float64(i)*0.0001, 77.2100)))
	}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			d := math.Sqrt(float64(j - i))
			require.NoError(t, b.AddEdge(ids[i], ids[j], graph.Weights{Distance: d, Time: d}))
		}
	}
	return b.Build()
}

func testConfig() GeneticConfig {
	cfg := DefaultGeneticConfig()
	cfg.PopulationSize = 20
	cfg.Generations = 30
	cfg.Seed = 42
	return cfg
}

func TestOptimizeVisitsEveryWaypoint(t *testing.T) {
	g := lineGraph(t)
	ga, err := NewGenetic(g, testConfig())
	require.NoError(t, err)

	waypoints := []graph.NodeId{"n2", "n4", "n1"}
	result, err := ga.Optimize("n0", "n5", waypoints, graph.MetricDistance)
	require.NoError(t, err)

	assert.Equal(t, graph.NodeId("n0"), result.Path[0])
	assert.Equal(t, graph.NodeId("n5"), result.Path[len(result.Path)-1])

	visits := make(map[graph.NodeId]int)
	for _, node := range result.Path {
		visits[node]++
	}
	for _, waypoint := range waypoints {
		assert.Equal(t, 1, visits[waypoint], "waypoint %s must be visited exactly once", waypoint)
	}
}

func TestOptimizeBeatsIdentityOrdering(t *testing.T) {
	g := lineGraph(t)
	ga, err := NewGenetic(g, testConfig())
	require.NoError(t, err)

	// visiting the waypoints in the given order means zig-zagging the ring
	waypoints := []graph.NodeId{"n4", "n1", "n3", "n2"}
	result, err := ga.Optimize("n0", "n5", waypoints, graph.MetricDistance)
	require.NoError(t, err)

	identityCost := 0.0
	stops := append([]graph.NodeId{"n0"}, waypoints...)
	stops = append(stops, "n5")
	for i := 0; i+1 < len(stops); i++ {
		leg, err := Dijkstra(g, stops[i], stops[i+1], graph.MetricDistance)
		require.NoError(t, err)
		identityCost += leg.Cost
	}

	assert.LessOrEqual(t, result.Cost, identityCost)
	// the monotone ordering n0..n5 costs 5 and is reachable by the optimizer
	assert.InDelta(t, 5.0, result.Cost, 1e-9)
}

func TestGenerationHistoryIsMonotone(t *testing.T) {
	g := lineGraph(t)
	ga, err := NewGenetic(g, testConfig())
	require.NoError(t, err)

	result, err := ga.Optimize("n0", "n5", []graph.NodeId{"n3", "n1", "n4"}, graph.MetricDistance)
	require.NoError(t, err)

	history := result.Stats.GenerationHistory
	require.Len(t, history, 30)
	for i := 1; i < len(history); i++ {
		assert.LessOrEqual(t, history[i].BestFitness, history[i-1].BestFitness,
			"best fitness must never worsen across generations")
		assert.Equal(t, i, history[i].Generation)
	}
	assert.Equal(t, history[len(history)-1].BestFitness, result.Stats.BestFitness)
	assert.Equal(t, 30, result.Stats.Generations)
	assert.Equal(t, 20, result.Stats.PopulationSize)
}

func TestOptimizeIsDeterministicPerSeed(t *testing.T) {
	g := lineGraph(t)
	waypoints := []graph.NodeId{"n2", "n4", "n1", "n3"}

	run := func() Result {
		ga, err := NewGenetic(g, testConfig())
		require.NoError(t, err)
		result, err := ga.Optimize("n0", "n5", waypoints, graph.MetricDistance)
		require.NoError(t, err)
		return result
	}

	first := run()
	second := run()
	assert.Equal(t, first.Path, second.Path)
	assert.Equal(t, first.Cost, second.Cost)
	assert.Equal(t, first.Stats.GenerationHistory, second.Stats.GenerationHistory)
}

func TestOptimizeWithoutWaypointsIsPlainSearch(t *testing.T) {
	g := lineGraph(t)
	ga, err := NewGenetic(g, testConfig())
	require.NoError(t, err)

	result, err := ga.Optimize("n0", "n5", nil, graph.MetricDistance)
	require.NoError(t, err)

	direct, err := AStar(g, "n0", "n5", graph.MetricDistance)
	require.NoError(t, err)
	assert.Equal(t, direct.Path, result.Path)
	assert.Equal(t, direct.Cost, result.Cost)
	assert.Empty(t, result.Stats.GenerationHistory)
}

func TestOptimizeRejectsUnknownWaypoint(t *testing.T) {
	g := lineGraph(t)
	ga, err := NewGenetic(g, testConfig())
	require.NoError(t, err)

	_, err = ga.Optimize("n0", "n5", []graph.NodeId{"missing"}, graph.MetricDistance)
	assert.ErrorIs(t, err, graph.ErrUnknownNode)
}

func TestOptimizeInfeasibleTour(t *testing.T) {
	b := graph.NewBuilder()
	require.NoError(t, b.AddNode("a", geo.MakePoint(28.6100, 77.2100)))
	require.NoError(t, b.AddNode("b", geo.MakePoint(28.6101, 77.2100)))
	require.NoError(t, b.AddNode("island", geo.MakePoint(28.6102, 77.2100)))
	require.NoError(t, b.AddEdge("a", "b", graph.Weights{Distance: 1, Time: 1}))
	g := b.Build()

	ga, err := NewGenetic(g, testConfig())
	require.NoError(t, err)

	_, err = ga.Optimize("a", "b", []graph.NodeId{"island"}, graph.MetricDistance)
	assert.ErrorIs(t, err, ErrNoPath)
}

func TestInvalidGeneticConfig(t *testing.T) {
	g := lineGraph(t)

	bad := []GeneticConfig{
		{PopulationSize: 0, Generations: 10, MutationRate: 0.2},
		{PopulationSize: 10, Generations: 0, MutationRate: 0.2},
		{PopulationSize: 10, Generations: 10, MutationRate: 1.5},
		{PopulationSize: 10, Generations: 10, MutationRate: -0.1},
	}
	for _, cfg := range bad {
		_, err := NewGenetic(g, cfg)
		assert.ErrorIs(t, err, graph.ErrInvalidInput)
	}
}
