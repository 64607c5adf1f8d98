package gen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routelab/route-optimizer/pkg/graph"
)

func TestCityNodeCountAndIds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 3

	g, err := City(cfg)
	require.NoError(t, err)

	assert.Equal(t, cfg.Nodes, g.NodeCount())
	for i := 0; i < cfg.Nodes; i++ {
		assert.True(t, g.HasNode(fmt.Sprintf("node_%d", i)))
	}
	// every node gets at least two connection attempts
	assert.GreaterOrEqual(t, g.EdgeCount(), cfg.Nodes)
}

func TestCityIsDeterministicPerSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 11

	first, err := City(cfg)
	require.NoError(t, err)
	second, err := City(cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Nodes(), second.Nodes())
	assert.Equal(t, first.EdgeCount(), second.EdgeCount())
	assert.Equal(t, first.AdjacencyMap(), second.AdjacencyMap())
	assert.Equal(t, first.Positions(), second.Positions())
}

func TestCitySeedsDiverge(t *testing.T) {
	a := DefaultConfig()
	a.Seed = 1
	b := DefaultConfig()
	b.Seed = 2

	first, err := City(a)
	require.NoError(t, err)
	second, err := City(b)
	require.NoError(t, err)

	assert.NotEqual(t, first.Positions(), second.Positions())
}

func TestCityWeightsArePositive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 5

	g, err := City(cfg)
	require.NoError(t, err)

	for _, id := range g.Nodes() {
		neighbors, err := g.Neighbors(id)
		require.NoError(t, err)
		for _, n := range neighbors {
			assert.Greater(t, n.Weights.Distance, 0.0)
			assert.Greater(t, n.Weights.Time, 0.0)
		}
	}
}

func TestCityRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Nodes = 1
	_, err := City(cfg)
	assert.ErrorIs(t, err, graph.ErrInvalidInput)

	cfg = DefaultConfig()
	cfg.Density = 0
	_, err = City(cfg)
	assert.ErrorIs(t, err, graph.ErrInvalidInput)

	cfg = DefaultConfig()
	cfg.Density = 1.5
	_, err = City(cfg)
	assert.ErrorIs(t, err, graph.ErrInvalidInput)
}
