// Package gen builds synthetic road-network graphs for development and
// testing, approximating a city: clustered intersections connected to their
// nearest neighbors, with travel times derived from randomized speeds and a
// traffic factor.
package gen

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/routelab/route-optimizer/pkg/geo"
	"github.com/routelab/route-optimizer/pkg/graph"
)

// Config controls the synthetic generator. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	Nodes   int       // number of intersections
	Density float64   // connection density in (0,1]
	Center  geo.Point // city center
	Spread  float64   // node spread around the center, in degrees

	// Seed makes generation reproducible. Seed 0 keeps the fixed default
	// stream.
	Seed int64
}

func DefaultConfig() Config {
	return Config{
		Nodes:   30,
		Density: 0.3,
		Center:  geo.MakePoint(28.6139, 77.2090),
		Spread:  0.05,
		Seed:    0,
	}
}

const defaultSeed int64 = 1

// City generates a connected-ish synthetic road network. Node ids are
// "node_0" … "node_N-1".
func City(cfg Config) (*graph.Graph, error) {
	if cfg.Nodes < 2 {
		return nil, fmt.Errorf("%w: need at least 2 nodes, got %d", graph.ErrInvalidInput, cfg.Nodes)
	}
	if cfg.Density <= 0 || cfg.Density > 1 {
		return nil, fmt.Errorf("%w: density %v", graph.ErrInvalidInput, cfg.Density)
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = defaultSeed
	}
	rng := rand.New(rand.NewSource(seed))

	ids := make([]graph.NodeId, cfg.Nodes)
	positions := make([]geo.Point, cfg.Nodes)
	b := graph.NewBuilder()

	// place nodes in four loose clusters around the center
	clusterSize := cfg.Nodes / 4
	if clusterSize == 0 {
		clusterSize = cfg.Nodes
	}
	for i := 0; i < cfg.Nodes; i++ {
		cluster := i / clusterSize
		lat := cfg.Center.Lat + float64(cluster%2)*cfg.Spread*0.5 + (rng.Float64()-0.5)*cfg.Spread
		lon := cfg.Center.Lon + float64(cluster/2)*cfg.Spread*0.5 + (rng.Float64()-0.5)*cfg.Spread

		ids[i] = fmt.Sprintf("node_%d", i)
		positions[i] = geo.MakePoint(lat, lon)
		if err := b.AddNode(ids[i], positions[i]); err != nil {
			return nil, err
		}
	}

	// connect each node to its nearest neighbors
	type candidate struct {
		index    int
		distance float64
	}
	connected := make(map[[2]graph.NodeId]bool)
	for i := range ids {
		candidates := make([]candidate, 0, cfg.Nodes-1)
		for j := range ids {
			if i == j {
				continue
			}
			candidates = append(candidates, candidate{index: j, distance: positions[i].Haversine(positions[j])})
		}
		sort.Slice(candidates, func(a, b int) bool { return candidates[a].distance < candidates[b].distance })

		connections := int(float64(cfg.Nodes) * cfg.Density * (0.5 + rng.Float64()))
		if connections < 2 {
			connections = 2
		}
		if connections > len(candidates) {
			connections = len(candidates)
		}

		for _, c := range candidates[:connections] {
			key := pairKey(ids[i], ids[c.index])
			if connected[key] {
				continue
			}
			connected[key] = true

			speed := 30.0 + rng.Float64()*20.0 // km/h
			traffic := 0.9 + rng.Float64()*0.4
			err := b.AddEdge(ids[i], ids[c.index], graph.Weights{
				Distance: c.distance,
				Time:     c.distance / speed * 60.0 * traffic,
			})
			if err != nil {
				return nil, err
			}
		}
	}

	return b.Build(), nil
}

func pairKey(a, b graph.NodeId) [2]graph.NodeId {
	if a > b {
		a, b = b, a
	}
	return [2]graph.NodeId{a, b}
}
