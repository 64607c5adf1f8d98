// benchmark runs the three route algorithms over random node pairs of a
// graph and prints per-algorithm cost, exploration and timing summaries.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	"github.com/routelab/route-optimizer/pkg/gen"
	"github.com/routelab/route-optimizer/pkg/graph"
	"github.com/routelab/route-optimizer/pkg/graph/path"
	"github.com/routelab/route-optimizer/pkg/routing"
)

type summary struct {
	runs          int
	failures      int
	totalCost     float64
	totalExplored int
	totalSeconds  float64
}

func main() {
	var (
		graphFile = flag.String("graph", "", "graph file (empty: synthetic graph)")
		nodes     = flag.Int("nodes", 100, "synthetic graph size")
		n         = flag.Int("n", 50, "number of random start/end pairs")
		waypoints = flag.Int("waypoints", 2, "waypoints per genetic run")
		metric    = flag.String("metric", "distance", "metric to optimize (distance or time)")
		seed      = flag.Int64("seed", 42, "seed for pair selection and the genetic optimizer")
	)
	flag.Parse()

	m, err := graph.ParseMetric(*metric)
	if err != nil {
		log.Fatal(err)
	}

	g, err := loadGraph(*graphFile, *nodes, *seed)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("graph: %d nodes, %d edges\n", g.NodeCount(), g.EdgeCount())

	router := routing.NewRouter(g)
	rng := rand.New(rand.NewSource(*seed))
	ids := g.Nodes()

	summaries := make(map[routing.Algorithm]*summary)
	for _, algorithm := range routing.Algorithms {
		summaries[algorithm] = &summary{}
	}

	for i := 0; i < *n; i++ {
		sample := sampleNodes(rng, ids, *waypoints+2)
		cfg := path.DefaultGeneticConfig()
		cfg.Seed = rng.Int63()
		request := routing.Request{
			Start:     sample[0],
			End:       sample[1],
			Waypoints: sample[2:],
			Metric:    m,
			Genetic:   cfg,
		}

		for algorithm, outcome := range router.CompareAll(request) {
			s := summaries[algorithm]
			s.runs++
			if outcome.Err != nil {
				s.failures++
				continue
			}
			s.totalCost += outcome.Result.Cost
			s.totalExplored += outcome.Result.Stats.NodesExplored
			s.totalSeconds += outcome.Result.Stats.ExecutionTime
		}
	}

	for _, algorithm := range routing.Algorithms {
		s := summaries[algorithm]
		ok := s.runs - s.failures
		if ok == 0 {
			fmt.Printf("%-10s no successful runs (%d failures)\n", algorithm, s.failures)
			continue
		}
		fmt.Printf("%-10s runs=%d failures=%d avg_cost=%.3f avg_explored=%.1f avg_time=%.6fs\n",
			algorithm, s.runs, s.failures,
			s.totalCost/float64(ok),
			float64(s.totalExplored)/float64(ok),
			s.totalSeconds/float64(ok))
	}
}

func sampleNodes(rng *rand.Rand, ids []graph.NodeId, count int) []graph.NodeId {
	if count > len(ids) {
		log.Fatalf("graph has %d nodes, need %d", len(ids), count)
	}
	sample := append([]graph.NodeId(nil), ids...)
	rng.Shuffle(len(sample), func(i, j int) { sample[i], sample[j] = sample[j], sample[i] })
	return sample[:count]
}

func loadGraph(filename string, nodes int, seed int64) (*graph.Graph, error) {
	if filename != "" {
		return graph.ReadFile(filename)
	}
	cfg := gen.DefaultConfig()
	cfg.Nodes = nodes
	cfg.Seed = seed
	return gen.City(cfg)
}
