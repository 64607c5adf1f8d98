// Package routing dispatches route requests to the search algorithms and
// runs uniform comparisons across them.
package routing

import (
	"fmt"
	"sync"

	"github.com/routelab/route-optimizer/pkg/graph"
	"github.com/routelab/route-optimizer/pkg/graph/path"
)

// Algorithm is the closed set of supported route algorithms.
type Algorithm int

const (
	Dijkstra Algorithm = iota
	AStar
	Genetic
)

// Algorithms lists every algorithm in a stable order.
var Algorithms = []Algorithm{Dijkstra, AStar, Genetic}

func (a Algorithm) String() string {
	switch a {
	case Dijkstra:
		return "dijkstra"
	case AStar:
		return "astar"
	case Genetic:
		return "genetic"
	}
	return "unknown"
}

func ParseAlgorithm(s string) (Algorithm, error) {
	for _, a := range Algorithms {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: algorithm %q", graph.ErrInvalidInput, s)
}

// Request describes one route computation. Waypoints are only used by the
// genetic algorithm.
type Request struct {
	Start     graph.NodeId
	End       graph.NodeId
	Waypoints []graph.NodeId
	Metric    graph.Metric
	Genetic   path.GeneticConfig
}

// Result is the uniform outcome across all algorithms.
type Result struct {
	Algorithm Algorithm      `json:"algorithm"`
	Metric    graph.Metric   `json:"metric"`
	Path      []graph.NodeId `json:"path"`
	Cost      float64        `json:"cost"`
	Stats     path.Stats     `json:"stats"`
}

// Outcome pairs a result with the error that replaced it. Exactly one of
// the two is meaningful.
type Outcome struct {
	Result *Result
	Err    error
}

// Router runs route computations over a single read-only graph. It holds no
// per-request state and is safe for concurrent use.
type Router struct {
	g *graph.Graph
}

func NewRouter(g *graph.Graph) *Router {
	return &Router{g: g}
}

func (r *Router) Graph() *graph.Graph {
	return r.g
}

// Validate rejects requests before any computation starts: unknown nodes,
// identical start and end, a malformed metric, or a non-positive genetic
// configuration.
func (r *Router) Validate(req Request) error {
	if _, err := graph.ParseMetric(string(req.Metric)); err != nil {
		return err
	}
	if req.Start == req.End {
		return fmt.Errorf("%w: start equals end (%q)", graph.ErrInvalidInput, req.Start)
	}
	nodes := append([]graph.NodeId{req.Start, req.End}, req.Waypoints...)
	for _, id := range nodes {
		if !r.g.HasNode(id) {
			return fmt.Errorf("%w: %q", graph.ErrUnknownNode, id)
		}
	}
	return nil
}

// Optimize runs a single algorithm against the request.
func (r *Router) Optimize(algorithm Algorithm, req Request) (Result, error) {
	if err := r.Validate(req); err != nil {
		return Result{}, err
	}

	var (
		result path.Result
		err    error
	)
	switch algorithm {
	case Dijkstra:
		result, err = path.Dijkstra(r.g, req.Start, req.End, req.Metric)
	case AStar:
		result, err = path.AStar(r.g, req.Start, req.End, req.Metric)
	case Genetic:
		var ga *path.Genetic
		ga, err = path.NewGenetic(r.g, req.Genetic)
		if err == nil {
			result, err = ga.Optimize(req.Start, req.End, req.Waypoints, req.Metric)
		}
	default:
		return Result{}, fmt.Errorf("%w: algorithm %d", graph.ErrInvalidInput, algorithm)
	}
	if err != nil {
		return Result{}, err
	}

	return Result{
		Algorithm: algorithm,
		Metric:    req.Metric,
		Path:      result.Path,
		Cost:      result.Cost,
		Stats:     result.Stats,
	}, nil
}

// CompareAll runs every algorithm against the same request and reports each
// outcome under its own key. Dijkstra and A* ignore the waypoints; the
// genetic optimizer uses them. One algorithm failing never suppresses the
// results of the others.
//
// The algorithms share nothing but the read-only graph, so they run
// concurrently; execution time is still measured per algorithm.
func (r *Router) CompareAll(req Request) map[Algorithm]Outcome {
	outcomes := make([]Outcome, len(Algorithms))

	var wg sync.WaitGroup
	for i, algorithm := range Algorithms {
		wg.Add(1)
		go func(i int, algorithm Algorithm) {
			defer wg.Done()
			single := req
			if algorithm != Genetic {
				single.Waypoints = nil
			}
			result, err := r.Optimize(algorithm, single)
			if err != nil {
				outcomes[i] = Outcome{Err: err}
				return
			}
			outcomes[i] = Outcome{Result: &result}
		}(i, algorithm)
	}
	wg.Wait()

	byAlgorithm := make(map[Algorithm]Outcome, len(Algorithms))
	for i, algorithm := range Algorithms {
		byAlgorithm[algorithm] = outcomes[i]
	}
	return byAlgorithm
}
