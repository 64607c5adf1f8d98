// Package path implements the route search algorithms: Dijkstra's shortest
// path, A* with a geographic heuristic, and a genetic optimizer for
// multi-waypoint tours.
package path

import (
	"errors"
	"fmt"
	"time"

	"github.com/routelab/route-optimizer/pkg/geo"
	"github.com/routelab/route-optimizer/pkg/graph"
	"github.com/routelab/route-optimizer/pkg/queue"
)

// ErrNoPath is returned when the search exhausts the frontier without
// reaching the destination. Absence of a route is a reportable outcome, not
// a defect.
var ErrNoPath = errors.New("no path found")

// Stats describes how a search performed. The generation fields are only
// populated by the genetic optimizer.
type Stats struct {
	NodesExplored  int     `json:"nodes_explored"`
	ExecutionTime  float64 `json:"execution_time"` // seconds, search loop only
	Generations    int     `json:"generations,omitempty"`
	PopulationSize int     `json:"population_size,omitempty"`
	BestFitness    float64 `json:"best_fitness,omitempty"`

	// GenerationHistory records the best and average tour cost per
	// generation, in order.
	GenerationHistory []GenerationStat `json:"generation_stats,omitempty"`
}

// GenerationStat is one generation's fitness summary.
type GenerationStat struct {
	Generation  int     `json:"generation"`
	BestFitness float64 `json:"best_fitness"`
	AvgFitness  float64 `json:"avg_fitness"`
}

// Result is the outcome of a successful search.
type Result struct {
	Path  []graph.NodeId
	Cost  float64
	Stats Stats
}

// Search computes shortest paths over a graph. A zero-valued heuristic makes
// it plain Dijkstra; with SetUseHeuristic(true) the frontier is ordered by
// accumulated cost plus a great-circle lower bound, which is A*.
//
// A Search holds no state between calls and is safe for concurrent use as
// long as the underlying graph is not mutated.
type Search struct {
	g            *graph.Graph
	useHeuristic bool
}

func NewSearch(g *graph.Graph) *Search {
	return &Search{g: g}
}

// SetUseHeuristic toggles the A* remaining-distance estimate.
func (s *Search) SetUseHeuristic(useHeuristic bool) {
	s.useHeuristic = useHeuristic
}

// ShortestPath computes the minimum-cost path from origin to destination
// under the given metric. The frontier tolerates duplicate entries: instead
// of decreasing keys, improved nodes are re-pushed and stale entries are
// skipped when popped. NodesExplored counts first settlements only.
func (s *Search) ShortestPath(origin, destination graph.NodeId, metric graph.Metric) (Result, error) {
	if _, err := s.g.Position(origin); err != nil {
		return Result{}, err
	}
	destinationPos, err := s.g.Position(destination)
	if err != nil {
		return Result{}, err
	}

	start := time.Now()

	settled := make(map[graph.NodeId]bool, s.g.NodeCount())
	best := make(map[graph.NodeId]float64, s.g.NodeCount())
	predecessor := make(map[graph.NodeId]graph.NodeId, s.g.NodeCount())
	nodesExplored := 0

	frontier := queue.NewMinHeap[*searchItem](nil)
	frontier.Push(newSearchItem(origin, 0, noPredecessor, s.heuristic(origin, destinationPos, metric)))
	best[origin] = 0

	for frontier.Len() > 0 {
		current := frontier.Pop()
		if settled[current.node] {
			// stale duplicate of an already settled node
			continue
		}
		settled[current.node] = true
		predecessor[current.node] = current.predecessor
		nodesExplored++

		if current.node == destination {
			return Result{
				Path: reconstructPath(predecessor, origin, destination),
				Cost: current.cost,
				Stats: Stats{
					NodesExplored: nodesExplored,
					ExecutionTime: time.Since(start).Seconds(),
				},
			}, nil
		}

		neighbors, err := s.g.Neighbors(current.node)
		if err != nil {
			return Result{}, err
		}
		for _, neighbor := range neighbors {
			if settled[neighbor.To] {
				continue
			}
			cost := current.cost + neighbor.Weights.Cost(metric)
			if known, ok := best[neighbor.To]; ok && cost >= known {
				continue
			}
			best[neighbor.To] = cost
			heuristic := s.heuristic(neighbor.To, destinationPos, metric)
			frontier.Push(newSearchItem(neighbor.To, cost, current.node, heuristic))
		}
	}

	return Result{
		Stats: Stats{NodesExplored: nodesExplored, ExecutionTime: time.Since(start).Seconds()},
	}, fmt.Errorf("%w: %v -> %v (%v)", ErrNoPath, origin, destination, metric)
}

// heuristic returns an admissible estimate of the remaining cost from node
// to the destination: the great-circle distance for the distance metric, or
// that distance at the maximum plausible travel speed for the time metric.
// Real road distance is never shorter than the straight line, so the
// estimate never overestimates.
func (s *Search) heuristic(node graph.NodeId, destination geo.Point, metric graph.Metric) float64 {
	if !s.useHeuristic {
		return 0
	}
	pos, err := s.g.Position(node)
	if err != nil {
		// every edge-referenced node carries coordinates; fall back to the
		// zero estimate, which keeps the search correct
		return 0
	}
	if metric == graph.MetricTime {
		return pos.MinTravelMinutes(destination)
	}
	return pos.Haversine(destination)
}

func reconstructPath(predecessor map[graph.NodeId]graph.NodeId, origin, destination graph.NodeId) []graph.NodeId {
	path := make([]graph.NodeId, 0)
	for node := destination; node != noPredecessor; node = predecessor[node] {
		path = append(path, node)
		if node == origin {
			break
		}
	}
	reverseInPlace(path)
	return path
}

func reverseInPlace[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// Dijkstra computes the shortest path between two nodes without a heuristic.
func Dijkstra(g *graph.Graph, origin, destination graph.NodeId, metric graph.Metric) (Result, error) {
	return NewSearch(g).ShortestPath(origin, destination, metric)
}

// AStar computes the shortest path using the great-circle heuristic. The
// heuristic is admissible, so the returned cost equals Dijkstra's.
func AStar(g *graph.Graph, origin, destination graph.NodeId, metric graph.Metric) (Result, error) {
	s := NewSearch(g)
	s.SetUseHeuristic(true)
	return s.ShortestPath(origin, destination, metric)
}
