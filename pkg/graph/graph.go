package graph

import (
	"fmt"
	"sort"

	"github.com/routelab/route-optimizer/pkg/geo"
)

type NodeId = string

// Metric selects which edge weight drives cost accumulation.
type Metric string

const (
	MetricDistance Metric = "distance" // kilometres
	MetricTime     Metric = "time"     // minutes
)

func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case MetricDistance:
		return MetricDistance, nil
	case MetricTime:
		return MetricTime, nil
	}
	return "", fmt.Errorf("%w: metric %q", ErrInvalidInput, s)
}

// Weights carries the two independent weights of an edge.
type Weights struct {
	Distance float64 `json:"distance"` // kilometres
	Time     float64 `json:"time"`     // minutes
}

// Cost returns the weight selected by the metric.
func (w Weights) Cost(m Metric) float64 {
	if m == MetricTime {
		return w.Time
	}
	return w.Distance
}

// A Neighbor is one outgoing edge of a node.
type Neighbor struct {
	To      NodeId
	Weights Weights
}

// Graph is an immutable weighted undirected graph with per-node geographic
// positions. Every edge is stored in both directions with identical weights.
// Neighbor lists are sorted by node id so iteration order is stable.
type Graph struct {
	adjacency map[NodeId][]Neighbor
	index     map[NodeId]map[NodeId]Weights
	positions map[NodeId]geo.Point
	nodes     []NodeId
	edgeCount int
}

// Nodes returns all node ids in sorted order. The returned slice is shared
// and must not be modified.
func (g *Graph) Nodes() []NodeId {
	return g.nodes
}

func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

func (g *Graph) HasNode(id NodeId) bool {
	_, ok := g.positions[id]
	return ok
}

// Position returns the coordinates of the given node.
func (g *Graph) Position(id NodeId) (geo.Point, error) {
	p, ok := g.positions[id]
	if !ok {
		return geo.Point{}, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	return p, nil
}

// Neighbors returns the weighted neighbor list of the given node, sorted by
// node id. The returned slice is shared and must not be modified.
func (g *Graph) Neighbors(id NodeId) ([]Neighbor, error) {
	if !g.HasNode(id) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	return g.adjacency[id], nil
}

// Weight returns the edge weights between two nodes, if such an edge exists.
func (g *Graph) Weight(from, to NodeId) (Weights, bool) {
	w, ok := g.index[from][to]
	return w, ok
}

// AdjacencyMap returns a copy of the adjacency structure, keyed by node and
// neighbor id. Intended for serialization.
func (g *Graph) AdjacencyMap() map[NodeId]map[NodeId]Weights {
	out := make(map[NodeId]map[NodeId]Weights, len(g.index))
	for from, neighbors := range g.index {
		m := make(map[NodeId]Weights, len(neighbors))
		for to, w := range neighbors {
			m[to] = w
		}
		out[from] = m
	}
	return out
}

// Positions returns a copy of the coordinate table.
func (g *Graph) Positions() map[NodeId]geo.Point {
	out := make(map[NodeId]geo.Point, len(g.positions))
	for id, p := range g.positions {
		out[id] = p
	}
	return out
}

// A Builder accumulates nodes and edges and produces an immutable Graph.
type Builder struct {
	positions map[NodeId]geo.Point
	index     map[NodeId]map[NodeId]Weights
	edgeCount int
}

func NewBuilder() *Builder {
	return &Builder{
		positions: make(map[NodeId]geo.Point),
		index:     make(map[NodeId]map[NodeId]Weights),
	}
}

// AddNode registers a node with its position. Re-adding a node updates its
// position.
func (b *Builder) AddNode(id NodeId, pos geo.Point) error {
	if id == "" {
		return fmt.Errorf("%w: empty node id", ErrInvalidInput)
	}
	b.positions[id] = pos
	return nil
}

// AddEdge connects two previously added nodes in both directions with the
// same weights. Self-loops, duplicate pairs and negative weights are
// rejected.
func (b *Builder) AddEdge(from, to NodeId, w Weights) error {
	if from == to {
		return fmt.Errorf("%w: %q", ErrSelfLoop, from)
	}
	for _, id := range []NodeId{from, to} {
		if _, ok := b.positions[id]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownNode, id)
		}
	}
	if w.Distance < 0 || w.Time < 0 {
		return fmt.Errorf("%w: %v -> %v (%+v)", ErrNegativeWeight, from, to, w)
	}
	if _, ok := b.index[from][to]; ok {
		return fmt.Errorf("%w: %v -> %v", ErrDuplicateEdge, from, to)
	}
	b.addArc(from, to, w)
	b.addArc(to, from, w)
	b.edgeCount++
	return nil
}

func (b *Builder) addArc(from, to NodeId, w Weights) {
	if b.index[from] == nil {
		b.index[from] = make(map[NodeId]Weights)
	}
	b.index[from][to] = w
}

// Build finalizes the graph. Neighbor lists and the node list are sorted so
// that iteration over the result is deterministic.
func (b *Builder) Build() *Graph {
	g := &Graph{
		adjacency: make(map[NodeId][]Neighbor, len(b.positions)),
		index:     b.index,
		positions: b.positions,
		nodes:     make([]NodeId, 0, len(b.positions)),
		edgeCount: b.edgeCount,
	}
	for id := range b.positions {
		g.nodes = append(g.nodes, id)
	}
	sort.Strings(g.nodes)
	for _, id := range g.nodes {
		neighbors := make([]Neighbor, 0, len(b.index[id]))
		for to, w := range b.index[id] {
			neighbors = append(neighbors, Neighbor{To: to, Weights: w})
		}
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i].To < neighbors[j].To })
		g.adjacency[id] = neighbors
	}
	return g
}
