package server

import (
	"github.com/routelab/route-optimizer/pkg/geo"
	"github.com/routelab/route-optimizer/pkg/graph"
	"github.com/routelab/route-optimizer/pkg/graph/path"
)

// Coordinate is one path node with its position, for map rendering.
type Coordinate struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Node string  `json:"node"`
}

// RouteResult is the serialized outcome of one algorithm run.
type RouteResult struct {
	Path        []string     `json:"path"`
	Cost        float64      `json:"cost"`
	Algorithm   string       `json:"algorithm"`
	Metric      string       `json:"metric"`
	Stats       path.Stats   `json:"stats"`
	Coordinates []Coordinate `json:"coordinates"`
}

// RouteError reports a failed computation: either a no-route outcome or a
// rejected input.
type RouteError struct {
	Error     string `json:"error"`
	Algorithm string `json:"algorithm,omitempty"`
	Metric    string `json:"metric,omitempty"`
}

// CompareResponse maps each algorithm name to its result or error.
type CompareResponse struct {
	Metric  string                 `json:"metric"`
	Results map[string]interface{} `json:"results"`
}

// GraphResponse is the full graph structure with the coordinate table.
type GraphResponse struct {
	Graph     map[graph.NodeId]map[graph.NodeId]graph.Weights `json:"graph"`
	Positions map[graph.NodeId]geo.Point                      `json:"positions"`
	Nodes     []graph.NodeId                                  `json:"nodes"`
}

// RandomNodesResponse is a sampled start/end/waypoints selection.
type RandomNodesResponse struct {
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Waypoints []string `json:"waypoints"`
}
