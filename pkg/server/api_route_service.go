package server

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/routelab/route-optimizer/pkg/graph"
	"github.com/routelab/route-optimizer/pkg/graph/path"
	"github.com/routelab/route-optimizer/pkg/routing"
)

// RouteApiService implements the business logic for every endpoint of the
// RouteApi. It owns a router over the shared read-only graph.
type RouteApiService struct {
	router *routing.Router

	mu  sync.Mutex
	rng *rand.Rand
}

// NewRouteApiService creates a route api service. The seed drives the
// random-node sampling only.
func NewRouteApiService(router *routing.Router, seed int64) RouteApiServicer {
	return &RouteApiService{
		router: router,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// historyLimit caps the per-generation stats returned to clients.
const historyLimit = 10

// GetGraph - Return the graph structure and node positions
func (s *RouteApiService) GetGraph(ctx context.Context) (ImplResponse, error) {
	g := s.router.Graph()
	return Response(http.StatusOK, GraphResponse{
		Graph:     g.AdjacencyMap(),
		Positions: g.Positions(),
		Nodes:     g.Nodes(),
	}), nil
}

// GetRandomNodes - Sample random start, end and waypoint nodes
func (s *RouteApiService) GetRandomNodes(ctx context.Context, waypointCount int) (ImplResponse, error) {
	g := s.router.Graph()
	nodes := g.Nodes()
	if len(nodes) < waypointCount+2 {
		return Response(http.StatusBadRequest, RouteError{Error: "not enough nodes in graph"}), nil
	}

	sample := append([]graph.NodeId(nil), nodes...)
	s.mu.Lock()
	s.rng.Shuffle(len(sample), func(i, j int) { sample[i], sample[j] = sample[j], sample[i] })
	s.mu.Unlock()

	return Response(http.StatusOK, RandomNodesResponse{
		Start:     sample[0],
		End:       sample[1],
		Waypoints: sample[2 : 2+waypointCount],
	}), nil
}

// OptimizeRoute - Compute a route with the requested algorithm
func (s *RouteApiService) OptimizeRoute(ctx context.Context, req OptimizeRequest) (ImplResponse, error) {
	algorithm, request, errResponse := s.buildRequest(req.Algorithm, req.Start, req.End, req.Waypoints, req.Metric, req.Config)
	if errResponse != nil {
		return *errResponse, nil
	}

	result, err := s.router.Optimize(algorithm, request)
	if err != nil {
		return errorResponse(err, algorithm, request.Metric), nil
	}
	return Response(http.StatusOK, s.routeResult(result)), nil
}

// CompareAlgorithms - Run every algorithm against the same request
func (s *RouteApiService) CompareAlgorithms(ctx context.Context, req CompareRequest) (ImplResponse, error) {
	_, request, errResponse := s.buildRequest(routing.Dijkstra.String(), req.Start, req.End, req.Waypoints, req.Metric, req.Config)
	if errResponse != nil {
		return *errResponse, nil
	}
	if err := s.router.Validate(request); err != nil {
		return errorResponse(err, routing.Dijkstra, request.Metric), nil
	}

	outcomes := s.router.CompareAll(request)
	results := make(map[string]interface{}, len(outcomes))
	for algorithm, outcome := range outcomes {
		if outcome.Err != nil {
			results[algorithm.String()] = RouteError{
				Error:     outcome.Err.Error(),
				Algorithm: algorithm.String(),
				Metric:    string(request.Metric),
			}
			continue
		}
		results[algorithm.String()] = s.routeResult(*outcome.Result)
	}

	return Response(http.StatusOK, CompareResponse{
		Metric:  string(request.Metric),
		Results: results,
	}), nil
}

// ExportRouteGeoJSON - Compute a route and export it as GeoJSON
func (s *RouteApiService) ExportRouteGeoJSON(ctx context.Context, req OptimizeRequest) (ImplResponse, error) {
	algorithm, request, errResponse := s.buildRequest(req.Algorithm, req.Start, req.End, req.Waypoints, req.Metric, req.Config)
	if errResponse != nil {
		return *errResponse, nil
	}

	result, err := s.router.Optimize(algorithm, request)
	if err != nil {
		return errorResponse(err, algorithm, request.Metric), nil
	}

	g := s.router.Graph()
	line := make(orb.LineString, 0, len(result.Path))
	for _, node := range result.Path {
		pos, err := g.Position(node)
		if err != nil {
			return ImplResponse{}, err
		}
		line = append(line, pos.Orb())
	}

	feature := geojson.NewFeature(line)
	feature.Properties = geojson.Properties{
		"algorithm": result.Algorithm.String(),
		"metric":    string(result.Metric),
		"cost":      result.Cost,
	}
	collection := geojson.NewFeatureCollection()
	collection.Append(feature)

	return Response(http.StatusOK, collection), nil
}

// buildRequest translates the wire request into a routing request, or into
// a 400 response when the algorithm, metric or configuration is malformed.
func (s *RouteApiService) buildRequest(algorithmName, start, end string, waypoints []string, metricName string, cfg *GeneticConfigModel) (routing.Algorithm, routing.Request, *ImplResponse) {
	algorithm, err := routing.ParseAlgorithm(algorithmName)
	if err != nil {
		response := Response(http.StatusBadRequest, RouteError{Error: err.Error()})
		return 0, routing.Request{}, &response
	}
	metric, err := graph.ParseMetric(metricName)
	if err != nil {
		response := Response(http.StatusBadRequest, RouteError{Error: err.Error()})
		return 0, routing.Request{}, &response
	}

	genetic := path.DefaultGeneticConfig()
	if cfg != nil {
		if cfg.PopulationSize != nil {
			genetic.PopulationSize = *cfg.PopulationSize
		}
		if cfg.Generations != nil {
			genetic.Generations = *cfg.Generations
		}
		if cfg.MutationRate != nil {
			genetic.MutationRate = *cfg.MutationRate
		}
		genetic.Seed = cfg.Seed
	}

	return algorithm, routing.Request{
		Start:     start,
		End:       end,
		Waypoints: waypoints,
		Metric:    metric,
		Genetic:   genetic,
	}, nil
}

func (s *RouteApiService) routeResult(result routing.Result) RouteResult {
	g := s.router.Graph()
	coordinates := make([]Coordinate, 0, len(result.Path))
	for _, node := range result.Path {
		if pos, err := g.Position(node); err == nil {
			coordinates = append(coordinates, Coordinate{Lat: pos.Lat, Lon: pos.Lon, Node: node})
		}
	}

	stats := result.Stats
	if len(stats.GenerationHistory) > historyLimit {
		stats.GenerationHistory = stats.GenerationHistory[:historyLimit]
	}

	return RouteResult{
		Path:        result.Path,
		Cost:        result.Cost,
		Algorithm:   result.Algorithm.String(),
		Metric:      string(result.Metric),
		Stats:       stats,
		Coordinates: coordinates,
	}
}

// errorResponse maps engine errors onto wire responses. A missing route is
// a legitimate outcome and reported as a structured payload, not a server
// failure; rejected inputs are client errors.
func errorResponse(err error, algorithm routing.Algorithm, metric graph.Metric) ImplResponse {
	payload := RouteError{
		Error:     err.Error(),
		Algorithm: algorithm.String(),
		Metric:    string(metric),
	}
	switch {
	case errors.Is(err, path.ErrNoPath):
		return Response(http.StatusOK, payload)
	case errors.Is(err, graph.ErrUnknownNode), errors.Is(err, graph.ErrInvalidInput):
		return Response(http.StatusBadRequest, payload)
	default:
		return Response(http.StatusInternalServerError, payload)
	}
}
