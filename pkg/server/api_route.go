package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
)

// RouteApiController binds http requests to an api service and writes the
// service results to the http response.
type RouteApiController struct {
	service      RouteApiServicer
	errorHandler ErrorHandler
}

// RouteApiOption for how the controller is set up.
type RouteApiOption func(*RouteApiController)

// WithRouteApiErrorHandler injects an ErrorHandler into the controller.
func WithRouteApiErrorHandler(h ErrorHandler) RouteApiOption {
	return func(c *RouteApiController) {
		c.errorHandler = h
	}
}

// NewRouteApiController creates a route api controller.
func NewRouteApiController(s RouteApiServicer, opts ...RouteApiOption) Router {
	controller := &RouteApiController{
		service:      s,
		errorHandler: DefaultErrorHandler,
	}
	for _, opt := range opts {
		opt(controller)
	}
	return controller
}

// Routes returns all the api routes for the RouteApiController.
func (c *RouteApiController) Routes() Routes {
	return Routes{
		{
			"GetGraph",
			strings.ToUpper("Get"),
			"/api/graph",
			c.GetGraph,
		},
		{
			"GetRandomNodes",
			strings.ToUpper("Get"),
			"/api/random-nodes",
			c.GetRandomNodes,
		},
		{
			"OptimizeRoute",
			strings.ToUpper("Post"),
			"/api/optimize",
			c.OptimizeRoute,
		},
		{
			"CompareAlgorithms",
			strings.ToUpper("Post"),
			"/api/compare",
			c.CompareAlgorithms,
		},
		{
			"ExportRouteGeoJSON",
			strings.ToUpper("Post"),
			"/api/route/geojson",
			c.ExportRouteGeoJSON,
		},
	}
}

// GetGraph - Return the graph structure and node positions
func (c *RouteApiController) GetGraph(w http.ResponseWriter, r *http.Request) {
	result, err := c.service.GetGraph(r.Context())
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// GetRandomNodes - Sample random start, end and waypoint nodes
func (c *RouteApiController) GetRandomNodes(w http.ResponseWriter, r *http.Request) {
	waypointCount := 2
	if param := r.URL.Query().Get("waypoints"); param != "" {
		value, err := strconv.Atoi(param)
		if err != nil || value < 0 {
			c.errorHandler(w, r, &ParsingError{Err: err}, nil)
			return
		}
		waypointCount = value
	}
	result, err := c.service.GetRandomNodes(r.Context(), waypointCount)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// OptimizeRoute - Compute a route with the requested algorithm
func (c *RouteApiController) OptimizeRoute(w http.ResponseWriter, r *http.Request) {
	optimizeRequestParam := OptimizeRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&optimizeRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	result, err := c.service.OptimizeRoute(r.Context(), optimizeRequestParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// CompareAlgorithms - Run every algorithm against the same request
func (c *RouteApiController) CompareAlgorithms(w http.ResponseWriter, r *http.Request) {
	compareRequestParam := CompareRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&compareRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	result, err := c.service.CompareAlgorithms(r.Context(), compareRequestParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}

// ExportRouteGeoJSON - Compute a route and export it as GeoJSON
func (c *RouteApiController) ExportRouteGeoJSON(w http.ResponseWriter, r *http.Request) {
	optimizeRequestParam := OptimizeRequest{}
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&optimizeRequestParam); err != nil {
		c.errorHandler(w, r, &ParsingError{Err: err}, nil)
		return
	}
	result, err := c.service.ExportRouteGeoJSON(r.Context(), optimizeRequestParam)
	if err != nil {
		c.errorHandler(w, r, err, &result)
		return
	}
	EncodeJSONResponse(result.Body, &result.Code, w)
}
