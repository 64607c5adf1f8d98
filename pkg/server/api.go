package server

import (
	"context"
	"net/http"
)

// RouteApiRouter defines the required methods for binding the api requests
// to responses for the RouteApi. The implementation parses the necessary
// information from the http request, passes it to a RouteApiServicer, then
// writes the service result to the http response.
type RouteApiRouter interface {
	GetGraph(http.ResponseWriter, *http.Request)
	GetRandomNodes(http.ResponseWriter, *http.Request)
	OptimizeRoute(http.ResponseWriter, *http.Request)
	CompareAlgorithms(http.ResponseWriter, *http.Request)
	ExportRouteGeoJSON(http.ResponseWriter, *http.Request)
}

// RouteApiServicer defines the api actions for the RouteApi service. The
// service implements the business logic for every endpoint.
type RouteApiServicer interface {
	GetGraph(context.Context) (ImplResponse, error)
	GetRandomNodes(ctx context.Context, waypointCount int) (ImplResponse, error)
	OptimizeRoute(context.Context, OptimizeRequest) (ImplResponse, error)
	CompareAlgorithms(context.Context, CompareRequest) (ImplResponse, error)
	ExportRouteGeoJSON(context.Context, OptimizeRequest) (ImplResponse, error)
}

// ImplResponse defines the response model for an api handler.
type ImplResponse struct {
	Code int
	Body interface{}
}

func Response(code int, body interface{}) ImplResponse {
	return ImplResponse{Code: code, Body: body}
}
