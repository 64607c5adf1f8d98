package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/routelab/route-optimizer/pkg/graph"
)

// ParsingError indicates that a request body or parameter could not be
// decoded.
type ParsingError struct {
	Err error
}

func (e *ParsingError) Error() string {
	if e.Err == nil {
		return "parsing failed"
	}
	return e.Err.Error()
}

func (e *ParsingError) Unwrap() error {
	return e.Err
}

// ErrorHandler defines how controller-level errors are turned into
// responses.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse)

// DefaultErrorHandler maps decoding problems and rejected inputs to 400 and
// everything else to 500.
func DefaultErrorHandler(w http.ResponseWriter, r *http.Request, err error, result *ImplResponse) {
	var parsingErr *ParsingError
	if errors.As(err, &parsingErr) {
		EncodeJSONResponse(RouteError{Error: fmt.Sprintf("invalid request: %v", parsingErr)}, statusPtr(http.StatusBadRequest), w)
		return
	}
	if errors.Is(err, graph.ErrInvalidInput) || errors.Is(err, graph.ErrUnknownNode) {
		EncodeJSONResponse(RouteError{Error: err.Error()}, statusPtr(http.StatusBadRequest), w)
		return
	}
	EncodeJSONResponse(RouteError{Error: err.Error()}, statusPtr(http.StatusInternalServerError), w)
}

func statusPtr(status int) *int {
	return &status
}
