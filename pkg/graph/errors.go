package graph

import "errors"

var (
	// ErrUnknownNode is returned when a node referenced by a lookup has no
	// entry in the graph or in the coordinate table.
	ErrUnknownNode = errors.New("unknown node")

	// ErrInvalidInput is returned for requests that are rejected before any
	// computation starts, such as a start node equal to the end node or a
	// malformed metric.
	ErrInvalidInput = errors.New("invalid input")

	// ErrSelfLoop is returned when an edge connects a node to itself.
	ErrSelfLoop = errors.New("self-loop edge")

	// ErrDuplicateEdge is returned when a node pair already carries an edge.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrNegativeWeight is returned when an edge weight is negative. The
	// search algorithms require non-negative weights.
	ErrNegativeWeight = errors.New("negative edge weight")
)
