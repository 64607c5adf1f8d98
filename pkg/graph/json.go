package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/routelab/route-optimizer/pkg/geo"
)

// graphFile is the on-disk representation of a graph. Edges are listed once
// per unordered pair.
type graphFile struct {
	Nodes map[NodeId]geo.Point `json:"nodes"`
	Edges []graphFileEdge      `json:"edges"`
}

type graphFileEdge struct {
	From     NodeId  `json:"from"`
	To       NodeId  `json:"to"`
	Distance float64 `json:"distance"`
	Time     float64 `json:"time"`
}

// Write encodes the graph as JSON.
func Write(g *Graph, w io.Writer) error {
	file := graphFile{Nodes: g.Positions()}
	for _, from := range g.Nodes() {
		for _, n := range g.adjacency[from] {
			if from < n.To { // each pair once
				file.Edges = append(file.Edges, graphFileEdge{
					From:     from,
					To:       n.To,
					Distance: n.Weights.Distance,
					Time:     n.Weights.Time,
				})
			}
		}
	}
	enc := json.NewEncoder(w)
	return enc.Encode(file)
}

// Read decodes a graph from its JSON representation, validating the same
// invariants the Builder enforces.
func Read(r io.Reader) (*Graph, error) {
	var file graphFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	b := NewBuilder()
	for id, pos := range file.Nodes {
		if err := b.AddNode(id, pos); err != nil {
			return nil, err
		}
	}
	for _, e := range file.Edges {
		err := b.AddEdge(e.From, e.To, Weights{Distance: e.Distance, Time: e.Time})
		if errors.Is(err, ErrDuplicateEdge) {
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

func WriteFile(g *Graph, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return Write(g, file)
}

func ReadFile(filename string) (*Graph, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Read(file)
}
