package road

import (
	"errors"
	"strconv"

	"github.com/routelab/route-optimizer/pkg/graph"
)

// ToGraph materializes road segments into a weighted graph. Every
// consecutive node pair of a segment becomes one undirected edge with its
// great-circle distance in kilometres and the travel time at the segment
// speed in minutes. The road model treats every street as passable in both
// directions. Node ids are the decimal OSM node ids.
func ToGraph(segments []*Segment) (*graph.Graph, error) {
	b := graph.NewBuilder()

	for _, segment := range segments {
		for i, nodeID := range segment.NodeIDs {
			if err := b.AddNode(nodeLabel(nodeID), segment.Points[i]); err != nil {
				return nil, err
			}
		}
	}

	for _, segment := range segments {
		speed := float64(segment.Speed())
		for i := 0; i+1 < len(segment.NodeIDs); i++ {
			distance := segment.Points[i].Haversine(segment.Points[i+1])
			err := b.AddEdge(nodeLabel(segment.NodeIDs[i]), nodeLabel(segment.NodeIDs[i+1]), graph.Weights{
				Distance: distance,
				Time:     distance / speed * 60.0,
			})
			// parallel ways over the same node pair keep the first edge
			if err != nil && !errors.Is(err, graph.ErrDuplicateEdge) && !errors.Is(err, graph.ErrSelfLoop) {
				return nil, err
			}
		}
	}

	return b.Build(), nil
}

func nodeLabel(id int64) graph.NodeId {
	return strconv.FormatInt(id, 10)
}
