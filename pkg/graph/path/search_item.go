package path

import (
	"github.com/routelab/route-optimizer/pkg/graph"
)

const noPredecessor graph.NodeId = ""

// implements queue.Priorizable
type searchItem struct {
	node        graph.NodeId // node id of this item in the graph
	cost        float64      // accumulated cost from the origin
	heuristic   float64      // estimated remaining cost to the destination
	predecessor graph.NodeId // node id of the predecessor
	index       int          // internal usage
}

func newSearchItem(node graph.NodeId, cost float64, predecessor graph.NodeId, heuristic float64) *searchItem {
	return &searchItem{node: node, cost: cost, predecessor: predecessor, heuristic: heuristic, index: -1}
}

func (item *searchItem) Priority() float64  { return item.cost + item.heuristic }
func (item *searchItem) Index() int         { return item.index }
func (item *searchItem) SetIndex(index int) { item.index = index }
