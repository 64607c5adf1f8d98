package pbf

import (
	"encoding/xml"
	"os"

	"github.com/paulmach/osm"

	"github.com/routelab/route-optimizer/pkg/geo"
	"github.com/routelab/route-optimizer/pkg/road"
)

// XMLImporter reads a plain .osm XML extract, as produced by Overpass or
// small JOSM exports.
type XMLImporter struct {
	filename string
	roads    []*road.Segment
	nodes    map[int64]geo.Point
}

func NewXMLImporter(filename string) *XMLImporter {
	return &XMLImporter{
		filename: filename,
		nodes:    make(map[int64]geo.Point),
	}
}

func (xi *XMLImporter) Roads() []*road.Segment {
	return xi.roads
}

func (xi *XMLImporter) NodeCount() int {
	return len(xi.nodes)
}

func (xi *XMLImporter) Import() error {
	data, err := os.ReadFile(xi.filename)
	if err != nil {
		return err
	}

	var o osm.OSM
	if err := xml.Unmarshal(data, &o); err != nil {
		return err
	}

	for _, node := range o.Nodes {
		xi.nodes[int64(node.ID)] = geo.MakePoint(node.Lat, node.Lon)
	}

	for _, way := range o.Ways {
		highway := way.Tags.Find("highway")
		if highway == "" {
			continue
		}
		roadType := road.ParseRoadType(highway)
		if roadType == road.Unknown {
			continue
		}
		if len(way.Nodes) < 2 {
			continue
		}

		nodeIDs := make([]int64, 0, len(way.Nodes))
		points := make([]geo.Point, 0, len(way.Nodes))
		complete := true
		for _, wayNode := range way.Nodes {
			point, ok := xi.nodes[int64(wayNode.ID)]
			if !ok {
				complete = false
				break
			}
			nodeIDs = append(nodeIDs, int64(wayNode.ID))
			points = append(points, point)
		}
		if !complete {
			continue
		}

		xi.roads = append(xi.roads, &road.Segment{
			ID:       int64(way.ID),
			Type:     roadType,
			NodeIDs:  nodeIDs,
			Points:   points,
			Tags:     tagMap(way.Tags),
			OneWay:   way.Tags.Find("oneway") == "yes",
			MaxSpeed: ParseMaxSpeed(way.Tags.Find("maxspeed")),
		})
	}

	return nil
}

func tagMap(tags osm.Tags) map[string]string {
	m := make(map[string]string, len(tags))
	for _, tag := range tags {
		m[tag.Key] = tag.Value
	}
	return m
}
