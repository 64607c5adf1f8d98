// Package pbf imports road networks from OpenStreetMap extracts, either in
// PBF or XML form, and turns the highway ways into road segments.
package pbf

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/qedus/osmpbf"

	"github.com/routelab/route-optimizer/pkg/geo"
	"github.com/routelab/route-optimizer/pkg/road"
)

// RoadImporter reads an .osm.pbf extract in two passes: first collecting
// node coordinates, then converting highway ways into segments.
type RoadImporter struct {
	filename string
	roads    []*road.Segment
	nodes    map[int64]geo.Point
}

func NewRoadImporter(filename string) *RoadImporter {
	return &RoadImporter{
		filename: filename,
		nodes:    make(map[int64]geo.Point),
	}
}

func (ri *RoadImporter) Roads() []*road.Segment {
	return ri.roads
}

func (ri *RoadImporter) NodeCount() int {
	return len(ri.nodes)
}

func (ri *RoadImporter) Import() error {
	if err := ri.collectNodes(); err != nil {
		return err
	}

	file, err := os.Open(ri.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	roadsChan := make(chan *road.Segment, 1000)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for segment := range roadsChan {
			ri.roads = append(ri.roads, segment)
		}
	}()

	for {
		v, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			close(roadsChan)
			wg.Wait()
			return err
		}
		if way, ok := v.(*osmpbf.Way); ok {
			if segment := ri.waySegment(way.ID, way.NodeIDs, way.Tags); segment != nil {
				roadsChan <- segment
			}
		}
	}
	close(roadsChan)
	wg.Wait()

	return nil
}

func (ri *RoadImporter) collectNodes() error {
	file, err := os.Open(ri.filename)
	if err != nil {
		return err
	}
	defer file.Close()

	decoder := osmpbf.NewDecoder(file)
	decoder.SetBufferSize(osmpbf.MaxBlobSize)
	if err := decoder.Start(runtime.GOMAXPROCS(-1)); err != nil {
		return err
	}

	for {
		v, err := decoder.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if node, ok := v.(*osmpbf.Node); ok {
			ri.nodes[node.ID] = geo.MakePoint(node.Lat, node.Lon)
		}
	}
}

// waySegment converts a highway way into a segment, or returns nil for ways
// that are not roads or reference unknown nodes.
func (ri *RoadImporter) waySegment(id int64, nodeIDs []int64, tags map[string]string) *road.Segment {
	highway, ok := tags["highway"]
	if !ok {
		return nil
	}
	roadType := road.ParseRoadType(highway)
	if roadType == road.Unknown {
		return nil
	}
	if len(nodeIDs) < 2 {
		return nil
	}

	points := make([]geo.Point, len(nodeIDs))
	for i, nodeID := range nodeIDs {
		point, ok := ri.nodes[nodeID]
		if !ok {
			return nil
		}
		points[i] = point
	}

	return &road.Segment{
		ID:       id,
		Type:     roadType,
		NodeIDs:  nodeIDs,
		Points:   points,
		Tags:     tags,
		OneWay:   tags["oneway"] == "yes",
		MaxSpeed: ParseMaxSpeed(tags["maxspeed"]),
	}
}

// ParseMaxSpeed reads an OSM maxspeed tag value in km/h. Unparseable or
// absent values return 0, which defers to the road-type default.
func ParseMaxSpeed(value string) int {
	if value == "" {
		return 0
	}
	fields := strings.Fields(value)
	speed, err := strconv.Atoi(fields[0])
	if err != nil || speed <= 0 {
		return 0
	}
	if len(fields) > 1 && fields[1] == "mph" {
		speed = int(float64(speed)*1.609344 + 0.5)
	}
	return speed
}

// ImportFile dispatches on the extract's extension: .pbf goes through the
// PBF importer, everything else is treated as OSM XML.
func ImportFile(filename string) ([]*road.Segment, error) {
	if strings.HasSuffix(filename, ".pbf") {
		importer := NewRoadImporter(filename)
		if err := importer.Import(); err != nil {
			return nil, fmt.Errorf("import %s: %w", filename, err)
		}
		return importer.Roads(), nil
	}
	importer := NewXMLImporter(filename)
	if err := importer.Import(); err != nil {
		return nil, fmt.Errorf("import %s: %w", filename, err)
	}
	return importer.Roads(), nil
}
