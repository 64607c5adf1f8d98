// graph-builder materializes graph files, either from an OpenStreetMap
// extract (.osm.pbf or .osm XML) or from the synthetic city generator.
package main

import (
	"flag"
	"os"
	"time"

	"github.com/go-kit/log"

	"github.com/routelab/route-optimizer/internal/pbf"
	"github.com/routelab/route-optimizer/pkg/gen"
	"github.com/routelab/route-optimizer/pkg/graph"
	"github.com/routelab/route-optimizer/pkg/road"
)

func main() {
	var (
		osmFile = flag.String("osm", "", "OpenStreetMap extract to import (.osm.pbf or .osm)")
		out     = flag.String("out", "graph.json", "output graph file")
		merge   = flag.Bool("merge", true, "merge road segments sharing endpoints before building")

		nodes   = flag.Int("nodes", 30, "synthetic graph size")
		density = flag.Float64("density", 0.3, "synthetic graph connection density")
		lat     = flag.Float64("lat", 28.6139, "synthetic city center latitude")
		lon     = flag.Float64("lon", 77.2090, "synthetic city center longitude")
		seed    = flag.Int64("seed", 0, "synthetic graph seed (0: fixed default)")
	)
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	start := time.Now()
	g, err := build(logger, *osmFile, *merge, *nodes, *density, *lat, *lon, *seed)
	if err != nil {
		logger.Log("during", "build", "err", err)
		os.Exit(1)
	}
	logger.Log("graph", "built", "nodes", g.NodeCount(), "edges", g.EdgeCount(), "took", time.Since(start))

	if err := graph.WriteFile(g, *out); err != nil {
		logger.Log("during", "write", "file", *out, "err", err)
		os.Exit(1)
	}
	logger.Log("graph", "written", "file", *out)
}

func build(logger log.Logger, osmFile string, merge bool, nodes int, density, lat, lon float64, seed int64) (*graph.Graph, error) {
	if osmFile == "" {
		cfg := gen.DefaultConfig()
		cfg.Nodes = nodes
		cfg.Density = density
		cfg.Center.Lat = lat
		cfg.Center.Lon = lon
		cfg.Seed = seed
		return gen.City(cfg)
	}

	segments, err := pbf.ImportFile(osmFile)
	if err != nil {
		return nil, err
	}
	logger.Log("import", osmFile, "segments", len(segments))

	if merge {
		merger := road.NewMerger(segments)
		segments = merger.Merge()
		logger.Log("merge", "done", "merged", merger.MergeCount(), "segments", len(segments))
	}

	return road.ToGraph(segments)
}
