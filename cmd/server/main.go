// The route optimizer HTTP server. Serves a previously built graph file,
// or generates a synthetic city graph when no file is given.
package main

import (
	"context"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-kit/log"

	"github.com/routelab/route-optimizer/pkg/gen"
	"github.com/routelab/route-optimizer/pkg/graph"
	"github.com/routelab/route-optimizer/pkg/routing"
	"github.com/routelab/route-optimizer/pkg/server"
)

func main() {
	var (
		graphFile = flag.String("graph", "", "graph file to serve (empty: generate a synthetic graph)")
		nodes     = flag.Int("nodes", 30, "synthetic graph size")
		density   = flag.Float64("density", 0.3, "synthetic graph connection density")
		seed      = flag.Int64("seed", 0, "synthetic graph seed (0: fixed default)")
		address   = flag.String("address", envString("ADDRESS", "0.0.0.0"), "listen address")
		port      = flag.String("port", envString("PORT", "8080"), "listen port")
	)
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	g, err := loadGraph(*graphFile, *nodes, *density, *seed)
	if err != nil {
		logger.Log("during", "graph setup", "err", err)
		os.Exit(1)
	}
	logger.Log("graph", "ready", "nodes", g.NodeCount(), "edges", g.EdgeCount())

	var (
		router     = routing.NewRouter(g)
		service    = server.NewRouteApiService(router, time.Now().UnixNano())
		controller = server.NewRouteApiController(service)
		handler    = server.NewRouter(controller)
	)

	httpAddr := net.JoinHostPort(*address, *port)
	httpServer := &http.Server{
		Addr:    httpAddr,
		Handler: handler,
	}

	go func() {
		logger.Log("transport", "HTTP", "addr", httpAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log("transport", "HTTP", "during", "Serve", "err", err)
			os.Exit(1)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	logger.Log("signal", sig)

	if err := httpServer.Shutdown(context.Background()); err != nil {
		logger.Log("transport", "HTTP", "during", "Shutdown", "err", err)
	}
	logger.Log("transport", "HTTP", "status", "stopped")
}

func loadGraph(filename string, nodes int, density float64, seed int64) (*graph.Graph, error) {
	if filename != "" {
		return graph.ReadFile(filename)
	}
	cfg := gen.DefaultConfig()
	cfg.Nodes = nodes
	cfg.Density = density
	cfg.Seed = seed
	return gen.City(cfg)
}

func envString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
