package path

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/routelab/route-optimizer/pkg/graph"
)

const tournamentSize = 3

// GeneticConfig configures the waypoint optimizer.
type GeneticConfig struct {
	PopulationSize int     `json:"population_size"`
	Generations    int     `json:"generations"`
	MutationRate   float64 `json:"mutation_rate"`

	// Seed makes runs reproducible. Seed 0 derives a seed from the clock.
	Seed int64 `json:"seed,omitempty"`
}

func DefaultGeneticConfig() GeneticConfig {
	return GeneticConfig{
		PopulationSize: 50,
		Generations:    100,
		MutationRate:   0.2,
	}
}

func (c GeneticConfig) validate() error {
	if c.PopulationSize <= 0 {
		return fmt.Errorf("%w: population_size %d", graph.ErrInvalidInput, c.PopulationSize)
	}
	if c.Generations <= 0 {
		return fmt.Errorf("%w: generations %d", graph.ErrInvalidInput, c.Generations)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("%w: mutation_rate %v", graph.ErrInvalidInput, c.MutationRate)
	}
	return nil
}

// Genetic finds a near-optimal visitation order for a set of required
// waypoints between a fixed start and end. Chromosomes are permutations of
// the waypoint set; tour cost is the concatenation of shortest-path legs
// computed by the Search engine.
type Genetic struct {
	search *Search
	cfg    GeneticConfig
	rng    *rand.Rand
}

// NewGenetic creates an optimizer over the given graph. The A* variant of
// the engine serves as the cost oracle between node pairs.
func NewGenetic(g *graph.Graph, cfg GeneticConfig) (*Genetic, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	search := NewSearch(g)
	search.SetUseHeuristic(true)
	return &Genetic{
		search: search,
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
	}, nil
}

// legKey identifies a shortest-path leg between two nodes.
type legKey struct {
	from graph.NodeId
	to   graph.NodeId
}

type leg struct {
	path []graph.NodeId
	cost float64
}

// Optimize evolves waypoint orderings for the configured number of
// generations and returns the best tour ever observed, expanded into its
// full node path. With no waypoints it degrades to a single engine search.
func (ga *Genetic) Optimize(start, end graph.NodeId, waypoints []graph.NodeId, metric graph.Metric) (Result, error) {
	for _, id := range append([]graph.NodeId{start, end}, waypoints...) {
		if _, err := ga.search.g.Position(id); err != nil {
			return Result{}, err
		}
	}

	if len(waypoints) == 0 {
		return ga.search.ShortestPath(start, end, metric)
	}

	started := time.Now()
	legs := make(map[legKey]leg)
	nodesExplored := 0

	// resolve computes (and caches) one shortest-path leg. Failed legs are
	// cached with an infinite cost so infeasible tours fail cheaply.
	resolve := func(from, to graph.NodeId) leg {
		key := legKey{from: from, to: to}
		if l, ok := legs[key]; ok {
			return l
		}
		result, err := ga.search.ShortestPath(from, to, metric)
		nodesExplored += result.Stats.NodesExplored
		l := leg{path: result.Path, cost: result.Cost}
		if err != nil {
			l.cost = math.Inf(1)
		}
		legs[key] = l
		return l
	}

	tourCost := func(chromosome []graph.NodeId) float64 {
		total := 0.0
		previous := start
		for _, waypoint := range chromosome {
			total += resolve(previous, waypoint).cost
			previous = waypoint
		}
		total += resolve(previous, end).cost
		return total
	}

	// initial population of random waypoint permutations
	population := make([][]graph.NodeId, ga.cfg.PopulationSize)
	for i := range population {
		chromosome := append([]graph.NodeId(nil), waypoints...)
		ga.rng.Shuffle(len(chromosome), func(a, b int) {
			chromosome[a], chromosome[b] = chromosome[b], chromosome[a]
		})
		population[i] = chromosome
	}

	bestCost := math.Inf(1)
	var bestChromosome []graph.NodeId
	history := make([]GenerationStat, 0, ga.cfg.Generations)

	for generation := 0; generation < ga.cfg.Generations; generation++ {
		costs := make([]float64, len(population))
		sum := 0.0
		eliteIndex := 0
		for i, chromosome := range population {
			costs[i] = tourCost(chromosome)
			sum += costs[i]
			if costs[i] < costs[eliteIndex] {
				eliteIndex = i
			}
			if costs[i] < bestCost {
				bestCost = costs[i]
				bestChromosome = append([]graph.NodeId(nil), chromosome...)
			}
		}
		history = append(history, GenerationStat{
			Generation:  generation,
			BestFitness: bestCost,
			AvgFitness:  sum / float64(len(population)),
		})

		// the elite survives unchanged, so the best-known cost never worsens
		next := make([][]graph.NodeId, 0, len(population))
		next = append(next, append([]graph.NodeId(nil), population[eliteIndex]...))
		for len(next) < len(population) {
			parent1 := ga.tournamentSelect(population, costs)
			parent2 := ga.tournamentSelect(population, costs)
			child := ga.orderedCrossover(parent1, parent2)
			if ga.rng.Float64() < ga.cfg.MutationRate {
				ga.swapMutation(child)
			}
			next = append(next, child)
		}
		population = next
	}

	if math.IsInf(bestCost, 1) {
		return Result{}, fmt.Errorf("%w: no feasible tour %v -> %v via %d waypoints",
			ErrNoPath, start, end, len(waypoints))
	}

	fullPath, totalCost := ga.expand(start, end, bestChromosome, resolve)
	return Result{
		Path: fullPath,
		Cost: totalCost,
		Stats: Stats{
			NodesExplored:     nodesExplored,
			ExecutionTime:     time.Since(started).Seconds(),
			Generations:       ga.cfg.Generations,
			PopulationSize:    ga.cfg.PopulationSize,
			BestFitness:       bestCost,
			GenerationHistory: history,
		},
	}, nil
}

// expand concatenates the shortest-path legs of a tour, dropping the
// duplicated junction node between consecutive legs.
func (ga *Genetic) expand(start, end graph.NodeId, chromosome []graph.NodeId, resolve func(from, to graph.NodeId) leg) ([]graph.NodeId, float64) {
	stops := make([]graph.NodeId, 0, len(chromosome)+2)
	stops = append(stops, start)
	stops = append(stops, chromosome...)
	stops = append(stops, end)

	path := make([]graph.NodeId, 0)
	total := 0.0
	for i := 0; i+1 < len(stops); i++ {
		l := resolve(stops[i], stops[i+1])
		total += l.cost
		if len(path) == 0 {
			path = append(path, l.path...)
		} else {
			path = append(path, l.path[1:]...)
		}
	}
	return path, total
}

// tournamentSelect picks the lowest-cost chromosome out of a small random
// sample.
func (ga *Genetic) tournamentSelect(population [][]graph.NodeId, costs []float64) []graph.NodeId {
	winner := ga.rng.Intn(len(population))
	for i := 1; i < tournamentSize; i++ {
		candidate := ga.rng.Intn(len(population))
		if costs[candidate] < costs[winner] {
			winner = candidate
		}
	}
	return population[winner]
}

// orderedCrossover copies a contiguous slice of parent1 into the child and
// fills the remaining positions with parent2's genes in relative order, so
// the child stays a valid permutation of the waypoint set.
func (ga *Genetic) orderedCrossover(parent1, parent2 []graph.NodeId) []graph.NodeId {
	size := len(parent1)
	if size < 2 {
		return append([]graph.NodeId(nil), parent1...)
	}

	low, high := ga.rng.Intn(size), ga.rng.Intn(size)
	if low > high {
		low, high = high, low
	}

	child := make([]graph.NodeId, size)
	taken := make(map[graph.NodeId]bool, high-low)
	for i := low; i < high; i++ {
		child[i] = parent1[i]
		taken[parent1[i]] = true
	}

	position := high
	for offset := 0; offset < size; offset++ {
		gene := parent2[(high+offset)%size]
		if taken[gene] {
			continue
		}
		if position >= size {
			position = 0
		}
		for child[position] != "" {
			position++
			if position >= size {
				position = 0
			}
		}
		child[position] = gene
		position++
	}
	return child
}

// swapMutation exchanges two random positions of the chromosome in place.
func (ga *Genetic) swapMutation(chromosome []graph.NodeId) {
	if len(chromosome) < 2 {
		return
	}
	i := ga.rng.Intn(len(chromosome))
	j := ga.rng.Intn(len(chromosome) - 1)
	if j >= i {
		j++
	}
	chromosome[i], chromosome[j] = chromosome[j], chromosome[i]
}
