package server

// GeneticConfigModel mirrors the recognized genetic configuration options.
// Fields are pointers so an absent field falls back to the default while an
// explicit zero is passed through as given.
type GeneticConfigModel struct {
	PopulationSize *int     `json:"population_size,omitempty"`
	Generations    *int     `json:"generations,omitempty"`
	MutationRate   *float64 `json:"mutation_rate,omitempty"`
	Seed           int64    `json:"seed,omitempty"`
}

// OptimizeRequest asks for a route computed by a single algorithm.
type OptimizeRequest struct {
	Algorithm string              `json:"algorithm"`
	Start     string              `json:"start"`
	End       string              `json:"end"`
	Waypoints []string            `json:"waypoints,omitempty"`
	Metric    string              `json:"metric"`
	Config    *GeneticConfigModel `json:"config,omitempty"`
}

// CompareRequest asks for the same route computed by every algorithm.
type CompareRequest struct {
	Start     string              `json:"start"`
	End       string              `json:"end"`
	Waypoints []string            `json:"waypoints,omitempty"`
	Metric    string              `json:"metric"`
	Config    *GeneticConfigModel `json:"config,omitempty"`
}
