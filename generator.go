package trafficsim

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Generator produces the vehicle population for a run: a Poisson arrival
// process over the simulation horizon with origin/destination pairs sampled
// from the entry-node set and routes computed once, at generation time, over
// free-flow travel times. The generator is the only source of randomness in
// the core and is deterministic for a fixed seed.
type Generator struct {
	network    *Network
	entryNodes []int
	cfg        *Config

	rng     *rand.Rand
	poisson distuv.Poisson
}

// NewGenerator creates a generator drawing origins and destinations from the
// given entry nodes, typically the network boundary. Fewer than two entry
// nodes cannot form a trip and is rejected.
func NewGenerator(network *Network, entryNodes []int, cfg *Config) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(entryNodes) < 2 {
		return nil, NewConfigurationError("Generator", "at least two entry nodes are required")
	}
	for _, id := range entryNodes {
		if !network.HasIntersection(id) {
			return nil, NewIntersectionNotFoundError(id)
		}
	}

	src := rand.NewSource(cfg.Seed)
	return &Generator{
		network:    network,
		entryNodes: append([]int(nil), entryNodes...),
		cfg:        cfg,
		rng:        rand.New(src),
		poisson: distuv.Poisson{
			Lambda: cfg.ArrivalRatePerTick(),
			Src:    src,
		},
	}, nil
}

// EntryNodes returns the eligible trip endpoints.
func (g *Generator) EntryNodes() []int {
	out := make([]int, len(g.entryNodes))
	copy(out, g.entryNodes)
	return out
}

// Generate draws the full vehicle population for the run. For each tick t in
// [0, SimulationTime) it samples Poisson(arrivals per tick) new trips with
// distinct origin and destination and a minimum free-flow travel-time route.
// An origin with no path to its destination yields a single-node route: the
// vehicle arrives already at its destination and contributes zero distance.
// Route non-existence is an expected property of sparse or directed
// topologies, not an error.
func (g *Generator) Generate() []*Vehicle {
	var vehicles []*Vehicle

	for t := 0; t < g.cfg.SimulationTime; t++ {
		n := g.arrivals()
		for i := 0; i < n; i++ {
			origin, destination := g.samplePair()

			route, _, ok := g.network.ShortestPath(origin, destination)
			if !ok {
				route = []int{origin}
			}

			entryTime := float64(t) * g.cfg.TimeStep
			vehicles = append(vehicles, NewVehicle(len(vehicles)+1, origin, destination, route, entryTime))
		}
	}

	return vehicles
}

// arrivals draws the number of vehicles entering this tick.
func (g *Generator) arrivals() int {
	if g.poisson.Lambda <= 0 {
		return 0
	}
	return int(g.poisson.Rand())
}

// samplePair picks two distinct entry nodes without replacement.
func (g *Generator) samplePair() (origin, destination int) {
	i := g.rng.Intn(len(g.entryNodes))
	j := g.rng.Intn(len(g.entryNodes) - 1)
	if j >= i {
		j++
	}
	return g.entryNodes[i], g.entryNodes[j]
}
