// Package trafficsim implements a discrete-time traffic microsimulation
// core: a road network with derived free-flow travel times and capacities,
// per-intersection cyclic signal-phase state machines, a seeded Poisson
// vehicle generator with shortest-path routing, and a congestion-aware
// tick loop built on the BPR travel-time function.
//
// The core is a library. It accepts a built network, a signal system, and a
// validated configuration, and yields per-tick metrics and end-of-run
// vehicle records through observers and results; it owns no file formats,
// wire protocols, or rendering.
package trafficsim

import "context"

// RunScenario wires the standard pipeline for a built network: generate the
// vehicle population from the entry nodes, assemble the simulation, attach
// the observers, and run the configured horizon.
func RunScenario(ctx context.Context, network *Network, signals *SignalSystem, entryNodes []int, cfg *Config, observers ...Observer) (Results, error) {
	gen, err := NewGenerator(network, entryNodes, cfg)
	if err != nil {
		return Results{}, err
	}

	sim, err := NewSimulation(network, signals, gen.Generate(), cfg)
	if err != nil {
		return Results{}, err
	}
	for _, obs := range observers {
		sim.AddObserver(obs)
	}

	return sim.Run(ctx)
}
