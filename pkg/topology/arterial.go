package topology

import (
	trafficsim "github.com/tomibabucsik/traffic-flow-optimaziton"
)

// ArterialOptions parameterizes a main-road corridor with cross-streets.
type ArterialOptions struct {
	MainIntersections int
	CrossStreets      int
	RoadLength        float64 // meters
	SpeedLimit        float64 // km/h, main road
	Lanes             int     // main road

	CrossSpeedLimit float64 // km/h, cross-streets
	CrossLanes      int
}

// DefaultArterialOptions returns the reference arterial parameters.
func DefaultArterialOptions() ArterialOptions {
	return ArterialOptions{
		MainIntersections: 5,
		CrossStreets:      3,
		RoadLength:        500,
		SpeedLimit:        70,
		Lanes:             3,
		CrossSpeedLimit:   40,
		CrossLanes:        1,
	}
}

// Arterial builds one long signaled main road crossed by smaller
// north-south streets. The corridor endpoints and the cross-street stubs
// form the entry/exit node set.
func Arterial(opts ArterialOptions, cfg *trafficsim.Config) (*Layout, error) {
	if opts.MainIntersections < 2 {
		return nil, trafficsim.NewConfigurationError("Arterial", "at least two main intersections are required")
	}
	if opts.CrossStreets > opts.MainIntersections-2 {
		return nil, trafficsim.NewConfigurationError("Arterial", "more cross-streets than internal intersections")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	network := trafficsim.NewNetwork()

	mainNodes := make([]int, opts.MainIntersections)
	for i := range mainNodes {
		id := i + 1
		mainNodes[i] = id
		if err := network.AddIntersection(id, float64(i)*opts.RoadLength, 0, trafficsim.Signaled); err != nil {
			return nil, err
		}
	}

	addBoth := func(a, b int, speed float64, lanes int) error {
		if err := network.AddRoad(a, b, opts.RoadLength, speed, lanes); err != nil {
			return err
		}
		return network.AddRoad(b, a, opts.RoadLength, speed, lanes)
	}

	for i := 0; i+1 < len(mainNodes); i++ {
		if err := addBoth(mainNodes[i], mainNodes[i+1], opts.SpeedLimit, opts.Lanes); err != nil {
			return nil, err
		}
	}

	entryNodes := []int{mainNodes[0], mainNodes[len(mainNodes)-1]}
	nextID := opts.MainIntersections + 1

	internal := mainNodes[1 : len(mainNodes)-1]
	for i := 0; i < opts.CrossStreets && i < len(internal); i++ {
		main := internal[i]
		mainNode, _ := network.Intersection(main)

		north := nextID
		south := nextID + 1
		nextID += 2

		if err := network.AddIntersection(north, mainNode.X, opts.RoadLength, trafficsim.Priority); err != nil {
			return nil, err
		}
		if err := network.AddIntersection(south, mainNode.X, -opts.RoadLength, trafficsim.Priority); err != nil {
			return nil, err
		}
		if err := addBoth(north, main, opts.CrossSpeedLimit, opts.CrossLanes); err != nil {
			return nil, err
		}
		if err := addBoth(south, main, opts.CrossSpeedLimit, opts.CrossLanes); err != nil {
			return nil, err
		}

		entryNodes = append(entryNodes, north, south)
	}

	signals, err := buildSignals(network, cfg)
	if err != nil {
		return nil, err
	}

	return &Layout{Network: network, Signals: signals, EntryNodes: entryNodes}, nil
}
