package topology

import (
	trafficsim "github.com/tomibabucsik/traffic-flow-optimaziton"
)

// GridOptions parameterizes a rectangular grid city.
type GridOptions struct {
	Rows       int
	Cols       int
	RoadLength float64 // meters
	SpeedLimit float64 // km/h
	Lanes      int
}

// DefaultGridOptions returns the reference grid-city parameters.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Rows:       4,
		Cols:       4,
		RoadLength: 500,
		SpeedLimit: 50,
		Lanes:      2,
	}
}

// Grid builds a rows x cols grid city. Internal intersections carry signals
// with a north-south / east-west phase split; boundary intersections are
// priority and form the entry/exit node set. Every adjacent pair is
// connected by one road per direction.
func Grid(opts GridOptions, cfg *trafficsim.Config) (*Layout, error) {
	if opts.Rows < 2 || opts.Cols < 2 {
		return nil, trafficsim.NewConfigurationError("Grid", "at least a 2x2 grid is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	network := trafficsim.NewNetwork()

	nodeID := func(row, col int) int { return row*opts.Cols + col + 1 }

	var entryNodes []int
	for row := 0; row < opts.Rows; row++ {
		for col := 0; col < opts.Cols; col++ {
			internal := row > 0 && row < opts.Rows-1 && col > 0 && col < opts.Cols-1
			kind := trafficsim.Priority
			if internal {
				kind = trafficsim.Signaled
			}

			id := nodeID(row, col)
			x := float64(col) * opts.RoadLength
			y := float64(row) * opts.RoadLength
			if err := network.AddIntersection(id, x, y, kind); err != nil {
				return nil, err
			}
			if !internal {
				entryNodes = append(entryNodes, id)
			}
		}
	}

	addBoth := func(a, b int) error {
		if err := network.AddRoad(a, b, opts.RoadLength, opts.SpeedLimit, opts.Lanes); err != nil {
			return err
		}
		return network.AddRoad(b, a, opts.RoadLength, opts.SpeedLimit, opts.Lanes)
	}

	for row := 0; row < opts.Rows; row++ {
		for col := 0; col < opts.Cols; col++ {
			if col < opts.Cols-1 {
				if err := addBoth(nodeID(row, col), nodeID(row, col+1)); err != nil {
					return nil, err
				}
			}
			if row < opts.Rows-1 {
				if err := addBoth(nodeID(row, col), nodeID(row+1, col)); err != nil {
					return nil, err
				}
			}
		}
	}

	signals, err := buildSignals(network, cfg)
	if err != nil {
		return nil, err
	}

	return &Layout{Network: network, Signals: signals, EntryNodes: entryNodes}, nil
}
