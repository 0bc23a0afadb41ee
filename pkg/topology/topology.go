// Package topology builds the reference road networks and their signal
// plans: a grid city with signaled internal intersections and an arterial
// corridor with signaled main-road intersections. Builders return the
// network, the matching signal system, and the boundary entry nodes that
// feed trip generation.
package topology

import (
	"math"

	trafficsim "github.com/tomibabucsik/traffic-flow-optimaziton"
)

// Layout bundles a built network with its signal system and the entry/exit
// node set.
type Layout struct {
	Network    *trafficsim.Network
	Signals    *trafficsim.SignalSystem
	EntryNodes []int
}

// signalPlan derives the phase cycle of one signaled intersection from its
// outgoing roads. Movements are grouped into north-south and east-west by
// the dominant axis of the road; each group gets a green slice followed by
// yellow and all-red clearance. With a single group the whole usable cycle
// is one green phase.
func signalPlan(n *trafficsim.Network, id int, cfg *trafficsim.Config) (*trafficsim.Signal, error) {
	node, ok := n.Intersection(id)
	if !ok {
		return nil, trafficsim.NewIntersectionNotFoundError(id)
	}

	var ns, ew []trafficsim.Movement
	for _, road := range n.Outgoing(id) {
		other, ok := n.Intersection(road.To)
		if !ok {
			continue
		}
		dx := other.X - node.X
		dy := other.Y - node.Y
		if math.Abs(dy) > math.Abs(dx) {
			ns = append(ns, road.Movement())
		} else {
			ew = append(ew, road.Movement())
		}
	}

	clearance := cfg.YellowDuration + cfg.AllRedDuration
	var phases []trafficsim.Phase

	appendGroup := func(green float64, movements []trafficsim.Movement) {
		phases = append(phases, trafficsim.NewPhase(green, movements...))
		if cfg.YellowDuration > 0 {
			phases = append(phases, trafficsim.NewPhase(cfg.YellowDuration))
		}
		if cfg.AllRedDuration > 0 {
			phases = append(phases, trafficsim.NewPhase(cfg.AllRedDuration))
		}
	}

	switch {
	case len(ns) > 0 && len(ew) > 0:
		green := (cfg.CycleTime - 2*clearance) / 2
		appendGroup(green, ns)
		appendGroup(green, ew)
	case len(ns) > 0:
		appendGroup(cfg.CycleTime-clearance, ns)
	case len(ew) > 0:
		appendGroup(cfg.CycleTime-clearance, ew)
	default:
		// Dead-end signal: no outgoing movements, fail open with no phases.
	}

	return trafficsim.NewSignal(id, cfg.CycleTime, phases)
}

// buildSignals creates the signal system for every signaled intersection of
// a network.
func buildSignals(n *trafficsim.Network, cfg *trafficsim.Config) (*trafficsim.SignalSystem, error) {
	signals := trafficsim.NewSignalSystem()
	for _, node := range n.Intersections() {
		if node.Kind != trafficsim.Signaled {
			continue
		}
		s, err := signalPlan(n, node.ID, cfg)
		if err != nil {
			return nil, err
		}
		if err := signals.Add(s); err != nil {
			return nil, err
		}
	}
	return signals, nil
}
