// Package visualization exports road networks and their signal plans as
// Graphviz DOT documents, a static diagnostic for inspecting a built
// topology before running it.
package visualization

import (
	"fmt"
	"os"
	"strings"

	trafficsim "github.com/tomibabucsik/traffic-flow-optimaziton"
)

// DOTGenerator generates Graphviz DOT representations of road networks
type DOTGenerator struct {
	network *trafficsim.Network
	signals *trafficsim.SignalSystem
	options DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowRoadAttributes bool
	ShowSignalPlans    bool
	RankDirection      string // "TB", "LR", "BT", "RL"
	PriorityShape      string
	SignaledShape      string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowRoadAttributes: true,
		ShowSignalPlans:    true,
		RankDirection:      "LR",
		PriorityShape:      "circle",
		SignaledShape:      "doublecircle",
	}
}

// NewDOTGenerator creates a new DOT generator for the given network. A nil
// signal system renders the bare topology.
func NewDOTGenerator(network *trafficsim.Network, signals *trafficsim.SignalSystem, options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		network: network,
		signals: signals,
		options: opts,
	}
}

// Generate creates a DOT representation of the road network
func (g *DOTGenerator) Generate() string {
	var dot strings.Builder

	dot.WriteString("digraph RoadNetwork {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString("  node [shape=circle];\n")
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generateIntersections(&dot)
	g.generateRoads(&dot)

	dot.WriteString("}\n")
	return dot.String()
}

// generateIntersections generates DOT nodes for all intersections
func (g *DOTGenerator) generateIntersections(dot *strings.Builder) {
	dot.WriteString("  // Intersections\n")

	for _, node := range g.network.Intersections() {
		shape := g.options.PriorityShape
		fillColor := "lightblue"
		label := fmt.Sprintf("%d", node.ID)

		if node.Kind == trafficsim.Signaled {
			shape = g.options.SignaledShape
			fillColor = "lightgreen"
			if g.options.ShowSignalPlans {
				if s, ok := g.signalFor(node.ID); ok {
					label = fmt.Sprintf("%d\\ncycle %gs, %d phases", node.ID, s.CycleTime(), len(s.Phases()))
				}
			}
		}

		dot.WriteString(fmt.Sprintf("  \"%d\" [shape=%s style=\"filled\" fillcolor=%s label=\"%s\" pos=\"%g,%g!\"];\n",
			node.ID, shape, fillColor, label, node.X, node.Y))
	}
}

// generateRoads generates DOT edges for all roads
func (g *DOTGenerator) generateRoads(dot *strings.Builder) {
	dot.WriteString("\n  // Roads\n")

	for _, road := range g.network.Roads() {
		if g.options.ShowRoadAttributes {
			label := fmt.Sprintf("%gm, %g km/h, %d lanes", road.Length, road.SpeedLimit, road.Lanes)
			dot.WriteString(fmt.Sprintf("  \"%d\" -> \"%d\" [label=\"%s\"];\n", road.From, road.To, label))
		} else {
			dot.WriteString(fmt.Sprintf("  \"%d\" -> \"%d\";\n", road.From, road.To))
		}
	}
}

func (g *DOTGenerator) signalFor(intersection int) (*trafficsim.Signal, bool) {
	if g.signals == nil {
		return nil, false
	}
	return g.signals.Signal(intersection)
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	return os.WriteFile(filename, []byte(g.Generate()), 0644)
}
