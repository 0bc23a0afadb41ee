package topology_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	trafficsim "github.com/tomibabucsik/traffic-flow-optimaziton"
	"github.com/tomibabucsik/traffic-flow-optimaziton/pkg/topology"
)

func TestGrid(t *testing.T) {
	t.Run("Build default grid", func(t *testing.T) {
		cfg := trafficsim.DefaultConfig()
		layout, err := topology.Grid(topology.DefaultGridOptions(), cfg)

		assert.NoError(t, err)
		assert.Len(t, layout.Network.Intersections(), 16)
		// 4x4 grid: 3 horizontal and 3 vertical links per line, both directions.
		assert.Len(t, layout.Network.Roads(), 48)
		// Only the 2x2 interior is signaled; the 12 boundary nodes feed trips.
		assert.Equal(t, 4, layout.Signals.Len())
		assert.Len(t, layout.EntryNodes, 12)

		for _, id := range layout.EntryNodes {
			node, ok := layout.Network.Intersection(id)
			assert.True(t, ok)
			assert.Equal(t, trafficsim.Priority, node.Kind)
		}
	})

	t.Run("Internal signals split the cycle between axes", func(t *testing.T) {
		cfg := trafficsim.DefaultConfig()
		layout, err := topology.Grid(topology.DefaultGridOptions(), cfg)
		assert.NoError(t, err)

		for id, signal := range layout.Signals.Signals() {
			node, ok := layout.Network.Intersection(id)
			assert.True(t, ok)
			assert.Equal(t, trafficsim.Signaled, node.Kind)

			phases := signal.Phases()
			// Green, yellow, all-red per axis group.
			assert.Len(t, phases, 6)

			sum := 0.0
			for _, p := range phases {
				sum += p.Duration
			}
			assert.InDelta(t, cfg.CycleTime, sum, 1e-9)

			// Each internal node has 4 outgoing roads, 2 per axis.
			assert.Len(t, phases[0].Movements(), 2)
			assert.Len(t, phases[3].Movements(), 2)
			assert.Empty(t, phases[1].Movements(), "yellow permits nothing")
			assert.Empty(t, phases[2].Movements(), "all-red permits nothing")

			expectedGreen := (cfg.CycleTime - 2*(cfg.YellowDuration+cfg.AllRedDuration)) / 2
			assert.InDelta(t, expectedGreen, phases[0].Duration, 1e-9)
			assert.InDelta(t, expectedGreen, phases[3].Duration, 1e-9)
		}
	})

	t.Run("Reject undersized grids", func(t *testing.T) {
		cfg := trafficsim.DefaultConfig()
		opts := topology.DefaultGridOptions()
		opts.Rows = 1

		_, err := topology.Grid(opts, cfg)
		assert.Error(t, err)
		assert.True(t, trafficsim.IsConfigurationError(err))
	})

	t.Run("Reject invalid config", func(t *testing.T) {
		cfg := trafficsim.DefaultConfig()
		cfg.CycleTime = 0

		_, err := topology.Grid(topology.DefaultGridOptions(), cfg)
		assert.Error(t, err)
	})

	t.Run("Grid layout runs end to end", func(t *testing.T) {
		cfg := trafficsim.DefaultConfig()
		cfg.SimulationTime = 120
		cfg.ArrivalRate = 10

		layout, err := topology.Grid(topology.DefaultGridOptions(), cfg)
		assert.NoError(t, err)

		results, err := trafficsim.RunScenario(context.Background(),
			layout.Network, layout.Signals, layout.EntryNodes, cfg)
		assert.NoError(t, err)
		assert.Greater(t, results.Generated, 0)
	})
}

func TestArterial(t *testing.T) {
	t.Run("Build default arterial", func(t *testing.T) {
		cfg := trafficsim.DefaultConfig()
		layout, err := topology.Arterial(topology.DefaultArterialOptions(), cfg)

		assert.NoError(t, err)
		// 5 main intersections plus a north and south stub per cross-street.
		assert.Len(t, layout.Network.Intersections(), 11)
		assert.Equal(t, 5, layout.Signals.Len())
		// Corridor ends plus 6 cross-street stubs.
		assert.Len(t, layout.EntryNodes, 8)
	})

	t.Run("Corridor end gets a single-group plan", func(t *testing.T) {
		cfg := trafficsim.DefaultConfig()
		layout, err := topology.Arterial(topology.DefaultArterialOptions(), cfg)
		assert.NoError(t, err)

		end, ok := layout.Signals.Signal(1)
		assert.True(t, ok)

		phases := end.Phases()
		assert.Len(t, phases, 3)

		clearance := cfg.YellowDuration + cfg.AllRedDuration
		assert.InDelta(t, cfg.CycleTime-clearance, phases[0].Duration, 1e-9)
		assert.Len(t, phases[0].Movements(), 1)
	})

	t.Run("Intersection with cross-street gets both axis groups", func(t *testing.T) {
		cfg := trafficsim.DefaultConfig()
		layout, err := topology.Arterial(topology.DefaultArterialOptions(), cfg)
		assert.NoError(t, err)

		// Node 2 is the first internal corridor node and carries a cross-street.
		signal, ok := layout.Signals.Signal(2)
		assert.True(t, ok)
		assert.Len(t, signal.Phases(), 6)

		outgoing := layout.Network.Outgoing(2)
		assert.Len(t, outgoing, 4)
	})

	t.Run("Reject short corridors", func(t *testing.T) {
		cfg := trafficsim.DefaultConfig()
		opts := topology.DefaultArterialOptions()
		opts.MainIntersections = 1

		_, err := topology.Arterial(opts, cfg)
		assert.Error(t, err)
	})

	t.Run("Reject too many cross-streets", func(t *testing.T) {
		cfg := trafficsim.DefaultConfig()
		opts := topology.DefaultArterialOptions()
		opts.MainIntersections = 3
		opts.CrossStreets = 2

		_, err := topology.Arterial(opts, cfg)
		assert.Error(t, err)
	})

	t.Run("Arterial layout runs end to end", func(t *testing.T) {
		cfg := trafficsim.DefaultConfig()
		cfg.SimulationTime = 120
		cfg.ArrivalRate = 10

		layout, err := topology.Arterial(topology.DefaultArterialOptions(), cfg)
		assert.NoError(t, err)

		results, err := trafficsim.RunScenario(context.Background(),
			layout.Network, layout.Signals, layout.EntryNodes, cfg)
		assert.NoError(t, err)
		assert.Greater(t, results.Generated, 0)
	})
}
