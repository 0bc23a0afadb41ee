package observers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	trafficsim "github.com/tomibabucsik/traffic-flow-optimaziton"
	"github.com/tomibabucsik/traffic-flow-optimaziton/pkg/observers"
)

func TestHistoryObserver(t *testing.T) {
	t.Run("Records the run in order", func(t *testing.T) {
		observer := observers.NewHistoryObserver()

		observer.OnRunStarted("run-1", trafficsim.DefaultConfig())
		observer.OnTickComplete(trafficsim.TickMetrics{Tick: 1})
		observer.OnTickComplete(trafficsim.TickMetrics{Tick: 2})
		observer.OnVehicleCompleted(trafficsim.VehicleRecord{VehicleID: 3})
		observer.OnRunCompleted(trafficsim.Results{RunID: "run-1", Completed: 1})

		ticks := observer.Ticks()
		assert.Len(t, ticks, 2)
		assert.Equal(t, 1, ticks[0].Tick)
		assert.Equal(t, 2, ticks[1].Tick)

		completions := observer.Completions()
		assert.Len(t, completions, 1)
		assert.Equal(t, 3, completions[0].VehicleID)

		results := observer.Results()
		assert.NotNil(t, results)
		assert.Equal(t, "run-1", results.RunID)
	})

	t.Run("Results is nil before the run finishes", func(t *testing.T) {
		observer := observers.NewHistoryObserver()
		observer.OnTickComplete(trafficsim.TickMetrics{Tick: 1})

		assert.Nil(t, observer.Results())
	})

	t.Run("New run resets previous history", func(t *testing.T) {
		observer := observers.NewHistoryObserver()

		observer.OnRunStarted("run-1", trafficsim.DefaultConfig())
		observer.OnTickComplete(trafficsim.TickMetrics{Tick: 1})
		observer.OnRunCompleted(trafficsim.Results{RunID: "run-1"})

		observer.OnRunStarted("run-2", trafficsim.DefaultConfig())

		assert.Empty(t, observer.Ticks())
		assert.Empty(t, observer.Completions())
		assert.Nil(t, observer.Results())
	})

	t.Run("Returned slices are copies", func(t *testing.T) {
		observer := observers.NewHistoryObserver()
		observer.OnTickComplete(trafficsim.TickMetrics{Tick: 1})

		ticks := observer.Ticks()
		ticks[0].Tick = 99

		assert.Equal(t, 1, observer.Ticks()[0].Tick)
	})
}
