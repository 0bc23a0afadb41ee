package observers_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"

	trafficsim "github.com/tomibabucsik/traffic-flow-optimaziton"
	"github.com/tomibabucsik/traffic-flow-optimaziton/pkg/observers"
)

func TestLoggingObserver(t *testing.T) {
	t.Run("Run lifecycle is logged", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		observer := observers.NewLoggingObserver(logger, 1)

		cfg := trafficsim.DefaultConfig()
		observer.OnRunStarted("run-1", cfg)
		observer.OnRunCompleted(trafficsim.Results{RunID: "run-1", Generated: 5, Completed: 4})

		entries := hook.AllEntries()
		assert.Len(t, entries, 2)
		assert.Equal(t, "simulation started", entries[0].Message)
		assert.Equal(t, "run-1", entries[0].Data["run_id"])
		assert.Equal(t, "simulation finished", entries[1].Message)
		assert.Equal(t, 4, entries[1].Data["completed"])
	})

	t.Run("Tick output is throttled to the interval", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		observer := observers.NewLoggingObserver(logger, 10)

		for tick := 1; tick <= 30; tick++ {
			observer.OnTickComplete(trafficsim.TickMetrics{Tick: tick})
		}

		assert.Len(t, hook.AllEntries(), 3)
		assert.Equal(t, 10, hook.AllEntries()[0].Data["tick"])
		assert.Equal(t, 30, hook.AllEntries()[2].Data["tick"])
	})

	t.Run("Zero interval disables tick output", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		observer := observers.NewLoggingObserver(logger, 0)

		for tick := 1; tick <= 30; tick++ {
			observer.OnTickComplete(trafficsim.TickMetrics{Tick: tick})
		}

		assert.Empty(t, hook.AllEntries())
	})

	t.Run("Completions are logged at debug level", func(t *testing.T) {
		logger, hook := test.NewNullLogger()
		logger.SetLevel(logrus.DebugLevel)
		observer := observers.NewLoggingObserver(logger, 1)

		observer.OnVehicleCompleted(trafficsim.VehicleRecord{VehicleID: 7, TravelTime: 42})

		entries := hook.AllEntries()
		assert.Len(t, entries, 1)
		assert.Equal(t, logrus.DebugLevel, entries[0].Level)
		assert.Equal(t, 7, entries[0].Data["vehicle"])
	})
}
