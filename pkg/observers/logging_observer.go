// Package observers provides observers for monitoring simulation runs.
package observers

import (
	"github.com/sirupsen/logrus"

	trafficsim "github.com/tomibabucsik/traffic-flow-optimaziton"
)

// LoggingObserver logs the run lifecycle through logrus. Per-tick output is
// throttled to every Interval ticks; completions are logged at debug level.
type LoggingObserver struct {
	trafficsim.BaseObserver

	logger *logrus.Logger
	// Interval controls how often tick metrics are logged; 0 disables
	// per-tick output entirely.
	Interval int
}

// NewLoggingObserver creates a logging observer writing through the given
// logger.
func NewLoggingObserver(logger *logrus.Logger, interval int) *LoggingObserver {
	return &LoggingObserver{logger: logger, Interval: interval}
}

// NewDefaultLoggingObserver creates a logging observer with the standard
// logrus logger, reporting every 10 ticks.
func NewDefaultLoggingObserver() *LoggingObserver {
	return NewLoggingObserver(logrus.StandardLogger(), 10)
}

// OnRunStarted logs the run parameters
func (o *LoggingObserver) OnRunStarted(runID string, cfg *trafficsim.Config) {
	o.logger.WithFields(logrus.Fields{
		"run_id":          runID,
		"simulation_time": cfg.SimulationTime,
		"time_step":       cfg.TimeStep,
		"arrival_rate":    cfg.ArrivalRate,
		"seed":            cfg.Seed,
	}).Info("simulation started")
}

// OnTickComplete logs the tick digest at the configured interval
func (o *LoggingObserver) OnTickComplete(metrics trafficsim.TickMetrics) {
	if o.Interval <= 0 || metrics.Tick%o.Interval != 0 {
		return
	}
	o.logger.WithFields(logrus.Fields{
		"tick":            metrics.Tick,
		"time":            metrics.Time,
		"in_transit":      metrics.VehiclesInTransit,
		"avg_travel_time": metrics.AvgTravelTime,
	}).Info("tick complete")
}

// OnVehicleCompleted logs completed trips
func (o *LoggingObserver) OnVehicleCompleted(record trafficsim.VehicleRecord) {
	o.logger.WithFields(logrus.Fields{
		"vehicle":     record.VehicleID,
		"origin":      record.Origin,
		"destination": record.Destination,
		"travel_time": record.TravelTime,
		"wait_time":   record.TotalWaitTime,
	}).Debug("vehicle completed trip")
}

// OnRunCompleted logs the aggregated results
func (o *LoggingObserver) OnRunCompleted(results trafficsim.Results) {
	o.logger.WithFields(logrus.Fields{
		"run_id":            results.RunID,
		"generated":         results.Generated,
		"completed":         results.Completed,
		"avg_travel_time":   results.AvgTravelTime,
		"avg_wait_time":     results.AvgWaitTime,
		"throughput_vpm":    results.ThroughputPerMinute,
		"total_system_wait": results.TotalSystemWaitTime,
	}).Info("simulation finished")
}
