package observers

import (
	"sync"

	trafficsim "github.com/tomibabucsik/traffic-flow-optimaziton"
)

// HistoryObserver records the full tick-by-tick history of a run so that
// reporting layers can replay it after the fact without re-running the
// simulation.
type HistoryObserver struct {
	ticks       []trafficsim.TickMetrics
	completions []trafficsim.VehicleRecord
	results     *trafficsim.Results
	mutex       sync.RWMutex
}

// NewHistoryObserver creates a new history observer
func NewHistoryObserver() *HistoryObserver {
	return &HistoryObserver{}
}

// OnTickComplete records the tick digest
func (o *HistoryObserver) OnTickComplete(metrics trafficsim.TickMetrics) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.ticks = append(o.ticks, metrics)
}

// OnRunStarted resets any previous history
func (o *HistoryObserver) OnRunStarted(runID string, cfg *trafficsim.Config) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.ticks = nil
	o.completions = nil
	o.results = nil
}

// OnVehicleCompleted records completed trips in completion order
func (o *HistoryObserver) OnVehicleCompleted(record trafficsim.VehicleRecord) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.completions = append(o.completions, record)
}

// OnRunCompleted stores the aggregated results
func (o *HistoryObserver) OnRunCompleted(results trafficsim.Results) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.results = &results
}

// Ticks returns the recorded per-tick metrics in order.
func (o *HistoryObserver) Ticks() []trafficsim.TickMetrics {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	out := make([]trafficsim.TickMetrics, len(o.ticks))
	copy(out, o.ticks)
	return out
}

// Completions returns the completed-trip records in completion order.
func (o *HistoryObserver) Completions() []trafficsim.VehicleRecord {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	out := make([]trafficsim.VehicleRecord, len(o.completions))
	copy(out, o.completions)
	return out
}

// Results returns the aggregated results, or nil before the run finishes.
func (o *HistoryObserver) Results() *trafficsim.Results {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return o.results
}
