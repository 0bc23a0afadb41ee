package trafficsim

// Observer receives the per-tick lifecycle of a simulation run. It is the
// narrow interface through which reporting and optimization layers consume
// the core's outputs; the tick loop itself performs no I/O.
type Observer interface {
	// Required methods

	// OnTickComplete is called after every finished tick with the derived
	// metrics for that tick.
	OnTickComplete(metrics TickMetrics)
}

// ExtendedObserver provides additional optional observation methods
type ExtendedObserver interface {
	Observer

	// OnRunStarted is called once before the first tick.
	OnRunStarted(runID string, cfg *Config)

	// OnVehicleCompleted is called in vehicle-id order for every vehicle
	// that finished its route during the preceding tick.
	OnVehicleCompleted(record VehicleRecord)

	// OnRunCompleted is called once with the aggregated results.
	OnRunCompleted(results Results)
}

// BaseObserver provides a default implementation with no-op methods
type BaseObserver struct{}

// OnTickComplete implements the required Observer method
func (o *BaseObserver) OnTickComplete(metrics TickMetrics) {
	// Default implementation - no operation
}

// OnRunStarted implements the optional ExtendedObserver method
func (o *BaseObserver) OnRunStarted(runID string, cfg *Config) {
	// Default implementation - no operation
}

// OnVehicleCompleted implements the optional ExtendedObserver method
func (o *BaseObserver) OnVehicleCompleted(record VehicleRecord) {
	// Default implementation - no operation
}

// OnRunCompleted implements the optional ExtendedObserver method
func (o *BaseObserver) OnRunCompleted(results Results) {
	// Default implementation - no operation
}

// ObserverManager manages a collection of observers
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, obs := range om.observers {
		if obs == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			break
		}
	}
}

// NotifyTickComplete notifies all observers of a finished tick
func (om *ObserverManager) NotifyTickComplete(metrics TickMetrics) {
	for _, observer := range om.observers {
		observer.OnTickComplete(metrics)
	}
}

// NotifyRunStarted notifies all observers that the run is starting
func (om *ObserverManager) NotifyRunStarted(runID string, cfg *Config) {
	for _, observer := range om.observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnRunStarted(runID, cfg)
		}
	}
}

// NotifyVehicleCompleted notifies all observers of a completed trip
func (om *ObserverManager) NotifyVehicleCompleted(record VehicleRecord) {
	for _, observer := range om.observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnVehicleCompleted(record)
		}
	}
}

// NotifyRunCompleted notifies all observers of the aggregated results
func (om *ObserverManager) NotifyRunCompleted(results Results) {
	for _, observer := range om.observers {
		if extObs, ok := observer.(ExtendedObserver); ok {
			extObs.OnRunCompleted(results)
		}
	}
}
