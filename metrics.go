package trafficsim

import "gonum.org/v1/gonum/stat"

// RoadDensity is the per-road congestion snapshot exposed to the reporting
// layer: occupancy, capacity, and their ratio.
type RoadDensity struct {
	Flow     int
	Capacity float64
	Ratio    float64
}

// TickMetrics is the per-tick state digest consumed by the excluded
// reporting and optimization layers. It is derived from post-tick state and
// never feeds back into the simulation.
type TickMetrics struct {
	// Tick is the completed tick number, starting at 1.
	Tick int
	// Time is the simulated time in seconds after the tick.
	Time float64
	// VehiclesInTransit counts vehicles that have entered and not yet
	// reached the last node of their route.
	VehiclesInTransit int
	// AvgTravelTime is the running average travel time among completed
	// vehicles, in seconds.
	AvgTravelTime float64
	// Density holds the congestion snapshot per directed road.
	Density map[Movement]RoadDensity
	// SignalStates holds the currently permitted movements per signaled
	// intersection.
	SignalStates map[int][]Movement
}

// VehicleRecord is the end-of-run summary of one vehicle, sufficient to
// compute aggregate travel time, wait time, and throughput without
// re-running the simulation.
type VehicleRecord struct {
	VehicleID   int
	Origin      int
	Destination int
	EntryTime   float64
	// CompletionTime is NotCompleted for vehicles still in transit.
	CompletionTime float64
	Completed      bool
	// TravelTime is CompletionTime minus EntryTime, 0 while in transit.
	TravelTime    float64
	TotalWaitTime float64
	Route         []int
}

// Results aggregates a finished run.
type Results struct {
	// RunID uniquely identifies the run the results belong to.
	RunID string
	// Generated counts all vehicles produced for the run.
	Generated int
	// Completed counts vehicles that finished their route.
	Completed int
	// AvgTravelTime is the mean travel time of completed vehicles, seconds.
	AvgTravelTime float64
	// AvgWaitTime is the mean signal-blocked time of completed vehicles.
	AvgWaitTime float64
	// ThroughputPerMinute is completed vehicles per simulated minute.
	ThroughputPerMinute float64
	// TotalSystemWaitTime sums the wait time of all completed vehicles.
	TotalSystemWaitTime float64
	// Records holds one entry per generated vehicle.
	Records []VehicleRecord
}

// DensitySnapshot captures the current flow/capacity state of every road.
func DensitySnapshot(n *Network) map[Movement]RoadDensity {
	density := make(map[Movement]RoadDensity, len(n.roads))
	for i := range n.roads {
		road := &n.roads[i]
		density[road.Movement()] = RoadDensity{
			Flow:     road.CurrentFlow,
			Capacity: road.Capacity,
			Ratio:    road.FlowRatio(),
		}
	}
	return density
}

// SignalSnapshot captures the currently permitted movements of every signal.
func SignalSnapshot(ss *SignalSystem) map[int][]Movement {
	states := make(map[int][]Movement, len(ss.signals))
	for id, s := range ss.signals {
		states[id] = s.PermittedMovements()
	}
	return states
}

// NewVehicleRecord summarizes one vehicle.
func NewVehicleRecord(v *Vehicle) VehicleRecord {
	rec := VehicleRecord{
		VehicleID:      v.ID(),
		Origin:         v.Origin(),
		Destination:    v.Destination(),
		EntryTime:      v.EntryTime(),
		CompletionTime: v.CompletionTime(),
		Completed:      v.Completed(),
		TotalWaitTime:  v.TotalWaitTime(),
		Route:          v.Route(),
	}
	if rec.Completed {
		rec.TravelTime = rec.CompletionTime - rec.EntryTime
	}
	return rec
}

// ComputeResults aggregates the end-of-run records for a vehicle population.
func ComputeResults(runID string, vehicles []*Vehicle, cfg *Config) Results {
	results := Results{
		RunID:     runID,
		Generated: len(vehicles),
		Records:   make([]VehicleRecord, 0, len(vehicles)),
	}

	var travelTimes, waitTimes []float64
	for _, v := range vehicles {
		rec := NewVehicleRecord(v)
		results.Records = append(results.Records, rec)
		if rec.Completed {
			results.Completed++
			travelTimes = append(travelTimes, rec.TravelTime)
			waitTimes = append(waitTimes, rec.TotalWaitTime)
			results.TotalSystemWaitTime += rec.TotalWaitTime
		}
	}

	if results.Completed > 0 {
		results.AvgTravelTime = stat.Mean(travelTimes, nil)
		results.AvgWaitTime = stat.Mean(waitTimes, nil)
	}

	horizonMinutes := float64(cfg.SimulationTime) * cfg.TimeStep / 60.0
	if horizonMinutes > 0 {
		results.ThroughputPerMinute = float64(results.Completed) / horizonMinutes
	}

	return results
}
