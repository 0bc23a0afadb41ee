package trafficsim

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// BPR congestion coefficients. The multiplier 1 + alpha*ratio^beta is
// applied unconditionally, below and above saturation, so travel time stays
// continuous at ratio 1.
const (
	bprAlpha = 0.15
	bprBeta  = 4
)

// arrivalTolerance absorbs the float residue left on travel_time_remaining by
// near-1 congestion factors, so a 10 second road is cleared in 10 ticks and
// not 11.
const arrivalTolerance = 1e-9

// congestionFactor returns the BPR travel-time multiplier for a road given
// its start-of-tick occupancy. A road without capacity is uncongested.
func congestionFactor(road *Road) float64 {
	ratio := road.FlowRatio()
	if ratio == 0 {
		return 1
	}
	pow := ratio * ratio * ratio * ratio
	return 1 + bprAlpha*pow
}

// Simulation runs the discrete-time tick loop over a built network, signal
// system, and vehicle population. One tick executes in fixed order: flow
// reset and recount, signal advance, vehicle advance against the frozen
// flow snapshot, completion bookkeeping. The loop is deterministic and
// performs no I/O; all construction errors surface before the first tick.
type Simulation struct {
	runID     string
	network   *Network
	signals   *SignalSystem
	vehicles  []*Vehicle
	cfg       *Config
	observers *ObserverManager

	tick int
	now  float64 // simulated seconds elapsed

	reported []bool // completion already announced, indexed like vehicles

	completedCount int
	travelTimeSum  float64
}

// NewSimulation validates the assembled state and returns a runnable
// simulation. A nil signal system means every intersection is priority.
// Malformed routes and route steps without a matching road are graph
// inconsistencies and rejected here, never during the loop.
func NewSimulation(network *Network, signals *SignalSystem, vehicles []*Vehicle, cfg *Config) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if signals == nil {
		signals = NewSignalSystem()
	}

	for _, v := range vehicles {
		if len(v.route) == 0 {
			return nil, NewSimulationStateError(v.id, "route is empty")
		}
		for _, node := range v.route {
			if !network.HasIntersection(node) {
				return nil, NewSimulationStateError(v.id, fmt.Sprintf("route references unknown intersection %d", node))
			}
		}
		for i := 0; i+1 < len(v.route); i++ {
			if _, ok := network.Road(v.route[i], v.route[i+1]); !ok {
				return nil, NewSimulationStateError(v.id, fmt.Sprintf("no road for route step %d->%d", v.route[i], v.route[i+1]))
			}
		}
	}

	return &Simulation{
		runID:     uuid.New().String(),
		network:   network,
		signals:   signals,
		vehicles:  vehicles,
		cfg:       cfg,
		observers: NewObserverManager(),
		reported:  make([]bool, len(vehicles)),
	}, nil
}

// RunID returns the unique identifier of this run.
func (s *Simulation) RunID() string {
	return s.runID
}

// Network returns the simulated road network.
func (s *Simulation) Network() *Network {
	return s.network
}

// Signals returns the signal system.
func (s *Simulation) Signals() *SignalSystem {
	return s.signals
}

// Vehicles returns the vehicle population.
func (s *Simulation) Vehicles() []*Vehicle {
	return s.vehicles
}

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int {
	return s.tick
}

// Now returns the simulated time in seconds.
func (s *Simulation) Now() float64 {
	return s.now
}

// AddObserver adds an observer to the simulation
func (s *Simulation) AddObserver(observer Observer) {
	s.observers.AddObserver(observer)
}

// RemoveObserver removes an observer from the simulation
func (s *Simulation) RemoveObserver(observer Observer) {
	s.observers.RemoveObserver(observer)
}

// Step executes exactly one tick and returns its metrics.
//
// The ordering inside a tick is a contract, not an accident of statement
// order: congestion factors for the whole tick are computed from the
// occupancy observed at the start of the tick, so no vehicle's transition
// depends on another vehicle's transition within the same tick.
func (s *Simulation) Step() TickMetrics {
	dt := s.cfg.TimeStep

	// 1. Flow reset + count, completed before any movement.
	s.network.ResetFlows()
	onRoad := 0
	for _, v := range s.vehicles {
		if road, ok := v.OnRoad(); ok {
			road.CurrentFlow++
			onRoad++
		}
	}
	if s.cfg.Debug {
		s.assertFlowInvariant(onRoad)
	}

	// 2. Signal advance.
	s.signals.Advance(dt)

	// 3. Vehicle advance against the frozen flow snapshot.
	s.advanceVehicles(dt)

	// 4. Completion bookkeeping, in vehicle order for determinism.
	for i, v := range s.vehicles {
		if v.Completed() && !s.reported[i] {
			s.reported[i] = true
			rec := NewVehicleRecord(v)
			s.completedCount++
			s.travelTimeSum += rec.TravelTime
			s.observers.NotifyVehicleCompleted(rec)
		}
	}

	s.tick++
	s.now += dt

	metrics := s.collectMetrics()
	s.observers.NotifyTickComplete(metrics)
	return metrics
}

// Run executes the configured horizon and returns the aggregated results.
// Cancellation is honored between ticks only; a started tick always
// completes.
func (s *Simulation) Run(ctx context.Context) (Results, error) {
	s.observers.NotifyRunStarted(s.runID, s.cfg)

	for s.tick < s.cfg.SimulationTime {
		if err := ctx.Err(); err != nil {
			return Results{}, err
		}
		s.Step()
	}

	results := ComputeResults(s.runID, s.vehicles, s.cfg)
	s.observers.NotifyRunCompleted(results)
	return results, nil
}

// advanceVehicles moves every vehicle one tick. Vehicle updates only read
// shared road and signal state and only write their own fields, so the
// phase may fan out across workers without locking; the caller provides the
// barriers on either side.
func (s *Simulation) advanceVehicles(dt float64) {
	workers := s.cfg.Workers
	if workers <= 1 || len(s.vehicles) < workers {
		for _, v := range s.vehicles {
			s.advanceVehicle(v, dt)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (len(s.vehicles) + workers - 1) / workers
	for start := 0; start < len(s.vehicles); start += chunk {
		end := start + chunk
		if end > len(s.vehicles) {
			end = len(s.vehicles)
		}
		wg.Add(1)
		go func(batch []*Vehicle) {
			defer wg.Done()
			for _, v := range batch {
				s.advanceVehicle(v, dt)
			}
		}(s.vehicles[start:end])
	}
	wg.Wait()
}

// advanceVehicle applies one tick of movement to a single vehicle.
func (s *Simulation) advanceVehicle(v *Vehicle, dt float64) {
	// Not yet arrived.
	if v.entryTime > s.now {
		return
	}

	// Already at the final route node: record first-time completion, then
	// nothing further ever happens to this vehicle.
	if v.atLastNode() {
		v.markCompleted(s.now)
		return
	}

	if road, ok := v.OnRoad(); ok {
		congestion := congestionFactor(road)
		v.travelTimeRemaining -= dt * s.cfg.SpeedFactor / congestion

		if v.travelTimeRemaining <= arrivalTolerance {
			v.arrive()
			if v.atLastNode() {
				v.markCompleted(s.now)
			}
		} else {
			v.progress = 1 - v.travelTimeRemaining/(road.TravelTime*congestion)
		}
		return
	}

	// At a node with route remaining: the signal at this node gates entry
	// onto the next road.
	next, ok := v.nextNode()
	if !ok {
		return
	}
	m := Movement{From: v.node, To: next}
	road, ok := s.network.Road(m.From, m.To)
	if !ok {
		// Rejected at construction; unreachable once running.
		return
	}

	if s.signals.IsGreen(m) {
		congestion := congestionFactor(road)
		v.enterRoad(road, road.TravelTime*congestion)
	} else {
		v.wait(dt)
	}
}

// collectMetrics derives the post-tick digest.
func (s *Simulation) collectMetrics() TickMetrics {
	inTransit := 0
	for _, v := range s.vehicles {
		if v.entryTime <= s.now && !v.Completed() {
			inTransit++
		}
	}

	avgTravel := 0.0
	if s.completedCount > 0 {
		avgTravel = s.travelTimeSum / float64(s.completedCount)
	}

	return TickMetrics{
		Tick:              s.tick,
		Time:              s.now,
		VehiclesInTransit: inTransit,
		AvgTravelTime:     avgTravel,
		Density:           DensitySnapshot(s.network),
		SignalStates:      SignalSnapshot(s.signals),
	}
}

// assertFlowInvariant verifies, right after the start-of-tick count, that no
// road carries negative flow and that the total flow equals the number of
// vehicles currently on a road. A violation indicates a defect in the tick
// ordering, not a runtime condition, so it fails loudly.
func (s *Simulation) assertFlowInvariant(onRoad int) {
	total := 0
	for _, road := range s.network.Roads() {
		if road.CurrentFlow < 0 {
			panic(NewSimulationStateError(0, fmt.Sprintf("negative flow on road %d->%d", road.From, road.To)))
		}
		total += road.CurrentFlow
	}
	if total != onRoad {
		panic(NewSimulationStateError(0, fmt.Sprintf("flow total %d does not match %d vehicles on roads", total, onRoad)))
	}
}
