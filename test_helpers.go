package trafficsim

import (
	"sync"
	"testing"
)

// TestObserver is a mock observer for testing that captures all observer events
type TestObserver struct {
	mutex       sync.RWMutex
	RunStarts   []RunStartEvent
	Ticks       []TickMetrics
	Completions []VehicleRecord
	RunResults  []Results
}

type RunStartEvent struct {
	RunID string
	Cfg   *Config
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{}
}

func (o *TestObserver) OnRunStarted(runID string, cfg *Config) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.RunStarts = append(o.RunStarts, RunStartEvent{RunID: runID, Cfg: cfg})
}

func (o *TestObserver) OnTickComplete(metrics TickMetrics) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Ticks = append(o.Ticks, metrics)
}

func (o *TestObserver) OnVehicleCompleted(record VehicleRecord) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.Completions = append(o.Completions, record)
}

func (o *TestObserver) OnRunCompleted(results Results) {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	o.RunResults = append(o.RunResults, results)
}

// TickCount returns the number of observed ticks
func (o *TestObserver) TickCount() int {
	o.mutex.RLock()
	defer o.mutex.RUnlock()
	return len(o.Ticks)
}

// CreateTestConfig returns a short-horizon configuration for tests
func CreateTestConfig() *Config {
	return &Config{
		SimulationTime: 60,
		TimeStep:       1,
		ArrivalRate:    0,
		Seed:           1,
		SpeedFactor:    1,
		CycleTime:      60,
		YellowDuration: 3,
		AllRedDuration: 2,
	}
}

// CreateSingleRoadNetwork builds a 2-node network with one directed road:
// 100m at 36 km/h with 1 lane, giving a 10 second free-flow travel time.
func CreateSingleRoadNetwork(t *testing.T) *Network {
	t.Helper()
	n := NewNetwork()
	MustAddIntersection(t, n, 1, 0, 0, Priority)
	MustAddIntersection(t, n, 2, 100, 0, Priority)
	MustAddRoad(t, n, 1, 2, 100, 36, 1)
	return n
}

// CreateDiamondNetwork builds a 4-node diamond with two routes from 1 to 4:
// a fast path through 2 and a slow path through 3. All nodes are priority.
func CreateDiamondNetwork(t *testing.T) *Network {
	t.Helper()
	n := NewNetwork()
	MustAddIntersection(t, n, 1, 0, 0, Priority)
	MustAddIntersection(t, n, 2, 500, 200, Priority)
	MustAddIntersection(t, n, 3, 500, -200, Priority)
	MustAddIntersection(t, n, 4, 1000, 0, Priority)
	MustAddRoad(t, n, 1, 2, 500, 50, 2)
	MustAddRoad(t, n, 2, 4, 500, 50, 2)
	MustAddRoad(t, n, 1, 3, 500, 30, 1)
	MustAddRoad(t, n, 3, 4, 500, 30, 1)
	MustAddRoad(t, n, 2, 1, 500, 50, 2)
	MustAddRoad(t, n, 4, 2, 500, 50, 2)
	MustAddRoad(t, n, 3, 1, 500, 30, 1)
	MustAddRoad(t, n, 4, 3, 500, 30, 1)
	return n
}

// MustAddIntersection adds an intersection or fails the test
func MustAddIntersection(t *testing.T, n *Network, id int, x, y float64, kind IntersectionKind) {
	t.Helper()
	if err := n.AddIntersection(id, x, y, kind); err != nil {
		t.Fatalf("Expected no error adding intersection %d, got: %v", id, err)
	}
}

// MustAddRoad adds a road or fails the test
func MustAddRoad(t *testing.T, n *Network, from, to int, length, speedLimit float64, lanes int) {
	t.Helper()
	if err := n.AddRoad(from, to, length, speedLimit, lanes); err != nil {
		t.Fatalf("Expected no error adding road %d->%d, got: %v", from, to, err)
	}
}

// MustNewSignal constructs a signal or fails the test
func MustNewSignal(t *testing.T, intersection int, cycleTime float64, phases []Phase) *Signal {
	t.Helper()
	s, err := NewSignal(intersection, cycleTime, phases)
	if err != nil {
		t.Fatalf("Expected no error creating signal for %d, got: %v", intersection, err)
	}
	return s
}

// AssertAtNode fails unless the vehicle stands at the given intersection
func AssertAtNode(t *testing.T, v *Vehicle, node int) {
	t.Helper()
	got, ok := v.AtNode()
	if !ok {
		t.Fatalf("Expected vehicle %d at node %d, but it is on a road", v.ID(), node)
	}
	if got != node {
		t.Errorf("Expected vehicle %d at node %d, got %d", v.ID(), node, got)
	}
}

// AssertOnRoad fails unless the vehicle is traversing the given road
func AssertOnRoad(t *testing.T, v *Vehicle, from, to int) {
	t.Helper()
	road, ok := v.OnRoad()
	if !ok {
		t.Fatalf("Expected vehicle %d on road %d->%d, but it is at a node", v.ID(), from, to)
	}
	if road.From != from || road.To != to {
		t.Errorf("Expected vehicle %d on road %d->%d, got %d->%d", v.ID(), from, to, road.From, road.To)
	}
}
