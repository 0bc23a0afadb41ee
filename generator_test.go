package trafficsim

import (
	"reflect"
	"testing"
)

func TestNewGenerator_RequiresTwoEntryNodes(t *testing.T) {
	n := CreateDiamondNetwork(t)
	cfg := CreateTestConfig()

	if _, err := NewGenerator(n, []int{1}, cfg); err == nil {
		t.Error("Expected error with a single entry node")
	}
	if _, err := NewGenerator(n, []int{1, 99}, cfg); err == nil {
		t.Error("Expected error with an unknown entry node")
	}
	if _, err := NewGenerator(n, []int{1, 4}, cfg); err != nil {
		t.Errorf("Expected no error with two valid entry nodes, got: %v", err)
	}
}

func TestGenerator_ZeroArrivalRate(t *testing.T) {
	n := CreateDiamondNetwork(t)
	cfg := CreateTestConfig()
	cfg.ArrivalRate = 0
	cfg.SimulationTime = 1000

	gen, err := NewGenerator(n, []int{1, 4}, cfg)
	if err != nil {
		t.Fatalf("Expected no error creating generator, got: %v", err)
	}

	if vehicles := gen.Generate(); len(vehicles) != 0 {
		t.Errorf("Expected zero vehicles with arrival rate 0, got %d", len(vehicles))
	}
}

func TestGenerator_FixedSeedIsDeterministic(t *testing.T) {
	cfg := CreateTestConfig()
	cfg.ArrivalRate = 10
	cfg.SimulationTime = 120
	cfg.Seed = 42

	generate := func() []*Vehicle {
		n := CreateDiamondNetwork(t)
		gen, err := NewGenerator(n, []int{1, 2, 3, 4}, cfg)
		if err != nil {
			t.Fatalf("Expected no error creating generator, got: %v", err)
		}
		return gen.Generate()
	}

	first := generate()
	second := generate()

	if len(first) == 0 {
		t.Fatal("Expected the scenario to generate vehicles")
	}
	if len(first) != len(second) {
		t.Fatalf("Expected identical population sizes, got %d and %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.ID() != b.ID() || a.Origin() != b.Origin() || a.Destination() != b.Destination() ||
			a.EntryTime() != b.EntryTime() || !reflect.DeepEqual(a.Route(), b.Route()) {
			t.Fatalf("Expected identical vehicle %d across runs", a.ID())
		}
	}
}

func TestGenerator_DistinctOriginDestination(t *testing.T) {
	n := CreateDiamondNetwork(t)
	cfg := CreateTestConfig()
	cfg.ArrivalRate = 30
	cfg.SimulationTime = 60

	gen, err := NewGenerator(n, []int{1, 2, 3, 4}, cfg)
	if err != nil {
		t.Fatalf("Expected no error creating generator, got: %v", err)
	}

	vehicles := gen.Generate()
	if len(vehicles) == 0 {
		t.Fatal("Expected the scenario to generate vehicles")
	}
	for _, v := range vehicles {
		if v.Origin() == v.Destination() {
			t.Fatalf("Expected distinct endpoints, vehicle %d has %d->%d", v.ID(), v.Origin(), v.Destination())
		}
	}
}

func TestGenerator_RoutesFollowExistingRoads(t *testing.T) {
	n := CreateDiamondNetwork(t)
	cfg := CreateTestConfig()
	cfg.ArrivalRate = 20
	cfg.SimulationTime = 60

	gen, err := NewGenerator(n, []int{1, 2, 3, 4}, cfg)
	if err != nil {
		t.Fatalf("Expected no error creating generator, got: %v", err)
	}

	for _, v := range gen.Generate() {
		route := v.Route()
		if route[0] != v.Origin() {
			t.Fatalf("Expected route of vehicle %d to start at its origin", v.ID())
		}
		for i := 0; i+1 < len(route); i++ {
			if _, ok := n.Road(route[i], route[i+1]); !ok {
				t.Fatalf("Expected road %d->%d on route of vehicle %d", route[i], route[i+1], v.ID())
			}
		}
		if v.EntryTime() < 0 || v.EntryTime() >= float64(cfg.SimulationTime)*cfg.TimeStep {
			t.Fatalf("Expected entry time of vehicle %d inside the horizon, got %g", v.ID(), v.EntryTime())
		}
	}
}

func TestGenerator_NoPathFallsBackToSingleNode(t *testing.T) {
	// Two disconnected intersections: no trip between them has a route.
	n := NewNetwork()
	MustAddIntersection(t, n, 1, 0, 0, Priority)
	MustAddIntersection(t, n, 2, 100, 0, Priority)

	cfg := CreateTestConfig()
	cfg.ArrivalRate = 30
	cfg.SimulationTime = 30

	gen, err := NewGenerator(n, []int{1, 2}, cfg)
	if err != nil {
		t.Fatalf("Expected no error creating generator, got: %v", err)
	}

	vehicles := gen.Generate()
	if len(vehicles) == 0 {
		t.Fatal("Expected the scenario to generate vehicles")
	}
	for _, v := range vehicles {
		route := v.Route()
		if len(route) != 1 || route[0] != v.Origin() {
			t.Fatalf("Expected degenerate single-node route for vehicle %d, got %v", v.ID(), route)
		}
	}
}
