package trafficsim

import (
	"context"
	"testing"
)

func TestRunScenario(t *testing.T) {
	n := CreateDiamondNetwork(t)
	cfg := CreateTestConfig()
	cfg.ArrivalRate = 10
	cfg.SimulationTime = 240

	observer := NewTestObserver()
	results, err := RunScenario(context.Background(), n, nil, []int{1, 2, 3, 4}, cfg, observer)
	if err != nil {
		t.Fatalf("Expected no error running scenario, got: %v", err)
	}

	if results.RunID == "" {
		t.Error("Expected a run id")
	}
	if results.Generated == 0 {
		t.Fatal("Expected the scenario to generate vehicles")
	}
	if results.Completed == 0 {
		t.Error("Expected completions on a connected network over 4 minutes")
	}
	if results.Completed > results.Generated {
		t.Error("Expected completions not to exceed the generated population")
	}
	if len(results.Records) != results.Generated {
		t.Errorf("Expected %d records, got %d", results.Generated, len(results.Records))
	}
	if observer.TickCount() != cfg.SimulationTime {
		t.Errorf("Expected %d ticks observed, got %d", cfg.SimulationTime, observer.TickCount())
	}
	if len(observer.Completions) != results.Completed {
		t.Errorf("Expected %d completion notifications, got %d",
			results.Completed, len(observer.Completions))
	}
}

func TestRunScenario_PropagatesSetupErrors(t *testing.T) {
	n := CreateDiamondNetwork(t)
	cfg := CreateTestConfig()

	if _, err := RunScenario(context.Background(), n, nil, []int{1}, cfg); err == nil {
		t.Error("Expected error with too few entry nodes")
	}

	bad := CreateTestConfig()
	bad.SimulationTime = 0
	if _, err := RunScenario(context.Background(), n, nil, []int{1, 4}, bad); err == nil {
		t.Error("Expected error with invalid configuration")
	}
}
