package trafficsim

// Config carries the validated simulation parameters. It is constructed once
// at setup and passed by reference into the generator and simulation
// constructors; nothing in the core reads process-wide mutable state.
type Config struct {
	// SimulationTime is the run horizon in ticks.
	SimulationTime int
	// TimeStep is the simulated duration of one tick in seconds.
	TimeStep float64
	// ArrivalRate is the vehicle arrival rate in vehicles per minute.
	ArrivalRate float64
	// Seed drives the generator's randomness. Runs with equal seeds and
	// equal configuration produce identical results.
	Seed uint64
	// SpeedFactor scales how much edge time elapses per tick. Default 1.
	SpeedFactor float64

	// CycleTime is the total signal cycle length in seconds, consumed by
	// signal-plan construction.
	CycleTime float64
	// YellowDuration is the clearance yellow slice per direction group.
	YellowDuration float64
	// AllRedDuration is the all-red clearance slice per direction group.
	AllRedDuration float64

	// Workers sets the number of goroutines advancing vehicles within a
	// tick. Zero or one keeps the advance phase serial.
	Workers int

	// Debug enables the per-tick flow invariant assertion. Violations
	// indicate a defect in the tick ordering and panic instead of being
	// silently corrected.
	Debug bool
}

// DefaultConfig returns the baseline parameters of the reference scenarios.
func DefaultConfig() *Config {
	return &Config{
		SimulationTime: 300,
		TimeStep:       1,
		ArrivalRate:    5,
		Seed:           1,
		SpeedFactor:    1,
		CycleTime:      60,
		YellowDuration: 3,
		AllRedDuration: 2,
	}
}

// Validate checks every parameter and returns a ConfigurationError for the
// first violation found.
func (c *Config) Validate() error {
	if c.SimulationTime <= 0 {
		return NewConfigurationError("Config", "simulation time must be positive")
	}
	if c.TimeStep <= 0 {
		return NewConfigurationError("Config", "time step must be positive")
	}
	if c.ArrivalRate < 0 {
		return NewConfigurationError("Config", "arrival rate must not be negative")
	}
	if c.SpeedFactor <= 0 {
		return NewConfigurationError("Config", "speed factor must be positive")
	}
	if c.CycleTime <= 0 {
		return NewConfigurationError("Config", "cycle time must be positive")
	}
	if c.YellowDuration < 0 {
		return NewConfigurationError("Config", "yellow duration must not be negative")
	}
	if c.AllRedDuration < 0 {
		return NewConfigurationError("Config", "all-red duration must not be negative")
	}
	if 2*(c.YellowDuration+c.AllRedDuration) >= c.CycleTime {
		return NewConfigurationError("Config", "clearance phases leave no green time in the cycle")
	}
	if c.Workers < 0 {
		return NewConfigurationError("Config", "worker count must not be negative")
	}
	return nil
}

// ArrivalRatePerTick converts the per-minute arrival rate into the Poisson
// rate per tick.
func (c *Config) ArrivalRatePerTick() float64 {
	return c.ArrivalRate / 60.0 * c.TimeStep
}
