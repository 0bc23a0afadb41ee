package trafficsim

import "math"

// phaseSumTolerance absorbs float accumulation error when checking that
// phase durations tile the cycle exactly.
const phaseSumTolerance = 1e-9

// Phase is one ordered slice of a signal cycle: a duration in seconds and
// the set of directed movements permitted while the phase is active.
type Phase struct {
	Duration  float64
	permitted map[Movement]bool
	movements []Movement // insertion order, for deterministic enumeration
}

// NewPhase creates a phase permitting the given movements for the given
// duration.
func NewPhase(duration float64, movements ...Movement) Phase {
	p := Phase{
		Duration:  duration,
		permitted: make(map[Movement]bool, len(movements)),
	}
	for _, m := range movements {
		if !p.permitted[m] {
			p.permitted[m] = true
			p.movements = append(p.movements, m)
		}
	}
	return p
}

// Permits reports whether the movement is allowed during this phase.
func (p *Phase) Permits(m Movement) bool {
	return p.permitted[m]
}

// Movements returns the permitted movements in insertion order.
func (p *Phase) Movements() []Movement {
	out := make([]Movement, len(p.movements))
	copy(out, p.movements)
	return out
}

// Signal is the cyclic phase state machine of one intersection. Its state is
// the elapsed time within the cycle; the active phase is the one whose
// interval [elapsed, elapsed+duration) contains it. Signals are created once
// from the network topology and only ever advance; they are never destroyed
// during a run.
type Signal struct {
	intersection int
	cycleTime    float64
	phases       []Phase
	currentTime  float64
	cycles       int // completed full cycles, diagnostic only
}

// NewSignal creates a signal for the given intersection. The sum of phase
// durations must equal the cycle time exactly: a mistimed cycle is a
// configuration bug, not a runtime condition to normalize away.
func NewSignal(intersection int, cycleTime float64, phases []Phase) (*Signal, error) {
	if cycleTime <= 0 {
		return nil, NewInvalidSignalError(intersection, "cycle time must be positive")
	}

	sum := 0.0
	for i := range phases {
		if phases[i].Duration <= 0 {
			return nil, NewInvalidSignalError(intersection, "phase durations must be positive")
		}
		sum += phases[i].Duration
	}
	if len(phases) > 0 && math.Abs(sum-cycleTime) > phaseSumTolerance {
		return nil, NewPhaseSumMismatchError(intersection, sum, cycleTime)
	}

	return &Signal{
		intersection: intersection,
		cycleTime:    cycleTime,
		phases:       phases,
	}, nil
}

// Intersection returns the id of the controlled intersection.
func (s *Signal) Intersection() int {
	return s.intersection
}

// CycleTime returns the total cycle length in seconds.
func (s *Signal) CycleTime() float64 {
	return s.cycleTime
}

// CurrentTime returns the elapsed time within the current cycle,
// in [0, cycleTime).
func (s *Signal) CurrentTime() float64 {
	return s.currentTime
}

// Cycles returns the number of completed full cycles.
func (s *Signal) Cycles() int {
	return s.cycles
}

// Phases returns the signal's phase list.
func (s *Signal) Phases() []Phase {
	return s.phases
}

// Advance moves the cycle clock forward by dt seconds, wrapping modulo the
// cycle time. A wrap past zero increments the cycle counter.
func (s *Signal) Advance(dt float64) {
	t := s.currentTime + dt
	if t >= s.cycleTime {
		s.cycles += int(t / s.cycleTime)
		t = math.Mod(t, s.cycleTime)
	}
	s.currentTime = t
}

// ActivePhase returns the index and phase whose interval contains the
// current cycle time. A signal with no phases has no active phase.
func (s *Signal) ActivePhase() (int, *Phase) {
	elapsed := 0.0
	for i := range s.phases {
		if s.currentTime >= elapsed && s.currentTime < elapsed+s.phases[i].Duration {
			return i, &s.phases[i]
		}
		elapsed += s.phases[i].Duration
	}
	return -1, nil
}

// IsGreen reports whether the movement is permitted at the current cycle
// time. A signal with no phases fails open: always green.
func (s *Signal) IsGreen(m Movement) bool {
	if len(s.phases) == 0 {
		return true
	}
	_, phase := s.ActivePhase()
	if phase == nil {
		return false
	}
	return phase.Permits(m)
}

// PermittedMovements returns the movements allowed by the active phase.
func (s *Signal) PermittedMovements() []Movement {
	if len(s.phases) == 0 {
		return nil
	}
	_, phase := s.ActivePhase()
	if phase == nil {
		return nil
	}
	return phase.Movements()
}

// SignalSystem holds the signals of a network keyed by intersection id and
// answers green/red queries for any movement. Intersections without a signal
// are priority intersections: always passable.
type SignalSystem struct {
	signals map[int]*Signal
}

// NewSignalSystem returns an empty signal system.
func NewSignalSystem() *SignalSystem {
	return &SignalSystem{signals: make(map[int]*Signal)}
}

// Add registers a signal. Each intersection holds at most one signal.
func (ss *SignalSystem) Add(s *Signal) error {
	if _, exists := ss.signals[s.intersection]; exists {
		return NewInvalidSignalError(s.intersection, "intersection already has a signal")
	}
	ss.signals[s.intersection] = s
	return nil
}

// Signal returns the signal controlling the given intersection.
func (ss *SignalSystem) Signal(intersection int) (*Signal, bool) {
	s, ok := ss.signals[intersection]
	return s, ok
}

// Signals returns all registered signals keyed by intersection id.
func (ss *SignalSystem) Signals() map[int]*Signal {
	return ss.signals
}

// Len returns the number of registered signals.
func (ss *SignalSystem) Len() int {
	return len(ss.signals)
}

// Advance moves every signal forward by dt seconds. Signals are independent
// of each other.
func (ss *SignalSystem) Advance(dt float64) {
	for _, s := range ss.signals {
		s.Advance(dt)
	}
}

// IsGreen reports whether the movement may proceed. The query delegates to
// the signal at the movement's from-node if one exists; an unsignaled
// intersection is always green.
func (ss *SignalSystem) IsGreen(m Movement) bool {
	s, ok := ss.signals[m.From]
	if !ok {
		return true
	}
	return s.IsGreen(m)
}

// TotalCycles returns the sum of completed cycles over all signals,
// diagnostic only.
func (ss *SignalSystem) TotalCycles() int {
	total := 0
	for _, s := range ss.signals {
		total += s.cycles
	}
	return total
}
