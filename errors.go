package trafficsim

import "fmt"

// ErrorCode represents specific error conditions in the simulation core
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// Intersection was not found in the network
	ErrCodeIntersectionNotFound
	// Intersection id is already taken
	ErrCodeDuplicateIntersection
	// Road for a (from, to) pair already exists
	ErrCodeDuplicateRoad
	// Road attributes are out of range
	ErrCodeInvalidRoad
	// Signal phase durations do not sum to the cycle time
	ErrCodePhaseSumMismatch
	// Signal attributes are out of range
	ErrCodeInvalidSignal
	// Configuration value is invalid
	ErrCodeInvalidConfiguration
	// Simulation state is inconsistent (malformed route, missing road)
	ErrCodeInvalidSimulationState
)

// NetworkError represents road-network construction errors
type NetworkError struct {
	Code    ErrorCode
	From    int
	To      int
	Message string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error [%d->%d]: %s", e.From, e.To, e.Message)
}

// NewIntersectionNotFoundError creates a new intersection not found error
func NewIntersectionNotFoundError(id int) *NetworkError {
	return &NetworkError{
		Code:    ErrCodeIntersectionNotFound,
		From:    id,
		To:      id,
		Message: fmt.Sprintf("intersection %d does not exist", id),
	}
}

// NewDuplicateIntersectionError creates a new duplicate intersection error
func NewDuplicateIntersectionError(id int) *NetworkError {
	return &NetworkError{
		Code:    ErrCodeDuplicateIntersection,
		From:    id,
		To:      id,
		Message: fmt.Sprintf("intersection %d already exists", id),
	}
}

// NewDuplicateRoadError creates a new duplicate road error
func NewDuplicateRoadError(from, to int) *NetworkError {
	return &NetworkError{
		Code:    ErrCodeDuplicateRoad,
		From:    from,
		To:      to,
		Message: fmt.Sprintf("road %d->%d already exists", from, to),
	}
}

// NewInvalidRoadError creates a new invalid road error
func NewInvalidRoadError(from, to int, reason string) *NetworkError {
	return &NetworkError{
		Code:    ErrCodeInvalidRoad,
		From:    from,
		To:      to,
		Message: reason,
	}
}

// SignalError represents signal construction errors
type SignalError struct {
	Code         ErrorCode
	Intersection int
	Message      string
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("signal error [intersection %d]: %s", e.Intersection, e.Message)
}

// NewPhaseSumMismatchError creates a new phase duration sum error
func NewPhaseSumMismatchError(intersection int, sum, cycleTime float64) *SignalError {
	return &SignalError{
		Code:         ErrCodePhaseSumMismatch,
		Intersection: intersection,
		Message:      fmt.Sprintf("phase durations sum to %gs, cycle time is %gs", sum, cycleTime),
	}
}

// NewInvalidSignalError creates a new invalid signal error
func NewInvalidSignalError(intersection int, reason string) *SignalError {
	return &SignalError{
		Code:         ErrCodeInvalidSignal,
		Intersection: intersection,
		Message:      reason,
	}
}

// ConfigurationError represents setup-time configuration issues
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// SimulationError represents fatal inconsistencies detected before the tick
// loop starts: malformed routes, roads missing for a route step, and the like.
// The loop itself performs no I/O and cannot fail once given valid state.
type SimulationError struct {
	Code      ErrorCode
	VehicleID int
	Message   string
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("simulation error [vehicle %d]: %s", e.VehicleID, e.Message)
}

// NewSimulationStateError creates a new invalid simulation state error
func NewSimulationStateError(vehicleID int, reason string) *SimulationError {
	return &SimulationError{
		Code:      ErrCodeInvalidSimulationState,
		VehicleID: vehicleID,
		Message:   reason,
	}
}

// IsNetworkError checks if an error is a NetworkError
func IsNetworkError(err error) bool {
	_, ok := err.(*NetworkError)
	return ok
}

// IsSignalError checks if an error is a SignalError
func IsSignalError(err error) bool {
	_, ok := err.(*SignalError)
	return ok
}

// IsConfigurationError checks if an error is a ConfigurationError
func IsConfigurationError(err error) bool {
	_, ok := err.(*ConfigurationError)
	return ok
}

// IsSimulationError checks if an error is a SimulationError
func IsSimulationError(err error) bool {
	_, ok := err.(*SimulationError)
	return ok
}

// GetErrorCode returns the error code for known error types
func GetErrorCode(err error) ErrorCode {
	switch e := err.(type) {
	case *NetworkError:
		return e.Code
	case *SignalError:
		return e.Code
	case *SimulationError:
		return e.Code
	case *ConfigurationError:
		return ErrCodeInvalidConfiguration
	default:
		return ErrCodeNone
	}
}
