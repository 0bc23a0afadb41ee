package trafficsim

// NotCompleted is the sentinel completion time of a vehicle still in transit.
const NotCompleted = -1.0

// vehicleLocation tags the two mutually exclusive position states of a
// vehicle: standing at an intersection or traversing a road. The tag makes
// the "at a node XOR on an edge" duality a real sum type instead of two
// optional fields kept exclusive by convention.
type vehicleLocation int

const (
	locAtNode vehicleLocation = iota
	locOnRoad
)

// Vehicle is one simulated trip. A vehicle is created by the generator at a
// scheduled entry tick and never removed: after reaching the last node of
// its route it persists in a completed state for metrics purposes.
type Vehicle struct {
	id          int
	origin      int
	destination int
	route       []int // intersection ids, immutable once computed
	entryTime   float64

	loc      vehicleLocation
	node     int   // current intersection, valid when at a node
	road     *Road // current road, valid when on a road
	routePos int   // index into route of the current (or departed) node

	// travelTimeRemaining counts down the seconds left on the current road.
	travelTimeRemaining float64
	// progress is the traversed fraction of the current road, in [0, 1].
	// Observation only; it never feeds back into the physics.
	progress float64

	totalWaitTime  float64
	completionTime float64
}

// NewVehicle creates a vehicle at its origin node. An empty route degrades
// to the single origin node, matching the generator's no-path fallback.
func NewVehicle(id, origin, destination int, route []int, entryTime float64) *Vehicle {
	if len(route) == 0 {
		route = []int{origin}
	}
	return &Vehicle{
		id:             id,
		origin:         origin,
		destination:    destination,
		route:          route,
		entryTime:      entryTime,
		loc:            locAtNode,
		node:           route[0],
		completionTime: NotCompleted,
	}
}

// ID returns the vehicle id.
func (v *Vehicle) ID() int {
	return v.id
}

// Origin returns the origin intersection id.
func (v *Vehicle) Origin() int {
	return v.origin
}

// Destination returns the destination intersection id.
func (v *Vehicle) Destination() int {
	return v.destination
}

// Route returns a copy of the vehicle's route.
func (v *Vehicle) Route() []int {
	out := make([]int, len(v.route))
	copy(out, v.route)
	return out
}

// EntryTime returns the simulated time at which the vehicle may start.
func (v *Vehicle) EntryTime() float64 {
	return v.entryTime
}

// TotalWaitTime returns the accumulated seconds spent signal-blocked.
func (v *Vehicle) TotalWaitTime() float64 {
	return v.totalWaitTime
}

// CompletionTime returns the simulated time at which the vehicle reached the
// last node of its route, or NotCompleted while still in transit.
func (v *Vehicle) CompletionTime() float64 {
	return v.completionTime
}

// Completed reports whether the vehicle has finished its route.
func (v *Vehicle) Completed() bool {
	return v.completionTime != NotCompleted
}

// AtNode returns the current intersection id when the vehicle is at a node.
func (v *Vehicle) AtNode() (int, bool) {
	if v.loc != locAtNode {
		return 0, false
	}
	return v.node, true
}

// OnRoad returns the current road when the vehicle is traversing one.
func (v *Vehicle) OnRoad() (*Road, bool) {
	if v.loc != locOnRoad {
		return nil, false
	}
	return v.road, true
}

// TravelTimeRemaining returns the seconds left on the current road, or 0
// when the vehicle is at a node.
func (v *Vehicle) TravelTimeRemaining() float64 {
	if v.loc != locOnRoad {
		return 0
	}
	return v.travelTimeRemaining
}

// Progress returns the traversed fraction of the current road.
func (v *Vehicle) Progress() float64 {
	if v.loc != locOnRoad {
		return 0
	}
	return v.progress
}

// atLastNode reports whether the vehicle stands at the final route node.
func (v *Vehicle) atLastNode() bool {
	return v.loc == locAtNode && v.routePos == len(v.route)-1
}

// nextNode returns the route node after the current one.
func (v *Vehicle) nextNode() (int, bool) {
	if v.loc != locAtNode || v.routePos+1 >= len(v.route) {
		return 0, false
	}
	return v.route[v.routePos+1], true
}

// enterRoad transitions at-node -> on-road with the given congested
// traversal time.
func (v *Vehicle) enterRoad(road *Road, travelTime float64) {
	v.loc = locOnRoad
	v.road = road
	v.travelTimeRemaining = travelTime
	v.progress = 0
}

// arrive transitions on-road -> at-node at the road's destination.
func (v *Vehicle) arrive() {
	v.node = v.road.To
	v.road = nil
	v.loc = locAtNode
	v.routePos++
	v.travelTimeRemaining = 0
	v.progress = 0
}

// wait accumulates signal-blocked time at a node.
func (v *Vehicle) wait(dt float64) {
	v.totalWaitTime += dt
}

// markCompleted records the first-time completion of the route.
func (v *Vehicle) markCompleted(now float64) {
	if v.completionTime == NotCompleted {
		v.completionTime = now
	}
}
