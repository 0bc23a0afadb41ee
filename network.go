package trafficsim

import (
	"container/heap"
	"math"
)

// Per-lane saturation flow used to derive road capacity, in vehicles per hour.
const SaturationFlowPerLane = 1800.0

// IntersectionKind distinguishes signal-controlled intersections from
// priority (uncontrolled) ones.
type IntersectionKind int

const (
	// Priority intersections are always passable
	Priority IntersectionKind = iota
	// Signaled intersections gate entry onto outgoing roads by phase
	Signaled
)

func (k IntersectionKind) String() string {
	if k == Signaled {
		return "signaled"
	}
	return "priority"
}

// Movement identifies a directed movement through the network: entering the
// road that runs from From to To. It doubles as the road lookup key and as
// the member type of a signal phase's permitted set.
type Movement struct {
	From int
	To   int
}

// Intersection is a node of the road network. Intersections are created once
// at network-build time and are immutable afterwards.
type Intersection struct {
	ID   int
	X    float64 // meters
	Y    float64 // meters
	Kind IntersectionKind
}

// Road is a directed edge of the network, one per direction. TravelTime and
// Capacity are derived at insertion; CurrentFlow is the only live field and
// is reset and recounted by the simulation every tick.
type Road struct {
	From       int
	To         int
	Length     float64 // meters
	SpeedLimit float64 // km/h
	Lanes      int

	// TravelTime is the free-flow traversal time in seconds.
	TravelTime float64
	// Capacity is Lanes x SaturationFlowPerLane, in vehicles per hour.
	Capacity float64
	// CurrentFlow counts vehicles occupying this road at the start of the
	// current tick. Invariant: never negative.
	CurrentFlow int
}

// Movement returns the directed movement onto this road.
func (r *Road) Movement() Movement {
	return Movement{From: r.From, To: r.To}
}

// FlowRatio returns CurrentFlow divided by Capacity, the core congestion
// signal, or 0 when the road has no capacity.
func (r *Road) FlowRatio() float64 {
	if r.Capacity <= 0 {
		return 0
	}
	return float64(r.CurrentFlow) / r.Capacity
}

// Network is the road network: an arena of intersections indexed by id with
// adjacency lists of road indices. It supports O(1) road lookup by (from, to)
// and O(out-degree) enumeration of a node's outgoing roads.
type Network struct {
	intersections []Intersection
	roads         []Road

	nodeIndex map[int]int      // intersection id -> arena index
	roadIndex map[Movement]int // (from, to) -> road index
	outgoing  map[int][]int    // intersection id -> road indices
}

// NewNetwork returns an empty road network.
func NewNetwork() *Network {
	return &Network{
		nodeIndex: make(map[int]int),
		roadIndex: make(map[Movement]int),
		outgoing:  make(map[int][]int),
	}
}

// AddIntersection inserts an intersection. It rejects ids that already exist.
func (n *Network) AddIntersection(id int, x, y float64, kind IntersectionKind) error {
	if _, exists := n.nodeIndex[id]; exists {
		return NewDuplicateIntersectionError(id)
	}

	n.nodeIndex[id] = len(n.intersections)
	n.intersections = append(n.intersections, Intersection{ID: id, X: x, Y: y, Kind: kind})
	return nil
}

// AddRoad inserts a directed road and stores its derived free-flow travel
// time and capacity. Both endpoints must already exist and the (from, to)
// pair must be unique per direction.
func (n *Network) AddRoad(from, to int, length, speedLimit float64, lanes int) error {
	if _, exists := n.nodeIndex[from]; !exists {
		return NewIntersectionNotFoundError(from)
	}
	if _, exists := n.nodeIndex[to]; !exists {
		return NewIntersectionNotFoundError(to)
	}

	m := Movement{From: from, To: to}
	if _, exists := n.roadIndex[m]; exists {
		return NewDuplicateRoadError(from, to)
	}

	if length <= 0 {
		return NewInvalidRoadError(from, to, "length must be positive")
	}
	if speedLimit <= 0 {
		return NewInvalidRoadError(from, to, "speed limit must be positive")
	}
	if lanes < 0 {
		return NewInvalidRoadError(from, to, "lane count must not be negative")
	}

	road := Road{
		From:       from,
		To:         to,
		Length:     length,
		SpeedLimit: speedLimit,
		Lanes:      lanes,
		TravelTime: length / (speedLimit / 3.6),
		Capacity:   float64(lanes) * SaturationFlowPerLane,
	}

	idx := len(n.roads)
	n.roads = append(n.roads, road)
	n.roadIndex[m] = idx
	n.outgoing[from] = append(n.outgoing[from], idx)
	return nil
}

// Intersection returns the intersection with the given id.
func (n *Network) Intersection(id int) (*Intersection, bool) {
	idx, ok := n.nodeIndex[id]
	if !ok {
		return nil, false
	}
	return &n.intersections[idx], true
}

// HasIntersection reports whether the given id exists in the network.
func (n *Network) HasIntersection(id int) bool {
	_, ok := n.nodeIndex[id]
	return ok
}

// Road returns the road running from one intersection to another.
func (n *Network) Road(from, to int) (*Road, bool) {
	idx, ok := n.roadIndex[Movement{From: from, To: to}]
	if !ok {
		return nil, false
	}
	return &n.roads[idx], true
}

// Outgoing returns the roads leaving the given intersection.
func (n *Network) Outgoing(id int) []*Road {
	indices := n.outgoing[id]
	roads := make([]*Road, len(indices))
	for i, idx := range indices {
		roads[i] = &n.roads[idx]
	}
	return roads
}

// Incoming returns the roads arriving at the given intersection. Used by
// signal-plan construction; linear in the number of roads.
func (n *Network) Incoming(id int) []*Road {
	var roads []*Road
	for i := range n.roads {
		if n.roads[i].To == id {
			roads = append(roads, &n.roads[i])
		}
	}
	return roads
}

// Intersections returns all intersections in insertion order.
func (n *Network) Intersections() []*Intersection {
	out := make([]*Intersection, len(n.intersections))
	for i := range n.intersections {
		out[i] = &n.intersections[i]
	}
	return out
}

// Roads returns all roads in insertion order.
func (n *Network) Roads() []*Road {
	out := make([]*Road, len(n.roads))
	for i := range n.roads {
		out[i] = &n.roads[i]
	}
	return out
}

// ResetFlows zeroes CurrentFlow on every road.
func (n *Network) ResetFlows() {
	for i := range n.roads {
		n.roads[i].CurrentFlow = 0
	}
}

// TotalFlow returns the sum of CurrentFlow over all roads.
func (n *Network) TotalFlow() int {
	total := 0
	for i := range n.roads {
		total += n.roads[i].CurrentFlow
	}
	return total
}

// ShortestPath computes the minimum free-flow travel-time path between two
// intersections with Dijkstra's algorithm. Congestion is not known ahead of
// time, so live flow never enters the weight. The returned path lists
// intersection ids origin first; ok is false when no path exists.
func (n *Network) ShortestPath(origin, destination int) (path []int, cost float64, ok bool) {
	if !n.HasIntersection(origin) || !n.HasIntersection(destination) {
		return nil, 0, false
	}
	if origin == destination {
		return []int{origin}, 0, true
	}

	dist := make(map[int]float64, len(n.intersections))
	prev := make(map[int]int, len(n.intersections))
	for id := range n.nodeIndex {
		dist[id] = math.Inf(1)
	}
	dist[origin] = 0

	pq := &nodeQueue{}
	heap.Init(pq)
	heap.Push(pq, &nodeItem{node: origin, priority: 0})

	for pq.Len() > 0 {
		u := heap.Pop(pq).(*nodeItem)
		if u.node == destination {
			break
		}
		if u.priority > dist[u.node] {
			continue // stale queue entry
		}
		for _, idx := range n.outgoing[u.node] {
			road := &n.roads[idx]
			alt := dist[u.node] + road.TravelTime
			if alt < dist[road.To] {
				dist[road.To] = alt
				prev[road.To] = u.node
				heap.Push(pq, &nodeItem{node: road.To, priority: alt})
			}
		}
	}

	if math.IsInf(dist[destination], 1) {
		return nil, 0, false
	}

	for at := destination; ; {
		path = append([]int{at}, path...)
		if at == origin {
			break
		}
		at = prev[at]
	}
	return path, dist[destination], true
}

type nodeItem struct {
	node     int
	priority float64
}

type nodeQueue []*nodeItem

func (pq nodeQueue) Len() int            { return len(pq) }
func (pq nodeQueue) Less(i, j int) bool  { return pq[i].priority < pq[j].priority }
func (pq nodeQueue) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodeQueue) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodeQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	*pq = old[:n-1]
	return it
}
