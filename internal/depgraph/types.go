package depgraph

// State is the traversal mark of a node during Sort.
type State int

const (
	StateUnvisited State = iota
	StateVisiting
	StateVisited
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateUnvisited:
		return "unvisited"
	case StateVisiting:
		return "visiting"
	case StateVisited:
		return "visited"
	default:
		return "unknown"
	}
}

// Edge is a directed dependency: From depends on To.
type Edge struct {
	From string
	To   string
}

// node is a single vertex. It is unexported so that callers go through the
// key-based API of Calculator.
type node[T any] struct {
	key     string
	payload T
	state   State
	// deps holds outgoing edge targets in insertion order, duplicates included.
	deps []string
}
