package depgraph

// Calculator computes a dependency order over nodes carrying payloads of
// type T. The zero value is not usable; create instances with New.
type Calculator[T any] struct {
	// nodes stores all nodes keyed by their unique key.
	nodes map[string]*node[T]
	// order holds node keys in insertion order; it seeds the traversal.
	order []string
	// cycleEdges holds back edges skipped by the last successful Sort.
	cycleEdges []Edge
}

// New creates an empty Calculator.
func New[T any]() *Calculator[T] {
	return &Calculator[T]{
		nodes: make(map[string]*node[T]),
	}
}

// HasNode reports whether a node with the given key exists.
func (c *Calculator[T]) HasNode(key string) bool {
	_, ok := c.nodes[key]
	return ok
}

// AddNode registers a node with a unique key and an opaque payload. It
// returns a *DuplicateNodeError if the key is already registered, leaving
// the existing node untouched.
func (c *Calculator[T]) AddNode(key string, payload T) error {
	if _, ok := c.nodes[key]; ok {
		return &DuplicateNodeError{Key: key}
	}
	c.nodes[key] = &node[T]{key: key, payload: payload}
	c.order = append(c.order, key)
	return nil
}

// AddDependency records that from depends on to. The source must already be
// registered; the target is resolved lazily and may be added later. Edges
// are kept in insertion order and are not deduplicated.
func (c *Calculator[T]) AddDependency(from, to string) error {
	n, ok := c.nodes[from]
	if !ok {
		return &UnknownNodeError{Key: from}
	}
	n.deps = append(n.deps, to)
	return nil
}

// Len returns the number of registered nodes.
func (c *Calculator[T]) Len() int {
	return len(c.order)
}

// Keys returns all node keys in insertion order.
func (c *Calculator[T]) Keys() []string {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	return keys
}

// Payload returns the payload stored under key.
func (c *Calculator[T]) Payload(key string) (T, bool) {
	n, ok := c.nodes[key]
	if !ok {
		var zero T
		return zero, false
	}
	return n.payload, true
}

// DependenciesOf returns the targets of the edges declared on key, in the
// order they were added.
func (c *Calculator[T]) DependenciesOf(key string) ([]string, error) {
	n, ok := c.nodes[key]
	if !ok {
		return nil, &UnknownNodeError{Key: key}
	}
	deps := make([]string, len(n.deps))
	copy(deps, n.deps)
	return deps, nil
}

// CycleEdges returns the edges the last successful Sort skipped because
// they led back to a node still being visited.
func (c *Calculator[T]) CycleEdges() []Edge {
	edges := make([]Edge, len(c.cycleEdges))
	copy(edges, c.cycleEdges)
	return edges
}

// Sort returns every payload exactly once. For each edge from -> to that
// does not close a cycle, from is placed before to. Cycles are broken at the
// first edge that reaches a node still being visited.
//
// If any edge targets a key that was never registered, Sort returns a
// *UnknownNodeError and leaves the calculator unchanged.
func (c *Calculator[T]) Sort() ([]T, error) {
	if err := c.validate(); err != nil {
		return nil, err
	}

	for _, n := range c.nodes {
		n.state = StateUnvisited
	}
	c.cycleEdges = nil

	postorder := make([]T, 0, len(c.order))
	var visit func(n *node[T])
	visit = func(n *node[T]) {
		n.state = StateVisiting
		for _, to := range n.deps {
			target := c.nodes[to]
			switch target.state {
			case StateVisited:
				// Already emitted.
			case StateVisiting:
				c.cycleEdges = append(c.cycleEdges, Edge{From: n.key, To: to})
			default:
				visit(target)
			}
		}
		n.state = StateVisited
		postorder = append(postorder, n.payload)
	}

	for _, key := range c.order {
		if n := c.nodes[key]; n.state != StateVisited {
			visit(n)
		}
	}

	sorted := make([]T, len(postorder))
	for i, p := range postorder {
		sorted[len(postorder)-1-i] = p
	}
	return sorted, nil
}

// validate checks that every edge target is a registered node.
func (c *Calculator[T]) validate() error {
	for _, key := range c.order {
		for _, to := range c.nodes[key].deps {
			if _, ok := c.nodes[to]; !ok {
				return &UnknownNodeError{Key: to, From: key}
			}
		}
	}
	return nil
}
