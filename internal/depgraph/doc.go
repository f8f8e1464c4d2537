// Package depgraph orders named nodes by their dependency edges.
//
// A Calculator holds a directed, possibly cyclic graph of nodes keyed by a
// unique string, each carrying an opaque payload. Sort produces a
// deterministic linear order of the payloads using a depth-first traversal
// with three-color marking:
//
//   - Nodes are seeded in the order they were added.
//   - Edges of a node are followed in the order they were added.
//   - An edge that reaches a node still being visited closes a cycle; it is
//     skipped and recorded (see CycleEdges) instead of reported as an error.
//
// The emitted postorder is reversed, so for every edge from -> to that is
// not a broken cycle edge, from appears before to in the result. Callers
// that need dependencies first (e.g. table creation) reverse the result.
//
// A Calculator is built once per operation and discarded. It performs no
// locking: Sort mutates per-node traversal state, so concurrent use of a
// single instance must be serialized by the caller.
package depgraph
