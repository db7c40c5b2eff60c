// Package dag provides a small, string-keyed directed graph used to validate
// authored node trees before they are compiled. It detects cycles and yields
// a deterministic topological order that follows node insertion order.
package dag
