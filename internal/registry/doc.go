// Package registry provides the central "glue" for the node system.
//
// The Registry stores the definitions of every node kind that may appear in
// an authored node tree: its socket layout, the data type of each socket and,
// for function nodes, the cty functions that compute its outputs. Node kinds
// are contributed by modules (see the top-level modules directory) through the
// Module interface.
//
// During application startup the registry is populated and then validated so
// that a malformed definition is caught before any tree is compiled.
package registry
