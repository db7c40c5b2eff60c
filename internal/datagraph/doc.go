// Package datagraph is the compiled data graph of a node tree: a flat graph
// of functions whose sockets carry cty values. Authored tree sockets map onto
// data graph sockets through VTreeGraph.
//
// A Graph is immutable once built. Socket handles are small values that are
// cheap to copy and compare by identity, so they can be used as map keys.
package datagraph
