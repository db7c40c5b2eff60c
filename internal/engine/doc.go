// Package engine drives the particle function compiler over a whole node
// tree. It compiles every consumer node, evaluates the compiled functions
// against particle batches described in tree files, and renders the results
// as a report.
package engine
