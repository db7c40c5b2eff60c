// Package fn turns a selection of data graph sockets into an invocable
// function.
//
// A Builder collects the boundary of the function: the sockets that become
// its positional inputs and the sockets whose values it returns. Build checks
// that every output can be computed from the inputs and constants alone and
// attaches an interpreted body. AttachProgramBody is an optional second step
// that flattens the function graph into a fixed instruction list, which makes
// repeated calls cheaper; results are identical with or without it.
//
// Built functions are immutable and safe for concurrent use.
package fn
