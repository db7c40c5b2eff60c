// Package particlefn compiles the data inputs of a consumer node into a
// particle function.
//
// A consumer node (a force, an event, an action) reads data computed by the
// function nodes upstream of it. Some of those inputs only depend on
// constants, others transitively read particle info or collision info
// placeholders and therefore differ per particle. Create splits the inputs
// into these two groups and builds one function for each:
//
//   - the static function has no parameters and is evaluated once per batch;
//   - the dynamic function takes one parameter per placeholder dependency and
//     is evaluated once per particle.
//
// Every dependency of the dynamic function is paired with an InputProvider
// that produces its per-particle values from the batch being evaluated.
//
// Broken internal consistency, such as an unknown placeholder kind or a
// missing attribute, panics with an *InvariantError. Errors returned from
// Create are ordinary build failures.
package particlefn
