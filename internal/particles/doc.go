// Package particles holds the runtime side of a particle batch: attribute
// storage, the active particle index set, the time representation of the
// current step, the action context of an event, and the per-batch arena that
// computed inputs allocate from.
//
// Nothing in this package is shared between batches. Each batch brings its
// own ParticleSet, ParticleTimes and Arena, which is what allows one compiled
// particle function to be evaluated by several batches at once.
package particles
