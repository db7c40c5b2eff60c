package particles

// ParticleTimes tells computed inputs what "now" means for each particle of
// the batch. It is a closed set: CurrentTimes or DurationAndEnd.
type ParticleTimes interface {
	isParticleTimes()
}

// CurrentTimes carries the absolute current time of every particle.
type CurrentTimes struct {
	Times []float32
}

// DurationAndEnd carries the remaining duration of every particle and the
// shared end time of the step.
type DurationAndEnd struct {
	RemainingDurations []float32
	EndTime            float32
}

func (CurrentTimes) isParticleTimes()   {}
func (DurationAndEnd) isParticleTimes() {}
