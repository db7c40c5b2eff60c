package particles

// Arena hands out per-particle buffers for a single batch. Every buffer has
// ArraySize elements, enough to be indexed by any particle index of the
// batch. Release hands all buffers back at once; they are reused by later
// allocations, so nothing obtained from the arena may be kept past Release.
//
// An Arena belongs to one batch at a time and is not safe for concurrent use.
type Arena struct {
	arraySize int
	live      []any
	free      []any
}

// NewArena creates an arena whose buffers hold arraySize elements.
func NewArena(arraySize int) *Arena {
	return &Arena{arraySize: arraySize}
}

// ArraySize returns the element count of every buffer.
func (a *Arena) ArraySize() int {
	return a.arraySize
}

// Live returns the number of buffers handed out since the last Release.
func (a *Arena) Live() int {
	return len(a.live)
}

// Allocate returns a zeroed buffer of ArraySize elements.
func Allocate[T Element](a *Arena) []T {
	for i, buf := range a.free {
		if typed, ok := buf.([]T); ok && cap(typed) >= a.arraySize {
			a.free = append(a.free[:i], a.free[i+1:]...)
			typed = typed[:a.arraySize]
			clear(typed)
			a.live = append(a.live, typed)
			return typed
		}
	}
	buf := make([]T, a.arraySize)
	a.live = append(a.live, buf)
	return buf
}

// Release returns every live buffer to the arena. Calling it more than once
// is harmless.
func (a *Arena) Release() {
	a.free = append(a.free, a.live...)
	a.live = a.live[:0]
}
