package particlefn

import "fmt"

// InvariantError is the panic value used when the compiler or an evaluation
// context breaks an assumption the package relies on. It is not recoverable
// in any meaningful way and is never returned as an error.
type InvariantError struct {
	Message string
}

func (e *InvariantError) Error() string {
	return "particlefn: invariant violated: " + e.Message
}

func invariant(ok bool, format string, args ...any) {
	if !ok {
		panic(&InvariantError{Message: fmt.Sprintf(format, args...)})
	}
}

func violation(format string, args ...any) {
	panic(&InvariantError{Message: fmt.Sprintf(format, args...)})
}
