package fn

import "fmt"

// BuildError reports why a function could not be built.
type BuildError struct {
	// Function is the name the function was requested with.
	Function string
	// Socket describes the offending socket, if any.
	Socket string
	Reason string
}

func (e *BuildError) Error() string {
	if e.Socket == "" {
		return fmt.Sprintf("cannot build function %q: %s", e.Function, e.Reason)
	}
	return fmt.Sprintf("cannot build function %q: %s: %s", e.Function, e.Socket, e.Reason)
}
