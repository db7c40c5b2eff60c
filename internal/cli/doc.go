// Package cli turns command-line arguments and PARTICLEFN_* environment
// variables into a validated app.Config. Usage errors are reported as
// ExitError with exit code 2.
package cli
