// Package integration_tests runs whole node trees through the application:
// loading, tree validation, compilation and batch evaluation.
package integration_tests
