// Package alg defines the step-by-step visualization contract and the
// registry of available algorithms.
//
//   - [Viz]: enumerated states, each drawable onto a canvas
//   - [Series]: optional per-state scalar used by the trace command
//   - [Registry]: name to constructor mapping
//
// The algorithms themselves live in the sa and bwt subpackages.
package alg
