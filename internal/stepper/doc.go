// Package stepper implements the harness module on top of the algorithm
// registry: it tracks the selected algorithm, the current state and the
// direction of the last step, and renders frames onto a target.
package stepper
