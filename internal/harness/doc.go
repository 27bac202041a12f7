// Package harness binds user input and an autoplay timer to an opaque
// step-through [Module].
//
//   - [Loader]: runs the module initializer once, off the event loop
//   - [Controller]: owns the play flag, the pending timer and the delay
//   - [ActionForKey], [ActionForKeyCode]: the fixed key table
//
// # Key Bindings
//
//	Left, Backspace  - previous step
//	Right, Space     - next step
//	Up, F, +         - faster (delay / 1.5)
//	Down, S, -       - slower (delay * 1.5)
//	Enter, P         - play / pause
//
// # Thread Safety
//
// A Controller is confined to one event loop. Timer firings reach it through
// the [Scheduler], which must deliver jobs on that same loop.
package harness
