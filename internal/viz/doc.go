// Package viz is the terminal front-end. It rasterizes algorithm frames
// onto character cells and drives a harness controller from a Bubble Tea
// program.
//
//   - [Model]: live stepping view for one set of parameters
//   - [Canvas]: cell canvas, three characters per grid cell
//   - the preset picker started by [RunInteractive]
//
// # Key Bindings
//
//	←/Backspace  previous step
//	→/Space      next step
//	↑/F/+        faster autoplay
//	↓/S/-        slower autoplay
//	Enter/P      play or pause
//	R            reset with the current parameters
//	A            switch algorithm
//	T            cycle colour themes
//	?            help
package viz
