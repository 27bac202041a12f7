// Package canvas defines the drawing surface shared by every backend.
//
// Algorithms draw in pixel coordinates through [Canvas], usually via the
// grid helpers that position cells of [CellSize] pixels:
//
//   - [Pos]: cell coordinate with Left/Right/Up/Down offsets
//   - [DrawCharBox], [DrawString]: filled cells holding one character
//   - [DrawHighlight], [DrawHighlightBox]: coloured frames and rules
//   - [DrawLabel], [DrawText]: centred and left-aligned text
//
// Backends live elsewhere: the terminal grid in viz, the raylib window in
// gui, SVG in export and the HTML canvas in the wasm command.
package canvas
