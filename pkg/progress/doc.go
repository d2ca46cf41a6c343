// Package progress converts raw experience numbers into the pieces shown on
// a profile README: a fixed-width glyph bar and a level derived from a
// triangular cost curve.
//
// # Levels
//
// Level L costs [BaseLevelCost]*L experience to complete, so the cumulative
// cost of reaching level L+1 is BaseLevelCost*L*(L+1)/2:
//
//	CalculateLevel(0)   // {Current: 1, Next: 2, ToNext: 400}
//	CalculateLevel(400) // {Current: 2, Next: 3, ToNext: 800}
//
// # Bars
//
//	Bar(50, DefaultBarWidth) // "███████░░░░░░░"
package progress
