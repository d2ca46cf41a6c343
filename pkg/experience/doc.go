// Package experience bumps the experience counter stored in a profile README
// and redraws the two list items derived from it.
//
// The counter lives in an inline-code span such as
//
//	`1999 / 2200 EXP`
//
// Each update adds one point, then replaces the <li id="level"> and
// <li id="exp"> elements with freshly rendered versions. A document without
// the counter is left alone; that is not an error.
package experience
