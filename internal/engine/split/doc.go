// Package split partitions document markup into blocks and joins blocks back
// into a document.
//
// A block is a paragraph-like unit separated from its neighbours by one blank
// line. Splitting normalizes the input first:
//
//   - carriage returns are removed
//   - runs of three or more newlines collapse to exactly two
//
// SplitFenced additionally protects fenced regions so that a block such as
//
//	~~~
//	first
//
//	second
//	~~~
//
// is never cut at its inner blank line. Join is the inverse of Split for
// normalized input:
//
//	Split(Join(Split(x))) == Split(x)
package split
