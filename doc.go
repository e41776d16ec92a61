// Package redline computes word-level "redlines" between two texts: the
// changes needed to turn a source text into a test text, rendered as
// marked-up text with deletions struck through and insertions highlighted,
// in the style of legal/editorial document comparison.
//
// Pipeline: Tokenize splits each text into an ordered sequence of word and
// whitespace tokens; Match computes an ordered edit script (equal / insert /
// delete / replace runs) over the two token sequences; Render turns the
// script into marked-up text under a selectable Style. The Redline type ties
// the three together and caches the source tokenization so many test texts
// can be compared against one source.
//
// Invariants:
//   - concat(Tokenize(text)) == text, for every input including "" .
//   - The EditOps returned by Match partition both token sequences in order:
//     source ranges are half-open, adjacent, and cover [0, len(source));
//     likewise test ranges. OpEqual ranges have identical token text,
//     OpInsert has an empty source range, OpDelete an empty test range,
//     OpReplace is non-empty on both sides.
//   - Rendered output reproduces unchanged text byte-for-byte; markup never
//     splits a token and spans never overlap.
//
// Everything here is a pure in-memory computation: no I/O, no goroutines,
// no error paths except rejection of an unknown Style at configuration time.
//
// Basic use:
//
//	out, err := redline.Compare(
//	    "The quick brown fox jumps over the lazy dog.",
//	    "The quick brown fox walks past the lazy dog.",
//	    nil,
//	)
//
// which yields the source text with "jumps over " struck through and
// "walks past " inserted after it.
package redline
