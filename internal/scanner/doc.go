// Package scanner implements the bracket balance scan: a single
// left-to-right pass over one file that tracks nested bracket context on a
// combined stack and reports unmatched, mismatched and unclosed brackets
// with byte-accurate positions, plus backtick parity for template literals.
//
// The combined stack interleaves round, square and curly brackets in true
// document order, which is what lets the scan flag cross-family mis-nesting
// such as "( ] )". A mismatched closer pops the stack top anyway so that a
// single typo does not cascade into a wall of follow-up findings.
//
// The scan is a pure function of its input: linear time, space bounded by
// the maximum nesting depth, no failure modes of its own. File access and
// decode errors belong to the caller (see internal/driver) and surface as
// IO diagnostics, never as scanner state.
//
// Options.SkipLiterals switches on the literal-aware mode, a minimal JS/TS
// lexer that excludes the interiors of strings, template literals and
// comments from bracket accounting while still scanning template
// interpolations (`${...}`) as code. Raw character tallies (Counts) are
// full-text in both modes.
package scanner
