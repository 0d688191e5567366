package scanner

import (
	"fmt"

	"bracelint/internal/diag"
	"bracelint/internal/source"
)

// Result is the outcome of scanning one file. Diagnostics travel through the
// Reporter supplied in Options; Result carries the raw tallies.
type Result struct {
	Counts Counts
}

// openBracket is an opening bracket waiting for its closer.
type openBracket struct {
	fam Family
	off uint32
}

// Scanner walks one file left to right and reports bracket findings. It holds
// no state between files; create a fresh one per scan.
type Scanner struct {
	cur      Cursor
	reporter diag.Reporter
	skip     bool

	// stack interleaves all three families in document order, so
	// cross-family mis-nesting like "(]" is detected.
	stack []openBracket

	backticks       int
	lastBacktickOff uint32

	// set when EOF is hit inside a template literal (literal-aware mode)
	unterminatedTemplate    bool
	unterminatedTemplateOff uint32
}

// Scan runs the bracket balance scan over file and returns the raw counts.
// The scan is total: any byte sequence completes without error.
func Scan(file *source.File, opts Options) Result {
	s := &Scanner{
		cur:      NewCursor(file),
		reporter: opts.reporter(),
		skip:     opts.SkipLiterals,
	}
	s.scanCode(false)
	s.finish()
	return Result{Counts: CountRaw(file.Content)}
}

// scanCode consumes code until EOF or, when inInterp is set, until the '}'
// that closes the current template interpolation. Interpolation closure is
// decided by counting curly braces opened within this frame, the same way a
// template-aware lexer distinguishes `}` from a block closer.
func (s *Scanner) scanCode(inInterp bool) {
	curlyDepth := 0
	for !s.cur.EOF() {
		off := s.cur.Off
		b := s.cur.Bump()

		if fam, ok := openFamily(b); ok {
			if fam == FamCurly {
				curlyDepth++
			}
			s.stack = append(s.stack, openBracket{fam: fam, off: off})
			continue
		}

		if b == '}' && inInterp && curlyDepth == 0 {
			// closes the ${ ... } interpolation, not a bracket
			return
		}

		if fam, ok := closeFamily(b); ok {
			if fam == FamCurly && curlyDepth > 0 {
				curlyDepth--
			}
			s.closeBracket(b, fam, off)
			continue
		}

		switch b {
		case '`':
			s.backticks++
			s.lastBacktickOff = off
			if s.skip {
				s.scanTemplate(off)
			}
		case '\'', '"':
			if s.skip {
				s.scanString(b)
			}
		case '/':
			if !s.skip {
				continue
			}
			if s.cur.Eat('/') {
				s.skipLineComment()
			} else if s.cur.Eat('*') {
				s.skipBlockComment()
			}
		}
	}
}

// closeBracket matches a closing bracket against the stack top.
func (s *Scanner) closeBracket(b byte, fam Family, off uint32) {
	if len(s.stack) == 0 {
		s.reporter.Report(diag.BrkUnmatchedClose, diag.SevError,
			source.At(s.cur.File.ID, off),
			fmt.Sprintf("unmatched closing '%c'", b), nil)
		return
	}

	top := s.stack[len(s.stack)-1]
	// Popping a mismatched top still consumes it, so one bad closer does
	// not cascade into false positives for the rest of the file.
	s.stack = s.stack[:len(s.stack)-1]

	if top.fam != fam {
		diag.ReportError(s.reporter, diag.BrkMismatched,
			source.At(s.cur.File.ID, off),
			fmt.Sprintf("mismatched closing '%c', expected '%c'", b, top.fam.CloseByte())).
			WithNote(source.At(s.cur.File.ID, top.off),
				fmt.Sprintf("'%c' opened here", top.fam.OpenByte())).
			Emit()
	}
}

// finish reports everything still pending once the input is exhausted.
func (s *Scanner) finish() {
	// oldest first
	for _, open := range s.stack {
		s.reporter.Report(diag.BrkUnclosedOpen, diag.SevError,
			source.At(s.cur.File.ID, open.off),
			fmt.Sprintf("unclosed '%c'", open.fam.OpenByte()), nil)
	}

	if s.skip {
		if s.unterminatedTemplate {
			s.reporter.Report(diag.BrkOddBacktickCount, diag.SevError,
				source.At(s.cur.File.ID, s.unterminatedTemplateOff),
				fmt.Sprintf("unterminated template literal; %d backticks total", s.backticks), nil)
		}
		return
	}

	if s.backticks%2 != 0 {
		s.reporter.Report(diag.BrkOddBacktickCount, diag.SevError,
			source.At(s.cur.File.ID, s.lastBacktickOff),
			fmt.Sprintf("odd number of backticks: %d total", s.backticks), nil)
	}
}
