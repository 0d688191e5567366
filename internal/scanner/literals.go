package scanner

// Literal-aware mode. The scanner only needs to know where literal content
// ends; it validates nothing about the literals themselves.

// scanString consumes a single- or double-quoted string starting just past
// the opening quote. JS strings cannot span lines, so a bare newline ends
// the literal; that keeps a stray quote from swallowing the rest of the file.
func (s *Scanner) scanString(quote byte) {
	for !s.cur.EOF() {
		b := s.cur.Bump()
		switch b {
		case '\\':
			s.cur.Bump()
		case quote, '\n':
			return
		}
	}
}

// scanTemplate consumes a template literal starting just past the opening
// backtick. `${ ... }` interpolations are scanned as code, recursively, so
// brackets and nested templates inside them are still checked.
func (s *Scanner) scanTemplate(openOff uint32) {
	for !s.cur.EOF() {
		b := s.cur.Bump()
		switch b {
		case '\\':
			s.cur.Bump()
		case '`':
			s.backticks++
			s.lastBacktickOff = s.cur.Off - 1
			return
		case '$':
			if s.cur.Eat('{') {
				s.scanCode(true)
			}
		}
	}
	// EOF inside the template
	if !s.unterminatedTemplate {
		s.unterminatedTemplate = true
		s.unterminatedTemplateOff = openOff
	}
}

func (s *Scanner) skipLineComment() {
	for !s.cur.EOF() {
		if s.cur.Bump() == '\n' {
			return
		}
	}
}

func (s *Scanner) skipBlockComment() {
	for !s.cur.EOF() {
		if s.cur.Bump() == '*' && s.cur.Eat('/') {
			return
		}
	}
}
