package scanner

// Family identifies one of the three bracket kinds tracked by the scanner.
type Family uint8

const (
	FamRound Family = iota
	FamSquare
	FamCurly
)

func (f Family) String() string {
	switch f {
	case FamRound:
		return "round"
	case FamSquare:
		return "square"
	case FamCurly:
		return "curly"
	}
	return "unknown"
}

// OpenByte returns the opening character of the family.
func (f Family) OpenByte() byte {
	switch f {
	case FamRound:
		return '('
	case FamSquare:
		return '['
	default:
		return '{'
	}
}

// CloseByte returns the closing character of the family.
func (f Family) CloseByte() byte {
	switch f {
	case FamRound:
		return ')'
	case FamSquare:
		return ']'
	default:
		return '}'
	}
}

// openFamily classifies an opening bracket byte.
func openFamily(b byte) (Family, bool) {
	switch b {
	case '(':
		return FamRound, true
	case '[':
		return FamSquare, true
	case '{':
		return FamCurly, true
	}
	return 0, false
}

// closeFamily classifies a closing bracket byte.
func closeFamily(b byte) (Family, bool) {
	switch b {
	case ')':
		return FamRound, true
	case ']':
		return FamSquare, true
	case '}':
		return FamCurly, true
	}
	return 0, false
}
