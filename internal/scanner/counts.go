package scanner

import (
	"bytes"
	"fmt"
)

// PairCount holds raw open/close tallies for one bracket family.
type PairCount struct {
	Open  int `msgpack:"open"`
	Close int `msgpack:"close"`
}

// Balanced reports whether the raw tallies agree. Equal tallies do not prove
// correct nesting; the positional scan decides that.
func (p PairCount) Balanced() bool {
	return p.Open == p.Close
}

// MarshalJSON renders the pair as a two-element [open, close] array.
func (p PairCount) MarshalJSON() ([]byte, error) {
	return fmt.Appendf(nil, "[%d,%d]", p.Open, p.Close), nil
}

// UnmarshalJSON accepts the [open, close] array form.
func (p *PairCount) UnmarshalJSON(data []byte) error {
	var open, closeCount int
	if _, err := fmt.Sscanf(string(data), "[%d,%d]", &open, &closeCount); err != nil {
		return fmt.Errorf("invalid pair count %q: %w", string(data), err)
	}
	p.Open = open
	p.Close = closeCount
	return nil
}

// Counts carries the raw character tallies used for the fast pre-check.
// They are always computed over the full text, independent of nesting
// correctness and of the literal-aware mode.
type Counts struct {
	Round     PairCount `json:"round" msgpack:"round"`
	Square    PairCount `json:"square" msgpack:"square"`
	Curly     PairCount `json:"curly" msgpack:"curly"`
	Backticks int       `json:"backticks" msgpack:"backticks"`
}

// Balanced reports whether every family tallies evenly and the backtick
// count is even. This is the fast pre-check; a balanced count can still
// hide nesting errors like ")(" that the scan reports.
func (c Counts) Balanced() bool {
	return c.Round.Balanced() && c.Square.Balanced() && c.Curly.Balanced() && c.Backticks%2 == 0
}

// CountRaw tallies bracket and backtick characters in content.
func CountRaw(content []byte) Counts {
	return Counts{
		Round: PairCount{
			Open:  bytes.Count(content, []byte("(")),
			Close: bytes.Count(content, []byte(")")),
		},
		Square: PairCount{
			Open:  bytes.Count(content, []byte("[")),
			Close: bytes.Count(content, []byte("]")),
		},
		Curly: PairCount{
			Open:  bytes.Count(content, []byte("{")),
			Close: bytes.Count(content, []byte("}")),
		},
		Backticks: bytes.Count(content, []byte("`")),
	}
}
