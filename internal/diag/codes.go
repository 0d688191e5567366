package diag

import (
	"fmt"
)

// Code is a compact numeric identifier with a stable string form.
type Code uint16

const (
	// UnknownCode is the fallback for unclassified diagnostics.
	UnknownCode Code = 0

	// Bracket scan findings
	BrkInfo             Code = 1000
	BrkUnmatchedClose   Code = 1001
	BrkMismatched       Code = 1002
	BrkUnclosedOpen     Code = 1003
	BrkOddBacktickCount Code = 1004

	// I/O
	IOLoadFileError Code = 4001

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown issue",
	BrkInfo:             "Bracket scan information",
	BrkUnmatchedClose:   "Closing bracket without a matching open bracket",
	BrkMismatched:       "Closing bracket does not match the most recent open bracket",
	BrkUnclosedOpen:     "Open bracket is never closed",
	BrkOddBacktickCount: "Odd number of backticks",
	IOLoadFileError:     "I/O load file error",
	ObsInfo:             "Observability information",
	ObsTimings:          "Check run timings",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("BRK%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
