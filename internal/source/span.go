package source

import (
	"fmt"
)

// Span identifies a byte range inside one file of a FileSet.
type Span struct {
	File  FileID
	Start uint32 // inclusive byte offset
	End   uint32 // exclusive byte offset
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover extends the span to include other. Spans from different files
// are left untouched.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// At returns a single-byte span at the given offset.
func At(file FileID, off uint32) Span {
	return Span{File: file, Start: off, End: off + 1}
}
