package source

import (
	"fmt"
)

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
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

// Contains reports whether other lies inside s (equal spans included).
func (s Span) Contains(other Span) bool {
	return s.File == other.File && s.Start <= other.Start && other.End <= s.End
}

// Overlaps reports whether the two spans share at least one byte. An empty
// span overlaps nothing.
func (s Span) Overlaps(other Span) bool {
	if s.Empty() || other.Empty() {
		return false
	}
	return s.File == other.File && s.Start < other.End && other.Start < s.End
}

// Cover returns the smallest span containing both.
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

// WithStart returns s moved to start at off, keeping End.
func (s Span) WithStart(off uint32) Span {
	s.Start = off
	if s.End < off {
		s.End = off
	}
	return s
}
