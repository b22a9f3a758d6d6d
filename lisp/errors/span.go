package errors

import "fmt"

// Half-open range: `End` is the location directly after the last character.
type Span struct {
	Start    Location
	End      Location
	Filename string
}

func NewSpan(start Location, end Location, filename string) Span {
	return Span{
		Start:    start,
		End:      end,
		Filename: filename,
	}
}

// Cover returns the smallest span containing both `self` and `other`.
func (self Span) Cover(other Span) Span {
	return Cover(self, other)
}

func Cover(a Span, b Span) Span {
	res := a
	if b.Start.Before(res.Start) {
		res.Start = b.Start
	}
	if res.End.Before(b.End) {
		res.End = b.End
	}
	if res.Filename == "" {
		res.Filename = b.Filename
	}
	return res
}

func (self Span) IsEmpty() bool { return self.Start.Index == self.End.Index }

func (self Span) Len() uint { return self.End.Index - self.Start.Index }

// Slice returns the part of `source` covered by this span.
// Out-of-range spans are clamped to the source.
func (self Span) Slice(source string) string {
	start, end := int(self.Start.Index), int(self.End.Index)
	if start > len(source) {
		start = len(source)
	}
	if end > len(source) {
		end = len(source)
	}
	if end < start {
		end = start
	}
	return source[start:end]
}

func (self Span) String() string {
	return fmt.Sprintf("%s..%s", self.Start, self.End)
}
