package errors

import "fmt"

// MultilinePosition renders a span for humans.
// It collapses to a single point, a column range on one line, or a range over several lines.
type MultilinePosition struct {
	Span Span
}

func NewMultilinePosition(span Span) MultilinePosition {
	return MultilinePosition{Span: span}
}

func PositionAt(location Location, filename string) MultilinePosition {
	return MultilinePosition{Span: NewSpan(location, location, filename)}
}

// lastColumn is the column of the last character inside the span.
func (self MultilinePosition) lastColumn() uint {
	if self.Span.End.Column > 1 {
		return self.Span.End.Column - 1
	}
	return self.Span.End.Column
}

func (self MultilinePosition) IsPoint() bool {
	return self.Span.IsEmpty()
}

func (self MultilinePosition) IsSingleLine() bool {
	return self.Span.Start.Line == self.Span.End.Line
}

func (self MultilinePosition) String() string {
	start := self.Span.Start

	if self.IsPoint() {
		return fmt.Sprintf("line %d, column %d", start.Line, start.Column)
	}

	if self.IsSingleLine() {
		last := self.lastColumn()
		if last == start.Column {
			return fmt.Sprintf("line %d, column %d", start.Line, start.Column)
		}
		return fmt.Sprintf("line %d, columns %d-%d", start.Line, start.Column, last)
	}

	return fmt.Sprintf(
		"from line %d:%d to line %d:%d",
		start.Line,
		start.Column,
		self.Span.End.Line,
		self.lastColumn(),
	)
}
