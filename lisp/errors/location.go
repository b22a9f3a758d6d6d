package errors

import (
	"fmt"
	"unicode/utf8"
)

type Location struct {
	Line   uint
	Column uint
	// Byte offset into the source.
	Index uint
}

func NewLocation() Location {
	return Location{
		Line:   1,
		Column: 1,
		Index:  0,
	}
}

// Advance moves the location past `char`.
// A newline resets the column and starts a new line, any other character occupies one column.
func (self *Location) Advance(char rune) {
	width := utf8.RuneLen(char)
	if width < 0 {
		// invalid runes were decoded from a single byte
		width = 1
	}
	self.Index += uint(width)

	if char == '\n' {
		self.Column = 1
		self.Line += 1
	} else {
		self.Column += 1
	}
}

func (self Location) Before(other Location) bool { return self.Index < other.Index }

func (self Location) String() string { return fmt.Sprintf("%d:%d", self.Line, self.Column) }
