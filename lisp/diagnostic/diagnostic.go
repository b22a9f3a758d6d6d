package diagnostic

import (
	"fmt"
	"strings"

	"github.com/smarthome-go/lisp/lisp/errors"
	"golang.org/x/text/width"
)

type DiagnosticLevel uint8

const (
	DiagnosticLevelHint DiagnosticLevel = iota
	DiagnosticLevelInfo
	DiagnosticLevelWarning
	DiagnosticLevelError
)

func (self DiagnosticLevel) String() string {
	switch self {
	case DiagnosticLevelHint:
		return "Hint"
	case DiagnosticLevelInfo:
		return "Info"
	case DiagnosticLevelWarning:
		return "Warning"
	case DiagnosticLevelError:
		return "Error"
	default:
		panic("A new diagnostic level was added without updating this code")
	}
}

func (self DiagnosticLevel) color() uint8 {
	switch self {
	case DiagnosticLevelHint:
		return 5 // magenta
	case DiagnosticLevelInfo:
		return 4 // blue
	case DiagnosticLevelWarning:
		return 3 // yellow
	case DiagnosticLevelError:
		return 1 // red
	default:
		panic("A new diagnostic level was added without updating this code")
	}
}

//
// Diagnostic
//

type Diagnostic struct {
	Level   DiagnosticLevel `json:"level"`
	Kind    string          `json:"kind"` // error kind such as `InvalidNumber`, empty for hints
	Message string          `json:"message"`
	Notes   []string        `json:"notes"`
	Span    errors.Span     `json:"span"`
}

// String is the single-line form: `<Kind>: <message> at <position>`.
func (self Diagnostic) String() string {
	kind := self.Kind
	if kind == "" {
		kind = self.Level.String()
	}
	return fmt.Sprintf("%s: %s at %s", kind, self.Message, errors.NewMultilinePosition(self.Span))
}

// Display renders the diagnostic together with the surrounding source lines and markers below the span.
func (self Diagnostic) Display(program string, useColor bool) string {
	paint := func(color uint8, bold bool) string {
		if !useColor {
			return ""
		}
		return ansiCol(color, bold)
	}
	reset := ""
	if useColor {
		reset = "\x1b[0m"
	}

	singleMarker := "^"
	markerMul := "~"
	if self.Level == DiagnosticLevelError {
		markerMul = "^"
	}
	color := self.Level.color() + 30

	notes := ""
	for _, note := range self.Notes {
		notes += fmt.Sprintf("%s - note:%s %s\n", paint(36, true), reset, note)
	}

	heading := self.Level.String()
	if self.Kind != "" {
		heading = fmt.Sprintf("%s[%s]", self.Level, self.Kind)
	}

	lines := strings.Split(program, "\n")

	// take special action if there is no useful span / the source code is empty
	if self.Span.Start.Line == 0 || int(self.Span.Start.Line) > len(lines) {
		return fmt.Sprintf(
			"%s%s%s in %s%s\n%s\n%s",
			paint(color, true),
			heading,
			paint(39, true),
			self.Span.Filename,
			reset,
			self.Message,
			notes,
		)
	}

	startLine := lines[self.Span.Start.Line-1]

	line1 := ""
	if self.Span.Start.Line > 1 {
		line1 = fmt.Sprintf("\n %s%- 3d | %s%s", paint(90, false), self.Span.Start.Line-1, reset, lines[self.Span.Start.Line-2])
	}
	line2 := fmt.Sprintf(" %s%- 3d | %s%s", paint(90, false), self.Span.Start.Line, reset, startLine)
	line3 := ""
	if int(self.Span.Start.Line) < len(lines) && self.Span.End.Line > self.Span.Start.Line {
		line3 = fmt.Sprintf("\n %s%- 3d | %s%s", paint(90, false), self.Span.Start.Line+1, reset, lines[self.Span.Start.Line])
	}

	markers := ""
	if self.Span.Start.Line == self.Span.End.Line {
		text := self.Span.Slice(program)
		if displayWidth(text) <= 1 {
			markers = singleMarker
		} else {
			markers = strings.Repeat(markerMul, displayWidth(text))
		}
	} else {
		// multiline span
		s := "s"
		if self.Span.End.Line-self.Span.Start.Line == 1 {
			s = ""
		}

		rest := ""
		if int(self.Span.Start.Column) <= len([]rune(startLine)) {
			rest = string([]rune(startLine)[self.Span.Start.Column-1:])
		}

		markers = fmt.Sprintf(
			"%s ...\n%s%s+ %d more line%s%s",
			strings.Repeat(markerMul, max(displayWidth(rest), 1)),
			strings.Repeat(" ", 7),
			paint(32, true),
			self.Span.End.Line-self.Span.Start.Line,
			s,
			reset,
		)
	}

	marker := fmt.Sprintf(
		"%s%s%s%s%s",
		paint(color, true),
		strings.Repeat(" ", 7),
		padding(startLine, self.Span.Start.Column),
		markers,
		reset,
	)

	return fmt.Sprintf(
		"%s%s%s at %s:%d:%d%s\n%s\n%s\n%s%s\n\n%s%s%s\n%s",
		paint(color, true),
		heading,
		paint(39, true),
		self.Span.Filename,
		self.Span.Start.Line,
		self.Span.Start.Column,
		reset,
		line1,
		line2,
		marker,
		line3,
		paint(color, true),
		self.Message,
		reset,
		notes,
	)
}

// displayWidth counts terminal cells, wide east asian characters take two.
func displayWidth(text string) int {
	res := 0
	for _, char := range text {
		switch width.LookupRune(char).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			res += 2
		default:
			res += 1
		}
	}
	return res
}

// padding produces the whitespace in front of the marker for a 1-based column.
// Tabs are kept so that the marker lines up with the source line above it.
func padding(line string, column uint) string {
	var builder strings.Builder
	idx := uint(1)
	for _, char := range line {
		if idx >= column {
			break
		}
		if char == '\t' {
			builder.WriteRune('\t')
		} else {
			builder.WriteString(strings.Repeat(" ", displayWidth(string(char))))
		}
		idx++
	}
	return builder.String()
}

func ansiCol(color uint8, bold bool) string {
	if bold {
		return fmt.Sprintf("\x1b[1;%dm", color)
	}
	return fmt.Sprintf("\x1b[%dm", color)
}
