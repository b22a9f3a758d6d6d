package parser

import (
	"fmt"
	"strings"

	"github.com/smarthome-go/lisp/lisp/errors"
	"github.com/smarthome-go/lisp/lisp/lexer"
)

type SyntaxErrorKind uint8

const (
	// structural
	InvalidToken SyntaxErrorKind = iota
	UnrecognizedEof
	UnexpectedToken
	ExtraToken
	// semantic, raised while building the tree
	InvalidNumber
	GeneralError
	UnexpectedParse
)

func (self SyntaxErrorKind) String() string {
	switch self {
	case InvalidToken:
		return "InvalidToken"
	case UnrecognizedEof:
		return "UnrecognizedEof"
	case UnexpectedToken:
		return "UnexpectedToken"
	case ExtraToken:
		return "ExtraToken"
	case InvalidNumber:
		return "InvalidNumber"
	case GeneralError:
		return "GeneralError"
	case UnexpectedParse:
		return "UnexpectedParse"
	default:
		panic("A new syntax error kind was added without updating this code")
	}
}

// IsSemantic separates errors of otherwise valid syntax from structural failures.
func (self SyntaxErrorKind) IsSemantic() bool {
	return self >= InvalidNumber
}

type SyntaxError struct {
	Kind SyntaxErrorKind
	// Empty if there is nothing to add to the kind.
	Message  string
	Position errors.MultilinePosition
	// The token the parser choked on; `Unknown` for semantic errors.
	Found lexer.Token
}

func (self SyntaxError) Span() errors.Span { return self.Position.Span }

func (self SyntaxError) Error() string {
	if self.Message == "" {
		return fmt.Sprintf("%s at %s", self.Kind, self.Position)
	}
	return fmt.Sprintf("%s: %s at %s", self.Kind, self.Message, self.Position)
}

func formatExpected(expected []string) string {
	return fmt.Sprintf("{%s}", strings.Join(expected, ", "))
}

//
// Structural errors
//

func invalidTokenErr(token lexer.Token) *SyntaxError {
	return &SyntaxError{
		Kind:     InvalidToken,
		Message:  "",
		Position: errors.NewMultilinePosition(token.Span),
		Found:    token,
	}
}

func unrecognizedEofErr(token lexer.Token, expected []string) *SyntaxError {
	return &SyntaxError{
		Kind:     UnrecognizedEof,
		Message:  fmt.Sprintf("Expected: %s", formatExpected(expected)),
		Position: errors.PositionAt(token.Span.Start, token.Span.Filename),
		Found:    token,
	}
}

func unexpectedTokenErr(token lexer.Token, expected []string) *SyntaxError {
	return &SyntaxError{
		Kind:     UnexpectedToken,
		Message:  fmt.Sprintf("Found: %s. Expected: %s", token, formatExpected(expected)),
		Position: errors.NewMultilinePosition(token.Span),
		Found:    token,
	}
}

func extraTokenErr(token lexer.Token) *SyntaxError {
	return &SyntaxError{
		Kind:     ExtraToken,
		Message:  fmt.Sprintf("Found: %s", token),
		Position: errors.NewMultilinePosition(token.Span),
		Found:    token,
	}
}

//
// Semantic errors
//

func semanticErr(kind SyntaxErrorKind, span errors.Span, message string) *SyntaxError {
	return &SyntaxError{
		Kind:     kind,
		Message:  message,
		Position: errors.NewMultilinePosition(span),
		Found:    lexer.UnknownToken(span.Start),
	}
}
