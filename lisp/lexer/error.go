package lexer

import (
	"fmt"

	"github.com/smarthome-go/lisp/lisp/errors"
)

type LexErrorKind uint8

const (
	UnexpectedChar LexErrorKind = iota
	InvalidNumber
	InvalidIdentifier
)

func (self LexErrorKind) String() string {
	switch self {
	case UnexpectedChar:
		return "UnexpectedChar"
	case InvalidNumber:
		return "InvalidNumber"
	case InvalidIdentifier:
		return "InvalidIdentifier"
	default:
		panic("A new lex error kind was added without updating this code")
	}
}

type LexError struct {
	Kind LexErrorKind
	// The offending text: the single character for `UnexpectedChar`, the whole run otherwise.
	Lexeme string
	Span   errors.Span
}

func newLexError(kind LexErrorKind, lexeme string, span errors.Span) *LexError {
	return &LexError{
		Kind:   kind,
		Lexeme: lexeme,
		Span:   span,
	}
}

func (self LexError) Message() string {
	switch self.Kind {
	case UnexpectedChar:
		return fmt.Sprintf("unexpected character %q", self.Lexeme)
	case InvalidNumber:
		return fmt.Sprintf("invalid number literal `%s`", self.Lexeme)
	case InvalidIdentifier:
		return fmt.Sprintf("invalid identifier `%s`", self.Lexeme)
	default:
		panic("A new lex error kind was added without updating this code")
	}
}

func (self LexError) Error() string {
	return fmt.Sprintf("%s: %s at %s", self.Kind, self.Message(), errors.NewMultilinePosition(self.Span))
}
