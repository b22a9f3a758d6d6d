package parser

import (
	"github.com/smarthome-go/lisp/lisp/errors"
	"github.com/smarthome-go/lisp/lisp/lexer"
)

// Grammar symbols which may start an element.
var elementStart = []string{"Literal", "Identifier", "List"}

func (self Parser) startsElement() bool {
	switch self.CurrentToken.Kind {
	case lexer.Integer, lexer.Real, lexer.Bool, lexer.Null, lexer.Identifier, lexer.QuoteMark, lexer.LParen:
		return true
	default:
		return false
	}
}

// expectedOneOfErr translates the current token into the matching structural error.
func (self Parser) expectedOneOfErr(expected []string) *SyntaxError {
	switch self.CurrentToken.Kind {
	case lexer.Unknown:
		return invalidTokenErr(self.CurrentToken)
	case lexer.EOF:
		return unrecognizedEofErr(self.CurrentToken, expected)
	default:
		return unexpectedTokenErr(self.CurrentToken, expected)
	}
}

// expectClosing consumes the `)` of a list or special form and returns its span.
// Plain lists could continue with another element, special forms have a fixed arity.
func (self *Parser) expectClosing(continuable bool) (errors.Span, *SyntaxError) {
	if self.CurrentToken.Kind != lexer.RParen {
		expected := []string{lexer.RParen.String()}
		if continuable {
			expected = append(append([]string{}, elementStart...), expected...)
		}
		return errors.Span{}, self.expectedOneOfErr(expected)
	}

	span := self.CurrentToken.Span
	self.next()
	return span, nil
}
