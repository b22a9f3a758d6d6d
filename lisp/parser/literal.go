package parser

import (
	"fmt"
	"strconv"

	"github.com/smarthome-go/lisp/lisp/lexer"
	"github.com/smarthome-go/lisp/lisp/parser/ast"
)

// literal converts the raw payload of an atom token into its tree node.
// The lexer only guarantees the shape of numbers, their range is checked here.
func (self *Parser) literal() (ast.Node, *SyntaxError) {
	token := self.CurrentToken
	self.next()

	switch token.Kind {
	case lexer.Integer:
		value, err := strconv.ParseInt(token.Value, 10, 64)
		if err != nil {
			return nil, semanticErr(
				InvalidNumber,
				token.Span,
				fmt.Sprintf("`%s` is not a valid 64-bit integer", token.Value),
			)
		}
		return ast.IntLiteral{Value: value, Range: token.Span}, nil
	case lexer.Real:
		value, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return nil, semanticErr(
				InvalidNumber,
				token.Span,
				fmt.Sprintf("`%s` is not a valid 64-bit real", token.Value),
			)
		}
		return ast.RealLiteral{Value: value, Range: token.Span}, nil
	case lexer.Bool:
		switch token.Value {
		case "true":
			return ast.BoolLiteral{Value: true, Range: token.Span}, nil
		case "false":
			return ast.BoolLiteral{Value: false, Range: token.Span}, nil
		default:
			return nil, semanticErr(
				UnexpectedParse,
				token.Span,
				fmt.Sprintf("malformed boolean token `%s`", token.Value),
			)
		}
	case lexer.Null:
		return ast.NullLiteral{Range: token.Span}, nil
	case lexer.Identifier:
		if token.Value == "" {
			return nil, semanticErr(UnexpectedParse, token.Span, "identifier token without a name")
		}
		return ast.IdentifierLiteral{Ident: token.Value, Range: token.Span}, nil
	default:
		return nil, semanticErr(
			UnexpectedParse,
			token.Span,
			fmt.Sprintf("token %s is not a literal", token),
		)
	}
}
