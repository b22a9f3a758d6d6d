package parser

import (
	"github.com/smarthome-go/lisp/lisp/errors"
	"github.com/smarthome-go/lisp/lisp/lexer"
	"github.com/smarthome-go/lisp/lisp/parser/ast"
)

type Parser struct {
	tokens        []lexer.Token
	index         int
	PreviousToken lexer.Token
	CurrentToken  lexer.Token
	Filename      string
}

func NewParser(tokens []lexer.Token, filename string) Parser {
	return Parser{
		tokens:        tokens,
		index:         0,
		PreviousToken: lexer.UnknownToken(errors.NewLocation()),
		CurrentToken:  lexer.UnknownToken(errors.NewLocation()),
		Filename:      filename,
	}
}

// Parse builds the syntax tree of a complete token sequence.
// A trailing `EOF` token is optional.
func Parse(tokens []lexer.Token, filename string) (ast.Program, *SyntaxError) {
	parser := NewParser(tokens, filename)
	return parser.Parse()
}

// next moves to the following token.
// Once the sequence is exhausted, a synthetic `EOF` located at the end of the last token is produced.
func (self *Parser) next() {
	self.PreviousToken = self.CurrentToken

	if self.index < len(self.tokens) {
		self.CurrentToken = self.tokens[self.index]
		self.index++
		return
	}

	end := errors.NewLocation()
	if len(self.tokens) > 0 {
		end = self.tokens[len(self.tokens)-1].Span.End
	}

	self.CurrentToken = lexer.Token{
		Kind:  lexer.EOF,
		Value: "",
		Span:  errors.NewSpan(end, end, self.Filename),
	}
}

func (self *Parser) Parse() (ast.Program, *SyntaxError) {
	self.next()

	program, err := self.program()
	if err != nil {
		return ast.Program{}, err
	}

	return program, nil
}

func (self *Parser) program() (ast.Program, *SyntaxError) {
	elements, err := self.elements()
	if err != nil {
		return ast.Program{}, err
	}

	switch self.CurrentToken.Kind {
	case lexer.EOF:
		// tokens behind an explicit `EOF` do not belong to the program
		if self.index < len(self.tokens) {
			return ast.Program{}, extraTokenErr(self.tokens[self.index])
		}
	case lexer.RParen:
		return ast.Program{}, extraTokenErr(self.CurrentToken)
	default:
		return ast.Program{}, self.expectedOneOfErr(append(append([]string{}, elementStart...), lexer.EOF.String()))
	}

	return ast.Program{
		Elements: elements,
		Filename: self.Filename,
		Range:    elements.Range,
	}, nil
}

// elements parses `Elements := Element | Elements Element`.
// At least one element is required, the sequence ends at the first token that cannot start another one.
func (self *Parser) elements() (ast.ElementsNode, *SyntaxError) {
	items := make([]ast.ElementNode, 0)

	for len(items) == 0 || self.startsElement() {
		node, err := self.element()
		if err != nil {
			return ast.ElementsNode{}, err
		}

		items = append(items, ast.ElementNode{
			Inner: node,
			Range: node.Span(),
		})
	}

	return ast.ElementsNode{
		Items: items,
		Range: items[0].Range.Cover(items[len(items)-1].Range),
	}, nil
}

func (self *Parser) element() (ast.Node, *SyntaxError) {
	switch self.CurrentToken.Kind {
	case lexer.Integer, lexer.Real, lexer.Bool, lexer.Null, lexer.Identifier:
		return self.literal()
	case lexer.QuoteMark:
		return self.quoteMark()
	case lexer.LParen:
		return self.list()
	default:
		return nil, self.expectedOneOfErr(elementStart)
	}
}

func (self *Parser) quoteMark() (ast.Node, *SyntaxError) {
	start := self.CurrentToken.Span
	self.next()

	quoted, err := self.element()
	if err != nil {
		return nil, err
	}

	return ast.QuoteForm{
		Quoted: quoted,
		Range:  start.Cover(quoted.Span()),
	}, nil
}

// list parses a parenthesized list or, if the first token is a keyword, a special form.
func (self *Parser) list() (ast.Node, *SyntaxError) {
	open := self.CurrentToken.Span
	self.next()

	if self.CurrentToken.Kind.IsKeyword() {
		return self.specialForm(open)
	}

	elements, err := self.elements()
	if err != nil {
		return nil, err
	}

	closing, err := self.expectClosing(true)
	if err != nil {
		return nil, err
	}

	return ast.ListNode{
		Elements: elements,
		Range:    open.Cover(closing),
	}, nil
}
