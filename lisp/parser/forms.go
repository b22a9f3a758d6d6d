package parser

import (
	"fmt"

	"github.com/smarthome-go/lisp/lisp/errors"
	"github.com/smarthome-go/lisp/lisp/lexer"
	"github.com/smarthome-go/lisp/lisp/parser/ast"
)

// specialForm parses the rest of a form whose opening parenthesis spans `open`.
// The current token is the keyword.
func (self *Parser) specialForm(open errors.Span) (ast.Node, *SyntaxError) {
	keyword := self.CurrentToken
	self.next()

	switch keyword.Kind {
	case lexer.Quote:
		return self.quoteForm(open)
	case lexer.Setq:
		return self.setqForm(open)
	case lexer.Func:
		return self.funcForm(open)
	case lexer.Lambda:
		return self.lambdaForm(open)
	case lexer.Prog:
		return self.progForm(open)
	case lexer.Cond:
		return self.condForm(open)
	case lexer.While:
		return self.whileForm(open)
	case lexer.Return:
		return self.returnForm(open)
	case lexer.Break:
		return self.breakForm(open)
	default:
		return nil, semanticErr(
			UnexpectedParse,
			keyword.Span,
			fmt.Sprintf("token %s is not a special form keyword", keyword),
		)
	}
}

// operands parses exactly `count` elements followed by the closing parenthesis.
func (self *Parser) operands(open errors.Span, count int) ([]ast.Node, errors.Span, *SyntaxError) {
	nodes := make([]ast.Node, 0, count)

	for i := 0; i < count; i++ {
		node, err := self.element()
		if err != nil {
			return nil, errors.Span{}, err
		}
		nodes = append(nodes, node)
	}

	closing, err := self.expectClosing(false)
	if err != nil {
		return nil, errors.Span{}, err
	}

	return nodes, open.Cover(closing), nil
}

func (self *Parser) quoteForm(open errors.Span) (ast.Node, *SyntaxError) {
	nodes, span, err := self.operands(open, 1)
	if err != nil {
		return nil, err
	}

	return ast.QuoteForm{
		Quoted: nodes[0],
		Range:  span,
	}, nil
}

func (self *Parser) setqForm(open errors.Span) (ast.Node, *SyntaxError) {
	nodes, span, err := self.operands(open, 2)
	if err != nil {
		return nil, err
	}

	target, err := expectIdentifier("setq", "target", nodes[0])
	if err != nil {
		return nil, err
	}

	return ast.SetqForm{
		Target: target,
		Value:  nodes[1],
		Range:  span,
	}, nil
}

func (self *Parser) funcForm(open errors.Span) (ast.Node, *SyntaxError) {
	nodes, span, err := self.operands(open, 3)
	if err != nil {
		return nil, err
	}

	name, err := expectIdentifier("func", "name", nodes[0])
	if err != nil {
		return nil, err
	}

	params, err := expectList("func", "parameter list", nodes[1])
	if err != nil {
		return nil, err
	}

	return ast.FuncForm{
		Name:       name,
		Parameters: params,
		Body:       nodes[2],
		Range:      span,
	}, nil
}

func (self *Parser) lambdaForm(open errors.Span) (ast.Node, *SyntaxError) {
	nodes, span, err := self.operands(open, 2)
	if err != nil {
		return nil, err
	}

	params, err := expectList("lambda", "parameter list", nodes[0])
	if err != nil {
		return nil, err
	}

	return ast.LambdaForm{
		Parameters: params,
		Body:       nodes[1],
		Range:      span,
	}, nil
}

func (self *Parser) progForm(open errors.Span) (ast.Node, *SyntaxError) {
	nodes, span, err := self.operands(open, 2)
	if err != nil {
		return nil, err
	}

	locals, err := expectList("prog", "local list", nodes[0])
	if err != nil {
		return nil, err
	}

	return ast.ProgForm{
		Locals: locals,
		Body:   nodes[1],
		Range:  span,
	}, nil
}

// condForm parses `(cond condition then [else])`.
func (self *Parser) condForm(open errors.Span) (ast.Node, *SyntaxError) {
	nodes := make([]ast.Node, 0, 3)

	for i := 0; i < 3; i++ {
		// the else branch is optional
		if i == 2 && !self.startsElement() {
			break
		}

		node, err := self.element()
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	closing, err := self.expectClosing(false)
	if err != nil {
		return nil, err
	}

	form := ast.CondForm{
		Condition: nodes[0],
		Then:      nodes[1],
		Else:      nil,
		Range:     open.Cover(closing),
	}

	if len(nodes) == 3 {
		form.Else = nodes[2]
	}

	return form, nil
}

func (self *Parser) whileForm(open errors.Span) (ast.Node, *SyntaxError) {
	nodes, span, err := self.operands(open, 2)
	if err != nil {
		return nil, err
	}

	return ast.WhileForm{
		Condition: nodes[0],
		Body:      nodes[1],
		Range:     span,
	}, nil
}

func (self *Parser) returnForm(open errors.Span) (ast.Node, *SyntaxError) {
	nodes, span, err := self.operands(open, 1)
	if err != nil {
		return nil, err
	}

	return ast.ReturnForm{
		Value: nodes[0],
		Range: span,
	}, nil
}

func (self *Parser) breakForm(open errors.Span) (ast.Node, *SyntaxError) {
	_, span, err := self.operands(open, 0)
	if err != nil {
		return nil, err
	}

	return ast.BreakForm{Range: span}, nil
}

//
// Operand validation
//

func expectIdentifier(form string, role string, node ast.Node) (ast.IdentifierLiteral, *SyntaxError) {
	ident, ok := node.(ast.IdentifierLiteral)
	if !ok {
		return ast.IdentifierLiteral{}, semanticErr(
			GeneralError,
			node.Span(),
			fmt.Sprintf("`%s` expects an identifier as its %s, found %s", form, role, node.Kind()),
		)
	}
	return ident, nil
}

func expectList(form string, role string, node ast.Node) (ast.ListNode, *SyntaxError) {
	list, ok := node.(ast.ListNode)
	if !ok {
		return ast.ListNode{}, semanticErr(
			GeneralError,
			node.Span(),
			fmt.Sprintf("`%s` expects a list as its %s, found %s", form, role, node.Kind()),
		)
	}
	return list, nil
}
