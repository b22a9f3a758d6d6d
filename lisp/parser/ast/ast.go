package ast

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/smarthome-go/lisp/lisp/errors"
)

type Node interface {
	Kind() NodeKind
	Span() errors.Span
	String() string
}

type NodeKind uint8

const (
	// literals
	NullNodeKind NodeKind = iota
	BoolNodeKind
	IntNodeKind
	RealNodeKind
	IdentifierNodeKind
	// special forms
	QuoteNodeKind
	SetqNodeKind
	FuncNodeKind
	LambdaNodeKind
	ProgNodeKind
	CondNodeKind
	WhileNodeKind
	ReturnNodeKind
	BreakNodeKind
	// structure
	ElementNodeKind
	ElementsNodeKind
	ListNodeKind
	ProgramNodeKind
)

func (self NodeKind) String() string {
	switch self {
	case NullNodeKind:
		return "Null"
	case BoolNodeKind:
		return "Bool"
	case IntNodeKind:
		return "Int"
	case RealNodeKind:
		return "Real"
	case IdentifierNodeKind:
		return "Identifier"
	case QuoteNodeKind:
		return "Quote"
	case SetqNodeKind:
		return "Setq"
	case FuncNodeKind:
		return "Func"
	case LambdaNodeKind:
		return "Lambda"
	case ProgNodeKind:
		return "Prog"
	case CondNodeKind:
		return "Cond"
	case WhileNodeKind:
		return "While"
	case ReturnNodeKind:
		return "Return"
	case BreakNodeKind:
		return "Break"
	case ElementNodeKind:
		return "Element"
	case ElementsNodeKind:
		return "Elements"
	case ListNodeKind:
		return "List"
	case ProgramNodeKind:
		return "Program"
	default:
		panic("A new node kind was added without updating this code")
	}
}

// tree renders a tag line followed by its children, each indented by two spaces.
func tree(tag string, children ...Node) string {
	var builder strings.Builder
	builder.WriteString(tag)

	for _, child := range children {
		builder.WriteString("\n  ")
		builder.WriteString(strings.ReplaceAll(child.String(), "\n", "\n  "))
	}

	return builder.String()
}

//
// Program
//

type Program struct {
	Elements ElementsNode
	Filename string
	Range    errors.Span
}

func (self Program) Kind() NodeKind    { return ProgramNodeKind }
func (self Program) Span() errors.Span { return self.Range }
func (self Program) String() string    { return tree("Program", self.Elements) }

//
// Elements
//

// ElementsNode is a non-empty, flat sequence in source order.
type ElementsNode struct {
	Items []ElementNode
	Range errors.Span
}

func (self ElementsNode) Kind() NodeKind    { return ElementsNodeKind }
func (self ElementsNode) Span() errors.Span { return self.Range }
func (self ElementsNode) String() string {
	children := make([]Node, 0, len(self.Items))
	for _, item := range self.Items {
		children = append(children, item)
	}
	return tree("Elements", children...)
}

//
// Element
//

type ElementNode struct {
	Inner Node
	Range errors.Span
}

func (self ElementNode) Kind() NodeKind    { return ElementNodeKind }
func (self ElementNode) Span() errors.Span { return self.Range }
func (self ElementNode) String() string    { return tree("Element", self.Inner) }

//
// List
//

type ListNode struct {
	Elements ElementsNode
	// Includes both parentheses.
	Range errors.Span
}

func (self ListNode) Kind() NodeKind    { return ListNodeKind }
func (self ListNode) Span() errors.Span { return self.Range }
func (self ListNode) String() string    { return tree("List", self.Elements) }

//
// Literals
//

type NullLiteral struct{ Range errors.Span }

func (self NullLiteral) Kind() NodeKind    { return NullNodeKind }
func (self NullLiteral) Span() errors.Span { return self.Range }
func (self NullLiteral) String() string    { return "Null" }

type BoolLiteral struct {
	Value bool
	Range errors.Span
}

func (self BoolLiteral) Kind() NodeKind    { return BoolNodeKind }
func (self BoolLiteral) Span() errors.Span { return self.Range }
func (self BoolLiteral) String() string    { return fmt.Sprintf("Bool(%t)", self.Value) }

type IntLiteral struct {
	Value int64
	Range errors.Span
}

func (self IntLiteral) Kind() NodeKind    { return IntNodeKind }
func (self IntLiteral) Span() errors.Span { return self.Range }
func (self IntLiteral) String() string    { return fmt.Sprintf("Int(%d)", self.Value) }

type RealLiteral struct {
	Value float64
	Range errors.Span
}

func (self RealLiteral) Kind() NodeKind    { return RealNodeKind }
func (self RealLiteral) Span() errors.Span { return self.Range }
func (self RealLiteral) String() string    { return fmt.Sprintf("Real(%s)", formatReal(self.Value)) }

// formatReal prints the shortest exact decimal form, whole values keep a `.0` suffix.
func formatReal(value float64) string {
	res := strconv.FormatFloat(value, 'f', -1, 64)
	if math.IsInf(value, 0) || math.IsNaN(value) || strings.Contains(res, ".") {
		return res
	}
	return res + ".0"
}

type IdentifierLiteral struct {
	Ident string
	Range errors.Span
}

func (self IdentifierLiteral) Kind() NodeKind    { return IdentifierNodeKind }
func (self IdentifierLiteral) Span() errors.Span { return self.Range }
func (self IdentifierLiteral) String() string    { return fmt.Sprintf("Identifier(%s)", self.Ident) }
