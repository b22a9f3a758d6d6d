package ast

import "github.com/smarthome-go/lisp/lisp/errors"

//
// Quote
//

// QuoteForm is produced both by `'x` and by `(quote x)`.
type QuoteForm struct {
	Quoted Node
	Range  errors.Span
}

func (self QuoteForm) Kind() NodeKind    { return QuoteNodeKind }
func (self QuoteForm) Span() errors.Span { return self.Range }
func (self QuoteForm) String() string    { return tree("Quote", self.Quoted) }

//
// Setq
//

type SetqForm struct {
	Target IdentifierLiteral
	Value  Node
	Range  errors.Span
}

func (self SetqForm) Kind() NodeKind    { return SetqNodeKind }
func (self SetqForm) Span() errors.Span { return self.Range }
func (self SetqForm) String() string    { return tree("Setq", self.Target, self.Value) }

//
// Func
//

type FuncForm struct {
	Name       IdentifierLiteral
	Parameters ListNode
	Body       Node
	Range      errors.Span
}

func (self FuncForm) Kind() NodeKind    { return FuncNodeKind }
func (self FuncForm) Span() errors.Span { return self.Range }
func (self FuncForm) String() string {
	return tree("Func", self.Name, self.Parameters, self.Body)
}

//
// Lambda
//

type LambdaForm struct {
	Parameters ListNode
	Body       Node
	Range      errors.Span
}

func (self LambdaForm) Kind() NodeKind    { return LambdaNodeKind }
func (self LambdaForm) Span() errors.Span { return self.Range }
func (self LambdaForm) String() string    { return tree("Lambda", self.Parameters, self.Body) }

//
// Prog
//

type ProgForm struct {
	Locals ListNode
	Body   Node
	Range  errors.Span
}

func (self ProgForm) Kind() NodeKind    { return ProgNodeKind }
func (self ProgForm) Span() errors.Span { return self.Range }
func (self ProgForm) String() string    { return tree("Prog", self.Locals, self.Body) }

//
// Cond
//

type CondForm struct {
	Condition Node
	Then      Node
	// nil if there is no else branch
	Else  Node
	Range errors.Span
}

func (self CondForm) Kind() NodeKind    { return CondNodeKind }
func (self CondForm) Span() errors.Span { return self.Range }
func (self CondForm) String() string {
	if self.Else == nil {
		return tree("Cond", self.Condition, self.Then)
	}
	return tree("Cond", self.Condition, self.Then, self.Else)
}

//
// While
//

type WhileForm struct {
	Condition Node
	Body      Node
	Range     errors.Span
}

func (self WhileForm) Kind() NodeKind    { return WhileNodeKind }
func (self WhileForm) Span() errors.Span { return self.Range }
func (self WhileForm) String() string    { return tree("While", self.Condition, self.Body) }

//
// Return
//

type ReturnForm struct {
	Value Node
	Range errors.Span
}

func (self ReturnForm) Kind() NodeKind    { return ReturnNodeKind }
func (self ReturnForm) Span() errors.Span { return self.Range }
func (self ReturnForm) String() string    { return tree("Return", self.Value) }

//
// Break
//

type BreakForm struct{ Range errors.Span }

func (self BreakForm) Kind() NodeKind    { return BreakNodeKind }
func (self BreakForm) Span() errors.Span { return self.Range }
func (self BreakForm) String() string    { return "Break" }
