package lexer

import (
	"fmt"
	"sort"

	"github.com/smarthome-go/lisp/lisp/errors"
)

type Token struct {
	Kind TokenKind
	// Raw lexeme payload: digits for numbers, the name for identifiers, `true` / `false` for booleans.
	Value string
	Span  errors.Span
}

type TokenKind uint8

const (
	Unknown TokenKind = iota
	EOF

	LParen    // (
	RParen    // )
	QuoteMark // '

	Quote  // quote
	Setq   // setq
	Func   // func
	Lambda // lambda
	Prog   // prog
	Cond   // cond
	While  // while
	Return // return
	Break  // break

	Integer    // 42, -7
	Real       // 3.14, +0.5
	Bool       // true, false
	Null       // null
	Identifier // foo_bar
)

var keywords = map[string]TokenKind{
	"true":   Bool,
	"false":  Bool,
	"null":   Null,
	"quote":  Quote,
	"setq":   Setq,
	"func":   Func,
	"lambda": Lambda,
	"prog":   Prog,
	"cond":   Cond,
	"while":  While,
	"return": Return,
	"break":  Break,
}

// LookupKeyword reports whether `lexeme` is reserved and which kind it maps to.
func LookupKeyword(lexeme string) (TokenKind, bool) {
	kind, found := keywords[lexeme]
	return kind, found
}

// Keywords returns every reserved word in alphabetical order.
func Keywords() []string {
	res := make([]string, 0, len(keywords))
	for word := range keywords {
		res = append(res, word)
	}
	sort.Strings(res)
	return res
}

func newToken(kind TokenKind, value string, span errors.Span) Token {
	return Token{
		Kind:  kind,
		Value: value,
		Span:  span,
	}
}

func UnknownToken(location errors.Location) Token {
	return newToken(Unknown, "", errors.Span{Start: location, End: location})
}

func (self TokenKind) IsKeyword() bool {
	return self >= Quote && self <= Break
}

func (self TokenKind) String() string {
	switch self {
	case Unknown:
		return "Unknown"
	case EOF:
		return "EOF"
	case LParen:
		return "LParen"
	case RParen:
		return "RParen"
	case QuoteMark:
		return "QuoteMark"
	case Quote:
		return "Quote"
	case Setq:
		return "Setq"
	case Func:
		return "Func"
	case Lambda:
		return "Lambda"
	case Prog:
		return "Prog"
	case Cond:
		return "Cond"
	case While:
		return "While"
	case Return:
		return "Return"
	case Break:
		return "Break"
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case Bool:
		return "Bool"
	case Null:
		return "Null"
	case Identifier:
		return "Identifier"
	default:
		panic("A new token kind was added without updating this code")
	}
}

func (self Token) String() string {
	switch self.Kind {
	case Integer, Real, Identifier:
		return fmt.Sprintf("%s(%q)", self.Kind, self.Value)
	case Bool:
		return fmt.Sprintf("%s(%s)", self.Kind, self.Value)
	default:
		return self.Kind.String()
	}
}
