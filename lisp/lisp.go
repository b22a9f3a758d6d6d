package lisp

import (
	"github.com/smarthome-go/lisp/lisp/diagnostic"
	"github.com/smarthome-go/lisp/lisp/lexer"
	"github.com/smarthome-go/lisp/lisp/parser"
	"github.com/smarthome-go/lisp/lisp/parser/ast"
)

// Tokenize lexes a complete program, the result ends with the `EOF` token.
func Tokenize(program string, filename string) ([]lexer.Token, *lexer.LexError) {
	lex := lexer.NewLexer(program, filename)
	return lex.CollectTokens()
}

// Parse lexes and parses a complete program.
// The diagnostics contain at most one error (lexing and parsing stop at the first one) plus any hints.
// `ok` is false if an error occurred, in which case the returned tree is empty.
func Parse(program string, filename string) (tree ast.Program, diagnostics []diagnostic.Diagnostic, ok bool) {
	tokens, lexErr := Tokenize(program, filename)
	if lexErr != nil {
		return ast.Program{}, []diagnostic.Diagnostic{diagnostic.FromLexError(*lexErr)}, false
	}

	tree, syntaxErr := parser.Parse(tokens, filename)
	if syntaxErr != nil {
		return ast.Program{}, []diagnostic.Diagnostic{diagnostic.FromSyntaxError(*syntaxErr)}, false
	}

	return tree, diagnostic.Lint(tree), true
}

func HasErrors(diagnostics []diagnostic.Diagnostic) bool {
	for _, item := range diagnostics {
		if item.Level == diagnostic.DiagnosticLevelError {
			return true
		}
	}
	return false
}
