package diagnostic

import (
	"fmt"

	"github.com/agnivade/levenshtein"
	"github.com/smarthome-go/lisp/lisp/lexer"
	"github.com/smarthome-go/lisp/lisp/parser"
	"github.com/smarthome-go/lisp/lisp/parser/ast"
)

func FromLexError(err lexer.LexError) Diagnostic {
	notes := make([]string, 0)

	switch err.Kind {
	case lexer.InvalidNumber:
		notes = append(notes, "a number is an optional sign, digits and an optional `.` followed by digits; it must end at a delimiter")
	case lexer.InvalidIdentifier:
		if keyword, found := SuggestKeyword(err.Lexeme); found {
			notes = append(notes, fmt.Sprintf("did you mean `%s`?", keyword))
		}
		notes = append(notes, "identifiers consist of letters, digits and `_` and must not start with a digit")
	}

	return Diagnostic{
		Level:   DiagnosticLevelError,
		Kind:    err.Kind.String(),
		Message: err.Message(),
		Notes:   notes,
		Span:    err.Span,
	}
}

func FromSyntaxError(err parser.SyntaxError) Diagnostic {
	notes := make([]string, 0)

	switch err.Kind {
	case parser.UnrecognizedEof:
		notes = append(notes, "the input ended before the current form was complete")
	case parser.ExtraToken:
		if err.Found.Kind == lexer.RParen {
			notes = append(notes, "this parenthesis does not close any list")
		}
	case parser.InvalidNumber:
		notes = append(notes, "integers must fit into 64 bits, reals into a 64-bit float")
	}

	message := err.Message
	if message == "" {
		message = err.Kind.String()
	}

	return Diagnostic{
		Level:   DiagnosticLevelError,
		Kind:    err.Kind.String(),
		Message: message,
		Notes:   notes,
		Span:    err.Span(),
	}
}

// SuggestKeyword returns the reserved word closest to `word` if it is a plausible typo.
func SuggestKeyword(word string) (string, bool) {
	best := ""
	bestDistance := -1

	for _, keyword := range lexer.Keywords() {
		distance := levenshtein.ComputeDistance(word, keyword)
		if bestDistance == -1 || distance < bestDistance {
			best = keyword
			bestDistance = distance
		}
	}

	threshold := 1
	if len(best) > 4 {
		threshold = 2
	}

	if bestDistance == 0 || bestDistance > threshold {
		return "", false
	}

	return best, true
}

// Lint reports lists whose head looks like a misspelled special form, such as `(whlie ...)`.
func Lint(program ast.Program) []Diagnostic {
	diagnostics := make([]Diagnostic, 0)

	ast.Walk(program, func(node ast.Node, _ int) bool {
		list, ok := node.(ast.ListNode)
		if !ok {
			return true
		}

		head, ok := list.Elements.Items[0].Inner.(ast.IdentifierLiteral)
		if !ok {
			return true
		}

		if keyword, found := SuggestKeyword(head.Ident); found {
			diagnostics = append(diagnostics, Diagnostic{
				Level:   DiagnosticLevelHint,
				Kind:    "",
				Message: fmt.Sprintf("`%s` is treated as a regular identifier", head.Ident),
				Notes:   []string{fmt.Sprintf("did you mean the special form `%s`?", keyword)},
				Span:    head.Range,
			})
		}

		return true
	})

	return diagnostics
}
