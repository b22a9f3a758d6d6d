package diagnostic

import (
	"strings"
	"testing"

	"github.com/smarthome-go/lisp/lisp/errors"
	"github.com/smarthome-go/lisp/lisp/lexer"
	"github.com/smarthome-go/lisp/lisp/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntaxDiagnostic(t *testing.T, program string) Diagnostic {
	t.Helper()
	lex := lexer.NewLexer(program, "test")
	tokens, lexErr := lex.CollectTokens()
	require.Nil(t, lexErr)
	_, err := parser.Parse(tokens, "test")
	require.NotNil(t, err)
	return FromSyntaxError(*err)
}

func lexDiagnostic(t *testing.T, program string) Diagnostic {
	t.Helper()
	lex := lexer.NewLexer(program, "test")
	_, err := lex.CollectTokens()
	require.NotNil(t, err)
	return FromLexError(*err)
}

func TestSuggestKeyword(t *testing.T) {
	tests := []struct {
		word     string
		expected string
		found    bool
	}{
		{word: "whlie", expected: "while", found: true},
		{word: "lamda", expected: "lambda", found: true},
		{word: "setqq", expected: "setq", found: true},
		{word: "nul", expected: "null", found: true},
		{word: "retrun", expected: "return", found: true},
		{word: "setq", found: false},
		{word: "x", found: false},
		{word: "fibonacci", found: false},
	}

	for _, test := range tests {
		t.Run(test.word, func(t *testing.T) {
			keyword, found := SuggestKeyword(test.word)
			assert.Equal(t, test.found, found)
			if test.found {
				assert.Equal(t, test.expected, keyword)
			}
		})
	}
}

func TestFromLexError(t *testing.T) {
	diagnostic := lexDiagnostic(t, "(lambda! x)")

	assert.Equal(t, DiagnosticLevelError, diagnostic.Level)
	assert.Equal(t, "InvalidIdentifier", diagnostic.Kind)
	assert.Equal(t, "invalid identifier `lambda!`", diagnostic.Message)
	require.Len(t, diagnostic.Notes, 2)
	assert.Equal(t, "did you mean `lambda`?", diagnostic.Notes[0])
	assert.Equal(t, "InvalidIdentifier: invalid identifier `lambda!` at line 1, columns 2-8", diagnostic.String())

	diagnostic = lexDiagnostic(t, "123abc")
	assert.Equal(t, "InvalidNumber", diagnostic.Kind)
	assert.Len(t, diagnostic.Notes, 1)
}

func TestFromSyntaxError(t *testing.T) {
	diagnostic := syntaxDiagnostic(t, "(setq )")
	assert.Equal(t, "UnexpectedToken", diagnostic.Kind)
	assert.Equal(t, "Found: RParen. Expected: {Literal, Identifier, List}", diagnostic.Message)
	assert.Empty(t, diagnostic.Notes)

	diagnostic = syntaxDiagnostic(t, "x)")
	assert.Equal(t, "ExtraToken", diagnostic.Kind)
	assert.Equal(t, []string{"this parenthesis does not close any list"}, diagnostic.Notes)

	diagnostic = syntaxDiagnostic(t, "(a")
	assert.Equal(t, "UnrecognizedEof", diagnostic.Kind)
	assert.Len(t, diagnostic.Notes, 1)

	_, err := parser.Parse([]lexer.Token{lexer.UnknownToken(errors.NewLocation())}, "test")
	require.NotNil(t, err)
	diagnostic = FromSyntaxError(*err)
	assert.Equal(t, "InvalidToken", diagnostic.Message)
}

func TestDisplay(t *testing.T) {
	program := "(setq 1 2)"
	diagnostic := syntaxDiagnostic(t, program)

	out := diagnostic.Display(program, false)
	assert.True(t, strings.HasPrefix(out, "Error[GeneralError] at test:1:7\n"), out)
	assert.Contains(t, out, "| (setq 1 2)\n"+strings.Repeat(" ", 13)+"^\n")
	assert.Contains(t, out, "`setq` expects an identifier as its target, found Int")
	assert.NotContains(t, out, "\x1b")

	colored := diagnostic.Display(program, true)
	assert.Contains(t, colored, "\x1b[1;31m")
	assert.Contains(t, colored, "\x1b[0m")
}

func TestDisplayMarkers(t *testing.T) {
	program := "x\n(foo-bar 1)"
	diagnostic := lexDiagnostic(t, program)

	out := diagnostic.Display(program, false)
	assert.True(t, strings.HasPrefix(out, "Error[InvalidIdentifier] at test:2:2\n"), out)
	// the previous line is shown for context
	assert.Contains(t, out, "| x\n")
	assert.Contains(t, out, "| (foo-bar 1)\n"+strings.Repeat(" ", 8)+"^^^^^^^\n")
	assert.Contains(t, out, " - note: identifiers consist of")
}

func TestDisplayMultiline(t *testing.T) {
	program := "(f\n  1\n  2"
	diagnostic := Diagnostic{
		Level:   DiagnosticLevelWarning,
		Kind:    "",
		Message: "long list",
		Span: errors.NewSpan(
			errors.Location{Line: 1, Column: 1, Index: 0},
			errors.Location{Line: 3, Column: 4, Index: 10},
			"test",
		),
	}

	out := diagnostic.Display(program, false)
	assert.True(t, strings.HasPrefix(out, "Warning at test:1:1\n"), out)
	assert.Contains(t, out, "~~ ...")
	assert.Contains(t, out, "+ 2 more lines")
	assert.Contains(t, out, "| (f\n")
	assert.Contains(t, out, "|   1")
}

func TestDisplayWithoutSource(t *testing.T) {
	diagnostic := Diagnostic{
		Level:   DiagnosticLevelError,
		Kind:    "UnrecognizedEof",
		Message: "Expected: {Literal, Identifier, List}",
		Span:    errors.Span{Filename: "stdin"},
	}

	out := diagnostic.Display("", false)
	assert.Equal(t, "Error[UnrecognizedEof] in stdin\nExpected: {Literal, Identifier, List}\n", out)
}

func TestDisplayWidth(t *testing.T) {
	assert.Equal(t, 3, displayWidth("abc"))
	assert.Equal(t, 4, displayWidth("日本"))
	assert.Equal(t, "\t ", padding("\tx(", 3))
	assert.Equal(t, "    ", padding("日本x", 3))
}

func TestLint(t *testing.T) {
	program := "(whlie true x)\n(setq y (lamda (a) a))\n(plus 1 2)"
	lex := lexer.NewLexer(program, "test")
	tokens, lexErr := lex.CollectTokens()
	require.Nil(t, lexErr)
	tree, err := parser.Parse(tokens, "test")
	require.Nil(t, err)

	hints := Lint(tree)
	require.Len(t, hints, 2)

	assert.Equal(t, DiagnosticLevelHint, hints[0].Level)
	assert.Equal(t, "`whlie` is treated as a regular identifier", hints[0].Message)
	assert.Equal(t, []string{"did you mean the special form `while`?"}, hints[0].Notes)
	assert.Equal(t, "whlie", hints[0].Span.Slice(program))
	assert.Equal(t, "Hint: `whlie` is treated as a regular identifier at line 1, columns 2-6", hints[0].String())

	assert.Equal(t, "lamda", hints[1].Span.Slice(program))
}
