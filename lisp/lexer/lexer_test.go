package lexer

import (
	"fmt"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, program string) []Token {
	t.Helper()
	lexer := NewLexer(program, "test")
	tokens, err := lexer.CollectTokens()
	require.Nil(t, err, "unexpected lex error")
	return tokens
}

func tokenStrings(tokens []Token) []string {
	res := make([]string, 0, len(tokens))
	for _, token := range tokens {
		res = append(res, token.String())
	}
	return res
}

func lexErr(t *testing.T, program string) *LexError {
	t.Helper()
	lexer := NewLexer(program, "test")
	_, err := lexer.CollectTokens()
	require.NotNil(t, err, "expected a lex error for %q", program)
	return err
}

func TestLexerSetq(t *testing.T) {
	tokens := lexAll(t, "(setq x 10)")
	assert.Equal(t, []string{
		"LParen",
		"Setq",
		`Identifier("x")`,
		`Integer("10")`,
		"RParen",
		"EOF",
	}, tokenStrings(tokens))
}

func TestLexerKeywords(t *testing.T) {
	expected := map[string]TokenKind{
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

	assert.Len(t, Keywords(), len(expected))

	for _, keyword := range Keywords() {
		tokens := lexAll(t, keyword)
		require.Len(t, tokens, 2)
		assert.NotEqual(t, Identifier, tokens[0].Kind, keyword)
		assert.Equal(t, expected[keyword], tokens[0].Kind, keyword)
		assert.Equal(t, keyword, tokens[0].Value)
	}

	// keywords only match as a whole
	tokens := lexAll(t, "setqx _while Lambda")
	assert.Equal(t, []string{`Identifier("setqx")`, `Identifier("_while")`, `Identifier("Lambda")`, "EOF"}, tokenStrings(tokens))
}

func TestLexerNumbers(t *testing.T) {
	tokens := lexAll(t, "42 -7 +3 3.14 -0.5 007")
	assert.Equal(t, []string{
		`Integer("42")`,
		`Integer("-7")`,
		`Integer("+3")`,
		`Real("3.14")`,
		`Real("-0.5")`,
		`Integer("007")`,
		"EOF",
	}, tokenStrings(tokens))

	// numbers end at any delimiter
	tokens = lexAll(t, "(12)1'x 5#c")
	assert.Equal(t, []string{
		"LParen",
		`Integer("12")`,
		"RParen",
		`Integer("1")`,
		"QuoteMark",
		`Identifier("x")`,
		`Integer("5")`,
		"EOF",
	}, tokenStrings(tokens))
}

func TestLexerJunkMerge(t *testing.T) {
	err := lexErr(t, "123abc")
	assert.Equal(t, InvalidNumber, err.Kind)
	assert.Equal(t, "123abc", err.Lexeme)
	assert.Equal(t, uint(0), err.Span.Start.Index)
	assert.Equal(t, uint(6), err.Span.End.Index)
	assert.Equal(t, uint(1), err.Span.Start.Column)
	assert.Equal(t, uint(7), err.Span.End.Column)

	// nothing is emitted before the error
	lexer := NewLexer("123abc", "test")
	tokens, firstErr := lexer.CollectTokens()
	assert.Empty(t, tokens)
	assert.NotNil(t, firstErr)

	for program, lexeme := range map[string]string{
		"1.5x (":  "1.5x",
		"-3abc":   "-3abc",
		"12.":     "12.",
		"1.2.3 x": "1.2.3",
		"9_000":   "9_000",
	} {
		err := lexErr(t, program)
		assert.Equal(t, InvalidNumber, err.Kind, program)
		assert.Equal(t, lexeme, err.Lexeme, program)
	}
}

func TestLexerNumbersWithoutDigits(t *testing.T) {
	for _, program := range []string{"+", "-", ".", ".5", "+.5", "-."} {
		err := lexErr(t, program)
		assert.Equal(t, InvalidNumber, err.Kind, program)
		assert.Equal(t, program, err.Lexeme)
	}
}

func TestLexerInvalidIdentifiers(t *testing.T) {
	for _, program := range []string{"foo-bar", "a.b", "héllo", "+x", "x?", "set!"} {
		err := lexErr(t, program)
		assert.Equal(t, InvalidIdentifier, err.Kind, program)
		assert.Equal(t, program, err.Lexeme)
		assert.Equal(t, uint(len(program)), err.Span.End.Index)
	}
}

func TestLexerUnexpectedChar(t *testing.T) {
	lexer := NewLexer("\x01 x", "test")

	_, status, err := lexer.NextToken()
	assert.Equal(t, StatusError, status)
	require.NotNil(t, err)
	assert.Equal(t, UnexpectedChar, err.Kind)
	assert.Equal(t, "\x01", err.Lexeme)
	assert.Equal(t, uint(1), err.Span.End.Index)

	// the caller may keep going behind the bad character
	token, status, err := lexer.NextToken()
	assert.Nil(t, err)
	assert.Equal(t, StatusToken, status)
	assert.Equal(t, `Identifier("x")`, token.String())
}

func TestLexerPositionAfterError(t *testing.T) {
	lexer := NewLexer("123abc def", "test")

	_, status, _ := lexer.NextToken()
	assert.Equal(t, StatusError, status)
	assert.Equal(t, uint(6), lexer.Location().Index)

	token, status, err := lexer.NextToken()
	assert.Nil(t, err)
	assert.Equal(t, StatusToken, status)
	assert.Equal(t, "def", token.Value)
	assert.Equal(t, uint(7), token.Span.Start.Index)
	assert.Equal(t, uint(8), token.Span.Start.Column)
}

func TestLexerComments(t *testing.T) {
	tokens := lexAll(t, "# c1\n  # c2\n x # trailing")
	assert.Equal(t, []string{`Identifier("x")`, "EOF"}, tokenStrings(tokens))
	assert.Equal(t, uint(3), tokens[0].Span.Start.Line)

	tokens = lexAll(t, "#")
	assert.Equal(t, []string{"EOF"}, tokenStrings(tokens))

	tokens = lexAll(t, "")
	assert.Equal(t, []string{"EOF"}, tokenStrings(tokens))
}

func TestLexerPositions(t *testing.T) {
	tokens := lexAll(t, "(a\n  bb)")
	require.Len(t, tokens, 5)

	type pos struct {
		line, col, index uint
	}
	expected := [][2]pos{
		{{1, 1, 0}, {1, 2, 1}},
		{{1, 2, 1}, {1, 3, 2}},
		{{2, 3, 5}, {2, 5, 7}},
		{{2, 5, 7}, {2, 6, 8}},
		{{2, 6, 8}, {2, 6, 8}},
	}

	for idx, token := range tokens {
		start, end := expected[idx][0], expected[idx][1]
		assert.Equal(t, start, pos{token.Span.Start.Line, token.Span.Start.Column, token.Span.Start.Index}, "start of %s", token)
		assert.Equal(t, end, pos{token.Span.End.Line, token.Span.End.Column, token.Span.End.Index}, "end of %s", token)
		assert.Equal(t, "test", token.Span.Filename)
	}
}

func TestLexerByteOffsets(t *testing.T) {
	tokens := lexAll(t, "# é\nx")
	require.Len(t, tokens, 2)
	assert.Equal(t, uint(5), tokens[0].Span.Start.Index)
	assert.Equal(t, uint(2), tokens[0].Span.Start.Line)
	assert.Equal(t, uint(1), tokens[0].Span.Start.Column)
}

func TestLexerFinishedRepeatsEOF(t *testing.T) {
	lexer := NewLexer("x", "test")
	_, status, _ := lexer.NextToken()
	assert.Equal(t, StatusToken, status)

	for i := 0; i < 3; i++ {
		token, status, err := lexer.NextToken()
		assert.Nil(t, err)
		assert.Equal(t, StatusFinished, status)
		assert.Equal(t, EOF, token.Kind)
	}
}

//
// Incremental mode
//

func TestIncrementalLexer(t *testing.T) {
	lexer := NewIncrementalLexer("repl")

	_, status, err := lexer.NextToken()
	assert.Nil(t, err)
	assert.Equal(t, StatusNeedMoreInput, status)

	lexer.PushText("(setq x 1")
	tokens, err := lexer.CollectTokens()
	assert.Nil(t, err)
	assert.Equal(t, []string{"LParen", "Setq", `Identifier("x")`}, tokenStrings(tokens))
	// rolled back to the start of the incomplete number
	assert.Equal(t, uint(8), lexer.Location().Index)
	assert.Equal(t, "1", lexer.Remaining())

	lexer.PushText("0)")
	tokens, err = lexer.CollectTokens()
	assert.Nil(t, err)
	assert.Equal(t, []string{`Integer("10")`, "RParen"}, tokenStrings(tokens))

	lexer.Finish()
	tokens, err = lexer.CollectTokens()
	assert.Nil(t, err)
	assert.Equal(t, []string{"EOF"}, tokenStrings(tokens))
}

func TestIncrementalLexerIncompleteTokens(t *testing.T) {
	tests := []struct {
		first    string
		second   string
		expected string
	}{
		{first: "-", second: "5 ", expected: `Integer("-5")`},
		{first: "1.", second: "5 ", expected: `Real("1.5")`},
		{first: "1", second: ".25)", expected: `Real("1.25")`},
		{first: "lamb", second: "da ", expected: "Lambda"},
		{first: "# com", second: "ment\nx ", expected: `Identifier("x")`},
		{first: "(\xc3", second: "\xa9)", expected: "LParen"},
	}

	for _, test := range tests {
		t.Run(test.first, func(t *testing.T) {
			lexer := NewIncrementalLexer("repl")
			lexer.PushText(test.first)

			tokens, err := lexer.CollectTokens()
			assert.Nil(t, err)
			if len(tokens) > 0 {
				// only the complete prefix may be emitted
				assert.Equal(t, test.expected, tokens[0].String())
				return
			}

			lexer.PushText(test.second)
			token, status, err := lexer.NextToken()
			assert.Nil(t, err)
			assert.Equal(t, StatusToken, status)
			assert.Equal(t, test.expected, token.String())
		})
	}
}

func TestIncrementalLexerSplitRune(t *testing.T) {
	lexer := NewIncrementalLexer("repl")
	lexer.PushText("(\xc3")

	tokens, err := lexer.CollectTokens()
	assert.Nil(t, err)
	assert.Equal(t, []string{"LParen"}, tokenStrings(tokens))

	lexer.PushText("\xa9)")
	lexer.Finish()
	_, status, splitErr := lexer.NextToken()
	assert.Equal(t, StatusError, status)
	require.NotNil(t, splitErr)
	assert.Equal(t, InvalidIdentifier, splitErr.Kind)
	assert.Equal(t, "é", splitErr.Lexeme)
}

func TestIncrementalLexerJunkAcrossPushes(t *testing.T) {
	lexer := NewIncrementalLexer("repl")
	lexer.PushText("12a")

	_, status, err := lexer.NextToken()
	assert.Nil(t, err)
	assert.Equal(t, StatusNeedMoreInput, status)

	lexer.PushText("b ")
	_, status, err = lexer.NextToken()
	assert.Equal(t, StatusError, status)
	require.NotNil(t, err)
	assert.Equal(t, "12ab", err.Lexeme)
}

func TestPushLine(t *testing.T) {
	lexer := NewIncrementalLexer("repl")
	lexer.PushLine("(a   \t")
	lexer.PushLine("")
	lexer.PushLine("b)")
	assert.Equal(t, "(a\nb)\n", lexer.Program())

	tokens, err := lexer.CollectTokens()
	assert.Nil(t, err)
	assert.Equal(t, []string{"LParen", `Identifier("a")`, `Identifier("b")`, "RParen"}, tokenStrings(tokens))
}

//
// Properties
//

var samplePrograms = []string{
	"(setq x 10)",
	"(quote (1 2 3))",
	"(cond (true) (false))",
	"# fibonacci\n(func fib (n)\n  (cond (lessp n 2) n\n    (plus (fib (minus n 1)) (fib (minus n 2)))))\n",
	"'(a b) 'c -1.5 +2 null",
	"(while true (prog (x) (return x))) # done",
	"\t(lambda (a b)\n\t\t(break))\n\n",
}

func checkLossless(program string, tokens []Token) error {
	var rebuilt strings.Builder
	prev := uint(0)

	for _, token := range tokens {
		if token.Span.Start.Index < prev {
			return fmt.Errorf("%s starts before the previous token ended", token)
		}
		gap := program[prev:token.Span.Start.Index]
		for _, line := range strings.Split(gap, "\n") {
			trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
			if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
				return fmt.Errorf("gap %q before %s is not trivia", gap, token)
			}
		}
		rebuilt.WriteString(gap)
		rebuilt.WriteString(token.Span.Slice(program))
		prev = token.Span.End.Index
	}
	rebuilt.WriteString(program[prev:])

	if rebuilt.String() != program {
		return fmt.Errorf("reconstructed %q", rebuilt.String())
	}
	return nil
}

func TestLexerLossless(t *testing.T) {
	for _, program := range samplePrograms {
		tokens := lexAll(t, program)
		assert.NoError(t, checkLossless(program, tokens), program)
	}
}

func lexSplit(program string, split int) ([]Token, *LexError) {
	lexer := NewIncrementalLexer("test")
	lexer.PushText(program[:split])
	first, err := lexer.CollectTokens()
	if err != nil {
		return nil, err
	}

	lexer.PushText(program[split:])
	lexer.Finish()
	second, err := lexer.CollectTokens()
	if err != nil {
		return nil, err
	}

	return append(first, second...), nil
}

func TestStreamingMatchesBatch(t *testing.T) {
	for _, program := range samplePrograms {
		expected := lexAll(t, program)

		for split := 0; split <= len(program); split++ {
			tokens, err := lexSplit(program, split)
			require.Nil(t, err, "split %d of %q", split, program)
			require.Equal(t, expected, tokens, "split %d of %q", split, program)
		}
	}
}

func FuzzLexer(f *testing.F) {
	for _, program := range samplePrograms {
		f.Add(program, len(program)/2)
	}
	f.Add("123abc (", 2)
	f.Add("# é\n'x", 3)

	f.Fuzz(func(t *testing.T, program string, split int) {
		lexer := NewLexer(program, "test")
		tokens, err := lexer.CollectTokens()
		if err != nil {
			return
		}

		if lossErr := checkLossless(program, tokens); lossErr != nil {
			t.Fatalf("%q: %s", program, lossErr)
		}

		if split < 0 || split > len(program) {
			return
		}

		streamed, err := lexSplit(program, split)
		if err != nil {
			t.Fatalf("%q split at %d: unexpected error %s", program, split, err)
		}
		if len(streamed) != len(tokens) {
			t.Fatalf("%q split at %d: expected %d tokens, got %d", program, split, len(tokens), len(streamed))
		}
		for idx := range tokens {
			if tokens[idx] != streamed[idx] {
				t.Fatalf("%q split at %d: token %d differs: %v vs %v", program, split, idx, tokens[idx], streamed[idx])
			}
		}
	})
}
