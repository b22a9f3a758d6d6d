package fuzzer

import (
	"fmt"
	"log"
	"runtime"
	"strings"
	"sync"
	"unicode"

	"github.com/smarthome-go/lisp/lisp/lexer"
	"github.com/smarthome-go/lisp/lisp/parser"
	"github.com/smarthome-go/lisp/lisp/parser/ast"
)

type Failure struct {
	Program  string
	Property string
	Message  string
}

func (self Failure) String() string {
	return fmt.Sprintf("%s: %s\n--- program ---\n%s", self.Property, self.Message, self.Program)
}

// Check runs `CheckProgram` on every program, spread across all CPUs.
func Check(programs []string, verbose bool) []Failure {
	numCpu := runtime.NumCPU()
	chunkSize := (len(programs) + numCpu - 1) / numCpu
	chunks := ChunkInput[string](programs, uint(chunkSize))

	results := make([][]Failure, len(chunks))
	wg := sync.WaitGroup{}

	for idx, chunk := range chunks {
		wg.Add(1)
		go func(idx int, chunk []string) {
			defer wg.Done()
			for _, program := range chunk {
				if failure := CheckProgram(program); failure != nil {
					results[idx] = append(results[idx], *failure)
				}
			}
			if verbose {
				log.Printf("Worker %d checked %d programs, %d failure(s)\n", idx, len(chunk), len(results[idx]))
			}
		}(idx, chunk)
	}

	wg.Wait()

	failures := make([]Failure, 0)
	for _, result := range results {
		failures = append(failures, result...)
	}
	return failures
}

// CheckProgram verifies the lexer and parser properties for a single valid program.
func CheckProgram(program string) *Failure {
	fail := func(property string, format string, args ...any) *Failure {
		return &Failure{
			Program:  program,
			Property: property,
			Message:  fmt.Sprintf(format, args...),
		}
	}

	lex := lexer.NewLexer(program, "fuzz")
	tokens, lexErr := lex.CollectTokens()
	if lexErr != nil {
		return fail("lex", "%s", lexErr)
	}

	if message := CheckLossless(program, tokens); message != "" {
		return fail("lossless", "%s", message)
	}

	for split := 0; split <= len(program); split++ {
		if message := CheckSplit(program, split, tokens); message != "" {
			return fail("streaming", "split at %d: %s", split, message)
		}
	}

	tree, syntaxErr := parser.Parse(tokens, "fuzz")
	if syntaxErr != nil {
		return fail("parse", "%s", syntaxErr)
	}

	if tree.String() != tree.String() {
		return fail("render", "rendering is not deterministic")
	}

	if message := CheckSpans(program, tree); message != "" {
		return fail("spans", "%s", message)
	}

	return nil
}

// CheckLossless verifies that the text between tokens only consists of whitespace and comments.
func CheckLossless(program string, tokens []lexer.Token) string {
	var rebuilt strings.Builder
	prev := uint(0)

	for _, token := range tokens {
		gap := program[prev:token.Span.Start.Index]
		if !isTrivia(gap) {
			return fmt.Sprintf("text %q before %s is neither whitespace nor a comment", gap, token)
		}
		rebuilt.WriteString(gap)
		rebuilt.WriteString(token.Span.Slice(program))
		prev = token.Span.End.Index
	}

	rest := program[prev:]
	if !isTrivia(rest) {
		return fmt.Sprintf("trailing text %q was not lexed", rest)
	}
	rebuilt.WriteString(rest)

	if rebuilt.String() != program {
		return "tokens and trivia do not reconstruct the program"
	}
	return ""
}

func isTrivia(text string) bool {
	inComment := false
	for _, char := range text {
		switch {
		case inComment:
			inComment = char != '\n'
		case char == '#':
			inComment = true
		case !unicode.IsSpace(char):
			return false
		}
	}
	return true
}

// CheckSplit feeds the program in two pushes and compares the result to `expected`.
func CheckSplit(program string, split int, expected []lexer.Token) string {
	lex := lexer.NewIncrementalLexer("fuzz")

	lex.PushText(program[:split])
	first, err := lex.CollectTokens()
	if err != nil {
		return err.Error()
	}

	lex.PushText(program[split:])
	lex.Finish()
	second, err := lex.CollectTokens()
	if err != nil {
		return err.Error()
	}

	got := append(first, second...)
	if len(got) != len(expected) {
		return fmt.Sprintf("expected %d tokens, got %d", len(expected), len(got))
	}

	for idx := range got {
		if got[idx] != expected[idx] {
			return fmt.Sprintf("token %d: expected %s at %s, got %s at %s", idx, expected[idx], expected[idx].Span, got[idx], got[idx].Span)
		}
	}
	return ""
}

// CheckSpans verifies that every node span contains its children and that lists cover their parentheses.
func CheckSpans(program string, tree ast.Program) string {
	message := ""

	ast.Walk(tree, func(node ast.Node, _ int) bool {
		if message != "" {
			return false
		}

		span := node.Span()
		if span.End.Index < span.Start.Index {
			message = fmt.Sprintf("%s has an inverted span %s", node.Kind(), span)
			return false
		}

		for _, child := range ast.Children(node) {
			childSpan := child.Span()
			if childSpan.Start.Index < span.Start.Index || childSpan.End.Index > span.End.Index {
				message = fmt.Sprintf("%s %s does not contain child %s %s", node.Kind(), span, child.Kind(), childSpan)
				return false
			}
		}

		text := span.Slice(program)
		switch node.(type) {
		case ast.ListNode, ast.SetqForm, ast.FuncForm, ast.LambdaForm, ast.ProgForm,
			ast.CondForm, ast.WhileForm, ast.ReturnForm, ast.BreakForm:
			if !strings.HasPrefix(text, "(") || !strings.HasSuffix(text, ")") {
				message = fmt.Sprintf("%s span %q does not cover its parentheses", node.Kind(), text)
			}
		case ast.QuoteForm:
			if !strings.HasPrefix(text, "'") && !strings.HasPrefix(text, "(") {
				message = fmt.Sprintf("quote span %q does not cover its quote", text)
			}
		}

		return message == ""
	})

	return message
}
