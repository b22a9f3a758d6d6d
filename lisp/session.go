package lisp

import (
	"strings"

	"github.com/smarthome-go/lisp/lisp/lexer"
	"github.com/smarthome-go/lisp/lisp/parser"
	"github.com/smarthome-go/lisp/lisp/parser/ast"
)

// Session drives the incremental lexer for a line based REPL.
// Tokens accumulate until they form complete top-level elements, which are then parsed as one program.
type Session struct {
	lexer   lexer.Lexer
	pending []lexer.Token
	// Open parentheses among the pending tokens.
	depth int
}

func NewSession(filename string) *Session {
	return &Session{
		lexer:   lexer.NewIncrementalLexer(filename),
		pending: make([]lexer.Token, 0),
		depth:   0,
	}
}

// Feed pushes one line and lexes as far as the buffer allows.
// The line terminator is optional, an empty line still advances the line count.
// Lexing continues behind erroneous text, so several errors may be returned for one line.
func (self *Session) Feed(line string) ([]lexer.Token, []lexer.LexError) {
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	self.lexer.PushLine(line)
	return self.drain()
}

// Close signals the end of input and lexes whatever is left in the buffer.
func (self *Session) Close() ([]lexer.Token, []lexer.LexError) {
	self.lexer.Finish()
	return self.drain()
}

func (self *Session) drain() ([]lexer.Token, []lexer.LexError) {
	tokens := make([]lexer.Token, 0)
	errs := make([]lexer.LexError, 0)

	for {
		token, status, err := self.lexer.NextToken()
		switch status {
		case lexer.StatusToken:
			tokens = append(tokens, token)
			self.track(token)
		case lexer.StatusError:
			errs = append(errs, *err)
		case lexer.StatusNeedMoreInput, lexer.StatusFinished:
			return tokens, errs
		default:
			panic("A new lexer status was added without updating this code")
		}
	}
}

func (self *Session) track(token lexer.Token) {
	switch token.Kind {
	case lexer.LParen:
		self.depth++
	case lexer.RParen:
		self.depth--
	}
	self.pending = append(self.pending, token)
}

// Ready reports whether the pending tokens can be parsed without waiting for more input.
// Unbalanced closing parentheses make the session ready as well, parsing reports them.
func (self Session) Ready() bool {
	if len(self.pending) == 0 || self.depth > 0 {
		return false
	}
	return self.pending[len(self.pending)-1].Kind != lexer.QuoteMark
}

func (self Session) Pending() []lexer.Token { return self.pending }

// Program is the complete text fed so far, used for rendering diagnostics.
func (self Session) Program() string { return self.lexer.Program() }

// Flush parses the pending tokens and clears them, regardless of the outcome.
func (self *Session) Flush() (ast.Program, *parser.SyntaxError) {
	tokens := self.pending
	self.Discard()
	return parser.Parse(tokens, self.lexer.Filename())
}

func (self *Session) Discard() {
	self.pending = make([]lexer.Token, 0)
	self.depth = 0
}
