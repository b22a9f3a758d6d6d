package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smarthome-go/lisp/lisp/errors"
	"github.com/smarthome-go/lisp/lisp/lexer/util"
)

// Status tells the caller what a call to `NextToken` produced.
type Status uint8

const (
	StatusToken Status = iota
	// The buffer ends inside a token (or before any token) and more input may still arrive.
	// The lexer state is exactly as it was before the call.
	StatusNeedMoreInput
	// The buffer is exhausted and `Finish` was called: the returned token is `EOF`.
	StatusFinished
	StatusError
)

func (self Status) String() string {
	switch self {
	case StatusToken:
		return "Token"
	case StatusNeedMoreInput:
		return "NeedMoreInput"
	case StatusFinished:
		return "Finished"
	case StatusError:
		return "Error"
	default:
		panic("A new lexer status was added without updating this code")
	}
}

//
// Lexer
//

type Lexer struct {
	program  string
	location errors.Location
	// Set once the caller promises that no more text will be pushed.
	finished bool
	filename string
}

// NewLexer creates a lexer over a complete program.
// The buffer is closed from the start, so `NextToken` never asks for more input.
func NewLexer(program string, filename string) Lexer {
	return Lexer{
		program:  program,
		location: errors.NewLocation(),
		finished: true,
		filename: filename,
	}
}

// NewIncrementalLexer creates a lexer with an empty buffer which is fed using `PushText` or `PushLine`.
func NewIncrementalLexer(filename string) Lexer {
	return Lexer{
		program:  "",
		location: errors.NewLocation(),
		finished: false,
		filename: filename,
	}
}

// PushText appends text to the buffer without touching the cursor.
func (self *Lexer) PushText(text string) {
	self.program += text
}

// PushLine appends one line of interactive input.
// Trailing whitespace is stripped and a newline is added so that the line always ends on a delimiter.
func (self *Lexer) PushLine(line string) {
	if line == "" {
		return
	}
	self.program += strings.TrimRightFunc(line, unicode.IsSpace) + "\n"
}

func (self *Lexer) Finish()                  { self.finished = true }
func (self Lexer) IsFinished() bool          { return self.finished }
func (self Lexer) Program() string           { return self.program }
func (self Lexer) Location() errors.Location { return self.location }
func (self Lexer) Filename() string          { return self.filename }
func (self Lexer) Remaining() string         { return self.program[self.location.Index:] }

func (self Lexer) span(start errors.Location) errors.Span {
	return errors.NewSpan(start, self.location, self.filename)
}

func (self Lexer) currentChar() (rune, bool) {
	return self.peekNth(0)
}

func (self Lexer) peekNth(n int) (rune, bool) {
	rest := self.program[self.location.Index:]
	for {
		if len(rest) == 0 {
			return 0, false
		}
		// a multi-byte character may be split across two pushes
		if !self.finished && !utf8.FullRuneInString(rest) {
			return 0, false
		}
		char, width := utf8.DecodeRuneInString(rest)
		if n == 0 {
			return char, true
		}
		rest = rest[width:]
		n--
	}
}

func (self *Lexer) advance() {
	rest := self.program[self.location.Index:]
	if len(rest) == 0 {
		return
	}
	char, width := utf8.DecodeRuneInString(rest)
	if char == utf8.RuneError && width == 1 {
		// keep the byte index in sync with the buffer for invalid encodings
		self.location.Index += 1
		self.location.Column += 1
		return
	}
	self.location.Advance(char)
}

// needMoreInput restores the cursor to `start` so that the token can be rescanned once more text arrived.
func (self *Lexer) needMoreInput(start errors.Location) (Token, Status, *LexError) {
	self.location = start
	return UnknownToken(start), StatusNeedMoreInput, nil
}

// skipWhitespaceAndComments returns false if a comment runs into the end of an open buffer.
// In this case, the cursor is left at the start of that comment.
func (self *Lexer) skipWhitespaceAndComments() bool {
	for {
		char, ok := self.currentChar()
		if !ok {
			return true
		}

		if unicode.IsSpace(char) {
			self.advance()
			continue
		}

		if char != '#' {
			return true
		}

		commentStart := self.location
		for {
			char, ok := self.currentChar()
			if !ok {
				if !self.finished {
					self.location = commentStart
					return false
				}
				return true
			}
			self.advance()
			if char == '\n' {
				break
			}
		}
	}
}

// NextToken lexes the next token.
//
// After a `*LexError`, the cursor is placed behind the offending text so that the caller may keep going.
// If the buffer ends inside a token and `Finish` was not called yet, `StatusNeedMoreInput` is returned instead of guessing.
func (self *Lexer) NextToken() (Token, Status, *LexError) {
	if !self.skipWhitespaceAndComments() {
		return UnknownToken(self.location), StatusNeedMoreInput, nil
	}

	start := self.location
	char, ok := self.currentChar()
	if !ok {
		if !self.finished {
			return UnknownToken(start), StatusNeedMoreInput, nil
		}
		return newToken(EOF, "", self.span(start)), StatusFinished, nil
	}

	switch char {
	case '(':
		return self.makeSingleChar(LParen), StatusToken, nil
	case ')':
		return self.makeSingleChar(RParen), StatusToken, nil
	case '\'':
		return self.makeSingleChar(QuoteMark), StatusToken, nil
	}

	if util.IsUnexpected(char) {
		self.advance()
		return UnknownToken(start), StatusError, newLexError(
			UnexpectedChar,
			self.program[start.Index:self.location.Index],
			self.span(start),
		)
	}

	if util.IsDigit(char) {
		return self.makeNumber()
	}

	if util.IsSign(char) {
		next, ok := self.peekNth(1)
		if !ok && !self.finished {
			return self.needMoreInput(start)
		}
		if ok && util.IsDigit(next) {
			return self.makeNumber()
		}
	}

	return self.makeName()
}

// CollectTokens drains the lexer.
// If the buffer was finished, the returned slice ends with the `EOF` token.
// On error, the tokens lexed before the error are returned as well.
func (self *Lexer) CollectTokens() ([]Token, *LexError) {
	tokens := make([]Token, 0)

	for {
		token, status, err := self.NextToken()
		switch status {
		case StatusToken:
			tokens = append(tokens, token)
		case StatusFinished:
			return append(tokens, token), nil
		case StatusNeedMoreInput:
			return tokens, nil
		case StatusError:
			return tokens, err
		default:
			panic("A new lexer status was added without updating this code")
		}
	}
}

func (self *Lexer) makeSingleChar(kind TokenKind) Token {
	start := self.location
	self.advance()
	return newToken(kind, self.program[start.Index:self.location.Index], self.span(start))
}

func (self *Lexer) skipDigits() int {
	count := 0
	for {
		char, ok := self.currentChar()
		if !ok || !util.IsDigit(char) {
			return count
		}
		self.advance()
		count++
	}
}

// makeNumber scans `[+|-] digits [. digits]`.
// Any non-delimiter suffix is swallowed into a single `InvalidNumber` error.
func (self *Lexer) makeNumber() (Token, Status, *LexError) {
	start := self.location
	kind := Integer

	if char, _ := self.currentChar(); util.IsSign(char) {
		self.advance()
	}

	intDigits := self.skipDigits()
	fracDigits := 0

	char, ok := self.currentChar()
	if !ok && !self.finished {
		return self.needMoreInput(start)
	}

	if ok && char == '.' {
		next, hasNext := self.peekNth(1)
		if !hasNext && !self.finished {
			return self.needMoreInput(start)
		}

		if hasNext && util.IsDigit(next) {
			kind = Real
			self.advance()
			fracDigits = self.skipDigits()
		}
	}

	char, ok = self.currentChar()
	if !ok && !self.finished {
		return self.needMoreInput(start)
	}

	if ok && !util.IsDelimiter(char) {
		for ok && !util.IsDelimiter(char) {
			self.advance()
			char, ok = self.currentChar()
		}

		if !ok && !self.finished {
			return self.needMoreInput(start)
		}

		return UnknownToken(start), StatusError, newLexError(
			InvalidNumber,
			self.program[start.Index:self.location.Index],
			self.span(start),
		)
	}

	lexeme := self.program[start.Index:self.location.Index]

	if intDigits+fracDigits == 0 {
		return UnknownToken(start), StatusError, newLexError(InvalidNumber, lexeme, self.span(start))
	}

	return newToken(kind, lexeme, self.span(start)), StatusToken, nil
}

// makeName reads a run of non-delimiter characters and classifies it.
// Keywords are looked up first, only then is the lexeme validated as an identifier.
func (self *Lexer) makeName() (Token, Status, *LexError) {
	start := self.location

	char, ok := self.currentChar()
	for ok && !util.IsDelimiter(char) {
		self.advance()
		char, ok = self.currentChar()
	}

	if !ok && !self.finished {
		return self.needMoreInput(start)
	}

	lexeme := self.program[start.Index:self.location.Index]

	if kind, isKeyword := LookupKeyword(lexeme); isKeyword {
		return newToken(kind, lexeme, self.span(start)), StatusToken, nil
	}

	if looksNumeric(lexeme) {
		return UnknownToken(start), StatusError, newLexError(InvalidNumber, lexeme, self.span(start))
	}

	if !util.IsIdent(lexeme) {
		return UnknownToken(start), StatusError, newLexError(InvalidIdentifier, lexeme, self.span(start))
	}

	return newToken(Identifier, lexeme, self.span(start)), StatusToken, nil
}

// looksNumeric matches lexemes like `+`, `.` or `.5` which only consist of number characters but have no valid shape.
func looksNumeric(lexeme string) bool {
	if lexeme == "" || (lexeme[0] != '.' && !util.IsSign(rune(lexeme[0]))) {
		return false
	}

	for _, char := range lexeme {
		if !util.IsDigit(char) && !util.IsSign(char) && char != '.' {
			return false
		}
	}

	return true
}
