package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/smarthome-go/lisp/lisp"
	"github.com/smarthome-go/lisp/lisp/diagnostic"
	"github.com/smarthome-go/lisp/lisp/lexer"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const replFilename = "<repl>"

type repl struct {
	ctx        *cli.Context
	session    *lisp.Session
	showTokens bool
	failed     bool
}

func runRepl(ctx *cli.Context) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))

	state := repl{
		ctx:        ctx,
		session:    lisp.NewSession(replFilename),
		showTokens: ctx.Bool("tokens"),
		failed:     false,
	}

	scanner := bufio.NewScanner(os.Stdin)

	for {
		if interactive {
			if len(state.session.Pending()) > 0 {
				fmt.Print("... ")
			} else {
				fmt.Print("> ")
			}
		}

		if !scanner.Scan() {
			break
		}

		tokens, errs := state.session.Feed(scanner.Text())
		state.handle(tokens, errs)
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	tokens, errs := state.session.Close()
	state.handle(tokens, errs)

	// whatever is left is incomplete, parsing reports where it ends
	if len(state.session.Pending()) > 0 {
		state.flush()
	}

	if state.failed && !interactive {
		return errFailed
	}
	return nil
}

func (self *repl) handle(tokens []lexer.Token, errs []lexer.LexError) {
	if self.showTokens {
		for _, token := range tokens {
			fmt.Printf("%s %s\n", token, token.Span)
		}
	}

	if len(errs) > 0 {
		diagnostics := make([]diagnostic.Diagnostic, 0, len(errs))
		for _, err := range errs {
			diagnostics = append(diagnostics, diagnostic.FromLexError(err))
		}
		printDiagnostics(self.ctx, self.session.Program(), diagnostics)
		self.session.Discard()
		self.failed = true
		return
	}

	if self.session.Ready() {
		self.flush()
	}
}

func (self *repl) flush() {
	tree, err := self.session.Flush()
	if err != nil {
		printDiagnostics(self.ctx, self.session.Program(), []diagnostic.Diagnostic{diagnostic.FromSyntaxError(*err)})
		self.failed = true
		return
	}

	printDiagnostics(self.ctx, self.session.Program(), diagnostic.Lint(tree))
	fmt.Println(tree)
}
