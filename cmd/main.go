package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/smarthome-go/lisp/lisp"
	"github.com/smarthome-go/lisp/lisp/diagnostic"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

const programName = "lisp"
const version = "latest"
const stdinFilename = "<stdin>"

var errFailed = errors.New("Encountered error(s)")

func fileValidator(ctx *cli.Context) error {
	if ctx.Args().Len() > 1 {
		return fmt.Errorf("Expected at most one argument [file]")
	}
	return nil
}

// readInput reads the file given as the first argument or stdin if there is none (or it is `-`).
func readInput(ctx *cli.Context) (program string, filename string, err error) {
	filename = ctx.Args().First()

	if filename == "" || filename == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return string(content), stdinFilename, nil
	}

	content, err := os.ReadFile(filename)
	if err != nil {
		return "", "", err
	}
	return string(content), filename, nil
}

func useColor(ctx *cli.Context) bool {
	return !ctx.Bool("no-color") && term.IsTerminal(int(os.Stdout.Fd()))
}

func printDiagnostics(ctx *cli.Context, program string, diagnostics []diagnostic.Diagnostic) {
	for _, item := range diagnostics {
		fmt.Println(item.Display(program, useColor(ctx)))
	}
}

func lexFile(ctx *cli.Context) error {
	program, filename, err := readInput(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	tokens, lexErr := lisp.Tokenize(program, filename)
	if ctx.Bool("timing") {
		log.Printf("Finished lexing: elapsed: %v\n", time.Since(start))
	}

	if ctx.Bool("dump") {
		spew.Dump(tokens)
	} else {
		for _, token := range tokens {
			fmt.Printf("%s %s\n", token, token.Span)
		}
	}

	if lexErr != nil {
		printDiagnostics(ctx, program, []diagnostic.Diagnostic{diagnostic.FromLexError(*lexErr)})
		return errFailed
	}

	return nil
}

func parseFile(ctx *cli.Context) error {
	program, filename, err := readInput(ctx)
	if err != nil {
		return err
	}

	start := time.Now()
	tree, diagnostics, ok := lisp.Parse(program, filename)
	if ctx.Bool("timing") {
		log.Printf("Finished lexing and parsing: elapsed: %v\n", time.Since(start))
	}

	printDiagnostics(ctx, program, diagnostics)

	if !ok {
		return errFailed
	}

	if ctx.Bool("dump") {
		fmt.Println(spew.Sdump(tree))
	} else {
		fmt.Println(tree)
	}

	return nil
}

func main() {
	// nolint:exhaustruct
	app := &cli.App{
		Name:     programName,
		Usage:    "Lex and parse programs of a small Lisp dialect",
		Version:  version,
		Compiled: time.Now(),
		Authors: []*cli.Author{
			{
				Name:  "The Smarthome Authors",
				Email: "",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable ANSI colors in diagnostics",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "lex",
				Usage:     "Print the tokens of a file (or stdin)",
				ArgsUsage: "[file]",
				Args:      true,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "dump",
						Usage:   "If set, the raw token structures are dumped.",
						Aliases: []string{"d"},
					},
					&cli.BoolFlag{
						Name:  "timing",
						Usage: "Log how long lexing took.",
					},
				},
				Before: fileValidator,
				Action: lexFile,
			},
			{
				Name:      "parse",
				Usage:     "Print the syntax tree of a file (or stdin)",
				ArgsUsage: "[file]",
				Args:      true,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "dump",
						Usage:   "If set, the raw tree structures are dumped.",
						Aliases: []string{"d"},
					},
					&cli.BoolFlag{
						Name:  "timing",
						Usage: "Log how long lexing and parsing took.",
					},
				},
				Before: fileValidator,
				Action: parseFile,
			},
			{
				Name:  "repl",
				Usage: "Read forms line by line and print their tokens and trees",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "tokens",
						Usage:   "If set, the tokens of every line are printed.",
						Aliases: []string{"t"},
					},
				},
				Action: runRepl,
			},
			{
				Name:  "fuzz",
				Usage: "Generate random programs and check lexer and parser properties on them",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:    "seed",
						Usage:   "Seed of the generator, defaults to the current time.",
						Aliases: []string{"s"},
					},
					&cli.IntFlag{
						Name:    "count",
						Usage:   "How many programs to generate.",
						Value:   1000,
						Aliases: []string{"n"},
					},
					&cli.IntFlag{
						Name:  "depth",
						Usage: "Maximum nesting depth of generated programs.",
						Value: 4,
					},
					&cli.StringFlag{
						Name:  "corpus",
						Usage: "If set, every generated program is written into this zip archive.",
					},
					&cli.BoolFlag{
						Name:    "verbose",
						Usage:   "Log the progress of each worker.",
						Aliases: []string{"v"},
					},
				},
				Action: runFuzz,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		if errors.Is(err, errFailed) {
			os.Exit(1)
		}
		log.Fatal(err)
	}
}
