package main

import (
	"log"
	"time"

	"github.com/smarthome-go/lisp/lisp/fuzzer"
	"github.com/urfave/cli/v2"
)

func runFuzz(ctx *cli.Context) error {
	seed := ctx.Int64("seed")
	if !ctx.IsSet("seed") {
		seed = time.Now().UnixNano()
	}
	log.Printf("Using seed %d\n", seed)

	start := time.Now()
	gen := fuzzer.NewGenerator(seed, ctx.Int("depth"))
	programs := gen.Programs(ctx.Int("count"))
	log.Printf("Generated %d programs: elapsed: %v\n", len(programs), time.Since(start))

	if corpus := ctx.String("corpus"); corpus != "" {
		if err := writeCorpus(programs, corpus); err != nil {
			return err
		}
		log.Printf("Wrote corpus to `%s`\n", corpus)
	}

	start = time.Now()
	failures := fuzzer.Check(programs, ctx.Bool("verbose"))
	log.Printf("Checked %d programs: elapsed: %v\n", len(programs), time.Since(start))

	for _, failure := range failures {
		log.Println(failure)
	}

	if len(failures) > 0 {
		log.Printf("%d program(s) violated a property\n", len(failures))
		return errFailed
	}

	return nil
}
