/*
Cfgshell loads a context-free grammar from a file and repeatedly reads a
word from the user, reporting whether it belongs to the grammar's
language.

Usage:

	cfgshell [flags] GRAMMAR_FILE

The flags are:

	-e, --engine ENGINE
		Which recognizer to use: "earley" (default, accepts any grammar) or
		"lr1" (accepts only LR(1) grammars, refusing to start with any
		other kind).
*/
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/dekarrin/cfgrec"
	"github.com/dekarrin/cfgrec/internal/cfgerrors"
	"github.com/spf13/pflag"
)

var flagEngine = pflag.StringP("engine", "e", "earley", "Recognizer to use: 'earley' or 'lr1'.")

func main() {
	os.Exit(run())
}

func run() int {
	pflag.Parse()

	args := pflag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: cfgshell [flags] GRAMMAR_FILE\nDo -h for help.\n")
		return 1
	}

	engine := cfgrec.Engine(*flagEngine)
	if engine != cfgrec.EngineEarley && engine != cfgrec.EngineLR1 {
		fmt.Fprintf(os.Stderr, "unknown engine %q; must be 'earley' or 'lr1'\n", *flagEngine)
		return 1
	}

	parser, err := loadParser(args[0], engine)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return cfgerrors.ExitCodeFor(err)
	}

	rl, err := readline.NewEx(&readline.Config{Prompt: "word> "})
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not start interactive prompt: %v\n", err)
		return 1
	}
	defer rl.Close()

	fmt.Printf("Loaded %q, using %s engine. Empty line or Ctrl-D to quit.\n", args[0], engine)

	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return 0
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "read error: %v\n", err)
			return 1
		}
		if line == "" {
			return 0
		}

		ok, err := parser.Parse(line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		if ok {
			fmt.Println("yes, accepted")
		} else {
			fmt.Println("no, rejected")
		}
	}
}

func loadParser(path string, engine cfgrec.Engine) (cfgrec.Parser, error) {
	if engine == cfgrec.EngineLR1 {
		return cfgrec.NewLR1ParserFromFile(path)
	}
	return cfgrec.NewEarleyParserFromFile(path)
}
