package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/pylite-lang/pylite/pkg/interpreter"
	"github.com/pylite-lang/pylite/pkg/lexer"
	"github.com/pylite-lang/pylite/pkg/parser"
)

// executeFile runs a pylite script from disk.
func executeFile(filename string, debug bool, stdout, stderr io.Writer) int {
	source, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading file: %v\n", err)
		return 1
	}
	return executeCode(string(source), debug, stdout, stderr)
}

// executeCode runs pylite source from a string.
func executeCode(source string, debug bool, stdout, stderr io.Writer) int {
	if err := run(source, debug, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func run(source string, debug bool, stdout io.Writer) error {
	interp := interpreter.New()
	interp.SetOutput(stdout)
	return runWith(interp, source, debug, stdout)
}

// runWith pushes source through the lex/parse/interpret pipeline on an
// existing interpreter, tagging each stage's failure with its class.
// The REPL reuses the interpreter between snippets so bindings and
// function definitions persist.
func runWith(interp *interpreter.Interpreter, source string, debug bool, stdout io.Writer) error {
	lex := lexer.New(source)
	tokens, err := lex.Tokenize()
	if err != nil {
		return fmt.Errorf("lexical error: %v", err)
	}

	if debug {
		dumpTokens(tokens, stdout)
	}

	p := parser.New(tokens)
	program, err := p.Parse()
	if err != nil {
		return fmt.Errorf("syntax error: %v", err)
	}

	if debug {
		fmt.Fprintln(stdout, "--- Syntax tree ---")
		printAST(program, 0, stdout)
		fmt.Fprintln(stdout)
	}

	if err := interp.Interpret(program); err != nil {
		return fmt.Errorf("runtime error: %v", err)
	}
	return nil
}
