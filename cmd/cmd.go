package cmd

import (
	"fmt"
	"io"

	"github.com/pborman/getopt"
)

const version = "0.1.0"

// Execute runs the pylite command line and returns the process exit
// status. All I/O goes through the handed-in streams so tests can
// drive it directly.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts := getopt.New()
	opts.SetProgram("pylite")
	opts.SetParameters("[options] <script.pyl>")

	help := opts.BoolLong("help", '?', "display help")
	showVersion := opts.BoolLong("version", 'v', "print version and exit")
	debug := opts.BoolLong("debug", 'd', "dump tokens and syntax tree before running")
	evalSource := opts.StringLong("eval", 'e', "", "run SOURCE instead of a script file", "SOURCE")
	repl := opts.BoolLong("repl", 'r', "start an interactive session")

	if err := opts.Getopt(append([]string{"pylite"}, args...), nil); err != nil {
		fmt.Fprintln(stderr, err)
		opts.PrintUsage(stderr)
		return 1
	}

	if *help {
		opts.PrintUsage(stdout)
		return 0
	}
	if *showVersion {
		fmt.Fprintf(stdout, "pylite v%s\n", version)
		return 0
	}
	if *repl {
		return startREPL(stdin, stdout, stderr)
	}
	if *evalSource != "" {
		return executeCode(*evalSource, *debug, stdout, stderr)
	}

	rest := opts.Args()
	if len(rest) < 1 {
		opts.PrintUsage(stderr)
		return 1
	}

	return executeFile(rest[0], *debug, stdout, stderr)
}
