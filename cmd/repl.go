package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pylite-lang/pylite/pkg/interpreter"
)

func startREPL(stdin io.Reader, stdout, stderr io.Writer) int {
	fmt.Fprintf(stdout, "pylite v%s\n", version)
	fmt.Fprintln(stdout, "Type 'exit' to quit, 'help' for more information")

	interp := interpreter.New()
	interp.SetOutput(stdout)

	scanner := bufio.NewScanner(stdin)
	for {
		fmt.Fprint(stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if trimmed == "exit" || trimmed == "quit" {
			return 0
		}
		if trimmed == "help" {
			printReplHelp(stdout)
			continue
		}

		source := line + "\n"
		// A trailing ':' opens a block; collect its lines until a
		// blank one closes the snippet.
		if strings.HasSuffix(trimmed, ":") {
			for {
				fmt.Fprint(stdout, "... ")
				if !scanner.Scan() {
					break
				}
				more := scanner.Text()
				if strings.TrimSpace(more) == "" {
					break
				}
				source += more + "\n"
			}
		}

		if err := runWith(interp, source, false, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
	}

	return 0
}

func printReplHelp(w io.Writer) {
	fmt.Fprintln(w, "pylite REPL commands:")
	fmt.Fprintln(w, "  exit, quit  - Exit the REPL")
	fmt.Fprintln(w, "  help        - Show this help message")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  > x = 5 + 3")
	fmt.Fprintln(w, "  > print(x, \"squared is\", x * x)")
	fmt.Fprintln(w, "  > def double(n):")
	fmt.Fprintln(w, "  ...     return n * 2")
	fmt.Fprintln(w, "  ...")
}
