// Command golox is the driver (file/REPL dispatch) for the golox
// interpreter core. It is the "external collaborator" spec.md §6
// describes: it owns reading source from a file or stdin and choosing
// the process exit code, and otherwise just wires lox.Run.
//
// Flag parsing follows the teacher's own root main.go precedent
// (stdlib flag.Bool, no third-party CLI framework); REPL mode follows
// go-mix's repl/repl.go (chzyer/readline + fatih/color); pipeline
// lifecycle logging follows hashicorp/nomad's hclog.Logger-through-
// constructors pattern.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"

	"github.com/sdecook/golox/lox"
)

func main() {
	logLevel := flag.String("log-level", "warn", "pipeline log level: trace, debug, info, warn, error, off")
	printAST := flag.Bool("ast", false, "print the parsed program instead of executing it")
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "golox",
		Level:  hclog.LevelFromString(*logLevel),
		Output: os.Stderr,
	})

	args := flag.Args()
	switch len(args) {
	case 0:
		runPrompt(logger)
	case 1:
		os.Exit(runFile(args[0], *printAST, logger))
	default:
		fmt.Fprintln(os.Stderr, "Usage: golox [-ast] [-log-level=LEVEL] [script]")
		os.Exit(64)
	}
}

// runFile implements spec.md §6's File mode contract: load the file,
// run it once, map the reporter's error flags to the exit codes
// 65 (syntax/resolve) and 70 (runtime).
func runFile(path string, printAST bool, logger hclog.Logger) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "golox: %v\n", err)
		return 74
	}
	logger.Debug("loaded script", "path", path, "bytes", len(source))

	reporter := lox.NewStdReporter(os.Stderr)

	if printAST {
		printProgram(string(source), reporter)
		if reporter.HadSyntaxError() {
			return 65
		}
		return 0
	}

	interp := lox.NewInterpreter(reporter)
	lox.Run(string(source), reporter, interp)

	switch {
	case reporter.HadSyntaxError(), reporter.HadResolveError():
		return 65
	case reporter.HadRuntimeError():
		return 70
	default:
		return 0
	}
}

// runPrompt implements spec.md §6's REPL mode contract: read a line,
// run it, reset the syntax-error flag before the next prompt. Runtime
// errors are reported but never terminate the session; EOF (Ctrl-D) or
// interrupt (Ctrl-C on an empty line) exits cleanly.
func runPrompt(logger hclog.Logger) {
	banner := color.New(color.FgCyan)
	banner.Println("golox " + versionString())
	fmt.Println("Ctrl-D to exit.")

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          color.YellowString("> "),
		HistoryFile:     historyFilePath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "golox: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	reporter := lox.NewStdReporter(os.Stderr)
	interp := lox.NewInterpreter(reporter)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		reporter.Reset()
		lox.Run(line, reporter, interp)
		if reporter.HadRuntimeError() {
			logger.Debug("runtime error on REPL line", "line", line)
		}
	}
}

func printProgram(source string, reporter lox.Reporter) {
	scanner := lox.NewScanner(source, reporter)
	tokens := scanner.Scan()
	parser := lox.NewParser(tokens, reporter)
	stmts := parser.Parse()
	if reporter.HadSyntaxError() {
		return
	}
	for _, stmt := range stmts {
		fmt.Println(stmt.String())
	}
}

func historyFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.golox_history"
}

func versionString() string { return "0.1.0" }
