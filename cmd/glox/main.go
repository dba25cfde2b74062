package main

import (
	"fmt"
	"os"

	"github.com/littlekuo/glox/internal/driver"
	"github.com/littlekuo/glox/internal/repl"
)

const (
	exitUsage   = 64
	exitCompile = 65
	exitRuntime = 70
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	switch len(args) {
	case 0:
		repl.Start(os.Stdin, os.Stdout)
		return 0
	case 1:
		return runFile(args[0])
	default:
		fmt.Fprintln(os.Stderr, "Usage: glox [script]")
		return exitUsage
	}
}

func runFile(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", path, err)
		return 1
	}
	session := driver.NewSession(os.Stdout)
	result := session.Run(string(source))
	for _, d := range result.Diagnostics {
		fmt.Fprintln(os.Stderr, d.String())
	}
	switch result.Kind {
	case driver.RunCompileError:
		return exitCompile
	case driver.RunRuntimeError:
		return exitRuntime
	}
	return 0
}
