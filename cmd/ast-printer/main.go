package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/littlekuo/glox/internal/syntax"
)

const exitUsage = 64

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("ast-printer", flag.ContinueOnError)
	filePath := fs.String("filePath", "", "path to the script to print")
	content := fs.String("content", "", "source text passed inline")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	switch {
	case *filePath == "" && *content == "":
		fmt.Fprintln(os.Stderr, "Usage: ast-printer -filePath <script> | -content <source>")
		return exitUsage
	case *filePath != "" && *content != "":
		fmt.Fprintln(os.Stderr, "pass -filePath or -content, not both")
		return exitUsage
	}

	source := *content
	if *filePath != "" {
		data, err := os.ReadFile(*filePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read %s: %v\n", *filePath, err)
			return 1
		}
		source = string(data)
	}

	scanner := syntax.NewScanner(source)
	tokens := scanner.ScanTokens()
	parser := syntax.NewParser(tokens)
	stmts := parser.Parse()
	for _, d := range scanner.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.String())
	}
	for _, d := range parser.Diagnostics() {
		fmt.Fprintln(os.Stderr, d.String())
	}
	printer := &syntax.AstPrinter{}
	fmt.Println(printer.PrintStmts(stmts))
	return 0
}
