// Package repl provides the interactive prompt. Every submitted line
// runs inside one persistent session, so definitions from earlier
// lines stay visible.
package repl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/littlekuo/glox/internal/driver"
)

const prompt = "> "

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Start reads lines from in until EOF (ctrl-D), running each one in a
// shared session and reporting diagnostics on out.
func Start(in io.Reader, out io.Writer) {
	session := driver.NewSession(out)
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, promptStyle.Render(prompt))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		result := session.Run(line)
		for _, d := range result.Diagnostics {
			fmt.Fprintln(out, errorStyle.Render(d.String()))
		}
	}
}
