// Package console prints styled, human-facing messages for the scaffold
// CLI: status lines, warnings and the template's completion message.
package console

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

var lineBreak = regexp.MustCompile(`\r?\n`)

// Console writes styled lines to Out
type Console struct {
	Out io.Writer
}

// New returns a console writing to w, or stdout when w is nil
func New(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{Out: w}
}

// Success prints a completed-operation message
func (c *Console) Success(msg string) {
	fmt.Fprintln(c.Out, successStyle.Render("✔ "+msg))
}

// Error prints a failure that needs user attention
func (c *Console) Error(msg string) {
	fmt.Fprintln(c.Out, errorStyle.Render("✖ "+msg))
}

// Warn prints a non-fatal problem
func (c *Console) Warn(msg string) {
	fmt.Fprintln(c.Out, warnStyle.Render("! "+msg))
}

// Info prints a status update
func (c *Console) Info(msg string) {
	fmt.Fprintln(c.Out, infoStyle.Render(msg))
}

// Step prints an indented sub-item
func (c *Console) Step(msg string) {
	fmt.Fprintln(c.Out, stepStyle.Render("   "+msg))
}

// Blank prints an empty line
func (c *Console) Blank() {
	fmt.Fprintln(c.Out)
}

// Indented prints msg after a blank line, three spaces before every line
func (c *Console) Indented(msg string) {
	lines := lineBreak.Split(msg, -1)
	for i, line := range lines {
		lines[i] = "   " + line
	}
	fmt.Fprintln(c.Out, "\n"+strings.Join(lines, "\n"))
}
